package addin

import (
	"github.com/wippyai/nativeapi-go/errors"
	"github.com/wippyai/nativeapi-go/variant"
)

// GetNMethods returns the number of methods.
func (o *Object) GetNMethods() int32 { return int32(o.disp.MethodCount()) }

// FindMethod returns the ordinal of the method called name, or -1.
func (o *Object) FindMethod(name []uint16) int32 {
	o.mu.Lock()
	defer o.mu.Unlock()
	ord, err := o.disp.FindMethod(hostString(name))
	if err != nil {
		o.fail("FindMethod", -1, err)
		return -1
	}
	return int32(ord)
}

// GetMethodName returns a host buffer holding alias of method num, or 0.
func (o *Object) GetMethodName(num, alias int32) (addr uint64) {
	o.mu.Lock()
	defer o.mu.Unlock()
	defer o.rescue("GetMethodName", num, func() { addr = 0 })

	name, err := o.disp.MethodName(int(num), int(alias))
	if err == nil {
		addr, err = o.allocName(name)
	}
	if err != nil {
		o.fail("GetMethodName", num, err)
		return 0
	}
	return addr
}

// GetNParams returns the parameter count of method num, or 0.
func (o *Object) GetNParams(num int32) int32 {
	n, err := o.disp.ParamCount(int(num))
	if err != nil {
		return 0
	}
	return int32(n)
}

// GetParamDefValue writes the default of parameter param into slot. It
// returns false when the parameter has no default.
func (o *Object) GetParamDefValue(num, param int32, slot uint64) (ok bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	defer o.rescue("GetParamDefValue", num, func() { ok = false })

	def, has, err := o.disp.ParamDefault(int(num), int(param))
	if err == nil && !has {
		return false
	}
	if err == nil {
		err = o.encode(def, slot)
	}
	if err != nil {
		o.fail("GetParamDefValue", num, err)
		return false
	}
	return true
}

func (o *Object) encode(v variant.Value, slot uint64) error {
	host, gw, err := o.connected()
	if err != nil {
		return err
	}
	return o.enc.Encode(v, slot, host, gw)
}

// HasRetVal reports whether method num returns a value.
func (o *Object) HasRetVal(num int32) bool {
	has, err := o.disp.HasReturn(int(num))
	return err == nil && has
}

// CallAsProc calls method num with count records starting at params.
// Arguments the method changed are written back to their records.
func (o *Object) CallAsProc(num int32, params uint64, count int32) (ok bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	defer o.rescue("CallAsProc", num, func() { ok = false })

	if err := o.call(num, 0, params, count, true); err != nil {
		o.fail("CallAsProc", num, err)
		return false
	}
	return true
}

// CallAsFunc is CallAsProc that also writes the result to the record at
// ret. The result and the changed arguments are written together or not
// at all.
func (o *Object) CallAsFunc(num int32, ret, params uint64, count int32) (ok bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	defer o.rescue("CallAsFunc", num, func() { ok = false })

	if err := o.call(num, ret, params, count, false); err != nil {
		o.fail("CallAsFunc", num, err)
		return false
	}
	return true
}

func (o *Object) call(num int32, ret, params uint64, count int32, asProcedure bool) error {
	host, gw, err := o.connected()
	if err != nil {
		return err
	}
	m, err := o.disp.Method(int(num))
	if err != nil {
		return err
	}
	if !asProcedure && !m.HasReturn {
		return errors.NoReturnValue(int(num))
	}
	if count < 0 {
		return errors.MethodParameter(int(num), errors.InvalidParamValue(int(count), "negative parameter count"))
	}
	if count > 0 && params == 0 {
		return errors.MethodParameter(int(num), errors.InvalidAddress(0))
	}
	if !asProcedure && ret == 0 {
		return errors.InvalidAddress(0)
	}

	size := uint64(o.cfg.Layout.Size)
	slots := make([]uint64, count)
	args := make([]variant.Value, count)
	before := make([]variant.Value, count)
	for i := range slots {
		slots[i] = params + uint64(i)*size
		v, err := o.dec.LoadOwned(slots[i], host)
		if err != nil {
			return errors.MethodParameter(int(num), errors.New(errors.PhaseParameter, errors.KindInvalidValue).
				Index(i).Detail("unreadable parameter record").Cause(err).Build())
		}
		args[i] = v
		before[i] = v.Clone()
	}

	result, err := o.disp.Invoke(int(num), args, asProcedure)
	if err != nil {
		return err
	}

	var values []variant.Value
	var targets []uint64
	if !asProcedure {
		values = append(values, result)
		targets = append(targets, ret)
	}
	for i := range args {
		if !args[i].Equal(before[i]) {
			values = append(values, args[i])
			targets = append(targets, slots[i])
		}
	}
	if len(values) == 0 {
		return nil
	}
	return o.enc.EncodeAll(values, targets, host, gw)
}
