package addin

import (
	"github.com/wippyai/nativeapi-go/errors"
)

// GetNProps returns the number of properties.
func (o *Object) GetNProps() int32 { return int32(o.disp.PropertyCount()) }

// FindProp returns the ordinal of the property called name, or -1.
func (o *Object) FindProp(name []uint16) int32 {
	o.mu.Lock()
	defer o.mu.Unlock()
	ord, err := o.disp.FindProperty(hostString(name))
	if err != nil {
		o.fail("FindProp", -1, err)
		return -1
	}
	return int32(ord)
}

// GetPropName returns a host buffer holding alias of property num, or 0.
func (o *Object) GetPropName(num, alias int32) (addr uint64) {
	o.mu.Lock()
	defer o.mu.Unlock()
	defer o.rescue("GetPropName", num, func() { addr = 0 })

	name, err := o.disp.PropertyName(int(num), int(alias))
	if err == nil {
		addr, err = o.allocName(name)
	}
	if err != nil {
		o.fail("GetPropName", num, err)
		return 0
	}
	return addr
}

// GetPropVal reads property num into the record at slot.
func (o *Object) GetPropVal(num int32, slot uint64) (ok bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	defer o.rescue("GetPropVal", num, func() { ok = false })

	if err := o.getPropVal(num, slot); err != nil {
		o.fail("GetPropVal", num, err)
		return false
	}
	return true
}

func (o *Object) getPropVal(num int32, slot uint64) error {
	if _, _, err := o.connected(); err != nil {
		return err
	}
	v, err := o.disp.ReadProperty(int(num))
	if err != nil {
		return err
	}
	return o.encode(v, slot)
}

// SetPropVal writes the value in the record at slot to property num.
func (o *Object) SetPropVal(num int32, slot uint64) (ok bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	defer o.rescue("SetPropVal", num, func() { ok = false })

	if err := o.setPropVal(num, slot); err != nil {
		o.fail("SetPropVal", num, err)
		return false
	}
	return true
}

func (o *Object) setPropVal(num int32, slot uint64) error {
	host, _, err := o.connected()
	if err != nil {
		return err
	}
	p, err := o.disp.Property(int(num))
	if err != nil {
		return err
	}
	if !p.Writable {
		return errors.PropertyNotWritable(int(num))
	}
	v, err := o.dec.LoadOwned(slot, host)
	if err != nil {
		return errors.InvalidPropertyValue(int(num), err)
	}
	return o.disp.WriteProperty(int(num), v)
}

// IsPropReadable reports whether property num can be read.
func (o *Object) IsPropReadable(num int32) bool { return o.disp.IsReadable(int(num)) }

// IsPropWritable reports whether property num can be written.
func (o *Object) IsPropWritable(num int32) bool { return o.disp.IsWritable(int(num)) }
