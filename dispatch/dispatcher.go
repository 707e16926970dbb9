package dispatch

import (
	"github.com/wippyai/nativeapi-go/component"
	"github.com/wippyai/nativeapi-go/errors"
	"github.com/wippyai/nativeapi-go/variant"
)

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithCodePage sets the code page used to coerce between String and
// AnsiString arguments. The default is variant.DefaultCodePage.
func WithCodePage(cp variant.CodePage) Option {
	return func(d *Dispatcher) {
		d.codePage = cp
	}
}

// Dispatcher routes host requests to a description.
type Dispatcher struct {
	desc     component.Description
	props    []component.Property
	methods  []component.Method
	codePage variant.CodePage
}

// New snapshots the description's tables. Each entry's Ordinal must equal
// its index.
func New(desc component.Description, opts ...Option) (*Dispatcher, error) {
	if desc == nil {
		return nil, errors.InvalidConfig("nil description")
	}
	d := &Dispatcher{
		desc:     desc,
		props:    clonePropertyTable(desc.Properties()),
		methods:  cloneMethodTable(desc.Methods()),
		codePage: variant.DefaultCodePage,
	}
	for _, opt := range opts {
		opt(d)
	}
	for i, p := range d.props {
		if p.Ordinal != i {
			return nil, errors.InvalidConfig("property %q has ordinal %d at index %d", p.Name(), p.Ordinal, i)
		}
	}
	for i, m := range d.methods {
		if m.Ordinal != i {
			return nil, errors.InvalidConfig("method %q has ordinal %d at index %d", m.Name(), m.Ordinal, i)
		}
	}
	return d, nil
}

func clonePropertyTable(in []component.Property) []component.Property {
	out := make([]component.Property, len(in))
	for i, p := range in {
		p.Aliases = append([]string(nil), p.Aliases...)
		out[i] = p
	}
	return out
}

func cloneMethodTable(in []component.Method) []component.Method {
	out := make([]component.Method, len(in))
	for i, m := range in {
		m.Aliases = append([]string(nil), m.Aliases...)
		m.Params = append([]component.Param(nil), m.Params...)
		for j := range m.Params {
			m.Params[j].Default = m.Params[j].Default.Clone()
		}
		out[i] = m
	}
	return out
}

// Description returns the description behind d.
func (d *Dispatcher) Description() component.Description { return d.desc }

func (d *Dispatcher) PropertyCount() int { return len(d.props) }
func (d *Dispatcher) MethodCount() int   { return len(d.methods) }

// FindProperty returns the ordinal of the first property with an alias
// equal to name.
func (d *Dispatcher) FindProperty(name string) (int, error) {
	if name != "" {
		for _, p := range d.props {
			for _, a := range p.Aliases {
				if a == name {
					return p.Ordinal, nil
				}
			}
		}
	}
	return -1, errors.PropertyNotFound(name)
}

// FindMethod returns the ordinal of the first method with an alias equal to
// name.
func (d *Dispatcher) FindMethod(name string) (int, error) {
	if name != "" {
		for _, m := range d.methods {
			for _, a := range m.Aliases {
				if a == name {
					return m.Ordinal, nil
				}
			}
		}
	}
	return -1, errors.MethodNotFound(name)
}

// PropertyName returns alias number alias of property ordinal.
func (d *Dispatcher) PropertyName(ordinal, alias int) (string, error) {
	p, err := d.Property(ordinal)
	if err != nil {
		return "", err
	}
	if alias < 0 || alias >= len(p.Aliases) {
		return "", errors.PropertyAliasNotFound(ordinal, alias)
	}
	return p.Aliases[alias], nil
}

// MethodName returns alias number alias of method ordinal.
func (d *Dispatcher) MethodName(ordinal, alias int) (string, error) {
	m, err := d.Method(ordinal)
	if err != nil {
		return "", err
	}
	if alias < 0 || alias >= len(m.Aliases) {
		return "", errors.MethodAliasNotFound(ordinal, alias)
	}
	return m.Aliases[alias], nil
}

// Property returns the descriptor of property ordinal.
func (d *Dispatcher) Property(ordinal int) (component.Property, error) {
	if ordinal < 0 || ordinal >= len(d.props) {
		return component.Property{}, errors.PropertyOutOfBounds(ordinal, len(d.props))
	}
	return d.props[ordinal], nil
}

// Method returns the descriptor of method ordinal.
func (d *Dispatcher) Method(ordinal int) (component.Method, error) {
	if ordinal < 0 || ordinal >= len(d.methods) {
		return component.Method{}, errors.MethodOutOfBounds(ordinal, len(d.methods))
	}
	return d.methods[ordinal], nil
}

func (d *Dispatcher) IsReadable(ordinal int) bool {
	p, err := d.Property(ordinal)
	return err == nil && p.Readable
}

func (d *Dispatcher) IsWritable(ordinal int) bool {
	p, err := d.Property(ordinal)
	return err == nil && p.Writable
}

// ReadProperty reads a readable property.
func (d *Dispatcher) ReadProperty(ordinal int) (variant.Value, error) {
	p, err := d.Property(ordinal)
	if err != nil {
		return variant.Value{}, err
	}
	if !p.Readable {
		return variant.Value{}, errors.PropertyNotReadable(ordinal)
	}
	v, err := d.desc.ReadProperty(ordinal)
	if err != nil {
		return variant.Value{}, propertyError(ordinal, err)
	}
	return v, nil
}

// WriteProperty coerces v to the declared type and writes it.
func (d *Dispatcher) WriteProperty(ordinal int, v variant.Value) error {
	p, err := d.Property(ordinal)
	if err != nil {
		return err
	}
	if !p.Writable {
		return errors.PropertyNotWritable(ordinal)
	}
	if kind, typed := p.Type.Kind(); typed {
		cv, err := variant.Convert(v, kind, d.codePage)
		if err != nil {
			return errors.InvalidPropertyValue(ordinal, err)
		}
		v = cv
	}
	if err := d.desc.WriteProperty(ordinal, v); err != nil {
		return propertyError(ordinal, err)
	}
	return nil
}

func propertyError(ordinal int, err error) error {
	var e *errors.Error
	if errors.As(err, &e) && e.Phase == errors.PhaseProperty {
		return err
	}
	return errors.InvalidPropertyValue(ordinal, err)
}

// ParamCount returns the number of declared parameters.
func (d *Dispatcher) ParamCount(ordinal int) (int, error) {
	m, err := d.Method(ordinal)
	if err != nil {
		return 0, err
	}
	return len(m.Params), nil
}

// ParamDefault returns the declared default of a parameter. ok is false
// when the parameter has none.
func (d *Dispatcher) ParamDefault(ordinal, param int) (v variant.Value, ok bool, err error) {
	m, err := d.Method(ordinal)
	if err != nil {
		return variant.Value{}, false, err
	}
	if param < 0 || param >= len(m.Params) {
		return variant.Value{}, false, errors.MethodParameter(ordinal, errors.ParamOutOfBounds(param, len(m.Params)))
	}
	p := m.Params[param]
	return p.Default, p.HasDefault, nil
}

// HasReturn reports whether a method declares a return value.
func (d *Dispatcher) HasReturn(ordinal int) (bool, error) {
	m, err := d.Method(ordinal)
	if err != nil {
		return false, err
	}
	return m.HasReturn, nil
}
