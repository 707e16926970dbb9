package component

import (
	"sync"

	"github.com/wippyai/nativeapi-go/errors"
	"github.com/wippyai/nativeapi-go/variant"
)

// Getter produces a property value.
type Getter func() (variant.Value, error)

// Setter stores a property value. The value may borrow host memory.
type Setter func(variant.Value) error

// Func implements a method. args has one entry per declared parameter,
// defaults already substituted; elements may be replaced to return out
// parameters.
type Func func(args []variant.Value) (variant.Value, error)

// Builder assembles descriptor tables and the closures behind them.
type Builder struct {
	name    string
	props   []*PropertyBuilder
	methods []*MethodBuilder
}

// NewBuilder starts a component registered under name.
func NewBuilder(name string) *Builder {
	return &Builder{name: name}
}

// PropertyBuilder configures one property.
type PropertyBuilder struct {
	def     variant.Value
	get     Getter
	set     Setter
	aliases []string
	typ     Type
	read    bool
	write   bool
}

// Property adds a property. Without Get or Set it is backed by a stored
// value, initially its default.
func (b *Builder) Property(name string, typ Type) *PropertyBuilder {
	p := &PropertyBuilder{aliases: []string{name}, typ: typ}
	b.props = append(b.props, p)
	return p
}

func (p *PropertyBuilder) Alias(names ...string) *PropertyBuilder {
	p.aliases = append(p.aliases, names...)
	return p
}

func (p *PropertyBuilder) Default(v variant.Value) *PropertyBuilder {
	p.def = v.Clone()
	return p
}

func (p *PropertyBuilder) Get(fn Getter) *PropertyBuilder {
	p.get = fn
	p.read = true
	return p
}

func (p *PropertyBuilder) Set(fn Setter) *PropertyBuilder {
	p.set = fn
	p.write = true
	return p
}

func (p *PropertyBuilder) ReadOnly() *PropertyBuilder {
	p.read, p.write = true, false
	return p
}

func (p *PropertyBuilder) WriteOnly() *PropertyBuilder {
	p.read, p.write = false, true
	return p
}

func (p *PropertyBuilder) ReadWrite() *PropertyBuilder {
	p.read, p.write = true, true
	return p
}

// MethodBuilder configures one method.
type MethodBuilder struct {
	fn        Func
	aliases   []string
	params    []Param
	ret       Type
	hasReturn bool
}

// Function adds a method that returns a value of type ret.
func (b *Builder) Function(name string, ret Type, fn Func) *MethodBuilder {
	m := &MethodBuilder{aliases: []string{name}, ret: ret, hasReturn: true, fn: fn}
	b.methods = append(b.methods, m)
	return m
}

// Procedure adds a method without a return value.
func (b *Builder) Procedure(name string, fn func(args []variant.Value) error) *MethodBuilder {
	m := &MethodBuilder{aliases: []string{name}}
	if fn != nil {
		m.fn = func(args []variant.Value) (variant.Value, error) {
			return variant.Empty(), fn(args)
		}
	}
	b.methods = append(b.methods, m)
	return m
}

func (m *MethodBuilder) Alias(names ...string) *MethodBuilder {
	m.aliases = append(m.aliases, names...)
	return m
}

// Param declares a required parameter.
func (m *MethodBuilder) Param(name string, typ Type) *MethodBuilder {
	m.params = append(m.params, Param{Name: name, Type: typ})
	return m
}

// Optional declares a parameter substituted with def when omitted.
func (m *MethodBuilder) Optional(name string, typ Type, def variant.Value) *MethodBuilder {
	m.params = append(m.params, Param{Name: name, Type: typ, Default: def.Clone(), HasDefault: true})
	return m
}

// Build validates the declarations and returns the description.
func (b *Builder) Build() (*Built, error) {
	if b.name == "" {
		return nil, errors.InvalidConfig("component name is empty")
	}
	d := &Built{
		name:    b.name,
		props:   make([]Property, len(b.props)),
		methods: make([]Method, len(b.methods)),
		values:  make([]variant.Value, len(b.props)),
		getters: make([]Getter, len(b.props)),
		setters: make([]Setter, len(b.props)),
		funcs:   make([]Func, len(b.methods)),
	}

	for i, p := range b.props {
		if err := checkAliases("property", i, p.aliases); err != nil {
			return nil, err
		}
		if !p.def.IsEmpty() && !p.typ.Accepts(p.def) {
			return nil, errors.InvalidConfig("property %q: default %s is not %s", p.aliases[0], p.def, p.typ)
		}
		d.props[i] = Property{
			Aliases:  append([]string(nil), p.aliases...),
			Ordinal:  i,
			Type:     p.typ,
			Readable: p.read,
			Writable: p.write,
		}
		d.values[i] = p.def
		d.getters[i] = p.get
		d.setters[i] = p.set
	}

	for i, m := range b.methods {
		if err := checkAliases("method", i, m.aliases); err != nil {
			return nil, err
		}
		if m.fn == nil {
			return nil, errors.InvalidConfig("method %q has no implementation", m.aliases[0])
		}
		optional := false
		for j, p := range m.params {
			if p.HasDefault {
				optional = true
				if !p.Type.Accepts(p.Default) {
					return nil, errors.InvalidConfig("method %q parameter %d: default %s is not %s", m.aliases[0], j, p.Default, p.Type)
				}
			} else if optional {
				return nil, errors.InvalidConfig("method %q parameter %d: required parameter follows an optional one", m.aliases[0], j)
			}
		}
		d.methods[i] = Method{
			Aliases:   append([]string(nil), m.aliases...),
			Params:    append([]Param(nil), m.params...),
			Ordinal:   i,
			Return:    m.ret,
			HasReturn: m.hasReturn,
		}
		d.funcs[i] = m.fn
	}
	return d, nil
}

func checkAliases(what string, ordinal int, aliases []string) error {
	for _, a := range aliases {
		if a == "" {
			return errors.InvalidConfig("%s %d: empty alias", what, ordinal)
		}
	}
	return nil
}

// Built is the Description produced by Builder. It is safe for concurrent
// use.
type Built struct {
	name    string
	props   []Property
	methods []Method
	values  []variant.Value
	getters []Getter
	setters []Setter
	funcs   []Func
	mu      sync.Mutex
}

func (d *Built) Name() string           { return d.name }
func (d *Built) Properties() []Property { return d.props }
func (d *Built) Methods() []Method      { return d.methods }

func (d *Built) ReadProperty(ordinal int) (variant.Value, error) {
	if ordinal < 0 || ordinal >= len(d.props) {
		return variant.Value{}, errors.PropertyOutOfBounds(ordinal, len(d.props))
	}
	if !d.props[ordinal].Readable {
		return variant.Value{}, errors.PropertyNotReadable(ordinal)
	}
	if get := d.getters[ordinal]; get != nil {
		return get()
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.values[ordinal], nil
}

func (d *Built) WriteProperty(ordinal int, v variant.Value) error {
	if ordinal < 0 || ordinal >= len(d.props) {
		return errors.PropertyOutOfBounds(ordinal, len(d.props))
	}
	if !d.props[ordinal].Writable {
		return errors.PropertyNotWritable(ordinal)
	}
	if set := d.setters[ordinal]; set != nil {
		return set(v)
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.values[ordinal] = v.Clone()
	return nil
}

func (d *Built) Invoke(ordinal int, args []variant.Value, asProcedure bool) (variant.Value, error) {
	if ordinal < 0 || ordinal >= len(d.methods) {
		return variant.Value{}, errors.MethodOutOfBounds(ordinal, len(d.methods))
	}
	return d.funcs[ordinal](args)
}
