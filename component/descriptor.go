package component

import (
	nativeapi "github.com/wippyai/nativeapi-go"
	"github.com/wippyai/nativeapi-go/variant"
)

// Property describes one property. Aliases[0] is the primary name.
type Property struct {
	Aliases  []string
	Ordinal  int
	Type     Type
	Readable bool
	Writable bool
}

// Name returns the primary alias.
func (p Property) Name() string {
	if len(p.Aliases) == 0 {
		return ""
	}
	return p.Aliases[0]
}

// Param describes one method parameter.
type Param struct {
	Default    variant.Value
	Name       string
	Type       Type
	HasDefault bool
}

// Method describes one method. Aliases[0] is the primary name.
type Method struct {
	Aliases   []string
	Params    []Param
	Ordinal   int
	Return    Type
	HasReturn bool
}

// Name returns the primary alias.
func (m Method) Name() string {
	if len(m.Aliases) == 0 {
		return ""
	}
	return m.Aliases[0]
}

// Required returns how many leading parameters a caller must supply: the
// position after the last parameter without a default.
func (m Method) Required() int {
	for i := len(m.Params) - 1; i >= 0; i-- {
		if !m.Params[i].HasDefault {
			return i + 1
		}
	}
	return 0
}

// Description is the component behind a dispatcher. Properties and Methods
// must return the same tables on every call.
type Description interface {
	Properties() []Property
	Methods() []Method
	ReadProperty(ordinal int) (variant.Value, error)
	WriteProperty(ordinal int, v variant.Value) error
	Invoke(ordinal int, args []variant.Value, asProcedure bool) (variant.Value, error)
}

// Initializer is implemented by descriptions that need the host when the
// add-in object is initialized.
type Initializer interface {
	Init(host nativeapi.Host) error
}

// Finalizer is implemented by descriptions that release resources when the
// host shuts the object down.
type Finalizer interface {
	Done()
}

// Named is implemented by descriptions that carry their registration name.
type Named interface {
	Name() string
}
