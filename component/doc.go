// Package component describes an add-in component to the dispatcher.
//
// A component is a table of properties and a table of methods. Each entry
// has an ordinal, the stable index the host uses for the whole session, and
// one or more aliases: the primary name followed by localized names. The
// tables are built once and never change.
//
// Description is the contract the dispatcher consumes. It can be
// implemented directly or produced with Builder:
//
//	b := component.NewBuilder("Sample")
//	b.Property("TestProp", component.TypeI32).Alias("ТестовоеСвойство").
//		Default(variant.I32(42)).ReadWrite()
//	b.Function("TestMethod", component.TypeI32, func(args []variant.Value) (variant.Value, error) {
//		a, _ := args[0].AsI32()
//		c, _ := args[1].AsI32()
//		return variant.I32(a + c), nil
//	}).Param("a", component.TypeI32).Param("b", component.TypeI32)
//	desc, err := b.Build()
//
// # Argument Lifetime
//
// Values passed to WriteProperty and Invoke may borrow host memory and are
// valid only for the duration of the call. Clone anything kept longer.
//
// # Out Parameters
//
// Invoke receives the argument slice itself. A method may replace
// elements of it; the dispatcher writes changed arguments back to the
// host's parameter records after the call.
package component
