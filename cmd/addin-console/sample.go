package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/wippyai/nativeapi-go/component"
	"github.com/wippyai/nativeapi-go/variant"
)

const sampleClass = "Sample"

// newSample builds the component hosted by the console.
func newSample() (component.Description, error) {
	started := variant.FromTime(time.Now())
	calls := 0

	b := component.NewBuilder(sampleClass)
	b.Property("TestProp", component.TypeI32).
		Alias("ТестовоеСвойство").
		Default(variant.I32(42)).
		ReadWrite()
	b.Property("Greeting", component.TypeString).
		Alias("Приветствие").
		Default(variant.String("Hello")).
		ReadWrite()
	b.Property("Label", component.TypeAnsiString).ReadWrite()
	b.Property("Started", component.TypeDateTime).
		Get(func() (variant.Value, error) { return started, nil }).
		ReadOnly()
	b.Property("Calls", component.TypeI32).
		Get(func() (variant.Value, error) { return variant.I32(int32(calls)), nil }).
		ReadOnly()

	b.Function("TestMethod", component.TypeI32, func(args []variant.Value) (variant.Value, error) {
		calls++
		a, _ := args[0].AsI32()
		c, _ := args[1].AsI32()
		return variant.I32(a + c), nil
	}).Alias("ТестовыйМетод").Param("a", component.TypeI32).Param("b", component.TypeI32)

	b.Function("Repeat", component.TypeString, func(args []variant.Value) (variant.Value, error) {
		calls++
		s, _ := args[0].Text()
		n, _ := args[1].AsI32()
		if n < 0 {
			return variant.Value{}, fmt.Errorf("negative count %d", n)
		}
		return variant.String(strings.Repeat(s, int(n))), nil
	}).Alias("Повторить").Param("text", component.TypeString).Optional("count", component.TypeI32, variant.I32(2))

	b.Function("Now", component.TypeDateNumeric, func([]variant.Value) (variant.Value, error) {
		calls++
		return variant.DateNumericFromTime(time.Now())
	})

	b.Function("Describe", component.TypeString, func(args []variant.Value) (variant.Value, error) {
		calls++
		return variant.String(args[0].String()), nil
	}).Param("value", component.TypeAny)

	b.Procedure("Swap", func(args []variant.Value) error {
		calls++
		args[0], args[1] = args[1], args[0]
		return nil
	}).Param("left", component.TypeAny).Param("right", component.TypeAny)

	b.Procedure("Reset", func([]variant.Value) error {
		calls = 0
		return nil
	}).Alias("Сбросить")

	return b.Build()
}
