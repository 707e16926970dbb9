package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/wippyai/nativeapi-go/component"
	"github.com/wippyai/nativeapi-go/dispatch"
)

type entryKind int

const (
	entryProperty entryKind = iota
	entryMethod
)

// entry is one row of the catalog: a property or a method.
type entry struct {
	name    string
	aliases []string
	params  []component.Param
	typ     component.Type
	ordinal int32
	kind    entryKind
	read    bool
	write   bool
	returns bool
}

func catalog(d *dispatch.Dispatcher) []entry {
	var entries []entry
	for i := 0; i < d.PropertyCount(); i++ {
		p, _ := d.Property(i)
		entries = append(entries, entry{
			kind:    entryProperty,
			ordinal: int32(i),
			name:    p.Name(),
			aliases: extraAliases(p.Aliases),
			typ:     p.Type,
			read:    p.Readable,
			write:   p.Writable,
		})
	}
	for i := 0; i < d.MethodCount(); i++ {
		m, _ := d.Method(i)
		entries = append(entries, entry{
			kind:    entryMethod,
			ordinal: int32(i),
			name:    m.Name(),
			aliases: extraAliases(m.Aliases),
			params:  m.Params,
			typ:     m.Return,
			returns: m.HasReturn,
		})
	}
	return entries
}

func extraAliases(aliases []string) []string {
	if len(aliases) < 2 {
		return nil
	}
	return aliases[1:]
}

func (e entry) signature() string {
	if e.kind == entryProperty {
		access := "r"
		switch {
		case e.read && e.write:
			access = "rw"
		case e.write:
			access = "w"
		}
		return fmt.Sprintf("%s: %s [%s]", e.name, witTypeStr(e.typ.WIT()), access)
	}
	params := make([]string, len(e.params))
	for i, p := range e.params {
		params[i] = p.Name + ": " + witTypeStr(p.Type.WIT())
		if p.HasDefault {
			params[i] += " = " + p.Default.String()
		}
	}
	sig := e.name + "(" + strings.Join(params, ", ") + ")"
	if e.returns {
		sig += " -> " + witTypeStr(e.typ.WIT())
	}
	return sig
}

func printCatalog(w io.Writer, name string, entries []entry) {
	fmt.Fprintf(w, "Extension: %s\n", name)
	section := entryKind(-1)
	for _, e := range entries {
		if e.kind != section {
			section = e.kind
			if section == entryProperty {
				fmt.Fprintf(w, "\nProperties:\n")
			} else {
				fmt.Fprintf(w, "\nMethods:\n")
			}
		}
		fmt.Fprintf(w, "  %2d  %s", e.ordinal, e.signature())
		if len(e.aliases) > 0 {
			fmt.Fprintf(w, "  (%s)", strings.Join(e.aliases, ", "))
		}
		fmt.Fprintln(w)
	}
}
