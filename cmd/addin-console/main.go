package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/wippyai/nativeapi-go/addin"
	"github.com/wippyai/nativeapi-go/component"
	"github.com/wippyai/nativeapi-go/hostmem"
	"github.com/wippyai/nativeapi-go/library"
	"github.com/wippyai/nativeapi-go/memory"
	"github.com/wippyai/nativeapi-go/variant"
	"github.com/wippyai/nativeapi-go/wire"
)

func main() {
	var (
		list        = flag.Bool("list", false, "List properties and methods and exit")
		layoutName  = flag.String("layout", wire.Native().String(), "Wire layout (unix/64, unix/32, windows/64, windows/32)")
		codePage    = flag.String("codepage", variant.DefaultCodePage.Name(), "ANSI code page")
		getProp     = flag.String("get", "", "Property to read")
		setProp     = flag.String("set", "", "Property assignment NAME=VALUE")
		callMethod  = flag.String("call", "", "Method to call")
		callArgs    = flag.String("args", "", "Method arguments (comma-separated)")
		verbose     = flag.Bool("v", false, "Log downgraded errors to stderr")
		interactive = flag.Bool("i", false, "Interactive mode with TUI")
	)
	flag.Parse()

	if err := run(*layoutName, *codePage, *getProp, *setProp, *callMethod, *callArgs, *list, *verbose, *interactive); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(layoutName, codePage, getProp, setProp, callMethod, callArgs string, listOnly, verbose, interactive bool) error {
	layout, err := parseLayout(layoutName)
	if err != nil {
		return err
	}
	cp, err := variant.LookupCodePage(codePage)
	if err != nil {
		return err
	}

	opts := []addin.Option{addin.WithCodePage(cp)}
	if verbose {
		log, err := zap.NewDevelopment()
		if err != nil {
			return fmt.Errorf("create logger: %w", err)
		}
		defer log.Sync()
		addin.SetLogger(log)
		library.SetLogger(log)
		memory.SetLogger(log)
		hostmem.SetLogger(log)
		opts = append(opts, addin.WithLogger(log))
	}

	s, err := newSession(layout, opts...)
	if err != nil {
		return err
	}
	defer s.Close()
	entries := catalog(s.obj.Dispatcher())
	name := variant.DecodeUTF16(s.obj.RegisterExtensionAs())

	action := getProp != "" || setProp != "" || callMethod != ""
	if interactive || (!action && !listOnly && term.IsTerminal(int(os.Stdout.Fd()))) {
		return runInteractive(s, entries, name, cp)
	}
	if listOnly || !action {
		printCatalog(os.Stdout, strings.TrimRight(name, "\x00"), entries)
		return nil
	}

	if setProp != "" {
		prop, text, ok := strings.Cut(setProp, "=")
		if !ok {
			return fmt.Errorf("-set wants NAME=VALUE, got %q", setProp)
		}
		if err := setProperty(s, entries, prop, text, cp); err != nil {
			return err
		}
	}
	if getProp != "" {
		v, err := getProperty(s, getProp)
		if err != nil {
			return err
		}
		fmt.Printf("%s = %s\n", getProp, formatValue(v, cp))
	}
	if callMethod != "" {
		var texts []string
		if callArgs != "" {
			texts = strings.Split(callArgs, ",")
		}
		result, out, err := callByName(s, entries, callMethod, texts, cp)
		if err != nil {
			return err
		}
		fmt.Printf("Result: %s\n", formatValue(result, cp))
		for i, v := range out {
			fmt.Printf("  arg%d: %s\n", i, formatValue(v, cp))
		}
	}
	return nil
}

func parseLayout(name string) (wire.Layout, error) {
	for _, l := range []wire.Layout{wire.Unix64, wire.Unix32, wire.Windows64, wire.Windows32} {
		if l.String() == name {
			return l, nil
		}
	}
	return wire.Layout{}, fmt.Errorf("unknown layout %q", name)
}

func lookup(entries []entry, kind entryKind, ord int32) (entry, bool) {
	for _, e := range entries {
		if e.kind == kind && e.ordinal == ord {
			return e, true
		}
	}
	return entry{}, false
}

func getProperty(s *session, name string) (variant.Value, error) {
	ord := s.find(name, false)
	if ord < 0 {
		return variant.Value{}, s.obj.LastError()
	}
	return s.get(ord)
}

func setProperty(s *session, entries []entry, name, text string, cp variant.CodePage) error {
	ord := s.find(name, false)
	if ord < 0 {
		return s.obj.LastError()
	}
	e, _ := lookup(entries, entryProperty, ord)
	v, err := parseValue(text, e.typ, cp)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	return s.set(ord, v)
}

func callByName(s *session, entries []entry, name string, texts []string, cp variant.CodePage) (variant.Value, []variant.Value, error) {
	ord := s.find(name, true)
	if ord < 0 {
		return variant.Value{}, nil, s.obj.LastError()
	}
	e, _ := lookup(entries, entryMethod, ord)
	args := make([]variant.Value, len(texts))
	for i, text := range texts {
		typ := component.TypeAny
		if i < len(e.params) {
			typ = e.params[i].Type
		}
		v, err := parseValue(strings.TrimSpace(text), typ, cp)
		if err != nil {
			return variant.Value{}, nil, fmt.Errorf("argument %d: %w", i, err)
		}
		args[i] = v
	}
	return s.call(ord, args)
}
