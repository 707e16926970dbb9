package addin

import (
	"go.uber.org/zap"

	"github.com/wippyai/nativeapi-go/errors"
	"github.com/wippyai/nativeapi-go/variant"
	"github.com/wippyai/nativeapi-go/wire"
)

// Terminator selects whether RegisterExtensionAs appends a zero unit.
type Terminator uint8

const (
	// TerminatorAuto follows the layout: terminated on Windows targets only.
	TerminatorAuto Terminator = iota
	TerminatorAlways
	TerminatorNever
)

func (t Terminator) String() string {
	switch t {
	case TerminatorAuto:
		return "auto"
	case TerminatorAlways:
		return "always"
	case TerminatorNever:
		return "never"
	default:
		return "unknown"
	}
}

// DefaultName is used when neither the description nor the options name
// the extension.
const DefaultName = "AddIn"

// Config holds the settings of an Object.
type Config struct {
	// Logger receives downgraded errors. Nil means the package logger.
	Logger *zap.Logger

	// Layout is the host's wire record layout. Zero means wire.Native().
	Layout wire.Layout

	// CodePage converts between String and AnsiString values.
	CodePage variant.CodePage

	// RegistrationName is returned by RegisterExtensionAs. Empty means the
	// description's own name, then DefaultName.
	RegistrationName string

	NameTerminator Terminator
}

// DefaultConfig returns the configuration for the native layout.
func DefaultConfig() Config {
	return Config{
		Layout:   wire.Native(),
		CodePage: variant.DefaultCodePage,
	}
}

// Validate checks the configuration.
func (c Config) Validate() error {
	if err := c.Layout.Validate(); err != nil {
		return err
	}
	if c.NameTerminator > TerminatorNever {
		return errors.InvalidConfig("unknown name terminator %d", c.NameTerminator)
	}
	for _, r := range c.RegistrationName {
		if r == 0 || r == '|' {
			return errors.InvalidConfig("registration name %q contains %q", c.RegistrationName, r)
		}
	}
	return nil
}

func (c Config) terminated() bool {
	switch c.NameTerminator {
	case TerminatorAlways:
		return true
	case TerminatorNever:
		return false
	default:
		return c.Layout.Terminated()
	}
}

// Option configures an Object.
type Option func(*Config)

// WithLogger sets the logger for downgraded errors.
func WithLogger(l *zap.Logger) Option {
	return func(c *Config) {
		c.Logger = l
	}
}

// WithLayout sets the wire record layout of the host.
func WithLayout(l wire.Layout) Option {
	return func(c *Config) {
		c.Layout = l
	}
}

// WithCodePage sets the ANSI code page.
func WithCodePage(cp variant.CodePage) Option {
	return func(c *Config) {
		c.CodePage = cp
	}
}

// WithRegistrationName overrides the name reported to the host.
func WithRegistrationName(name string) Option {
	return func(c *Config) {
		c.RegistrationName = name
	}
}

// WithNameTerminator overrides the terminator policy of RegisterExtensionAs.
func WithNameTerminator(t Terminator) Option {
	return func(c *Config) {
		c.NameTerminator = t
	}
}
