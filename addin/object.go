package addin

import (
	"encoding/binary"
	"fmt"
	"sync"

	"go.uber.org/zap"

	nativeapi "github.com/wippyai/nativeapi-go"
	"github.com/wippyai/nativeapi-go/component"
	"github.com/wippyai/nativeapi-go/dispatch"
	"github.com/wippyai/nativeapi-go/errors"
	"github.com/wippyai/nativeapi-go/memory"
	"github.com/wippyai/nativeapi-go/transcoder"
	"github.com/wippyai/nativeapi-go/variant"
	"github.com/wippyai/nativeapi-go/wire"
)

// Version is the interface version reported by GetInfo.
const Version = 2000

// Object is one add-in instance as the host sees it.
type Object struct {
	mu      sync.Mutex
	cfg     Config
	log     *zap.Logger
	desc    component.Description
	disp    *dispatch.Dispatcher
	dec     *transcoder.Decoder
	enc     *transcoder.Encoder
	name    string
	host    nativeapi.Host
	gw      *memory.Gateway
	locale  string
	uiLang  string
	lastErr error
}

// New wraps desc. The description's tables are fixed from here on.
func New(desc component.Description, opts ...Option) (*Object, error) {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.Layout == (wire.Layout{}) {
		cfg.Layout = wire.Native()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	disp, err := dispatch.New(desc, dispatch.WithCodePage(cfg.CodePage))
	if err != nil {
		return nil, err
	}

	name := cfg.RegistrationName
	if n, ok := desc.(component.Named); ok && name == "" {
		name = n.Name()
	}
	if name == "" {
		name = DefaultName
	}
	log := cfg.Logger
	if log == nil {
		log = Logger()
	}

	return &Object{
		cfg:  cfg,
		log:  log,
		desc: desc,
		disp: disp,
		dec:  transcoder.NewDecoder(cfg.Layout),
		enc:  transcoder.NewEncoder(cfg.Layout),
		name: name,
	}, nil
}

// Dispatcher returns the dispatcher behind o.
func (o *Object) Dispatcher() *dispatch.Dispatcher { return o.disp }

// Layout returns the wire layout o reads and writes.
func (o *Object) Layout() wire.Layout { return o.cfg.Layout }

// LastError returns the error behind the most recent false result.
func (o *Object) LastError() error {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.lastErr
}

// fail records err as the reason for a false result.
func (o *Object) fail(op string, ordinal int32, err error) {
	o.lastErr = err
	o.log.Debug("host call failed",
		zap.String("op", op),
		zap.Int32("ordinal", ordinal),
		zap.Error(err))
}

// rescue turns a panic raised below a host call into a failed result.
func (o *Object) rescue(op string, ordinal int32, reset func()) {
	if r := recover(); r != nil {
		o.fail(op, ordinal, errors.Corruption(fmt.Sprintf("%s: recovered panic: %v", op, r)))
		reset()
	}
}

func (o *Object) connected() (nativeapi.Host, *memory.Gateway, error) {
	if o.host == nil {
		return nil, nil, errors.NotInitialized("host connection")
	}
	return o.host, o.gw, nil
}

// Init connects o to the host. A second Init without Done fails.
func (o *Object) Init(host nativeapi.Host) (ok bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	defer o.rescue("Init", -1, func() {
		o.host, o.gw = nil, nil
		ok = false
	})

	if o.host != nil {
		o.fail("Init", -1, errors.AlreadyInitialized())
		return false
	}
	if host == nil {
		o.fail("Init", -1, errors.ConnectionFailed("nil host"))
		return false
	}
	if in, isInit := o.desc.(component.Initializer); isInit {
		if err := in.Init(host); err != nil {
			o.fail("Init", -1, errors.Wrap(errors.PhaseInit, errors.KindConnectionFailed, err, "description rejected the host"))
			return false
		}
	}
	o.host = host
	o.gw = memory.NewGateway(host)
	return true
}

// Done disconnects o from the host. It is a no-op on an object that is not
// initialized.
func (o *Object) Done() {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.host == nil {
		return
	}
	defer o.rescue("Done", -1, func() {})
	defer func() {
		o.host, o.gw = nil, nil
	}()
	if f, ok := o.desc.(component.Finalizer); ok {
		f.Done()
	}
}

// GetInfo returns the interface version.
func (o *Object) GetInfo() int32 { return Version }

// RegisterExtensionAs returns the extension name as UTF-16.
func (o *Object) RegisterExtensionAs() []uint16 {
	return variant.OSString(o.name, o.cfg.terminated())
}

// SetLocale records the host locale. It has no effect on dispatch.
func (o *Object) SetLocale(loc []uint16) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.locale = hostString(loc)
}

// SetUserInterfaceLanguageCode records the host UI language.
func (o *Object) SetUserInterfaceLanguageCode(lang []uint16) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.uiLang = hostString(lang)
}

// Locale returns the values passed to SetLocale and
// SetUserInterfaceLanguageCode.
func (o *Object) Locale() (locale, uiLanguage string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.locale, o.uiLang
}

// hostString decodes units up to the first zero.
func hostString(units []uint16) string {
	for i, u := range units {
		if u == 0 {
			units = units[:i]
			break
		}
	}
	return variant.DecodeUTF16(units)
}

// allocName hands s to the host as a zero-terminated UTF-16 buffer. The
// host reads the buffer as a C string, so the terminator is added here and
// not by the dispatcher's enumeration, which returns bare names.
func (o *Object) allocName(s string) (uint64, error) {
	host, gw, err := o.connected()
	if err != nil {
		return 0, err
	}
	units := variant.OSString(s, true)
	h, err := gw.AllocString(uint32(len(units)))
	if err != nil {
		return 0, err
	}
	buf := make([]byte, 2*len(units))
	for i, u := range units {
		binary.LittleEndian.PutUint16(buf[2*i:], u)
	}
	if err := host.Write(h.Addr, buf); err != nil {
		_ = gw.Free(h)
		return 0, err
	}
	gw.Disown(h)
	return h.Addr, nil
}
