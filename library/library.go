package library

import (
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/wippyai/nativeapi-go/addin"
	"github.com/wippyai/nativeapi-go/errors"
	"github.com/wippyai/nativeapi-go/variant"
)

type class struct {
	factory Factory
	name    string
}

// Library registers component classes and owns the objects created from
// them.
type Library struct {
	opts      []addin.Option
	classes   []class
	objects   table
	observers []Observer
	mu        sync.Mutex
	obsMu     sync.RWMutex
	closed    bool
}

// New returns an empty library. opts apply to every object it creates.
func New(opts ...addin.Option) *Library {
	return &Library{
		opts:    opts,
		objects: newTable(),
	}
}

// Register adds a class. Names are matched exactly and must be unique.
func (l *Library) Register(name string, f Factory) error {
	if name == "" || strings.ContainsAny(name, "|\x00") {
		return errors.InvalidConfig("invalid class name %q", name)
	}
	if f == nil {
		return errors.InvalidConfig("class %q: nil factory", name)
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return errors.LibraryClosed()
	}
	for _, c := range l.classes {
		if c.name == name {
			return errors.InvalidConfig("class %q already registered", name)
		}
	}
	l.classes = append(l.classes, class{name: name, factory: f})
	return nil
}

// Classes returns the registered class names in registration order.
func (l *Library) Classes() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	names := make([]string, len(l.classes))
	for i, c := range l.classes {
		names[i] = c.name
	}
	return names
}

// ClassNames returns the class names joined with '|' as UTF-16, without a
// terminator.
func (l *Library) ClassNames() []uint16 {
	return variant.EncodeUTF16(strings.Join(l.Classes(), "|"))
}

// CreateObject creates an object of the named class. The object is not
// initialized; the host calls Init on it.
func (l *Library) CreateObject(name string) (Handle, *addin.Object, error) {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return 0, nil, errors.LibraryClosed()
	}
	var factory Factory
	for _, c := range l.classes {
		if c.name == name {
			factory = c.factory
			break
		}
	}
	l.mu.Unlock()
	if factory == nil {
		return 0, nil, errors.ClassNotFound(name)
	}

	desc, err := factory()
	if err != nil {
		return 0, nil, errors.Wrap(errors.PhaseLibrary, errors.KindInvalidConfig, err, "create "+name)
	}
	opts := append([]addin.Option{addin.WithRegistrationName(name)}, l.opts...)
	obj, err := addin.New(desc, opts...)
	if err != nil {
		return 0, nil, err
	}

	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return 0, nil, errors.LibraryClosed()
	}
	h := l.objects.insert(name, obj)
	l.mu.Unlock()

	Logger().Debug("object created", zap.String("class", name), zap.Uint32("handle", uint32(h)))
	l.notify(Event{Type: EventCreated, Handle: h, Class: name, Object: obj})
	return h, obj, nil
}

// Object returns the live object behind h.
func (l *Library) Object(h Handle) (*addin.Object, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	e, ok := l.objects.get(h)
	return e.obj, ok
}

// DestroyObject shuts the object down with Done and releases h.
func (l *Library) DestroyObject(h Handle) error {
	l.mu.Lock()
	e, ok := l.objects.remove(h)
	l.mu.Unlock()
	if !ok {
		return errors.InvalidHandle(uint32(h))
	}

	e.obj.Done()
	Logger().Debug("object destroyed", zap.String("class", e.class), zap.Uint32("handle", uint32(h)))
	l.notify(Event{Type: EventDestroyed, Handle: h, Class: e.class, Object: e.obj})
	return nil
}

// Len returns the number of live objects.
func (l *Library) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.objects.len()
}

// Subscribe adds an observer for lifecycle events.
func (l *Library) Subscribe(o Observer) {
	l.obsMu.Lock()
	defer l.obsMu.Unlock()
	l.observers = append(l.observers, o)
}

// Unsubscribe removes an observer.
func (l *Library) Unsubscribe(o Observer) {
	l.obsMu.Lock()
	defer l.obsMu.Unlock()
	for i, obs := range l.observers {
		if obs == o {
			l.observers = append(l.observers[:i], l.observers[i+1:]...)
			return
		}
	}
}

// Close destroys every live object and rejects further creation.
func (l *Library) Close() error {
	l.mu.Lock()
	l.closed = true
	var handles []Handle
	l.objects.each(func(h Handle, _ entry) bool {
		handles = append(handles, h)
		return true
	})
	l.mu.Unlock()

	for _, h := range handles {
		if err := l.DestroyObject(h); err != nil {
			return err
		}
	}
	return nil
}

func (l *Library) notify(e Event) {
	l.obsMu.RLock()
	defer l.obsMu.RUnlock()
	for _, o := range l.observers {
		o.OnObjectEvent(e)
	}
}
