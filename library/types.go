package library

import (
	"github.com/wippyai/nativeapi-go/addin"
	"github.com/wippyai/nativeapi-go/component"
)

// Handle is an opaque reference to a live object.
// Handle 0 is reserved and always invalid.
type Handle uint32

// EventType is the kind of lifecycle notification.
type EventType uint8

const (
	EventCreated EventType = iota
	EventDestroyed
)

func (t EventType) String() string {
	switch t {
	case EventCreated:
		return "created"
	case EventDestroyed:
		return "destroyed"
	default:
		return "unknown"
	}
}

// Event is an object lifecycle notification.
type Event struct {
	Object *addin.Object
	Class  string
	Handle Handle
	Type   EventType
}

// Observer receives lifecycle notifications.
type Observer interface {
	OnObjectEvent(Event)
}

// Factory creates the description behind a new object.
type Factory func() (component.Description, error)
