package notify

import (
	"errors"
	"fmt"
	"time"

	"github.com/oklog/ulid/v2"
)

// DefaultTTL is how long a notification stays on screen.
const DefaultTTL = 3000 * time.Millisecond

// Kind names an action.
type Kind string

// Action kinds.
const (
	KindAdd     Kind = "ADD_NOTIFICATION"
	KindRemove  Kind = "REMOVE_NOTIFICATION"
	KindDismiss Kind = "DISMISS_NOTIFICATION"
)

// Reducer errors.
var (
	ErrUnknownAction   = errors.New("unknown action")
	ErrIndexOutOfRange = errors.New("notification index out of range")
)

// Notification is one transient message.
type Notification struct {
	ID        ulid.ULID
	Text      string
	IsSuccess bool
	CreatedAt time.Time
}

// Action is a state transition request. Build one with Add, Remove or Dismiss.
type Action struct {
	Kind Kind

	// Notification is the entry to append (KindAdd).
	Notification Notification

	// Index is the position to remove (KindRemove).
	Index int

	// ID is the notification to dismiss (KindDismiss).
	ID ulid.ULID
}

// Add returns an action appending a new notification with a fresh id.
func Add(text string, isSuccess bool) Action {
	return Action{
		Kind: KindAdd,
		Notification: Notification{
			ID:        ulid.Make(),
			Text:      text,
			IsSuccess: isSuccess,
			CreatedAt: time.Now(),
		},
	}
}

// Remove returns an action removing the notification at index.
func Remove(index int) Action {
	return Action{Kind: KindRemove, Index: index}
}

// Dismiss returns an action removing the notification with id.
func Dismiss(id ulid.ULID) Action {
	return Action{Kind: KindDismiss, ID: id}
}

// State is the ordered notification list.
type State struct {
	Notifications []Notification
}

// Len returns the number of notifications.
func (s State) Len() int {
	return len(s.Notifications)
}

// IndexOf returns the position of id, or -1.
func (s State) IndexOf(id ulid.ULID) int {
	for i, n := range s.Notifications {
		if n.ID == id {
			return i
		}
	}
	return -1
}

// Reduce applies a to state and returns the resulting state. The input is
// never modified. On error the returned state equals the input.
func Reduce(state State, a Action) (State, error) {
	switch a.Kind {
	case KindAdd:
		next := make([]Notification, len(state.Notifications), len(state.Notifications)+1)
		copy(next, state.Notifications)
		return State{Notifications: append(next, a.Notification)}, nil

	case KindRemove:
		if a.Index < 0 || a.Index >= len(state.Notifications) {
			return state, fmt.Errorf("%w: index %d, length %d", ErrIndexOutOfRange, a.Index, len(state.Notifications))
		}
		return State{Notifications: without(state.Notifications, a.Index)}, nil

	case KindDismiss:
		i := state.IndexOf(a.ID)
		if i < 0 {
			return state, nil
		}
		return State{Notifications: without(state.Notifications, i)}, nil

	default:
		return state, fmt.Errorf("%w: %q", ErrUnknownAction, a.Kind)
	}
}

// without returns a copy of list minus the element at i.
func without(list []Notification, i int) []Notification {
	next := make([]Notification, 0, len(list)-1)
	next = append(next, list[:i]...)
	return append(next, list[i+1:]...)
}
