package notify

import (
	"errors"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"
)

// Store owns the notification list for the lifetime of the process.
// Dispatch is serialised, so concurrent callers never observe a partial
// transition. Subscribers are called after every change, outside the lock.
type Store struct {
	mu          sync.Mutex
	state       State
	ttl         time.Duration
	logger      zerolog.Logger
	timers      map[ulid.ULID]*time.Timer
	subscribers map[int]func(State)
	nextSub     int
	closed      bool
}

// Option configures a Store.
type Option func(*Store)

// WithTTL overrides how long notifications stay visible.
func WithTTL(ttl time.Duration) Option {
	return func(s *Store) {
		if ttl > 0 {
			s.ttl = ttl
		}
	}
}

// WithLogger routes store diagnostics to logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(s *Store) {
		s.logger = logger.With().Str("component", "notify").Logger()
	}
}

// NewStore creates an empty store.
func NewStore(opts ...Option) *Store {
	s := &Store{
		ttl:         DefaultTTL,
		logger:      zerolog.Nop(),
		timers:      make(map[ulid.ULID]*time.Timer),
		subscribers: make(map[int]func(State)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// TTL returns how long each notification stays visible.
func (s *Store) TTL() time.Duration {
	return s.ttl
}

// Dispatch applies a and returns the new state.
//
// An out-of-range REMOVE_NOTIFICATION is logged and ignored. An unknown
// action kind is a wiring bug: it is logged at error level and returned,
// leaving the list unchanged. Removing a notification stops its expiry timer.
func (s *Store) Dispatch(a Action) (State, error) {
	s.mu.Lock()

	if a.Kind == KindAdd {
		if a.Notification.ID == (ulid.ULID{}) {
			a.Notification.ID = ulid.Make()
		}
		if a.Notification.CreatedAt.IsZero() {
			a.Notification.CreatedAt = time.Now()
		}
	}

	before := s.state
	next, err := Reduce(before, a)
	switch {
	case errors.Is(err, ErrIndexOutOfRange):
		s.logger.Warn().Err(err).Msg("ignoring notification removal")
		snap := s.snapshotLocked()
		s.mu.Unlock()
		return snap, nil
	case err != nil:
		s.logger.Error().Err(err).Str("kind", string(a.Kind)).Msg("rejected notification action")
		snap := s.snapshotLocked()
		s.mu.Unlock()
		return snap, err
	}

	if next.Len() == before.Len() && a.Kind != KindAdd {
		// Dismissal of an id that is already gone.
		snap := s.snapshotLocked()
		s.mu.Unlock()
		return snap, nil
	}

	s.state = next
	s.stopRemovedTimersLocked(before, next)
	s.logger.Debug().
		Str("kind", string(a.Kind)).
		Int("count", next.Len()).
		Msg("notification state changed")

	snap := s.snapshotLocked()
	subs := s.subscribersLocked()
	s.mu.Unlock()

	for _, fn := range subs {
		fn(snap)
	}
	return snap, nil
}

// stopRemovedTimersLocked stops the timers of notifications present in
// before but not in after.
func (s *Store) stopRemovedTimersLocked(before, after State) {
	for _, n := range before.Notifications {
		if after.IndexOf(n.ID) >= 0 {
			continue
		}
		if t, ok := s.timers[n.ID]; ok {
			t.Stop()
			delete(s.timers, n.ID)
		}
	}
}

// Notify appends a notification, schedules its expiry and returns it.
func (s *Store) Notify(text string, isSuccess bool) Notification {
	a := Add(text, isSuccess)
	// Add never fails.
	_, _ = s.Dispatch(a)
	s.ScheduleExpiry(a.Notification.ID)
	return a.Notification
}

// ScheduleExpiry dismisses id once TTL has elapsed. A manual dismissal before
// then cancels the timer. Scheduling an id that is not present, or one that
// already has a timer, does nothing.
func (s *Store) ScheduleExpiry(id ulid.ULID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed || s.state.IndexOf(id) < 0 {
		return
	}
	if _, ok := s.timers[id]; ok {
		return
	}
	s.timers[id] = time.AfterFunc(s.ttl, func() {
		_, _ = s.Dispatch(Dismiss(id))
	})
}

// Pending reports how many expiry timers are armed.
func (s *Store) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.timers)
}

// Dismiss removes the notification with id, if it is still present.
func (s *Store) Dismiss(id ulid.ULID) {
	_, _ = s.Dispatch(Dismiss(id))
}

// DismissLatest removes the most recently added notification. It reports
// whether anything was removed.
func (s *Store) DismissLatest() bool {
	s.mu.Lock()
	n := s.state.Len()
	var id ulid.ULID
	if n > 0 {
		id = s.state.Notifications[n-1].ID
	}
	s.mu.Unlock()

	if n == 0 {
		return false
	}
	s.Dismiss(id)
	return true
}

// Subscribe registers fn to receive the state after every change. The
// returned function unregisters it.
func (s *Store) Subscribe(fn func(State)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextSub
	s.nextSub++
	s.subscribers[id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subscribers, id)
	}
}

// Close stops every pending expiry timer. Notifications already in the list
// stay there.
func (s *Store) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closed = true
	for id, t := range s.timers {
		t.Stop()
		delete(s.timers, id)
	}
}

// State returns a copy of the current state.
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Len returns the number of notifications.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Len()
}

func (s *Store) snapshotLocked() State {
	out := make([]Notification, len(s.state.Notifications))
	copy(out, s.state.Notifications)
	return State{Notifications: out}
}

func (s *Store) subscribersLocked() []func(State) {
	out := make([]func(State), 0, len(s.subscribers))
	for _, fn := range s.subscribers {
		out = append(out, fn)
	}
	return out
}
