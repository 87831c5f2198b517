// Package notify holds the transient user-facing notifications (toasts).
//
// State is an ordered list; insertion order is display order. It changes only
// through actions passed to Reduce, which never mutates its input and returns
// a new State instead. Store wraps Reduce with a mutex so dispatches never
// interleave, and assigns each notification a ULID at creation.
//
// Removal comes in two forms:
//   - REMOVE_NOTIFICATION removes whatever sits at an index. An index outside
//     the list is rejected and the state is left untouched.
//   - DISMISS_NOTIFICATION removes by id. Dismissing an id that is already
//     gone is a no-op, which makes a late expiry timer harmless after a
//     manual dismissal.
//
// Store.Notify arms an expiry timer per notification that dismisses it by id
// after the store's TTL (DefaultTTL unless configured). Dismissing a
// notification by hand stops its timer. Subscribers hear about every change,
// which is how the terminal UI learns that a toast expired.
package notify
