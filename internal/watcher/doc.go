// Package watcher turns raw filesystem events into coalesced change
// notifications.
//
// Two backends are available: fsnotify (default) and a polling backend for
// filesystems without native notification support. Both feed a per-path
// coalescer that merges bursts of events inside the debounce window into one
// Notice. Delivery is best effort: when the consumer is busy and the buffer is
// full, further notifications are dropped rather than queued.
package watcher
