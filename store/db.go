package store

import "time"

// Outbox is the storage interface for summaries awaiting delivery.
type Outbox interface {
	// Enqueue stores a serialized summary
	Enqueue(queuedAt time.Time, body []byte) error
	// Pending returns the queued entries, oldest first
	Pending() ([]Entry, error)
	// Remove deletes delivered entries
	Remove(ids ...uint64) error
	// Reject sets aside an entry that can never be delivered
	Reject(rejectedAt time.Time, reason string, id uint64) error
}

var _ Outbox = (*Client)(nil)
