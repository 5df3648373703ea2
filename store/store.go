// Package store connects to the data store and spools session summaries
// accepted during teardown until they can be delivered
package store

import (
	"encoding/binary"
	"errors"
	"io/fs"
	"time"

	"github.com/goccy/go-json"
	bolt "go.etcd.io/bbolt"
	berrors "go.etcd.io/bbolt/errors"

	"github.com/ayoisaiah/pagetime/internal/apperr"
	"github.com/ayoisaiah/pagetime/internal/osutil"
)

const (
	outboxBucket = "outbox"
	deadBucket   = "dead"
)

var (
	errPagetimeRunning = &apperr.Error{
		Message: "is pagetime already running? Only one instance can be active at a time",
	}
	errCorruptDeadEntry = &apperr.Error{
		Message: "rejected entry %d is unreadable",
	}
)

// Entry is a summary payload waiting to be delivered. Entries whose stored
// value cannot be decoded are returned with Corrupt set and the raw value in
// Body so that callers can set them aside.
type Entry struct {
	QueuedAt time.Time       `json:"queued_at"`
	Body     json.RawMessage `json:"body"`
	ID       uint64          `json:"-"`
	Reason   string          `json:"-"`
	Corrupt  bool            `json:"-"`
}

// deadLetter is how a rejected entry is kept in the dead bucket. Value holds
// the outbox value exactly as it was stored.
type deadLetter struct {
	RejectedAt time.Time `json:"rejected_at"`
	Reason     string    `json:"reason"`
	Value      []byte    `json:"value"`
}

// Client is a BoltDB database client.
type Client struct {
	*bolt.DB
	path string
}

// Enqueue stores a serialized summary. Entries are kept in the order they
// were queued.
func (c *Client) Enqueue(queuedAt time.Time, body []byte) error {
	value, err := json.Marshal(Entry{
		QueuedAt: queuedAt.UTC(),
		Body:     body,
	})
	if err != nil {
		return err
	}

	return c.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(outboxBucket))

		id, err := b.NextSequence()
		if err != nil {
			return err
		}

		return b.Put(itob(id), value)
	})
}

// Pending returns every queued entry, oldest first.
func (c *Client) Pending() ([]Entry, error) {
	var entries []Entry

	err := c.View(func(tx *bolt.Tx) error {
		cur := tx.Bucket([]byte(outboxBucket)).Cursor()

		for k, v := cur.First(); k != nil; k, v = cur.Next() {
			e := decodeEntry(v)
			e.ID = binary.BigEndian.Uint64(k)

			entries = append(entries, e)
		}

		return nil
	})

	return entries, err
}

// Remove deletes the entries with the given ids. Unknown ids are ignored.
func (c *Client) Remove(ids ...uint64) error {
	return c.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(outboxBucket))

		for _, id := range ids {
			if err := b.Delete(itob(id)); err != nil {
				return err
			}
		}

		return nil
	})
}

// Reject moves an entry out of the outbox into the dead bucket, recording
// why it could not be delivered. Unknown ids are ignored.
func (c *Client) Reject(rejectedAt time.Time, reason string, id uint64) error {
	return c.Update(func(tx *bolt.Tx) error {
		outbox := tx.Bucket([]byte(outboxBucket))

		key := itob(id)

		v := outbox.Get(key)
		if v == nil {
			return nil
		}

		value, err := json.Marshal(deadLetter{
			RejectedAt: rejectedAt.UTC(),
			Reason:     reason,
			Value:      v,
		})
		if err != nil {
			return err
		}

		if err := tx.Bucket([]byte(deadBucket)).Put(key, value); err != nil {
			return err
		}

		return outbox.Delete(key)
	})
}

// Dead returns every rejected entry, oldest first, with Reason set.
func (c *Client) Dead() ([]Entry, error) {
	var entries []Entry

	err := c.View(func(tx *bolt.Tx) error {
		cur := tx.Bucket([]byte(deadBucket)).Cursor()

		for k, v := cur.First(); k != nil; k, v = cur.Next() {
			id := binary.BigEndian.Uint64(k)

			var d deadLetter

			if err := json.Unmarshal(v, &d); err != nil {
				return errCorruptDeadEntry.Fmt(id).Wrap(err)
			}

			e := decodeEntry(d.Value)
			e.ID = id
			e.Reason = d.Reason

			entries = append(entries, e)
		}

		return nil
	})

	return entries, err
}

// Open reopens a connection that was previously closed.
func (c *Client) Open() error {
	db, err := openDB(c.path)
	if err != nil {
		return err
	}

	c.DB = db

	return nil
}

// decodeEntry never fails: a value that is not a valid entry comes back
// flagged as corrupt.
func decodeEntry(v []byte) Entry {
	var e Entry

	if err := json.Unmarshal(v, &e); err != nil {
		// bbolt values are only valid for the life of the transaction
		return Entry{
			Body:    append(json.RawMessage(nil), v...),
			Corrupt: true,
		}
	}

	return e
}

func itob(v uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, v)

	return b
}

// openDB creates or opens a database and locks it.
func openDB(pathToDB string) (*bolt.DB, error) {
	var fileMode fs.FileMode = osutil.FilePermission

	db, err := bolt.Open(
		pathToDB,
		fileMode,
		&bolt.Options{Timeout: 1 * time.Second},
	)
	if err != nil {
		if errors.Is(err, berrors.ErrDatabaseOpen) ||
			errors.Is(err, berrors.ErrTimeout) {
			return nil, errPagetimeRunning
		}

		return nil, err
	}

	return db, nil
}

// NewClient returns a wrapper to a BoltDB connection.
func NewClient(dbPath string) (*Client, error) {
	db, err := openDB(dbPath)
	if err != nil {
		return nil, err
	}

	// Create the necessary buckets for storing data if they do not exist already
	err = db.Update(func(tx *bolt.Tx) error {
		for _, name := range []string{outboxBucket, deadBucket} {
			if _, err := tx.CreateBucketIfNotExists([]byte(name)); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Client{
		DB:   db,
		path: dbPath,
	}, nil
}
