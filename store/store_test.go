package store

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	bolt "go.etcd.io/bbolt"
)

func newTestClient(t *testing.T) *Client {
	t.Helper()

	c, err := NewClient(filepath.Join(t.TempDir(), "pagetime.db"))
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = c.Close()
	})

	return c
}

func TestOutboxRoundTrip(t *testing.T) {
	c := newTestClient(t)

	queued := time.Date(2024, time.March, 1, 10, 0, 0, 0, time.UTC)

	require.NoError(t, c.Enqueue(queued, []byte(`{"subjectId":1}`)))
	require.NoError(t, c.Enqueue(queued.Add(time.Second), []byte(`{"subjectId":2}`)))

	entries, err := c.Pending()
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, uint64(1), entries[0].ID)
	assert.JSONEq(t, `{"subjectId":1}`, string(entries[0].Body))
	assert.True(t, queued.Equal(entries[0].QueuedAt))
	assert.JSONEq(t, `{"subjectId":2}`, string(entries[1].Body))

	require.NoError(t, c.Remove(entries[0].ID, 99))

	entries, err = c.Pending()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, uint64(2), entries[0].ID)
}

func TestSecondInstanceIsRejected(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pagetime.db")

	c, err := NewClient(path)
	require.NoError(t, err)

	defer c.Close()

	_, err = NewClient(path)
	assert.ErrorIs(t, err, errPagetimeRunning)
}

func TestReopen(t *testing.T) {
	c := newTestClient(t)

	require.NoError(t, c.Enqueue(time.Now(), []byte(`{}`)))
	require.NoError(t, c.Close())
	require.NoError(t, c.Open())

	entries, err := c.Pending()
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestPendingFlagsUnreadableEntry(t *testing.T) {
	c := newTestClient(t)

	queued := time.Date(2024, time.March, 1, 10, 0, 0, 0, time.UTC)

	require.NoError(t, c.Enqueue(queued, []byte(`{"subjectId":1}`)))
	require.NoError(t, c.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(outboxBucket))

		id, err := b.NextSequence()
		if err != nil {
			return err
		}

		return b.Put(itob(id), []byte("{truncated"))
	}))
	require.NoError(t, c.Enqueue(queued, []byte(`{"subjectId":3}`)))

	entries, err := c.Pending()
	require.NoError(t, err)
	require.Len(t, entries, 3)

	assert.False(t, entries[0].Corrupt)
	assert.True(t, entries[1].Corrupt)
	assert.Equal(t, uint64(2), entries[1].ID)
	assert.Equal(t, "{truncated", string(entries[1].Body))
	assert.False(t, entries[2].Corrupt)
}

func TestReject(t *testing.T) {
	c := newTestClient(t)

	queued := time.Date(2024, time.March, 1, 10, 0, 0, 0, time.UTC)

	require.NoError(t, c.Enqueue(queued, []byte(`{"subjectId":1}`)))
	require.NoError(t, c.Enqueue(queued, []byte(`{"subjectId":2}`)))

	require.NoError(t, c.Reject(queued.Add(time.Hour), "status 400", 1))
	require.NoError(t, c.Reject(queued, "unknown", 42))

	entries, err := c.Pending()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, uint64(2), entries[0].ID)

	dead, err := c.Dead()
	require.NoError(t, err)
	require.Len(t, dead, 1)
	assert.Equal(t, uint64(1), dead[0].ID)
	assert.Equal(t, "status 400", dead[0].Reason)
	assert.True(t, queued.Equal(dead[0].QueuedAt))
	assert.JSONEq(t, `{"subjectId":1}`, string(dead[0].Body))
}
