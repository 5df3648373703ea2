package dispatch_test

import (
	"bytes"
	"context"
	"encoding/binary"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	bolt "go.etcd.io/bbolt"

	"github.com/ayoisaiah/pagetime/backend"
	"github.com/ayoisaiah/pagetime/internal/dispatch"
	"github.com/ayoisaiah/pagetime/internal/session"
	"github.com/ayoisaiah/pagetime/internal/testutil"
	"github.com/ayoisaiah/pagetime/store"
)

func textSummary() session.Summary {
	return session.Summary{
		SubjectID:         7,
		MediaKind:         session.KindText,
		StartTime:         testutil.Epoch,
		EndTime:           testutil.Epoch.Add(55 * time.Second),
		DurationSeconds:   45,
		DurationFormatted: "45s",
		StartLocation:     "1 (0.0%)",
		EndLocation:       "3 (1.2%)",
	}
}

func audiobookSummary() session.Summary {
	aux := int64(4)

	return session.Summary{
		SubjectID:         7,
		MediaKind:         session.KindAudiobook,
		AuxiliaryID:       &aux,
		StartTime:         testutil.Epoch,
		EndTime:           testutil.Epoch.Add(2 * time.Minute),
		DurationSeconds:   100,
		DurationFormatted: "1m 40s",
		StartLocation:     "90500",
		EndLocation:       "1:3000",
	}
}

type payloadTest struct {
	name    string
	summary session.Summary
	t       *testing.T
}

func (p payloadTest) Output() ([]byte, string) {
	b, err := dispatch.Encode(p.summary)
	require.NoError(p.t, err)

	return b, p.name
}

func TestEncode(t *testing.T) {
	testCases := []payloadTest{
		{name: "text_payload", summary: textSummary()},
		{name: "audiobook_payload", summary: audiobookSummary()},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			tc.t = t
			testutil.CompareGoldenFile(t, tc)
		})
	}
}

func TestEncodeRejectsInvalidSummary(t *testing.T) {
	s := textSummary()
	s.SubjectID = 0

	_, err := dispatch.Encode(s)
	assert.Error(t, err)
}

func newBackend(t *testing.T) (*backend.Server, *httptest.Server) {
	t.Helper()

	srv := backend.New(nil)
	ts := httptest.NewServer(srv.Router())
	t.Cleanup(ts.Close)

	return srv, ts
}

func newOutbox(t *testing.T) *store.Client {
	t.Helper()

	db, err := store.NewClient(filepath.Join(t.TempDir(), "outbox.db"))
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = db.Close()
	})

	return db
}

func TestSend(t *testing.T) {
	srv, ts := newBackend(t)

	c := dispatch.New(ts.URL+"/api/", dispatch.WithClientID("reader-1"))
	assert.Equal(t, ts.URL+"/api/sessions", c.Endpoint())

	require.NoError(t, c.Send(context.Background(), audiobookSummary()))

	got := srv.Received()
	require.Len(t, got, 1)
	assert.Equal(t, "reader-1", got[0].ClientID)
	assert.Equal(t, audiobookSummary().EndLocation, got[0].Summary.EndLocation)
	require.NotNil(t, got[0].Summary.AuxiliaryID)
	assert.Equal(t, int64(4), *got[0].Summary.AuxiliaryID)
}

func TestSendReportsHTTPFailure(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer ts.Close()

	c := dispatch.New(ts.URL)

	err := c.Send(context.Background(), textSummary())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "503")
}

func TestBeaconSpoolsToOutbox(t *testing.T) {
	var hits atomic.Int32

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusCreated)
	}))
	defer ts.Close()

	db := newOutbox(t)
	clk := testutil.NewClock()

	c := dispatch.New(ts.URL, dispatch.WithOutbox(db), dispatch.WithClock(clk))

	assert.True(t, c.Beacon(textSummary()))
	assert.Zero(t, hits.Load())

	entries, err := db.Pending()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.True(t, clk.Now().Equal(entries[0].QueuedAt))

	want, err := dispatch.Encode(textSummary())
	require.NoError(t, err)
	assert.JSONEq(t, string(want), string(entries[0].Body))
}

func TestBeaconWithoutOutbox(t *testing.T) {
	srv, ts := newBackend(t)

	c := dispatch.New(ts.URL+"/api", dispatch.WithBeaconTimeout(time.Second))

	assert.True(t, c.Beacon(textSummary()))
	assert.Len(t, srv.Received(), 1)
}

func TestBeaconRejectsInvalidSummary(t *testing.T) {
	c := dispatch.New("http://127.0.0.1:0", dispatch.WithOutbox(newOutbox(t)))

	s := textSummary()
	s.MediaKind = "VIDEO"

	assert.False(t, c.Beacon(s))
}

func TestDrain(t *testing.T) {
	srv, ts := newBackend(t)
	db := newOutbox(t)

	c := dispatch.New(ts.URL+"/api", dispatch.WithOutbox(db))

	require.True(t, c.Beacon(textSummary()))
	require.True(t, c.Beacon(audiobookSummary()))

	n, err := c.Drain(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	got := srv.Received()
	require.Len(t, got, 2)
	assert.Equal(t, session.KindText, got[0].Summary.MediaKind)
	assert.Equal(t, session.KindAudiobook, got[1].Summary.MediaKind)

	entries, err := db.Pending()
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestDrainStopsOnTransientFailure(t *testing.T) {
	testCases := []struct {
		name   string
		status int
	}{
		{name: "bad gateway", status: http.StatusBadGateway},
		{name: "throttled", status: http.StatusTooManyRequests},
		{name: "request timeout", status: http.StatusRequestTimeout},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tc.status)
			}))
			defer ts.Close()

			db := newOutbox(t)

			c := dispatch.New(ts.URL, dispatch.WithOutbox(db))

			require.True(t, c.Beacon(textSummary()))
			require.True(t, c.Beacon(audiobookSummary()))

			n, err := c.Drain(context.Background())
			require.Error(t, err)
			assert.Zero(t, n)

			entries, err := db.Pending()
			require.NoError(t, err)
			assert.Len(t, entries, 2)

			dead, err := db.Dead()
			require.NoError(t, err)
			assert.Empty(t, dead)
		})
	}
}

func TestDrainSkipsRejectedEntry(t *testing.T) {
	var accepted atomic.Int32

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, err := io.ReadAll(r.Body)
		if err != nil || bytes.Contains(b, []byte(`"subjectId":7`)) {
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		accepted.Add(1)
		w.WriteHeader(http.StatusCreated)
	}))
	defer ts.Close()

	db := newOutbox(t)

	c := dispatch.New(ts.URL, dispatch.WithOutbox(db))

	good := textSummary()
	good.SubjectID = 8

	require.True(t, c.Beacon(textSummary()))
	require.True(t, c.Beacon(good))

	n, err := c.Drain(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	n, err = c.Drain(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)

	assert.Equal(t, int32(1), accepted.Load())

	entries, err := db.Pending()
	require.NoError(t, err)
	assert.Empty(t, entries)

	dead, err := db.Dead()
	require.NoError(t, err)
	require.Len(t, dead, 1)
	assert.Contains(t, dead[0].Reason, "400")
	assert.Contains(t, string(dead[0].Body), `"subjectId":7`)
}

func TestDrainSetsAsideUnreadableEntry(t *testing.T) {
	srv, ts := newBackend(t)
	db := newOutbox(t)

	require.NoError(t, db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte("outbox"))

		id, err := b.NextSequence()
		if err != nil {
			return err
		}

		key := make([]byte, 8)
		binary.BigEndian.PutUint64(key, id)

		return b.Put(key, []byte("not json"))
	}))

	c := dispatch.New(ts.URL, dispatch.WithOutbox(db))

	require.True(t, c.Beacon(audiobookSummary()))

	n, err := c.Drain(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Len(t, srv.Received(), 1)

	dead, err := db.Dead()
	require.NoError(t, err)
	require.Len(t, dead, 1)
	assert.True(t, dead[0].Corrupt)
	assert.Equal(t, "not json", string(dead[0].Body))
}

func TestDrainWithoutOutbox(t *testing.T) {
	_, err := dispatch.New("http://127.0.0.1:0").Drain(context.Background())
	assert.Error(t, err)
}
