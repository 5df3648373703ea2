package backend_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ayoisaiah/pagetime/backend"
	"github.com/ayoisaiah/pagetime/internal/session"
)

const validBody = `{
	"subjectId": 7,
	"mediaKind": "TEXT",
	"startTime": "2024-03-01T10:00:00Z",
	"endTime": "2024-03-01T10:00:55Z",
	"durationSeconds": 45,
	"durationFormatted": "45s",
	"startLocation": "1",
	"endLocation": "3"
}`

func post(t *testing.T, h http.Handler, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/api/sessions", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Client-Id", "client-1")

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	return rec
}

func TestCreateSession(t *testing.T) {
	srv := backend.New(nil)
	h := srv.Router()

	rec := post(t, h, validBody)
	require.Equal(t, http.StatusCreated, rec.Code)

	got := srv.Received()
	require.Len(t, got, 1)
	assert.Equal(t, "client-1", got[0].ClientID)
	assert.Equal(t, int64(7), got[0].Summary.SubjectID)
	assert.Equal(t, session.KindText, got[0].Summary.MediaKind)
	assert.Equal(t, 45, got[0].Summary.DurationSeconds)
	assert.Nil(t, got[0].Summary.AuxiliaryID)
}

func TestCreateSessionRejectsBadInput(t *testing.T) {
	testCases := []struct {
		name string
		body string
	}{
		{name: "malformed json", body: `{"subjectId":`},
		{name: "missing subject", body: strings.Replace(validBody, `"subjectId": 7`, `"subjectId": 0`, 1)},
		{name: "unknown kind", body: strings.Replace(validBody, `"TEXT"`, `"VIDEO"`, 1)},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			srv := backend.New(nil)

			rec := post(t, srv.Router(), tc.body)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Empty(t, srv.Received())
		})
	}
}

func TestListSessions(t *testing.T) {
	srv := backend.New(nil)
	h := srv.Router()

	post(t, h, validBody)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/sessions", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var got []backend.Received

	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "3", got[0].Summary.EndLocation)
}
