package api

import (
	"encoding/json"
	"image"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ayusman/forcetrack/internal/store"
)

// newTestStore creates a new Store with a temporary database for testing.
func newTestStore(t *testing.T) *store.Store {
	t.Helper()

	s, err := store.New(filepath.Join(t.TempDir(), "journal.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() {
		s.Close()
	})

	return s
}

// seedSession journals a begin at (10,10) and moves to (12,11) and (50,50).
func seedSession(t *testing.T, s *store.Store) *store.Session {
	t.Helper()

	sess, err := s.Sessions().Begin("force", image.Pt(10, 10))
	if err != nil {
		t.Fatalf("Begin() error = %v", err)
	}
	for _, p := range []image.Point{image.Pt(12, 11), image.Pt(50, 50)} {
		if err := s.Sessions().Move(sess.ID, p); err != nil {
			t.Fatalf("Move() error = %v", err)
		}
	}
	return sess
}

func serve(h http.Handler, method, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestSessionHandler_List(t *testing.T) {
	s := newTestStore(t)
	handler := NewSessionHandler(s)

	rec := serve(handler, http.MethodGet, "/api/sessions")
	if rec.Code != http.StatusOK {
		t.Fatalf("empty list status = %d, want %d", rec.Code, http.StatusOK)
	}

	var empty listSessionsResponse
	if err := json.NewDecoder(rec.Body).Decode(&empty); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if empty.Sessions == nil || len(empty.Sessions) != 0 {
		t.Errorf("expected empty sessions array, got %v", empty.Sessions)
	}

	sess := seedSession(t, s)

	rec = serve(handler, http.MethodGet, "/api/sessions")
	var response listSessionsResponse
	if err := json.NewDecoder(rec.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(response.Sessions) != 1 {
		t.Fatalf("expected 1 session, got %d", len(response.Sessions))
	}

	got := response.Sessions[0]
	if got.ID != sess.ID || got.Moves != 2 {
		t.Errorf("session = %+v, want id %s with 2 moves", got, sess.ID)
	}
	if got.Initial != (pointResponse{X: 10, Y: 10}) || got.Last != (pointResponse{X: 50, Y: 50}) {
		t.Errorf("initial = %+v, last = %+v; want (10,10) and (50,50)", got.Initial, got.Last)
	}
}

func TestSessionHandler_Get(t *testing.T) {
	s := newTestStore(t)
	handler := NewSessionHandler(s)
	sess := seedSession(t, s)

	rec := serve(handler, http.MethodGet, "/api/sessions/"+sess.ID)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %s, want application/json", ct)
	}

	rec = serve(handler, http.MethodGet, "/api/sessions/missing")
	if rec.Code != http.StatusNotFound {
		t.Errorf("missing session status = %d, want %d", rec.Code, http.StatusNotFound)
	}
}

func TestSessionHandler_Events(t *testing.T) {
	s := newTestStore(t)
	handler := NewSessionHandler(s)
	sess := seedSession(t, s)

	rec := serve(handler, http.MethodGet, "/api/sessions/"+sess.ID+"/events")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}

	var response listEventsResponse
	if err := json.NewDecoder(rec.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	type brief struct {
		Kind  string
		Point pointResponse
	}
	var got []brief
	for _, e := range response.Events {
		got = append(got, brief{e.Kind, e.Point})
	}
	want := []brief{
		{"begin", pointResponse{10, 10}},
		{"move", pointResponse{12, 11}},
		{"move", pointResponse{50, 50}},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("events mismatch (-want +got):\n%s", diff)
	}

	rec = serve(handler, http.MethodGet, "/api/sessions/missing/events")
	if rec.Code != http.StatusNotFound {
		t.Errorf("missing session events status = %d, want %d", rec.Code, http.StatusNotFound)
	}
}

func TestSessionHandler_Delete(t *testing.T) {
	s := newTestStore(t)
	handler := NewSessionHandler(s)
	sess := seedSession(t, s)

	rec := serve(handler, http.MethodDelete, "/api/sessions/"+sess.ID)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusNoContent)
	}

	rec = serve(handler, http.MethodDelete, "/api/sessions/"+sess.ID)
	if rec.Code != http.StatusNotFound {
		t.Errorf("second delete status = %d, want %d", rec.Code, http.StatusNotFound)
	}
}

func TestSessionHandler_MethodNotAllowed(t *testing.T) {
	s := newTestStore(t)
	handler := NewSessionHandler(s)

	tests := []struct {
		method string
		target string
	}{
		{http.MethodPost, "/api/sessions"},
		{http.MethodDelete, "/api/sessions"},
		{http.MethodPut, "/api/sessions/abc"},
		{http.MethodPost, "/api/sessions/abc/events"},
	}

	for _, tt := range tests {
		rec := serve(handler, tt.method, tt.target)
		if rec.Code != http.StatusMethodNotAllowed {
			t.Errorf("%s %s status = %d, want %d", tt.method, tt.target, rec.Code, http.StatusMethodNotAllowed)
		}
	}
}
