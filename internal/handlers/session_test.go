package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"
)

func TestSessionStore_Middleware(t *testing.T) {
	store := NewSessionStore()
	var seen []string
	handler := store.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = append(seen, SessionFrom(r.Context()).ID)
	}))

	// GIVEN a first request without a cookie
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	cookies := w.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != SessionCookie {
		t.Fatalf("expected a %s cookie, got %v", SessionCookie, cookies)
	}

	// WHEN the cookie is sent back
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookies[0])
	w = httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	// THEN the same session is used and no new cookie is issued
	if seen[0] != seen[1] {
		t.Errorf("expected the same session, got %s and %s", seen[0], seen[1])
	}
	if len(w.Result().Cookies()) != 0 {
		t.Error("expected no new cookie for a known session")
	}

	// WHEN an unknown cookie is sent
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: "forged"})
	handler.ServeHTTP(httptest.NewRecorder(), req)

	// THEN a fresh session replaces it
	if seen[2] == "forged" || seen[2] == seen[0] {
		t.Errorf("expected a fresh session, got %s", seen[2])
	}
	if store.Len() != 2 {
		t.Errorf("expected 2 sessions, got %d", store.Len())
	}
}

func TestSessionStore_EvictsIdleSessions(t *testing.T) {
	clock := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	store := NewSessionStoreWithTTL(time.Hour)
	store.now = func() time.Time { return clock }

	// GIVEN two sessions, one of which keeps being used
	active := store.New()
	idle := store.New()
	clock = clock.Add(30 * time.Minute)
	if _, ok := store.Get(active.ID); !ok {
		t.Fatal("expected the active session to be live")
	}

	// WHEN a new visitor arrives after the idle one expired
	clock = clock.Add(45 * time.Minute)
	store.New()

	// THEN only the idle session is swept
	if store.Len() != 2 {
		t.Errorf("expected 2 sessions after the sweep, got %d", store.Len())
	}
	if _, ok := store.Get(idle.ID); ok {
		t.Error("expected the idle session to be gone")
	}
	if _, ok := store.Get(active.ID); !ok {
		t.Error("expected the active session to survive")
	}

	// WHEN a known cookie comes back after the TTL
	clock = clock.Add(2 * time.Hour)

	// THEN the session is refused and dropped
	if _, ok := store.Get(active.ID); ok {
		t.Error("expected the expired session to be refused")
	}
	if store.Len() != 1 {
		t.Errorf("expected 1 session left, got %d", store.Len())
	}
}

func TestSession_MarkViewed(t *testing.T) {
	sess := &Session{}

	for _, slug := range []string{"a", "b", "a", "c"} {
		sess.MarkViewed(slug)
	}

	got := sess.Snapshot().Viewed
	want := []string{"c", "a", "b"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("position %d: expected %s, got %s", i, want[i], got[i])
		}
	}
}

func TestSession_MarkViewedLimit(t *testing.T) {
	sess := &Session{}
	for i := 0; i < recentlyViewedLimit+5; i++ {
		sess.MarkViewed(string(rune('a' + i)))
	}
	if got := len(sess.Snapshot().Viewed); got != recentlyViewedLimit {
		t.Errorf("expected %d viewed products, got %d", recentlyViewedLimit, got)
	}
}

func TestSession_NoticesAreTakenOnce(t *testing.T) {
	sess := &Session{}
	sess.AddNotice(NoticeMessage, "Купон успешно добавлен.")

	if got := sess.TakeNotices(); len(got) != 1 || string(got[0].Lines[0]) != "Купон успешно добавлен." {
		t.Fatalf("unexpected notices %v", got)
	}
	if got := sess.TakeNotices(); len(got) != 0 {
		t.Errorf("expected notices to be consumed, got %v", got)
	}
}

func TestSession_ConcurrentUpdates(t *testing.T) {
	sess := &Session{}
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			sess.AddNotice(NoticeInfo, "x")
		}()
	}
	wg.Wait()

	if got := len(sess.TakeNotices()); got != 50 {
		t.Errorf("expected 50 notices, got %d", got)
	}
}

func TestSessionFrom_WithoutMiddleware(t *testing.T) {
	if SessionFrom(context.Background()) == nil {
		t.Error("expected a detached session")
	}
}
