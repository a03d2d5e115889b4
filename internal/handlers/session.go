package handlers

import (
	"context"
	"html/template"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/skillbox-qa/intershop/internal/models"
)

// SessionCookie carries the storefront session id
const SessionCookie = "wp_woocommerce_session_intershop"

// DefaultSessionTTL is how long an idle session is kept, matching the
// WooCommerce session expiry
const DefaultSessionTTL = 48 * time.Hour

const recentlyViewedLimit = 15

// State is what the storefront remembers about one visitor
type State struct {
	Cart       models.Cart
	Billing    models.Billing
	CustomerID string
	Username   string
	Viewed     []string
	Notices    []Notice
}

// Session is one visitor's state, safe for concurrent requests
type Session struct {
	ID string

	mu    sync.Mutex
	state State

	lastSeen atomic.Int64
}

// Update runs fn with exclusive access to the session state
func (s *Session) Update(fn func(st *State)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(&s.state)
}

// Snapshot returns a copy of the state that is safe to read without locking
func (s *Session) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.state
	st.Cart = s.state.Cart.Clone()
	st.Viewed = append([]string(nil), s.state.Viewed...)
	st.Notices = append([]Notice(nil), s.state.Notices...)
	return st
}

// AddNotice queues a notice for the next rendered page
func (s *Session) AddNotice(kind string, lines ...string) {
	n := Notice{Kind: kind}
	for _, l := range lines {
		n.Lines = append(n.Lines, template.HTML(l))
	}
	s.Update(func(st *State) { st.Notices = append(st.Notices, n) })
}

// TakeNotices returns and clears the queued notices
func (s *Session) TakeNotices() []Notice {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := s.state.Notices
	s.state.Notices = nil
	return out
}

// MarkViewed records slug as the most recently viewed product
func (s *Session) MarkViewed(slug string) {
	s.Update(func(st *State) {
		viewed := make([]string, 0, len(st.Viewed)+1)
		viewed = append(viewed, slug)
		for _, v := range st.Viewed {
			if v != slug && len(viewed) < recentlyViewedLimit {
				viewed = append(viewed, v)
			}
		}
		st.Viewed = viewed
	})
}

// SessionStore keeps sessions in memory, keyed by cookie value. Sessions
// idle for longer than the TTL are dropped.
type SessionStore struct {
	mu        sync.RWMutex
	sessions  map[string]*Session
	ttl       time.Duration
	now       func() time.Time
	lastSweep time.Time
}

// NewSessionStore creates an empty store with DefaultSessionTTL
func NewSessionStore() *SessionStore {
	return NewSessionStoreWithTTL(DefaultSessionTTL)
}

// NewSessionStoreWithTTL creates an empty store evicting sessions idle for ttl
func NewSessionStoreWithTTL(ttl time.Duration) *SessionStore {
	return &SessionStore{
		sessions: make(map[string]*Session),
		ttl:      ttl,
		now:      time.Now,
	}
}

// Get returns the live session with id, if any, and marks it as used
func (s *SessionStore) Get(id string) (*Session, bool) {
	s.mu.RLock()
	sess, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok {
		return nil, false
	}

	now := s.now()
	if s.expired(sess, now) {
		s.mu.Lock()
		delete(s.sessions, id)
		s.mu.Unlock()
		return nil, false
	}
	sess.lastSeen.Store(now.UnixNano())
	return sess, true
}

// New creates and stores a fresh session. Expired sessions are swept at
// most once per TTL.
func (s *SessionStore) New() *Session {
	now := s.now()
	sess := &Session{ID: uuid.NewString()}
	sess.lastSeen.Store(now.UnixNano())

	s.mu.Lock()
	defer s.mu.Unlock()
	if now.Sub(s.lastSweep) >= s.ttl {
		s.sweep(now)
	}
	s.sessions[sess.ID] = sess
	return sess
}

// sweep drops expired sessions; s.mu must be held
func (s *SessionStore) sweep(now time.Time) {
	for id, sess := range s.sessions {
		if s.expired(sess, now) {
			delete(s.sessions, id)
		}
	}
	s.lastSweep = now
}

func (s *SessionStore) expired(sess *Session, now time.Time) bool {
	return now.Sub(time.Unix(0, sess.lastSeen.Load())) > s.ttl
}

// Len returns the number of stored sessions
func (s *SessionStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

type sessionKey struct{}

// Middleware attaches the visitor's session to the request context,
// issuing a cookie for new visitors.
func (s *SessionStore) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var sess *Session
		if c, err := r.Cookie(SessionCookie); err == nil {
			sess, _ = s.Get(c.Value)
		}
		if sess == nil {
			sess = s.New()
			http.SetCookie(w, &http.Cookie{
				Name:     SessionCookie,
				Value:    sess.ID,
				Path:     "/",
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), sessionKey{}, sess)))
	})
}

// SessionFrom returns the session attached by Middleware. Outside the
// middleware it returns a detached session so handlers never see nil.
func SessionFrom(ctx context.Context) *Session {
	if sess, ok := ctx.Value(sessionKey{}).(*Session); ok {
		return sess
	}
	return &Session{}
}
