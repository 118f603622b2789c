package service

import (
	"sync"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/kirekcahs/codebrew-pos/internal/domain/entity"
	"github.com/kirekcahs/codebrew-pos/internal/domain/enum"
)

// Session is the live state of one signed-in terminal: the upstream
// session context plus the cart, catalog cache and receipt log bound to
// it. Cart and catalog mutations go through the session mutex, so they are
// atomic with respect to each other. The checkout gate is a separate
// atomic flag: cart and catalog operations stay available while a
// submission is in flight, but a second submission is rejected.
type Session struct {
	mu       sync.Mutex
	context  entity.SessionContext
	cart     *entity.Cart
	catalog  []entity.Product
	loaded   bool
	receipts []entity.Receipt
	checkout enum.CheckoutState

	processing atomic.Bool
}

// NewSession creates the state for a freshly authenticated session.
func NewSession(ctx entity.SessionContext, taxRate float64, clampNegativeTotal bool) *Session {
	return &Session{
		context: ctx,
		cart:    entity.NewCart(taxRate, clampNegativeTotal),
	}
}

// Context returns a copy of the session context.
func (s *Session) Context() entity.SessionContext {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.context
}

// SetBranch switches the session's active branch.
func (s *Session) SetBranch(id int64, name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.context.BranchID = id
	s.context.BranchName = name
}

// CheckoutState returns the current checkout state.
func (s *Session) CheckoutState() enum.CheckoutState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.checkout
}

func (s *Session) setCheckoutState(state enum.CheckoutState) {
	s.mu.Lock()
	s.checkout = state
	s.mu.Unlock()
}

// SessionRegistry holds every active terminal session in memory. Sessions
// do not survive a process restart; the upstream API is the durable store.
type SessionRegistry struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*Session
}

// NewSessionRegistry creates an empty registry.
func NewSessionRegistry() *SessionRegistry {
	return &SessionRegistry{sessions: make(map[uuid.UUID]*Session)}
}

// Put registers a session under its ID.
func (r *SessionRegistry) Put(sess *Session) {
	id := sess.Context().SessionID
	r.mu.Lock()
	r.sessions[id] = sess
	r.mu.Unlock()
}

// Get looks up a session by ID.
func (r *SessionRegistry) Get(id uuid.UUID) (*Session, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	sess, ok := r.sessions[id]
	return sess, ok
}

// Delete drops a session, ending it.
func (r *SessionRegistry) Delete(id uuid.UUID) {
	r.mu.Lock()
	delete(r.sessions, id)
	r.mu.Unlock()
}

// Count returns the number of active sessions.
func (r *SessionRegistry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}
