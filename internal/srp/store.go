package srp

import (
	"math/big"
	"sync"
	"time"

	"github.com/zerovault/core-go/internal/wipe"
)

// Session is the server-side state of one outstanding challenge. It exists
// from challenge issuance until it is consumed by verification or expires.
type Session struct {
	// ID uniquely identifies the session.
	ID string
	// Identity is the account the challenge was issued for.
	Identity string
	// b is the server's ephemeral private value.
	b *big.Int
	// B is the server's ephemeral public value.
	B *big.Int
	// Verifier is the stored verifier the challenge was built from.
	Verifier *big.Int
	// Salt is the registration salt echoed to the client.
	Salt []byte
	// CreatedAt and ExpiresAt bound the session's lifetime.
	CreatedAt time.Time
	ExpiresAt time.Time
}

// expired reports whether the session outlived its TTL at instant now.
func (s *Session) expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}

// destroy wipes the session's secret-derived values.
func (s *Session) destroy() {
	wipe.Big(s.b)
	wipe.Big(s.Verifier)
}

// SessionStore holds outstanding challenges keyed by identity. Implementations
// must be safe for concurrent use and must make Put and Consume atomic:
// replacing a session never interleaves with a verification that has already
// consumed it.
//
// The store is owned by a [Server] and injectable, so lifetime and test
// isolation are explicit; there is no process-wide table.
type SessionStore interface {
	// Put inserts the session for its identity, replacing any prior session
	// for that identity. The replaced session, if any, is returned so the
	// caller can destroy it.
	Put(session *Session) (replaced *Session)
	// Consume atomically removes and returns the session for identity.
	// A session can be consumed exactly once.
	Consume(identity string) (*Session, bool)
	// Delete removes the session for identity, if present.
	Delete(identity string)
}

// memoryStore is the default SessionStore: a mutex-guarded map.
type memoryStore struct {
	mu       sync.Mutex
	sessions map[string]*Session
}

// NewMemoryStore returns an in-memory SessionStore.
func NewMemoryStore() SessionStore {
	return &memoryStore{sessions: make(map[string]*Session)}
}

func (m *memoryStore) Put(session *Session) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	replaced := m.sessions[session.Identity]
	m.sessions[session.Identity] = session
	return replaced
}

func (m *memoryStore) Consume(identity string) (*Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	session, ok := m.sessions[identity]
	if ok {
		delete(m.sessions, identity)
	}
	return session, ok
}

func (m *memoryStore) Delete(identity string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, identity)
}
