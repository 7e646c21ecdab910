package srp

import (
	"crypto/rand"
	"crypto/subtle"
	"math/big"
	"time"

	"github.com/google/uuid"

	"github.com/zerovault/core-go/internal/wipe"
)

// DefaultSessionTTL bounds the lifetime of an outstanding challenge.
const DefaultSessionTTL = 300 * time.Second

// ephemeralSize is the byte length of the random ephemeral private values.
const ephemeralSize = 32

// Server is the verifier-holding side of the protocol. It never sees
// passwords, only (identity, salt, verifier) tuples registered out of band.
//
// A Server is safe for concurrent use.
type Server struct {
	group *Group
	store SessionStore
	ttl   time.Duration
	now   func() time.Time
}

// ServerOption configures a Server.
type ServerOption func(*Server)

// WithSessionTTL overrides the challenge lifetime.
func WithSessionTTL(ttl time.Duration) ServerOption {
	return func(s *Server) {
		if ttl > 0 {
			s.ttl = ttl
		}
	}
}

// WithSessionStore injects the store holding outstanding challenges.
func WithSessionStore(store SessionStore) ServerOption {
	return func(s *Server) {
		if store != nil {
			s.store = store
		}
	}
}

// withClock overrides the time source. Test hook.
func withClock(now func() time.Time) ServerOption {
	return func(s *Server) {
		s.now = now
	}
}

// NewServer returns a Server over the RFC 5054 2048-bit group.
func NewServer(opts ...ServerOption) *Server {
	s := &Server{
		group: Group2048(),
		store: NewMemoryStore(),
		ttl:   DefaultSessionTTL,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Challenge is what the server sends to a client that wants to authenticate.
type Challenge struct {
	// SessionID identifies the challenge for diagnostics.
	SessionID string
	// Salt is the registration salt for the identity.
	Salt []byte
	// ServerPublic is B, padded to the group size.
	ServerPublic []byte
}

// NewChallenge starts an authentication attempt for identity using its stored
// salt and verifier. Any prior outstanding challenge for the identity is
// replaced and destroyed.
func (s *Server) NewChallenge(identity string, salt, verifier []byte) (*Challenge, error) {
	if identity == "" {
		return nil, ErrInvalidCredentials
	}
	if len(salt) == 0 || len(verifier) == 0 {
		return nil, ErrInvalidVerifier
	}
	v := new(big.Int).SetBytes(verifier)
	if v.Sign() == 0 || v.Cmp(s.group.N) >= 0 {
		return nil, ErrInvalidVerifier
	}

	// B = (k·v + g^b) mod N, rejecting the degenerate B ≡ 0 case.
	var b, bPub *big.Int
	for {
		raw := make([]byte, ephemeralSize)
		if _, err := rand.Read(raw); err != nil {
			return nil, err
		}
		b = new(big.Int).SetBytes(raw)
		wipe.Bytes(raw)

		gb := new(big.Int).Exp(s.group.G, b, s.group.N)
		kv := new(big.Int).Mul(s.group.K, v)
		bPub = kv.Add(kv, gb)
		bPub.Mod(bPub, s.group.N)
		if bPub.Sign() != 0 {
			break
		}
		wipe.Big(b)
	}

	now := s.now()
	session := &Session{
		ID:        uuid.NewString(),
		Identity:  identity,
		b:         b,
		B:         bPub,
		Verifier:  v,
		Salt:      append([]byte(nil), salt...),
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	}
	if replaced := s.store.Put(session); replaced != nil {
		replaced.destroy()
	}

	return &Challenge{
		SessionID:    session.ID,
		Salt:         append([]byte(nil), salt...),
		ServerPublic: pad(bPub, s.group.Size),
	}, nil
}

// Verify checks the client's proof M1 against the outstanding challenge for
// identity. The session is consumed whatever the outcome; a retry needs a new
// challenge. On success it returns the server proof M2.
func (s *Server) Verify(identity string, clientPublic, clientProof []byte) ([]byte, error) {
	if identity == "" {
		return nil, ErrInvalidCredentials
	}
	session, ok := s.store.Consume(identity)
	if !ok {
		return nil, ErrSessionNotFound
	}
	defer session.destroy()

	// Expiry is decided before any cryptographic work so a stale challenge
	// never reaches the proof comparison.
	if session.expired(s.now()) {
		return nil, ErrSessionExpired
	}

	a := new(big.Int).SetBytes(clientPublic)
	if new(big.Int).Mod(a, s.group.N).Sign() == 0 {
		return nil, ErrInvalidPublicKey
	}

	u := computeU(a, session.B)
	if u.Sign() == 0 {
		return nil, ErrInvalidPublicKey
	}

	// S = (A · v^u)^b mod N
	vu := new(big.Int).Exp(session.Verifier, u, s.group.N)
	base := vu.Mul(vu, a)
	base.Mod(base, s.group.N)
	secret := new(big.Int).Exp(base, session.b, s.group.N)
	defer wipe.Big(secret)

	expected := computeM1(s.group, identity, session.Salt, a, session.B, secret)
	if subtle.ConstantTimeCompare(expected, clientProof) != 1 {
		return nil, ErrAuthenticationFailed
	}
	return computeM2(a, expected, secret), nil
}
