package zerovault

import (
	"time"

	"github.com/zerovault/core-go/internal/srp"
)

// DefaultSessionTTL bounds the lifetime of an outstanding SRP challenge.
const DefaultSessionTTL = srp.DefaultSessionTTL

// SRPRegistration is the enrollment record the client sends to the server:
// a random salt and the verifier v = g^x mod N. It contains no
// password-equivalent material.
type SRPRegistration = srp.Registration

// SRPChallenge is what the server sends to a client that wants to
// authenticate: the registration salt and the server's ephemeral public
// value B.
type SRPChallenge = srp.Challenge

// SRPServer is the verifier-holding side of SRP-6a. It never sees passwords.
// Safe for concurrent use.
type SRPServer = srp.Server

// SRPClient is the password-holding side of one authentication attempt.
type SRPClient = srp.Client

// SRPClientSession holds the client's proof and shared secret for one
// attempt. Destroy it once the server's proof has been checked.
type SRPClientSession = srp.ClientSession

// SRPSession is the server-side state of one outstanding challenge.
type SRPSession = srp.Session

// SessionStore holds outstanding SRP challenges keyed by identity.
// Implementations must be safe for concurrent use; see srp.SessionStore for
// the atomicity contract.
type SessionStore = srp.SessionStore

// SRPServerOption configures an SRPServer.
type SRPServerOption = srp.ServerOption

// WithSessionTTL overrides the default 300-second challenge lifetime.
func WithSessionTTL(ttl time.Duration) SRPServerOption {
	return srp.WithSessionTTL(ttl)
}

// WithSessionStore injects the store holding outstanding challenges, for
// callers that persist challenge state outside process memory.
func WithSessionStore(store SessionStore) SRPServerOption {
	return srp.WithSessionStore(store)
}

// NewMemorySessionStore returns the default in-memory SessionStore.
func NewMemorySessionStore() SessionStore {
	return srp.NewMemoryStore()
}

// RegisterVerifier produces a fresh salt and verifier for the credentials.
// Registration happens once, out of band; the password never leaves the
// client.
func RegisterVerifier(identity, password string) (*SRPRegistration, error) {
	return srp.RegisterVerifier(identity, password)
}

// NewSRPServer returns an SRP-6a server over the RFC 5054 2048-bit group.
func NewSRPServer(opts ...SRPServerOption) *SRPServer {
	return srp.NewServer(opts...)
}

// NewSRPClient returns an SRP-6a client for the credentials.
func NewSRPClient(identity, password string) (*SRPClient, error) {
	return srp.NewClient(identity, password)
}
