// Package srp implements SRP-6a (RFC 5054) zero-knowledge password
// authentication over the 2048-bit safe-prime group.
//
// # Protocol
//
// Registration happens once, out of band: the client picks a random salt s,
// computes x = H(s ‖ H(identity ‖ ":" ‖ password)) and the verifier
// v = g^x mod N, and sends only (identity, s, v) to the server. The password
// and x never leave the client.
//
// At login the server draws an ephemeral b and answers with
// B = (k·v + g^b) mod N; the client draws a, sends A = g^a mod N, and both
// sides arrive at the shared secret S through genuine modular exponentiation.
// The client proves knowledge of the password with
// M1 = H(H(N)⊕H(g) ‖ H(identity) ‖ s ‖ A ‖ B ‖ S); the server answers a
// successful proof with M2 = H(A ‖ M1 ‖ S).
//
// # Sessions
//
// Server challenge state lives in a [SessionStore] owned by the [Server] —
// injectable, never a process-wide global. A session is keyed by identity,
// single-flight (a second challenge replaces the first), single-use (consumed
// exactly once, on verification, success or failure), and expires after a TTL
// (default 300s). Expiry is reported as ErrSessionExpired, deliberately
// distinct from a proof mismatch; the enclosing system depends on that
// distinction for operational diagnosis, at the documented cost of a minor
// enumeration signal.
//
// All comparisons of secret-derived values are constant-time, and private
// ephemerals, x and S are wiped on every exit path.
package srp
