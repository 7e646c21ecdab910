package srp

import (
	"crypto/rand"
	"crypto/subtle"
	"math/big"

	"github.com/zerovault/core-go/internal/wipe"
)

// verifierSaltSize is the length of the registration salt.
const verifierSaltSize = 32

// Registration is the enrollment record the client sends to the server. It
// contains no password-equivalent material: v = g^x mod N is one-way.
type Registration struct {
	Salt     []byte
	Verifier []byte
}

// RegisterVerifier produces a fresh salt and verifier for the credentials.
// The private value x is wiped before returning.
func RegisterVerifier(identity, password string) (*Registration, error) {
	if identity == "" || password == "" {
		return nil, ErrInvalidCredentials
	}
	gr := Group2048()

	salt := make([]byte, verifierSaltSize)
	if _, err := rand.Read(salt); err != nil {
		return nil, err
	}

	x := computeX(identity, password, salt)
	v := new(big.Int).Exp(gr.G, x, gr.N)
	wipe.Big(x)

	return &Registration{
		Salt:     salt,
		Verifier: pad(v, gr.Size),
	}, nil
}

// Client is the password-holding side of one authentication attempt.
type Client struct {
	group    *Group
	identity string
	password string
}

// NewClient returns a Client for the credentials.
func NewClient(identity, password string) (*Client, error) {
	if identity == "" || password == "" {
		return nil, ErrInvalidCredentials
	}
	return &Client{group: Group2048(), identity: identity, password: password}, nil
}

// ClientSession is the client's view of an attempt after proving: the values
// to send to the server and the shared secret needed to check its answer.
type ClientSession struct {
	// ClientPublic is A, padded to the group size.
	ClientPublic []byte
	// ClientProof is M1.
	ClientProof []byte

	group  *Group
	a      *big.Int
	secret *big.Int
}

// Prove answers a server challenge. It draws the ephemeral a, computes
// A = g^a mod N, the shared secret S = (B − k·g^x)^(a + u·x) mod N and the
// proof M1. The ephemeral private value and x are wiped before returning.
func (c *Client) Prove(salt, serverPublic []byte) (*ClientSession, error) {
	if len(salt) == 0 {
		return nil, ErrInvalidVerifier
	}
	gr := c.group

	bPub := new(big.Int).SetBytes(serverPublic)
	if new(big.Int).Mod(bPub, gr.N).Sign() == 0 {
		return nil, ErrInvalidPublicKey
	}

	raw := make([]byte, ephemeralSize)
	if _, err := rand.Read(raw); err != nil {
		return nil, err
	}
	a := new(big.Int).SetBytes(raw)
	wipe.Bytes(raw)
	defer wipe.Big(a)

	aPub := new(big.Int).Exp(gr.G, a, gr.N)

	u := computeU(aPub, bPub)
	if u.Sign() == 0 {
		return nil, ErrInvalidPublicKey
	}

	x := computeX(c.identity, c.password, salt)
	defer wipe.Big(x)

	// S = (B − k·g^x)^(a + u·x) mod N
	gx := new(big.Int).Exp(gr.G, x, gr.N)
	kgx := new(big.Int).Mul(gr.K, gx)
	base := new(big.Int).Sub(bPub, kgx)
	base.Mod(base, gr.N)

	exp := new(big.Int).Mul(u, x)
	exp.Add(exp, a)

	secret := new(big.Int).Exp(base, exp, gr.N)
	wipe.Big(exp)

	m1 := computeM1(gr, c.identity, salt, aPub, bPub, secret)

	return &ClientSession{
		ClientPublic: pad(aPub, gr.Size),
		ClientProof:  m1,
		group:        gr,
		a:            aPub,
		secret:       secret,
	}, nil
}

// VerifyServerProof checks the server's M2, confirming the server holds the
// verifier and derived the same shared secret.
func (cs *ClientSession) VerifyServerProof(serverProof []byte) error {
	expected := computeM2(cs.a, cs.ClientProof, cs.secret)
	if subtle.ConstantTimeCompare(expected, serverProof) != 1 {
		return ErrAuthenticationFailed
	}
	return nil
}

// Destroy wipes the session's shared secret. The session is unusable after.
func (cs *ClientSession) Destroy() {
	wipe.Big(cs.secret)
}
