package srp

import (
	"crypto/sha256"
	"math/big"
)

// computeX derives the client's long-term private value
// x = H(salt ‖ H(identity ‖ ":" ‖ password)). Only the client ever holds x.
func computeX(identity, password string, salt []byte) *big.Int {
	inner := sha256.New()
	inner.Write([]byte(identity))
	inner.Write([]byte(":"))
	inner.Write([]byte(password))
	innerSum := inner.Sum(nil)

	outer := sha256.New()
	outer.Write(salt)
	outer.Write(innerSum)
	return new(big.Int).SetBytes(outer.Sum(nil))
}

// computeU derives the scrambling parameter u = H(A ‖ B).
func computeU(a, b *big.Int) *big.Int {
	h := sha256.New()
	h.Write(a.Bytes())
	h.Write(b.Bytes())
	return new(big.Int).SetBytes(h.Sum(nil))
}

// computeM1 builds the client proof
// M1 = H(H(N)⊕H(g) ‖ H(identity) ‖ salt ‖ A ‖ B ‖ S).
func computeM1(gr *Group, identity string, salt []byte, a, b, s *big.Int) []byte {
	hn := sha256.Sum256(gr.N.Bytes())
	hg := sha256.Sum256(gr.G.Bytes())
	for i := range hn {
		hn[i] ^= hg[i]
	}
	hi := sha256.Sum256([]byte(identity))

	h := sha256.New()
	h.Write(hn[:])
	h.Write(hi[:])
	h.Write(salt)
	h.Write(a.Bytes())
	h.Write(b.Bytes())
	h.Write(s.Bytes())
	return h.Sum(nil)
}

// computeM2 builds the server proof M2 = H(A ‖ M1 ‖ S).
func computeM2(a *big.Int, m1 []byte, s *big.Int) []byte {
	h := sha256.New()
	h.Write(a.Bytes())
	h.Write(m1)
	h.Write(s.Bytes())
	return h.Sum(nil)
}
