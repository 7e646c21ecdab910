package srp

import (
	"crypto/sha256"
	"math/big"
	"sync"
)

// rfc5054Group2048 is the 2048-bit safe prime from RFC 5054 Appendix A.
// Client and server must use the same group; the verifier is bound to it.
const rfc5054Group2048 = "AC6BDB41324A9A9BF166DE5E1389582FAF72B6651987EE07FC3192943DB56050" +
	"A37329CBB4A099ED8193E0757767A13DD52312AB4B03310DCD7F48A9DA04FD50" +
	"E8083969EDB767B0CF6095179A163AB3661A05FBD5FAAAE82918A9962F0B93B8" +
	"55F97993EC975EEAA80D740ADBF4FF747359D041D5C33EA71D281E446B14773B" +
	"CA97B43A23FB801676BD207A436C6481F1D2B9078717461A5B9D32E688F87748" +
	"544523B524B0D57D5EA77A2775D2ECFA032CFBDBF52FB3786160279004E57AE6" +
	"AF874E7303CE53299CCC041C7BC308D82A5698F3A8D0C38271AE35F8E9DBFBB6" +
	"94B5C803D89F7AE435DE236D525F54759B65E372FCD68EF20FA7111F9E4AFF73"

// Group holds the SRP group parameters and derived constants.
type Group struct {
	// N is the safe prime.
	N *big.Int
	// G is the generator.
	G *big.Int
	// K is the SRP-6a multiplier k = H(N ‖ PAD(g)).
	K *big.Int
	// Size is the byte length of N; ephemeral values are padded to it.
	Size int
}

var group2048 = sync.OnceValue(func() *Group {
	n, ok := new(big.Int).SetString(rfc5054Group2048, 16)
	if !ok {
		panic("srp: malformed group constant")
	}
	g := big.NewInt(2)

	size := len(n.Bytes())
	h := sha256.New()
	h.Write(n.Bytes())
	h.Write(pad(g, size))
	k := new(big.Int).SetBytes(h.Sum(nil))

	return &Group{N: n, G: g, K: k, Size: size}
})

// Group2048 returns the RFC 5054 2048-bit group. The constant is parsed once
// per process.
func Group2048() *Group {
	return group2048()
}

// pad left-pads the big-endian encoding of x to size bytes.
func pad(x *big.Int, size int) []byte {
	return x.FillBytes(make([]byte, size))
}
