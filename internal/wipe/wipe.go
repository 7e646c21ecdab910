// Package wipe provides best-effort zeroization of secret material.
//
// Go's garbage collector can keep copies of byte slices alive, so wiping
// cannot guarantee complete erasure; it shrinks the window during which key
// material is recoverable from a memory dump. All wiping goes through
// subtle.ConstantTimeCopy so the compiler cannot elide the writes.
package wipe

import (
	"crypto/subtle"
	"math/big"
)

// Bytes overwrites b with zeros in place.
func Bytes(b []byte) {
	if len(b) == 0 {
		return
	}
	zeros := make([]byte, len(b))
	subtle.ConstantTimeCopy(1, b, zeros)
}

// All wipes every slice in the list. Useful on error paths that hold
// several intermediate keys.
func All(slices ...[]byte) {
	for _, s := range slices {
		Bytes(s)
	}
}

// Big overwrites the internal words of a big.Int and resets it to zero.
// Used for SRP private ephemerals and shared secrets.
func Big(x *big.Int) {
	if x == nil {
		return
	}
	words := x.Bits()
	for i := range words {
		words[i] = 0
	}
	x.SetInt64(0)
}
