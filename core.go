// Copyright (c) 2024-2026 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package threadrand

import (
	"encoding/binary"
	"math/bits"

	"golang.org/x/crypto/chacha20"
)

// CoreGenerator describes the deterministic keyed generator that produces the
// pseudorandom byte stream.  Implementations are cheap to advance and only
// expensive to rekey.  Generators created by this package use a ChaCha20
// keystream, but any keyed stream generator satisfies the contract.
type CoreGenerator interface {
	// Generate produces the next len(p) bytes of the stream into p.  The
	// internal state is only ever advanced by Generate or fully replaced by
	// Reseed.
	Generate(p []byte)

	// Reseed replaces the generator key with the provided key material.  The
	// replacement is all-or-nothing: partially applied key material is never
	// observable.  The key must be SeedSize bytes.
	Reseed(key []byte)

	// SeedSize returns the number of bytes of key material Reseed requires.
	SeedSize() int
}

// nonce implements a 12-byte little endian counter suitable for use as an
// incrementing ChaCha20 nonce.
type nonce [chacha20.NonceSize]byte

func (n *nonce) inc() {
	n0 := binary.LittleEndian.Uint32(n[0:4])
	n1 := binary.LittleEndian.Uint32(n[4:8])
	n2 := binary.LittleEndian.Uint32(n[8:12])

	var carry uint32
	n0, carry = bits.Add32(n0, 1, carry)
	n1, carry = bits.Add32(n1, 0, carry)
	n2, _ = bits.Add32(n2, 0, carry)

	binary.LittleEndian.PutUint32(n[0:4], n0)
	binary.LittleEndian.PutUint32(n[4:8], n1)
	binary.LittleEndian.PutUint32(n[8:12], n2)
}

// chaChaCore is a CoreGenerator producing a ChaCha20 keystream.  Each reseed
// installs a fresh cipher keyed by the provided key material mixed with the
// previous keystream and increments the nonce so that key/nonce pairs are
// never reused across reseeds.  Methods are not safe for concurrent access.
type chaChaCore struct {
	key    [chacha20.KeySize]byte
	nonce  nonce
	cipher chacha20.Cipher
}

// NewChaChaCore returns an unseeded ChaCha20 CoreGenerator.  The returned
// generator must be reseeded before any output is generated.
func NewChaChaCore() CoreGenerator {
	return new(chaChaCore)
}

// Generate produces the next len(p) bytes of the keystream into p.
//
// This is part of the CoreGenerator interface implementation.
func (c *chaChaCore) Generate(p []byte) {
	c.cipher.XORKeyStream(p, p)
}

// Reseed replaces the cipher with one keyed by the provided key material.
// The existing keystream is mixed over the fresh key so the new state never
// depends solely on a single entropy read once the generator has been keyed.
//
// This is part of the CoreGenerator interface implementation.
func (c *chaChaCore) Reseed(key []byte) {
	copy(c.key[:], key)
	c.cipher.XORKeyStream(c.key[:], c.key[:])

	// never errors with correct key and nonce sizes
	cipher, _ := chacha20.NewUnauthenticatedCipher(c.key[:], c.nonce[:])
	c.cipher = *cipher
	c.nonce.inc()
}

// SeedSize returns the ChaCha20 key size.
//
// This is part of the CoreGenerator interface implementation.
func (c *chaChaCore) SeedSize() int {
	return chacha20.KeySize
}
