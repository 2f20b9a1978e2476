// Copyright (c) 2024-2026 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package threadrand

import (
	"fmt"
)

// reseedThreshold is the number of bytes a generator may emit under a single
// key before it is rekeyed from the entropy source.  The threshold is large
// enough that the reseed cost, which is comparable to generating a few KiB of
// output, is amortized to negligible overhead, while still small enough to
// bound the amount of output exposed under any single key.
const reseedThreshold = 32 * 1024 * 1024 // 32 MiB

// ReseedingPRNG is a cryptographically secure pseudorandom number generator
// that automatically rekeys its core generator from an entropy source after
// emitting reseedThreshold bytes of output.  ReseedingPRNG methods are not
// safe for concurrent access.
type ReseedingPRNG struct {
	core      CoreGenerator
	entropy   EntropySource
	threshold int64
	remaining int64
	seedBuf   []byte
}

// NewReseedingPRNG returns a ReseedingPRNG backed by a ChaCha20 keystream and
// the operating system entropy source, seeded and ready for use.
//
// Returns an error with kind ErrEntropyUnavailable when the initial seed
// cannot be obtained.
func NewReseedingPRNG() (*ReseedingPRNG, error) {
	return newReseedingPRNG(NewChaChaCore(), SystemEntropy(), reseedThreshold)
}

// newReseedingPRNG returns a seeded ReseedingPRNG wrapping the provided core
// generator and entropy source with the given reseed threshold.  The
// threshold is a parameter so tests can scale it down.
func newReseedingPRNG(core CoreGenerator, entropy EntropySource, threshold int64) (*ReseedingPRNG, error) {
	p := &ReseedingPRNG{
		core:      core,
		entropy:   entropy,
		threshold: threshold,
		seedBuf:   make([]byte, core.SeedSize()),
	}
	if err := entropy.ReadEntropy(p.seedBuf); err != nil {
		str := fmt.Sprintf("unable to obtain entropy for initial generator "+
			"seed: %v", err)
		return nil, makeError(ErrEntropyUnavailable, str, err)
	}
	p.core.Reseed(p.seedBuf)
	p.remaining = threshold
	return p, nil
}

// reseed rekeys the core generator with fresh entropy and resets the
// remaining byte budget.  The rekey is all-or-nothing: when entropy cannot be
// obtained the previous key and budget remain in place, and the next emission
// that needs the budget re-attempts the reseed.
func (p *ReseedingPRNG) reseed() error {
	if err := p.entropy.ReadEntropy(p.seedBuf); err != nil {
		str := fmt.Sprintf("unable to obtain entropy to reseed generator: %v",
			err)
		log.Error(str)
		entropyErr := makeError(ErrEntropyUnavailable, err.Error(), err)
		return makeError(ErrReseedFailed, str, entropyErr)
	}
	p.core.Reseed(p.seedBuf)
	p.remaining = p.threshold
	log.Trace("Rekeyed generator from entropy source")
	return nil
}

// TryRead fills s with len(s) cryptographically-secure random bytes,
// reseeding the generator beforehand whenever satisfying the request would
// exceed the remaining byte budget of the current key.
//
// Returns an error with kind ErrReseedFailed when a required reseed cannot
// obtain entropy.  In that case no bytes are written to s, except for
// requests larger than the reseed threshold itself, where bytes already
// produced under earlier keys remain in the prefix of s.
func (p *ReseedingPRNG) TryRead(s []byte) error {
	for int64(len(s)) > p.remaining {
		if err := p.reseed(); err != nil {
			return err
		}
		if int64(len(s)) <= p.remaining {
			break
		}

		// The request exceeds an entire key's budget.  Emit one full budget
		// under the fresh key and continue with another reseed.
		p.core.Generate(s[:p.remaining])
		s = s[p.remaining:]
		p.remaining = 0
	}
	p.core.Generate(s)
	p.remaining -= int64(len(s))
	return nil
}

// Read fills s with len(s) of cryptographically-secure random bytes.  Read
// never errors and instead panics if a required reseed cannot obtain entropy,
// since silently returning output from a stale or unseeded key would be a
// security defect rather than a degraded mode.  Callers that prefer to
// handle entropy failure should use TryRead.
func (p *ReseedingPRNG) Read(s []byte) (n int, err error) {
	if err := p.TryRead(s); err != nil {
		panic(err)
	}
	return len(s), nil
}
