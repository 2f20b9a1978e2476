// Copyright (c) 2024-2026 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package threadrand

import (
	"fmt"
	"math/big"
	"sync"
	"time"

	"github.com/petermattis/goid"
)

// threadState is the per-goroutine cell holding that goroutine's generator.
//
// The mutex is the Go stand-in for an exclusive borrow of the generator for
// the duration of a single call.  Only the owning goroutine ever takes it,
// so it is never contended and costs a couple of uncontended atomic
// operations per call.  Go cannot exclude a type from crossing goroutines at
// compile time, so exclusive access is enforced with this cell plus the
// goroutine check in Handle.enter rather than by construction.
type threadState struct {
	mu   sync.Mutex
	prng *ReseedingPRNG
}

// threadStates maps goroutine IDs to their lazily created generator cells.
// Goroutine IDs are never reused within a process, so an entry can only ever
// describe the goroutine that created it.
var threadStates sync.Map // int64 -> *threadState

// Handle provides access to the calling goroutine's generator.  It is a
// small value that is cheap to obtain and copy; copying a Handle yields
// another reference to the same underlying generator rather than duplicating
// generator state.
//
// A Handle must only be used on the goroutine that acquired it.  Go offers
// no way to exclude a type from crossing goroutines at compile time, so
// every generation method revalidates the calling goroutine and panics on
// cross-goroutine use.  Within the owning goroutine the generation methods
// take exclusive access to the generator only for the duration of a single
// call and never reenter the package during that access, so at most one
// logical mutable access to the generator is ever active.
type Handle struct {
	state *threadState
	owner int64
}

// CurrentThread returns a Handle for the calling goroutine's generator,
// lazily creating and seeding the generator on the first acquisition by that
// goroutine.  Later acquisitions on the same goroutine return handles to the
// same generator.
//
// Panics when the initial seed cannot be obtained from the system entropy
// source, since a generator silently seeded with predictable data would be a
// security defect.
//
// Go provides no goroutine teardown hook, so a generator persists until the
// process exits even after its goroutine ends.  An entry costs a few hundred
// bytes; programs that churn through very large numbers of goroutines can
// call ReleaseThread before a goroutine returns to drop its entry.
func CurrentThread() Handle {
	gid := goid.Get()
	if v, ok := threadStates.Load(gid); ok {
		return Handle{state: v.(*threadState), owner: gid}
	}
	prng, err := NewReseedingPRNG()
	if err != nil {
		panic(fmt.Sprintf("threadrand: unable to seed generator for "+
			"goroutine %d: %v", gid, err))
	}
	st := &threadState{prng: prng}
	threadStates.Store(gid, st)
	log.Debugf("Seeded new generator for goroutine %d", gid)
	return Handle{state: st, owner: gid}
}

// ReleaseThread discards the calling goroutine's cached generator, if any.
// Handles previously acquired by the goroutine remain usable but keep
// operating on the discarded generator; the next CurrentThread call creates
// a fresh one.
func ReleaseThread() {
	threadStates.Delete(goid.Get())
}

// enter validates the confinement contract and acquires exclusive access to
// the underlying generator.  The caller must unlock the returned state's
// mutex when the call's access to the generator ends.
func (h Handle) enter() *threadState {
	if gid := goid.Get(); gid != h.owner {
		panic(fmt.Sprintf("threadrand: handle owned by goroutine %d used "+
			"from goroutine %d", h.owner, gid))
	}
	h.state.mu.Lock()
	return h.state
}

// Read fills b with len(b) of cryptographically-secure random bytes.  Read
// never errors and instead panics if a required reseed cannot obtain
// entropy.  Callers that prefer to handle entropy failure should use
// TryRead.
func (h Handle) Read(b []byte) (n int, err error) {
	st := h.enter()
	defer st.mu.Unlock()

	return st.prng.Read(b)
}

// TryRead fills b with len(b) cryptographically-secure random bytes,
// returning an error with kind ErrReseedFailed when a required reseed cannot
// obtain entropy.  In that case no bytes are written to b, except for
// requests larger than the reseed threshold, where bytes already produced
// under earlier keys remain in the prefix of b.
func (h Handle) TryRead(b []byte) error {
	st := h.enter()
	defer st.mu.Unlock()

	return st.prng.TryRead(b)
}

// Uint32 returns a uniform random uint32.
func (h Handle) Uint32() uint32 {
	st := h.enter()
	defer st.mu.Unlock()

	return st.prng.Uint32()
}

// Uint64 returns a uniform random uint64.
func (h Handle) Uint64() uint64 {
	st := h.enter()
	defer st.mu.Unlock()

	return st.prng.Uint64()
}

// Uint32N returns a random uint32 in range [0,n) without modulo bias.
func (h Handle) Uint32N(n uint32) uint32 {
	st := h.enter()
	defer st.mu.Unlock()

	return st.prng.Uint32N(n)
}

// Uint64N returns a random uint64 in range [0,n) without modulo bias.
func (h Handle) Uint64N(n uint64) uint64 {
	st := h.enter()
	defer st.mu.Unlock()

	return st.prng.Uint64N(n)
}

// Int32 returns a random 31-bit non-negative integer as an int32 without
// modulo bias.
func (h Handle) Int32() int32 {
	st := h.enter()
	defer st.mu.Unlock()

	return st.prng.Int32()
}

// Int32N returns, as an int32, a random 31-bit non-negative integer in [0,n)
// without modulo bias.
// Panics if n <= 0.
func (h Handle) Int32N(n int32) int32 {
	st := h.enter()
	defer st.mu.Unlock()

	return st.prng.Int32N(n)
}

// Int64 returns a random 63-bit non-negative integer as an int64 without
// modulo bias.
func (h Handle) Int64() int64 {
	st := h.enter()
	defer st.mu.Unlock()

	return st.prng.Int64()
}

// Int64N returns, as an int64, a random 63-bit non-negative integer in [0,n)
// without modulo bias.
// Panics if n <= 0.
func (h Handle) Int64N(n int64) int64 {
	st := h.enter()
	defer st.mu.Unlock()

	return st.prng.Int64N(n)
}

// Int returns a non-negative integer without bias.
func (h Handle) Int() int {
	st := h.enter()
	defer st.mu.Unlock()

	return st.prng.Int()
}

// IntN returns, as an int, a random non-negative integer in [0,n) without
// modulo bias.
// Panics if n <= 0.
func (h Handle) IntN(n int) int {
	st := h.enter()
	defer st.mu.Unlock()

	return st.prng.IntN(n)
}

// UintN returns, as an uint, a random integer in [0,n) without modulo bias.
func (h Handle) UintN(n uint) uint {
	st := h.enter()
	defer st.mu.Unlock()

	return st.prng.UintN(n)
}

// Duration returns a random duration in [0,n) without modulo bias.
// Panics if n <= 0.
func (h Handle) Duration(n time.Duration) time.Duration {
	st := h.enter()
	defer st.mu.Unlock()

	return st.prng.Duration(n)
}

// Shuffle randomizes the order of n elements by swapping the elements at
// indexes i and j.
// Panics if n < 0.
func (h Handle) Shuffle(n int, swap func(i, j int)) {
	st := h.enter()
	defer st.mu.Unlock()

	st.prng.Shuffle(n, swap)
}

// BigInt returns a uniform random value in [0,max).
// Panics if max <= 0.
func (h Handle) BigInt(max *big.Int) *big.Int {
	st := h.enter()
	defer st.mu.Unlock()

	return st.prng.BigInt(max)
}
