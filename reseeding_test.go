// Copyright (c) 2024-2026 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package threadrand

import (
	"bytes"
	"errors"
	"testing"

	"github.com/davecgh/go-spew/spew"
)

// countingEntropy is an EntropySource test double that counts seed events,
// fills buffers with a fixed byte, and can be made to fail starting at a
// specific 1-based seed event.
type countingEntropy struct {
	seeds  int
	failAt int // 1-based seed event to start failing at, 0 means never
	fill   byte
}

func (e *countingEntropy) ReadEntropy(p []byte) error {
	e.seeds++
	if e.failAt != 0 && e.seeds >= e.failAt {
		return errors.New("entropy source exhausted")
	}
	for i := range p {
		p[i] = e.fill
	}
	return nil
}

// stubCore is a CoreGenerator test double that emits an incrementing byte
// stream restarted from the first key byte on every reseed, making expected
// output trivially computable by hand.
type stubCore struct {
	next    byte
	reseeds int
	lastKey []byte
}

func (c *stubCore) Generate(p []byte) {
	for i := range p {
		p[i] = c.next
		c.next++
	}
}

func (c *stubCore) Reseed(key []byte) {
	c.reseeds++
	c.lastKey = append(c.lastKey[:0], key...)
	c.next = key[0]
}

func (c *stubCore) SeedSize() int { return 8 }

// countingSeq returns length bytes incrementing from start, the stream the
// stubCore emits immediately after a reseed with a key whose first byte is
// start.
func countingSeq(start byte, length int) []byte {
	s := make([]byte, length)
	for i := range s {
		s[i] = start + byte(i)
	}
	return s
}

// TestReseedThresholdCrossing verifies the scaled-down reseed scenario: with
// a threshold of 16 bytes, emitting 10 bytes and then requesting 10 more
// must trigger exactly one reseed before the second request's output is
// returned, for exactly two seed events overall.
func TestReseedThresholdCrossing(t *testing.T) {
	entropy := &countingEntropy{fill: 0xAA}
	core := &stubCore{}
	prng, err := newReseedingPRNG(core, entropy, 16)
	if err != nil {
		t.Fatalf("unexpected error creating generator: %v", err)
	}
	if entropy.seeds != 1 {
		t.Fatalf("initial seed events: got %d, want 1", entropy.seeds)
	}

	first := make([]byte, 10)
	if err := prng.TryRead(first); err != nil {
		t.Fatalf("unexpected error on first read: %v", err)
	}
	if entropy.seeds != 1 {
		t.Fatalf("seed events after first read: got %d, want 1",
			entropy.seeds)
	}
	if want := countingSeq(0xAA, 10); !bytes.Equal(first, want) {
		t.Fatalf("first read output mismatch: %s", spew.Sdump(first, want))
	}

	second := make([]byte, 10)
	if err := prng.TryRead(second); err != nil {
		t.Fatalf("unexpected error on second read: %v", err)
	}
	if entropy.seeds != 2 {
		t.Fatalf("seed events after crossing read: got %d, want 2",
			entropy.seeds)
	}
	// The stub restarts its stream on reseed, so the second request emitting
	// entirely under the fresh key reproduces the first sequence.
	if want := countingSeq(0xAA, 10); !bytes.Equal(second, want) {
		t.Fatalf("second read output mismatch: %s", spew.Sdump(second, want))
	}
}

// TestReseedBeforeEmission verifies that output is never produced on a fully
// exhausted byte budget: the emission following exhaustion must be preceded
// by a reseed even for a single byte.
func TestReseedBeforeEmission(t *testing.T) {
	entropy := &countingEntropy{fill: 0x01}
	core := &stubCore{}
	prng, err := newReseedingPRNG(core, entropy, 4)
	if err != nil {
		t.Fatalf("unexpected error creating generator: %v", err)
	}

	buf := make([]byte, 4)
	if err := prng.TryRead(buf); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if entropy.seeds != 1 {
		t.Fatalf("seed events after exact-budget read: got %d, want 1",
			entropy.seeds)
	}

	one := make([]byte, 1)
	if err := prng.TryRead(one); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if entropy.seeds != 2 {
		t.Fatalf("seed events after post-exhaustion read: got %d, want 2",
			entropy.seeds)
	}
	if one[0] != 0x01 {
		t.Fatalf("post-exhaustion byte: got %#x, want %#x", one[0], 0x01)
	}
}

// TestLargeRequestSpansKeys verifies that a single request larger than the
// reseed threshold is split across multiple keys so no key ever emits more
// than the threshold.
func TestLargeRequestSpansKeys(t *testing.T) {
	entropy := &countingEntropy{fill: 0xAA}
	core := &stubCore{}
	prng, err := newReseedingPRNG(core, entropy, 8)
	if err != nil {
		t.Fatalf("unexpected error creating generator: %v", err)
	}

	buf := make([]byte, 20)
	if err := prng.TryRead(buf); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Initial seed plus one reseed per key segment of the split request.
	if entropy.seeds != 4 {
		t.Fatalf("seed events: got %d, want 4", entropy.seeds)
	}
	want := countingSeq(0xAA, 8)
	want = append(want, countingSeq(0xAA, 8)...)
	want = append(want, countingSeq(0xAA, 4)...)
	if !bytes.Equal(buf, want) {
		t.Fatalf("split read output mismatch: %s", spew.Sdump(buf, want))
	}
}

// TestInitialSeedFailure verifies that construction fails closed with an
// ErrEntropyUnavailable error when the entropy source cannot supply the
// initial seed.
func TestInitialSeedFailure(t *testing.T) {
	entropy := &countingEntropy{failAt: 1}
	_, err := newReseedingPRNG(&stubCore{}, entropy, 16)
	if err == nil {
		t.Fatal("expected error creating generator with failing entropy")
	}
	if !errors.Is(err, ErrEntropyUnavailable) {
		t.Fatalf("error kind: got %v, want %v", err, ErrEntropyUnavailable)
	}
}

// TestTryReadReseedFailure verifies that a failed threshold-triggered reseed
// surfaces as an ErrReseedFailed error on exactly the crossing call, writes
// nothing to the destination, and that the reseed is re-attempted by the
// next call.
func TestTryReadReseedFailure(t *testing.T) {
	entropy := &countingEntropy{fill: 0x42, failAt: 2}
	core := &stubCore{}
	prng, err := newReseedingPRNG(core, entropy, 16)
	if err != nil {
		t.Fatalf("unexpected error creating generator: %v", err)
	}

	buf := make([]byte, 10)
	if err := prng.TryRead(buf); err != nil {
		t.Fatalf("unexpected error before threshold: %v", err)
	}

	// Crossing read fails and must leave the destination untouched.
	crossing := make([]byte, 10)
	err = prng.TryRead(crossing)
	if !errors.Is(err, ErrReseedFailed) {
		t.Fatalf("error kind: got %v, want %v", err, ErrReseedFailed)
	}
	var e Error
	if !errors.As(err, &e) {
		t.Fatalf("error type: got %T, want Error", err)
	}
	if !errors.Is(e.RawErr, ErrEntropyUnavailable) {
		t.Fatalf("wrapped error kind: got %v, want %v", e.RawErr,
			ErrEntropyUnavailable)
	}
	if !bytes.Equal(crossing, make([]byte, 10)) {
		t.Fatalf("destination modified by failed read: %s",
			spew.Sdump(crossing))
	}

	// The generator stays on the previous key with its depleted budget, so
	// the next crossing call re-attempts the reseed and succeeds once
	// entropy recovers.
	entropy.failAt = 0
	if err := prng.TryRead(crossing); err != nil {
		t.Fatalf("unexpected error after entropy recovery: %v", err)
	}
	if entropy.seeds != 3 {
		t.Fatalf("seed events: got %d, want 3", entropy.seeds)
	}
	if core.reseeds != 2 {
		t.Fatalf("core reseeds: got %d, want 2", core.reseeds)
	}
}

// TestReadPanicsOnReseedFailure verifies the infallible read path panics
// with a diagnostic naming the reseed failure rather than emitting output
// from a stale key.
func TestReadPanicsOnReseedFailure(t *testing.T) {
	entropy := &countingEntropy{fill: 0x42, failAt: 2}
	prng, err := newReseedingPRNG(&stubCore{}, entropy, 8)
	if err != nil {
		t.Fatalf("unexpected error creating generator: %v", err)
	}

	buf := make([]byte, 8)
	prng.Read(buf)

	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected panic from infallible read on reseed failure")
		}
		err, ok := r.(error)
		if !ok || !errors.Is(err, ErrReseedFailed) {
			t.Fatalf("panic value: got %v, want %v", r, ErrReseedFailed)
		}
	}()
	prng.Read(buf)
}

// TestDeterministicStreams verifies that two generators constructed with
// identical deterministic entropy produce byte-for-byte identical output,
// since the ChaCha20 core is deterministic under a fixed key and nonce.
func TestDeterministicStreams(t *testing.T) {
	newDeterministic := func() *ReseedingPRNG {
		t.Helper()
		prng, err := newReseedingPRNG(NewChaChaCore(),
			&countingEntropy{fill: 0x5A}, 64)
		if err != nil {
			t.Fatalf("unexpected error creating generator: %v", err)
		}
		return prng
	}
	a := newDeterministic()
	b := newDeterministic()

	// Both generators issue the same sequence of reads, crossing the 64 byte
	// threshold mid-sequence so the reproduced stream spans a reseed.
	readSequence := func(prng *ReseedingPRNG, buf []byte) {
		t.Helper()
		if err := prng.TryRead(buf[:40]); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if err := prng.TryRead(buf[40:]); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	bufA := make([]byte, 96)
	bufB := make([]byte, 96)
	readSequence(a, bufA)
	readSequence(b, bufB)

	if !bytes.Equal(bufA, bufB) {
		t.Fatalf("identically seeded generators diverged: %s",
			spew.Sdump(bufA, bufB))
	}
	if bytes.Equal(bufA, make([]byte, 96)) {
		t.Fatal("generator produced all-zero output")
	}
}
