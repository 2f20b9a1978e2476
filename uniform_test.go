// Copyright (c) 2024-2026 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package threadrand

import (
	"testing"
)

// TestUniformRanges verifies the uniform integer methods stay within their
// half-open ranges, including the power-of-two masking fast paths.
func TestUniformRanges(t *testing.T) {
	prng, err := newReseedingPRNG(NewChaChaCore(),
		&countingEntropy{fill: 0x33}, reseedThreshold)
	if err != nil {
		t.Fatalf("unexpected error creating generator: %v", err)
	}

	for i := 0; i < 1000; i++ {
		// Power of two path.
		if v := prng.Uint32N(64); v >= 64 {
			t.Fatalf("Uint32N(64) out of range: %d", v)
		}
		if v := prng.Uint64N(1 << 33); v >= 1<<33 {
			t.Fatalf("Uint64N(1<<33) out of range: %d", v)
		}
		// General path.
		if v := prng.Uint32N(1000); v >= 1000 {
			t.Fatalf("Uint32N(1000) out of range: %d", v)
		}
		if v := prng.Uint64N(999_999_937); v >= 999_999_937 {
			t.Fatalf("Uint64N out of range: %d", v)
		}
	}
}

// TestUniformInvalidArguments verifies the uniform methods panic on
// arguments that would make a half-open range empty or negative.
func TestUniformInvalidArguments(t *testing.T) {
	prng, err := newReseedingPRNG(NewChaChaCore(),
		&countingEntropy{fill: 0x33}, reseedThreshold)
	if err != nil {
		t.Fatalf("unexpected error creating generator: %v", err)
	}

	tests := []struct {
		name string
		fn   func()
	}{{
		name: "Int32N zero",
		fn:   func() { prng.Int32N(0) },
	}, {
		name: "Int64N negative",
		fn:   func() { prng.Int64N(-5) },
	}, {
		name: "IntN zero",
		fn:   func() { prng.IntN(0) },
	}, {
		name: "Duration zero",
		fn:   func() { prng.Duration(0) },
	}, {
		name: "Shuffle negative",
		fn:   func() { prng.Shuffle(-1, func(i, j int) {}) },
	}}

	for _, test := range tests {
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("%s: expected panic", test.name)
				}
			}()
			test.fn()
		}()
	}
}

// TestUniformByteBudget verifies the word emission methods charge the byte
// budget so reseeds still trigger for callers that never read buffers.
func TestUniformByteBudget(t *testing.T) {
	entropy := &countingEntropy{fill: 0x10}
	prng, err := newReseedingPRNG(&stubCore{}, entropy, 16)
	if err != nil {
		t.Fatalf("unexpected error creating generator: %v", err)
	}

	prng.Uint64() // 8 bytes
	prng.Uint32() // 4 bytes
	prng.Uint32() // 4 bytes, budget now exhausted
	if entropy.seeds != 1 {
		t.Fatalf("seed events within budget: got %d, want 1", entropy.seeds)
	}
	prng.Uint32()
	if entropy.seeds != 2 {
		t.Fatalf("seed events after budget exhausted: got %d, want 2",
			entropy.seeds)
	}
}
