// Copyright (c) 2024-2026 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package threadrand

import (
	"math/big"
	"time"
)

// Read fills b with random bytes obtained from the calling goroutine's
// generator.  Panics if a required seed or reseed cannot obtain entropy.
func Read(b []byte) {
	CurrentThread().Read(b)
}

// TryRead fills b with random bytes obtained from the calling goroutine's
// generator, returning an error with kind ErrReseedFailed when a required
// reseed cannot obtain entropy.
func TryRead(b []byte) error {
	return CurrentThread().TryRead(b)
}

// Uint32 returns a uniform random uint32.
func Uint32() uint32 {
	return CurrentThread().Uint32()
}

// Uint64 returns a uniform random uint64.
func Uint64() uint64 {
	return CurrentThread().Uint64()
}

// Uint32N returns a random uint32 in range [0,n) without modulo bias.
func Uint32N(n uint32) uint32 {
	return CurrentThread().Uint32N(n)
}

// Uint64N returns a random uint64 in range [0,n) without modulo bias.
func Uint64N(n uint64) uint64 {
	return CurrentThread().Uint64N(n)
}

// Int32 returns a random 31-bit non-negative integer as an int32 without
// modulo bias.
func Int32() int32 {
	return CurrentThread().Int32()
}

// Int32N returns, as an int32, a random 31-bit non-negative integer in [0,n)
// without modulo bias.
// Panics if n <= 0.
func Int32N(n int32) int32 {
	return CurrentThread().Int32N(n)
}

// Int64 returns a random 63-bit non-negative integer as an int64 without
// modulo bias.
func Int64() int64 {
	return CurrentThread().Int64()
}

// Int64N returns, as an int64, a random 63-bit non-negative integer in [0,n)
// without modulo bias.
// Panics if n <= 0.
func Int64N(n int64) int64 {
	return CurrentThread().Int64N(n)
}

// Int returns a non-negative integer without bias.
func Int() int {
	return CurrentThread().Int()
}

// IntN returns, as an int, a random non-negative integer in [0,n) without
// modulo bias.
// Panics if n <= 0.
func IntN(n int) int {
	return CurrentThread().IntN(n)
}

// UintN returns, as an uint, a random integer in [0,n) without modulo bias.
func UintN(n uint) uint {
	return CurrentThread().UintN(n)
}

// Duration returns a random duration in [0,n) without modulo bias.
// Panics if n <= 0.
func Duration(n time.Duration) time.Duration {
	return CurrentThread().Duration(n)
}

// Shuffle randomizes the order of n elements by swapping the elements at
// indexes i and j.
// Panics if n < 0.
func Shuffle(n int, swap func(i, j int)) {
	CurrentThread().Shuffle(n, swap)
}

// BigInt returns a uniform random value in [0,max).
// Panics if max <= 0.
func BigInt(max *big.Int) *big.Int {
	return CurrentThread().BigInt(max)
}
