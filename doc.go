// Copyright (c) 2024-2026 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package threadrand implements a goroutine-confined userspace CSPRNG that is
// periodically reseeded with entropy obtained from the operating system.
//
// Each goroutine that uses the package lazily receives its own independent
// generator, so generation never contends on a shared lock the way a global
// locked generator does.  The generator is a ChaCha20 keystream that is
// automatically rekeyed from the system entropy source after emitting 32 MiB
// of output, bounding the amount of output ever produced under a single key.
//
// Generators are obtained through CurrentThread, which returns a cheap Handle
// bound to the calling goroutine.  A Handle must only be used on the
// goroutine that acquired it; misuse from another goroutine is detected at
// runtime and panics.  Copying a Handle yields another reference to the same
// underlying generator rather than duplicating generator state.
//
// The package-level convenience functions mirror the Handle methods and
// operate on the calling goroutine's generator.
package threadrand
