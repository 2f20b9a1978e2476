// Copyright (c) 2024-2026 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

//go:build !linux

package threadrand

import (
	cryptorand "crypto/rand"
	"io"
)

// readOSEntropy fills p with entropy from the stdlib crypto/rand reader.
func readOSEntropy(p []byte) error {
	_, err := io.ReadFull(cryptorand.Reader, p)
	return err
}
