// Copyright (c) 2024-2026 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

//go:build linux

package threadrand

import (
	cryptorand "crypto/rand"
	"io"

	"golang.org/x/sys/unix"
)

// readOSEntropy fills p with entropy using the getrandom syscall, retrying
// short reads and interruptions.  Kernels without getrandom fall back to the
// stdlib crypto/rand reader.
func readOSEntropy(p []byte) error {
	for read := 0; read < len(p); {
		n, err := unix.Getrandom(p[read:], 0)
		switch err {
		case nil:
			read += n
		case unix.EINTR:
			continue
		case unix.ENOSYS:
			_, err := io.ReadFull(cryptorand.Reader, p[read:])
			return err
		default:
			return err
		}
	}
	return nil
}
