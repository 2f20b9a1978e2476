// Copyright (c) 2024-2026 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package threadrand

// EntropySource describes a provider of unpredictable bytes used to key and
// rekey a deterministic generator.  Obtaining entropy may fail, for example
// when the operating system facility is unavailable, and implementations must
// report such failures rather than filling the buffer with predictable data.
type EntropySource interface {
	// ReadEntropy fills p with unpredictable bytes.  Either all of p is
	// filled or an error is returned.
	ReadEntropy(p []byte) error
}

// systemEntropy obtains entropy from the operating system.
type systemEntropy struct{}

// SystemEntropy returns an EntropySource backed by the operating system
// entropy facility.
func SystemEntropy() EntropySource {
	return systemEntropy{}
}

// ReadEntropy fills p with unpredictable bytes obtained from the operating
// system.
//
// This is part of the EntropySource interface implementation.
func (systemEntropy) ReadEntropy(p []byte) error {
	return readOSEntropy(p)
}
