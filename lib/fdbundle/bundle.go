// Copyright 2026 The Hwire Authors
// SPDX-License-Identifier: Apache-2.0

package fdbundle

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// Bundle is an opaque aggregate of file descriptors and integer
// metadata that moves across a process boundary as a single unit.
// The descriptor slice and the int slice are both owned by the bundle;
// callers must not close the descriptors behind the bundle's back.
type Bundle struct {
	fds  []int
	ints []int32
}

// New creates a bundle that adopts the given descriptors and metadata.
// The slices are copied; the descriptors themselves are not duplicated,
// so the bundle now holds the one and only reference to them as far as
// its eventual Close is concerned.
func New(fds []int, ints []int32) *Bundle {
	bundle := &Bundle{
		fds:  make([]int, len(fds)),
		ints: make([]int32, len(ints)),
	}
	copy(bundle.fds, fds)
	copy(bundle.ints, ints)
	return bundle
}

// Descriptors returns the bundle's file descriptors. The returned
// slice is a view — callers must not close or mutate the descriptors.
func (b *Bundle) Descriptors() []int {
	if b == nil {
		return nil
	}
	return b.fds
}

// Ints returns the bundle's integer metadata as a view.
func (b *Bundle) Ints() []int32 {
	if b == nil {
		return nil
	}
	return b.ints
}

// Clone duplicates the bundle: every descriptor is duplicated via
// dup(2) and the integer metadata is copied. The clone is fully
// independent — closing the original does not invalidate it.
//
// Clone never returns a partially valid bundle. If any dup fails, the
// descriptors duplicated before the failure are closed and the error
// is returned.
func (b *Bundle) Clone() (*Bundle, error) {
	if b == nil {
		return nil, nil
	}

	clone := &Bundle{
		fds:  make([]int, 0, len(b.fds)),
		ints: make([]int32, len(b.ints)),
	}
	copy(clone.ints, b.ints)

	for _, fd := range b.fds {
		duplicated, err := unix.Dup(fd)
		if err != nil {
			// Unwind: release everything duplicated so far.
			for _, cloned := range clone.fds {
				unix.Close(cloned)
			}
			return nil, fmt.Errorf("fdbundle: dup fd %d: %w", fd, err)
		}
		clone.fds = append(clone.fds, duplicated)
	}

	return clone, nil
}

// Close releases every descriptor in the bundle. Idempotent: a second
// Close (or Close on a nil bundle) is a no-op. The first close error
// is returned; remaining descriptors are still closed.
func (b *Bundle) Close() error {
	if b == nil || b.fds == nil {
		return nil
	}

	var firstError error
	for _, fd := range b.fds {
		if err := unix.Close(fd); err != nil && firstError == nil {
			firstError = fmt.Errorf("fdbundle: close fd %d: %w", fd, err)
		}
	}
	b.fds = nil
	return firstError
}

// String returns a diagnostic summary. Descriptor values are included
// because they identify the bundle in strace output and launcher logs.
func (b *Bundle) String() string {
	if b == nil {
		return "fdbundle(nil)"
	}
	return fmt.Sprintf("fdbundle(fds=%v ints=%v)", b.fds, b.ints)
}
