// Copyright 2026 The Hwire Authors
// SPDX-License-Identifier: Apache-2.0

package wire

import (
	"github.com/hwire-foundation/hwire/lib/fdbundle"
)

// Handle is the wire value type for a native resource bundle. The
// zero value is valid: nil bundle, nothing owned.
//
// A Handle either owns its bundle (obtained by cloning, or adopted via
// SetTo with shouldOwn=true) or borrows it (the external owner keeps
// responsibility for closing it). Release closes the bundle only when
// owning, so the marshalling engine's cleanup pass can call it
// unconditionally without double-closing borrowed descriptors.
type Handle struct {
	bundle *fdbundle.Bundle
	state  ownState
}

// BorrowBundle wraps an externally owned bundle without taking
// ownership. The caller retains responsibility for the bundle's
// lifetime and eventual close. A nil bundle yields the default Handle.
func BorrowBundle(bundle *fdbundle.Bundle) Handle {
	if bundle == nil {
		return Handle{}
	}
	return Handle{bundle: bundle, state: stateBorrowing}
}

// CopyFrom replaces this handle with a deep clone of other's bundle.
// The clone is duplicated via the bundle's dup primitive and this
// handle owns it. If other holds no bundle, this handle becomes the
// default. Self-copy is a no-op.
//
// Panics if cloning fails: a partially cloned bundle cannot be handed
// to the caller safely, and callers at this layer assume success or
// process termination, never a returned failure.
func (h *Handle) CopyFrom(other *Handle) {
	if h == other {
		return
	}
	h.Release()
	if other.bundle == nil {
		return
	}
	clone, err := other.bundle.Clone()
	if err != nil {
		panic("wire: failed to clone resource bundle: " + err.Error())
	}
	h.bundle = clone
	h.state = stateOwning
}

// Clone returns a new Handle owning a deep clone of this handle's
// bundle. Same fatal contract as CopyFrom.
func (h *Handle) Clone() Handle {
	var clone Handle
	clone.CopyFrom(h)
	return clone
}

// MoveFrom transfers other's bundle and ownership into this handle
// without duplication. other is reset to the default state. Self-move
// is a no-op.
func (h *Handle) MoveFrom(other *Handle) {
	if h == other {
		return
	}
	h.Release()
	h.bundle = other.bundle
	h.state = other.state
	other.bundle = nil
	other.state = stateDefault
}

// SetExternal releases any owned bundle, then aliases the given bundle
// without taking ownership.
func (h *Handle) SetExternal(bundle *fdbundle.Bundle) {
	h.Release()
	if bundle == nil {
		return
	}
	h.bundle = bundle
	h.state = stateBorrowing
}

// SetTo releases any owned bundle, then adopts the given bundle with
// the requested ownership. Used when the caller has already produced a
// bundle this handle should own outright — typically right after
// deserializing one from a message. A nil bundle yields the default
// state regardless of shouldOwn.
func (h *Handle) SetTo(bundle *fdbundle.Bundle, shouldOwn bool) {
	h.Release()
	if bundle == nil {
		return
	}
	h.bundle = bundle
	if shouldOwn {
		h.state = stateOwning
	} else {
		h.state = stateBorrowing
	}
}

// Bundle returns the current bundle, which may be nil. Ownership does
// not transfer; the returned bundle is valid only while this handle
// is alive and unmodified.
func (h *Handle) Bundle() *fdbundle.Bundle {
	return h.bundle
}

// Owns reports whether this handle is responsible for closing its
// bundle.
func (h *Handle) Owns() bool {
	return h.state == stateOwning
}

// IsNil reports whether this handle references no bundle.
func (h *Handle) IsNil() bool {
	return h.bundle == nil
}

// Release closes the bundle iff owning, then resets to the default
// state. Idempotent: releasing a default or borrowing handle only
// drops the reference. This is the explicit destructor — every owning
// Handle must be Released exactly once by whoever holds it last.
func (h *Handle) Release() {
	if h.state == stateOwning {
		// Close errors are not actionable here: the descriptors are
		// gone from this process's table either way.
		_ = h.bundle.Close()
	}
	h.bundle = nil
	h.state = stateDefault
}
