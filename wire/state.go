// Copyright 2026 The Hwire Authors
// SPDX-License-Identifier: Apache-2.0

package wire

// ownState is the ownership state carried by every wire value type.
// A three-valued state (rather than an owns boolean) makes the
// "owning but empty" combination unrepresentable: stateOwning is only
// ever paired with a live resource.
type ownState uint8

const (
	// stateDefault is the zero value: no resource, nothing to release.
	stateDefault ownState = iota

	// stateBorrowing references storage owned by someone else. The
	// borrower never releases it; the lender guarantees its lifetime.
	stateBorrowing

	// stateOwning holds storage this instance must release on Clear,
	// Release, or any overwrite.
	stateOwning
)

// String returns the state name for diagnostics.
func (s ownState) String() string {
	switch s {
	case stateDefault:
		return "default"
	case stateBorrowing:
		return "borrowing"
	case stateOwning:
		return "owning"
	default:
		return "invalid"
	}
}
