// Copyright 2026 The Hwire Authors
// SPDX-License-Identifier: Apache-2.0

package wire

import (
	"testing"

	"golang.org/x/sys/unix"

	"github.com/hwire-foundation/hwire/lib/fdbundle"
)

// newTestBundle opens /dev/null and wraps the descriptor in a bundle.
func newTestBundle(t *testing.T, ints ...int32) *fdbundle.Bundle {
	t.Helper()
	fd, err := unix.Open("/dev/null", unix.O_RDONLY, 0)
	if err != nil {
		t.Fatalf("open /dev/null: %v", err)
	}
	return fdbundle.New([]int{fd}, ints)
}

func fdIsOpen(fd int) bool {
	_, err := unix.FcntlInt(uintptr(fd), unix.F_GETFD, 0)
	return err == nil
}

func TestZeroHandleIsDefault(t *testing.T) {
	var handle Handle
	if !handle.IsNil() {
		t.Error("zero Handle is not nil")
	}
	if handle.Owns() {
		t.Error("zero Handle claims ownership")
	}
	// Releasing a default handle is a no-op.
	handle.Release()
	handle.Release()
}

func TestBorrowBundleDoesNotTakeOwnership(t *testing.T) {
	bundle := newTestBundle(t)
	defer bundle.Close()
	fd := bundle.Descriptors()[0]

	handle := BorrowBundle(bundle)
	if handle.Owns() {
		t.Error("BorrowBundle produced an owning handle")
	}
	if handle.Bundle() != bundle {
		t.Error("BorrowBundle does not alias the caller's bundle")
	}

	// Release must not close the borrowed descriptor.
	handle.Release()
	if !fdIsOpen(fd) {
		t.Error("Release closed a borrowed descriptor")
	}
	if !handle.IsNil() {
		t.Error("handle not reset to default after Release")
	}
}

func TestCopyFromClonesBundle(t *testing.T) {
	bundle := newTestBundle(t, 5)
	defer bundle.Close()
	original := BorrowBundle(bundle)

	var copied Handle
	copied.CopyFrom(&original)

	if !copied.Owns() {
		t.Error("copy does not own its clone")
	}
	if copied.Bundle() == original.Bundle() {
		t.Fatal("copy aliases the original bundle")
	}
	if copied.Bundle().Descriptors()[0] == original.Bundle().Descriptors()[0] {
		t.Error("copy shares a descriptor with the original")
	}
	if got := copied.Bundle().Ints()[0]; got != 5 {
		t.Errorf("cloned Ints()[0] = %d, want 5", got)
	}

	// Destroying the copy leaves the original untouched.
	originalFD := original.Bundle().Descriptors()[0]
	copied.Release()
	if !fdIsOpen(originalFD) {
		t.Error("releasing the copy closed the original's descriptor")
	}
}

func TestCopyFromNilSource(t *testing.T) {
	var source Handle

	destination := BorrowBundle(newTestBundle(t))
	bundle := destination.Bundle()
	defer bundle.Close()

	destination.CopyFrom(&source)
	if !destination.IsNil() {
		t.Error("copying a nil source did not reset to default")
	}
	if destination.Owns() {
		t.Error("copying a nil source produced an owning handle")
	}
}

func TestMoveFromTransfersWithoutCloning(t *testing.T) {
	bundle := newTestBundle(t)
	var source Handle
	source.SetTo(bundle, true)
	fd := bundle.Descriptors()[0]

	var destination Handle
	destination.MoveFrom(&source)

	if source.Bundle() != nil || source.Owns() {
		t.Error("source not reset to default after move")
	}
	if destination.Bundle() != bundle {
		t.Error("move did not transfer the exact bundle")
	}
	if !destination.Owns() {
		t.Error("move did not transfer ownership")
	}
	if !fdIsOpen(fd) {
		t.Error("move closed the descriptor")
	}

	destination.Release()
	if fdIsOpen(fd) {
		t.Error("Release after move did not close the owned descriptor")
	}
}

func TestMoveReleasesDestination(t *testing.T) {
	var destination Handle
	destination.SetTo(newTestBundle(t), true)
	previousFD := destination.Bundle().Descriptors()[0]

	var source Handle
	source.SetTo(newTestBundle(t), true)

	destination.MoveFrom(&source)
	if fdIsOpen(previousFD) {
		t.Error("move leaked the destination's previously owned descriptor")
	}
	destination.Release()
}

func TestSelfOperationsAreNoOps(t *testing.T) {
	var handle Handle
	handle.SetTo(newTestBundle(t), true)
	bundle := handle.Bundle()
	fd := bundle.Descriptors()[0]

	handle.CopyFrom(&handle)
	if handle.Bundle() != bundle || !handle.Owns() {
		t.Error("self-copy changed observable state")
	}
	handle.MoveFrom(&handle)
	if handle.Bundle() != bundle || !handle.Owns() {
		t.Error("self-move changed observable state")
	}
	if !fdIsOpen(fd) {
		t.Error("self-operation released the descriptor")
	}
	handle.Release()
}

func TestSetExternalReleasesOwned(t *testing.T) {
	var handle Handle
	handle.SetTo(newTestBundle(t), true)
	ownedFD := handle.Bundle().Descriptors()[0]

	external := newTestBundle(t)
	defer external.Close()

	handle.SetExternal(external)
	if fdIsOpen(ownedFD) {
		t.Error("SetExternal leaked the previously owned descriptor")
	}
	if handle.Owns() {
		t.Error("SetExternal produced an owning handle")
	}
	if handle.Bundle() != external {
		t.Error("SetExternal does not alias the external bundle")
	}

	// Release of a borrowing handle leaves the external bundle open.
	handle.Release()
	if !fdIsOpen(external.Descriptors()[0]) {
		t.Error("Release closed an external bundle")
	}
}

func TestSetToNilBundle(t *testing.T) {
	var handle Handle
	handle.SetTo(nil, true)
	if !handle.IsNil() || handle.Owns() {
		t.Error("SetTo(nil, true) did not yield the default state")
	}
}

func TestCopyFromPanicsOnCloneFailure(t *testing.T) {
	// A bundle with an invalid descriptor makes dup fail.
	broken := fdbundle.New([]int{-1}, nil)
	source := BorrowBundle(broken)

	defer func() {
		if recover() == nil {
			t.Error("CopyFrom with a failing clone did not panic")
		}
	}()
	var destination Handle
	destination.CopyFrom(&source)
}
