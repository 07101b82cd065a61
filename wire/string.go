// Copyright 2026 The Hwire Authors
// SPDX-License-Identifier: Apache-2.0

package wire

import (
	"fmt"
	"math"
)

// maxStringLen is the wire bound on string length: the length field
// is a 32-bit unsigned value in the message layout.
const maxStringLen = math.MaxUint32

// emptyBuffer is the process-wide empty-string singleton: a single
// terminator byte shared by every default-state String. Read-only,
// never released, safe to alias from any number of instances and
// goroutines.
var emptyBuffer = []byte{0}

// String is the wire value type for a byte-buffer string. The zero
// value is valid: it aliases the empty singleton and owns nothing.
//
// Owning Strings hold a private buffer of length+1 bytes with a NUL
// terminator after the counted bytes, so the buffer can be handed to
// terminator-expecting consumers across the boundary. Borrowing
// Strings alias caller-provided storage as-is (no copy, no
// terminator); the caller guarantees the storage outlives the alias.
type String struct {
	// buffer is the backing storage. nil means the default state and
	// is normalized to the empty singleton by accessors.
	buffer []byte
	size   uint32
	state  ownState
}

// NewString returns an owning String holding a copy of s.
func NewString(s string) String {
	var out String
	out.copyBytes([]byte(s))
	return out
}

// StringFromBytes returns an owning String holding a copy of data.
// A nil slice yields the default (empty, non-owning) String, matching
// the treatment of a null source across the boundary. Panics if the
// length exceeds the 32-bit wire bound.
func StringFromBytes(data []byte) String {
	var out String
	if data == nil {
		return out
	}
	out.copyBytes(data)
	return out
}

// Set replaces the contents with an owned copy of s, releasing any
// currently owned storage first.
func (s *String) Set(value string) {
	s.Clear()
	s.copyBytes([]byte(value))
}

// CopyFrom replaces the contents with an owned copy of other's bytes.
// Always allocates: two Strings never share owned storage. Self-copy
// is a no-op.
func (s *String) CopyFrom(other *String) {
	if s == other {
		return
	}
	s.Clear()
	s.copyBytes(other.Bytes())
}

// MoveFrom transfers other's buffer, length, and ownership into this
// String without copying. other is reset to the default state.
// Self-move is a no-op.
func (s *String) MoveFrom(other *String) {
	if s == other {
		return
	}
	s.Clear()
	s.buffer = other.buffer
	s.size = other.size
	s.state = other.state
	other.buffer = nil
	other.size = 0
	other.state = stateDefault
}

// SetExternal releases any owned storage, then aliases data for its
// full length without copying or appending a terminator. The caller
// guarantees data outlives this String's use of it (and provides a
// terminator itself if downstream interop needs one). A nil slice
// yields the default state. Panics if the length exceeds the 32-bit
// wire bound.
func (s *String) SetExternal(data []byte) {
	checkLen(len(data))
	s.Clear()
	if data == nil {
		return
	}
	s.buffer = data
	s.size = uint32(len(data))
	s.state = stateBorrowing
}

// Clear releases owned storage and resets to the default state.
// Borrowed storage and the empty singleton are never released.
// Idempotent.
func (s *String) Clear() {
	// Owned buffers are garbage collected once unreferenced; dropping
	// the reference is the release. The state reset is what the
	// marshalling engine observes.
	s.buffer = nil
	s.size = 0
	s.state = stateDefault
}

// Bytes returns the string contents without the terminator. The view
// is valid while this String is alive and unmodified. Never nil: the
// default state yields an empty view of the shared singleton.
func (s *String) Bytes() []byte {
	if s.buffer == nil {
		return emptyBuffer[:0]
	}
	return s.buffer[:s.size]
}

// Len returns the element count (terminator excluded).
func (s *String) Len() int {
	return int(s.size)
}

// IsEmpty reports whether the length is zero.
func (s *String) IsEmpty() bool {
	return s.size == 0
}

// Owns reports whether this String is responsible for its buffer.
func (s *String) Owns() bool {
	return s.state == stateOwning
}

// String returns an owned Go string copy of the contents.
func (s *String) String() string {
	return string(s.Bytes())
}

// copyBytes installs an owned copy of data with a trailing terminator.
// The receiver's previous storage must already have been released.
func (s *String) copyBytes(data []byte) {
	checkLen(len(data))
	buffer := make([]byte, len(data)+1)
	copy(buffer, data)
	// buffer[len(data)] is already the NUL terminator.
	s.buffer = buffer
	s.size = uint32(len(data))
	s.state = stateOwning
}

// checkLen enforces the 32-bit wire bound. Exceeding it is a fatal
// invariant violation, not a recoverable error: the message layout
// cannot represent the length, so no safe completion exists.
func checkLen(length int) {
	if uint64(length) > maxStringLen {
		panic(fmt.Sprintf("wire: string length %d exceeds the 32-bit wire bound", length))
	}
}
