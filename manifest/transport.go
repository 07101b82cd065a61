// Copyright 2026 The Hwire Authors
// SPDX-License-Identifier: Apache-2.0

package manifest

import "fmt"

// Transport is the resolved mechanism by which a caller reaches an
// interface implementation. The zero value is the "undetermined"
// sentinel: resolution found no applicable declaration. Undetermined
// is a normal, recoverable outcome, never an error.
type Transport uint8

const (
	// TransportUndetermined means no manifest declared a transport for
	// the interface. Callers fall back to their own default behavior.
	TransportUndetermined Transport = iota

	// TransportBinder is out-of-process: calls cross the kernel binder
	// driver to a separate server process.
	TransportBinder

	// TransportPassthrough is in-process: the implementation is loaded
	// into the caller's address space and invoked directly.
	TransportPassthrough
)

// String returns the manifest-file spelling of the transport.
func (t Transport) String() string {
	switch t {
	case TransportUndetermined:
		return "undetermined"
	case TransportBinder:
		return "hwbinder"
	case TransportPassthrough:
		return "passthrough"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(t))
	}
}

// ParseTransport parses a declared transport. Only concrete transports
// are valid in a manifest — "undetermined" is a lookup outcome, not a
// declaration.
func ParseTransport(name string) (Transport, error) {
	switch name {
	case "hwbinder":
		return TransportBinder, nil
	case "passthrough":
		return TransportPassthrough, nil
	default:
		return TransportUndetermined, fmt.Errorf("unknown transport %q", name)
	}
}

// MarshalText implements encoding.TextMarshaler. The undetermined
// sentinel marshals as the empty string so it round-trips as "absent".
func (t Transport) MarshalText() ([]byte, error) {
	if t == TransportUndetermined {
		return nil, nil
	}
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. Empty input
// yields the undetermined sentinel.
func (t *Transport) UnmarshalText(data []byte) error {
	if len(data) == 0 {
		*t = TransportUndetermined
		return nil
	}
	parsed, err := ParseTransport(string(data))
	if err != nil {
		return fmt.Errorf("unmarshal Transport: %w", err)
	}
	*t = parsed
	return nil
}
