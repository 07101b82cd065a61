// Copyright 2026 The Hwire Authors
// SPDX-License-Identifier: Apache-2.0

package fqname

import (
	"fmt"
	"strconv"
	"strings"
)

// FQName is a parsed fully-qualified interface name. The zero value
// is the invalid empty name; IsZero reports it and MarshalText
// serializes it as the empty string.
type FQName struct {
	pkg        string
	major      uint64
	minor      uint64
	hasVersion bool
	iface      string
	canonical  string
}

// Parse parses a fully-qualified name. Accepted forms:
//
//	android.hidl.base
//	android.hidl.base@1.0
//	android.hidl.base@1.0::IBase
//
// The package must be dot-separated segments of lowercase letters,
// digits, and underscores, each starting with a letter or underscore.
// The interface segment, when present, must be a plain identifier.
func Parse(name string) (FQName, error) {
	if name == "" {
		return FQName{}, fmt.Errorf("invalid fqname: empty name")
	}

	rest := name
	var iface string
	if at := strings.Index(rest, "::"); at >= 0 {
		iface = rest[at+2:]
		rest = rest[:at]
		if err := validateIdentifier(iface); err != nil {
			return FQName{}, fmt.Errorf("invalid fqname %q: interface: %w", name, err)
		}
	}

	var major, minor uint64
	hasVersion := false
	if at := strings.IndexByte(rest, '@'); at >= 0 {
		version := rest[at+1:]
		rest = rest[:at]
		var err error
		major, minor, err = parseVersion(version)
		if err != nil {
			return FQName{}, fmt.Errorf("invalid fqname %q: %w", name, err)
		}
		hasVersion = true
	}

	if err := validatePackage(rest); err != nil {
		return FQName{}, fmt.Errorf("invalid fqname %q: %w", name, err)
	}
	if iface != "" && !hasVersion {
		return FQName{}, fmt.Errorf("invalid fqname %q: interface requires a version", name)
	}

	fqn := FQName{
		pkg:        rest,
		major:      major,
		minor:      minor,
		hasVersion: hasVersion,
		iface:      iface,
	}
	fqn.canonical = fqn.build()
	return fqn, nil
}

// build assembles the canonical string form.
func (f FQName) build() string {
	var sb strings.Builder
	sb.WriteString(f.pkg)
	if f.hasVersion {
		sb.WriteByte('@')
		sb.WriteString(strconv.FormatUint(f.major, 10))
		sb.WriteByte('.')
		sb.WriteString(strconv.FormatUint(f.minor, 10))
	}
	if f.iface != "" {
		sb.WriteString("::")
		sb.WriteString(f.iface)
	}
	return sb.String()
}

// Package returns the dot-separated package path.
func (f FQName) Package() string { return f.pkg }

// Major returns the major version (zero when HasVersion is false).
func (f FQName) Major() uint64 { return f.major }

// Minor returns the minor version (zero when HasVersion is false).
func (f FQName) Minor() uint64 { return f.minor }

// Interface returns the interface segment, or "" for package-level
// names.
func (f FQName) Interface() string { return f.iface }

// HasVersion reports whether the name carries an explicit version.
func (f FQName) HasVersion() bool { return f.hasVersion }

// IsZero reports whether this is an uninitialized zero-value name.
func (f FQName) IsZero() bool { return f.pkg == "" }

// InPackage reports whether this name's package equals prefix or lies
// beneath it ("android.hidl.base" is in "android.hidl" but not in
// "android.hid").
func (f FQName) InPackage(prefix string) bool {
	if f.pkg == prefix {
		return true
	}
	return strings.HasPrefix(f.pkg, prefix+".")
}

// String returns the canonical form, satisfying fmt.Stringer.
func (f FQName) String() string { return f.canonical }

// MarshalText implements encoding.TextMarshaler using the canonical
// form. The zero value marshals as the empty string.
func (f FQName) MarshalText() ([]byte, error) {
	return []byte(f.canonical), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. Empty input
// produces a zero value.
func (f *FQName) UnmarshalText(data []byte) error {
	if len(data) == 0 {
		*f = FQName{}
		return nil
	}
	parsed, err := Parse(string(data))
	if err != nil {
		return fmt.Errorf("unmarshal FQName: %w", err)
	}
	*f = parsed
	return nil
}

// parseVersion parses "major.minor" with both parts decimal.
func parseVersion(version string) (major, minor uint64, err error) {
	dot := strings.IndexByte(version, '.')
	if dot < 0 {
		return 0, 0, fmt.Errorf("version %q is not major.minor", version)
	}
	major, err = strconv.ParseUint(version[:dot], 10, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("major version %q: %w", version[:dot], err)
	}
	minor, err = strconv.ParseUint(version[dot+1:], 10, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("minor version %q: %w", version[dot+1:], err)
	}
	return major, minor, nil
}

// validatePackage checks a dot-separated package path.
func validatePackage(pkg string) error {
	if pkg == "" {
		return fmt.Errorf("package is empty")
	}
	for _, segment := range strings.Split(pkg, ".") {
		if err := validateSegment(segment); err != nil {
			return err
		}
	}
	return nil
}

// validateSegment checks one lowercase package segment.
func validateSegment(segment string) error {
	if segment == "" {
		return fmt.Errorf("package has an empty segment")
	}
	for i, r := range segment {
		switch {
		case r >= 'a' && r <= 'z', r == '_':
		case r >= '0' && r <= '9':
			if i == 0 {
				return fmt.Errorf("package segment %q starts with a digit", segment)
			}
		default:
			return fmt.Errorf("package segment %q contains %q", segment, r)
		}
	}
	return nil
}

// validateIdentifier checks an interface name segment.
func validateIdentifier(identifier string) error {
	if identifier == "" {
		return fmt.Errorf("empty identifier")
	}
	for i, r := range identifier {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r == '_':
		case r >= '0' && r <= '9':
			if i == 0 {
				return fmt.Errorf("identifier %q starts with a digit", identifier)
			}
		default:
			return fmt.Errorf("identifier %q contains %q", identifier, r)
		}
	}
	return nil
}
