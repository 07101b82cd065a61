// Copyright 2026 The Hwire Authors
// SPDX-License-Identifier: Apache-2.0

package manifest

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	"github.com/hwire-foundation/hwire/fqname"
)

// Version is an interface package version. Lookups are exact: 1.0 and
// 1.1 are distinct manifest keys.
type Version struct {
	Major uint64
	Minor uint64
}

// ParseVersion parses "major.minor" decimal.
func ParseVersion(s string) (Version, error) {
	dot := strings.IndexByte(s, '.')
	if dot < 0 {
		return Version{}, fmt.Errorf("version %q is not major.minor", s)
	}
	major, err := strconv.ParseUint(s[:dot], 10, 64)
	if err != nil {
		return Version{}, fmt.Errorf("major version %q: %w", s[:dot], err)
	}
	minor, err := strconv.ParseUint(s[dot+1:], 10, 64)
	if err != nil {
		return Version{}, fmt.Errorf("minor version %q: %w", s[dot+1:], err)
	}
	return Version{Major: major, Minor: minor}, nil
}

// String returns "major.minor".
func (v Version) String() string {
	return strconv.FormatUint(v.Major, 10) + "." + strconv.FormatUint(v.Minor, 10)
}

// MarshalText implements encoding.TextMarshaler.
func (v Version) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (v *Version) UnmarshalText(data []byte) error {
	parsed, err := ParseVersion(string(data))
	if err != nil {
		return fmt.Errorf("unmarshal Version: %w", err)
	}
	*v = parsed
	return nil
}

// Entry is one declaration: this package at this version is reached
// via this transport.
type Entry struct {
	Package   string
	Version   Version
	Transport Transport
}

// entryKey is the lookup key. Exact package and exact version.
type entryKey struct {
	pkg     string
	version Version
}

// Manifest is an immutable registry of transport declarations. Build
// one with New or LoadFile; lookups are safe for concurrent readers.
type Manifest struct {
	name    string
	entries map[entryKey]Transport
}

// New builds a manifest from declarations. The name is a diagnostic
// label ("core", "device") used in resolver logs. Every entry's
// package must be a valid bare package path and its transport must be
// concrete; a duplicate package+version with a conflicting transport
// is an error.
func New(name string, entries []Entry) (*Manifest, error) {
	m := &Manifest{
		name:    name,
		entries: make(map[entryKey]Transport, len(entries)),
	}
	for _, entry := range entries {
		fqn, err := fqname.Parse(entry.Package)
		if err != nil {
			return nil, fmt.Errorf("manifest %s: %w", name, err)
		}
		if fqn.HasVersion() || fqn.Interface() != "" {
			return nil, fmt.Errorf("manifest %s: entry package %q must be a bare package path", name, entry.Package)
		}
		if entry.Transport == TransportUndetermined {
			return nil, fmt.Errorf("manifest %s: entry %s@%s declares no transport", name, entry.Package, entry.Version)
		}
		key := entryKey{pkg: entry.Package, version: entry.Version}
		if existing, ok := m.entries[key]; ok && existing != entry.Transport {
			return nil, fmt.Errorf("manifest %s: conflicting transports for %s@%s: %s vs %s",
				name, entry.Package, entry.Version, existing, entry.Transport)
		}
		m.entries[key] = entry.Transport
	}
	return m, nil
}

// Name returns the manifest's diagnostic label.
func (m *Manifest) Name() string {
	return m.name
}

// Len returns the number of declarations.
func (m *Manifest) Len() int {
	return len(m.entries)
}

// Transport looks up the declared transport for an exact package and
// version. Returns TransportUndetermined when no entry exists.
func (m *Manifest) Transport(pkg string, version Version) Transport {
	return m.entries[entryKey{pkg: pkg, version: version}]
}

// Entries returns the declarations sorted by package, then version.
// The slice is a copy; mutating it does not affect the manifest.
func (m *Manifest) Entries() []Entry {
	entries := make([]Entry, 0, len(m.entries))
	for key, transport := range m.entries {
		entries = append(entries, Entry{
			Package:   key.pkg,
			Version:   key.version,
			Transport: transport,
		})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Package != entries[j].Package {
			return entries[i].Package < entries[j].Package
		}
		if entries[i].Version.Major != entries[j].Version.Major {
			return entries[i].Version.Major < entries[j].Version.Major
		}
		return entries[i].Version.Minor < entries[j].Version.Minor
	})
	return entries
}

// fileManifest is the on-disk schema shared by the YAML and JSONC
// loaders. Versions are strings ("1.0") so the file format stays
// independent of any in-memory representation.
type fileManifest struct {
	Name    string      `yaml:"name" json:"name"`
	Entries []fileEntry `yaml:"entries" json:"entries"`
}

type fileEntry struct {
	Package   string   `yaml:"package" json:"package"`
	Versions  []string `yaml:"versions" json:"versions"`
	Transport string   `yaml:"transport" json:"transport"`
}

// LoadFile loads a manifest from a YAML (.yaml, .yml) or JSONC
// (.json, .jsonc) file, chosen by extension. The file's name field,
// when present, overrides the default label derived from the filename.
func LoadFile(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading manifest: %w", err)
	}

	var file fileManifest
	switch extension := strings.ToLower(filepath.Ext(path)); extension {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &file); err != nil {
			return nil, fmt.Errorf("parsing manifest %s: %w", path, err)
		}
	case ".json", ".jsonc":
		if err := json.Unmarshal(jsonc.ToJSON(data), &file); err != nil {
			return nil, fmt.Errorf("parsing manifest %s: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("manifest %s: unsupported extension %q (want .yaml, .yml, .json, or .jsonc)", path, extension)
	}

	name := file.Name
	if name == "" {
		name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}

	var entries []Entry
	for _, fe := range file.Entries {
		if len(fe.Versions) == 0 {
			return nil, fmt.Errorf("manifest %s: entry %q lists no versions", path, fe.Package)
		}
		transport, err := ParseTransport(fe.Transport)
		if err != nil {
			return nil, fmt.Errorf("manifest %s: entry %q: %w", path, fe.Package, err)
		}
		for _, versionString := range fe.Versions {
			version, err := ParseVersion(versionString)
			if err != nil {
				return nil, fmt.Errorf("manifest %s: entry %q: %w", path, fe.Package, err)
			}
			entries = append(entries, Entry{
				Package:   fe.Package,
				Version:   version,
				Transport: transport,
			})
		}
	}

	return New(name, entries)
}
