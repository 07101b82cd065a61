// Copyright 2026 The Hwire Authors
// SPDX-License-Identifier: Apache-2.0

package manifest

import (
	"os"
	"path/filepath"
	"testing"
)

func mustManifest(t *testing.T, name string, entries []Entry) *Manifest {
	t.Helper()
	m, err := New(name, entries)
	if err != nil {
		t.Fatalf("New(%s): %v", name, err)
	}
	return m
}

func TestLookupExactPackageAndVersion(t *testing.T) {
	m := mustManifest(t, "core", []Entry{
		{Package: "android.hidl.base", Version: Version{1, 0}, Transport: TransportBinder},
		{Package: "android.hidl.memory", Version: Version{1, 0}, Transport: TransportPassthrough},
	})

	if got := m.Transport("android.hidl.base", Version{1, 0}); got != TransportBinder {
		t.Errorf("lookup = %v, want hwbinder", got)
	}
	if got := m.Transport("android.hidl.memory", Version{1, 0}); got != TransportPassthrough {
		t.Errorf("lookup = %v, want passthrough", got)
	}

	// Wrong version and unknown package both miss.
	if got := m.Transport("android.hidl.base", Version{1, 1}); got != TransportUndetermined {
		t.Errorf("lookup of undeclared version = %v, want undetermined", got)
	}
	if got := m.Transport("vendor.acme.light", Version{1, 0}); got != TransportUndetermined {
		t.Errorf("lookup of undeclared package = %v, want undetermined", got)
	}
}

func TestNewRejectsInvalidEntries(t *testing.T) {
	cases := []struct {
		label   string
		entries []Entry
	}{
		{"malformed package", []Entry{
			{Package: "Not A Package", Version: Version{1, 0}, Transport: TransportBinder},
		}},
		{"versioned package path", []Entry{
			{Package: "android.hidl.base@1.0", Version: Version{1, 0}, Transport: TransportBinder},
		}},
		{"undetermined transport", []Entry{
			{Package: "android.hidl.base", Version: Version{1, 0}, Transport: TransportUndetermined},
		}},
		{"conflicting duplicate", []Entry{
			{Package: "android.hidl.base", Version: Version{1, 0}, Transport: TransportBinder},
			{Package: "android.hidl.base", Version: Version{1, 0}, Transport: TransportPassthrough},
		}},
	}
	for _, c := range cases {
		if _, err := New("test", c.entries); err == nil {
			t.Errorf("%s: New succeeded, want error", c.label)
		}
	}
}

func TestEntriesSortedCopy(t *testing.T) {
	m := mustManifest(t, "device", []Entry{
		{Package: "vendor.acme.light", Version: Version{2, 1}, Transport: TransportBinder},
		{Package: "android.hardware.nfc", Version: Version{1, 0}, Transport: TransportBinder},
		{Package: "vendor.acme.light", Version: Version{1, 0}, Transport: TransportPassthrough},
	})

	entries := m.Entries()
	if len(entries) != 3 {
		t.Fatalf("Entries() returned %d entries, want 3", len(entries))
	}
	if entries[0].Package != "android.hardware.nfc" {
		t.Errorf("entries[0] = %s, want android.hardware.nfc", entries[0].Package)
	}
	if entries[1].Version != (Version{1, 0}) || entries[2].Version != (Version{2, 1}) {
		t.Errorf("versions not sorted: %v then %v", entries[1].Version, entries[2].Version)
	}

	// Mutating the copy must not affect lookups.
	entries[0].Transport = TransportPassthrough
	if got := m.Transport("android.hardware.nfc", Version{1, 0}); got != TransportBinder {
		t.Error("mutating Entries() copy changed the manifest")
	}
}

func TestLoadFileYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "core.yaml")
	content := `
name: core
entries:
  - package: android.hidl.base
    versions: ["1.0"]
    transport: hwbinder
  - package: android.hidl.memory
    versions: ["1.0", "1.1"]
    transport: passthrough
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing manifest file: %v", err)
	}

	m, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if m.Name() != "core" {
		t.Errorf("Name() = %q, want core", m.Name())
	}
	if m.Len() != 3 {
		t.Errorf("Len() = %d, want 3 (one entry per declared version)", m.Len())
	}
	if got := m.Transport("android.hidl.memory", Version{1, 1}); got != TransportPassthrough {
		t.Errorf("lookup = %v, want passthrough", got)
	}
}

func TestLoadFileJSONC(t *testing.T) {
	path := filepath.Join(t.TempDir(), "device.jsonc")
	content := `{
  // Vendor interfaces for the reference board.
  "name": "device",
  "entries": [
    {"package": "vendor.acme.light", "versions": ["2.1"], "transport": "hwbinder"},
  ],
}`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing manifest file: %v", err)
	}

	m, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if got := m.Transport("vendor.acme.light", Version{2, 1}); got != TransportBinder {
		t.Errorf("lookup = %v, want hwbinder", got)
	}
}

func TestLoadFileDefaultsNameFromFilename(t *testing.T) {
	path := filepath.Join(t.TempDir(), "framework.yaml")
	content := `
entries:
  - package: android.hidl.base
    versions: ["1.0"]
    transport: hwbinder
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing manifest file: %v", err)
	}

	m, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if m.Name() != "framework" {
		t.Errorf("Name() = %q, want framework", m.Name())
	}
}

func TestLoadFileErrors(t *testing.T) {
	directory := t.TempDir()
	write := func(name, content string) string {
		t.Helper()
		path := filepath.Join(directory, name)
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("writing %s: %v", name, err)
		}
		return path
	}

	cases := []struct {
		label string
		path  string
	}{
		{"missing file", filepath.Join(directory, "absent.yaml")},
		{"unsupported extension", write("manifest.xml", "<manifest/>")},
		{"no versions", write("noversion.yaml", "entries:\n  - package: a.b\n    transport: hwbinder\n")},
		{"bad transport", write("badtransport.yaml", "entries:\n  - package: a.b\n    versions: [\"1.0\"]\n    transport: carrier-pigeon\n")},
		{"bad version", write("badversion.yaml", "entries:\n  - package: a.b\n    versions: [\"one\"]\n    transport: hwbinder\n")},
	}
	for _, c := range cases {
		if _, err := LoadFile(c.path); err == nil {
			t.Errorf("%s: LoadFile succeeded, want error", c.label)
		}
	}
}

func TestTransportTextRoundTrip(t *testing.T) {
	for _, transport := range []Transport{TransportBinder, TransportPassthrough} {
		text, err := transport.MarshalText()
		if err != nil {
			t.Fatalf("MarshalText(%v): %v", transport, err)
		}
		var decoded Transport
		if err := decoded.UnmarshalText(text); err != nil {
			t.Fatalf("UnmarshalText(%q): %v", text, err)
		}
		if decoded != transport {
			t.Errorf("round trip: got %v, want %v", decoded, transport)
		}
	}

	// The sentinel marshals empty and unmarshals back from empty.
	text, err := TransportUndetermined.MarshalText()
	if err != nil {
		t.Fatalf("MarshalText(undetermined): %v", err)
	}
	if len(text) != 0 {
		t.Errorf("undetermined marshaled as %q, want empty", text)
	}
	var decoded Transport
	if err := decoded.UnmarshalText(nil); err != nil {
		t.Fatalf("UnmarshalText(empty): %v", err)
	}
	if decoded != TransportUndetermined {
		t.Errorf("empty input decoded as %v", decoded)
	}

	if _, err := ParseTransport("undetermined"); err == nil {
		t.Error("ParseTransport accepted the sentinel as a declaration")
	}
}
