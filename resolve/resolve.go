// Copyright 2026 The Hwire Authors
// SPDX-License-Identifier: Apache-2.0

package resolve

import (
	"log/slog"

	"github.com/hwire-foundation/hwire/fqname"
	"github.com/hwire-foundation/hwire/manifest"
)

// DefaultCoreNamespace is the reserved package prefix whose interfaces
// resolve against the core manifest instead of the device manifest.
const DefaultCoreNamespace = "android.hidl"

// Resolver resolves interface names to transports against a fixed
// pair of manifests. The zero value is usable: both manifests absent
// (every lookup undetermined), the default core namespace, and
// slog.Default() for diagnostics.
//
// A Resolver holds read-only borrows of its manifests and no other
// state; it is safe for concurrent use.
type Resolver struct {
	// Core is consulted for interfaces inside the core namespace.
	// May be nil.
	Core *manifest.Manifest

	// Device is consulted for all other interfaces. May be nil.
	Device *manifest.Manifest

	// CoreNamespace overrides DefaultCoreNamespace when non-empty.
	CoreNamespace string

	// Logger receives resolution diagnostics. Defaults to
	// slog.Default().
	Logger *slog.Logger
}

// Transport resolves a fully-qualified interface name. It returns
// TransportUndetermined when the name is malformed or unversioned,
// when the selected manifest is absent, or when that manifest has no
// entry for the package and version.
func (r *Resolver) Transport(name string) manifest.Transport {
	logger := r.logger()

	fqn, err := fqname.Parse(name)
	if err != nil {
		logger.Error("transport resolution: invalid interface name",
			"name", name, "error", err)
		return manifest.TransportUndetermined
	}
	if !fqn.HasVersion() {
		logger.Error("transport resolution: name does not specify a version",
			"name", fqn.String())
		return manifest.TransportUndetermined
	}

	if fqn.InPackage(r.coreNamespace()) {
		return r.fromManifest(fqn, "core", r.Core)
	}
	return r.fromManifest(fqn, "device", r.Device)
}

// fromManifest performs the lookup against one manifest. The label
// identifies which manifest was selected in diagnostics, so the
// lookup itself stays agnostic to the selection.
func (r *Resolver) fromManifest(fqn fqname.FQName, label string, m *manifest.Manifest) manifest.Transport {
	logger := r.logger()

	if m == nil {
		logger.Warn("transport resolution: manifest absent, using default transport",
			"manifest", label, "name", fqn.String())
		return manifest.TransportUndetermined
	}

	version := manifest.Version{Major: fqn.Major(), Minor: fqn.Minor()}
	transport := m.Transport(fqn.Package(), version)
	if transport == manifest.TransportUndetermined {
		logger.Warn("transport resolution: no manifest entry, using default transport",
			"manifest", m.Name(), "name", fqn.String())
	} else {
		logger.Debug("transport resolution: declared transport found",
			"manifest", m.Name(), "name", fqn.String(), "transport", transport.String())
	}
	return transport
}

func (r *Resolver) coreNamespace() string {
	if r.CoreNamespace != "" {
		return r.CoreNamespace
	}
	return DefaultCoreNamespace
}

func (r *Resolver) logger() *slog.Logger {
	if r.Logger != nil {
		return r.Logger
	}
	return slog.Default()
}

// Transport resolves name against a core and a device manifest using
// the default core namespace. Convenience for callers that do not hold
// a Resolver.
func Transport(name string, core, device *manifest.Manifest) manifest.Transport {
	resolver := Resolver{Core: core, Device: device}
	return resolver.Transport(name)
}
