// Copyright 2026 The Hwire Authors
// SPDX-License-Identifier: Apache-2.0

// Package resolve decides how a given interface instance should be
// reached: out-of-process over the binder driver, in-process via
// passthrough, or undetermined when no manifest declares it.
//
// Two manifests are consulted, chosen by namespace: interfaces in the
// reserved core namespace resolve against the core manifest, all
// others against the device manifest. The lookup itself is agnostic to
// which manifest was selected.
//
// Resolution is pure with respect to its inputs and never retries. An
// invalid name, a missing manifest, or a missing entry all produce the
// TransportUndetermined sentinel — normal, reportable outcomes, not
// errors.
package resolve
