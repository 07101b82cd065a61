// Copyright 2026 The Hwire Authors
// SPDX-License-Identifier: Apache-2.0

// Package fqname provides validated, immutable fully-qualified
// interface names: the identity under which an interface is looked up
// in a transport manifest.
//
// The canonical form is
//
//	package@major.minor::Interface
//
// where package is a dot-separated path ("android.hidl.base",
// "vendor.acme.light"), the version is mandatory for transport
// resolution but optional in the grammar, and the ::Interface suffix
// is optional for package-level names.
//
// Parse is the only constructor. Once parsed, an FQName is immutable
// and its accessors return pre-computed values. FQName implements
// encoding.TextMarshaler and TextUnmarshaler using the canonical form,
// so it can be used directly as a YAML, JSON, or CBOR field.
package fqname
