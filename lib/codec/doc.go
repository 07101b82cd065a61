// Copyright 2026 The Hwire Authors
// SPDX-License-Identifier: Apache-2.0

// Package codec is hwire's CBOR configuration: Core Deterministic
// Encoding on the way out, permissive standard decoding on the way in.
//
// Deterministic encoding matters here because manifest snapshots are
// content-hashed (see manifest.WriteSnapshot) — the same entries must
// always produce the same bytes. Text-marshaler types (fqname.FQName,
// manifest.Transport) serialize as CBOR text strings.
//
// Consumers import this package rather than fxamacker/cbor directly so
// every encoder in the process shares one configuration.
package codec
