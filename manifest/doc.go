// Copyright 2026 The Hwire Authors
// SPDX-License-Identifier: Apache-2.0

// Package manifest provides transport manifests: read-only registries
// declaring, per interface package and version, the transport method
// by which that interface is reached.
//
// Two manifests exist on a running system — one for the reserved core
// namespace, one for everything the device vendor adds — and package
// resolve consults one or the other per lookup. This package only
// models a single manifest: loading (YAML or JSONC), the exact
// package+version lookup, and a compact binary snapshot format for
// handing a parsed manifest to helper processes.
//
// A Manifest is immutable after construction and safe for concurrent
// readers.
package manifest
