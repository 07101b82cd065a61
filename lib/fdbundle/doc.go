// Copyright 2026 The Hwire Authors
// SPDX-License-Identifier: Apache-2.0

// Package fdbundle provides the native resource bundle passed across
// process boundaries by the hwire IPC layer: an aggregate of open file
// descriptors plus opaque integer metadata.
//
// A Bundle is the unit of duplication and release. Clone duplicates
// every descriptor via dup(2) and never returns a partially cloned
// bundle — on failure it closes whatever it had duplicated so far.
// Close releases all descriptors and is idempotent.
//
// Bundles carry no synchronization. A bundle handed to another owner
// (via wire.Handle move semantics) must not be touched by the previous
// owner afterwards.
package fdbundle
