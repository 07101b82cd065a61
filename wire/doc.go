// Copyright 2026 The Hwire Authors
// SPDX-License-Identifier: Apache-2.0

// Package wire provides the primitive value types marshalled across
// the hwire process boundary: Handle, an owns-or-borrows wrapper
// around a native resource bundle, and String, an owns-or-borrows
// byte-buffer string with a cached 32-bit length.
//
// Both types follow the same ownership discipline. Copying always
// duplicates the underlying resource (descriptor clone for Handle,
// fresh allocation for String); moving transfers it and resets the
// source to its default state; every replacement operation first
// releases whatever the instance currently owns. The generated
// marshalling code relies on these rules to know exactly who frees
// what after a message has been read or written.
//
// Operations whose safe completion cannot be guaranteed — cloning a
// resource bundle failing mid-way, or a requested length exceeding
// the 32-bit wire bound — panic with a "wire:" diagnostic. They are
// process-level invariant violations, deliberately distinct from the
// recoverable sentinel outcomes used elsewhere (see package resolve).
//
// Instances are plain value objects with no synchronization: distinct
// instances are independent and safe to use concurrently, but
// concurrent mutation of one instance must be prevented by the caller.
package wire
