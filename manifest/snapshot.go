// Copyright 2026 The Hwire Authors
// SPDX-License-Identifier: Apache-2.0

package manifest

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"

	"github.com/zeebo/blake3"

	"github.com/hwire-foundation/hwire/lib/codec"
)

// Snapshot format: a parsed manifest serialized for hand-off to helper
// processes that should not re-parse (or even be able to read) the
// source YAML. The body is deterministic CBOR, optionally compressed,
// and integrity-checked with a keyed BLAKE3 digest of the uncompressed
// bytes.
//
// Layout:
//
//	offset  size  field
//	0       4     magic "HWMF"
//	4       1     format version (1)
//	5       1     compression tag
//	6       4     uncompressed body size, little endian
//	10      32    BLAKE3 keyed digest of the uncompressed body
//	42      —     body (compressed per tag)

var snapshotMagic = [4]byte{'H', 'W', 'M', 'F'}

const snapshotFormatVersion = 1

// snapshotHeaderSize is the fixed prefix before the body.
const snapshotHeaderSize = 4 + 1 + 1 + 4 + 32

// snapshotDomainKey is the BLAKE3 keyed-hash domain key. ASCII domain
// name, zero-padded to the required 32 bytes — readable in hex dumps,
// opaque to the hash.
var snapshotDomainKey = [32]byte{
	'h', 'w', 'i', 'r', 'e', '.', 'm', 'a', 'n', 'i', 'f', 'e', 's', 't', '.',
	's', 'n', 'a', 'p', 's', 'h', 'o', 't', 0, 0, 0, 0, 0, 0, 0, 0, 0,
}

// snapshotBody is the CBOR schema of the body. Version and Transport
// serialize as text strings via their TextMarshaler implementations.
type snapshotBody struct {
	Name    string          `cbor:"name"`
	Entries []snapshotEntry `cbor:"entries"`
}

type snapshotEntry struct {
	Package   string    `cbor:"package"`
	Version   Version   `cbor:"version"`
	Transport Transport `cbor:"transport"`
}

// WriteSnapshot serializes the manifest to path. The file is written
// via a temp file and rename so readers never observe a partial
// snapshot.
func WriteSnapshot(path string, m *Manifest) error {
	body := snapshotBody{Name: m.name, Entries: nil}
	for _, entry := range m.Entries() {
		body.Entries = append(body.Entries, snapshotEntry{
			Package:   entry.Package,
			Version:   entry.Version,
			Transport: entry.Transport,
		})
	}

	encoded, err := codec.Marshal(body)
	if err != nil {
		return fmt.Errorf("encoding manifest snapshot: %w", err)
	}
	if uint64(len(encoded)) > uint64(^uint32(0)) {
		return fmt.Errorf("manifest snapshot body is %d bytes, exceeds format limit", len(encoded))
	}

	digest := snapshotDigest(encoded)
	compressed, tag := compressBody(encoded)

	out := make([]byte, 0, snapshotHeaderSize+len(compressed))
	out = append(out, snapshotMagic[:]...)
	out = append(out, snapshotFormatVersion, byte(tag))
	out = binary.LittleEndian.AppendUint32(out, uint32(len(encoded)))
	out = append(out, digest[:]...)
	out = append(out, compressed...)

	temp, err := os.CreateTemp(filepath.Dir(path), ".hwire-snapshot-*")
	if err != nil {
		return fmt.Errorf("creating snapshot temp file: %w", err)
	}
	tempPath := temp.Name()
	if _, err := temp.Write(out); err != nil {
		temp.Close()
		os.Remove(tempPath)
		return fmt.Errorf("writing snapshot: %w", err)
	}
	if err := temp.Close(); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("closing snapshot temp file: %w", err)
	}
	if err := os.Rename(tempPath, path); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("publishing snapshot: %w", err)
	}
	return nil
}

// ReadSnapshot loads a manifest snapshot written by WriteSnapshot,
// verifying the integrity digest before trusting the contents.
func ReadSnapshot(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading snapshot: %w", err)
	}
	if len(data) < snapshotHeaderSize {
		return nil, fmt.Errorf("snapshot %s: truncated header (%d bytes)", path, len(data))
	}
	if !bytes.Equal(data[:4], snapshotMagic[:]) {
		return nil, fmt.Errorf("snapshot %s: bad magic", path)
	}
	if data[4] != snapshotFormatVersion {
		return nil, fmt.Errorf("snapshot %s: unsupported format version %d", path, data[4])
	}
	tag := compressionTag(data[5])
	uncompressedSize := int(binary.LittleEndian.Uint32(data[6:10]))
	var digest [32]byte
	copy(digest[:], data[10:42])

	encoded, err := decompressBody(data[42:], tag, uncompressedSize)
	if err != nil {
		return nil, fmt.Errorf("snapshot %s: %w", path, err)
	}
	if snapshotDigest(encoded) != digest {
		return nil, fmt.Errorf("snapshot %s: integrity digest mismatch", path)
	}

	var body snapshotBody
	if err := codec.Unmarshal(encoded, &body); err != nil {
		return nil, fmt.Errorf("snapshot %s: decoding body: %w", path, err)
	}

	entries := make([]Entry, 0, len(body.Entries))
	for _, se := range body.Entries {
		entries = append(entries, Entry{
			Package:   se.Package,
			Version:   se.Version,
			Transport: se.Transport,
		})
	}
	return New(body.Name, entries)
}

// snapshotDigest computes the domain-keyed BLAKE3 digest of the
// uncompressed body.
func snapshotDigest(body []byte) [32]byte {
	hasher, err := blake3.NewKeyed(snapshotDomainKey[:])
	if err != nil {
		// NewKeyed only fails on wrong key length, which the fixed-size
		// array rules out.
		panic("manifest: BLAKE3 keyed hash initialization failed: " + err.Error())
	}
	hasher.Write(body)
	var digest [32]byte
	copy(digest[:], hasher.Sum(nil))
	return digest
}
