// Copyright 2026 The Hwire Authors
// SPDX-License-Identifier: Apache-2.0

package manifest

import (
	"fmt"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// compressionTag identifies the compression of a snapshot body. Stored
// as one byte in the snapshot header; the values are format constants.
type compressionTag uint8

const (
	// compressionNone stores the body uncompressed. Chosen when the
	// body is tiny or incompressible.
	compressionNone compressionTag = 0

	// compressionLZ4 is LZ4 block compression: fast decode, modest
	// ratio. Chosen when zstd's ratio gain over lz4 does not justify
	// its CPU cost.
	compressionLZ4 compressionTag = 1

	// compressionZstd is zstd at the default level. CBOR manifest
	// bodies are repetitive text, which zstd handles well.
	compressionZstd compressionTag = 2
)

// zstdEncoder and zstdDecoder are reused across snapshots; both are
// safe for concurrent use.
var (
	zstdEncoder *zstd.Encoder
	zstdDecoder *zstd.Decoder
)

func init() {
	var err error
	zstdEncoder, err = zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		panic("manifest: zstd encoder initialization failed: " + err.Error())
	}
	zstdDecoder, err = zstd.NewReader(nil)
	if err != nil {
		panic("manifest: zstd decoder initialization failed: " + err.Error())
	}
}

// compressBody compresses the snapshot body, probing zstd first and
// falling back to lz4 and then to no compression when the ratio does
// not pay for itself.
func compressBody(body []byte) ([]byte, compressionTag) {
	if len(body) == 0 {
		return body, compressionNone
	}

	compressed := zstdEncoder.EncodeAll(body, nil)
	ratio := float64(len(body)) / float64(len(compressed))
	if ratio >= 1.5 {
		return compressed, compressionZstd
	}

	if ratio >= 1.1 {
		if lz4Compressed, ok := compressLZ4(body); ok {
			return lz4Compressed, compressionLZ4
		}
		return compressed, compressionZstd
	}

	return body, compressionNone
}

// decompressBody reverses compressBody. The uncompressed size comes
// from the snapshot header and must match exactly.
func decompressBody(compressed []byte, tag compressionTag, uncompressedSize int) ([]byte, error) {
	switch tag {
	case compressionNone:
		if len(compressed) != uncompressedSize {
			return nil, fmt.Errorf("uncompressed body is %d bytes, header says %d", len(compressed), uncompressedSize)
		}
		return compressed, nil

	case compressionLZ4:
		destination := make([]byte, uncompressedSize)
		read, err := lz4.UncompressBlock(compressed, destination)
		if err != nil {
			return nil, fmt.Errorf("lz4 decompress: %w", err)
		}
		if read != uncompressedSize {
			return nil, fmt.Errorf("lz4 decompress: got %d bytes, header says %d", read, uncompressedSize)
		}
		return destination, nil

	case compressionZstd:
		result, err := zstdDecoder.DecodeAll(compressed, make([]byte, 0, uncompressedSize))
		if err != nil {
			return nil, fmt.Errorf("zstd decompress: %w", err)
		}
		if len(result) != uncompressedSize {
			return nil, fmt.Errorf("zstd decompress: got %d bytes, header says %d", len(result), uncompressedSize)
		}
		return result, nil

	default:
		return nil, fmt.Errorf("unsupported compression tag %d", tag)
	}
}

// compressLZ4 performs block-mode LZ4. Returns ok=false when LZ4
// reports the data incompressible or fails to shrink it.
func compressLZ4(data []byte) ([]byte, bool) {
	destination := make([]byte, lz4.CompressBlockBound(len(data)))
	written, err := lz4.CompressBlock(data, destination, nil)
	if err != nil || written == 0 || written >= len(data) {
		return nil, false
	}
	return destination[:written], true
}
