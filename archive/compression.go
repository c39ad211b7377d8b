package archive

import (
	"encoding/binary"
	"errors"
	"fmt"
	"sync"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Compression selects the block compression of archived records.
type Compression uint8

const (
	// CompressionNone stores records uncompressed.
	CompressionNone Compression = 0
	// CompressionLZ4 favors speed over ratio.
	CompressionLZ4 Compression = 1
	// CompressionZSTD favors ratio; the default for archived runs.
	CompressionZSTD Compression = 2
)

func (c Compression) String() string {
	switch c {
	case CompressionNone:
		return "none"
	case CompressionLZ4:
		return "lz4"
	case CompressionZSTD:
		return "zstd"
	default:
		return fmt.Sprintf("compression(%d)", uint8(c))
	}
}

// Block format: [Compression uint8][UncompressedSize uint32][CompressedSize uint32][Data].
// CompressedSize == 0 means the payload is stored raw, which happens when
// compression does not pay for itself.
const blockHeaderSize = 9

// storedThreshold is the ratio above which a compressed payload is stored raw.
const storedThreshold = 0.9

var (
	zstdEncoderPool = sync.Pool{New: func() any {
		enc, _ := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
		return enc
	}}
	zstdDecoderPool = sync.Pool{New: func() any {
		dec, _ := zstd.NewReader(nil)
		return dec
	}}
)

// Compress frames data as one compressed block.
func Compress(data []byte, c Compression) ([]byte, error) {
	var compressed []byte
	var err error

	switch c {
	case CompressionNone:
	case CompressionLZ4:
		compressed, err = compressLZ4(data)
	case CompressionZSTD:
		compressed = compressZSTD(data)
	default:
		return nil, fmt.Errorf("unknown compression type %d", uint8(c))
	}
	if err != nil {
		return nil, err
	}

	if len(compressed) == 0 || float64(len(compressed)) > float64(len(data))*storedThreshold {
		out := make([]byte, blockHeaderSize+len(data))
		out[0] = byte(c)
		binary.LittleEndian.PutUint32(out[1:], uint32(len(data)))
		binary.LittleEndian.PutUint32(out[5:], 0)
		copy(out[blockHeaderSize:], data)
		return out, nil
	}

	out := make([]byte, blockHeaderSize+len(compressed))
	out[0] = byte(c)
	binary.LittleEndian.PutUint32(out[1:], uint32(len(data)))
	binary.LittleEndian.PutUint32(out[5:], uint32(len(compressed)))
	copy(out[blockHeaderSize:], compressed)
	return out, nil
}

// Decompress unframes a block produced by Compress. The compression type is
// read from the header, so readers need no out-of-band configuration.
func Decompress(data []byte) ([]byte, error) {
	if len(data) < blockHeaderSize {
		return nil, errors.New("block too small for header")
	}
	c := Compression(data[0])
	uncompressedSize := binary.LittleEndian.Uint32(data[1:])
	compressedSize := binary.LittleEndian.Uint32(data[5:])

	if compressedSize == 0 {
		if uint32(len(data)) < blockHeaderSize+uncompressedSize {
			return nil, errors.New("stored block truncated")
		}
		out := make([]byte, uncompressedSize)
		copy(out, data[blockHeaderSize:blockHeaderSize+int(uncompressedSize)])
		return out, nil
	}

	if uint32(len(data)) < blockHeaderSize+compressedSize {
		return nil, errors.New("compressed block truncated")
	}
	payload := data[blockHeaderSize : blockHeaderSize+int(compressedSize)]

	switch c {
	case CompressionLZ4:
		out := make([]byte, uncompressedSize)
		n, err := lz4.UncompressBlock(payload, out)
		if err != nil {
			return nil, err
		}
		if uint32(n) != uncompressedSize {
			return nil, errors.New("lz4 size mismatch")
		}
		return out, nil

	case CompressionZSTD:
		dec := zstdDecoderPool.Get().(*zstd.Decoder)
		defer zstdDecoderPool.Put(dec)
		out, err := dec.DecodeAll(payload, make([]byte, 0, uncompressedSize))
		if err != nil {
			return nil, err
		}
		if uint32(len(out)) != uncompressedSize {
			return nil, errors.New("zstd size mismatch")
		}
		return out, nil

	default:
		return nil, fmt.Errorf("unknown compression type %d", uint8(c))
	}
}

func compressLZ4(data []byte) ([]byte, error) {
	buf := make([]byte, lz4.CompressBlockBound(len(data)))
	n, err := lz4.CompressBlock(data, buf, nil)
	if err != nil {
		return nil, err
	}
	// n == 0 means incompressible; the caller stores the block raw.
	return buf[:n], nil
}

func compressZSTD(data []byte) []byte {
	enc := zstdEncoderPool.Get().(*zstd.Encoder)
	defer zstdEncoderPool.Put(enc)
	return enc.EncodeAll(data, nil)
}
