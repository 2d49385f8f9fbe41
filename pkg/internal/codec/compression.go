package codec

import (
	"bytes"
	"compress/gzip"
	"fmt"
	"io"
	"strings"

	"github.com/andybalholm/brotli"
	"github.com/golang/snappy"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4"
)

// Compression names a whole-payload compression algorithm.
type Compression string

const (
	CompressNone   Compression = "none"
	CompressGzip   Compression = "gzip"
	CompressSnappy Compression = "snappy"
	CompressZstd   Compression = "zstd"
	CompressBrotli Compression = "brotli"
	CompressLZ4    Compression = "lz4"
)

// ParseCompression maps a configuration value onto a Compression. The empty string
// means none; "deflate" is accepted as an alias for gzip.
func ParseCompression(name string) (Compression, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "none", "off":
		return CompressNone, nil
	case "gzip", "gz", "deflate":
		return CompressGzip, nil
	case "snappy":
		return CompressSnappy, nil
	case "zstd":
		return CompressZstd, nil
	case "brotli", "br":
		return CompressBrotli, nil
	case "lz4":
		return CompressLZ4, nil
	default:
		return "", fmt.Errorf("unknown compression %q", name)
	}
}

// Extension returns the file suffix conventionally used for the algorithm,
// including the leading dot, or "" for none.
func (c Compression) Extension() string {
	switch c {
	case CompressGzip:
		return ".gz"
	case CompressSnappy:
		return ".sz"
	case CompressZstd:
		return ".zst"
	case CompressBrotli:
		return ".br"
	case CompressLZ4:
		return ".lz4"
	default:
		return ""
	}
}

func (c Compression) String() string {
	if c == "" {
		return string(CompressNone)
	}
	return string(c)
}

// Compress encodes data with the given algorithm. CompressNone returns data unchanged.
func Compress(data []byte, algorithm Compression) ([]byte, error) {
	var b bytes.Buffer
	var w io.WriteCloser

	switch algorithm {
	case CompressGzip:
		w = gzip.NewWriter(&b)
	case CompressSnappy:
		w = snappy.NewBufferedWriter(&b)
	case CompressZstd:
		var err error
		w, err = zstd.NewWriter(&b)
		if err != nil {
			return nil, err
		}
	case CompressBrotli:
		w = brotli.NewWriterLevel(&b, brotli.BestCompression)
	case CompressLZ4:
		w = lz4.NewWriter(&b)
	case CompressNone, "":
		return data, nil
	default:
		return nil, fmt.Errorf("unknown compression %q", string(algorithm))
	}

	if _, err := w.Write(data); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return b.Bytes(), nil
}

// Decompress reverses Compress.
func Decompress(data []byte, algorithm Compression) ([]byte, error) {
	var b bytes.Buffer
	var r io.Reader

	switch algorithm {
	case CompressGzip:
		gz, err := gzip.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, err
		}
		defer gz.Close()
		r = gz
	case CompressSnappy:
		r = snappy.NewReader(bytes.NewReader(data))
	case CompressZstd:
		dec, err := zstd.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, err
		}
		defer dec.Close()
		r = dec
	case CompressBrotli:
		r = brotli.NewReader(bytes.NewReader(data))
	case CompressLZ4:
		r = lz4.NewReader(bytes.NewReader(data))
	case CompressNone, "":
		return data, nil
	default:
		return nil, fmt.Errorf("unknown compression %q", string(algorithm))
	}

	if _, err := io.Copy(&b, r); err != nil {
		return nil, fmt.Errorf("decompress %s: %w", algorithm, err)
	}
	return b.Bytes(), nil
}
