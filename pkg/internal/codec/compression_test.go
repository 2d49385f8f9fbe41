package codec_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/joeydtaylor/sdrhunter/pkg/internal/codec"
)

func TestCompressRoundTrip(t *testing.T) {
	payload := []byte(strings.Repeat(`{"freq_center": 105000000.0, "bw": 10000.0}`, 64))

	for _, algo := range []codec.Compression{
		codec.CompressNone,
		codec.CompressGzip,
		codec.CompressSnappy,
		codec.CompressZstd,
		codec.CompressBrotli,
		codec.CompressLZ4,
	} {
		t.Run(algo.String(), func(t *testing.T) {
			packed, err := codec.Compress(payload, algo)
			if err != nil {
				t.Fatalf("Compress: %v", err)
			}
			if algo != codec.CompressNone && len(packed) >= len(payload) {
				t.Fatalf("expected %s to shrink a repetitive payload: %d >= %d", algo, len(packed), len(payload))
			}
			unpacked, err := codec.Decompress(packed, algo)
			if err != nil {
				t.Fatalf("Decompress: %v", err)
			}
			if !bytes.Equal(unpacked, payload) {
				t.Fatalf("round trip mismatch for %s", algo)
			}
		})
	}
}

func TestDecompressRejectsGarbage(t *testing.T) {
	if _, err := codec.Decompress([]byte("not gzip"), codec.CompressGzip); err == nil {
		t.Fatal("expected gzip header error")
	}
}

func TestUnknownCompression(t *testing.T) {
	if _, err := codec.Compress([]byte("x"), codec.Compression("rar")); err == nil {
		t.Fatal("expected error for unknown algorithm")
	}
	if _, err := codec.ParseCompression("rar"); err == nil {
		t.Fatal("expected parse error for unknown algorithm")
	}
}

func TestParseCompression(t *testing.T) {
	cases := map[string]codec.Compression{
		"":        codec.CompressNone,
		"none":    codec.CompressNone,
		"GZIP":    codec.CompressGzip,
		"deflate": codec.CompressGzip,
		"snappy":  codec.CompressSnappy,
		" zstd ":  codec.CompressZstd,
		"br":      codec.CompressBrotli,
		"lz4":     codec.CompressLZ4,
	}
	for in, want := range cases {
		got, err := codec.ParseCompression(in)
		if err != nil {
			t.Fatalf("ParseCompression(%q): %v", in, err)
		}
		if got != want {
			t.Fatalf("ParseCompression(%q) = %s, want %s", in, got, want)
		}
	}
}

func TestExtension(t *testing.T) {
	cases := map[codec.Compression]string{
		codec.CompressNone:   "",
		codec.CompressGzip:   ".gz",
		codec.CompressSnappy: ".sz",
		codec.CompressZstd:   ".zst",
		codec.CompressBrotli: ".br",
		codec.CompressLZ4:    ".lz4",
	}
	for algo, want := range cases {
		if got := algo.Extension(); got != want {
			t.Fatalf("%s.Extension() = %q, want %q", algo, got, want)
		}
	}
	var zero codec.Compression
	if zero.String() != "none" {
		t.Fatalf("zero value should render as none, got %q", zero.String())
	}
}
