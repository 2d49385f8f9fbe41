// Package codec holds the byte-level encodings shared by the catalog store, the
// export writers and the publisher: catalog JSON and whole-payload compression.
package codec

import (
	"io"
)

// Decoder reads a value of type T from a stream.
type Decoder[T any] interface {
	Decode(io.Reader) (T, error)
}

// Encoder writes a value of type T to a stream.
type Encoder[T any] interface {
	Encode(io.Writer, T) error
}
