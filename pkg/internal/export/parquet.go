package export

import (
	"fmt"
	"io"
	"strings"

	parquet "github.com/parquet-go/parquet-go"

	"github.com/joeydtaylor/sdrhunter/pkg/internal/types"
)

// ParquetCompression maps a codec name onto a writer option. The empty string
// selects snappy.
func ParquetCompression(name string) (parquet.WriterOption, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "snappy":
		return parquet.Compression(&parquet.Snappy), nil
	case "zstd":
		return parquet.Compression(&parquet.Zstd), nil
	case "gzip", "gz":
		return parquet.Compression(&parquet.Gzip), nil
	case "none", "uncompressed":
		return parquet.Compression(&parquet.Uncompressed), nil
	default:
		return nil, fmt.Errorf("unsupported parquet compression %q", name)
	}
}

// WriteSummaries writes the bundle of one capture as SummaryRow records and
// returns the number of rows written.
func WriteSummaries(w io.Writer, capture string, bundle types.SummaryBundle, compression string) (int, error) {
	return writeRows(w, SummaryRows(capture, bundle), compression)
}

// WriteStations writes the catalog as StationRow records and returns the number
// of rows written.
func WriteStations(w io.Writer, c types.Catalog, compression string) (int, error) {
	return writeRows(w, StationRows(c), compression)
}

// ReadSummaries decodes a file of the given size produced by WriteSummaries.
func ReadSummaries(r io.ReaderAt, size int64) ([]SummaryRow, error) {
	return parquet.Read[SummaryRow](r, size)
}

// ReadStations decodes a file of the given size produced by WriteStations.
func ReadStations(r io.ReaderAt, size int64) ([]StationRow, error) {
	return parquet.Read[StationRow](r, size)
}

func writeRows[T any](w io.Writer, rows []T, compression string) (int, error) {
	opt, err := ParquetCompression(compression)
	if err != nil {
		return 0, err
	}
	pw := parquet.NewGenericWriter[T](w, opt)
	n, err := pw.Write(rows)
	if err != nil {
		_ = pw.Close()
		return n, fmt.Errorf("write parquet rows: %w", err)
	}
	if err := pw.Close(); err != nil {
		return n, fmt.Errorf("close parquet writer: %w", err)
	}
	return n, nil
}
