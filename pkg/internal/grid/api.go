package grid

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joeydtaylor/sdrhunter/pkg/internal/types"
	"github.com/joeydtaylor/sdrhunter/pkg/logschema"
)

// Assemble reads a capture with a default Assembler.
func Assemble(r io.Reader) (*types.Waterfall, error) {
	return NewAssembler().Assemble(r)
}

// AssembleLines assembles already split capture lines with a default Assembler.
func AssembleLines(lines []string) (*types.Waterfall, error) {
	return NewAssembler().AssembleLines(lines)
}

// Assemble reads capture lines from r until EOF.
func (a *Assembler) Assemble(r io.Reader) (*types.Waterfall, error) {
	return a.assemble("", r)
}

// AssembleLines assembles capture lines held in memory.
func (a *Assembler) AssembleLines(lines []string) (*types.Waterfall, error) {
	return a.assemble("", strings.NewReader(strings.Join(lines, "\n")))
}

// AssembleFile opens and assembles the capture at path. Sensors are told about the
// result under the file's base name.
func (a *Assembler) AssembleFile(path string) (*types.Waterfall, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open capture %s: %w", path, err)
	}
	defer f.Close()
	return a.assemble(filepath.Base(path), f)
}

func (a *Assembler) assemble(capture string, r io.Reader) (*types.Waterfall, error) {
	start := time.Now()

	b := newBuilder()
	sc := bufio.NewScanner(r)
	initial := 64 * 1024
	if a.maxLineBytes < initial {
		initial = a.maxLineBytes
	}
	sc.Buffer(make([]byte, 0, initial), a.maxLineBytes)

	lineNo := 0
	for sc.Scan() {
		lineNo++
		if err := b.addLine(lineNo, sc.Text()); err != nil {
			return nil, a.fail(capture, err)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, a.fail(capture, &types.MalformedCaptureError{Line: lineNo + 1, Reason: "read failed", Err: err})
	}

	w, err := b.build()
	if err != nil {
		return nil, a.fail(capture, err)
	}

	a.NotifyLoggers(types.DebugLevel, "capture assembled",
		logschema.FieldComponent, a.componentMetadata,
		logschema.FieldEvent, "Assemble",
		logschema.FieldResult, logschema.ResultSuccess,
		logschema.FieldCapture, capture,
		"rows", w.Rows(),
		"cols", w.Cols(),
		"freq_start", w.FreqStart,
		"freq_end", w.FreqEnd,
		"freq_step", w.FreqStep,
	)
	for _, s := range a.snapshotSensors() {
		s.InvokeOnCaptureAssembled(a.componentMetadata, capture, w)
		s.InvokeOnStageComplete(a.componentMetadata, "assemble", time.Since(start))
	}
	return w, nil
}

func (a *Assembler) fail(capture string, err error) error {
	a.NotifyLoggers(types.ErrorLevel, "capture rejected",
		logschema.FieldComponent, a.componentMetadata,
		logschema.FieldEvent, "Assemble",
		logschema.FieldResult, logschema.ResultFailure,
		logschema.FieldCapture, capture,
		logschema.FieldError, err,
	)
	for _, s := range a.snapshotSensors() {
		s.InvokeOnError(a.componentMetadata, err)
	}
	return err
}
