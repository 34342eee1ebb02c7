// Package diag writes per-step simulation diagnostics as CSV records. The
// reductions it records double as the run's stability monitor.
package diag

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"

	"github.com/Aric1996/SPHinXsys/body"
	"github.com/Aric1996/SPHinXsys/dynamics"
)

// StepRecord is one diagnostics row.
type StepRecord struct {
	Step       int     `csv:"step"`
	Time       float64 `csv:"time"`
	Body       string  `csv:"body"`
	MaxSpeed   float64 `csv:"max_speed"`
	UpperFront float64 `csv:"upper_front"`
	MinX       float64 `csv:"min_x"`
	MinY       float64 `csv:"min_y"`
	MaxX       float64 `csv:"max_x"`
	MaxY       float64 `csv:"max_y"`
	GhostCount int     `csv:"ghost_count"`
	BlownUp    bool    `csv:"blown_up"`
}

// Collect runs the monitoring reductions for one body. A velocityBound of
// zero disables the blow-up check.
func Collect(step int, time float64, b *body.Body, velocityBound float64) StepRecord {
	bounds := dynamics.Bounds(b)
	rec := StepRecord{
		Step:       step,
		Time:       time,
		Body:       b.Name,
		MaxSpeed:   dynamics.MaximumSpeed(b),
		UpperFront: dynamics.UpperFront(b),
		MinX:       bounds.Min.X,
		MinY:       bounds.Min.Y,
		MaxX:       bounds.Max.X,
		MaxY:       bounds.Max.Y,
		GhostCount: b.GhostCount(),
	}
	if velocityBound > 0 {
		rec.BlownUp = dynamics.VelocityBoundCheck(b, velocityBound)
	}
	return rec
}

// Writer appends step records to a diagnostics CSV file.
type Writer struct {
	file          *os.File
	headerWritten bool
}

// NewWriter creates dir if needed and opens diagnostics.csv inside it.
// Returns nil if dir is empty (diagnostics disabled); a nil Writer's methods
// are no-ops.
func NewWriter(dir string) (*Writer, error) {
	if dir == "" {
		return nil, nil
	}
	if err := os.MkdirAll(dir, 0777); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	f, err := os.Create(filepath.Join(dir, "diagnostics.csv"))
	if err != nil {
		return nil, fmt.Errorf("creating diagnostics.csv: %w", err)
	}
	return &Writer{file: f}, nil
}

// Append writes one record, emitting the header on first use.
func (w *Writer) Append(rec StepRecord) error {
	if w == nil {
		return nil
	}

	records := []StepRecord{rec}
	if !w.headerWritten {
		if err := gocsv.Marshal(records, w.file); err != nil {
			return fmt.Errorf("writing diagnostics: %w", err)
		}
		w.headerWritten = true
		return nil
	}
	if err := gocsv.MarshalWithoutHeaders(records, w.file); err != nil {
		return fmt.Errorf("writing diagnostics: %w", err)
	}
	return nil
}

// Close flushes and closes the underlying file.
func (w *Writer) Close() error {
	if w == nil {
		return nil
	}
	return w.file.Close()
}

// Read loads all records from a diagnostics CSV file.
func Read(file string) ([]StepRecord, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var records []StepRecord
	if err := gocsv.UnmarshalFile(f, &records); err != nil {
		return nil, fmt.Errorf("reading diagnostics %s: %w", file, err)
	}
	return records, nil
}
