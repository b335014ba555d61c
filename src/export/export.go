// Package export writes the currently visible chart data to a CSV file.
package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/lambdabear/pressure-monitor/src/series"
)

var header = []string{"Time(s)", "Pressure(Pa)"}

// CSVWriter exports chart frames to a fixed path. Every export truncates and
// rewrites the whole file.
type CSVWriter struct {
	path string
}

func NewCSVWriter(path string) *CSVWriter {
	return &CSVWriter{path: path}
}

// Export writes the header and one row per point. An empty frame produces a
// header-only file. Any I/O failure is returned to the caller, which treats
// it as fatal.
func (w *CSVWriter) Export(points []series.Point) error {
	f, err := os.Create(w.path)
	if err != nil {
		return fmt.Errorf("create %s: %w", w.path, err)
	}
	cw := csv.NewWriter(f)
	if err := cw.Write(header); err != nil {
		f.Close()
		return fmt.Errorf("write header: %w", err)
	}
	for _, p := range points {
		row := []string{formatValue(p.Elapsed), formatValue(p.Value)}
		if err := cw.Write(row); err != nil {
			f.Close()
			return fmt.Errorf("write row: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		f.Close()
		return fmt.Errorf("flush %s: %w", w.path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", w.path, err)
	}
	return nil
}

// formatValue renders a float with the shortest representation that
// round-trips, so 2.0 becomes "2" and 0.015 stays "0.015".
func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
