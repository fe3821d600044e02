package export

import (
	"encoding/csv"
	"io"

	"expertap/internal/domain"
)

// BOM is written before CSV output so Excel on Windows reads it as UTF-8.
var BOM = []byte{0xEF, 0xBB, 0xBF}

// CSVWriter wraps csv.Writer for exporting decisions.
type CSVWriter struct {
	csv *csv.Writer
}

// NewCSVWriter creates a CSVWriter that writes to w.
func NewCSVWriter(w io.Writer) *CSVWriter {
	return &CSVWriter{csv: csv.NewWriter(w)}
}

// WriteHeader writes the header row.
func (w *CSVWriter) WriteHeader() error {
	return w.csv.Write(columns)
}

// WriteDecisions converts a batch of decisions to CSV rows and writes them.
func (w *CSVWriter) WriteDecisions(decisions []domain.Decision) error {
	for i := range decisions {
		if err := w.csv.Write(decisionToRow(&decisions[i])); err != nil {
			return err
		}
	}
	return nil
}

// Flush flushes the underlying csv.Writer buffer.
func (w *CSVWriter) Flush() {
	w.csv.Flush()
}

// Error returns any error from the underlying csv.Writer.
func (w *CSVWriter) Error() error {
	return w.csv.Error()
}
