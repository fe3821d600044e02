package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"expertap/internal/domain"
)

// SheetName is the worksheet holding exported decisions.
const SheetName = "Decisions"

// XLSXWriter accumulates decisions into a single-sheet workbook.
type XLSXWriter struct {
	file *excelize.File
	sw   *excelize.StreamWriter
	row  int
}

// NewXLSXWriter creates an empty workbook with the header row written.
func NewXLSXWriter() (*XLSXWriter, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("xlsx: renaming sheet: %w", err)
	}
	sw, err := f.NewStreamWriter(SheetName)
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("xlsx: stream writer: %w", err)
	}

	w := &XLSXWriter{file: f, sw: sw, row: 1}
	if err := w.writeRow(columns); err != nil {
		_ = f.Close()
		return nil, err
	}
	return w, nil
}

// WriteDecisions appends one row per decision.
func (w *XLSXWriter) WriteDecisions(decisions []domain.Decision) error {
	for i := range decisions {
		if err := w.writeRow(decisionToRow(&decisions[i])); err != nil {
			return err
		}
	}
	return nil
}

func (w *XLSXWriter) writeRow(values []string) error {
	cells := make([]interface{}, len(values))
	for i, v := range values {
		cells[i] = v
	}
	cell, err := excelize.CoordinatesToCellName(1, w.row)
	if err != nil {
		return err
	}
	if err := w.sw.SetRow(cell, cells); err != nil {
		return fmt.Errorf("xlsx: writing row %d: %w", w.row, err)
	}
	w.row++
	return nil
}

// WriteTo finalizes the workbook and writes it to out. The writer must not be
// used afterwards.
func (w *XLSXWriter) WriteTo(out io.Writer) (int64, error) {
	defer func() { _ = w.file.Close() }()
	if err := w.sw.Flush(); err != nil {
		return 0, fmt.Errorf("xlsx: flushing rows: %w", err)
	}
	return w.file.WriteTo(out)
}
