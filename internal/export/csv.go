package export

import (
	"bytes"
	"encoding/csv"
	"io"
	"unicode/utf8"

	"github.com/ROGER34-CDLAV123/Aula-Code-Dashboards/internal/dataset"
)

// WriteCSV serializes the view as UTF-8 delimited text with a header row.
func WriteCSV(w io.Writer, view []dataset.Employee) error {
	var buf bytes.Buffer
	cw := csv.NewWriter(&buf)

	if err := cw.Write(dataset.Columns()); err != nil {
		return &ExportError{Format: FormatCSV, Err: err}
	}

	for _, emp := range view {
		row := rowStrings(emp)
		for _, cell := range row {
			if !utf8.ValidString(cell) {
				return &ExportError{Format: FormatCSV, Err: errInvalidEncoding}
			}
		}
		if err := cw.Write(row); err != nil {
			return &ExportError{Format: FormatCSV, Err: err}
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return &ExportError{Format: FormatCSV, Err: err}
	}

	if _, err := w.Write(buf.Bytes()); err != nil {
		return &ExportError{Format: FormatCSV, Err: err}
	}
	return nil
}
