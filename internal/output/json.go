package output

import (
	"encoding/json"
	"io"

	"github.com/pgxtools/pgx-report/internal/analyze"
)

// JSONWriter writes a complete analysis result as one JSON document.
type JSONWriter struct {
	w      io.Writer
	indent bool
}

// NewJSONWriter creates a JSON writer. With indent set, output is
// pretty-printed for human consumption.
func NewJSONWriter(w io.Writer, indent bool) *JSONWriter {
	return &JSONWriter{w: w, indent: indent}
}

// WriteResult encodes the full result, reports included.
func (jw *JSONWriter) WriteResult(result *analyze.Result) error {
	enc := json.NewEncoder(jw.w)
	if jw.indent {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(result)
}
