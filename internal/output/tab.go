// Package output provides report output formatters.
package output

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/pgxtools/pgx-report/internal/analyze"
)

// ReportWriter defines the interface for streaming report writers.
type ReportWriter interface {
	WriteHeader() error
	Write(r *analyze.Report) error
	Flush() error
}

// TabWriter writes reports in tab-delimited format, one row per gene.
type TabWriter struct {
	w       *bufio.Writer
	columns []string
}

// NewTabWriter creates a new tab-delimited writer.
func NewTabWriter(w io.Writer) *TabWriter {
	return &TabWriter{
		w: bufio.NewWriter(w),
		columns: []string{
			"#Patient",
			"Gene",
			"Drug",
			"Diplotype",
			"Phenotype",
			"Risk",
			"Severity",
			"Confidence",
			"Variants",
			"Action",
		},
	}
}

// WriteHeader writes the header line.
func (tw *TabWriter) WriteHeader() error {
	_, err := tw.w.WriteString(strings.Join(tw.columns, "\t") + "\n")
	return err
}

// Write writes a single report row.
func (tw *TabWriter) Write(r *analyze.Report) error {
	variants := "-"
	if len(r.Profile.DetectedVariants) > 0 {
		ids := make([]string, len(r.Profile.DetectedVariants))
		for i, v := range r.Profile.DetectedVariants {
			ids[i] = v.ID
		}
		variants = strings.Join(ids, ",")
	}

	fields := []string{
		r.PatientID,
		r.Profile.Gene,
		r.Drug,
		r.Profile.Diplotype,
		string(r.Profile.Phenotype),
		string(r.Risk.RiskLabel),
		string(r.Risk.Severity),
		fmt.Sprintf("%.2f", r.Risk.ConfidenceScore),
		variants,
		r.Recommendation.Action,
	}

	_, err := tw.w.WriteString(strings.Join(fields, "\t") + "\n")
	return err
}

// Flush flushes buffered output.
func (tw *TabWriter) Flush() error {
	return tw.w.Flush()
}
