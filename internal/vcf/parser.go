package vcf

import (
	"fmt"
	"strconv"
	"strings"
)

// Defaults applied when optional columns or header information are absent.
const (
	DefaultSampleID = "SAMPLE_001"
	DefaultFormat   = "GT"
	DefaultGenotype = "0/0"
	MissingGenotype = "./."
	UnknownVersion  = "unknown"
)

// ParseResult holds the outcome of parsing one VCF text.
// Records preserve input order. Errors accumulates human-readable
// line-level problems; malformed rows never abort the parse.
type ParseResult struct {
	Records  []*VariantRecord
	Version  string // detected fileformat version, "unknown" if absent
	SampleID string // sample name from the #CHROM header, "" if absent
	Errors   []string
}

// RecordCount returns the number of successfully parsed data lines.
func (r *ParseResult) RecordCount() int {
	return len(r.Records)
}

// Parse reads an entire VCF text into an ordered record sequence.
// Lines are classified by prefix: "##" metadata, "#CHROM" header,
// anything else a data line. Data lines with fewer than 8 tab-separated
// columns or a non-numeric POS are recorded as errors and skipped.
// Parse itself never fails; I/O belongs to the caller.
func Parse(text string) *ParseResult {
	result := &ParseResult{Version: UnknownVersion}

	for i, line := range strings.Split(text, "\n") {
		lineNum := i + 1
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}

		switch {
		case strings.HasPrefix(line, "##"):
			if strings.HasPrefix(line, "##fileformat=VCF") {
				result.Version = strings.TrimPrefix(line, "##fileformat=")
			}
			// All other metadata lines are ignored.

		case strings.HasPrefix(line, "#CHROM"):
			fields := strings.Split(line, "\t")
			if len(fields) > 9 {
				result.SampleID = strings.TrimSpace(fields[9])
				if result.SampleID == "" {
					result.SampleID = DefaultSampleID
				}
			}

		default:
			rec, err := parseDataLine(line, lineNum)
			if err != nil {
				result.Errors = append(result.Errors, err.Error())
				continue
			}
			result.Records = append(result.Records, rec)
		}
	}

	return result
}

// parseDataLine parses a single tab-separated VCF data line.
func parseDataLine(line string, lineNum int) (*VariantRecord, error) {
	fields := strings.Split(line, "\t")
	if len(fields) < 8 {
		return nil, &ParseError{
			Line:    lineNum,
			Message: fmt.Sprintf("expected at least 8 columns, found %d", len(fields)),
		}
	}

	pos, err := strconv.ParseInt(fields[1], 10, 64)
	if err != nil {
		return nil, &ParseError{
			Line:    lineNum,
			Message: fmt.Sprintf("invalid position: %s", fields[1]),
		}
	}

	id := fields[2]
	if id == "." {
		id = ""
	}

	format := DefaultFormat
	if len(fields) > 8 {
		format = fields[8]
	}
	sample := DefaultGenotype
	if len(fields) > 9 {
		sample = fields[9]
	}

	ref := fields[3]
	alt := fields[4]
	rawGT := locateGenotype(format, sample)

	return &VariantRecord{
		Chrom:       fields[0],
		Pos:         pos,
		ID:          id,
		Ref:         ref,
		Alt:         alt,
		Qual:        fields[5],
		Filter:      fields[6],
		Info:        fields[7],
		Format:      format,
		RawGenotype: rawGT,
		Genotype:    ResolveGenotype(ref, alt, rawGT),
	}, nil
}

// locateGenotype extracts the GT subfield from a sample column by finding
// the "GT" token within FORMAT. Missing GT defaults to "./.".
func locateGenotype(format, sample string) string {
	keys := strings.Split(format, ":")
	values := strings.Split(sample, ":")
	for i, key := range keys {
		if key != "GT" {
			continue
		}
		if i < len(values) {
			return values[i]
		}
		return MissingGenotype
	}
	return MissingGenotype
}

// ParseError represents an error during VCF parsing with line context.
type ParseError struct {
	Line    int
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("vcf parse error at line %d: %s", e.Line, e.Message)
}
