package analyze

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/pgxtools/pgx-report/internal/catalog"
	"github.com/pgxtools/pgx-report/internal/vcf"
)

// Analyzer runs the full pipeline: parse, map, infer, assemble.
// Per-run state is freshly allocated, so one Analyzer may serve concurrent
// runs on separate inputs without coordination.
type Analyzer struct {
	tables *catalog.Tables
	logger *zap.Logger
	strict bool
}

// NewAnalyzer creates an analyzer over the given tables. Passing nil uses
// the built-in catalog and rule table.
func NewAnalyzer(tables *catalog.Tables) *Analyzer {
	if tables == nil {
		tables = catalog.Default()
	}
	return &Analyzer{
		tables: tables,
		logger: zap.NewNop(),
	}
}

// SetLogger sets the logger for progress and warning messages.
func (a *Analyzer) SetLogger(l *zap.Logger) {
	a.logger = l
}

// SetStrict enables the structural pre-flight gate: with strict on, inputs
// missing the fileformat header, containing no data records, or lacking
// markers for any target gene abort the run before any report is produced.
// With strict off (the default) those inputs degrade per-gene to the
// normal-metabolizer fallback.
func (a *Analyzer) SetStrict(strict bool) {
	a.strict = strict
}

// Result is the outcome of one analysis run.
type Result struct {
	PatientID     string   `json:"patient_id"`
	Version       string   `json:"vcf_version"`
	TotalVariants int      `json:"total_variants"`
	Reports       []Report `json:"reports"`
	ParseErrors   []string `json:"parse_errors,omitempty"`
}

// Analyze runs the pipeline on one VCF text. patientID overrides the
// sample name detected in the header; with both absent the fixed
// placeholder is used. The run is deterministic and total for any input;
// only the strict gate can reject one.
func (a *Analyzer) Analyze(text, patientID string) (*Result, error) {
	parsed := vcf.Parse(text)

	if a.strict {
		if err := a.validate(parsed); err != nil {
			return nil, err
		}
	}

	if patientID == "" {
		patientID = parsed.SampleID
	}
	if patientID == "" {
		patientID = vcf.DefaultSampleID
	}

	a.logger.Debug("parsed input",
		zap.String("patient", patientID),
		zap.String("version", parsed.Version),
		zap.Int("records", parsed.RecordCount()),
		zap.Int("parse_errors", len(parsed.Errors)))

	genes := MapVariants(parsed.Records, a.tables)
	parseOK := len(parsed.Errors) == 0

	reports := make([]Report, 0, len(catalog.TargetGenes))
	for _, gene := range catalog.TargetGenes {
		variants := genes[gene]
		report := AssembleReport(a.tables, patientID, gene, variants, parsed.RecordCount(), parseOK)
		a.logger.Debug("assembled report",
			zap.String("gene", gene),
			zap.String("phenotype", string(report.Profile.Phenotype)),
			zap.String("diplotype", report.Profile.Diplotype),
			zap.Int("variants", len(variants)))
		reports = append(reports, report)
	}

	return &Result{
		PatientID:     patientID,
		Version:       parsed.Version,
		TotalVariants: parsed.RecordCount(),
		Reports:       reports,
		ParseErrors:   parsed.Errors,
	}, nil
}

// ValidationError reports a structural pre-flight failure. Distinct from
// the per-line parse errors, which never abort a run.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return "vcf validation failed: " + e.Reason
}

// validate is the strict-mode structural gate.
func (a *Analyzer) validate(parsed *vcf.ParseResult) error {
	if parsed.Version == vcf.UnknownVersion {
		return &ValidationError{Reason: "missing ##fileformat header line"}
	}
	if parsed.RecordCount() == 0 {
		return &ValidationError{Reason: "no variant records found"}
	}
	for _, rec := range parsed.Records {
		if rec.Chrom == "" || rec.RawGenotype == "" {
			return &ValidationError{
				Reason: fmt.Sprintf("record %s:%d is missing chromosome or genotype", rec.Chrom, rec.Pos),
			}
		}
	}

	present := make(map[string]bool)
	for _, rec := range parsed.Records {
		if m := a.tables.Lookup(rec.ID); m != nil {
			present[m.Gene] = true
		}
	}
	var missing []string
	for _, gene := range catalog.TargetGenes {
		if !present[gene] {
			missing = append(missing, gene)
		}
	}
	if len(missing) > 0 {
		return &ValidationError{
			Reason: "required genes missing from input: " + strings.Join(missing, ", "),
		}
	}

	return nil
}
