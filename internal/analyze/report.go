package analyze

import (
	"time"

	"github.com/google/uuid"

	"github.com/pgxtools/pgx-report/internal/catalog"
)

// NoVariantConfidence is the confidence assigned when a gene has zero
// detected variants. The inference "normal metabolizer because no marker
// was observed" is weaker than "marker confirmed absent", so the rule's own
// score is not used. The value is a policy parameter, not derived from any
// formula.
const NoVariantConfidence = 0.72

// noGuidelineText is emitted when neither the exact phenotype rule nor the
// NM fallback exists for a gene/drug pair.
const noGuidelineText = "No CPIC guideline available for this gene-drug-phenotype combination."

// RiskAssessment summarizes the clinical risk for one gene-drug pair.
type RiskAssessment struct {
	RiskLabel       catalog.RiskLabel `json:"risk_label"`
	ConfidenceScore float64           `json:"confidence_score"`
	Severity        catalog.Severity  `json:"severity"`
}

// Profile carries the inferred pharmacogenomic state for one gene.
type Profile struct {
	Gene             string            `json:"gene"`
	Diplotype        string            `json:"diplotype"`
	Phenotype        catalog.Phenotype `json:"phenotype"`
	DetectedVariants []DetectedVariant `json:"detected_variants"`
}

// Recommendation holds the guideline's clinical advice.
type Recommendation struct {
	Action           string `json:"recommended_action"`
	DosageAdjustment string `json:"dosage_adjustment"`
}

// Explanation holds the guideline's narrative fields.
type Explanation struct {
	Summary   string `json:"summary"`
	Mechanism string `json:"mechanism"`
}

// QualityMetrics describes how much of the input informed this report.
type QualityMetrics struct {
	TotalVariants       int  `json:"total_variants_parsed"`
	TargetVariantsFound int  `json:"target_variants_found"`
	VCFParsingSuccess   bool `json:"vcf_parsing_success"`
}

// Report is the assembled drug-risk report for one gene-drug pair.
// Read-only once assembled.
type Report struct {
	ID             string         `json:"report_id"`
	PatientID      string         `json:"patient_id"`
	Timestamp      time.Time      `json:"timestamp"`
	Drug           string         `json:"drug"`
	Risk           RiskAssessment `json:"risk_assessment"`
	Profile        Profile        `json:"pharmacogenomic_profile"`
	Recommendation Recommendation `json:"clinical_recommendation"`
	Explanation    Explanation    `json:"explanation"`
	Quality        QualityMetrics `json:"quality_metrics"`
}

// AssembleReport joins phenotype, diplotype, detected variants and the
// matched guideline rule into one report. It is a pure function of its
// arguments apart from the report ID and timestamp: no hidden state, safe
// to call repeatedly and in any order across genes.
//
// Rule resolution falls back from the exact (gene, drug, phenotype) key to
// the (gene, drug, NM) rule, then to placeholder text. The confidence score
// is the matched rule's score when at least one variant was detected and
// NoVariantConfidence otherwise. parseOK reports whether the input parsed
// without line-level errors; it lands in the quality metrics untouched.
func AssembleReport(tables *catalog.Tables, patientID, gene string, variants []DetectedVariant, totalVariants int, parseOK bool) Report {
	phenotype := InferPhenotype(gene, variants)
	diplotype := DeriveDiplotype(gene, variants)
	drug := catalog.DrugFor(gene)

	rule := tables.LookupRule(gene, drug, phenotype)
	if rule == nil {
		rule = tables.LookupRule(gene, drug, catalog.PhenotypeNM)
	}

	report := Report{
		ID:        uuid.NewString(),
		PatientID: patientID,
		Timestamp: time.Now().UTC(),
		Drug:      drug,
		Profile: Profile{
			Gene:             gene,
			Diplotype:        diplotype,
			Phenotype:        phenotype,
			DetectedVariants: variants,
		},
		Quality: QualityMetrics{
			TotalVariants:       totalVariants,
			TargetVariantsFound: len(variants),
			VCFParsingSuccess:   parseOK,
		},
	}

	if rule == nil {
		report.Risk = RiskAssessment{
			RiskLabel: catalog.RiskUnknown,
			Severity:  catalog.SeverityNone,
		}
		report.Recommendation = Recommendation{Action: noGuidelineText}
		report.Explanation = Explanation{Summary: noGuidelineText}
	} else {
		report.Risk = RiskAssessment{
			RiskLabel:       rule.RiskLabel,
			ConfidenceScore: rule.Confidence,
			Severity:        rule.Severity,
		}
		report.Recommendation = Recommendation{
			Action:           rule.Action,
			DosageAdjustment: rule.DosageAdjustment,
		}
		report.Explanation = Explanation{
			Summary:   rule.Summary,
			Mechanism: rule.Mechanism,
		}
	}

	if len(variants) == 0 {
		report.Risk.ConfidenceScore = NoVariantConfidence
	}

	return report
}
