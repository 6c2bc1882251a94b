package analyze

import (
	"testing"

	"github.com/pgxtools/pgx-report/internal/catalog"
)

// detected builds a DetectedVariant with its catalog mapping cached, the
// way MapVariants produces them.
func detected(t *testing.T, rsid, genotype string) DetectedVariant {
	t.Helper()
	m := catalog.Lookup(rsid)
	if m == nil {
		t.Fatalf("marker %s not in catalog", rsid)
	}
	return DetectedVariant{ID: rsid, Genotype: genotype, Mapping: m}
}

func TestInferPhenotype_EmptyVariantList(t *testing.T) {
	if got := InferPhenotype("CYP2D6", nil); got != catalog.PhenotypeNM {
		t.Errorf("phenotype = %s, want NM", got)
	}
}

func TestInferPhenotype_UnknownGene(t *testing.T) {
	if got := InferPhenotype("BRCA1", nil); got != catalog.PhenotypeUnknown {
		t.Errorf("phenotype = %s, want Unknown", got)
	}
	// Unknown even with variants attached.
	v := detected(t, "rs1799853", "T/T")
	if got := InferPhenotype("GENE_X", []DetectedVariant{v}); got != catalog.PhenotypeUnknown {
		t.Errorf("phenotype = %s, want Unknown", got)
	}
}

func TestInferPhenotype_Metabolizer(t *testing.T) {
	tests := []struct {
		name     string
		gene     string
		variants []DetectedVariant
		want     catalog.Phenotype
	}{
		{
			name: "two no-function alleles",
			gene: "CYP2C9",
			variants: []DetectedVariant{
				detected(t, "rs1799853", "T/T"),
			},
			want: catalog.PhenotypePM,
		},
		{
			name: "one no-function plus one reduced",
			gene: "CYP2D6",
			variants: []DetectedVariant{
				detected(t, "rs3892097", "G/A"),
				detected(t, "rs1065852", "C/T"),
			},
			want: catalog.PhenotypePM,
		},
		{
			name: "one no-function plus functional",
			gene: "CYP2C9",
			variants: []DetectedVariant{
				detected(t, "rs1799853", "C/T"),
			},
			want: catalog.PhenotypeIM,
		},
		{
			name: "two reduced alleles",
			gene: "CYP2D6",
			variants: []DetectedVariant{
				detected(t, "rs1065852", "T/T"),
			},
			want: catalog.PhenotypeIM,
		},
		{
			name: "one reduced plus functional",
			gene: "CYP2D6",
			variants: []DetectedVariant{
				detected(t, "rs1065852", "C/T"),
			},
			want: catalog.PhenotypeIM,
		},
		{
			name: "two increased alleles",
			gene: "CYP2C19",
			variants: []DetectedVariant{
				detected(t, "rs12248560", "T/T"),
			},
			want: catalog.PhenotypeURM,
		},
		{
			name: "one increased plus functional",
			gene: "CYP2C19",
			variants: []DetectedVariant{
				detected(t, "rs12248560", "C/T"),
			},
			want: catalog.PhenotypeRM,
		},
		{
			name: "hom ref marker stays NM",
			gene: "CYP2C9",
			variants: []DetectedVariant{
				detected(t, "rs1799853", "C/C"),
			},
			want: catalog.PhenotypeNM,
		},
		{
			name: "normal-impact alt counts as functional",
			gene: "CYP2D6",
			variants: []DetectedVariant{
				detected(t, "rs16947", "T/T"),
			},
			want: catalog.PhenotypeNM,
		},
		{
			name: "unresolved genotype falls back to wildtype",
			gene: "CYP2C9",
			variants: []DetectedVariant{
				detected(t, "rs1799853", "./."),
			},
			want: catalog.PhenotypeNM,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := InferPhenotype(tt.gene, tt.variants); got != tt.want {
				t.Errorf("InferPhenotype(%s) = %s, want %s", tt.gene, got, tt.want)
			}
		})
	}
}

func TestInferPhenotype_Transporter(t *testing.T) {
	tests := []struct {
		name     string
		variants []DetectedVariant
		want     catalog.Phenotype
	}{
		{
			name:     "two reduced alleles",
			variants: []DetectedVariant{detected(t, "rs4149056", "C/C")},
			want:     catalog.PhenotypePM,
		},
		{
			name:     "one reduced allele",
			variants: []DetectedVariant{detected(t, "rs4149056", "T/C")},
			want:     catalog.PhenotypeIM,
		},
		{
			name:     "hom ref",
			variants: []DetectedVariant{detected(t, "rs4149056", "T/T")},
			want:     catalog.PhenotypeNM,
		},
		{
			name:     "normal-function alt",
			variants: []DetectedVariant{detected(t, "rs2306283", "G/G")},
			want:     catalog.PhenotypeNM,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := InferPhenotype("SLCO1B1", tt.variants); got != tt.want {
				t.Errorf("InferPhenotype(SLCO1B1) = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestCountAlleles_SkipsMissingMapping(t *testing.T) {
	variants := []DetectedVariant{
		{ID: "rs_unmapped", Genotype: "A/G", Mapping: nil},
	}
	counts := CountAlleles(variants)
	if counts.Functional != 2 {
		t.Errorf("counts = %+v, want wildtype fallback functional=2", counts)
	}
}
