package analyze

import (
	"github.com/pgxtools/pgx-report/internal/catalog"
	"github.com/pgxtools/pgx-report/internal/vcf"
)

// AlleleFunctionCounts tallies allele function classes across all detected
// variants of one gene. Recomputed per analysis run, never stored.
type AlleleFunctionCounts struct {
	Functional int
	Reduced    int
	NoFunction int
	Increased  int
}

func (c AlleleFunctionCounts) isZero() bool {
	return c.Functional == 0 && c.Reduced == 0 && c.NoFunction == 0 && c.Increased == 0
}

// metabolizerGenes use the CPIC metabolizer decision table; SLCO1B1 is a
// transporter gene with its own vocabulary.
var metabolizerGenes = map[string]bool{
	"CYP2D6":  true,
	"CYP2C19": true,
	"CYP2C9":  true,
	"TPMT":    true,
	"DPYD":    true,
}

// CountAlleles sums functional classes over the resolved genotype tokens of
// each detected variant. A token equal to the marker's reference allele
// counts as functional; "." tokens count toward nothing; any other letter
// counts by the marker's impact class, with normal or unrecognized classes
// counting as functional. A gene whose variants yield no countable token
// falls back to two functional alleles (pure wildtype).
func CountAlleles(variants []DetectedVariant) AlleleFunctionCounts {
	var counts AlleleFunctionCounts

	for _, v := range variants {
		if v.Mapping == nil {
			continue
		}
		for _, tok := range vcf.GenotypeTokens(v.Genotype) {
			if tok == "." {
				continue // unresolved call, counts toward nothing
			}
			if tok == v.Mapping.Ref {
				counts.Functional++
				continue
			}
			switch v.Mapping.Impact {
			case catalog.ImpactNoFunction:
				counts.NoFunction++
			case catalog.ImpactReduced:
				counts.Reduced++
			case catalog.ImpactIncreased:
				counts.Increased++
			default:
				counts.Functional++
			}
		}
	}

	if counts.isZero() {
		counts.Functional = 2
	}

	return counts
}

// InferPhenotype assigns a metabolizer phenotype from a gene's detected
// variants. An empty variant list is treated as normal metabolizer without
// counting anything; genes outside the panel return Unknown.
func InferPhenotype(gene string, variants []DetectedVariant) catalog.Phenotype {
	if !metabolizerGenes[gene] && gene != "SLCO1B1" {
		return catalog.PhenotypeUnknown
	}
	if len(variants) == 0 {
		return catalog.PhenotypeNM
	}

	counts := CountAlleles(variants)

	if gene == "SLCO1B1" {
		return transporterPhenotype(counts)
	}
	return metabolizerPhenotype(counts)
}

// metabolizerPhenotype applies the decision table for the CYP/TPMT/DPYD
// genes. Branches are evaluated in priority order; first match wins.
func metabolizerPhenotype(c AlleleFunctionCounts) catalog.Phenotype {
	switch {
	case c.NoFunction >= 2:
		return catalog.PhenotypePM
	case c.NoFunction == 1 && c.Reduced >= 1:
		return catalog.PhenotypePM
	case c.NoFunction == 1 && c.Functional >= 1:
		return catalog.PhenotypeIM
	case c.Reduced >= 2:
		return catalog.PhenotypeIM
	case c.Reduced == 1 && c.Functional >= 1:
		return catalog.PhenotypeIM
	case c.Increased >= 2:
		return catalog.PhenotypeURM
	case c.Increased == 1 && c.Functional >= 1:
		return catalog.PhenotypeRM
	default:
		return catalog.PhenotypeNM
	}
}

// transporterPhenotype applies the SLCO1B1 table; transporter function uses
// the same counters with a coarser decision.
func transporterPhenotype(c AlleleFunctionCounts) catalog.Phenotype {
	switch {
	case c.NoFunction >= 2 || c.Reduced >= 2:
		return catalog.PhenotypePM
	case c.NoFunction >= 1 || c.Reduced >= 1:
		return catalog.PhenotypeIM
	default:
		return catalog.PhenotypeNM
	}
}
