package analyze

import (
	"github.com/pgxtools/pgx-report/internal/catalog"
	"github.com/pgxtools/pgx-report/internal/vcf"
)

// DeriveDiplotype reduces a gene's detected star alleles to a two-allele
// diplotype string. Each resolved allele token that differs from the
// marker's reference letter (and is not ".") contributes that marker's
// alternate star label, so a homozygous call contributes it twice.
// Distinct labels are kept in first-appearance order; with more than two
// distinct labels the extras are dropped, a known simplification for genes
// with larger panels.
func DeriveDiplotype(gene string, variants []DetectedVariant) string {
	if len(variants) == 0 {
		return catalog.WildtypeDiplotype(gene)
	}

	var labels []string
	tally := make(map[string]int)

	for _, v := range variants {
		if v.Mapping == nil {
			continue
		}
		for _, tok := range vcf.GenotypeTokens(v.Genotype) {
			if tok == v.Mapping.Ref || tok == "." {
				continue
			}
			if tally[v.Mapping.AltStar] == 0 {
				labels = append(labels, v.Mapping.AltStar)
			}
			tally[v.Mapping.AltStar]++
		}
	}

	switch {
	case len(labels) == 0:
		return catalog.WildtypeDiplotype(gene)
	case len(labels) == 1 && tally[labels[0]] >= 2:
		// Homozygous for a single alternate allele.
		return labels[0] + "/" + labels[0]
	case len(labels) == 1:
		return catalog.WildtypeStar(gene) + "/" + labels[0]
	default:
		return labels[0] + "/" + labels[1]
	}
}
