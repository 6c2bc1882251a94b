// Package analyze implements the pharmacogenomic analysis pipeline:
// variant-to-gene mapping, phenotype inference, diplotype derivation and
// report assembly.
package analyze

import (
	"github.com/pgxtools/pgx-report/internal/catalog"
	"github.com/pgxtools/pgx-report/internal/vcf"
)

// DetectedVariant is a parsed record that matched the marker catalog,
// annotated with its inferred star allele. Never mutated after creation.
type DetectedVariant struct {
	ID         string `json:"rsid"`
	Genotype   string `json:"genotype"`
	StarAllele string `json:"star_allele"`
	Chrom      string `json:"chrom"`
	Pos        int64  `json:"position"`
	Ref        string `json:"ref"`
	Alt        string `json:"alt"`

	// Mapping caches the catalog entry that matched this variant, so the
	// phenotype and diplotype stages need no second catalog lookup. The
	// catalog is immutable for the process lifetime, which keeps the cached
	// value equivalent to a fresh lookup.
	Mapping *catalog.MarkerMapping `json:"-"`
}

// MapVariants cross-references parsed records against the marker catalog
// and groups matches per gene. Every target gene is present in the result,
// with an empty list when nothing matched. Records without an identifier,
// with an identifier outside the catalog, or describing anything other
// than a single-nucleotide variant are skipped; the marker model is
// biallelic SNVs. The SNV filter applies before catalog lookup, so a
// loaded catalog carrying a multi-base marker will never see it match.
func MapVariants(records []*vcf.VariantRecord, tables *catalog.Tables) map[string][]DetectedVariant {
	genes := make(map[string][]DetectedVariant, len(catalog.TargetGenes))
	for _, gene := range catalog.TargetGenes {
		genes[gene] = []DetectedVariant{}
	}

	for _, rec := range records {
		if rec.ID == "" || !rec.IsSNV() {
			continue
		}
		m := tables.Lookup(rec.ID)
		if m == nil {
			continue
		}

		genes[m.Gene] = append(genes[m.Gene], DetectedVariant{
			ID:         rec.ID,
			Genotype:   rec.Genotype,
			StarAllele: starAllele(m, rec.RawGenotype),
			Chrom:      rec.Chrom,
			Pos:        rec.Pos,
			Ref:        rec.Ref,
			Alt:        rec.Alt,
			Mapping:    m,
		})
	}

	return genes
}

// starAllele assigns a star-allele label from the raw (unresolved)
// genotype string.
func starAllele(m *catalog.MarkerMapping, rawGT string) string {
	switch vcf.Zygosity(rawGT) {
	case vcf.HomozygousRef:
		return m.RefStar
	case vcf.HomozygousAlt:
		return m.AltStar + "/" + m.AltStar
	default:
		return m.RefStar + "/" + m.AltStar
	}
}
