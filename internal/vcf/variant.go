// Package vcf provides VCF file parsing functionality.
package vcf

import "strings"

// VariantRecord represents a single data line from a VCF file.
// Records are immutable once parsed.
type VariantRecord struct {
	Chrom       string // Chromosome name (e.g., "10", "chr10")
	Pos         int64  // 1-based genomic position
	ID          string // Variant identifier (e.g., rs ID), empty if unknown
	Ref         string // Reference allele
	Alt         string // Alternate allele(s), comma-joined
	Qual        string // Quality column, passed through verbatim
	Filter      string // Filter status (PASS or filter name)
	Info        string // INFO column, passed through verbatim
	Format      string // FORMAT column (colon-joined field names)
	RawGenotype string // Sample genotype string as written (e.g., "0/1")
	Genotype    string // Resolved allele-letter genotype (e.g., "C/T")
}

// IsSNV returns true if the record describes a single nucleotide variant.
func (r *VariantRecord) IsSNV() bool {
	return len(r.Ref) == 1 && len(r.Alt) == 1
}

// NormalizeChrom returns the chromosome name without "chr" prefix.
func (r *VariantRecord) NormalizeChrom() string {
	if len(r.Chrom) > 3 && r.Chrom[:3] == "chr" {
		return r.Chrom[3:]
	}
	return r.Chrom
}

// ZygosityClass classifies a raw genotype call.
type ZygosityClass int

const (
	HomozygousRef ZygosityClass = iota
	HomozygousAlt
	Heterozygous
)

// Zygosity classifies a raw genotype string with a biallelic heuristic:
// homozygous-reference if it starts with "0/0" or "0|0", homozygous-alternate
// only for an exact "1/1" or "1|1" call, heterozygous otherwise.
// Multi-allelic calls such as "2/1" fall into the heterozygous branch; indices
// beyond 1 are not interpreted further.
func Zygosity(rawGT string) ZygosityClass {
	switch {
	case strings.HasPrefix(rawGT, "0/0") || strings.HasPrefix(rawGT, "0|0"):
		return HomozygousRef
	case rawGT == "1/1" || rawGT == "1|1":
		return HomozygousAlt
	default:
		return Heterozygous
	}
}
