package vcf

import (
	"strconv"
	"strings"
)

// genotypeSeparators splits GT tokens on "/" or "|". Phasing is not
// preserved downstream, so both separators are treated the same.
func genotypeSeparators(r rune) bool {
	return r == '/' || r == '|'
}

// ResolveGenotype turns a raw GT field plus REF/ALT allele strings into an
// explicit allele-letter genotype. The allele table is indexed [0]=ref,
// [1..]=alts. Any non-numeric token or index outside the table resolves to
// ".". ResolveGenotype never fails: ref=C, alt=T, gt=0|1 -> "C/T".
func ResolveGenotype(ref, alt, gt string) string {
	alleles := append([]string{ref}, strings.Split(alt, ",")...)

	tokens := strings.FieldsFunc(gt, genotypeSeparators)
	resolved := make([]string, len(tokens))
	for i, tok := range tokens {
		idx, err := strconv.Atoi(tok)
		if err != nil || idx < 0 || idx >= len(alleles) {
			resolved[i] = "."
			continue
		}
		resolved[i] = alleles[idx]
	}

	return strings.Join(resolved, "/")
}

// GenotypeTokens splits a resolved allele-letter genotype into its tokens.
func GenotypeTokens(genotype string) []string {
	return strings.FieldsFunc(genotype, genotypeSeparators)
}
