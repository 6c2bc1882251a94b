// Package catalog holds the static pharmacogenomic lookup tables: the
// marker-to-star-allele catalog, the gene/drug pairing, and the CPIC-style
// guideline rule table. All tables are initialized at startup and never
// mutated, so concurrent analysis runs can share them without locking.
package catalog

import "strings"

// Impact classifies the functional effect of a marker's alternate allele.
type Impact string

const (
	ImpactNoFunction Impact = "no_function"
	ImpactReduced    Impact = "reduced"
	ImpactNormal     Impact = "normal"
	ImpactIncreased  Impact = "increased"
)

// MarkerMapping maps a known marker identifier to its gene, alleles, star
// allele labels and functional-impact class.
type MarkerMapping struct {
	ID      string // rs identifier
	Gene    string // gene symbol (e.g., "CYP2C9")
	Ref     string // reference allele letter
	Alt     string // alternate allele letter
	RefStar string // star allele of the reference haplotype
	AltStar string // star allele of the alternate haplotype
	Impact  Impact
}

// TargetGenes lists the panel genes in report order.
var TargetGenes = []string{"CYP2D6", "CYP2C19", "CYP2C9", "TPMT", "DPYD", "SLCO1B1"}

// geneDrugs pairs each panel gene with its index drug.
var geneDrugs = map[string]string{
	"CYP2D6":  "CODEINE",
	"CYP2C19": "CLOPIDOGREL",
	"CYP2C9":  "WARFARIN",
	"TPMT":    "AZATHIOPRINE",
	"DPYD":    "FLUOROURACIL",
	"SLCO1B1": "SIMVASTATIN",
}

// markers is the built-in marker panel. Looked up case-insensitively via
// Lookup; the first mapping for an identifier wins.
var markers = []MarkerMapping{
	// CYP2D6 (CODEINE)
	{ID: "rs3892097", Gene: "CYP2D6", Ref: "G", Alt: "A", RefStar: "*1", AltStar: "*4", Impact: ImpactNoFunction},
	{ID: "rs1065852", Gene: "CYP2D6", Ref: "C", Alt: "T", RefStar: "*1", AltStar: "*10", Impact: ImpactReduced},
	{ID: "rs28371725", Gene: "CYP2D6", Ref: "G", Alt: "A", RefStar: "*1", AltStar: "*41", Impact: ImpactReduced},
	{ID: "rs16947", Gene: "CYP2D6", Ref: "C", Alt: "T", RefStar: "*1", AltStar: "*2", Impact: ImpactNormal},

	// CYP2C19 (CLOPIDOGREL)
	{ID: "rs4244285", Gene: "CYP2C19", Ref: "G", Alt: "A", RefStar: "*1", AltStar: "*2", Impact: ImpactNoFunction},
	{ID: "rs4986893", Gene: "CYP2C19", Ref: "G", Alt: "A", RefStar: "*1", AltStar: "*3", Impact: ImpactNoFunction},
	{ID: "rs12248560", Gene: "CYP2C19", Ref: "C", Alt: "T", RefStar: "*1", AltStar: "*17", Impact: ImpactIncreased},

	// CYP2C9 (WARFARIN)
	{ID: "rs1799853", Gene: "CYP2C9", Ref: "C", Alt: "T", RefStar: "*1", AltStar: "*2", Impact: ImpactNoFunction},
	{ID: "rs1057910", Gene: "CYP2C9", Ref: "A", Alt: "C", RefStar: "*1", AltStar: "*3", Impact: ImpactNoFunction},

	// TPMT (AZATHIOPRINE)
	{ID: "rs1800462", Gene: "TPMT", Ref: "C", Alt: "G", RefStar: "*1", AltStar: "*2", Impact: ImpactNoFunction},
	{ID: "rs1800460", Gene: "TPMT", Ref: "C", Alt: "T", RefStar: "*1", AltStar: "*3B", Impact: ImpactNoFunction},
	{ID: "rs1142345", Gene: "TPMT", Ref: "T", Alt: "C", RefStar: "*1", AltStar: "*3C", Impact: ImpactNoFunction},

	// DPYD (FLUOROURACIL)
	{ID: "rs3918290", Gene: "DPYD", Ref: "C", Alt: "T", RefStar: "*1", AltStar: "*2A", Impact: ImpactNoFunction},
	{ID: "rs55886062", Gene: "DPYD", Ref: "A", Alt: "C", RefStar: "*1", AltStar: "*13", Impact: ImpactNoFunction},
	{ID: "rs67376798", Gene: "DPYD", Ref: "T", Alt: "A", RefStar: "*1", AltStar: "c.2846A>T", Impact: ImpactReduced},

	// SLCO1B1 (SIMVASTATIN)
	{ID: "rs4149056", Gene: "SLCO1B1", Ref: "T", Alt: "C", RefStar: "*1a", AltStar: "*5", Impact: ImpactReduced},
	{ID: "rs2306283", Gene: "SLCO1B1", Ref: "A", Alt: "G", RefStar: "*1a", AltStar: "*1b", Impact: ImpactNormal},
}

// Tables bundles a marker catalog with a guideline rule table. A Tables
// value is built once and never mutated afterward, so it is safe to share
// across concurrent analysis runs.
type Tables struct {
	markers     []MarkerMapping
	markerIndex map[string]*MarkerMapping
	rules       map[RuleKey]*GuidelineRule
}

// defaultTables holds the built-in panel, constructed at init.
var defaultTables = New(markers, builtinRules)

// Default returns the built-in marker catalog and rule table.
func Default() *Tables {
	return defaultTables
}

// New builds a Tables value from explicit marker and rule lists.
// Marker identifiers are indexed case-insensitively; the first mapping for
// an identifier wins.
func New(mappings []MarkerMapping, ruleList []GuidelineRule) *Tables {
	t := &Tables{
		markers:     mappings,
		markerIndex: make(map[string]*MarkerMapping, len(mappings)),
		rules:       make(map[RuleKey]*GuidelineRule, len(ruleList)),
	}
	for i := range t.markers {
		key := strings.ToLower(t.markers[i].ID)
		if _, exists := t.markerIndex[key]; exists {
			continue // first mapping wins
		}
		t.markerIndex[key] = &t.markers[i]
	}
	for i := range ruleList {
		r := ruleList[i]
		t.rules[RuleKey{Gene: r.Gene, Drug: r.Drug, Phenotype: r.Phenotype}] = &ruleList[i]
	}
	return t
}

// Lookup returns the marker mapping for an identifier, matched
// case-insensitively. Returns nil if the identifier is not in the panel.
func (t *Tables) Lookup(id string) *MarkerMapping {
	return t.markerIndex[strings.ToLower(id)]
}

// LookupRule returns the guideline rule for an exact (gene, drug, phenotype)
// key, or nil when no rule is defined.
func (t *Tables) LookupRule(gene, drug string, phenotype Phenotype) *GuidelineRule {
	return t.rules[RuleKey{Gene: gene, Drug: drug, Phenotype: phenotype}]
}

// Markers returns the marker panel in declaration order.
func (t *Tables) Markers() []MarkerMapping {
	out := make([]MarkerMapping, len(t.markers))
	copy(out, t.markers)
	return out
}

// Rules returns all guideline rules. Order is unspecified.
func (t *Tables) Rules() []GuidelineRule {
	out := make([]GuidelineRule, 0, len(t.rules))
	for _, r := range t.rules {
		out = append(out, *r)
	}
	return out
}

// MarkerCount returns the number of markers in the catalog.
func (t *Tables) MarkerCount() int {
	return len(t.markers)
}

// RuleCount returns the number of guideline rules.
func (t *Tables) RuleCount() int {
	return len(t.rules)
}

// Lookup consults the built-in marker catalog.
func Lookup(id string) *MarkerMapping {
	return defaultTables.Lookup(id)
}

// LookupRule consults the built-in guideline rule table.
func LookupRule(gene, drug string, phenotype Phenotype) *GuidelineRule {
	return defaultTables.LookupRule(gene, drug, phenotype)
}

// DrugFor returns the index drug paired with a panel gene, or "" for
// genes outside the panel.
func DrugFor(gene string) string {
	return geneDrugs[gene]
}

// WildtypeDiplotype returns the homozygous-wildtype diplotype label for a
// gene. SLCO1B1 uses the *1a nomenclature; all other genes use *1.
func WildtypeDiplotype(gene string) string {
	if gene == "SLCO1B1" {
		return "*1a/*1a"
	}
	return "*1/*1"
}

// WildtypeStar returns the wildtype star-allele label for a gene.
func WildtypeStar(gene string) string {
	if gene == "SLCO1B1" {
		return "*1a"
	}
	return "*1"
}
