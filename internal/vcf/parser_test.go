package vcf

import (
	"strings"
	"testing"
)

const sampleVCF = "##fileformat=VCFv4.2\n" +
	"##source=test\n" +
	"#CHROM\tPOS\tID\tREF\tALT\tQUAL\tFILTER\tINFO\tFORMAT\tPATIENT_42\n" +
	"chr10\t96702047\trs1799853\tC\tT\t.\tPASS\t.\tGT\t0/1\n" +
	"chr22\t42130692\trs3892097\tG\tA\t50\tPASS\tDP=30\tGT:DP\t1/1:30\n"

func TestParse_Records(t *testing.T) {
	result := Parse(sampleVCF)

	if len(result.Errors) != 0 {
		t.Fatalf("unexpected parse errors: %v", result.Errors)
	}
	if result.RecordCount() != 2 {
		t.Fatalf("RecordCount = %d, want 2", result.RecordCount())
	}

	r := result.Records[0]
	if r.Chrom != "chr10" {
		t.Errorf("Chrom = %q, want chr10", r.Chrom)
	}
	if r.Pos != 96702047 {
		t.Errorf("Pos = %d, want 96702047", r.Pos)
	}
	if r.ID != "rs1799853" {
		t.Errorf("ID = %q, want rs1799853", r.ID)
	}
	if r.RawGenotype != "0/1" {
		t.Errorf("RawGenotype = %q, want 0/1", r.RawGenotype)
	}
	if r.Genotype != "C/T" {
		t.Errorf("Genotype = %q, want C/T", r.Genotype)
	}

	// GT located within a multi-field FORMAT column
	if result.Records[1].RawGenotype != "1/1" {
		t.Errorf("RawGenotype = %q, want 1/1", result.Records[1].RawGenotype)
	}
}

func TestParse_VersionAndSample(t *testing.T) {
	result := Parse(sampleVCF)

	if result.Version != "VCFv4.2" {
		t.Errorf("Version = %q, want VCFv4.2", result.Version)
	}
	if result.SampleID != "PATIENT_42" {
		t.Errorf("SampleID = %q, want PATIENT_42", result.SampleID)
	}
}

func TestParse_NoFileformatLine(t *testing.T) {
	result := Parse("#CHROM\tPOS\tID\tREF\tALT\tQUAL\tFILTER\tINFO\n" +
		"1\t100\trs1\tA\tG\t.\tPASS\t.\n")

	if result.Version != UnknownVersion {
		t.Errorf("Version = %q, want %q", result.Version, UnknownVersion)
	}
}

func TestParse_BlankSampleName(t *testing.T) {
	result := Parse("#CHROM\tPOS\tID\tREF\tALT\tQUAL\tFILTER\tINFO\tFORMAT\t \n")
	if result.SampleID != DefaultSampleID {
		t.Errorf("SampleID = %q, want %q", result.SampleID, DefaultSampleID)
	}
}

func TestParse_MalformedLineSkipped(t *testing.T) {
	text := "##fileformat=VCFv4.2\n" +
		"1\t100\trs1\tA\tG\t.\tPASS\n" + // 7 columns
		"1\t200\trs2\tC\tT\t.\tPASS\t.\n"

	result := Parse(text)

	if result.RecordCount() != 1 {
		t.Fatalf("RecordCount = %d, want 1", result.RecordCount())
	}
	if len(result.Errors) != 1 {
		t.Fatalf("Errors = %v, want exactly one", result.Errors)
	}
	if !strings.Contains(result.Errors[0], "8 columns") {
		t.Errorf("error %q does not mention column count", result.Errors[0])
	}
	// Parsing continues past the malformed row.
	if result.Records[0].ID != "rs2" {
		t.Errorf("surviving record ID = %q, want rs2", result.Records[0].ID)
	}
}

func TestParse_NonNumericPosition(t *testing.T) {
	result := Parse("1\tabc\trs1\tA\tG\t.\tPASS\t.\n")

	if result.RecordCount() != 0 {
		t.Errorf("RecordCount = %d, want 0", result.RecordCount())
	}
	if len(result.Errors) != 1 || !strings.Contains(result.Errors[0], "invalid position") {
		t.Errorf("Errors = %v, want one invalid-position error", result.Errors)
	}
}

func TestParse_MissingFormatAndSampleColumns(t *testing.T) {
	// 8 columns only: FORMAT defaults to GT, sample to 0/0.
	result := Parse("1\t100\trs1\tA\tG\t.\tPASS\t.\n")

	if result.RecordCount() != 1 {
		t.Fatalf("RecordCount = %d, want 1", result.RecordCount())
	}
	r := result.Records[0]
	if r.Format != DefaultFormat {
		t.Errorf("Format = %q, want %q", r.Format, DefaultFormat)
	}
	if r.RawGenotype != DefaultGenotype {
		t.Errorf("RawGenotype = %q, want %q", r.RawGenotype, DefaultGenotype)
	}
	if r.Genotype != "A/A" {
		t.Errorf("Genotype = %q, want A/A", r.Genotype)
	}
}

func TestParse_FormatWithoutGT(t *testing.T) {
	result := Parse("1\t100\trs1\tA\tG\t.\tPASS\t.\tDP:AD\t30,10\n")

	if result.RecordCount() != 1 {
		t.Fatalf("RecordCount = %d, want 1", result.RecordCount())
	}
	if result.Records[0].RawGenotype != MissingGenotype {
		t.Errorf("RawGenotype = %q, want %q", result.Records[0].RawGenotype, MissingGenotype)
	}
}

func TestParse_DotIDNormalized(t *testing.T) {
	result := Parse("1\t100\t.\tA\tG\t.\tPASS\t.\n")
	if result.Records[0].ID != "" {
		t.Errorf("ID = %q, want empty", result.Records[0].ID)
	}
}

func TestParse_CRLFLineEndings(t *testing.T) {
	result := Parse("##fileformat=VCFv4.2\r\n1\t100\trs1\tA\tG\t.\tPASS\t.\r\n")

	if result.Version != "VCFv4.2" {
		t.Errorf("Version = %q, want VCFv4.2", result.Version)
	}
	if result.RecordCount() != 1 {
		t.Errorf("RecordCount = %d, want 1", result.RecordCount())
	}
}

func TestVariantRecordHelpers(t *testing.T) {
	snv := &VariantRecord{Chrom: "chr10", Ref: "C", Alt: "T"}
	if !snv.IsSNV() {
		t.Error("C>T should be an SNV")
	}
	if snv.NormalizeChrom() != "10" {
		t.Errorf("NormalizeChrom = %q, want 10", snv.NormalizeChrom())
	}

	indel := &VariantRecord{Chrom: "10", Ref: "CAG", Alt: "C"}
	if indel.IsSNV() {
		t.Error("CAG>C should not be an SNV")
	}
	if indel.NormalizeChrom() != "10" {
		t.Errorf("NormalizeChrom = %q, want 10", indel.NormalizeChrom())
	}
}

func TestZygosity(t *testing.T) {
	tests := []struct {
		gt   string
		want ZygosityClass
	}{
		{"0/0", HomozygousRef},
		{"0|0", HomozygousRef},
		{"0/0:30", HomozygousRef},
		{"1/1", HomozygousAlt},
		{"1|1", HomozygousAlt},
		{"0/1", Heterozygous},
		{"1/0", Heterozygous},
		{"./.", Heterozygous},
		// Multi-allelic calls are not modeled; they land in the het branch.
		{"2/1", Heterozygous},
		{"1/1:30", Heterozygous},
	}

	for _, tt := range tests {
		if got := Zygosity(tt.gt); got != tt.want {
			t.Errorf("Zygosity(%q) = %v, want %v", tt.gt, got, tt.want)
		}
	}
}
