package sandbox

import (
	"strings"
	"testing"
)

func TestDetectVariantsByFilename(t *testing.T) {
	found := detectVariants("BRCA1_185delAG_patient.fasta", []byte(">patient sequence\nACGT"))
	if len(found) != 1 {
		t.Fatalf("found %d variants, want 1", len(found))
	}
	if found[0].Gene != "BRCA1" || found[0].HGVSC != "c.68_69delAG" {
		t.Errorf("matched %+v, want the 185delAG entry", found[0])
	}
}

func TestDetectVariantsByHeader(t *testing.T) {
	data := []byte(">BRCA2 6174delT germline sample\nACGTACGT")
	found := detectVariants("sample.fasta", data)
	if len(found) != 1 || found[0].Gene != "BRCA2" {
		t.Fatalf("found %v, want the BRCA2 6174delT entry", found)
	}
}

func TestDetectVariantsCleanSequence(t *testing.T) {
	if found := detectVariants("clean.fasta", []byte(">wild type\nACGT")); len(found) != 0 {
		t.Errorf("found %v in a clean sequence", found)
	}
}

func TestRunAnalysisRisk(t *testing.T) {
	summary, risk, mutations := runAnalysis(
		"BRCA1_5382insC_patient.fasta", []byte(">s\nA"),
		"clean.fasta", []byte(">s\nA"),
	)
	if risk != "high" {
		t.Errorf("risk = %q, want high for a pathogenic variant", risk)
	}
	if len(mutations) != 1 || mutations[0].HGVSC != "c.5266dupC" {
		t.Errorf("mutations = %v", mutations)
	}
	if !strings.Contains(summary, "c.5266dupC") {
		t.Errorf("summary %q should name the variant", summary)
	}

	summary, risk, mutations = runAnalysis("a.fasta", []byte(">s\nA"), "b.fasta", []byte(">s\nA"))
	if risk != "low" || len(mutations) != 0 {
		t.Errorf("clean run: risk=%q mutations=%v", risk, mutations)
	}
	if summary == "" {
		t.Error("clean run should still produce a summary")
	}
}
