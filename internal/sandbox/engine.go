package sandbox

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/mnmartinezb-cell/oncoatlas/internal/api"
)

// germlineVariant is one entry in the built-in table of known pathogenic
// BRCA1/BRCA2 germline variants the sandbox can detect.
type germlineVariant struct {
	Code         string
	Gene         string
	ShortName    string
	HGVSC        string
	HGVSP        string
	Significance string
	Source       string
}

var germlineVariants = []germlineVariant{
	{
		Code:         "BRCA1_185delAG",
		Gene:         "BRCA1",
		ShortName:    "185delAG",
		HGVSC:        "c.68_69delAG",
		HGVSP:        "p.Glu23Valfs*17",
		Significance: "Pathogenic",
		Source:       "ClinVar",
	},
	{
		Code:         "BRCA1_5382insC",
		Gene:         "BRCA1",
		ShortName:    "5382insC",
		HGVSC:        "c.5266dupC",
		HGVSP:        "p.Gln1756Profs*74",
		Significance: "Pathogenic",
		Source:       "ClinVar",
	},
	{
		Code:         "BRCA2_6174delT",
		Gene:         "BRCA2",
		ShortName:    "6174delT",
		HGVSC:        "c.5946delT",
		HGVSP:        "p.Ser1982Argfs*22",
		Significance: "Pathogenic",
		Source:       "ClinVar",
	},
	{
		Code:         "BRCA2_2808_2811delACAA",
		Gene:         "BRCA2",
		ShortName:    "2808_2811delACAA",
		HGVSC:        "c.2808_2811delACAA",
		HGVSP:        "p.Ala938Profs*21",
		Significance: "Pathogenic",
		Source:       "ClinVar",
	},
}

// detectVariants matches one uploaded FASTA against the variant table using
// the marker carried in the filename or the FASTA header line, the same
// convention the reference patient sequences use.
func detectVariants(filename string, data []byte) []germlineVariant {
	header := ""
	if i := bytes.IndexByte(data, '\n'); i >= 0 {
		header = string(data[:i])
	} else {
		header = string(data)
	}
	haystack := strings.ToLower(filename + " " + header)

	var found []germlineVariant
	for _, v := range germlineVariants {
		if strings.Contains(haystack, strings.ToLower(v.ShortName)) ||
			strings.Contains(haystack, strings.ToLower(v.Code)) {
			found = append(found, v)
		}
	}
	return found
}

// runAnalysis analyzes both uploaded files and produces the summary line,
// overall risk classification, and detected mutations for a new analysis.
func runAnalysis(brca1Name string, brca1 []byte, brca2Name string, brca2 []byte) (summary, risk string, mutations []api.Mutation) {
	var found []germlineVariant
	found = append(found, detectVariants(brca1Name, brca1)...)
	found = append(found, detectVariants(brca2Name, brca2)...)

	pathogenic := 0
	for _, v := range found {
		mutations = append(mutations, api.Mutation{
			Gene:         v.Gene,
			HGVSC:        v.HGVSC,
			Significance: v.Significance,
			Source:       v.Source,
		})
		if v.Significance == "Pathogenic" {
			pathogenic++
		}
	}

	switch {
	case pathogenic > 1:
		risk = "high"
		summary = fmt.Sprintf("%d pathogenic germline variants detected", pathogenic)
	case pathogenic == 1:
		risk = "high"
		summary = fmt.Sprintf("Pathogenic germline variant detected: %s %s", mutations[0].Gene, mutations[0].HGVSC)
	case len(found) > 0:
		risk = "moderate"
		summary = fmt.Sprintf("%d germline variants of uncertain significance detected", len(found))
	default:
		risk = "low"
		summary = "No known germline variants detected"
	}
	return summary, risk, mutations
}
