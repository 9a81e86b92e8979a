package sandbox

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/mnmartinezb-cell/oncoatlas/internal/api"
)

// renderReportPDF produces the report artifact for one analysis: a minimal
// single-page PDF. Clients treat the artifact as opaque bytes, so a tiny
// hand-assembled document is enough for the sandbox.
func renderReportPDF(patient api.Patient, analysis api.Analysis, mutations []api.Mutation) []byte {
	lines := []string{
		"Oncoatlas Germline Analysis Report",
		"",
		fmt.Sprintf("Patient: %s (document %s)", patient.FullName, patient.DocumentID),
		fmt.Sprintf("Analysis #%d - %s", analysis.ID, analysis.CreatedAt.Format("2006-01-02 15:04")),
		fmt.Sprintf("Overall risk: %s", analysis.OverallRisk),
		fmt.Sprintf("Summary: %s", analysis.Summary),
		"",
	}
	if len(mutations) == 0 {
		lines = append(lines, "No variants detected.")
	} else {
		lines = append(lines, "Detected variants:")
		for _, m := range mutations {
			lines = append(lines, fmt.Sprintf("  %s %s - %s (%s)", m.Gene, m.HGVSC, m.Significance, m.Source))
		}
	}
	return buildPDF(lines)
}

func escapePDFText(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `(`, `\(`, `)`, `\)`)
	return r.Replace(s)
}

// buildPDF assembles a one-page PDF with the given text lines. Object
// offsets in the xref table must match the byte positions exactly.
func buildPDF(lines []string) []byte {
	var content bytes.Buffer
	content.WriteString("BT /F1 11 Tf 50 780 Td 14 TL\n")
	for _, ln := range lines {
		fmt.Fprintf(&content, "(%s) Tj T*\n", escapePDFText(ln))
	}
	content.WriteString("ET")

	objects := []string{
		"<< /Type /Catalog /Pages 2 0 R >>",
		"<< /Type /Pages /Kids [3 0 R] /Count 1 >>",
		"<< /Type /Page /Parent 2 0 R /MediaBox [0 0 595 842] " +
			"/Resources << /Font << /F1 4 0 R >> >> /Contents 5 0 R >>",
		"<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica >>",
		fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", content.Len(), content.String()),
	}

	var out bytes.Buffer
	out.WriteString("%PDF-1.4\n")
	offsets := make([]int, len(objects)+1)
	for i, obj := range objects {
		offsets[i+1] = out.Len()
		fmt.Fprintf(&out, "%d 0 obj\n%s\nendobj\n", i+1, obj)
	}
	xref := out.Len()
	fmt.Fprintf(&out, "xref\n0 %d\n0000000000 65535 f \n", len(objects)+1)
	for i := 1; i <= len(objects); i++ {
		fmt.Fprintf(&out, "%010d 00000 n \n", offsets[i])
	}
	fmt.Fprintf(&out, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n",
		len(objects)+1, xref)
	return out.Bytes()
}
