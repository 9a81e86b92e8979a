package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
)

// ListAnalyses fetches the analysis history for a patient, newest first.
func (c *Client) ListAnalyses(ctx context.Context, patientID int) ([]Analysis, error) {
	var out []Analysis
	path := fmt.Sprintf("/patients/%d/analyses", patientID)
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetAnalysis fetches one analysis with its detected variants.
func (c *Client) GetAnalysis(ctx context.Context, patientID, analysisID int) (*AnalysisDetail, error) {
	var out AnalysisDetail
	path := fmt.Sprintf("/patients/%d/analyses/%d", patientID, analysisID)
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SubmitAnalysis uploads both FASTA files for a patient as one multipart
// request and returns the created analysis echoed by the backend. The upload
// is a single atomic operation: no chunking, no resume, no progress.
func (c *Client) SubmitAnalysis(ctx context.Context, patientID int, brca1, brca2 FASTAFile) (*Analysis, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for _, part := range []struct {
		field string
		file  FASTAFile
	}{
		{"brca1_file", brca1},
		{"brca2_file", brca2},
	} {
		fw, err := mw.CreateFormFile(part.field, part.file.Name)
		if err != nil {
			return nil, fmt.Errorf("encode %s: %w", part.field, err)
		}
		if _, err := fw.Write(part.file.Data); err != nil {
			return nil, fmt.Errorf("encode %s: %w", part.field, err)
		}
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("encode multipart body: %w", err)
	}

	var out Analysis
	path := fmt.Sprintf("/patients/%d/analyses", patientID)
	body := &multipartBody{contentType: mw.FormDataContentType(), data: buf.Bytes()}
	if err := c.do(ctx, http.MethodPost, path, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// FetchReport streams the generated report artifact for an analysis into w.
// The artifact is opaque to the client; it is saved or opened, never parsed.
func (c *Client) FetchReport(ctx context.Context, patientID, analysisID int, w io.Writer) error {
	path := fmt.Sprintf("/patients/%d/analyses/%d/report", patientID, analysisID)
	return c.download(ctx, path, w)
}
