package workflow

import (
	"context"
	"io"

	"github.com/rs/zerolog"

	"github.com/mnmartinezb-cell/oncoatlas/internal/api"
)

const analysisView = "analyses"

// AnalysisSubmission submits two FASTA files for the open patient and keeps
// the analysis history in sync with the backend. Submissions carry no
// deduplication and no in-flight lock: submitting the same files twice
// creates two distinct analysis records.
type AnalysisSubmission struct {
	backend Backend
	sink    AnalysisSink
	tokens  *tokenSource
	logger  zerolog.Logger
}

// NewAnalysisSubmission wires the analysis workflow.
func NewAnalysisSubmission(backend Backend, sink AnalysisSink, logger zerolog.Logger) *AnalysisSubmission {
	return &AnalysisSubmission{
		backend: backend,
		sink:    sink,
		tokens:  newTokenSource(),
		logger:  logger,
	}
}

// History fetches and renders the analysis history for a patient, discarding
// the result if a newer fetch has been issued for the history panel.
func (a *AnalysisSubmission) History(ctx context.Context, patientID int) ([]api.Analysis, error) {
	tok := a.tokens.next(analysisView)
	analyses, err := a.backend.ListAnalyses(ctx, patientID)
	if !a.tokens.isLatest(analysisView, tok) {
		a.logger.Debug().Str("view", analysisView).Msg("discarding stale fetch result")
		return analyses, err
	}
	if err != nil {
		a.sink.RenderError(message(err))
		return nil, err
	}
	a.sink.RenderAnalyses(analyses)
	return analyses, nil
}

// Submit validates that a patient is open and both files are present, then
// uploads them as one atomic multipart operation. Preconditions fail before
// any request is issued. On success the whole history is re-fetched: the new
// analysis is rendered with its server-assigned id, timestamp, and summary,
// never with data echoed from the response.
func (a *AnalysisSubmission) Submit(ctx context.Context, patientID int, brca1, brca2 api.FASTAFile) (int, error) {
	if patientID <= 0 {
		return 0, a.invalid("no patient is open")
	}
	if len(brca1.Data) == 0 {
		return 0, a.invalid("BRCA1 FASTA file is required")
	}
	if len(brca2.Data) == 0 {
		return 0, a.invalid("BRCA2 FASTA file is required")
	}

	created, err := a.backend.SubmitAnalysis(ctx, patientID, brca1, brca2)
	if err != nil {
		a.sink.RenderError(message(err))
		return 0, err
	}
	a.logger.Info().
		Int("patient_id", patientID).
		Int("analysis_id", created.ID).
		Msg("analysis submitted")

	if _, err := a.History(ctx, patientID); err != nil {
		return created.ID, err
	}
	return created.ID, nil
}

// Detail fetches one analysis with its detected variants.
func (a *AnalysisSubmission) Detail(ctx context.Context, patientID, analysisID int) (*api.AnalysisDetail, error) {
	detail, err := a.backend.GetAnalysis(ctx, patientID, analysisID)
	if err != nil {
		a.sink.RenderError(message(err))
		return nil, err
	}
	return detail, nil
}

// SaveReport streams the report artifact for an analysis into w.
func (a *AnalysisSubmission) SaveReport(ctx context.Context, patientID, analysisID int, w io.Writer) error {
	if err := a.backend.FetchReport(ctx, patientID, analysisID, w); err != nil {
		a.sink.RenderError(message(err))
		return err
	}
	return nil
}

func (a *AnalysisSubmission) invalid(msg string) error {
	err := api.Invalidf("%s", msg)
	a.sink.RenderError(message(err))
	return err
}
