// Package workflow implements the user-gesture workflows: list-then-mutate
// directories for doctors and patients, and the two-file analysis submission.
// Each workflow validates client side, calls the backend, then re-fetches and
// re-renders the affected collection so the view always reflects
// server-assigned state. Errors never propagate past a workflow entry point:
// they are rendered to the sink as a single notification and returned for
// callers that want an exit code.
package workflow

import (
	"context"
	"io"

	"github.com/mnmartinezb-cell/oncoatlas/internal/api"
)

// Backend is the slice of the oncoatlas API the workflows use. *api.Client
// implements it; tests substitute in-memory fakes.
type Backend interface {
	ListDoctors(ctx context.Context) ([]api.Doctor, error)
	CreateDoctor(ctx context.Context, in api.NewDoctor) (*api.Doctor, error)
	ListPatients(ctx context.Context, doctorID int) ([]api.Patient, error)
	CreatePatient(ctx context.Context, doctorID int, in api.NewPatient) (*api.Patient, error)
	GetPatient(ctx context.Context, patientID int) (*api.Patient, error)
	ListAnalyses(ctx context.Context, patientID int) ([]api.Analysis, error)
	GetAnalysis(ctx context.Context, patientID, analysisID int) (*api.AnalysisDetail, error)
	SubmitAnalysis(ctx context.Context, patientID int, brca1, brca2 api.FASTAFile) (*api.Analysis, error)
	FetchReport(ctx context.Context, patientID, analysisID int, w io.Writer) error
}
