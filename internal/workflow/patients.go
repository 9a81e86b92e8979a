package workflow

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/mnmartinezb-cell/oncoatlas/internal/api"
)

const patientView = "patients"

// PatientDirectory is the list-then-mutate workflow over one doctor's
// patients. The owning doctor is passed per call: the scope is whatever
// doctor context the session is in when the gesture fires.
type PatientDirectory struct {
	backend Backend
	sink    PatientSink
	tokens  *tokenSource
	logger  zerolog.Logger
}

// NewPatientDirectory wires the patient directory workflow.
func NewPatientDirectory(backend Backend, sink PatientSink, logger zerolog.Logger) *PatientDirectory {
	return &PatientDirectory{
		backend: backend,
		sink:    sink,
		tokens:  newTokenSource(),
		logger:  logger,
	}
}

// Load fetches the patients of doctorID and renders them. Fetches for the
// patient panel share one token sequence, so a slow fetch for a previously
// selected doctor can never overwrite the current doctor's list.
func (p *PatientDirectory) Load(ctx context.Context, doctorID int) ([]api.Patient, error) {
	if doctorID <= 0 {
		return nil, p.invalid("no doctor is active")
	}
	tok := p.tokens.next(patientView)
	patients, err := p.backend.ListPatients(ctx, doctorID)
	if !p.tokens.isLatest(patientView, tok) {
		p.logger.Debug().Str("view", patientView).Msg("discarding stale fetch result")
		return patients, err
	}
	if err != nil {
		p.sink.RenderError(message(err))
		return nil, err
	}
	p.sink.RenderPatients(patients)
	return patients, nil
}

// Create validates the required fields, registers the patient under doctorID,
// then re-fetches the full list. Document id uniqueness stays a backend
// concern; a conflict arrives as an *api.Error and is surfaced verbatim.
func (p *PatientDirectory) Create(ctx context.Context, doctorID int, in api.NewPatient) (int, error) {
	if doctorID <= 0 {
		return 0, p.invalid("no doctor is active")
	}
	if strings.TrimSpace(in.FullName) == "" {
		return 0, p.invalid("full name is required")
	}
	if strings.TrimSpace(in.DocumentID) == "" {
		return 0, p.invalid("document id is required")
	}

	created, err := p.backend.CreatePatient(ctx, doctorID, in)
	if err != nil {
		p.sink.RenderError(message(err))
		return 0, err
	}
	p.logger.Info().
		Int("doctor_id", doctorID).
		Int("patient_id", created.ID).
		Msg("patient created")

	if _, err := p.Load(ctx, doctorID); err != nil {
		return created.ID, err
	}
	return created.ID, nil
}

// Open fetches one patient for the detail overlay.
func (p *PatientDirectory) Open(ctx context.Context, patientID int) (*api.Patient, error) {
	patient, err := p.backend.GetPatient(ctx, patientID)
	if err != nil {
		p.sink.RenderError(message(err))
		return nil, err
	}
	return patient, nil
}

func (p *PatientDirectory) invalid(msg string) error {
	err := api.Invalidf("%s", msg)
	p.sink.RenderError(message(err))
	return err
}
