package workflow

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/mnmartinezb-cell/oncoatlas/internal/api"
)

const doctorView = "doctors"

// DoctorDirectory is the list-then-mutate workflow over the doctor
// collection: fetch, render, create, re-fetch.
type DoctorDirectory struct {
	backend Backend
	sink    DoctorSink
	tokens  *tokenSource
	logger  zerolog.Logger
}

// NewDoctorDirectory wires the doctor directory workflow.
func NewDoctorDirectory(backend Backend, sink DoctorSink, logger zerolog.Logger) *DoctorDirectory {
	return &DoctorDirectory{
		backend: backend,
		sink:    sink,
		tokens:  newTokenSource(),
		logger:  logger,
	}
}

// Load fetches the directory and renders it. The returned slice lets callers
// bind selection affordances to server-assigned ids at render time. A
// completion that is no longer the latest fetch for this view is discarded.
func (d *DoctorDirectory) Load(ctx context.Context) ([]api.Doctor, error) {
	tok := d.tokens.next(doctorView)
	doctors, err := d.backend.ListDoctors(ctx)
	if !d.tokens.isLatest(doctorView, tok) {
		d.logger.Debug().Str("view", doctorView).Msg("discarding stale fetch result")
		return doctors, err
	}
	if err != nil {
		d.sink.RenderError(message(err))
		return nil, err
	}
	d.sink.RenderDoctors(doctors)
	return doctors, nil
}

// Create validates the required fields, registers the doctor, then re-fetches
// the whole directory so the rendered list carries server-assigned ids and
// ordering. It returns the new doctor's id.
func (d *DoctorDirectory) Create(ctx context.Context, name, email, specialty string) (int, error) {
	if strings.TrimSpace(name) == "" {
		return 0, d.invalid("name is required")
	}
	if strings.TrimSpace(email) == "" {
		return 0, d.invalid("email is required")
	}

	created, err := d.backend.CreateDoctor(ctx, api.NewDoctor{
		Name:      name,
		Email:     email,
		Specialty: specialty,
	})
	if err != nil {
		d.sink.RenderError(message(err))
		return 0, err
	}
	d.logger.Info().Int("doctor_id", created.ID).Msg("doctor created")

	if _, err := d.Load(ctx); err != nil {
		return created.ID, err
	}
	return created.ID, nil
}

func (d *DoctorDirectory) invalid(msg string) error {
	err := api.Invalidf("%s", msg)
	d.sink.RenderError(message(err))
	return err
}
