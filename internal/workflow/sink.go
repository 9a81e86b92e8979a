package workflow

import "github.com/mnmartinezb-cell/oncoatlas/internal/api"

// DoctorSink receives doctor directory output. Implementations must tolerate
// being called after the user navigated away (render into nothing rather
// than fail); there is no cancellation of in-flight fetches.
type DoctorSink interface {
	RenderDoctors(doctors []api.Doctor)
	RenderError(msg string)
}

// PatientSink receives patient directory output for the active doctor.
type PatientSink interface {
	RenderPatients(patients []api.Patient)
	RenderError(msg string)
}

// AnalysisSink receives analysis history output for the open patient.
type AnalysisSink interface {
	RenderAnalyses(analyses []api.Analysis)
	RenderError(msg string)
}
