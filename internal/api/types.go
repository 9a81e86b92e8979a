package api

import "time"

// Doctor is a physician record as returned by the backend. IDs are always
// server-assigned; the client never fabricates one.
type Doctor struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email,omitempty"`
	Specialty string `json:"specialty,omitempty"`
}

// NewDoctor is the creation payload for POST /admin/doctors.
type NewDoctor struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	Specialty string `json:"specialty"`
}

// Patient is a patient record, always owned by exactly one doctor.
type Patient struct {
	ID          int       `json:"id"`
	FullName    string    `json:"full_name"`
	DocumentID  string    `json:"document_id"`
	DateOfBirth string    `json:"date_of_birth,omitempty"` // YYYY-MM-DD
	Sex         string    `json:"sex,omitempty"`
	CreatedAt   time.Time `json:"created_at,omitempty"`
}

// NewPatient is the creation payload for POST /doctors/{id}/patients.
// DateOfBirth and Sex are optional; the backend defaults them.
type NewPatient struct {
	FullName    string `json:"full_name"`
	DocumentID  string `json:"document_id"`
	DateOfBirth string `json:"date_of_birth,omitempty"`
	Sex         string `json:"sex,omitempty"`
}

// Analysis is one germline analysis run for a patient, as listed in the
// patient's history. The client never constructs these locally; history is
// always re-fetched after a submission.
type Analysis struct {
	ID          int       `json:"id"`
	CreatedAt   time.Time `json:"created_at"`
	Summary     string    `json:"summary"`
	OverallRisk string    `json:"overall_risk,omitempty"`
}

// AnalysisDetail is an analysis together with the variants it detected.
type AnalysisDetail struct {
	Analysis
	Mutations []Mutation `json:"mutations"`
}

// Mutation is a single detected germline variant.
type Mutation struct {
	ID           int    `json:"id"`
	Gene         string `json:"gene"`
	HGVSC        string `json:"hgvs_c"`
	Significance string `json:"significance"`
	Source       string `json:"source,omitempty"`
}

// FASTAFile is one uploaded sequence file for an analysis submission.
type FASTAFile struct {
	Name string
	Data []byte
}
