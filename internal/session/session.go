// Package session owns the client-side navigation state machine and the
// active doctor/patient context. A Session is the single owner of all
// mutable client state; workflows and the front-end read it but only the
// transition methods mutate it, always synchronously in response to a user
// gesture. A failed guard leaves the session exactly as it was.
package session

import (
	"github.com/mnmartinezb-cell/oncoatlas/internal/api"
)

// NavState is the primary navigation state. Exactly one is current at any
// time; the patient-detail overlay is an orthogonal flag, not a state.
type NavState int

const (
	RoleSelection NavState = iota
	AdminActive
	DoctorRoleEntry
	DoctorDashboard
)

func (s NavState) String() string {
	switch s {
	case RoleSelection:
		return "role-selection"
	case AdminActive:
		return "admin-active"
	case DoctorRoleEntry:
		return "doctor-role-entry"
	case DoctorDashboard:
		return "doctor-dashboard"
	default:
		return "unknown"
	}
}

// DoctorRef identifies the doctor whose context the session is in.
type DoctorRef struct {
	ID   int
	Name string
}

// Session holds the navigation state and the active doctor/patient context.
// It is not safe for concurrent use; all writes happen on the gesture path.
type Session struct {
	state         NavState
	activeDoctor  *DoctorRef
	activePatient *api.Patient
	detailOpen    bool
	roster        map[int]bool // patient ids from the last dashboard fetch
}

// New returns a session in the initial role-selection state.
func New() *Session {
	return &Session{state: RoleSelection}
}

func (s *Session) State() NavState             { return s.state }
func (s *Session) ActiveDoctor() *DoctorRef    { return s.activeDoctor }
func (s *Session) ActivePatient() *api.Patient { return s.activePatient }
func (s *Session) PatientDetailOpen() bool     { return s.detailOpen }

// ChooseAdmin enters the admin area from role selection.
func (s *Session) ChooseAdmin() error {
	if s.state != RoleSelection {
		return api.Invalidf("cannot choose a role from %s", s.state)
	}
	s.state = AdminActive
	return nil
}

// ChooseDoctor enters the doctor-selection screen from role selection.
func (s *Session) ChooseDoctor() error {
	if s.state != RoleSelection {
		return api.Invalidf("cannot choose a role from %s", s.state)
	}
	s.state = DoctorRoleEntry
	return nil
}

// GoBack returns to role selection from either role entry screen.
func (s *Session) GoBack() error {
	if s.state != AdminActive && s.state != DoctorRoleEntry {
		return api.Invalidf("cannot go back from %s", s.state)
	}
	s.state = RoleSelection
	s.activeDoctor = nil
	return nil
}

// ConfirmDoctor enters the dashboard for the selected doctor. The guard is
// that a doctor was actually selected; with none the state does not change.
func (s *Session) ConfirmDoctor(d *api.Doctor) error {
	if s.state != DoctorRoleEntry {
		return api.Invalidf("cannot confirm a doctor from %s", s.state)
	}
	if d == nil {
		return api.Invalidf("no doctor selected")
	}
	s.activeDoctor = &DoctorRef{ID: d.ID, Name: d.Name}
	s.state = DoctorDashboard
	return nil
}

// SetPatientRoster records the patient ids from the most recent dashboard
// fetch; OpenPatient only accepts ids present in this roster.
func (s *Session) SetPatientRoster(ids []int) {
	s.roster = make(map[int]bool, len(ids))
	for _, id := range ids {
		s.roster[id] = true
	}
}

// OpenPatient raises the patient-detail overlay for a patient in the current
// roster. The underlying navigation state stays DoctorDashboard.
func (s *Session) OpenPatient(id int) error {
	if s.state != DoctorDashboard {
		return api.Invalidf("cannot open a patient from %s", s.state)
	}
	if !s.roster[id] {
		return api.Invalidf("patient %d is not in the current list", id)
	}
	s.detailOpen = true
	return nil
}

// SetActivePatient records the fetched patient backing the open overlay.
func (s *Session) SetActivePatient(p *api.Patient) error {
	if !s.detailOpen {
		return api.Invalidf("patient detail is not open")
	}
	s.activePatient = p
	return nil
}

// ClosePatient dismisses the overlay and clears the active patient. The
// navigation state is unchanged: the dashboard underneath stays current.
func (s *Session) ClosePatient() {
	s.detailOpen = false
	s.activePatient = nil
}
