package session

import (
	"errors"
	"testing"

	"github.com/mnmartinezb-cell/oncoatlas/internal/api"
)

func TestInitialState(t *testing.T) {
	s := New()
	if s.State() != RoleSelection {
		t.Errorf("initial state = %v, want RoleSelection", s.State())
	}
	if s.ActiveDoctor() != nil || s.ActivePatient() != nil {
		t.Error("fresh session must have no active doctor or patient")
	}
}

func TestChooseRoles(t *testing.T) {
	s := New()
	if err := s.ChooseAdmin(); err != nil {
		t.Fatalf("ChooseAdmin: %v", err)
	}
	if s.State() != AdminActive {
		t.Errorf("state = %v, want AdminActive", s.State())
	}
	if err := s.GoBack(); err != nil {
		t.Fatalf("GoBack: %v", err)
	}
	if err := s.ChooseDoctor(); err != nil {
		t.Fatalf("ChooseDoctor: %v", err)
	}
	if s.State() != DoctorRoleEntry {
		t.Errorf("state = %v, want DoctorRoleEntry", s.State())
	}
}

func TestChooseRoleOutsideRoleSelection(t *testing.T) {
	s := New()
	s.ChooseAdmin()
	err := s.ChooseDoctor()
	var verr *api.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if s.State() != AdminActive {
		t.Errorf("failed transition must not change state, got %v", s.State())
	}
}

func TestConfirmDoctorWithoutSelection(t *testing.T) {
	s := New()
	s.ChooseDoctor()

	err := s.ConfirmDoctor(nil)
	var verr *api.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if s.State() != DoctorRoleEntry {
		t.Errorf("state = %v, want DoctorRoleEntry after failed guard", s.State())
	}
	if s.ActiveDoctor() != nil {
		t.Error("failed confirm must not set an active doctor")
	}
}

func TestConfirmDoctor(t *testing.T) {
	s := New()
	s.ChooseDoctor()

	if err := s.ConfirmDoctor(&api.Doctor{ID: 4, Name: "Ana Ruiz"}); err != nil {
		t.Fatalf("ConfirmDoctor: %v", err)
	}
	if s.State() != DoctorDashboard {
		t.Errorf("state = %v, want DoctorDashboard", s.State())
	}
	if d := s.ActiveDoctor(); d == nil || d.ID != 4 || d.Name != "Ana Ruiz" {
		t.Errorf("active doctor = %+v", d)
	}
}

func dashboardSession(t *testing.T) *Session {
	t.Helper()
	s := New()
	s.ChooseDoctor()
	if err := s.ConfirmDoctor(&api.Doctor{ID: 1, Name: "Ana Ruiz"}); err != nil {
		t.Fatal(err)
	}
	return s
}

func TestOpenPatientOutsideRoster(t *testing.T) {
	s := dashboardSession(t)
	s.SetPatientRoster([]int{10, 11})

	err := s.OpenPatient(99)
	var verr *api.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if s.PatientDetailOpen() {
		t.Error("overlay must stay closed after failed guard")
	}
}

func TestOverlayIndependence(t *testing.T) {
	s := dashboardSession(t)
	s.SetPatientRoster([]int{10})

	if err := s.OpenPatient(10); err != nil {
		t.Fatalf("OpenPatient: %v", err)
	}
	if !s.PatientDetailOpen() {
		t.Fatal("overlay should be open")
	}
	if s.State() != DoctorDashboard {
		t.Errorf("opening the overlay must not change the primary state, got %v", s.State())
	}
	if err := s.SetActivePatient(&api.Patient{ID: 10, FullName: "Luz Vega"}); err != nil {
		t.Fatalf("SetActivePatient: %v", err)
	}

	s.ClosePatient()
	if s.PatientDetailOpen() {
		t.Error("overlay should be closed")
	}
	if s.ActivePatient() != nil {
		t.Error("closing the overlay must clear the active patient")
	}
	if s.State() != DoctorDashboard {
		t.Errorf("state = %v, want DoctorDashboard", s.State())
	}
	if d := s.ActiveDoctor(); d == nil || d.ID != 1 {
		t.Errorf("closing the overlay must not touch the active doctor, got %+v", d)
	}
}

func TestSetActivePatientRequiresOpenOverlay(t *testing.T) {
	s := dashboardSession(t)
	err := s.SetActivePatient(&api.Patient{ID: 5})
	var verr *api.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if s.ActivePatient() != nil {
		t.Error("active patient must stay nil while the overlay is closed")
	}
}
