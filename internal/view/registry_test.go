package view

import (
	"reflect"
	"testing"

	"github.com/mnmartinezb-cell/oncoatlas/internal/session"
)

type fakeSurface struct {
	visible map[Panel]bool
	calls   int
}

func newFakeSurface() *fakeSurface {
	return &fakeSurface{visible: make(map[Panel]bool)}
}

func (f *fakeSurface) SetVisible(p Panel, visible bool) {
	f.visible[p] = visible
	f.calls++
}

func (f *fakeSurface) shown() map[Panel]bool {
	out := map[Panel]bool{}
	for p, v := range f.visible {
		if v {
			out[p] = true
		}
	}
	return out
}

func TestPanelExclusivity(t *testing.T) {
	cases := []struct {
		name       string
		state      session.NavState
		detailOpen bool
		want       map[Panel]bool
	}{
		{"role selection", session.RoleSelection, false, map[Panel]bool{PanelRoleSelection: true}},
		{"admin", session.AdminActive, false, map[Panel]bool{PanelAdmin: true}},
		{"doctor entry", session.DoctorRoleEntry, false, map[Panel]bool{PanelDoctorRoleEntry: true}},
		{"dashboard", session.DoctorDashboard, false, map[Panel]bool{PanelDoctorDashboard: true}},
		{"dashboard with overlay", session.DoctorDashboard, true,
			map[Panel]bool{PanelDoctorDashboard: true, PanelPatientDetail: true}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			surface := newFakeSurface()
			NewRegistry(surface).Show(tc.state, tc.detailOpen)
			if got := surface.shown(); !reflect.DeepEqual(got, tc.want) {
				t.Errorf("visible = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestShowIsIdempotent(t *testing.T) {
	surface := newFakeSurface()
	reg := NewRegistry(surface)

	reg.Show(session.AdminActive, false)
	first := surface.shown()
	reg.Show(session.AdminActive, false)
	second := surface.shown()

	if !reflect.DeepEqual(first, second) {
		t.Errorf("repeat Show changed the visible set: %v vs %v", first, second)
	}
}

func TestOverlayForcedHiddenOutsideDashboard(t *testing.T) {
	surface := newFakeSurface()
	reg := NewRegistry(surface)

	// Overlay open on the dashboard, then navigate elsewhere with the flag
	// still raised: the stale overlay must not survive.
	reg.Show(session.DoctorDashboard, true)
	reg.Show(session.RoleSelection, true)

	if surface.visible[PanelPatientDetail] {
		t.Error("patient-detail overlay visible outside the dashboard")
	}
	if !surface.visible[PanelRoleSelection] {
		t.Error("role-selection panel should be visible")
	}
}

func TestEveryStateCoversAllPanels(t *testing.T) {
	surface := newFakeSurface()
	reg := NewRegistry(surface)
	reg.Show(session.RoleSelection, false)
	if surface.calls != len(Panels()) {
		t.Errorf("Show touched %d panels, want %d", surface.calls, len(Panels()))
	}
}
