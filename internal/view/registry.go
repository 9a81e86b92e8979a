// Package view maps navigation states onto the fixed set of UI panels. Which
// panels are visible is a pure function of the navigation state plus the
// patient-detail overlay flag; the Registry pushes that set onto whatever
// surface actually renders (terminal, test fake).
package view

import (
	"github.com/mnmartinezb-cell/oncoatlas/internal/session"
)

// Panel names one UI panel.
type Panel string

const (
	PanelRoleSelection   Panel = "role-selection"
	PanelAdmin           Panel = "admin"
	PanelDoctorRoleEntry Panel = "doctor-role-entry"
	PanelDoctorDashboard Panel = "doctor-dashboard"
	PanelPatientDetail   Panel = "patient-detail"
)

// Panels returns every panel the registry manages, in display order.
func Panels() []Panel {
	return []Panel{
		PanelRoleSelection,
		PanelAdmin,
		PanelDoctorRoleEntry,
		PanelDoctorDashboard,
		PanelPatientDetail,
	}
}

// Surface is implemented by whatever draws panels.
type Surface interface {
	SetVisible(p Panel, visible bool)
}

// VisibleFor computes the exact panel subset for a navigation state and
// overlay flag. The patient-detail overlay layers on the dashboard only; in
// any other state it is forced hidden, so navigating away can never leave a
// stale overlay open.
func VisibleFor(state session.NavState, detailOpen bool) map[Panel]bool {
	visible := map[Panel]bool{}
	switch state {
	case session.RoleSelection:
		visible[PanelRoleSelection] = true
	case session.AdminActive:
		visible[PanelAdmin] = true
	case session.DoctorRoleEntry:
		visible[PanelDoctorRoleEntry] = true
	case session.DoctorDashboard:
		visible[PanelDoctorDashboard] = true
		if detailOpen {
			visible[PanelPatientDetail] = true
		}
	}
	return visible
}

// Registry applies panel visibility to a surface.
type Registry struct {
	surface Surface
}

// NewRegistry creates a registry drawing onto surface.
func NewRegistry(surface Surface) *Registry {
	return &Registry{surface: surface}
}

// Show makes exactly the subset for (state, detailOpen) visible and hides
// every other panel. Calling it twice with the same arguments produces the
// same visible set.
func (r *Registry) Show(state session.NavState, detailOpen bool) {
	visible := VisibleFor(state, detailOpen)
	for _, p := range Panels() {
		r.surface.SetVisible(p, visible[p])
	}
}
