package api

import (
	"context"
	"fmt"
	"net/http"
)

// ListPatients fetches the patients owned by one doctor.
func (c *Client) ListPatients(ctx context.Context, doctorID int) ([]Patient, error) {
	var out []Patient
	path := fmt.Sprintf("/doctors/%d/patients", doctorID)
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreatePatient registers a patient under the given doctor. Uniqueness of the
// document id is enforced server-side; a conflict surfaces as an *Error.
func (c *Client) CreatePatient(ctx context.Context, doctorID int, in NewPatient) (*Patient, error) {
	var out Patient
	path := fmt.Sprintf("/doctors/%d/patients", doctorID)
	if err := c.do(ctx, http.MethodPost, path, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetPatient fetches one patient by id.
func (c *Client) GetPatient(ctx context.Context, patientID int) (*Patient, error) {
	var out Patient
	path := fmt.Sprintf("/patients/%d", patientID)
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
