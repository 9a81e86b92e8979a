package api

import (
	"context"
	"net/http"
)

// ListDoctors fetches the full doctor directory.
func (c *Client) ListDoctors(ctx context.Context) ([]Doctor, error) {
	var out []Doctor
	if err := c.do(ctx, http.MethodGet, "/admin/doctors", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateDoctor registers a new physician and returns the created record with
// its server-assigned id.
func (c *Client) CreateDoctor(ctx context.Context, in NewDoctor) (*Doctor, error) {
	var out Doctor
	if err := c.do(ctx, http.MethodPost, "/admin/doctors", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
