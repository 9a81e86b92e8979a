package workflow

import (
	"errors"

	"github.com/mnmartinezb-cell/oncoatlas/internal/api"
)

// message extracts the user-facing text for an error. Application errors
// surface the backend's detail string verbatim, not a generic status line.
func message(err error) string {
	var apiErr *api.Error
	if errors.As(err, &apiErr) {
		return apiErr.Detail
	}
	return err.Error()
}
