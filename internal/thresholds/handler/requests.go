package handler

import (
	"aegis/internal/thresholds"
)

// UpdateRequest is the body for PUT /v1/admin/thresholds.
type UpdateRequest struct {
	Bands []thresholds.BandConfig `json:"bands"`
}

// Validate implements httputil.Validatable. Band-level checks run in the
// service so storage-path callers get the same validation.
func (r *UpdateRequest) Validate() error {
	return thresholds.ValidateBands(r.Bands)
}
