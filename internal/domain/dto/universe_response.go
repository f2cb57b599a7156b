package dto

import "github.com/minsuoh/krxpulse/internal/domain/models"

// UniverseResponse is the JSON structure returned by
// GET /api/v1/instruments: the default instrument set, sorted by name.
type UniverseResponse struct {
	Instruments []models.Instrument `json:"instruments"`
}
