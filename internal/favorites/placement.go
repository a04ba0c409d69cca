// Package favorites turns a race's starting field into its ranked betting
// favorites and the flattened per-race favorite record.
package favorites

import "github.com/yourusername/favstats/internal/models"

// ResolvePlacement extracts the finishing position from one start's result.
// A disqualification marker wins over any finish order. Missing fields resolve
// to nil rather than an error.
func ResolvePlacement(result models.ResultPayload) *int {
	if !result.Present || result.Disqualified {
		return nil
	}
	if result.FinishOrder == nil {
		return nil
	}
	placement := *result.FinishOrder
	return &placement
}
