package models

import (
	"github.com/shopspring/decimal"
)

// Entrant represents one starter (horse) in a race
type Entrant struct {
	Name      string           `json:"name"`
	WinOdds   *decimal.Decimal `json:"win_odds"`
	Placement *int             `json:"placement"`
}

// HasMarketPrice reports whether the entrant carries a usable win pool price.
// Missing, zero and negative prices all count as "no market price".
func (e *Entrant) HasMarketPrice() bool {
	return e.WinOdds != nil && e.WinOdds.IsPositive()
}

// ResultPayload is the shape of one start's result object as far as placement
// resolution is concerned. Present is false when the result object itself is
// missing from the source document.
type ResultPayload struct {
	Present      bool
	Disqualified bool
	FinishOrder  *int
}
