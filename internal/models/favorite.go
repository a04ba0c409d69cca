package models

import (
	"github.com/shopspring/decimal"
)

// Favorite is one entry of a race's ranked favorite list
type Favorite struct {
	Name      string           `json:"name"`
	WinOdds   *decimal.Decimal `json:"odds"`
	Placement *int             `json:"placement"`
}

// RaceRow is the flattened, fixed-width favorite record of one race. It is the
// row type of the per-race table.
type RaceRow struct {
	Race      int         `json:"race"`
	GameType  string      `json:"game_type"`
	GameID    string      `json:"game_id"`
	Favorites [3]Favorite `json:"favorites"`
	// FavWon is nil when the favorite's placement is unresolved
	FavWon *bool `json:"fav_won"`
}

// Favorite returns the rank-1 favorite
func (r *RaceRow) Favorite() Favorite {
	return r.Favorites[0]
}

// FavPlacement returns the rank-1 favorite's placement, nil when unresolved
func (r *RaceRow) FavPlacement() *int {
	return r.Favorites[0].Placement
}

// StatisticsRow holds the summary statistics of one cohort. A nil field means
// the statistic is undefined because the cohort had no resolvable rows.
type StatisticsRow struct {
	GameType        string   `json:"game_type"`
	WinRate         *float64 `json:"fav_win_pct"`
	MedianPlacement *float64 `json:"median_fav_finish"`
	MeanPlacement   *float64 `json:"mean_fav_finish"`
	Races           int      `json:"races"`
	ResolvedRaces   int      `json:"resolved_races"`
}

// IsEmpty reports whether the cohort produced no statistics at all
func (s *StatisticsRow) IsEmpty() bool {
	return s.WinRate == nil && s.MedianPlacement == nil && s.MeanPlacement == nil
}
