// Package reporting renders the per-race favorite table and the per-cohort
// statistics table.
package reporting

import (
	"strconv"

	"github.com/yourusername/favstats/internal/models"
)

// RaceColumns are the per-race table columns in output order
var RaceColumns = []string{
	"race", "game_type", "fav_name", "second_fav_name", "third_fav_name",
	"fav_odds", "second_fav_odds", "third_fav_odds", "fav_placement", "fav_won",
}

// StatisticsColumns are the per-cohort table columns in output order
var StatisticsColumns = []string{"game_type", "% fav wins", "median fav finish", "mean fav finish"}

// RaceRecord is one row of the per-race table. Nil fields are unknown.
type RaceRecord struct {
	Race          int      `json:"race"`
	GameType      string   `json:"game_type"`
	FavName       string   `json:"fav_name"`
	SecondFavName string   `json:"second_fav_name"`
	ThirdFavName  string   `json:"third_fav_name"`
	FavOdds       *float64 `json:"fav_odds"`
	SecondFavOdds *float64 `json:"second_fav_odds"`
	ThirdFavOdds  *float64 `json:"third_fav_odds"`
	FavPlacement  *int     `json:"fav_placement"`
	FavWon        *int     `json:"fav_won"`
}

// StatisticsRecord is one row of the per-cohort table
type StatisticsRecord struct {
	GameType        string   `json:"game_type"`
	FavWinPct       *float64 `json:"% fav wins"`
	MedianFavFinish *float64 `json:"median fav finish"`
	MeanFavFinish   *float64 `json:"mean fav finish"`
}

// NewRaceRecord flattens a race row into table columns
func NewRaceRecord(row models.RaceRow) RaceRecord {
	rec := RaceRecord{
		Race:          row.Race,
		GameType:      row.GameType,
		FavName:       row.Favorites[0].Name,
		SecondFavName: row.Favorites[1].Name,
		ThirdFavName:  row.Favorites[2].Name,
		FavOdds:       oddsValue(row.Favorites[0]),
		SecondFavOdds: oddsValue(row.Favorites[1]),
		ThirdFavOdds:  oddsValue(row.Favorites[2]),
		FavPlacement:  row.FavPlacement(),
	}
	if row.FavWon != nil {
		won := 0
		if *row.FavWon {
			won = 1
		}
		rec.FavWon = &won
	}
	return rec
}

// NewStatisticsRecord maps a statistics row onto table columns
func NewStatisticsRecord(stat models.StatisticsRow) StatisticsRecord {
	return StatisticsRecord{
		GameType:        stat.GameType,
		FavWinPct:       stat.WinRate,
		MedianFavFinish: stat.MedianPlacement,
		MeanFavFinish:   stat.MeanPlacement,
	}
}

// Cells renders the record as strings, using unknown for missing values
func (r RaceRecord) Cells(unknown string) []string {
	return []string{
		strconv.Itoa(r.Race),
		r.GameType,
		r.FavName,
		r.SecondFavName,
		r.ThirdFavName,
		formatFloat(r.FavOdds, -1, unknown),
		formatFloat(r.SecondFavOdds, -1, unknown),
		formatFloat(r.ThirdFavOdds, -1, unknown),
		formatInt(r.FavPlacement, unknown),
		formatInt(r.FavWon, unknown),
	}
}

// Cells renders the record as strings with the given float precision
func (s StatisticsRecord) Cells(precision int, unknown string) []string {
	return []string{
		s.GameType,
		formatFloat(s.FavWinPct, precision, unknown),
		formatFloat(s.MedianFavFinish, precision, unknown),
		formatFloat(s.MeanFavFinish, precision, unknown),
	}
}

func oddsValue(f models.Favorite) *float64 {
	if f.WinOdds == nil {
		return nil
	}
	v := f.WinOdds.InexactFloat64()
	return &v
}

func formatFloat(v *float64, precision int, unknown string) string {
	if v == nil {
		return unknown
	}
	return strconv.FormatFloat(*v, 'f', precision, 64)
}

func formatInt(v *int, unknown string) string {
	if v == nil {
		return unknown
	}
	return strconv.Itoa(*v)
}
