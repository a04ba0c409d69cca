// Package stats computes cohort-level favorite outcome statistics from the
// flattened per-race favorite records.
package stats

import (
	"sort"
	"strings"

	"github.com/yourusername/favstats/internal/models"
)

// Aggregate computes one StatisticsRow per requested cohort, in the order of
// cohorts. Rows are matched to cohorts case-insensitively. Rows with an
// unresolved outcome or placement are left out of the respective statistic;
// a cohort with nothing resolved reports every statistic as undefined.
func Aggregate(rows []models.RaceRow, cohorts []string) []models.StatisticsRow {
	result := make([]models.StatisticsRow, 0, len(cohorts))
	for _, cohort := range cohorts {
		result = append(result, aggregateCohort(rows, cohort))
	}
	return result
}

func aggregateCohort(rows []models.RaceRow, cohort string) models.StatisticsRow {
	stat := models.StatisticsRow{GameType: cohort}

	var (
		wins       int
		decided    int
		placements []float64
	)
	for i := range rows {
		row := &rows[i]
		if !strings.EqualFold(row.GameType, cohort) {
			continue
		}
		stat.Races++

		if row.FavWon != nil {
			decided++
			if *row.FavWon {
				wins++
			}
		}
		if p := row.FavPlacement(); p != nil {
			placements = append(placements, float64(*p))
		}
	}

	stat.ResolvedRaces = len(placements)
	if len(placements) == 0 {
		return stat
	}

	stat.WinRate = winRate(wins, decided)
	stat.MedianPlacement = median(placements)
	stat.MeanPlacement = mean(placements)
	return stat
}

func winRate(wins, decided int) *float64 {
	if decided == 0 {
		return nil
	}
	rate := 100 * float64(wins) / float64(decided)
	return &rate
}

func mean(values []float64) *float64 {
	if len(values) == 0 {
		return nil
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	m := sum / float64(len(values))
	return &m
}

// median averages the two middle values for an even count
func median(values []float64) *float64 {
	n := len(values)
	if n == 0 {
		return nil
	}
	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)

	var m float64
	if n%2 == 1 {
		m = sorted[n/2]
	} else {
		m = (sorted[n/2-1] + sorted[n/2]) / 2
	}
	return &m
}
