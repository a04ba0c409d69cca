package favorites

import (
	"math"
	"sort"

	"github.com/yourusername/favstats/internal/models"
)

// OddsKey returns the ranking key of an entrant. Entrants without a strictly
// positive win pool price rank at +Inf so they never displace a priced favorite.
func OddsKey(e models.Entrant) float64 {
	if !e.HasMarketPrice() {
		return math.Inf(1)
	}
	return e.WinOdds.InexactFloat64()
}

// RankFavorites orders entrants by ascending odds key and returns the first
// min(topN, len(entrants)). Equal keys keep their input order.
func RankFavorites(entrants []models.Entrant, topN int) []models.Favorite {
	if topN <= 0 || len(entrants) == 0 {
		return []models.Favorite{}
	}

	keys := make([]float64, len(entrants))
	order := make([]int, len(entrants))
	for i, e := range entrants {
		keys[i] = OddsKey(e)
		order[i] = i
	}

	sort.SliceStable(order, func(a, b int) bool {
		return keys[order[a]] < keys[order[b]]
	})

	n := topN
	if len(entrants) < n {
		n = len(entrants)
	}

	ranked := make([]models.Favorite, n)
	for rank := 0; rank < n; rank++ {
		e := entrants[order[rank]]
		ranked[rank] = models.Favorite{
			Name:      e.Name,
			WinOdds:   e.WinOdds,
			Placement: e.Placement,
		}
	}
	return ranked
}
