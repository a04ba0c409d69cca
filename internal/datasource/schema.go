package datasource

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/yourusername/favstats/internal/favorites"
	"github.com/yourusername/favstats/internal/models"
)

// ProductDocument is the ATG racinginfo product response for one game type
type ProductDocument struct {
	Results []ProductResult `json:"results"`
}

// ProductResult is one completed game listed under a product
type ProductResult struct {
	ID string `json:"id"`
}

// GameDocument is the ATG racinginfo game response
type GameDocument struct {
	ID    string     `json:"id"`
	Races []RaceJSON `json:"races"`
}

// RaceJSON is one race of a game document
type RaceJSON struct {
	ID     string      `json:"id"`
	Starts []StartJSON `json:"starts"`
}

// StartJSON is one start (entrant) of a race
type StartJSON struct {
	Number int         `json:"number"`
	Horse  *HorseJSON  `json:"horse"`
	Pools  *PoolsJSON  `json:"pools"`
	Result *ResultJSON `json:"result"`
}

// HorseJSON carries the horse's identity
type HorseJSON struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// PoolsJSON holds the per-pool prices of a start. Only the win pool
// ("vinnare") is used for ranking.
type PoolsJSON struct {
	Vinnare *PoolJSON `json:"vinnare"`
}

// PoolJSON is one pool price; ATG encodes decimal odds times 100
type PoolJSON struct {
	Odds *decimal.Decimal `json:"odds"`
}

// ResultJSON is the result object of a start. Disqualified is kept raw since
// the mere presence of the key marks the start as disqualified.
type ResultJSON struct {
	FinishOrder  *int            `json:"finishOrder"`
	Disqualified json.RawMessage `json:"disqualified"`
}

// Payload converts the result object into the placement resolver's input
func (r *ResultJSON) Payload() models.ResultPayload {
	if r == nil {
		return models.ResultPayload{}
	}
	return models.ResultPayload{
		Present:      true,
		Disqualified: len(r.Disqualified) > 0,
		FinishOrder:  r.FinishOrder,
	}
}

// WinOdds returns the win pool price of the start, nil when missing
func (s *StartJSON) WinOdds() *decimal.Decimal {
	if s.Pools == nil || s.Pools.Vinnare == nil {
		return nil
	}
	return s.Pools.Vinnare.Odds
}

// ToGame converts a decoded game document into the domain model. A race
// without a starts collection or a start without a horse name is malformed;
// missing prices or results are absorbed as absent values.
func (d *GameDocument) ToGame(gameID, gameType string) (*models.Game, error) {
	if d.ID != "" {
		gameID = d.ID
	}
	if d.Races == nil {
		return nil, NewDataSourceError("atg", ErrCodeInvalidData, fmt.Sprintf("game %s has no races", gameID), nil)
	}

	game := &models.Game{
		ID:       gameID,
		GameType: gameType,
		Races:    make([]models.Race, 0, len(d.Races)),
	}

	for i, raceJSON := range d.Races {
		if raceJSON.Starts == nil {
			return nil, models.NewMalformedRaceError(gameType, gameID, i, "missing starts collection")
		}

		race := models.Race{
			Index:    i,
			Entrants: make([]models.Entrant, 0, len(raceJSON.Starts)),
		}
		for j, start := range raceJSON.Starts {
			if start.Horse == nil || start.Horse.Name == "" {
				return nil, models.NewMalformedRaceError(gameType, gameID, i,
					fmt.Sprintf("start %d has no horse name", j))
			}
			race.Entrants = append(race.Entrants, models.Entrant{
				Name:      start.Horse.Name,
				WinOdds:   start.WinOdds(),
				Placement: favorites.ResolvePlacement(start.Result.Payload()),
			})
		}
		game.Races = append(game.Races, race)
	}

	return game, nil
}

// DecodeGame decodes a raw game document
func DecodeGame(source string, data []byte, gameID, gameType string) (*models.Game, error) {
	var doc GameDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, NewDataSourceError(source, ErrCodeInvalidData, "failed to parse game "+gameID, err)
	}
	return doc.ToGame(gameID, gameType)
}

// RecentIDs returns the ids of the first n results of a product document
func (p *ProductDocument) RecentIDs(n int) []string {
	if n > len(p.Results) {
		n = len(p.Results)
	}
	if n < 0 {
		n = 0
	}
	ids := make([]string, 0, n)
	for _, r := range p.Results[:n] {
		ids = append(ids, r.ID)
	}
	return ids
}
