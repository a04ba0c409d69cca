package favorites

import (
	"fmt"

	"github.com/yourusername/favstats/internal/models"
)

// DefaultTopN is the width of the flattened favorite record
const DefaultTopN = 3

// FlattenRace ranks the race's favorites and exposes the top three as a
// fixed-width row. Races with fewer than topN entrants are rejected.
func FlattenRace(race models.Race, game *models.Game, topN int) (models.RaceRow, error) {
	if topN < DefaultTopN {
		return models.RaceRow{}, fmt.Errorf("flatten race %d: %w (got %d)", race.Index, models.ErrInvalidTopN, topN)
	}

	gameType, gameID := "", ""
	if game != nil {
		gameType, gameID = game.GameType, game.ID
	}

	if len(race.Entrants) < topN {
		return models.RaceRow{}, models.NewMalformedRaceError(gameType, gameID, race.Index,
			fmt.Sprintf("race has %d entrants, need at least %d", len(race.Entrants), topN))
	}

	ranked := RankFavorites(race.Entrants, topN)

	row := models.RaceRow{
		Race:     race.Index,
		GameType: gameType,
		GameID:   gameID,
	}
	copy(row.Favorites[:], ranked)

	if placement := ranked[0].Placement; placement != nil {
		won := *placement == 1
		row.FavWon = &won
	}

	return row, nil
}

// FlattenGame flattens every race of a game in source order. The first
// malformed race aborts the whole document.
func FlattenGame(game *models.Game, topN int) ([]models.RaceRow, error) {
	if game == nil {
		return nil, fmt.Errorf("flatten game: nil game")
	}

	rows := make([]models.RaceRow, 0, len(game.Races))
	for _, race := range game.Races {
		if err := ValidateRace(race, game); err != nil {
			return nil, err
		}
		row, err := FlattenRace(race, game, topN)
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// ValidateRace checks the structural invariants the ranker relies on: every
// entrant is named and names are unique within the race.
func ValidateRace(race models.Race, game *models.Game) error {
	gameType, gameID := "", ""
	if game != nil {
		gameType, gameID = game.GameType, game.ID
	}

	seen := make(map[string]struct{}, len(race.Entrants))
	for i, e := range race.Entrants {
		if e.Name == "" {
			return models.NewMalformedRaceError(gameType, gameID, race.Index,
				fmt.Sprintf("entrant %d has no name", i))
		}
		if _, dup := seen[e.Name]; dup {
			return models.NewMalformedRaceError(gameType, gameID, race.Index,
				fmt.Sprintf("duplicate entrant name %q", e.Name))
		}
		seen[e.Name] = struct{}{}
	}
	return nil
}
