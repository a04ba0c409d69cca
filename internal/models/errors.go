package models

import (
	"errors"
	"fmt"
)

// Custom errors
var (
	ErrMalformedRace = errors.New("malformed race")
	ErrInvalidTopN   = errors.New("top n must be at least 3")
)

// MalformedRaceError reports a race that violates the input contract: too few
// entrants for the fixed-width record, or a structurally required field missing.
type MalformedRaceError struct {
	GameType  string
	GameID    string
	RaceIndex int
	Reason    string
}

// NewMalformedRaceError creates a new malformed race error
func NewMalformedRaceError(gameType, gameID string, raceIndex int, reason string) *MalformedRaceError {
	return &MalformedRaceError{
		GameType:  gameType,
		GameID:    gameID,
		RaceIndex: raceIndex,
		Reason:    reason,
	}
}

func (e *MalformedRaceError) Error() string {
	return fmt.Sprintf("malformed race [game_type=%s game=%s race=%d]: %s", e.GameType, e.GameID, e.RaceIndex, e.Reason)
}

// Is matches ErrMalformedRace so callers can use errors.Is
func (e *MalformedRaceError) Is(target error) bool {
	return target == ErrMalformedRace
}
