package models

// Race represents one race of a game: its position in the source document and
// its starting field in source order.
type Race struct {
	Index    int       `json:"race"`
	Entrants []Entrant `json:"entrants"`
}

// Game represents one source document: a set of races played under a single
// game type (cohort) such as V75 or GS75.
type Game struct {
	ID       string `json:"id"`
	GameType string `json:"game_type"`
	Races    []Race `json:"races"`
}

// EntrantNames returns the entrant names in source order
func (r *Race) EntrantNames() []string {
	names := make([]string, len(r.Entrants))
	for i, e := range r.Entrants {
		names[i] = e.Name
	}
	return names
}
