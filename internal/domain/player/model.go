package player

// Player belongs to one team of one matchday. The same person joining another
// matchday is a distinct Player row; cross-matchday stats aggregate by name.
type Player struct {
	ID     string
	TeamID string
	Name   string
}
