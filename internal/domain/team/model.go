package team

// Team is one side within a single matchday.
type Team struct {
	ID         string
	MatchdayID string
	Name       string
}
