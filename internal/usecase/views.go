package usecase

// Derived-view cache keys. Every write that can change a matchday's standings
// or player stats drops the whole matchday prefix plus the cross-matchday
// overall key.
const overallStatsKey = "views:overall:players"

func viewKeyPrefix(matchdayID string) string {
	return "views:md:" + matchdayID + ":"
}

func standingsKey(matchdayID string) string {
	return viewKeyPrefix(matchdayID) + "standings"
}

func playerStatsKey(matchdayID string) string {
	return viewKeyPrefix(matchdayID) + "players"
}
