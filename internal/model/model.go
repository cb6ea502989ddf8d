package model

import (
	"strconv"
	"strings"
)

// ---- Raw scoreboard data ----

// MatchRecord is one scoreboard row as transcribed from a screenshot: a
// player's placement and combat stats for a single clan-war match.
type MatchRecord struct {
	Place    int    `json:"place"`
	Nickname string `json:"nickname"`
	Kills    int    `json:"kills"`
	Deaths   int    `json:"deaths"`
	Assists  int    `json:"assists"`
	Treasury int    `json:"treasury"`
	Score    int    `json:"score"`
}

// StatLine is the per-match stat tuple once the nickname has been resolved
// to a canonical identity.
type StatLine struct {
	Place    int
	Kills    int
	Deaths   int
	Assists  int
	Treasury int
	Score    int
}

// Line strips the nickname from a record.
func (r MatchRecord) Line() StatLine {
	return StatLine{
		Place:    r.Place,
		Kills:    r.Kills,
		Deaths:   r.Deaths,
		Assists:  r.Assists,
		Treasury: r.Treasury,
		Score:    r.Score,
	}
}

// ---- Derived statistics ----

// PlayerAverages holds the rolling averages for one canonical identity.
// Treasury is recorded per match but has no average column: the leaderboard
// never displays it.
type PlayerAverages struct {
	GamesPlayed int     `json:"games_played"`
	AvgPlace    int     `json:"avg_place"`
	KD          float64 `json:"kd"`
	AvgKills    float64 `json:"avg_kills"`
	AvgDeaths   float64 `json:"avg_deaths"`
	AvgAssists  float64 `json:"avg_assists"`
	AvgScore    float64 `json:"avg_score"`
}

// ---- Match identity ----

// MatchID derives the raw-store key for a captured attachment. The numeric
// message-id prefix is what RecencyKey later extracts, so the "{id}-{name}"
// shape is load-bearing for any capture mechanism.
func MatchID(messageID, filename string) string {
	return messageID + "-" + filename
}

// RecencyKey extracts the numeric message-id prefix of a match id (the
// digits before the first '-'). Match ids are ordered by this value, never
// lexically: "999-a.png" is older than "1000-b.png". ok is false when the
// prefix does not parse.
func RecencyKey(matchID string) (key uint64, ok bool) {
	prefix, _, _ := strings.Cut(matchID, "-")
	key, err := strconv.ParseUint(prefix, 10, 64)
	if err != nil {
		return 0, false
	}
	return key, true
}
