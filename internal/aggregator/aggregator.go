package aggregator

import (
	"errors"
	"math"

	"github.com/Redex2xp/stalcraft-tab-kv-stat/internal/identity"
	"github.com/Redex2xp/stalcraft-tab-kv-stat/internal/model"
	"github.com/Redex2xp/stalcraft-tab-kv-stat/internal/storage"
)

// DefaultRecentWindow is how many of the most recent matches define the
// active-player set.
const DefaultRecentWindow = 10

// ErrNoData reports that aggregation ran against an empty raw store. It is
// a descriptive outcome rather than a failure: callers render it as a
// warning and leave any previously saved averages untouched.
var ErrNoData = errors.New("no raw match data to aggregate")

// Result is one full recomputation of the leaderboard.
type Result struct {
	// Averages holds the derived statistics for every eligible identity,
	// keyed by exemplar nickname.
	Averages storage.Averages
	// Players counts the identities that survived the activity and
	// min-games filters.
	Players int
	// TotalKills and TotalDeaths are summed over every stored record,
	// including records of players filtered out of Averages.
	TotalKills  int
	TotalDeaths int
}

// Aggregate recomputes per-player averages from the raw store. Records are
// clustered into identities, identities inactive over the recentWindow
// newest matches or with fewer than minGames games are dropped, and the
// survivors get fresh rolling averages. recentWindow values below 1 fall
// back to DefaultRecentWindow.
func Aggregate(raw storage.RawStore, minGames, recentWindow int) (*Result, error) {
	if recentWindow < 1 {
		recentWindow = DefaultRecentWindow
	}

	records := raw.AllRecords()
	if len(records) == 0 {
		return nil, ErrNoData
	}

	res := &Result{Averages: make(storage.Averages)}
	for _, r := range records {
		res.TotalKills += r.Kills
		res.TotalDeaths += r.Deaths
	}

	active := identity.Active(raw, recentWindow)
	for _, cluster := range identity.Clusters(records) {
		if !cluster.IsActive(active) {
			continue
		}
		if len(cluster.Lines) < minGames {
			continue
		}
		res.Averages[cluster.Nickname] = AveragesFor(cluster.Lines)
		res.Players++
	}
	return res, nil
}

// AveragesFor computes the derived statistics over one identity's stat
// lines. The K/D ratio falls back to the raw, unrounded kill average when
// the death average is zero: a flawless player keeps a meaningful ratio
// instead of dividing by zero.
func AveragesFor(lines []model.StatLine) model.PlayerAverages {
	games := float64(len(lines))
	var place, kills, deaths, assists, score int
	for _, l := range lines {
		place += l.Place
		kills += l.Kills
		deaths += l.Deaths
		assists += l.Assists
		score += l.Score
	}

	avgKills := float64(kills) / games
	avgDeaths := float64(deaths) / games
	kd := avgKills
	if avgDeaths > 0 {
		kd = round2(avgKills / avgDeaths)
	}

	return model.PlayerAverages{
		GamesPlayed: len(lines),
		AvgPlace:    int(math.Round(float64(place) / games)),
		KD:          kd,
		AvgKills:    round2(avgKills),
		AvgDeaths:   round2(avgDeaths),
		AvgAssists:  round2(float64(assists) / games),
		AvgScore:    round2(float64(score) / games),
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
