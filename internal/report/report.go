package report

import (
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/Redex2xp/stalcraft-tab-kv-stat/internal/identity"
	"github.com/Redex2xp/stalcraft-tab-kv-stat/internal/model"
	"github.com/Redex2xp/stalcraft-tab-kv-stat/internal/storage"
)

// Row pairs a canonical nickname with its derived statistics.
type Row struct {
	Nickname string
	model.PlayerAverages
}

// Rows converts an averages map into a slice ordered by nickname, so output
// is deterministic before an explicit sort is applied.
func Rows(averages storage.Averages) []Row {
	rows := make([]Row, 0, len(averages))
	for nick, avg := range averages {
		rows = append(rows, Row{Nickname: nick, PlayerAverages: avg})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Nickname < rows[j].Nickname })
	return rows
}

// SortByKD orders rows best ratio first: the default leaderboard view.
// The sort is stable so equal ratios keep their nickname order.
func SortByKD(rows []Row) {
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].KD > rows[j].KD })
}

// SortByPlace orders rows best average placement first (lower is better).
func SortByPlace(rows []Row) {
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].AvgPlace < rows[j].AvgPlace })
}

// PrintLeaderboard writes the ranked player table. rankOffset shifts the
// printed rank numbers when rows is a page of a larger board.
func PrintLeaderboard(w io.Writer, rows []Row, rankOffset int) {
	table := tablewriter.NewTable(w, tablewriter.WithConfig(tablewriter.Config{
		Row: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignRight},
		},
		Header: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignCenter},
		},
	}))

	table.Header("#", "PLAYER", "GAMES", "K/D", "AVG_PLACE", "AVG_KILLS", "AVG_DEATHS", "AVG_ASSISTS", "AVG_SCORE")

	for i, r := range rows {
		table.Append(
			strconv.Itoa(rankOffset+i+1),
			r.Nickname,
			strconv.Itoa(r.GamesPlayed),
			fmt.Sprintf("%.2f", r.KD),
			strconv.Itoa(r.AvgPlace),
			fmt.Sprintf("%.2f", r.AvgKills),
			fmt.Sprintf("%.2f", r.AvgDeaths),
			fmt.Sprintf("%.2f", r.AvgAssists),
			fmt.Sprintf("%.2f", r.AvgScore),
		)
	}
	table.Render()
}

// PrintMatchList writes the stored match ids newest first with their row
// counts. Ids that lack a parsable recency prefix are flagged, since they
// sort as oldest and usually mean a hand-copied file.
func PrintMatchList(w io.Writer, raw storage.RawStore) {
	ids := raw.SortedIDs()

	fmt.Fprintf(w, "%-56s %6s\n", "MATCH", "ROWS")
	for i := len(ids) - 1; i >= 0; i-- {
		id := ids[i]
		marker := ""
		if _, ok := model.RecencyKey(id); !ok {
			marker = "  (no recency prefix)"
		}
		fmt.Fprintf(w, "%-56s %6d%s\n", id, len(raw[id]), marker)
	}
	fmt.Fprintf(w, "\n%d match(es) stored.\n", len(ids))
}

// PrintMatchBoard writes one stored match's scoreboard in stored row
// order (the OCR reads top to bottom, so that is the in-game placement).
func PrintMatchBoard(w io.Writer, matchID string, records []model.MatchRecord) {
	fmt.Fprintf(w, "\nMatch: %s  |  Rows: %d\n\n", matchID, len(records))

	table := tablewriter.NewTable(w, tablewriter.WithConfig(tablewriter.Config{
		Row: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignRight},
		},
		Header: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignCenter},
		},
	}))

	table.Header("PLACE", "PLAYER", "KILLS", "DEATHS", "ASSISTS", "TREASURY", "SCORE")
	for _, r := range records {
		table.Append(
			strconv.Itoa(r.Place),
			r.Nickname,
			strconv.Itoa(r.Kills),
			strconv.Itoa(r.Deaths),
			strconv.Itoa(r.Assists),
			strconv.Itoa(r.Treasury),
			strconv.Itoa(r.Score),
		)
	}
	table.Render()
}

// PrintPlayerHistory writes one identity's stat lines in storage order,
// followed by the derived averages row.
func PrintPlayerHistory(w io.Writer, cluster *identity.Cluster, avg model.PlayerAverages) {
	fmt.Fprintf(w, "\nPlayer: %s  |  Games: %d\n\n", cluster.Nickname, len(cluster.Lines))

	table := tablewriter.NewTable(w, tablewriter.WithConfig(tablewriter.Config{
		Row: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignRight},
		},
		Header: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignCenter},
		},
	}))

	table.Header("GAME", "PLACE", "KILLS", "DEATHS", "ASSISTS", "TREASURY", "SCORE")
	for i, l := range cluster.Lines {
		table.Append(
			strconv.Itoa(i+1),
			strconv.Itoa(l.Place),
			strconv.Itoa(l.Kills),
			strconv.Itoa(l.Deaths),
			strconv.Itoa(l.Assists),
			strconv.Itoa(l.Treasury),
			strconv.Itoa(l.Score),
		)
	}
	table.Render()

	fmt.Fprintf(w, "\nK/D %.2f  |  avg place %d  |  avg kills %.2f  |  avg deaths %.2f  |  avg assists %.2f  |  avg score %.2f\n",
		avg.KD, avg.AvgPlace, avg.AvgKills, avg.AvgDeaths, avg.AvgAssists, avg.AvgScore)
}
