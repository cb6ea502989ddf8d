package report

import (
	"bytes"
	"strings"
	"testing"

	"github.com/Redex2xp/stalcraft-tab-kv-stat/internal/identity"
	"github.com/Redex2xp/stalcraft-tab-kv-stat/internal/model"
	"github.com/Redex2xp/stalcraft-tab-kv-stat/internal/storage"
)

func sampleAverages() storage.Averages {
	return storage.Averages{
		"Vortex": {GamesPlayed: 12, AvgPlace: 2, KD: 4.2, AvgKills: 11.5, AvgDeaths: 2.7, AvgAssists: 3.1, AvgScore: 2100.4},
		"Shadow": {GamesPlayed: 8, AvgPlace: 1, KD: 2.1, AvgKills: 8.0, AvgDeaths: 3.8, AvgAssists: 1.0, AvgScore: 1600.0},
		"Ghost":  {GamesPlayed: 5, AvgPlace: 4, KD: 2.1, AvgKills: 6.2, AvgDeaths: 2.9, AvgAssists: 0.4, AvgScore: 900.0},
	}
}

func TestRowsOrderedByNickname(t *testing.T) {
	rows := Rows(sampleAverages())
	want := []string{"Ghost", "Shadow", "Vortex"}
	for i, r := range rows {
		if r.Nickname != want[i] {
			t.Fatalf("row %d = %q, want %q", i, r.Nickname, want[i])
		}
	}
}

func TestSortByKDDescendingStable(t *testing.T) {
	rows := Rows(sampleAverages())
	SortByKD(rows)

	if rows[0].Nickname != "Vortex" {
		t.Errorf("best ratio should lead, got %q", rows[0].Nickname)
	}
	// Ghost and Shadow tie at 2.1; the prior nickname order must hold.
	if rows[1].Nickname != "Ghost" || rows[2].Nickname != "Shadow" {
		t.Errorf("tie broke nickname order: %q, %q", rows[1].Nickname, rows[2].Nickname)
	}
}

func TestSortByPlaceAscending(t *testing.T) {
	rows := Rows(sampleAverages())
	SortByPlace(rows)

	want := []string{"Shadow", "Vortex", "Ghost"}
	for i, r := range rows {
		if r.Nickname != want[i] {
			t.Fatalf("row %d = %q, want %q", i, r.Nickname, want[i])
		}
	}
}

func TestPrintLeaderboardRendersRanksAndStats(t *testing.T) {
	rows := Rows(sampleAverages())
	SortByKD(rows)

	var buf bytes.Buffer
	PrintLeaderboard(&buf, rows, 0)
	out := buf.String()

	for _, want := range []string{"PLAYER", "K/D", "Vortex", "4.20", "11.50"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestPrintLeaderboardRankOffset(t *testing.T) {
	rows := Rows(sampleAverages())[:1]

	var buf bytes.Buffer
	PrintLeaderboard(&buf, rows, 10)
	if !strings.Contains(buf.String(), "11") {
		t.Errorf("rank offset not applied:\n%s", buf.String())
	}
}

func TestPrintMatchListNewestFirst(t *testing.T) {
	raw := storage.RawStore{
		"999-old.png":  {{Place: 1, Nickname: "A"}},
		"1000-new.png": {{Place: 1, Nickname: "B"}, {Place: 2, Nickname: "C"}},
	}

	var buf bytes.Buffer
	PrintMatchList(&buf, raw)
	out := buf.String()

	newest := strings.Index(out, "1000-new.png")
	oldest := strings.Index(out, "999-old.png")
	if newest < 0 || oldest < 0 {
		t.Fatalf("ids missing from output:\n%s", out)
	}
	if newest > oldest {
		t.Errorf("newest match should print first:\n%s", out)
	}
	if !strings.Contains(out, "2 match(es) stored.") {
		t.Errorf("missing count line:\n%s", out)
	}
}

func TestPrintMatchBoardShowsAllRows(t *testing.T) {
	records := []model.MatchRecord{
		{Place: 1, Nickname: "Vortex", Kills: 14, Deaths: 3, Assists: 5, Treasury: 120, Score: 2450},
		{Place: 2, Nickname: "Shadow", Kills: 9, Deaths: 6, Assists: 2, Treasury: 80, Score: 1700},
	}

	var buf bytes.Buffer
	PrintMatchBoard(&buf, "1000-a.png", records)
	out := buf.String()

	for _, want := range []string{"1000-a.png", "Rows: 2", "TREASURY", "Vortex", "Shadow", "120"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestPrintPlayerHistoryShowsEveryLine(t *testing.T) {
	cluster := &identity.Cluster{
		Nickname: "Vortex",
		Lines: []model.StatLine{
			{Place: 1, Kills: 14, Deaths: 3, Assists: 5, Treasury: 120, Score: 2450},
			{Place: 3, Kills: 9, Deaths: 6, Assists: 2, Treasury: 80, Score: 1700},
		},
	}
	avg := model.PlayerAverages{GamesPlayed: 2, AvgPlace: 2, KD: 2.56, AvgKills: 11.5, AvgDeaths: 4.5, AvgAssists: 3.5, AvgScore: 2075}

	var buf bytes.Buffer
	PrintPlayerHistory(&buf, cluster, avg)
	out := buf.String()

	for _, want := range []string{"Vortex", "Games: 2", "2450", "1700", "2.56"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}
