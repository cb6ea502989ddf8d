package bot

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/Redex2xp/stalcraft-tab-kv-stat/internal/model"
	"github.com/Redex2xp/stalcraft-tab-kv-stat/internal/report"
)

func viewRow(nick string, kd float64, place, games int) report.Row {
	return report.Row{
		Nickname: nick,
		PlayerAverages: model.PlayerAverages{
			GamesPlayed: games,
			AvgPlace:    place,
			KD:          kd,
			AvgKills:    kd * 10,
			AvgDeaths:   10,
		},
	}
}

func manyRows(n int) []report.Row {
	rows := make([]report.Row, 0, n)
	for i := 0; i < n; i++ {
		rows = append(rows, viewRow(fmt.Sprintf("player%02d", i), float64(n-i), i+1, 5))
	}
	return rows
}

func embedText(v *tableView) string {
	var sb strings.Builder
	for _, f := range v.embed().Fields {
		sb.WriteString(f.Value)
	}
	return sb.String()
}

// The view opens sorted by K/D descending on the first page.
func TestViewDefaultsToKDSort(t *testing.T) {
	v := newTableView([]report.Row{
		viewRow("middling", 2, 3, 5),
		viewRow("ace", 9, 1, 5),
		viewRow("feeder", 0.5, 7, 5),
	}, 1)

	text := embedText(v)
	if !strings.HasPrefix(text, "**1. ace**") {
		t.Fatalf("expected ace ranked first, got:\n%s", text)
	}
	if !strings.Contains(v.embed().Description, "K/D") {
		t.Errorf("description = %q, want K/D mention", v.embed().Description)
	}
}

func TestViewPaginationClamps(t *testing.T) {
	v := newTableView(manyRows(25), 1)

	if got := v.totalPages(); got != 3 {
		t.Fatalf("totalPages() = %d, want 3", got)
	}
	if !v.apply(buttonNext) || !v.apply(buttonNext) {
		t.Fatal("advancing through valid pages should report a change")
	}
	if v.page != 2 {
		t.Fatalf("page = %d after two presses, want 2", v.page)
	}
	if v.apply(buttonNext) {
		t.Error("next on the last page should be a no-op")
	}
	if !v.apply(buttonPrev) {
		t.Error("back from page 2 should report a change")
	}
	v.page = 0
	if v.apply(buttonPrev) {
		t.Error("back on the first page should be a no-op")
	}
}

// The last page holds only the remainder rows and ranks continue across
// page boundaries.
func TestViewLastPagePartial(t *testing.T) {
	v := newTableView(manyRows(25), 1)
	v.page = 2

	text := embedText(v)
	if !strings.Contains(text, "**21. ") {
		t.Errorf("last page should start at rank 21, got:\n%s", text)
	}
	if !strings.Contains(text, "**25. ") {
		t.Errorf("last page should end at rank 25, got:\n%s", text)
	}
	if strings.Contains(text, "**26. ") {
		t.Errorf("rank past the row count rendered:\n%s", text)
	}
}

func TestViewSortSwitchResetsPage(t *testing.T) {
	v := newTableView(manyRows(25), 1)
	v.apply(buttonNext)

	if !v.apply(buttonSortPlace) {
		t.Fatal("switching sort mode should report a change")
	}
	if v.page != 0 {
		t.Errorf("page = %d after sort switch, want 0", v.page)
	}
	if v.mode != sortPlace {
		t.Errorf("mode = %v, want sortPlace", v.mode)
	}
	if v.apply(buttonSortPlace) {
		t.Error("re-pressing the active sort should be a no-op")
	}
	// player00 has the best (lowest) average place.
	if text := embedText(v); !strings.HasPrefix(text, "**1. player00**") {
		t.Errorf("place sort should rank player00 first, got:\n%s", text)
	}
}

func TestViewUnknownButtonIgnored(t *testing.T) {
	v := newTableView(manyRows(3), 1)
	if v.apply("tab_everything") {
		t.Error("unknown custom id should not change the view")
	}
}

// Long nicknames force the page across several embed fields; every field
// must stay under the Discord limit and no row may be lost.
func TestViewEmbedSplitsOversizedPage(t *testing.T) {
	rows := make([]report.Row, 0, pageSize)
	for i := 0; i < pageSize; i++ {
		nick := fmt.Sprintf("%02d_%s", i, strings.Repeat("long", 40))
		rows = append(rows, viewRow(nick, float64(pageSize-i), i+1, 3))
	}
	v := newTableView(rows, 1)

	embed := v.embed()
	if len(embed.Fields) < 2 {
		t.Fatalf("expected the page to split into multiple fields, got %d", len(embed.Fields))
	}
	for i, f := range embed.Fields {
		if len(f.Value) > fieldLimit {
			t.Errorf("field %d is %d chars, over the %d limit", i, len(f.Value), fieldLimit)
		}
		if f.Name != "​" {
			t.Errorf("field %d name = %q, want zero-width space", i, f.Name)
		}
	}
	text := embedText(v)
	for _, r := range rows {
		if !strings.Contains(text, r.Nickname) {
			t.Errorf("row %q lost during field splitting", r.Nickname)
		}
	}
}

func TestViewFooterShowsPageAndFilter(t *testing.T) {
	v := newTableView(manyRows(25), 4)
	v.apply(buttonNext)

	got := v.embed().Footer.Text
	want := "Page 2 / 3 (min. games: 4)"
	if got != want {
		t.Errorf("footer = %q, want %q", got, want)
	}
}

func TestViewComponentsDisableEdges(t *testing.T) {
	v := newTableView(manyRows(25), 1)

	buttons := func() map[string]bool {
		disabled := map[string]bool{}
		for _, row := range v.components() {
			for _, c := range row.(discordgo.ActionsRow).Components {
				btn := c.(discordgo.Button)
				disabled[btn.CustomID] = btn.Disabled
			}
		}
		return disabled
	}

	d := buttons()
	if !d[buttonSortKD] {
		t.Error("active sort button should be disabled")
	}
	if d[buttonSortPlace] {
		t.Error("inactive sort button should be enabled")
	}
	if !d[buttonPrev] {
		t.Error("back should be disabled on the first page")
	}
	if d[buttonNext] {
		t.Error("next should be enabled when pages remain")
	}

	v.page = v.totalPages() - 1
	if d = buttons(); !d[buttonNext] {
		t.Error("next should be disabled on the last page")
	}
}

func TestViewExpires(t *testing.T) {
	v := newTableView(manyRows(3), 1)
	if v.expired() {
		t.Fatal("fresh view reported expired")
	}
	v.created = time.Now().Add(-viewTTL - time.Second)
	if !v.expired() {
		t.Fatal("stale view reported live")
	}
}
