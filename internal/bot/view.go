package bot

import (
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/Redex2xp/stalcraft-tab-kv-stat/internal/report"
)

const (
	// pageSize is how many players one leaderboard page shows.
	pageSize = 10
	// viewTTL is how long a posted leaderboard keeps responding to its
	// buttons; after that the message stays as rendered.
	viewTTL = 180 * time.Second
	// fieldLimit is the Discord embed field value cap.
	fieldLimit = 1024
)

// Custom ids for the leaderboard buttons.
const (
	buttonSortKD    = "tab_sort_kd"
	buttonSortPlace = "tab_sort_place"
	buttonPrev      = "tab_prev"
	buttonNext      = "tab_next"
)

type sortMode int

const (
	sortKD sortMode = iota
	sortPlace
)

// tableView is the mutable state behind one leaderboard message: the full
// row set, the current sort mode and page. Access is serialised by the
// owning Bot.
type tableView struct {
	rows     []report.Row
	page     int
	mode     sortMode
	minGames int
	created  time.Time
}

func newTableView(rows []report.Row, minGames int) *tableView {
	v := &tableView{rows: rows, mode: sortKD, minGames: minGames, created: time.Now()}
	v.sort()
	return v
}

func (v *tableView) sort() {
	switch v.mode {
	case sortPlace:
		report.SortByPlace(v.rows)
	default:
		report.SortByKD(v.rows)
	}
}

func (v *tableView) totalPages() int {
	return (len(v.rows) + pageSize - 1) / pageSize
}

func (v *tableView) expired() bool {
	return time.Since(v.created) > viewTTL
}

// apply mutates the view for one button press and reports whether the
// message needs re-rendering; pressing a disabled edge is a no-op.
func (v *tableView) apply(customID string) bool {
	switch customID {
	case buttonSortKD:
		if v.mode == sortKD {
			return false
		}
		v.mode = sortKD
	case buttonSortPlace:
		if v.mode == sortPlace {
			return false
		}
		v.mode = sortPlace
	case buttonPrev:
		if v.page == 0 {
			return false
		}
		v.page--
		return true
	case buttonNext:
		if v.page >= v.totalPages()-1 {
			return false
		}
		v.page++
		return true
	default:
		return false
	}
	v.sort()
	v.page = 0
	return true
}

// embed renders the current page. Player lines are packed into embed fields
// of at most fieldLimit characters under zero-width-space names, so the
// page reads as one continuous block without visible field headers.
func (v *tableView) embed() *discordgo.MessageEmbed {
	const invisible = "\u200b"

	desc := "Rating sorted by **K/D**."
	if v.mode == sortPlace {
		desc = "Rating sorted by **average place** (lower is better)."
	}
	embed := &discordgo.MessageEmbed{
		Title:       "🏆 Player statistics",
		Description: desc,
		Color:       0x3498db,
		Footer: &discordgo.MessageEmbedFooter{
			Text: fmt.Sprintf("Page %d / %d (min. games: %d)", v.page+1, v.totalPages(), v.minGames),
		},
	}

	start := min(v.page*pageSize, len(v.rows))
	end := min(start+pageSize, len(v.rows))

	var field strings.Builder
	flush := func() {
		if field.Len() == 0 {
			return
		}
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  invisible,
			Value: field.String(),
		})
		field.Reset()
	}

	for i, r := range v.rows[start:end] {
		line := fmt.Sprintf(
			"**%d. %s**\n> K/D: `%.2f` | Avg place: `%d` | Games: `%d`\n> Avg kills: `%.0f` | Avg deaths: `%.0f`\n",
			start+i+1, r.Nickname, r.KD, r.AvgPlace, r.GamesPlayed, r.AvgKills, r.AvgDeaths,
		)
		if field.Len()+len(line) > fieldLimit {
			flush()
		}
		field.WriteString(line)
	}
	flush()

	return embed
}

// components renders the two button rows, disabling whichever buttons are
// no-ops in the current state.
func (v *tableView) components() []discordgo.MessageComponent {
	return []discordgo.MessageComponent{
		discordgo.ActionsRow{Components: []discordgo.MessageComponent{
			discordgo.Button{
				Label:    "Sort by K/D",
				Style:    discordgo.SuccessButton,
				CustomID: buttonSortKD,
				Disabled: v.mode == sortKD,
			},
			discordgo.Button{
				Label:    "Sort by place",
				Style:    discordgo.SuccessButton,
				CustomID: buttonSortPlace,
				Disabled: v.mode == sortPlace,
			},
		}},
		discordgo.ActionsRow{Components: []discordgo.MessageComponent{
			discordgo.Button{
				Label:    "◀ Back",
				Style:    discordgo.SecondaryButton,
				CustomID: buttonPrev,
				Disabled: v.page == 0,
			},
			discordgo.Button{
				Label:    "Next ▶",
				Style:    discordgo.PrimaryButton,
				CustomID: buttonNext,
				Disabled: v.page >= v.totalPages()-1,
			},
		}},
	}
}
