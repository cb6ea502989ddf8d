package parser

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/Redex2xp/stalcraft-tab-kv-stat/internal/model"
)

// rowPattern matches one scoreboard row: place, nickname, then the five
// stat columns (kills, deaths, assists, treasury, score). The nickname
// class uses Unicode letter and number categories because nicknames are
// frequently Cyrillic; it is non-greedy so the trailing integers anchor
// the column split.
var rowPattern = regexp.MustCompile(`^(\d+)\s+([\p{L}\p{N}_\s.\-]+?)\s+(\d+)\s+(\d+)\s+(\d+)\s+(\d+)\s+(\d+)`)

// Parse extracts match records from an OCR transcript, one candidate row
// per line. Lines that do not match the fixed column shape are dropped
// silently, so headers, markdown fences and half-recognised rows cannot
// poison the store. Parse never fails: a fully garbled transcript yields
// zero records.
func Parse(text string) []model.MatchRecord {
	var records []model.MatchRecord
	for _, line := range strings.Split(text, "\n") {
		m := rowPattern.FindStringSubmatch(strings.TrimSpace(line))
		if m == nil {
			continue
		}
		records = append(records, model.MatchRecord{
			Place:    atoi(m[1]),
			Nickname: strings.TrimSpace(m[2]),
			Kills:    atoi(m[3]),
			Deaths:   atoi(m[4]),
			Assists:  atoi(m[5]),
			Treasury: atoi(m[6]),
			Score:    atoi(m[7]),
		})
	}
	return records
}

// atoi converts a digits-only submatch; the pattern guarantees it parses.
func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
