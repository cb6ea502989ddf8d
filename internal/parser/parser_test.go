package parser

import (
	"reflect"
	"testing"

	"github.com/Redex2xp/stalcraft-tab-kv-stat/internal/model"
)

func TestParseRecoversAllColumns(t *testing.T) {
	text := "1 Vortex 14 3 5 120 2450\n" +
		"2 Старый_Волк 9 6 2 80 1700"

	records := Parse(text)
	want := []model.MatchRecord{
		{Place: 1, Nickname: "Vortex", Kills: 14, Deaths: 3, Assists: 5, Treasury: 120, Score: 2450},
		{Place: 2, Nickname: "Старый_Волк", Kills: 9, Deaths: 6, Assists: 2, Treasury: 80, Score: 1700},
	}
	if !reflect.DeepEqual(records, want) {
		t.Fatalf("records = %+v, want %+v", records, want)
	}
}

// Nicknames may contain spaces, dots, hyphens and digits; the trailing five
// integers still have to split off correctly.
func TestParseNicknameCharacterSet(t *testing.T) {
	records := Parse("3 Mr. X-42 the 2nd 7 1 0 10 900")
	if len(records) != 1 {
		t.Fatalf("got %d records, want 1", len(records))
	}
	r := records[0]
	if r.Nickname != "Mr. X-42 the 2nd" {
		t.Errorf("nickname = %q", r.Nickname)
	}
	if r.Kills != 7 || r.Deaths != 1 || r.Assists != 0 || r.Treasury != 10 || r.Score != 900 {
		t.Errorf("stats = %+v", r)
	}
}

func TestParseDropsMalformedLines(t *testing.T) {
	text := "Place Name Kills Deaths Assists Treasury Score\n" +
		"```\n" +
		"1 Vortex 14 3 5 120 2450\n" +
		"\n" +
		"not a row at all\n" +
		"2 Shadow 9 6\n" +
		"```"

	records := Parse(text)
	if len(records) != 1 {
		t.Fatalf("got %d records, want 1: %+v", len(records), records)
	}
	if records[0].Nickname != "Vortex" {
		t.Fatalf("surviving row = %+v", records[0])
	}
}

func TestParseToleratesIndentationAndTrailingText(t *testing.T) {
	records := Parse("   5 Призрак 3 8 1 0 410   \r")
	if len(records) != 1 {
		t.Fatalf("got %d records, want 1", len(records))
	}
	if records[0].Place != 5 || records[0].Nickname != "Призрак" {
		t.Fatalf("row = %+v", records[0])
	}
}

func TestParseEmptyTranscript(t *testing.T) {
	if records := Parse(""); len(records) != 0 {
		t.Fatalf("got %d records, want 0", len(records))
	}
}
