package storage

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func tempPath(t *testing.T, name string) string {
	t.Helper()
	return filepath.Join(t.TempDir(), name)
}

func sampleStore() RawStore {
	return RawStore{
		"1000-a.png": {
			{Place: 1, Nickname: "Vortex", Kills: 14, Deaths: 3, Assists: 5, Treasury: 120, Score: 2450},
			{Place: 2, Nickname: "Shadow", Kills: 9, Deaths: 6, Assists: 2, Treasury: 80, Score: 1700},
		},
		"999-b.png": {
			{Place: 1, Nickname: "V0rtex", Kills: 10, Deaths: 1, Assists: 4, Treasury: 60, Score: 2100},
		},
	}
}

func TestLoadRawMissingFileIsColdStart(t *testing.T) {
	store, err := LoadRaw(tempPath(t, RawStatsFile))
	if err != nil {
		t.Fatalf("missing file should not error, got %v", err)
	}
	if len(store) != 0 {
		t.Fatalf("expected empty store, got %d entries", len(store))
	}
}

func TestLoadRawCorruptFileSignalsAndRecovers(t *testing.T) {
	path := tempPath(t, RawStatsFile)
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	store, err := LoadRaw(path)
	if !errors.Is(err, ErrCorrupt) {
		t.Fatalf("expected ErrCorrupt, got %v", err)
	}
	if len(store) != 0 {
		t.Fatalf("corrupt file must yield an empty store, got %d entries", len(store))
	}
}

func TestRawStoreRoundTrip(t *testing.T) {
	path := tempPath(t, RawStatsFile)
	want := sampleStore()

	if err := SaveRaw(path, want); err != nil {
		t.Fatalf("SaveRaw: %v", err)
	}
	got, err := LoadRaw(path)
	if err != nil {
		t.Fatalf("LoadRaw: %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("round trip mismatch:\ngot  %+v\nwant %+v", got, want)
	}
}

func TestAveragesRoundTrip(t *testing.T) {
	path := tempPath(t, PlayerAveragesFile)
	want := Averages{
		"Vortex": {GamesPlayed: 2, AvgPlace: 1, KD: 6, AvgKills: 12, AvgDeaths: 2, AvgAssists: 4.5, AvgScore: 2275},
	}

	if err := SaveAverages(path, want); err != nil {
		t.Fatalf("SaveAverages: %v", err)
	}
	got, err := LoadAverages(path)
	if err != nil {
		t.Fatalf("LoadAverages: %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("round trip mismatch:\ngot  %+v\nwant %+v", got, want)
	}
}

func TestSaveReplacesWholeFile(t *testing.T) {
	path := tempPath(t, PlayerAveragesFile)

	if err := SaveAverages(path, Averages{"Old": {GamesPlayed: 9}}); err != nil {
		t.Fatal(err)
	}
	if err := SaveAverages(path, Averages{"New": {GamesPlayed: 1}}); err != nil {
		t.Fatal(err)
	}

	got, err := LoadAverages(path)
	if err != nil {
		t.Fatal(err)
	}
	if _, stale := got["Old"]; stale {
		t.Error("previous contents survived a save")
	}
	if len(got) != 1 {
		t.Errorf("expected 1 entry, got %d", len(got))
	}
}

func TestInitCreatesMissingFilesOnly(t *testing.T) {
	dir := t.TempDir()
	raw := filepath.Join(dir, RawStatsFile)
	avg := filepath.Join(dir, PlayerAveragesFile)

	if err := SaveRaw(raw, sampleStore()); err != nil {
		t.Fatal(err)
	}
	if err := Init(raw, avg); err != nil {
		t.Fatalf("Init: %v", err)
	}

	store, err := LoadRaw(raw)
	if err != nil {
		t.Fatal(err)
	}
	if len(store) != 2 {
		t.Errorf("Init overwrote an existing store, %d entries left", len(store))
	}

	avgs, err := LoadAverages(avg)
	if err != nil {
		t.Fatalf("Init should have created a parsable empty file: %v", err)
	}
	if len(avgs) != 0 {
		t.Errorf("fresh averages file should be empty, got %d entries", len(avgs))
	}
}

// Recency ordering is numeric on the message-id prefix. A lexical sort
// would put "999-b.png" after "1000-a.png".
func TestSortedIDsNumericNotLexical(t *testing.T) {
	ids := sampleStore().SortedIDs()
	want := []string{"999-b.png", "1000-a.png"}
	if !reflect.DeepEqual(ids, want) {
		t.Fatalf("ids = %v, want %v", ids, want)
	}
}

func TestSortedIDsUnparsableSortsOldest(t *testing.T) {
	store := RawStore{
		"1000-a.png":   nil,
		"imported.png": nil,
		"999-b.png":    nil,
	}
	ids := store.SortedIDs()
	want := []string{"imported.png", "999-b.png", "1000-a.png"}
	if !reflect.DeepEqual(ids, want) {
		t.Fatalf("ids = %v, want %v", ids, want)
	}
}

func TestAllRecordsGroupedOldestFirst(t *testing.T) {
	all := sampleStore().AllRecords()
	if len(all) != 3 {
		t.Fatalf("got %d records, want 3", len(all))
	}
	wantNicks := []string{"V0rtex", "Vortex", "Shadow"}
	for i, rec := range all {
		if rec.Nickname != wantNicks[i] {
			t.Fatalf("record %d = %q, want %q (order %v)", i, rec.Nickname, wantNicks[i], all)
		}
	}
}

func TestStoredJSONShape(t *testing.T) {
	path := tempPath(t, RawStatsFile)
	if err := SaveRaw(path, RawStore{
		"1000-a.png": {{Place: 1, Nickname: "Vortex", Kills: 14, Deaths: 3, Assists: 5, Treasury: 120, Score: 2450}},
	}); err != nil {
		t.Fatal(err)
	}

	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	for _, key := range []string{`"place"`, `"nickname"`, `"kills"`, `"deaths"`, `"assists"`, `"treasury"`, `"score"`} {
		if !bytes.Contains(b, []byte(key)) {
			t.Errorf("stored JSON missing %s key:\n%s", key, b)
		}
	}
}
