package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/Redex2xp/stalcraft-tab-kv-stat/internal/model"
)

// Store file names, relative to the data directory.
const (
	RawStatsFile       = "raw_stats.json"
	PlayerAveragesFile = "player_averages.json"
)

// ErrCorrupt reports that a store file existed but could not be read or
// parsed. Callers proceed on the empty store they were handed; the error is
// the operator's signal that data was lost rather than never written.
var ErrCorrupt = errors.New("store file corrupt")

// RawStore maps a match id ("{messageID}-{filename}") to the scoreboard
// records extracted from that match. Keys are never overwritten by
// ingestion: a known id is skipped before OCR runs.
type RawStore map[string][]model.MatchRecord

// Averages maps a canonical nickname to its derived statistics. The map is
// recomputed from scratch and replaced wholesale on every update run.
type Averages map[string]model.PlayerAverages

// LoadRaw reads the raw-matches store. A missing file is a cold start and
// yields an empty store with no error; an unreadable or unparsable file
// yields an empty store plus an error matching ErrCorrupt.
func LoadRaw(path string) (RawStore, error) {
	store := make(RawStore)
	if err := loadJSON(path, &store); err != nil {
		return make(RawStore), err
	}
	return store, nil
}

// LoadAverages reads the derived-statistics store with the same missing and
// corrupt semantics as LoadRaw.
func LoadAverages(path string) (Averages, error) {
	avgs := make(Averages)
	if err := loadJSON(path, &avgs); err != nil {
		return make(Averages), err
	}
	return avgs, nil
}

// SaveRaw replaces the raw-matches store on disk.
func SaveRaw(path string, store RawStore) error {
	return saveJSON(path, store)
}

// SaveAverages replaces the derived-statistics store on disk.
func SaveAverages(path string, avgs Averages) error {
	return saveJSON(path, avgs)
}

// Init creates any store file that does not exist yet as an empty object,
// so a cold start reads back valid JSON. Existing files are left alone.
func Init(paths ...string) error {
	for _, p := range paths {
		if _, err := os.Stat(p); !errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err := saveJSON(p, map[string]any{}); err != nil {
			return fmt.Errorf("init %s: %w", filepath.Base(p), err)
		}
	}
	return nil
}

// SortedIDs returns every match id ordered oldest first by recency key (the
// numeric message-id prefix), with lexical order as the tie-break. Message
// ids grow monotonically, so this reconstructs the order matches entered
// the store; ids with no parsable prefix sort oldest.
func (s RawStore) SortedIDs() []string {
	ids := make([]string, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return lessRecent(ids[i], ids[j]) })
	return ids
}

// AllRecords flattens every stored record, grouped by match, matches
// oldest first per SortedIDs. The order is load-bearing: identity
// clustering is first-fit and therefore order-sensitive.
func (s RawStore) AllRecords() []model.MatchRecord {
	var all []model.MatchRecord
	for _, id := range s.SortedIDs() {
		all = append(all, s[id]...)
	}
	return all
}

// lessRecent orders match ids oldest to newest.
func lessRecent(a, b string) bool {
	ka, oka := model.RecencyKey(a)
	kb, okb := model.RecencyKey(b)
	switch {
	case oka && okb && ka != kb:
		return ka < kb
	case oka != okb:
		return !oka
	default:
		return a < b
	}
}

func loadJSON(path string, out any) error {
	b, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read %s: %w: %v", filepath.Base(path), ErrCorrupt, err)
	}
	if err := json.Unmarshal(b, out); err != nil {
		return fmt.Errorf("parse %s: %w: %v", filepath.Base(path), ErrCorrupt, err)
	}
	return nil
}

// saveJSON replaces the whole file atomically: marshal, write a temp file
// in the target directory, rename over the target. A crash mid-write leaves
// the previous contents intact.
func saveJSON(path string, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal %s: %w", filepath.Base(path), err)
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	if _, err := tmp.Write(b); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("replace %s: %w", filepath.Base(path), err)
	}
	return nil
}
