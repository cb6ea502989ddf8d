package identity

import (
	"github.com/agnivade/levenshtein"

	"github.com/Redex2xp/stalcraft-tab-kv-stat/internal/model"
	"github.com/Redex2xp/stalcraft-tab-kv-stat/internal/storage"
)

// MaxDistance is the Levenshtein tolerance for treating two observed
// nicknames as the same player. Three edits absorbs the usual OCR damage
// (dropped characters, 0/O and л/п confusions) on short and medium names.
const MaxDistance = 3

// Cluster is one canonical identity: the exemplar nickname and every stat
// line attributed to it. The exemplar is whichever spelling arrived first
// in the input, so it can drift when the input order changes.
type Cluster struct {
	Nickname string
	Lines    []model.StatLine
}

// Clusters groups records into canonical identities by greedy first-fit
// matching: each record joins the first existing cluster whose exemplar is
// within MaxDistance, scanned in cluster creation order, or founds a new
// cluster. First-fit, not nearest-fit: a record two edits from an early
// exemplar and one edit from a later one still joins the early cluster.
func Clusters(records []model.MatchRecord) []Cluster {
	var clusters []Cluster
	for _, rec := range records {
		matched := false
		for i := range clusters {
			if levenshtein.ComputeDistance(rec.Nickname, clusters[i].Nickname) <= MaxDistance {
				clusters[i].Lines = append(clusters[i].Lines, rec.Line())
				matched = true
				break
			}
		}
		if !matched {
			clusters = append(clusters, Cluster{
				Nickname: rec.Nickname,
				Lines:    []model.StatLine{rec.Line()},
			})
		}
	}
	return clusters
}

// Find returns the first cluster whose exemplar is within tolerance of the
// given nickname, or nil.
func Find(clusters []Cluster, nickname string) *Cluster {
	for i := range clusters {
		if levenshtein.ComputeDistance(nickname, clusters[i].Nickname) <= MaxDistance {
			return &clusters[i]
		}
	}
	return nil
}

// Active returns the set of raw nicknames observed in the window most
// recent matches. Recency comes from the numeric message-id prefix of each
// match id, never from lexical comparison; ids without a parsable prefix
// count as oldest.
func Active(raw storage.RawStore, window int) map[string]struct{} {
	ids := raw.SortedIDs()
	if len(ids) > window {
		ids = ids[len(ids)-window:]
	}
	active := make(map[string]struct{})
	for _, id := range ids {
		for _, rec := range raw[id] {
			active[rec.Nickname] = struct{}{}
		}
	}
	return active
}

// IsActive reports whether the cluster's exemplar is within tolerance of
// any recently observed nickname. Tolerant matching is required here too:
// the recent sighting may be a misspelling of the exemplar.
func (c *Cluster) IsActive(active map[string]struct{}) bool {
	for nick := range active {
		if levenshtein.ComputeDistance(c.Nickname, nick) <= MaxDistance {
			return true
		}
	}
	return false
}
