package core

import "time"

// Summary describes one completed run after its reports were written.
type Summary struct {
	RunID            string
	Directory        string
	CommodityEnabled bool
	RecordCount      int
	CompletedAt      time.Time
	Branches         []Entity
	Commodities      []Entity
}

// Tables returns the summary's entity lists keyed by kind, skipping the
// commodity list when that dimension was not enabled.
func (s Summary) Tables() map[EntityKind][]Entity {
	out := map[EntityKind][]Entity{Branch: s.Branches}
	if s.CommodityEnabled {
		out[Commodity] = s.Commodities
	}
	return out
}
