package match

// Pair is a single raw (record id, category) pair fetched from the store.
type Pair struct {
	RecordID uint64
	Category string
}

// IntersectCategories keeps the ids whose observed category set covers every
// requested category. Pairs outside the requested set are ignored, duplicate
// pairs collapse. Result order is unspecified; rank via RankIDs.
func IntersectCategories(pairs []Pair, categories []string) []uint64 {
	wanted := make(map[string]struct{}, len(categories))
	for _, c := range categories {
		wanted[c] = struct{}{}
	}

	observed := make(map[uint64]map[string]struct{})
	for _, p := range pairs {
		if _, ok := wanted[p.Category]; !ok {
			continue
		}
		set, ok := observed[p.RecordID]
		if !ok {
			set = make(map[string]struct{}, len(wanted))
			observed[p.RecordID] = set
		}
		set[p.Category] = struct{}{}
	}

	out := make([]uint64, 0, len(observed))
	for id, set := range observed {
		if len(set) == len(wanted) {
			out = append(out, id)
		}
	}
	return out
}
