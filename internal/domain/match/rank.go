package match

import "sort"

// Entry is one ranked match result.
type Entry struct {
	Rank     int
	RecordID uint64
	Value    float64
}

// Rank orders a candidate set by value descending and assigns dense 1-based
// ranks. Equal values order by record id ascending so output is stable
// across runs.
func Rank(s *Set) []Entry {
	rows := s.Entries()
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Value != rows[j].Value {
			return rows[i].Value > rows[j].Value
		}
		return rows[i].RecordID < rows[j].RecordID
	})

	out := make([]Entry, len(rows))
	for i, r := range rows {
		out[i] = Entry{Rank: i + 1, RecordID: r.RecordID, Value: r.Value}
	}
	return out
}

// RankIDs assigns dense 1-based ranks to ids in ascending order.
// Used where no numeric value is attached to the result.
func RankIDs(ids []uint64) []Entry {
	sorted := make([]uint64, len(ids))
	copy(sorted, ids)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	out := make([]Entry, len(sorted))
	for i, id := range sorted {
		out[i] = Entry{Rank: i + 1, RecordID: id}
	}
	return out
}
