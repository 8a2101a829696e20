package match

// Row is a single raw (record id, value) pair fetched from the store.
// The same id may appear on multiple rows with differing values.
type Row struct {
	RecordID uint64
	Value    float64
}

// Set is a request-scoped candidate set: record id -> numeric value.
// Built fresh per request and discarded with it.
type Set struct {
	values map[uint64]float64
}

// NewSet collapses raw rows into one entry per record id, keeping the
// maximum observed value. The result does not depend on row order.
func NewSet(rows []Row) *Set {
	values := make(map[uint64]float64, len(rows))
	for _, r := range rows {
		if v, ok := values[r.RecordID]; !ok || r.Value > v {
			values[r.RecordID] = r.Value
		}
	}
	return &Set{values: values}
}

// Len returns the number of surviving record ids.
func (s *Set) Len() int { return len(s.values) }

// IsEmpty reports whether the set holds no candidates.
func (s *Set) IsEmpty() bool { return len(s.values) == 0 }

// Value returns the value recorded for id.
func (s *Set) Value(id uint64) (float64, bool) {
	v, ok := s.values[id]
	return v, ok
}

// Intersect keeps only the ids present in keep, preserving their recorded
// values. The result is always a subset of the receiver.
func (s *Set) Intersect(keep map[uint64]struct{}) {
	for id := range s.values {
		if _, ok := keep[id]; !ok {
			delete(s.values, id)
		}
	}
}

// Entries returns the surviving (id, value) pairs in unspecified order.
func (s *Set) Entries() []Row {
	out := make([]Row, 0, len(s.values))
	for id, v := range s.values {
		out = append(out, Row{RecordID: id, Value: v})
	}
	return out
}
