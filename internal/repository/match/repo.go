package match

import (
	"context"
	"fmt"
	"strconv"

	"github.com/kailas-cloud/recordex/internal/db"
	"github.com/kailas-cloud/recordex/internal/domain"
	dommatch "github.com/kailas-cloud/recordex/internal/domain/match"
)

// Hash field names as indexed by the record and tagging FT indexes.
const (
	fieldID         = "id"
	fieldTotalValue = "total_value"
	fieldActive     = "active"
	fieldPrice      = "price"
	fieldRecordID   = "record_id"
	fieldCategory   = "category"
	fieldProduct    = "product"

	activeTrue = "1"
)

// store is the consumer interface for match queries (ISP).
type store interface {
	SearchList(ctx context.Context, q *db.ListQuery) (*db.SearchResult, error)
}

// Repo implements usecase/match.Repository over the record and tagging indexes.
type Repo struct {
	store         store
	maxCandidates int
}

// New creates a match repository. maxCandidates caps the fetch size of
// unpaginated candidate queries.
func New(s store, maxCandidates int) *Repo {
	if maxCandidates <= 0 {
		maxCandidates = 10000
	}
	return &Repo{store: s, maxCandidates: maxCandidates}
}

// fetchAll runs an unpaginated candidate query capped at maxCandidates.
// A total beyond the cap means the result would be silently incomplete,
// so it is rejected instead of truncated.
func (r *Repo) fetchAll(ctx context.Context, q *db.ListQuery) (*db.SearchResult, error) {
	q.Limit = r.maxCandidates
	sr, err := r.store.SearchList(ctx, q)
	if err != nil {
		return nil, err
	}
	if sr.Total > r.maxCandidates {
		return nil, fmt.Errorf(
			"candidate set for index %s holds %d rows, exceeding the cap of %d",
			q.Index, sr.Total, r.maxCandidates,
		)
	}
	return sr, nil
}

// RangeFetch returns all active records whose price falls inside the band,
// as raw (id, total_value) rows. Duplicate ids may appear and are resolved
// by the candidate set.
func (r *Repo) RangeFetch(ctx context.Context, band dommatch.Band) ([]dommatch.Row, error) {
	query := db.And(
		db.NumericRange(fieldPrice, band.Lo(), band.Hi()),
		db.TagFilter(fieldActive, activeTrue),
	)

	sr, err := r.fetchAll(ctx, &db.ListQuery{
		Index:        recordIndex(),
		Query:        query,
		ReturnFields: []string{fieldID, fieldTotalValue},
	})
	if err != nil {
		return nil, fmt.Errorf("range fetch: %w", err)
	}

	rows := make([]dommatch.Row, 0, len(sr.Entries))
	for _, entry := range sr.Entries {
		id, err := strconv.ParseUint(entry.Fields[fieldID], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("parse id %q: %w", entry.Fields[fieldID], err)
		}
		value, err := strconv.ParseFloat(entry.Fields[fieldTotalValue], 64)
		if err != nil {
			return nil, fmt.Errorf("parse total_value %q: %w", entry.Fields[fieldTotalValue], err)
		}
		rows = append(rows, dommatch.Row{RecordID: id, Value: value})
	}
	return rows, nil
}

// ProductIDs returns the set of record ids tagged with the given product.
func (r *Repo) ProductIDs(ctx context.Context, product string) (map[uint64]struct{}, error) {
	sr, err := r.fetchAll(ctx, &db.ListQuery{
		Index:        taggingIndex(),
		Query:        db.TagFilter(fieldProduct, product),
		ReturnFields: []string{fieldRecordID},
	})
	if err != nil {
		return nil, fmt.Errorf("product ids %s: %w", product, err)
	}

	ids := make(map[uint64]struct{}, len(sr.Entries))
	for _, entry := range sr.Entries {
		id, err := strconv.ParseUint(entry.Fields[fieldRecordID], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("parse record_id %q: %w", entry.Fields[fieldRecordID], err)
		}
		ids[id] = struct{}{}
	}
	return ids, nil
}

// CategoryPairs returns all (record id, category) pairs whose category is
// one of the requested values.
func (r *Repo) CategoryPairs(ctx context.Context, categories []string) ([]dommatch.Pair, error) {
	sr, err := r.fetchAll(ctx, &db.ListQuery{
		Index:        taggingIndex(),
		Query:        db.TagUnionFilter(fieldCategory, categories),
		ReturnFields: []string{fieldRecordID, fieldCategory},
	})
	if err != nil {
		return nil, fmt.Errorf("category pairs: %w", err)
	}

	pairs := make([]dommatch.Pair, 0, len(sr.Entries))
	for _, entry := range sr.Entries {
		id, err := strconv.ParseUint(entry.Fields[fieldRecordID], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("parse record_id %q: %w", entry.Fields[fieldRecordID], err)
		}
		pairs = append(pairs, dommatch.Pair{RecordID: id, Category: entry.Fields[fieldCategory]})
	}
	return pairs, nil
}

func recordIndex() string {
	return domain.KeyPrefix + "record:idx"
}

func taggingIndex() string {
	return domain.KeyPrefix + "tagging:idx"
}
