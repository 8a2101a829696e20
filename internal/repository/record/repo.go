package record

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/kailas-cloud/recordex/internal/db"
	"github.com/kailas-cloud/recordex/internal/domain"
	domrec "github.com/kailas-cloud/recordex/internal/domain/record"
)

// store is the consumer interface for records (ISP).
//
//nolint:interfacebloat // record repo needs hash + counter + index + search operations
type store interface {
	HSet(ctx context.Context, key string, fields map[string]string) error
	HGetAll(ctx context.Context, key string) (map[string]string, error)
	Del(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
	Incr(ctx context.Context, key string) (int64, error)
	SetNX(ctx context.Context, key, value string) (bool, error)
	CreateIndex(ctx context.Context, def *db.IndexDefinition) error
	SearchList(ctx context.Context, q *db.ListQuery) (*db.SearchResult, error)
	SearchCount(ctx context.Context, index, query string) (int, error)
}

// Repo implements usecase/record.Repository.
type Repo struct {
	store store
}

// New creates a record repository.
func New(s store) *Repo {
	return &Repo{store: s}
}

// EnsureIndex creates the record FT index if it does not exist yet.
func (r *Repo) EnsureIndex(ctx context.Context) error {
	def := db.NewIndex(indexName()).
		Prefix(hashPrefix()).
		SortableNumeric(fieldID).
		Text(fieldName).
		SortableNumeric(fieldPrice).
		SortableNumeric(fieldTotalValue).
		Tag(fieldActive).
		SortableNumeric(fieldCreatedAt).
		MustBuild()

	if err := r.store.CreateIndex(ctx, def); err != nil {
		if errors.Is(err, db.ErrIndexExists) {
			return nil
		}
		return fmt.Errorf("create record index: %w", err)
	}
	return nil
}

// Create allocates an id from the counter, claims the name marker, then
// writes the record hash. On hash write failure the marker is released.
// A taken marker means the name is already in use.
func (r *Repo) Create(ctx context.Context, rec domrec.Record, createdAt int64) (domrec.Record, error) {
	seq, err := r.store.Incr(ctx, counterKey())
	if err != nil {
		return domrec.Record{}, fmt.Errorf("next record id: %w", err)
	}
	id := uint64(seq)

	claimed, err := r.store.SetNX(ctx, nameKey(rec.Name()), strconv.FormatUint(id, 10))
	if err != nil {
		return domrec.Record{}, fmt.Errorf("claim name %s: %w", rec.Name(), err)
	}
	if !claimed {
		return domrec.Record{}, domain.ErrAlreadyExists
	}

	stored := rec.WithIdentity(id, createdAt)
	if err := r.store.HSet(ctx, recordKey(id), buildHashFields(stored)); err != nil {
		cleanupErr := r.store.Del(ctx, nameKey(rec.Name()))
		return domrec.Record{}, errors.Join(fmt.Errorf("hset record %d: %w", id, err), cleanupErr)
	}

	return stored, nil
}

// Get retrieves a record by id.
func (r *Repo) Get(ctx context.Context, id uint64) (domrec.Record, error) {
	m, err := r.store.HGetAll(ctx, recordKey(id))
	if err != nil {
		return domrec.Record{}, fmt.Errorf("hgetall record %d: %w", id, err)
	}
	if len(m) == 0 {
		return domrec.Record{}, domain.ErrNotFound
	}
	return recordFromHash(m)
}

// Exists reports whether a record hash is present for id, without
// hydrating it.
func (r *Repo) Exists(ctx context.Context, id uint64) (bool, error) {
	ok, err := r.store.Exists(ctx, recordKey(id))
	if err != nil {
		return false, fmt.Errorf("exists record %d: %w", id, err)
	}
	return ok, nil
}

// IndexName returns the record FT index name.
func IndexName() string {
	return indexName()
}

// List returns up to limit records ordered by id ascending, starting
// after the cursor id. An optional q filters by name substring.
func (r *Repo) List(ctx context.Context, q string, cursor uint64, limit int) ([]domrec.Record, error) {
	var parts []string
	if q != "" {
		parts = append(parts, db.TextSubstring(fieldName, q))
	}
	if cursor > 0 {
		parts = append(parts, db.NumericAbove(fieldID, float64(cursor)))
	}

	sr, err := r.store.SearchList(ctx, &db.ListQuery{
		Index:        indexName(),
		Query:        db.And(parts...),
		SortBy:       fieldID,
		Limit:        limit,
		ReturnFields: returnFields,
	})
	if err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}

	records := make([]domrec.Record, 0, len(sr.Entries))
	for _, entry := range sr.Entries {
		rec, err := recordFromHash(entry.Fields)
		if err != nil {
			return nil, fmt.Errorf("parse record %s: %w", entry.Key, err)
		}
		records = append(records, rec)
	}
	return records, nil
}

// Count returns the number of records matching the optional name
// substring, optionally restricted to active records.
func (r *Repo) Count(ctx context.Context, q string, activeOnly bool) (int, error) {
	var parts []string
	if q != "" {
		parts = append(parts, db.TextSubstring(fieldName, q))
	}
	if activeOnly {
		parts = append(parts, db.TagFilter(fieldActive, activeTrue))
	}

	n, err := r.store.SearchCount(ctx, indexName(), db.And(parts...))
	if err != nil {
		return 0, fmt.Errorf("count records: %w", err)
	}
	return n, nil
}

func hashPrefix() string {
	return domain.KeyPrefix + "record:"
}

func indexName() string {
	return domain.KeyPrefix + "record:idx"
}

func counterKey() string {
	return domain.KeyPrefix + "seq:record"
}

func recordKey(id uint64) string {
	return hashPrefix() + strconv.FormatUint(id, 10)
}

func nameKey(name string) string {
	return domain.KeyPrefix + "name:" + name
}
