package tagging

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/kailas-cloud/recordex/internal/db"
	"github.com/kailas-cloud/recordex/internal/domain"
	domtag "github.com/kailas-cloud/recordex/internal/domain/tagging"
)

// store is the consumer interface for taggings (ISP).
type store interface {
	HSet(ctx context.Context, key string, fields map[string]string) error
	Incr(ctx context.Context, key string) (int64, error)
	CreateIndex(ctx context.Context, def *db.IndexDefinition) error
	SearchList(ctx context.Context, q *db.ListQuery) (*db.SearchResult, error)
}

// Repo implements usecase/tagging.Repository.
type Repo struct {
	store store
}

// New creates a tagging repository.
func New(s store) *Repo {
	return &Repo{store: s}
}

// EnsureIndex creates the tagging FT index if it does not exist yet.
func (r *Repo) EnsureIndex(ctx context.Context) error {
	def := db.NewIndex(indexName()).
		Prefix(hashPrefix()).
		SortableNumeric(fieldID).
		Tag(fieldRecordID).
		Tag(fieldProduct).
		Tag(fieldCategory).
		SortableNumeric(fieldCreatedAt).
		MustBuild()

	if err := r.store.CreateIndex(ctx, def); err != nil {
		if errors.Is(err, db.ErrIndexExists) {
			return nil
		}
		return fmt.Errorf("create tagging index: %w", err)
	}
	return nil
}

// Create allocates an id from the counter and writes the tagging hash.
func (r *Repo) Create(ctx context.Context, tg domtag.Tagging, createdAt int64) (domtag.Tagging, error) {
	seq, err := r.store.Incr(ctx, counterKey())
	if err != nil {
		return domtag.Tagging{}, fmt.Errorf("next tagging id: %w", err)
	}
	id := uint64(seq)

	stored := tg.WithIdentity(id, createdAt)
	if err := r.store.HSet(ctx, taggingKey(id), buildHashFields(stored)); err != nil {
		return domtag.Tagging{}, fmt.Errorf("hset tagging %d: %w", id, err)
	}
	return stored, nil
}

// List returns up to limit taggings ordered by created_at descending,
// starting strictly before the cursor timestamp. Zero recordID lists all.
func (r *Repo) List(ctx context.Context, recordID uint64, cursor int64, limit int) ([]domtag.Tagging, error) {
	var parts []string
	if recordID > 0 {
		parts = append(parts, db.TagFilter(fieldRecordID, strconv.FormatUint(recordID, 10)))
	}
	if cursor > 0 {
		parts = append(parts, db.NumericBelow(fieldCreatedAt, float64(cursor)))
	}

	sr, err := r.store.SearchList(ctx, &db.ListQuery{
		Index:        indexName(),
		Query:        db.And(parts...),
		SortBy:       fieldCreatedAt,
		SortDesc:     true,
		Limit:        limit,
		ReturnFields: returnFields,
	})
	if err != nil {
		return nil, fmt.Errorf("list taggings: %w", err)
	}

	taggings := make([]domtag.Tagging, 0, len(sr.Entries))
	for _, entry := range sr.Entries {
		tg, err := taggingFromHash(entry.Fields)
		if err != nil {
			return nil, fmt.Errorf("parse tagging %s: %w", entry.Key, err)
		}
		taggings = append(taggings, tg)
	}
	return taggings, nil
}

// IndexName returns the tagging FT index name.
func IndexName() string {
	return indexName()
}

func hashPrefix() string {
	return domain.KeyPrefix + "tagging:"
}

func indexName() string {
	return domain.KeyPrefix + "tagging:idx"
}

func counterKey() string {
	return domain.KeyPrefix + "seq:tagging"
}

func taggingKey(id uint64) string {
	return hashPrefix() + strconv.FormatUint(id, 10)
}
