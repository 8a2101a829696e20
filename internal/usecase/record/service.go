package record

import (
	"context"
	"fmt"
	"time"

	domrec "github.com/kailas-cloud/recordex/internal/domain/record"
)

// Paging bounds for record listings.
type Paging struct {
	DefaultPageSize int
	MaxPageSize     int
}

// Page is one listing page. NextCursor is the id of the last returned
// record, or 0 when the listing is exhausted.
type Page struct {
	Records    []domrec.Record
	NextCursor uint64
}

// Service handles record operations.
type Service struct {
	repo   Repository
	paging Paging
	now    func() int64
}

// New creates a record service.
func New(repo Repository, paging Paging) *Service {
	if paging.DefaultPageSize <= 0 {
		paging.DefaultPageSize = 20
	}
	if paging.MaxPageSize <= 0 {
		paging.MaxPageSize = 100
	}
	return &Service{
		repo:   repo,
		paging: paging,
		now:    func() int64 { return time.Now().UnixMilli() },
	}
}

// Create validates and stores a new record.
func (s *Service) Create(
	ctx context.Context, name, description string, totalValue, price float64, active bool,
) (domrec.Record, error) {
	rec, err := domrec.New(name, description, totalValue, price, active)
	if err != nil {
		return domrec.Record{}, fmt.Errorf("validate record: %w", err)
	}

	stored, err := s.repo.Create(ctx, rec, s.now())
	if err != nil {
		return domrec.Record{}, fmt.Errorf("create record: %w", err)
	}
	return stored, nil
}

// Get retrieves a record by id.
func (s *Service) Get(ctx context.Context, id uint64) (domrec.Record, error) {
	rec, err := s.repo.Get(ctx, id)
	if err != nil {
		return domrec.Record{}, fmt.Errorf("get record: %w", err)
	}
	return rec, nil
}

// List returns one page of records ordered by id ascending. It fetches one
// row past the page size to decide whether a next page exists; the extra
// row is dropped and never returned.
func (s *Service) List(ctx context.Context, q string, cursor uint64, limit int) (Page, error) {
	limit = s.clampLimit(limit)

	records, err := s.repo.List(ctx, q, cursor, limit+1)
	if err != nil {
		return Page{}, fmt.Errorf("list records: %w", err)
	}

	var next uint64
	if len(records) > limit {
		records = records[:limit]
		next = records[limit-1].ID()
	}
	return Page{Records: records, NextCursor: next}, nil
}

// Count returns the number of records matching the optional filters.
func (s *Service) Count(ctx context.Context, q string, activeOnly bool) (int, error) {
	n, err := s.repo.Count(ctx, q, activeOnly)
	if err != nil {
		return 0, fmt.Errorf("count records: %w", err)
	}
	return n, nil
}

func (s *Service) clampLimit(limit int) int {
	if limit <= 0 {
		return s.paging.DefaultPageSize
	}
	if limit > s.paging.MaxPageSize {
		return s.paging.MaxPageSize
	}
	return limit
}
