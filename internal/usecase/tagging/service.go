package tagging

import (
	"context"
	"fmt"
	"time"

	"github.com/kailas-cloud/recordex/internal/domain"
	domtag "github.com/kailas-cloud/recordex/internal/domain/tagging"
)

// Paging bounds for tagging listings.
type Paging struct {
	DefaultPageSize int
	MaxPageSize     int
}

// Page is one listing page in reverse chronological order. NextCursor is
// the created_at of the last returned tagging, or 0 when exhausted.
type Page struct {
	Taggings   []domtag.Tagging
	NextCursor int64
}

// Service handles tagging operations.
type Service struct {
	repo    Repository
	records RecordChecker
	paging  Paging
	now     func() int64
}

// New creates a tagging service.
func New(repo Repository, records RecordChecker, paging Paging) *Service {
	if paging.DefaultPageSize <= 0 {
		paging.DefaultPageSize = 20
	}
	if paging.MaxPageSize <= 0 {
		paging.MaxPageSize = 100
	}
	return &Service{
		repo:    repo,
		records: records,
		paging:  paging,
		now:     func() int64 { return time.Now().UnixMilli() },
	}
}

// Create validates and stores a new tagging for an existing record.
func (s *Service) Create(ctx context.Context, recordID uint64, product, category string) (domtag.Tagging, error) {
	tg, err := domtag.New(recordID, product, category)
	if err != nil {
		return domtag.Tagging{}, fmt.Errorf("validate tagging: %w", err)
	}

	ok, err := s.records.Exists(ctx, recordID)
	if err != nil {
		return domtag.Tagging{}, fmt.Errorf("record %d: %w", recordID, err)
	}
	if !ok {
		return domtag.Tagging{}, fmt.Errorf("record %d: %w", recordID, domain.ErrNotFound)
	}

	stored, err := s.repo.Create(ctx, tg, s.now())
	if err != nil {
		return domtag.Tagging{}, fmt.Errorf("create tagging: %w", err)
	}
	return stored, nil
}

// List returns one page of taggings ordered by created_at descending.
// Over-fetches by one row to detect whether a next page exists.
func (s *Service) List(ctx context.Context, recordID uint64, cursor int64, limit int) (Page, error) {
	limit = s.clampLimit(limit)

	taggings, err := s.repo.List(ctx, recordID, cursor, limit+1)
	if err != nil {
		return Page{}, fmt.Errorf("list taggings: %w", err)
	}

	var next int64
	if len(taggings) > limit {
		taggings = taggings[:limit]
		next = taggings[limit-1].CreatedAt()
	}
	return Page{Taggings: taggings, NextCursor: next}, nil
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
