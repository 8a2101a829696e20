package recordex

import (
	"context"
	"fmt"
	"time"

	domtag "github.com/kailas-cloud/recordex/internal/domain/tagging"
	tagginguc "github.com/kailas-cloud/recordex/internal/usecase/tagging"
)

// Tagging is the public tagging representation.
type Tagging struct {
	ID        uint64
	RecordID  uint64
	Product   string
	Category  string
	CreatedAt time.Time
}

// TaggingPage is one listing page in reverse chronological order.
// NextCursor is 0 when the listing is exhausted.
type TaggingPage struct {
	Taggings   []Tagging
	NextCursor int64
}

// TaggingService manages record taggings.
type TaggingService struct {
	svc *tagginguc.Service
}

// Create attaches a product or category tagging to an existing record.
func (s *TaggingService) Create(ctx context.Context, recordID uint64, product, category string) (Tagging, error) {
	tg, err := s.svc.Create(ctx, recordID, product, category)
	if err != nil {
		return Tagging{}, fmt.Errorf("create tagging: %w", err)
	}
	return taggingFromDomain(tg), nil
}

// List returns one page of a record's taggings, newest first. Pass cursor 0
// for the first page.
func (s *TaggingService) List(ctx context.Context, recordID uint64, cursor int64, limit int) (TaggingPage, error) {
	page, err := s.svc.List(ctx, recordID, cursor, limit)
	if err != nil {
		return TaggingPage{}, fmt.Errorf("list taggings: %w", err)
	}

	taggings := make([]Tagging, len(page.Taggings))
	for i, tg := range page.Taggings {
		taggings[i] = taggingFromDomain(tg)
	}
	return TaggingPage{Taggings: taggings, NextCursor: page.NextCursor}, nil
}

func taggingFromDomain(tg domtag.Tagging) Tagging {
	return Tagging{
		ID:        tg.ID(),
		RecordID:  tg.RecordID(),
		Product:   tg.Product(),
		Category:  tg.Category(),
		CreatedAt: time.UnixMilli(tg.CreatedAt()).UTC(),
	}
}
