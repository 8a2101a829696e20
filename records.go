package recordex

import (
	"context"
	"fmt"
	"time"

	domrec "github.com/kailas-cloud/recordex/internal/domain/record"
	recorduc "github.com/kailas-cloud/recordex/internal/usecase/record"
)

// Record is the public record representation.
type Record struct {
	ID          uint64
	Name        string
	Description string
	TotalValue  float64
	Price       float64
	Active      bool
	CreatedAt   time.Time
}

// RecordPage is one listing page. NextCursor is 0 when the listing is
// exhausted; otherwise pass it to the next List call.
type RecordPage struct {
	Records    []Record
	NextCursor uint64
}

// RecordService manages records.
type RecordService struct {
	svc *recorduc.Service
}

// Create stores a new record. The name must be unique.
func (s *RecordService) Create(
	ctx context.Context, name, description string, totalValue, price float64, active bool,
) (Record, error) {
	rec, err := s.svc.Create(ctx, name, description, totalValue, price, active)
	if err != nil {
		return Record{}, fmt.Errorf("create record: %w", err)
	}
	return recordFromDomain(rec), nil
}

// Get retrieves a record by id.
func (s *RecordService) Get(ctx context.Context, id uint64) (Record, error) {
	rec, err := s.svc.Get(ctx, id)
	if err != nil {
		return Record{}, fmt.Errorf("get record: %w", err)
	}
	return recordFromDomain(rec), nil
}

// List returns one page of records ordered by id ascending. q filters by
// case-insensitive name substring; pass cursor 0 for the first page.
func (s *RecordService) List(ctx context.Context, q string, cursor uint64, limit int) (RecordPage, error) {
	page, err := s.svc.List(ctx, q, cursor, limit)
	if err != nil {
		return RecordPage{}, fmt.Errorf("list records: %w", err)
	}

	records := make([]Record, len(page.Records))
	for i, rec := range page.Records {
		records[i] = recordFromDomain(rec)
	}
	return RecordPage{Records: records, NextCursor: page.NextCursor}, nil
}

// Count returns the number of records matching the optional filters.
func (s *RecordService) Count(ctx context.Context, q string, activeOnly bool) (int, error) {
	n, err := s.svc.Count(ctx, q, activeOnly)
	if err != nil {
		return 0, fmt.Errorf("count records: %w", err)
	}
	return n, nil
}

func recordFromDomain(rec domrec.Record) Record {
	return Record{
		ID:          rec.ID(),
		Name:        rec.Name(),
		Description: rec.Description(),
		TotalValue:  rec.TotalValue(),
		Price:       rec.Price(),
		Active:      rec.Active(),
		CreatedAt:   time.UnixMilli(rec.CreatedAt()).UTC(),
	}
}
