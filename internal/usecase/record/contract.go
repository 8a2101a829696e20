package record

import (
	"context"

	domrec "github.com/kailas-cloud/recordex/internal/domain/record"
)

// Repository defines the storage contract for records.
type Repository interface {
	Create(ctx context.Context, rec domrec.Record, createdAt int64) (domrec.Record, error)
	Get(ctx context.Context, id uint64) (domrec.Record, error)
	List(ctx context.Context, q string, cursor uint64, limit int) ([]domrec.Record, error)
	Count(ctx context.Context, q string, activeOnly bool) (int, error)
}
