package tagging

import (
	"context"

	domtag "github.com/kailas-cloud/recordex/internal/domain/tagging"
)

// Repository defines the storage contract for taggings.
type Repository interface {
	Create(ctx context.Context, tg domtag.Tagging, createdAt int64) (domtag.Tagging, error)
	List(ctx context.Context, recordID uint64, cursor int64, limit int) ([]domtag.Tagging, error)
}

// RecordChecker verifies that the tagged record exists.
type RecordChecker interface {
	Exists(ctx context.Context, id uint64) (bool, error)
}
