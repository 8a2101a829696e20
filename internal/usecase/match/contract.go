package match

import (
	"context"

	dommatch "github.com/kailas-cloud/recordex/internal/domain/match"
)

// Repository defines the candidate fetch contract for the matching engine.
type Repository interface {
	RangeFetch(ctx context.Context, band dommatch.Band) ([]dommatch.Row, error)
	ProductIDs(ctx context.Context, product string) (map[uint64]struct{}, error)
	CategoryPairs(ctx context.Context, categories []string) ([]dommatch.Pair, error)
}
