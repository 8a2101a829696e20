package match

import (
	"context"
	"fmt"

	dommatch "github.com/kailas-cloud/recordex/internal/domain/match"
	"github.com/kailas-cloud/recordex/internal/metrics"
)

// Service runs the matching pipelines.
type Service struct {
	repo Repository
}

// New creates a match service.
func New(repo Repository) *Service {
	return &Service{repo: repo}
}

// Match ranks active records whose price lies within the tolerance band
// around value, restricted to records tagged with every requested product.
//
// Per record the maximum observed value wins. Product filters apply
// sequentially: as soon as the candidate set is empty the remaining
// product fetches are skipped.
func (s *Service) Match(ctx context.Context, value float64, products []string) ([]dommatch.Entry, error) {
	req, err := dommatch.NewRequest(value, products)
	if err != nil {
		return nil, fmt.Errorf("validate match request: %w", err)
	}

	band, err := dommatch.NewBand(req.Value())
	if err != nil {
		return nil, fmt.Errorf("tolerance band: %w", err)
	}

	rows, err := s.repo.RangeFetch(ctx, band)
	if err != nil {
		metrics.ObserveMatch("value", metrics.OutcomeError, 0)
		return nil, fmt.Errorf("fetch candidates: %w", err)
	}

	set := dommatch.NewSet(rows)
	for _, product := range req.Products() {
		if set.IsEmpty() {
			break
		}
		ids, err := s.repo.ProductIDs(ctx, product)
		if err != nil {
			metrics.ObserveMatch("value", metrics.OutcomeError, set.Len())
			return nil, fmt.Errorf("fetch product %s: %w", product, err)
		}
		set.Intersect(ids)
	}

	ranked := dommatch.Rank(set)
	metrics.ObserveMatch("value", outcome(len(ranked)), set.Len())
	return ranked, nil
}

// IntersectCategories ranks record ids tagged with every requested
// category. Ranks are dense, 1-based, ordered by id ascending.
func (s *Service) IntersectCategories(ctx context.Context, categories []string) ([]dommatch.Entry, error) {
	req, err := dommatch.NewCategoryRequest(categories)
	if err != nil {
		return nil, fmt.Errorf("validate category request: %w", err)
	}

	pairs, err := s.repo.CategoryPairs(ctx, req.Categories())
	if err != nil {
		metrics.ObserveMatch("category", metrics.OutcomeError, 0)
		return nil, fmt.Errorf("fetch category pairs: %w", err)
	}

	ids := dommatch.IntersectCategories(pairs, req.Categories())
	ranked := dommatch.RankIDs(ids)
	metrics.ObserveMatch("category", outcome(len(ranked)), len(ids))
	return ranked, nil
}

func outcome(results int) string {
	if results == 0 {
		return metrics.OutcomeEmpty
	}
	return metrics.OutcomeOK
}
