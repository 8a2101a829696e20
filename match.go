package recordex

import (
	"context"
	"fmt"

	matchuc "github.com/kailas-cloud/recordex/internal/usecase/match"
)

// MatchResult is one ranked match. RowNumber is a dense 1-based rank.
type MatchResult struct {
	RowNumber  int
	RecordID   uint64
	TotalValue float64
}

// IntersectResult is one ranked record from a category intersection.
type IntersectResult struct {
	RowNumber int
	RecordID  uint64
}

// MatchService runs the matching pipelines.
type MatchService struct {
	svc *matchuc.Service
}

// Match ranks active records whose price falls within ±10% of value,
// restricted to records tagged with every given product (at most 3).
func (s *MatchService) Match(ctx context.Context, value float64, products []string) ([]MatchResult, error) {
	entries, err := s.svc.Match(ctx, value, products)
	if err != nil {
		return nil, fmt.Errorf("match: %w", err)
	}

	results := make([]MatchResult, len(entries))
	for i, e := range entries {
		results[i] = MatchResult{RowNumber: e.Rank, RecordID: e.RecordID, TotalValue: e.Value}
	}
	return results, nil
}

// IntersectCategories ranks records tagged with every given category
// (1 to 3 categories).
func (s *MatchService) IntersectCategories(ctx context.Context, categories []string) ([]IntersectResult, error) {
	entries, err := s.svc.IntersectCategories(ctx, categories)
	if err != nil {
		return nil, fmt.Errorf("intersect categories: %w", err)
	}

	results := make([]IntersectResult, len(entries))
	for i, e := range entries {
		results[i] = IntersectResult{RowNumber: e.Rank, RecordID: e.RecordID}
	}
	return results, nil
}
