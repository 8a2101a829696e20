package match

import (
	"context"
	"testing"

	dommatch "github.com/kailas-cloud/recordex/internal/domain/match"
)

// mockRepo implements Repository for tests.
type mockRepo struct {
	rangeFetchFn    func(ctx context.Context, band dommatch.Band) ([]dommatch.Row, error)
	productIDsFn    func(ctx context.Context, product string) (map[uint64]struct{}, error)
	categoryPairsFn func(ctx context.Context, categories []string) ([]dommatch.Pair, error)

	productCalls []string
}

func (m *mockRepo) RangeFetch(ctx context.Context, band dommatch.Band) ([]dommatch.Row, error) {
	if m.rangeFetchFn != nil {
		return m.rangeFetchFn(ctx, band)
	}
	return nil, nil
}

func (m *mockRepo) ProductIDs(ctx context.Context, product string) (map[uint64]struct{}, error) {
	m.productCalls = append(m.productCalls, product)
	if m.productIDsFn != nil {
		return m.productIDsFn(ctx, product)
	}
	return map[uint64]struct{}{}, nil
}

func (m *mockRepo) CategoryPairs(ctx context.Context, categories []string) ([]dommatch.Pair, error) {
	if m.categoryPairsFn != nil {
		return m.categoryPairsFn(ctx, categories)
	}
	return nil, nil
}

func newTestService(t *testing.T) (*Service, *mockRepo) {
	t.Helper()
	mr := &mockRepo{}
	return New(mr), mr
}

func idSet(ids ...uint64) map[uint64]struct{} {
	out := make(map[uint64]struct{}, len(ids))
	for _, id := range ids {
		out[id] = struct{}{}
	}
	return out
}
