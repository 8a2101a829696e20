package tagging

import (
	"context"
	"testing"

	domtag "github.com/kailas-cloud/recordex/internal/domain/tagging"
)

// mockRepo implements Repository for tests.
type mockRepo struct {
	createFn func(ctx context.Context, tg domtag.Tagging, createdAt int64) (domtag.Tagging, error)
	listFn   func(ctx context.Context, recordID uint64, cursor int64, limit int) ([]domtag.Tagging, error)
}

func (m *mockRepo) Create(ctx context.Context, tg domtag.Tagging, createdAt int64) (domtag.Tagging, error) {
	if m.createFn != nil {
		return m.createFn(ctx, tg, createdAt)
	}
	return tg.WithIdentity(1, createdAt), nil
}

func (m *mockRepo) List(ctx context.Context, recordID uint64, cursor int64, limit int) ([]domtag.Tagging, error) {
	if m.listFn != nil {
		return m.listFn(ctx, recordID, cursor, limit)
	}
	return nil, nil
}

// mockRecords implements RecordChecker for tests.
type mockRecords struct {
	existsFn func(ctx context.Context, id uint64) (bool, error)
}

func (m *mockRecords) Exists(ctx context.Context, id uint64) (bool, error) {
	if m.existsFn != nil {
		return m.existsFn(ctx, id)
	}
	return true, nil
}

func newTestService(t *testing.T) (*Service, *mockRepo, *mockRecords) {
	t.Helper()
	mr := &mockRepo{}
	recs := &mockRecords{}
	svc := New(mr, recs, Paging{DefaultPageSize: 20, MaxPageSize: 100})
	svc.now = func() int64 { return 1700000000000 }
	return svc, mr, recs
}

func storedTaggings(createdAts ...int64) []domtag.Tagging {
	out := make([]domtag.Tagging, len(createdAts))
	for i, ts := range createdAts {
		out[i] = domtag.Reconstruct(uint64(i+1), 3, "p", "c", ts)
	}
	return out
}
