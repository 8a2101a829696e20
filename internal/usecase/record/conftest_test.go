package record

import (
	"context"
	"testing"

	domrec "github.com/kailas-cloud/recordex/internal/domain/record"
)

// mockRepo implements Repository for tests.
type mockRepo struct {
	createFn func(ctx context.Context, rec domrec.Record, createdAt int64) (domrec.Record, error)
	getFn    func(ctx context.Context, id uint64) (domrec.Record, error)
	listFn   func(ctx context.Context, q string, cursor uint64, limit int) ([]domrec.Record, error)
	countFn  func(ctx context.Context, q string, activeOnly bool) (int, error)
}

func (m *mockRepo) Create(ctx context.Context, rec domrec.Record, createdAt int64) (domrec.Record, error) {
	if m.createFn != nil {
		return m.createFn(ctx, rec, createdAt)
	}
	return rec.WithIdentity(1, createdAt), nil
}

func (m *mockRepo) Get(ctx context.Context, id uint64) (domrec.Record, error) {
	if m.getFn != nil {
		return m.getFn(ctx, id)
	}
	return domrec.Record{}, nil
}

func (m *mockRepo) List(ctx context.Context, q string, cursor uint64, limit int) ([]domrec.Record, error) {
	if m.listFn != nil {
		return m.listFn(ctx, q, cursor, limit)
	}
	return nil, nil
}

func (m *mockRepo) Count(ctx context.Context, q string, activeOnly bool) (int, error) {
	if m.countFn != nil {
		return m.countFn(ctx, q, activeOnly)
	}
	return 0, nil
}

func newTestService(t *testing.T) (*Service, *mockRepo) {
	t.Helper()
	mr := &mockRepo{}
	svc := New(mr, Paging{DefaultPageSize: 20, MaxPageSize: 100})
	svc.now = func() int64 { return 1700000000000 }
	return svc, mr
}

func storedRecords(ids ...uint64) []domrec.Record {
	out := make([]domrec.Record, len(ids))
	for i, id := range ids {
		out[i] = domrec.Reconstruct(id, "r", "", 100, 50, true, 1700000000000)
	}
	return out
}
