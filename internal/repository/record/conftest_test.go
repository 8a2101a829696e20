package record

import (
	"context"
	"testing"

	"github.com/kailas-cloud/recordex/internal/db"
	domrec "github.com/kailas-cloud/recordex/internal/domain/record"
)

// mockStore implements the consumer interface for tests.
type mockStore struct {
	hsetFn        func(ctx context.Context, key string, fields map[string]string) error
	hgetAllFn     func(ctx context.Context, key string) (map[string]string, error)
	delFn         func(ctx context.Context, key string) error
	existsFn      func(ctx context.Context, key string) (bool, error)
	incrFn        func(ctx context.Context, key string) (int64, error)
	setNXFn       func(ctx context.Context, key, value string) (bool, error)
	createIndexFn func(ctx context.Context, def *db.IndexDefinition) error
	searchListFn  func(ctx context.Context, q *db.ListQuery) (*db.SearchResult, error)
	searchCountFn func(ctx context.Context, index, query string) (int, error)
}

func (m *mockStore) HSet(ctx context.Context, key string, fields map[string]string) error {
	if m.hsetFn != nil {
		return m.hsetFn(ctx, key, fields)
	}
	return nil
}

func (m *mockStore) HGetAll(ctx context.Context, key string) (map[string]string, error) {
	if m.hgetAllFn != nil {
		return m.hgetAllFn(ctx, key)
	}
	return map[string]string{}, nil
}

func (m *mockStore) Del(ctx context.Context, key string) error {
	if m.delFn != nil {
		return m.delFn(ctx, key)
	}
	return nil
}

func (m *mockStore) Exists(ctx context.Context, key string) (bool, error) {
	if m.existsFn != nil {
		return m.existsFn(ctx, key)
	}
	return false, nil
}

func (m *mockStore) Incr(ctx context.Context, key string) (int64, error) {
	if m.incrFn != nil {
		return m.incrFn(ctx, key)
	}
	return 1, nil
}

func (m *mockStore) SetNX(ctx context.Context, key, value string) (bool, error) {
	if m.setNXFn != nil {
		return m.setNXFn(ctx, key, value)
	}
	return true, nil
}

func (m *mockStore) CreateIndex(ctx context.Context, def *db.IndexDefinition) error {
	if m.createIndexFn != nil {
		return m.createIndexFn(ctx, def)
	}
	return nil
}

func (m *mockStore) SearchList(ctx context.Context, q *db.ListQuery) (*db.SearchResult, error) {
	if m.searchListFn != nil {
		return m.searchListFn(ctx, q)
	}
	return &db.SearchResult{}, nil
}

func (m *mockStore) SearchCount(ctx context.Context, index, query string) (int, error) {
	if m.searchCountFn != nil {
		return m.searchCountFn(ctx, index, query)
	}
	return 0, nil
}

func newTestRepo(t *testing.T) (*Repo, *mockStore) {
	t.Helper()
	ms := &mockStore{}
	return New(ms), ms
}

func testRecord(t *testing.T) domrec.Record {
	t.Helper()
	rec, err := domrec.New("widget", "a widget", 150, 99.5, true)
	if err != nil {
		t.Fatalf("test record: %v", err)
	}
	return rec
}

func recordEntry(id, name string) db.SearchEntry {
	return db.SearchEntry{
		Key: hashPrefix() + id,
		Fields: map[string]string{
			fieldID:          id,
			fieldName:        name,
			fieldDescription: "",
			fieldTotalValue:  "100",
			fieldPrice:       "50",
			fieldActive:      activeTrue,
			fieldCreatedAt:   "1700000000000",
		},
	}
}
