package match

import (
	"context"
	"testing"

	"github.com/kailas-cloud/recordex/internal/db"
)

// mockStore implements the consumer interface for tests.
type mockStore struct {
	searchListFn func(ctx context.Context, q *db.ListQuery) (*db.SearchResult, error)
}

func (m *mockStore) SearchList(ctx context.Context, q *db.ListQuery) (*db.SearchResult, error) {
	if m.searchListFn != nil {
		return m.searchListFn(ctx, q)
	}
	return &db.SearchResult{}, nil
}

func newTestRepo(t *testing.T) (*Repo, *mockStore) {
	t.Helper()
	ms := &mockStore{}
	return New(ms, 100), ms
}

func rowEntry(id, totalValue string) db.SearchEntry {
	return db.SearchEntry{
		Key:    "rec:record:" + id,
		Fields: map[string]string{fieldID: id, fieldTotalValue: totalValue},
	}
}

func pairEntry(recordID, category string) db.SearchEntry {
	return db.SearchEntry{
		Key:    "rec:tagging:" + recordID,
		Fields: map[string]string{fieldRecordID: recordID, fieldCategory: category},
	}
}
