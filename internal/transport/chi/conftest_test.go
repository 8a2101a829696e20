package chi

import (
	"context"
	"net/http"
	"testing"

	chirouter "github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	dommatch "github.com/kailas-cloud/recordex/internal/domain/match"
	domrec "github.com/kailas-cloud/recordex/internal/domain/record"
	domtag "github.com/kailas-cloud/recordex/internal/domain/tagging"
	healthuc "github.com/kailas-cloud/recordex/internal/usecase/health"
	matchuc "github.com/kailas-cloud/recordex/internal/usecase/match"
	recorduc "github.com/kailas-cloud/recordex/internal/usecase/record"
	tagginguc "github.com/kailas-cloud/recordex/internal/usecase/tagging"
)

// mockRecordRepo implements recorduc.Repository and tagginguc.RecordChecker.
type mockRecordRepo struct {
	createFn func(ctx context.Context, rec domrec.Record, createdAt int64) (domrec.Record, error)
	getFn    func(ctx context.Context, id uint64) (domrec.Record, error)
	existsFn func(ctx context.Context, id uint64) (bool, error)
	listFn   func(ctx context.Context, q string, cursor uint64, limit int) ([]domrec.Record, error)
	countFn  func(ctx context.Context, q string, activeOnly bool) (int, error)
}

func (m *mockRecordRepo) Create(ctx context.Context, rec domrec.Record, createdAt int64) (domrec.Record, error) {
	if m.createFn != nil {
		return m.createFn(ctx, rec, createdAt)
	}
	return rec.WithIdentity(1, createdAt), nil
}

func (m *mockRecordRepo) Get(ctx context.Context, id uint64) (domrec.Record, error) {
	if m.getFn != nil {
		return m.getFn(ctx, id)
	}
	return domrec.Reconstruct(id, "stub", "", 0, 0, true, 1700000000000), nil
}

func (m *mockRecordRepo) Exists(ctx context.Context, id uint64) (bool, error) {
	if m.existsFn != nil {
		return m.existsFn(ctx, id)
	}
	return true, nil
}

func (m *mockRecordRepo) List(ctx context.Context, q string, cursor uint64, limit int) ([]domrec.Record, error) {
	if m.listFn != nil {
		return m.listFn(ctx, q, cursor, limit)
	}
	return nil, nil
}

func (m *mockRecordRepo) Count(ctx context.Context, q string, activeOnly bool) (int, error) {
	if m.countFn != nil {
		return m.countFn(ctx, q, activeOnly)
	}
	return 0, nil
}

// mockTaggingRepo implements tagginguc.Repository.
type mockTaggingRepo struct {
	createFn func(ctx context.Context, tg domtag.Tagging, createdAt int64) (domtag.Tagging, error)
	listFn   func(ctx context.Context, recordID uint64, cursor int64, limit int) ([]domtag.Tagging, error)
}

func (m *mockTaggingRepo) Create(ctx context.Context, tg domtag.Tagging, createdAt int64) (domtag.Tagging, error) {
	if m.createFn != nil {
		return m.createFn(ctx, tg, createdAt)
	}
	return tg.WithIdentity(1, createdAt), nil
}

func (m *mockTaggingRepo) List(ctx context.Context, recordID uint64, cursor int64, limit int) ([]domtag.Tagging, error) {
	if m.listFn != nil {
		return m.listFn(ctx, recordID, cursor, limit)
	}
	return nil, nil
}

// mockMatchRepo implements matchuc.Repository.
type mockMatchRepo struct {
	rangeFetchFn    func(ctx context.Context, band dommatch.Band) ([]dommatch.Row, error)
	productIDsFn    func(ctx context.Context, product string) (map[uint64]struct{}, error)
	categoryPairsFn func(ctx context.Context, categories []string) ([]dommatch.Pair, error)
}

func (m *mockMatchRepo) RangeFetch(ctx context.Context, band dommatch.Band) ([]dommatch.Row, error) {
	if m.rangeFetchFn != nil {
		return m.rangeFetchFn(ctx, band)
	}
	return nil, nil
}

func (m *mockMatchRepo) ProductIDs(ctx context.Context, product string) (map[uint64]struct{}, error) {
	if m.productIDsFn != nil {
		return m.productIDsFn(ctx, product)
	}
	return nil, nil
}

func (m *mockMatchRepo) CategoryPairs(ctx context.Context, categories []string) ([]dommatch.Pair, error) {
	if m.categoryPairsFn != nil {
		return m.categoryPairsFn(ctx, categories)
	}
	return nil, nil
}

// mockPinger implements healthuc.DBPinger.
type mockPinger struct {
	pingFn func(ctx context.Context) error
}

func (m *mockPinger) Ping(ctx context.Context) error {
	if m.pingFn != nil {
		return m.pingFn(ctx)
	}
	return nil
}

type testMocks struct {
	records  *mockRecordRepo
	taggings *mockTaggingRepo
	match    *mockMatchRepo
	pinger   *mockPinger
}

func newTestRouter(t *testing.T) (http.Handler, *testMocks) {
	t.Helper()

	mocks := &testMocks{
		records:  &mockRecordRepo{},
		taggings: &mockTaggingRepo{},
		match:    &mockMatchRepo{},
		pinger:   &mockPinger{},
	}

	paging := recorduc.Paging{DefaultPageSize: 20, MaxPageSize: 100}
	server := NewServer(
		recorduc.New(mocks.records, paging),
		tagginguc.New(mocks.taggings, mocks.records, tagginguc.Paging{DefaultPageSize: 20, MaxPageSize: 100}),
		matchuc.New(mocks.match),
		healthuc.New(mocks.pinger),
		zap.NewNop(),
	)

	r := chirouter.NewRouter()
	server.Register(r)
	return r, mocks
}
