package chi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/kailas-cloud/recordex/internal/domain"
	dommatch "github.com/kailas-cloud/recordex/internal/domain/match"
	domrec "github.com/kailas-cloud/recordex/internal/domain/record"
	domtag "github.com/kailas-cloud/recordex/internal/domain/tagging"
)

func doJSON(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("{}")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func decodeInto(t *testing.T, rr *httptest.ResponseRecorder, dst any) {
	t.Helper()
	if err := json.NewDecoder(rr.Body).Decode(dst); err != nil {
		t.Fatalf("decode response: %v", err)
	}
}

func TestCreateRecord_Created(t *testing.T) {
	router, mocks := newTestRouter(t)

	mocks.records.createFn = func(_ context.Context, rec domrec.Record, createdAt int64) (domrec.Record, error) {
		return rec.WithIdentity(42, createdAt), nil
	}

	rr := doJSON(t, router, "POST", "/api/v1/records",
		`{"name":"widget","description":"a widget","total_value":150,"price":100,"active":true}`)

	if rr.Code != http.StatusCreated {
		t.Fatalf("status: got %d, want %d (body %s)", rr.Code, http.StatusCreated, rr.Body.String())
	}
	if loc := rr.Header().Get("Location"); loc != "/api/v1/records/42" {
		t.Errorf("location: got %q", loc)
	}

	var resp recordResponse
	decodeInto(t, rr, &resp)
	if resp.ID != 42 || resp.Name != "widget" || resp.Price != 100 {
		t.Errorf("unexpected response: %+v", resp)
	}
}

func TestCreateRecord_ValidationViolations(t *testing.T) {
	router, _ := newTestRouter(t)

	rr := doJSON(t, router, "POST", "/api/v1/records", `{"name":""}`)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status: got %d, want %d", rr.Code, http.StatusBadRequest)
	}

	var resp errorResponse
	decodeInto(t, rr, &resp)
	if resp.Code != codeValidationFailed {
		t.Errorf("code: got %q, want %q", resp.Code, codeValidationFailed)
	}
	if len(resp.Violations) == 0 {
		t.Error("expected violations to be listed")
	}
}

func TestCreateRecord_DuplicateName_Conflict(t *testing.T) {
	router, mocks := newTestRouter(t)

	mocks.records.createFn = func(_ context.Context, _ domrec.Record, _ int64) (domrec.Record, error) {
		return domrec.Record{}, domain.ErrAlreadyExists
	}

	rr := doJSON(t, router, "POST", "/api/v1/records", `{"name":"widget"}`)

	if rr.Code != http.StatusConflict {
		t.Fatalf("status: got %d, want %d", rr.Code, http.StatusConflict)
	}
}

func TestCreateRecord_MalformedBody(t *testing.T) {
	router, _ := newTestRouter(t)

	rr := doJSON(t, router, "POST", "/api/v1/records", `{"name":`)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("malformed body: got %d, want %d", rr.Code, http.StatusBadRequest)
	}

	rr = doJSON(t, router, "POST", "/api/v1/records", `{"name":"x","bogus":1}`)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("unknown field: got %d, want %d", rr.Code, http.StatusBadRequest)
	}
}

func TestGetRecord_NotFound(t *testing.T) {
	router, mocks := newTestRouter(t)

	mocks.records.getFn = func(_ context.Context, _ uint64) (domrec.Record, error) {
		return domrec.Record{}, domain.ErrNotFound
	}

	rr := doJSON(t, router, "GET", "/api/v1/records/7", "")
	if rr.Code != http.StatusNotFound {
		t.Fatalf("status: got %d, want %d", rr.Code, http.StatusNotFound)
	}
}

func TestListRecords_PageWithCursor(t *testing.T) {
	router, mocks := newTestRouter(t)

	mocks.records.listFn = func(_ context.Context, q string, cursor uint64, limit int) ([]domrec.Record, error) {
		if q != "wid" || cursor != 5 || limit != 3 {
			t.Errorf("unexpected args: q=%q cursor=%d limit=%d", q, cursor, limit)
		}
		return []domrec.Record{
			domrec.Reconstruct(6, "widget-a", "", 10, 5, true, 1700000000000),
			domrec.Reconstruct(7, "widget-b", "", 20, 6, true, 1700000000000),
			domrec.Reconstruct(8, "widget-c", "", 30, 7, false, 1700000000000),
		}, nil
	}

	rr := doJSON(t, router, "GET", "/api/v1/records?q=wid&cursor=5&limit=2", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d (body %s)", rr.Code, rr.Body.String())
	}

	var resp recordListResponse
	decodeInto(t, rr, &resp)
	if len(resp.Records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(resp.Records))
	}
	if resp.NextCursor == nil || *resp.NextCursor != 7 {
		t.Errorf("expected nextCursor 7, got %v", resp.NextCursor)
	}
}

func TestListRecords_ResponseKeys(t *testing.T) {
	router, mocks := newTestRouter(t)

	mocks.records.listFn = func(_ context.Context, _ string, _ uint64, _ int) ([]domrec.Record, error) {
		return []domrec.Record{
			domrec.Reconstruct(1, "widget-a", "", 10, 5, true, 1700000000000),
			domrec.Reconstruct(2, "widget-b", "", 20, 6, true, 1700000000000),
			domrec.Reconstruct(3, "widget-c", "", 30, 7, true, 1700000000000),
		}, nil
	}

	rr := doJSON(t, router, "GET", "/api/v1/records?limit=2", "")

	var raw map[string]json.RawMessage
	decodeInto(t, rr, &raw)
	if _, ok := raw["records"]; !ok {
		t.Errorf("expected top-level \"records\" key, got %v", keysOf(raw))
	}
	if _, ok := raw["nextCursor"]; !ok {
		t.Errorf("expected top-level \"nextCursor\" key, got %v", keysOf(raw))
	}
}

func TestListTaggings_ResponseKeys(t *testing.T) {
	router, mocks := newTestRouter(t)

	mocks.taggings.listFn = func(_ context.Context, _ uint64, _ int64, _ int) ([]domtag.Tagging, error) {
		return []domtag.Tagging{domtag.Reconstruct(1, 3, "p1", "", 400)}, nil
	}

	rr := doJSON(t, router, "GET", "/api/v1/taggings?record_id=3", "")

	var raw map[string]json.RawMessage
	decodeInto(t, rr, &raw)
	if _, ok := raw["taggings"]; !ok {
		t.Errorf("expected top-level \"taggings\" key, got %v", keysOf(raw))
	}
	if _, ok := raw["nextCursor"]; !ok {
		t.Errorf("expected top-level \"nextCursor\" key, got %v", keysOf(raw))
	}
}

func keysOf(m map[string]json.RawMessage) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	return keys
}

func TestListRecords_LastPage_NullCursor(t *testing.T) {
	router, mocks := newTestRouter(t)

	mocks.records.listFn = func(_ context.Context, _ string, _ uint64, _ int) ([]domrec.Record, error) {
		return []domrec.Record{
			domrec.Reconstruct(6, "widget-a", "", 10, 5, true, 1700000000000),
		}, nil
	}

	rr := doJSON(t, router, "GET", "/api/v1/records?limit=2", "")

	var resp recordListResponse
	decodeInto(t, rr, &resp)
	if resp.NextCursor != nil {
		t.Errorf("expected null nextCursor, got %v", *resp.NextCursor)
	}
}

func TestListRecords_BadCursor(t *testing.T) {
	router, _ := newTestRouter(t)

	rr := doJSON(t, router, "GET", "/api/v1/records?cursor=abc", "")
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status: got %d, want %d", rr.Code, http.StatusBadRequest)
	}
}

func TestCountRecords(t *testing.T) {
	router, mocks := newTestRouter(t)

	mocks.records.countFn = func(_ context.Context, q string, activeOnly bool) (int, error) {
		if q != "wid" || !activeOnly {
			t.Errorf("unexpected args: q=%q activeOnly=%v", q, activeOnly)
		}
		return 12, nil
	}

	rr := doJSON(t, router, "GET", "/api/v1/records/count?q=wid&active=true", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d", rr.Code)
	}

	var resp map[string]int
	decodeInto(t, rr, &resp)
	if resp["count"] != 12 {
		t.Errorf("count: got %d, want 12", resp["count"])
	}
}

func TestMatchRecords_RankedResults(t *testing.T) {
	router, mocks := newTestRouter(t)

	mocks.match.rangeFetchFn = func(_ context.Context, band dommatch.Band) ([]dommatch.Row, error) {
		if band.Lo() != 90 || band.Hi() != 110 {
			t.Errorf("band: got [%g, %g]", band.Lo(), band.Hi())
		}
		return []dommatch.Row{{RecordID: 1, Value: 10}, {RecordID: 2, Value: 20}}, nil
	}

	rr := doJSON(t, router, "POST", "/api/v1/records/match", `{"value":100}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d (body %s)", rr.Code, rr.Body.String())
	}

	var resp matchResponse
	decodeInto(t, rr, &resp)
	if resp.NumberOfResults != 2 {
		t.Fatalf("number_of_results: got %d", resp.NumberOfResults)
	}
	if resp.Results[0].RowNumber != 1 || resp.Results[0].RecordID != 2 || resp.Results[0].TotalValue != 20 {
		t.Errorf("unexpected first result: %+v", resp.Results[0])
	}
}

func TestMatchRecords_InvalidValue(t *testing.T) {
	router, _ := newTestRouter(t)

	rr := doJSON(t, router, "POST", "/api/v1/records/match", `{"value":0}`)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status: got %d, want %d", rr.Code, http.StatusBadRequest)
	}
}

func TestMatchRecords_StoreFailure_BadGateway(t *testing.T) {
	router, mocks := newTestRouter(t)

	mocks.match.rangeFetchFn = func(_ context.Context, _ dommatch.Band) ([]dommatch.Row, error) {
		return nil, errors.New("connection refused")
	}

	rr := doJSON(t, router, "POST", "/api/v1/records/match", `{"value":100}`)
	if rr.Code != http.StatusBadGateway {
		t.Fatalf("status: got %d, want %d", rr.Code, http.StatusBadGateway)
	}

	var resp errorResponse
	decodeInto(t, rr, &resp)
	if resp.Code != codeUpstreamError {
		t.Errorf("code: got %q, want %q", resp.Code, codeUpstreamError)
	}
}

func TestIntersectCategories(t *testing.T) {
	router, mocks := newTestRouter(t)

	mocks.match.categoryPairsFn = func(_ context.Context, _ []string) ([]dommatch.Pair, error) {
		return []dommatch.Pair{
			{RecordID: 4, Category: "c1"},
			{RecordID: 4, Category: "c2"},
			{RecordID: 9, Category: "c1"},
		}, nil
	}

	rr := doJSON(t, router, "POST", "/api/v1/records/categories/intersect", `{"categories":["c1","c2"]}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d (body %s)", rr.Code, rr.Body.String())
	}

	var resp intersectResponse
	decodeInto(t, rr, &resp)
	if resp.NumberOfResults != 1 || resp.Results[0].RecordID != 4 || resp.Results[0].RowNumber != 1 {
		t.Errorf("unexpected response: %+v", resp)
	}
}

func TestIntersectCategories_TooMany(t *testing.T) {
	router, _ := newTestRouter(t)

	rr := doJSON(t, router, "POST", "/api/v1/records/categories/intersect",
		`{"categories":["a","b","c","d"]}`)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status: got %d, want %d", rr.Code, http.StatusBadRequest)
	}
}

func TestCreateTagging_Created(t *testing.T) {
	router, mocks := newTestRouter(t)

	mocks.taggings.createFn = func(_ context.Context, tg domtag.Tagging, createdAt int64) (domtag.Tagging, error) {
		return tg.WithIdentity(5, createdAt), nil
	}

	rr := doJSON(t, router, "POST", "/api/v1/records/3/taggings", `{"product":"p1","category":"c1"}`)
	if rr.Code != http.StatusCreated {
		t.Fatalf("status: got %d (body %s)", rr.Code, rr.Body.String())
	}

	var resp taggingResponse
	decodeInto(t, rr, &resp)
	if resp.ID != 5 || resp.RecordID != 3 || resp.Product != "p1" {
		t.Errorf("unexpected response: %+v", resp)
	}
}

func TestCreateTagging_UnknownRecord(t *testing.T) {
	router, mocks := newTestRouter(t)

	mocks.records.existsFn = func(_ context.Context, _ uint64) (bool, error) {
		return false, nil
	}

	rr := doJSON(t, router, "POST", "/api/v1/records/3/taggings", `{"product":"p1"}`)
	if rr.Code != http.StatusNotFound {
		t.Fatalf("status: got %d, want %d", rr.Code, http.StatusNotFound)
	}
}

func TestListTaggings_RequiresRecordID(t *testing.T) {
	router, _ := newTestRouter(t)

	rr := doJSON(t, router, "GET", "/api/v1/taggings", "")
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status: got %d, want %d", rr.Code, http.StatusBadRequest)
	}
}

func TestListTaggings_Page(t *testing.T) {
	router, mocks := newTestRouter(t)

	mocks.taggings.listFn = func(_ context.Context, recordID uint64, cursor int64, limit int) ([]domtag.Tagging, error) {
		if recordID != 3 || cursor != 500 || limit != 3 {
			t.Errorf("unexpected args: recordID=%d cursor=%d limit=%d", recordID, cursor, limit)
		}
		return []domtag.Tagging{
			domtag.Reconstruct(1, 3, "p1", "", 400),
			domtag.Reconstruct(2, 3, "p2", "", 300),
			domtag.Reconstruct(3, 3, "p3", "", 200),
		}, nil
	}

	rr := doJSON(t, router, "GET", "/api/v1/taggings?record_id=3&cursor=500&limit=2", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d (body %s)", rr.Code, rr.Body.String())
	}

	var resp taggingListResponse
	decodeInto(t, rr, &resp)
	if len(resp.Taggings) != 2 {
		t.Fatalf("expected 2 taggings, got %d", len(resp.Taggings))
	}
	if resp.NextCursor == nil || *resp.NextCursor != 300 {
		t.Errorf("expected nextCursor 300, got %v", resp.NextCursor)
	}
}

func TestHealthCheck_Degraded(t *testing.T) {
	router, mocks := newTestRouter(t)

	mocks.pinger.pingFn = func(_ context.Context) error {
		return errors.New("down")
	}

	rr := doJSON(t, router, "GET", "/health", "")
	if rr.Code != http.StatusServiceUnavailable {
		t.Fatalf("status: got %d, want %d", rr.Code, http.StatusServiceUnavailable)
	}
}

func TestHealthCheck_OK(t *testing.T) {
	router, _ := newTestRouter(t)

	rr := doJSON(t, router, "GET", "/health", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d, want %d", rr.Code, http.StatusOK)
	}
}
