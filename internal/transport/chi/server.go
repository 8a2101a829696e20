package chi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/recordex/internal/domain"
	domrec "github.com/kailas-cloud/recordex/internal/domain/record"
	domtag "github.com/kailas-cloud/recordex/internal/domain/tagging"
	healthuc "github.com/kailas-cloud/recordex/internal/usecase/health"
	matchuc "github.com/kailas-cloud/recordex/internal/usecase/match"
	recorduc "github.com/kailas-cloud/recordex/internal/usecase/record"
	tagginguc "github.com/kailas-cloud/recordex/internal/usecase/tagging"
)

// Error codes returned in JSON error bodies.
const (
	codeBadRequest       = "bad_request"
	codeValidationFailed = "validation_failed"
	codeNotFound         = "not_found"
	codeAlreadyExists    = "already_exists"
	codeUnauthorized     = "unauthorized"
	codeUpstreamError    = "upstream_error"
)

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error) bool

// Server exposes the record API over chi.
type Server struct {
	records       *recorduc.Service
	taggings      *tagginguc.Service
	matcher       *matchuc.Service
	health        *healthuc.Service
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(
	records *recorduc.Service,
	taggings *tagginguc.Service,
	matcher *matchuc.Service,
	health *healthuc.Service,
	logger *zap.Logger,
) *Server {
	s := &Server{
		records:  records,
		taggings: taggings,
		matcher:  matcher,
		health:   health,
		logger:   logger,
	}
	s.errorHandlers = []errorHandler{
		validationHandler,
		sentinelHandler(domain.ErrAlreadyExists, http.StatusConflict, codeAlreadyExists),
		sentinelHandler(domain.ErrNotFound, http.StatusNotFound, codeNotFound),
	}
	return s
}

// Register mounts the API routes on the router.
func (s *Server) Register(r chi.Router) {
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/records", s.ListRecords)
		r.Post("/records", s.CreateRecord)
		r.Get("/records/count", s.CountRecords)
		r.Post("/records/match", s.MatchRecords)
		r.Post("/records/categories/intersect", s.IntersectCategories)
		r.Get("/records/{id}", s.GetRecord)
		r.Post("/records/{id}/taggings", s.CreateTagging)
		r.Get("/taggings", s.ListTaggings)
	})
	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)
}

type errorResponse struct {
	Code       string   `json:"code"`
	Message    string   `json:"message"`
	Violations []string `json:"violations,omitempty"`
}

type recordResponse struct {
	ID          uint64    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	TotalValue  float64   `json:"total_value"`
	Price       float64   `json:"price"`
	Active      bool      `json:"active"`
	CreatedAt   time.Time `json:"created_at"`
}

type recordListResponse struct {
	Records    []recordResponse `json:"records"`
	NextCursor *uint64          `json:"nextCursor"`
}

type taggingResponse struct {
	ID        uint64    `json:"id"`
	RecordID  uint64    `json:"record_id"`
	Product   string    `json:"product,omitempty"`
	Category  string    `json:"category,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type taggingListResponse struct {
	Taggings   []taggingResponse `json:"taggings"`
	NextCursor *int64            `json:"nextCursor"`
}

type matchResultItem struct {
	RowNumber  int     `json:"row_number"`
	RecordID   uint64  `json:"record_id"`
	TotalValue float64 `json:"total_value"`
}

type matchResponse struct {
	Results         []matchResultItem `json:"results"`
	NumberOfResults int               `json:"number_of_results"`
}

type intersectResultItem struct {
	RowNumber int    `json:"row_number"`
	RecordID  uint64 `json:"record_id"`
}

type intersectResponse struct {
	Results         []intersectResultItem `json:"results"`
	NumberOfResults int                   `json:"number_of_results"`
}

// CreateRecord handles POST /api/v1/records.
func (s *Server) CreateRecord(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name        string  `json:"name"`
		Description string  `json:"description"`
		TotalValue  float64 `json:"total_value"`
		Price       float64 `json:"price"`
		Active      bool    `json:"active"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	rec, err := s.records.Create(r.Context(), req.Name, req.Description, req.TotalValue, req.Price, req.Active)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	w.Header().Set("Location", "/api/v1/records/"+strconv.FormatUint(rec.ID(), 10))
	writeJSON(w, http.StatusCreated, recordToResponse(rec))
}

// GetRecord handles GET /api/v1/records/{id}.
func (s *Server) GetRecord(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "record id must be a positive integer")
		return
	}

	rec, err := s.records.Get(r.Context(), id)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, recordToResponse(rec))
}

// ListRecords handles GET /api/v1/records.
func (s *Server) ListRecords(w http.ResponseWriter, r *http.Request) {
	cursor, ok := uintQuery(w, r, "cursor")
	if !ok {
		return
	}
	limit, ok := intQuery(w, r, "limit")
	if !ok {
		return
	}

	page, err := s.records.List(r.Context(), r.URL.Query().Get("q"), cursor, limit)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	records := make([]recordResponse, len(page.Records))
	for i, rec := range page.Records {
		records[i] = recordToResponse(rec)
	}

	resp := recordListResponse{Records: records}
	if page.NextCursor != 0 {
		c := page.NextCursor
		resp.NextCursor = &c
	}
	writeJSON(w, http.StatusOK, resp)
}

// CountRecords handles GET /api/v1/records/count.
func (s *Server) CountRecords(w http.ResponseWriter, r *http.Request) {
	activeOnly := r.URL.Query().Get("active") == "true"

	count, err := s.records.Count(r.Context(), r.URL.Query().Get("q"), activeOnly)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]int{"count": count})
}

// MatchRecords handles POST /api/v1/records/match.
func (s *Server) MatchRecords(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Value    float64  `json:"value"`
		Products []string `json:"products"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	entries, err := s.matcher.Match(r.Context(), req.Value, req.Products)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	results := make([]matchResultItem, len(entries))
	for i, e := range entries {
		results[i] = matchResultItem{RowNumber: e.Rank, RecordID: e.RecordID, TotalValue: e.Value}
	}
	writeJSON(w, http.StatusOK, matchResponse{Results: results, NumberOfResults: len(results)})
}

// IntersectCategories handles POST /api/v1/records/categories/intersect.
func (s *Server) IntersectCategories(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Categories []string `json:"categories"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	entries, err := s.matcher.IntersectCategories(r.Context(), req.Categories)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	results := make([]intersectResultItem, len(entries))
	for i, e := range entries {
		results[i] = intersectResultItem{RowNumber: e.Rank, RecordID: e.RecordID}
	}
	writeJSON(w, http.StatusOK, intersectResponse{Results: results, NumberOfResults: len(results)})
}

// CreateTagging handles POST /api/v1/records/{id}/taggings.
func (s *Server) CreateTagging(w http.ResponseWriter, r *http.Request) {
	recordID, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "record id must be a positive integer")
		return
	}

	var req struct {
		Product  string `json:"product"`
		Category string `json:"category"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	tg, err := s.taggings.Create(r.Context(), recordID, req.Product, req.Category)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, taggingToResponse(tg))
}

// ListTaggings handles GET /api/v1/taggings.
func (s *Server) ListTaggings(w http.ResponseWriter, r *http.Request) {
	recordID, ok := uintQuery(w, r, "record_id")
	if !ok {
		return
	}
	if recordID == 0 {
		writeError(w, http.StatusBadRequest, codeBadRequest, "record_id query parameter is required")
		return
	}
	cursor, ok := int64Query(w, r, "cursor")
	if !ok {
		return
	}
	limit, ok := intQuery(w, r, "limit")
	if !ok {
		return
	}

	page, err := s.taggings.List(r.Context(), recordID, cursor, limit)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	taggings := make([]taggingResponse, len(page.Taggings))
	for i, tg := range page.Taggings {
		taggings[i] = taggingToResponse(tg)
	}

	resp := taggingListResponse{Taggings: taggings}
	if page.NextCursor != 0 {
		c := page.NextCursor
		resp.NextCursor = &c
	}
	writeJSON(w, http.StatusOK, resp)
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, map[string]any{
		"status": report.Status,
		"checks": report.Checks,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

func recordToResponse(rec domrec.Record) recordResponse {
	return recordResponse{
		ID:          rec.ID(),
		Name:        rec.Name(),
		Description: rec.Description(),
		TotalValue:  rec.TotalValue(),
		Price:       rec.Price(),
		Active:      rec.Active(),
		CreatedAt:   time.UnixMilli(rec.CreatedAt()).UTC(),
	}
}

func taggingToResponse(tg domtag.Tagging) taggingResponse {
	return taggingResponse{
		ID:        tg.ID(),
		RecordID:  tg.RecordID(),
		Product:   tg.Product(),
		Category:  tg.Category(),
		CreatedAt: time.UnixMilli(tg.CreatedAt()).UTC(),
	}
}

// decodeBody strictly decodes a JSON request body. Writes a 400 and returns
// false when the body is malformed or carries unknown fields.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "invalid request body: "+err.Error())
		return false
	}
	return true
}

func uintQuery(w http.ResponseWriter, r *http.Request, name string) (uint64, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, true
	}
	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, name+" must be a non-negative integer")
		return 0, false
	}
	return v, true
}

func int64Query(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, true
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, name+" must be an integer")
		return 0, false
	}
	return v, true
}

func intQuery(w http.ResponseWriter, r *http.Request, name string) (int, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, true
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, name+" must be an integer")
		return 0, false
	}
	return v, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{Code: code, Message: message})
}

// validationHandler handles ErrValidation, listing every violation found.
func validationHandler(w http.ResponseWriter, err error) bool {
	if !errors.Is(err, domain.ErrValidation) {
		return false
	}
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		writeJSON(w, http.StatusBadRequest, errorResponse{
			Code:       codeValidationFailed,
			Message:    domain.ErrValidation.Error(),
			Violations: ve.Violations,
		})
		return true
	}
	writeError(w, http.StatusBadRequest, codeValidationFailed, domain.ErrValidation.Error())
	return true
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code string) errorHandler {
	return func(w http.ResponseWriter, err error) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, sentinel.Error())
		return true
	}
}

func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	for _, h := range s.errorHandlers {
		if h(w, err) {
			s.logger.Warn("domain error", zap.Error(err))
			return
		}
	}
	s.logger.Error("upstream error", zap.Error(err))
	writeError(w, http.StatusBadGateway, codeUpstreamError, err.Error())
}
