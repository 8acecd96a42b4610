package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"report-service/internal/auth"
	"report-service/internal/http/middleware"
	"report-service/internal/model"
	"report-service/internal/service"
)

const testSecret = "test-access-secret"

type stubReportStore struct {
	mu      sync.Mutex
	reports map[uuid.UUID]model.Report
}

func newStubReportStore() *stubReportStore {
	return &stubReportStore{reports: make(map[uuid.UUID]model.Report)}
}

func (s *stubReportStore) Create(ctx context.Context, report *model.Report) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reports[report.ID] = *report
	return nil
}

func (s *stubReportStore) GetByID(ctx context.Context, id uuid.UUID) (*model.Report, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	report, ok := s.reports[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copy := report
	return &copy, nil
}

func (s *stubReportStore) GetByComplaintID(ctx context.Context, complaintID string) (*model.Report, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, report := range s.reports {
		if report.ComplaintID == complaintID {
			copy := report
			return &copy, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubReportStore) List(ctx context.Context, filter model.ReportFilter) ([]model.Report, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.Report
	for _, report := range s.reports {
		if filter.AssignedTo != nil {
			if report.AssignedTo == nil || *report.AssignedTo != *filter.AssignedTo {
				continue
			}
		}
		out = append(out, report)
	}
	return out, nil
}

func (s *stubReportStore) UpdateAssignment(ctx context.Context, id uuid.UUID, workerID *uuid.UUID, status model.ReportStatus, resolvedAt *time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	report, ok := s.reports[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	report.AssignedTo = workerID
	report.Status = status
	report.ResolvedAt = resolvedAt
	report.UpdatedAt = time.Now()
	s.reports[id] = report
	return nil
}

func (s *stubReportStore) UpdateStatus(ctx context.Context, id uuid.UUID, status model.ReportStatus, resolvedAt *time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	report, ok := s.reports[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	report.Status = status
	report.ResolvedAt = resolvedAt
	report.UpdatedAt = time.Now()
	s.reports[id] = report
	return nil
}

func (s *stubReportStore) UpdateWorkImages(ctx context.Context, id uuid.UUID, beforeURL, afterURL *string) error {
	return nil
}

func (s *stubReportStore) CountByStatus(ctx context.Context) (model.ReportStats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var stats model.ReportStats
	for _, report := range s.reports {
		stats.Total++
		switch report.Status {
		case model.ReportStatusPending:
			stats.Pending++
		case model.ReportStatusInProgress:
			stats.InProgress++
		case model.ReportStatusResolved:
			stats.Resolved++
		}
	}
	return stats, nil
}

func (s *stubReportStore) LogStatusChange(ctx context.Context, entry *model.ReportStatusLog) error {
	return nil
}

type stubSequenceStore struct {
	mu     sync.Mutex
	values map[int]int64
}

func (s *stubSequenceStore) NextValue(ctx context.Context, year int) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.values == nil {
		s.values = make(map[int]int64)
	}
	s.values[year]++
	return s.values[year], nil
}

type stubWorkerStore struct {
	workers map[uuid.UUID]model.WorkerProfile
}

func (s *stubWorkerStore) ListWorkers(ctx context.Context) ([]model.WorkerProfile, error) {
	out := make([]model.WorkerProfile, 0, len(s.workers))
	for _, w := range s.workers {
		out = append(out, w)
	}
	return out, nil
}

func (s *stubWorkerStore) GetWorker(ctx context.Context, userID uuid.UUID) (*model.WorkerProfile, error) {
	worker, ok := s.workers[userID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &worker, nil
}

type nopNotifier struct{}

func (nopNotifier) Send(ctx context.Context, n model.Notification) error { return nil }

func newTestRouter(t *testing.T, workers map[uuid.UUID]model.WorkerProfile) (*gin.Engine, *stubReportStore) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := newStubReportStore()
	svc := service.NewReportService(store, &stubSequenceStore{}, &stubWorkerStore{workers: workers}, nopNotifier{}, zerolog.Nop())
	handler := NewHandler(svc, zerolog.Nop())
	parser := auth.NewParser(testSecret)
	return NewRouter(handler, middleware.Auth(parser), "test"), store
}

func signToken(t *testing.T, userID uuid.UUID, role model.UserRole) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &auth.Claims{
		UserID: userID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	signed, err := token.SignedString([]byte(testSecret))
	require.NoError(t, err)
	return signed
}

func doJSON(router *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func validReportBody() map[string]interface{} {
	return map[string]interface{}{
		"reporter_name":  "Rajesh Kumar",
		"reporter_phone": "9876543210",
		"reporter_email": "rajesh@example.com",
		"damage_type":    "pothole",
		"severity":       "critical",
		"location":       "MG Road, Near City Mall",
		"ward":           "ward-12",
		"description":    "Large pothole blocking the left lane",
	}
}

func TestCreateReportEndpoint(t *testing.T) {
	router, _ := newTestRouter(t, nil)

	rec := doJSON(router, http.MethodPost, "/api/v1/reports", "", validReportBody())
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var resp struct {
		Data struct {
			ComplaintID string `json:"complaint_id"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Regexp(t, `^SMC-\d{4}-\d{6}$`, resp.Data.ComplaintID)
}

func TestCreateReportEndpointRejectsBadPhone(t *testing.T) {
	router, _ := newTestRouter(t, nil)

	body := validReportBody()
	body["reporter_phone"] = "12345"
	rec := doJSON(router, http.MethodPost, "/api/v1/reports", "", body)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestTrackEndpointHidesReporterContact(t *testing.T) {
	router, _ := newTestRouter(t, nil)

	rec := doJSON(router, http.MethodPost, "/api/v1/reports", "", validReportBody())
	require.Equal(t, http.StatusCreated, rec.Code)

	var created struct {
		Data struct {
			ComplaintID string `json:"complaint_id"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))

	rec = doJSON(router, http.MethodGet, "/api/v1/track/"+created.Data.ComplaintID, "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.NotContains(t, body, "9876543210")
	assert.NotContains(t, body, "rajesh@example.com")
	assert.Contains(t, body, "Rajesh Kumar")

	var tracked struct {
		Data model.TrackedReport `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &tracked))
	assert.Len(t, tracked.Data.Timeline, 4)
}

func TestTrackEndpointNotFound(t *testing.T) {
	router, _ := newTestRouter(t, nil)

	rec := doJSON(router, http.MethodGet, "/api/v1/track/SMC-2026-999999", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestStaffEndpointsRequireToken(t *testing.T) {
	router, _ := newTestRouter(t, nil)

	rec := doJSON(router, http.MethodGet, "/api/v1/reports", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doJSON(router, http.MethodPut, "/api/v1/reports/"+uuid.NewString()+"/status", "", map[string]string{"status": "resolved"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAssignEndpointPromotesReport(t *testing.T) {
	workerID := uuid.New()
	router, store := newTestRouter(t, map[uuid.UUID]model.WorkerProfile{
		workerID: {UserID: workerID, FullName: "Team Alpha", Email: "alpha@smc.gov.in"},
	})

	rec := doJSON(router, http.MethodPost, "/api/v1/reports", "", validReportBody())
	require.Equal(t, http.StatusCreated, rec.Code)

	var reportID uuid.UUID
	for id := range store.reports {
		reportID = id
	}

	adminToken := signToken(t, uuid.New(), model.UserRoleAdmin)
	workerStr := workerID.String()
	rec = doJSON(router, http.MethodPut, "/api/v1/reports/"+reportID.String()+"/assignee", adminToken, map[string]interface{}{"worker_id": workerStr})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp struct {
		Data model.Report `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, model.ReportStatusInProgress, resp.Data.Status)
	require.NotNil(t, resp.Data.AssignedTo)
	assert.Equal(t, workerID, *resp.Data.AssignedTo)
}

func TestStatusEndpointForbiddenForUnassignedWorker(t *testing.T) {
	router, store := newTestRouter(t, nil)

	rec := doJSON(router, http.MethodPost, "/api/v1/reports", "", validReportBody())
	require.Equal(t, http.StatusCreated, rec.Code)

	var reportID uuid.UUID
	for id := range store.reports {
		reportID = id
	}

	workerToken := signToken(t, uuid.New(), model.UserRoleWorker)
	rec = doJSON(router, http.MethodPut, "/api/v1/reports/"+reportID.String()+"/status", workerToken, map[string]string{"status": "resolved"})
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestStatsEndpoint(t *testing.T) {
	router, _ := newTestRouter(t, nil)

	rec := doJSON(router, http.MethodPost, "/api/v1/reports", "", validReportBody())
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(router, http.MethodGet, "/api/v1/stats", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Data model.ReportStats `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, int64(1), resp.Data.Total)
	assert.Equal(t, int64(1), resp.Data.Pending)
}
