package controller_test

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/soxlite/api/audit"
	"github.com/soxlite/api/controller"
	soxlite_errors "github.com/soxlite/api/errors"
	"github.com/soxlite/api/model"
	"github.com/soxlite/api/service"
	mock_service "github.com/soxlite/api/test/service_mock"
	"github.com/soxlite/api/util"
)

func setupRouter(t *testing.T) (*gin.Engine, *mock_service.MockIScanService) {
	gin.SetMode(gin.TestMode)
	ctrl := gomock.NewController(t)
	mockScanService := mock_service.NewMockIScanService(ctrl)

	r := gin.New()
	controller.NewScanController(mockScanService, util.NewValidationUtil(1)).RegisterRoutes(r.Group("/api/v1"))
	return r, mockScanService
}

func uploadRequest(t *testing.T, path, fileName, content string, fields map[string]string) *http.Request {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	if fileName != "" {
		part, err := w.CreateFormFile("file", fileName)
		require.NoError(t, err)
		_, err = part.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, path, &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func TestScanController(t *testing.T) {
	router, mockScanService := setupRouter(t)

	t.Run("DetectAnomalies_DefaultsToSOX", func(t *testing.T) {
		mockScanService.EXPECT().
			DetectAnomalies(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, u service.Upload) (*model.Report, error) {
				assert.Equal(t, model.FrameworkSOX, u.Framework)
				assert.Equal(t, "controls.csv", u.FileName)
				assert.Equal(t, "a,b\n1,2\n", string(u.Data))
				return &model.Report{
					ScanID:    "s1",
					Framework: model.FrameworkSOX,
					Findings:  []model.Finding{{Text: "1 control(s) are overdue.", AffectedCount: 1, Severity: model.SeverityAnomaly}},
				}, nil
			})

		w := httptest.NewRecorder()
		router.ServeHTTP(w, uploadRequest(t, "/api/v1/anomalies", "controls.csv", "a,b\n1,2\n", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		body := decode(t, w)
		assert.Equal(t, "sox", body["framework"])
		assert.Equal(t, []interface{}{"1 control(s) are overdue."}, body["anomalies"])
	})

	t.Run("DetectAnomalies_UnknownMode", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, uploadRequest(t, "/api/v1/anomalies", "controls.csv", "a\n1\n", map[string]string{"mode": "pci"}))
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("DetectAnomalies_MissingFile", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, uploadRequest(t, "/api/v1/anomalies", "", "", map[string]string{"mode": "esg"}))
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("DetectAnomalies_UnsupportedFormat", func(t *testing.T) {
		mockScanService.EXPECT().
			DetectAnomalies(gomock.Any(), gomock.Any()).
			Return(nil, soxlite_errors.ErrUnsupportedFileFormat)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, uploadRequest(t, "/api/v1/anomalies", "controls.pdf", "x", nil))
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("DetectAnomalies_TooLarge", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, uploadRequest(t, "/api/v1/anomalies", "big.csv", strings.Repeat("x", 1<<20+10), nil))
		assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	})

	t.Run("DetectAlerts_ReportsDispatch", func(t *testing.T) {
		mockScanService.EXPECT().
			DetectAlerts(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, u service.Upload) (*model.Report, error) {
				assert.Equal(t, model.FrameworkSOC2, u.Framework)
				return &model.Report{
					Framework:  model.FrameworkSOC2,
					Tier:       model.TierAlert,
					Findings:   []model.Finding{{Text: "Missing controls for Trust Service Criteria: DC, AI, SL", Severity: model.SeverityAlert}},
					Dispatched: true,
				}, nil
			})

		w := httptest.NewRecorder()
		router.ServeHTTP(w, uploadRequest(t, "/api/v1/alerts", "soc2.csv", "a\n1\n", map[string]string{"mode": "soc2"}))

		assert.Equal(t, http.StatusOK, w.Code)
		body := decode(t, w)
		assert.Equal(t, true, body["dispatched"])
		assert.Equal(t, []interface{}{"Missing controls for Trust Service Criteria: DC, AI, SL"}, body["alerts"])
	})

	t.Run("NotifyAlerts_Sent", func(t *testing.T) {
		mockScanService.EXPECT().
			SendAlerts(gomock.Any(), model.FrameworkESG, []string{"a"}).
			Return(nil)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/v1/alerts/notify", strings.NewReader(`{"alerts":["a"],"mode":"esg"}`))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "sent", decode(t, w)["status"])
	})

	t.Run("NotifyAlerts_Empty", func(t *testing.T) {
		mockScanService.EXPECT().
			SendAlerts(gomock.Any(), model.FrameworkSOX, gomock.Any()).
			Return(soxlite_errors.ErrNoAlerts)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/v1/alerts/notify", strings.NewReader(`{"alerts":[]}`))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "no alerts to send", decode(t, w)["status"])
	})

	t.Run("NotifyAlerts_Failure", func(t *testing.T) {
		mockScanService.EXPECT().
			SendAlerts(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(soxlite_errors.ErrNotificationFailed)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/v1/alerts/notify", strings.NewReader(`{"alerts":["x"]}`))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadGateway, w.Code)
	})

	t.Run("NotifyAlerts_NotConfigured", func(t *testing.T) {
		mockScanService.EXPECT().
			SendAlerts(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(soxlite_errors.ErrNotifierNotConfigured)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/v1/alerts/notify", strings.NewReader(`{"alerts":["x"]}`))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	})

	t.Run("ComputeMetrics", func(t *testing.T) {
		mockScanService.EXPECT().
			ComputeMetrics(gomock.Any(), gomock.Any()).
			Return(model.MetricsSnapshot{TotalRows: 4, CompositeScore: 75}, nil)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, uploadRequest(t, "/api/v1/metrics", "c.csv", "a\n1\n", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		metrics := decode(t, w)["metrics"].(map[string]interface{})
		assert.Equal(t, 4.0, metrics["total_rows"])
		assert.Equal(t, 75.0, metrics["composite_score"])
		assert.NotContains(t, metrics, "missing_evidence_pct")
	})

	t.Run("Heatmap", func(t *testing.T) {
		mockScanService.EXPECT().
			Heatmap(gomock.Any(), gomock.Any()).
			Return(model.Heatmap{Rows: "No Data", Columns: "No Categories", Cells: map[string]map[string]int{"No Data": {"No Categories": 0}}}, nil)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, uploadRequest(t, "/api/v1/analytics/heatmap", "c.csv", "a\n1\n", map[string]string{"mode": "iso27001"}))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, decode(t, w), "heatmap")
	})

	t.Run("Trends", func(t *testing.T) {
		mockScanService.EXPECT().
			Trends(gomock.Any(), gomock.Any()).
			Return(model.Trends{OverdueByMonth: map[string]int{"2030-01": 2}}, nil)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, uploadRequest(t, "/api/v1/analytics/trends", "c.csv", "a\n1\n", nil))

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("OwnerPerformance", func(t *testing.T) {
		mockScanService.EXPECT().
			OwnerPerformance(gomock.Any(), gomock.Any()).
			Return(map[string]model.OwnerStats{"alice": {Total: 2, Failed: 1}}, nil)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, uploadRequest(t, "/api/v1/analytics/owner-performance", "c.csv", "a\n1\n", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, decode(t, w), "owner_performance")
	})

	t.Run("ListScans", func(t *testing.T) {
		mockScanService.EXPECT().
			ListScans(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, q audit.ScanQuery) ([]audit.ScanRecord, error) {
				assert.Equal(t, model.FrameworkSOX, q.Framework)
				assert.Equal(t, 2030, q.From.Year())
				return []audit.ScanRecord{{ScanID: "a"}}, nil
			})

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/scans?from=2030-01-01&to=2030-02-01&framework=sox", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, 1.0, decode(t, w)["count"])
	})

	t.Run("ListScans_AuditDisabled", func(t *testing.T) {
		mockScanService.EXPECT().
			ListScans(gomock.Any(), gomock.Any()).
			Return(nil, soxlite_errors.ErrAuditUnavailable)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/scans", nil))
		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	})

	t.Run("ListScans_BadDate", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/scans?from=yesterday-ish", nil))
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("ListFrameworks", func(t *testing.T) {
		mockScanService.EXPECT().
			Catalog().
			Return(map[model.Framework][]model.RuleDescriptor{
				model.FrameworkSOX: {{ID: "sox.overdue", Severity: model.SeverityAnomaly}},
			})

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/frameworks", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		frameworks := decode(t, w)["frameworks"].([]interface{})
		assert.Len(t, frameworks, 4)
	})

	t.Run("Health", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/healthz", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	})
}
