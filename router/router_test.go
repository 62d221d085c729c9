package router

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/soxlite/api/controller"
	mock_service "github.com/soxlite/api/test/service_mock"
	"github.com/soxlite/api/util"
)

func TestSetupRouter(t *testing.T) {
	gin.SetMode(gin.TestMode)
	ctrl := gomock.NewController(t)
	controllers := &controller.Controllers{
		Scan: controller.NewScanController(mock_service.NewMockIScanService(ctrl), util.NewValidationUtil(1)),
	}

	r := SetupRouter(controllers, Options{RateLimitRequests: 10, RateLimitWindow: time.Minute, RequestTimeout: time.Second, MaxUploadBytes: 1 << 20})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/healthz", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/policies", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}
