package httpimpl

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dashbook/dashbook/services/asset/repository"
	"github.com/dashbook/dashbook/ulogger"
	"github.com/dashbook/dashbook/util/test"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

// GetMockHTTP returns a handler over a mock repository and an echo context for target.
func GetMockHTTP(t *testing.T, target string) (*HTTP, *repository.Mock, echo.Context, *httptest.ResponseRecorder) {
	t.Helper()

	initPrometheusMetrics()

	mockRepo := &repository.Mock{}

	req := httptest.NewRequest(http.MethodGet, target, nil)
	req.RemoteAddr = "192.0.2.1:4711"

	rec := httptest.NewRecorder()

	e := echo.New()
	c := e.NewContext(req, rec)

	httpServer := &HTTP{
		logger:     ulogger.TestLogger{},
		settings:   test.CreateBaseTestSettings(),
		repository: mockRepo,
		e:          e,
		startTime:  time.Now(),
	}

	return httpServer, mockRepo, c, rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) errorResponse {
	t.Helper()

	var resp errorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	return resp
}
