package router

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"todoapi/internal/config"
	"todoapi/internal/handler"
	"todoapi/internal/metrics"
	"todoapi/internal/model"
	"todoapi/internal/service"
)

type okPinger struct{}

func (okPinger) Ping(context.Context) error { return nil }

type emptyTodos struct{}

func (emptyTodos) List(context.Context, string) ([]model.Todo, error) { return []model.Todo{}, nil }
func (emptyTodos) Add(context.Context, service.AddTodoInput) (*model.Todo, error) {
	return &model.Todo{ID: "t1"}, nil
}
func (emptyTodos) Toggle(context.Context, string, string) (*model.Todo, error) {
	return &model.Todo{}, nil
}
func (emptyTodos) Remove(context.Context, string, string) error { return nil }

func newRouter(t *testing.T) *echo.Echo {
	t.Helper()
	e := echo.New()
	cfg := &config.Config{AllowedOrigins: []string{"http://app.test"}, ListCacheTTL: time.Minute}
	Register(e, cfg, metrics.New(),
		handler.NewAccountHandler(nil),
		handler.NewTodoHandler(emptyTodos{}),
		handler.NewHealthHandler(okPinger{}),
	)
	return e
}

func TestRegister_RoutesAndRequestID(t *testing.T) {
	e := newRouter(t)

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/get_list?userId=u1", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, rec.Header().Get(echo.HeaderXRequestID), 36)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, true, body["success"])
}

func TestRegister_MethodNotAllowedUsesEnvelope(t *testing.T) {
	e := newRouter(t)

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/add_list", nil))

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Contains(t, rec.Body.String(), `"success":false`)
	assert.Contains(t, rec.Body.String(), `"code":405`)
}

func TestRegister_CORS(t *testing.T) {
	e := newRouter(t)

	req := httptest.NewRequest(http.MethodOptions, "/add_list", nil)
	req.Header.Set("Origin", "http://app.test")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, "http://app.test", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestRegister_Metrics(t *testing.T) {
	e := newRouter(t)
	e.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/healthz", nil))

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), `path="/healthz"`))
}
