package metrics

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPMetricsMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	newRouter := func(t *testing.T) (*Provider, *gin.Engine) {
		provider, err := NewProvider("test_app")
		require.NoError(t, err)
		t.Cleanup(func() {
			assert.NoError(t, provider.Shutdown(context.Background()))
		})

		router := gin.New()
		router.Use(HTTPMetricsMiddleware(provider.MeterProvider(), "test_app"))
		router.GET("/v1/recipes/:name", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"name": c.Param("name")})
		})
		router.POST("/v1/recipes/:name/hash", func(c *gin.Context) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "validation_error"})
		})
		return provider, router
	}

	serve := func(router *gin.Engine, method, path string) {
		router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(method, path, nil))
	}

	t.Run("Success_LabelsUseRoutePattern", func(t *testing.T) {
		provider, router := newRouter(t)

		serve(router, http.MethodGet, "/v1/recipes/login")
		serve(router, http.MethodGet, "/v1/recipes/backup")

		output := scrape(t, provider)
		assertBizMetricLine(t, output, "test_app_http_requests_total",
			`method="GET"[^}]*path="/v1/recipes/:name"[^}]*status_code="200"`, "2")
		assert.False(t, strings.Contains(output, "backup"))
	})

	t.Run("Success_RecordsErrorStatus", func(t *testing.T) {
		provider, router := newRouter(t)

		serve(router, http.MethodPost, "/v1/recipes/login/hash")

		output := scrape(t, provider)
		assertBizMetricLine(t, output, "test_app_http_requests_total",
			`path="/v1/recipes/:name/hash"[^}]*status_code="422"`, "1")
		assertBizMetricLine(t, output, "test_app_http_request_duration_seconds_count",
			`method="POST"`, "1")
	})

	t.Run("Success_UnmatchedRoute", func(t *testing.T) {
		provider, router := newRouter(t)

		serve(router, http.MethodGet, "/nowhere")

		assertBizMetricLine(t, scrape(t, provider), "test_app_http_requests_total",
			`path="unknown"[^}]*status_code="404"`, "1")
	})
}

func TestRoutePattern(t *testing.T) {
	assert.Equal(t, "unknown", routePattern(""))
	assert.Equal(t, "/health", routePattern("/health"))
}
