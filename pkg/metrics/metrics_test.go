package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestObserveStats(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.ObserveStats(3, map[string]int64{"development": 2, "staging": 1}, map[string]int64{"sklearn": 3})
	assert.Equal(t, 3.0, testutil.ToFloat64(m.modelsTotal))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.modelsByStatus.WithLabelValues("development")))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.modelsByFramework.WithLabelValues("sklearn")))

	m.ObserveStats(1, map[string]int64{"production": 1}, map[string]int64{"onnx": 1})
	assert.Equal(t, 1, testutil.CollectAndCount(m.modelsByStatus))
	assert.Equal(t, 1, testutil.CollectAndCount(m.modelsByFramework))
}

func TestMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := New(prometheus.NewRegistry())

	r := gin.New()
	r.Use(m.Middleware())
	r.GET("/models/:id", func(c *gin.Context) { c.Status(http.StatusNotFound) })

	for i := 0; i < 2; i++ {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/models/abc", nil))
	}
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/nowhere", nil))

	assert.Equal(t, 2.0, testutil.ToFloat64(m.requests.WithLabelValues("GET", "/models/:id", "404")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.requests.WithLabelValues("GET", "unmatched", "404")))
}
