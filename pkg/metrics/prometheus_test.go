package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrometheus_RecordsRouteTemplate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	reg := prometheus.NewRegistry()
	p := NewPrometheus(NewPrometheusOptions{
		Subsystem: Subsystem,
		Registry:  reg,
		ReqCntURLLabelMappingFn: func(c *gin.Context) string {
			return c.FullPath()
		},
	})

	r := gin.New()
	p.Use(r)
	r.GET("/orders/:id", func(c *gin.Context) { c.String(http.StatusOK, "ok") })

	for _, path := range []string{"/orders/1", "/orders/2", "/metrics"} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		require.Equal(t, http.StatusOK, w.Code)
	}

	assert.Equal(t, 2.0, testutil.ToFloat64(p.reqCnt.WithLabelValues("200", "GET", "/orders/:id", "")))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.True(t, strings.Contains(w.Body.String(), "combo_req_total"))
}

func TestNewMetric(t *testing.T) {
	assert.Nil(t, NewMetric(&Metric{Name: "x", Type: "unknown"}, Subsystem))

	h, ok := NewMetric(MetricsBusinessProcess, Subsystem).(*prometheus.HistogramVec)
	require.True(t, ok)
	h.WithLabelValues("llm", "section").Observe(1200)

	reg := prometheus.NewRegistry()
	require.NoError(t, reg.Register(h))
	mfs, err := reg.Gather()
	require.NoError(t, err)
	require.Len(t, mfs, 1)
	buckets := mfs[0].GetMetric()[0].GetHistogram().GetBucket()
	assert.Len(t, buckets, len(HistogramBuckets))
}
