package metrics

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrometheusRecorder(t *testing.T) {
	reg := prom.NewRegistry()
	pr := NewPrometheusRecorder(reg)
	pr.ObserveEntryDuration(2 * time.Millisecond)
	pr.IncEntryResult(ResultRendered)
	pr.IncEntryResult(ResultRendered)
	pr.IncEntryResult(ResultFailed)
	pr.ObserveRunDuration(time.Second)
	pr.AddAssets(AssetCopied, 3)
	pr.AddAssets(AssetReused, 0)
	pr.SetWorkers(4)
	pr.SetLetterHeadings(26)

	assert.InDelta(t, 2, testutil.ToFloat64(pr.entryResults.WithLabelValues("rendered")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(pr.entryResults.WithLabelValues("failed")), 0)
	assert.InDelta(t, 3, testutil.ToFloat64(pr.assets.WithLabelValues("copied")), 0)
	assert.InDelta(t, 26, testutil.ToFloat64(pr.letterHeadings), 0)

	mfs, err := reg.Gather()
	require.NoError(t, err)
	assert.NotEmpty(t, mfs)
}

func TestNilPrometheusRecorderIsSafe(t *testing.T) {
	var pr *PrometheusRecorder
	assert.NotPanics(t, func() {
		pr.IncEntryResult(ResultEmpty)
		pr.AddAssets(AssetFailed, 1)
		pr.SetWorkers(1)
	})
}

func TestWriteTextfile(t *testing.T) {
	reg := prom.NewRegistry()
	NewPrometheusRecorder(reg).IncEntryResult(ResultRendered)

	path := filepath.Join(t.TempDir(), "lexrender.prom")
	require.NoError(t, WriteTextfile(reg, path))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `lexrender_entry_results_total{result="rendered"} 1`)
}

func TestHTTPHandler(t *testing.T) {
	reg := prom.NewRegistry()
	NewPrometheusRecorder(reg).SetWorkers(2)

	rec := httptest.NewRecorder()
	HTTPHandler(reg).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), "lexrender_render_workers 2"))
}
