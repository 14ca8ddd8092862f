package metrics

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics(t *testing.T) {
	m := New()

	m.RecordItem("success", 2*time.Second)
	m.RecordItem("failed", time.Second)
	m.RecordItem("success", 3*time.Second)
	m.RecordScript("composed")
	m.RecordSegment()
	m.RecordSegment()
	m.CacheLookup(true)
	m.CacheLookup(false)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.ItemsProcessed.WithLabelValues("success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ItemsProcessed.WithLabelValues("failed")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ScriptsGenerated.WithLabelValues("composed")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.SegmentsSynthesized))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CacheLookups.WithLabelValues("hit")))

	path := filepath.Join(t.TempDir(), "demo.prom")
	require.NoError(t, m.WriteTextfile(path))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `demo_items_processed_total{status="success"} 2`)
}

func TestNewRegistriesAreIndependent(t *testing.T) {
	a, b := New(), New()
	a.RecordSegment()
	assert.Equal(t, 0.0, testutil.ToFloat64(b.SegmentsSynthesized))
}
