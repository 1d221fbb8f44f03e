package metrics

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorder(t *testing.T) {
	m := New()

	m.RunStarted()
	assert.InDelta(t, 1, testutil.ToFloat64(m.ActiveDownloads), 0)

	m.AttemptFinished("network", 2*time.Second)
	m.AttemptFinished("success", time.Second)
	m.BytesTransferred(1500)
	m.BytesTransferred(-3)
	m.RunFinished("success", 3*time.Second)

	assert.InDelta(t, 0, testutil.ToFloat64(m.ActiveDownloads), 0)
	assert.InDelta(t, 1500, testutil.ToFloat64(m.Bytes), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.Attempts.WithLabelValues("network")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.Attempts.WithLabelValues("success")), 0)

	expectedRuns := `# HELP mirrorget_download_runs_total Finished download runs by outcome.
# TYPE mirrorget_download_runs_total counter
mirrorget_download_runs_total{outcome="success"} 1
`
	require.NoError(t, testutil.CollectAndCompare(m.Runs, strings.NewReader(expectedRuns)))
	assert.Equal(t, 1, testutil.CollectAndCount(m.RunDuration))
}

func TestWriteTextfile(t *testing.T) {
	m := New()
	m.AttemptFinished("http status", time.Millisecond)

	path := filepath.Join(t.TempDir(), "mirrorget.prom")
	require.NoError(t, m.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `mirrorget_mirror_attempts_total{result="http status"} 1`)
}
