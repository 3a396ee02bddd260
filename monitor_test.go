package di

import (
	"bytes"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestLogMonitor(t *testing.T) {
	buf := &bytes.Buffer{}

	m := &LogMonitor{L: zerolog.New(buf)}
	m.ChangedBehavior("counter", "cached")

	require.Contains(t, buf.String(), `"definition":"counter"`)
	require.Contains(t, buf.String(), `"behavior":"cached"`)
}

func TestMetricsMonitor(t *testing.T) {
	reg := prometheus.NewRegistry()

	m, err := NewMetricsMonitor(reg)
	require.Nil(t, err)

	m.ChangedBehavior("a", "cached")
	m.ChangedBehavior("b", "cached")
	m.ChangedBehavior("c", "goroutine-local")

	require.Equal(t, float64(2), testutil.ToFloat64(m.changes.WithLabelValues("cached")))
	require.Equal(t, float64(1), testutil.ToFloat64(m.changes.WithLabelValues("goroutine-local")))
}

func TestMetricsMonitorDuplicateRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()

	_, err := NewMetricsMonitor(reg)
	require.Nil(t, err)

	_, err = NewMetricsMonitor(reg)
	require.NotNil(t, err, "the collector can only be registered once per registry")
}

func TestZerologLogger(t *testing.T) {
	buf := &bytes.Buffer{}

	l := &ZerologLogger{L: zerolog.New(buf)}
	l.Error("close error")

	require.Contains(t, buf.String(), "close error")
}
