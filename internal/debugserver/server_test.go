package debugserver

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vango-dev/netsync/pkg/telemetry"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestMetricsEndpoint(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := telemetry.NewMetrics(telemetry.WithRegistry(reg))
	m.RecordFrame(telemetry.ChannelUnreliable)
	m.RecordDeltaRejected()

	s := New(Config{Gatherer: reg, Logger: quietLogger()})
	rec := get(t, s.Handler(), "/metrics")

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `netsync_client_frames_received_total{channel="unreliable"} 1`)
	assert.Contains(t, body, "netsync_client_deltas_rejected_total 1")
}

func TestNetstatsEndpoint(t *testing.T) {
	type stats struct {
		ClientID string  `json:"client_id"`
		RTTMs    float64 `json:"rtt_ms"`
	}
	s := New(Config{
		Gatherer: prometheus.NewRegistry(),
		Stats:    func() any { return stats{ClientID: "p1", RTTMs: 42.5} },
		Logger:   quietLogger(),
	})

	rec := get(t, s.Handler(), "/debug/netstats")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var got stats
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, stats{ClientID: "p1", RTTMs: 42.5}, got)
}

func TestNetstatsWithoutSource(t *testing.T) {
	s := New(Config{Gatherer: prometheus.NewRegistry(), Logger: quietLogger()})
	assert.Equal(t, http.StatusNotFound, get(t, s.Handler(), "/debug/netstats").Code)
}

func TestHealthz(t *testing.T) {
	var healthy atomic.Bool
	healthy.Store(true)
	s := New(Config{
		Gatherer: prometheus.NewRegistry(),
		Healthy:  healthy.Load,
		Logger:   quietLogger(),
	})

	rec := get(t, s.Handler(), "/healthz")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok\n", rec.Body.String())

	healthy.Store(false)
	rec = get(t, s.Handler(), "/healthz")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestUnknownRoute(t *testing.T) {
	s := New(Config{Gatherer: prometheus.NewRegistry(), Logger: quietLogger()})
	assert.Equal(t, http.StatusNotFound, get(t, s.Handler(), "/nope").Code)

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/healthz", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestServeAndShutdown(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	s := New(Config{Gatherer: prometheus.NewRegistry(), Logger: quietLogger()})
	ctx, cancel := context.WithCancel(context.Background())
	errc := make(chan error, 1)
	go func() { errc <- s.Serve(ctx, ln) }()

	resp, err := http.Get("http://" + ln.Addr().String() + "/healthz")
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Equal(t, "ok", strings.TrimSpace(string(body)))

	cancel()
	select {
	case err := <-errc:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Serve did not return after cancel")
	}
}
