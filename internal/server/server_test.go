package server

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/inetmap/cmd/application"
	"github.com/agentstation/inetmap/internal/cache"
	mockapp "github.com/agentstation/inetmap/internal/cmd/application"
	"github.com/agentstation/inetmap/pkg/boundary"
	"github.com/agentstation/inetmap/pkg/prepare"
	"github.com/agentstation/inetmap/pkg/reconciler"
)

func newTestServer(t *testing.T, cfg Config) *Server {
	t.Helper()
	app := &mockapp.Mock{
		PrepareFunc: func(_ context.Context, req prepare.Request) (*reconciler.Result, error) {
			return &reconciler.Result{
				Year:       2016,
				Tier:       reconciler.TierBestCoverage,
				Threshold:  req.Threshold,
				Boundaries: boundary.Collection{{ISOA3: "FRA", AdminName: "France"}},
			}, nil
		},
	}
	srv, err := New(app, cfg)
	require.NoError(t, err)
	return srv
}

func TestRoutes(t *testing.T) {
	ts := httptest.NewServer(newTestServer(t, DefaultConfig()).Handler())
	defer ts.Close()

	tests := []struct {
		method string
		path   string
		status int
		ctype  string
	}{
		{http.MethodGet, "/health", http.StatusOK, "application/json"},
		{http.MethodGet, "/api/v1/health", http.StatusOK, "application/json"},
		{http.MethodGet, "/", http.StatusOK, "text/html; charset=utf-8"},
		{http.MethodGet, "/map.svg", http.StatusOK, "image/svg+xml"},
		{http.MethodGet, "/map.png", http.StatusOK, "image/png"},
		{http.MethodGet, "/api/v1/coverage", http.StatusOK, "application/json"},
		{http.MethodGet, "/api/v1/records", http.StatusOK, "application/json"},
		{http.MethodGet, "/metrics", http.StatusOK, "text/plain; version=0.0.4; charset=utf-8"},
		{http.MethodGet, "/favicon.ico", http.StatusNoContent, ""},
		{http.MethodGet, "/missing", http.StatusNotFound, ""},
		{http.MethodPost, "/map.svg", http.StatusMethodNotAllowed, ""},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			req, err := http.NewRequest(tt.method, ts.URL+tt.path, nil)
			require.NoError(t, err)
			resp, err := http.DefaultClient.Do(req)
			require.NoError(t, err)
			defer resp.Body.Close()

			assert.Equal(t, tt.status, resp.StatusCode)
			if tt.ctype != "" {
				assert.Equal(t, tt.ctype, resp.Header.Get("Content-Type"))
			}
		})
	}
}

func TestCORSEnabled(t *testing.T) {
	cfg := DefaultConfig()
	cfg.CORSEnabled = true
	ts := httptest.NewServer(newTestServer(t, cfg).Handler())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/api/v1/coverage")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
}

func TestListenAndServeShutsDown(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Host = "127.0.0.1"
	cfg.Port = 0
	srv := newTestServer(t, cfg)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- srv.ListenAndServe(ctx, time.Second)
	}()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}

func TestNewDefaultsPrefix(t *testing.T) {
	srv := newTestServer(t, Config{})
	assert.Equal(t, "/api/v1", srv.config.PathPrefix)
	assert.False(t, srv.StartTime().IsZero())
}

func TestMetricsEndpoint(t *testing.T) {
	ts := httptest.NewServer(newTestServer(t, DefaultConfig()).Handler())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/api/v1/coverage")
	require.NoError(t, err)
	resp.Body.Close()

	resp, err = http.Get(ts.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	assert.Contains(t, string(body), `inetmap_http_requests_total{route="GET /api/v1/coverage",status="200"} 1`)
	assert.Contains(t, string(body), "process_")
}

type statsPreparer struct{ stats cache.Stats }

func (p statsPreparer) Prepare(context.Context, prepare.Request) (*reconciler.Result, error) {
	return nil, nil
}

func (p statsPreparer) Stats() cache.Stats { return p.stats }

type statsApp struct {
	*mockapp.Mock
	preparer statsPreparer
}

func (a statsApp) Preparer() application.Preparer { return a.preparer }

func TestCacheGauges(t *testing.T) {
	app := statsApp{
		Mock:     &mockapp.Mock{},
		preparer: statsPreparer{stats: cache.Stats{ItemCount: 2, Hits: 5, Misses: 3}},
	}
	srv, err := New(app, DefaultConfig())
	require.NoError(t, err)

	var buf bytes.Buffer
	srv.Metrics().WritePrometheus(&buf)
	assert.Contains(t, buf.String(), "inetmap_prepare_cache_hits 5")
	assert.Contains(t, buf.String(), "inetmap_prepare_cache_misses 3")
	assert.Contains(t, buf.String(), "inetmap_prepare_cache_items 2")
}
