package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alexiusacademia/gobeam/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const simpleBeam = `{
	"beam": {"length": 10, "e": 200, "i": 10000},
	"probe": 5,
	"supports": [{"id": "A", "type": "PINNED", "x": 0}, {"id": "B", "type": "ROLLER", "x": 10}],
	"loads": [{"type": "POINT", "magnitude": 10, "x": 5}]
}`

func newTestServer(t *testing.T, cfg config.Config) *httptest.Server {
	t.Helper()
	ts := httptest.NewServer(New(cfg, nil).Handler())
	t.Cleanup(ts.Close)
	return ts
}

func post(t *testing.T, url, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(url, "application/json", strings.NewReader(body))
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t, config.Default())
	resp, err := http.Get(ts.URL + "/api/health")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
}

func TestAnalyze(t *testing.T) {
	ts := newTestServer(t, config.Default())
	resp := post(t, ts.URL+"/api/analyze", simpleBeam)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body Response
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.NotNil(t, body.Results)
	require.Len(t, body.Results.Reactions, 2)
	assert.InDelta(t, 5, body.Results.Reactions[0].Force, 1e-6)
	assert.InDelta(t, 25, body.Results.MaxMoment.Value, 1e-6)
	assert.NotNil(t, body.Results.Influence)
}

func TestAnalyzeWithCombination(t *testing.T) {
	ts := newTestServer(t, config.Default())
	req := strings.Replace(simpleBeam, `"probe": 5,`, `"probe": 5, "combination": "1",`, 1)
	resp := post(t, ts.URL+"/api/analyze", req)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body Response
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "1.4D", body.Combination)
	assert.InDelta(t, 35, body.Results.MaxMoment.Value, 1e-6)
}

func TestAnalyzeBadRequests(t *testing.T) {
	ts := newTestServer(t, config.Default())
	tests := map[string]string{
		"malformed":        `{"beam":`,
		"invalid geometry": `{"beam": {"length": -1, "e": 200, "i": 1}}`,
		"unknown support":  `{"beam": {"length": 1, "e": 200, "i": 1}, "supports": [{"type": "SPRING"}]}`,
		"unknown combo":    strings.Replace(simpleBeam, `"probe": 5,`, `"combination": "42",`, 1),
	}
	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			resp := post(t, ts.URL+"/api/analyze", body)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
			var e errorResponse
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&e))
			assert.NotEmpty(t, e.Error)
		})
	}
}

func TestReports(t *testing.T) {
	ts := newTestServer(t, config.Default())

	resp := post(t, ts.URL+"/api/report/pdf", simpleBeam)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	var buf bytes.Buffer
	_, err := buf.ReadFrom(resp.Body)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))

	resp = post(t, ts.URL+"/api/report/xlsx", simpleBeam)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	buf.Reset()
	_, err = buf.ReadFrom(resp.Body)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("PK")), "xlsx is a zip archive")
}

func TestRateLimit(t *testing.T) {
	cfg := config.Default()
	cfg.RateLimit = 0.001
	cfg.RateBurst = 2
	ts := newTestServer(t, cfg)

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		codes = append(codes, post(t, ts.URL+"/api/analyze", simpleBeam).StatusCode)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)

	// health checks are not limited
	resp, err := http.Get(ts.URL + "/api/health")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestLimiterCleanupDropsIdleClients(t *testing.T) {
	l := NewIPRateLimiter(1, 1)
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return now }

	l.getLimiter("10.0.0.1")
	now = now.Add(8 * time.Minute)
	l.getLimiter("10.0.0.2")
	now = now.Add(5 * time.Minute)

	assert.Equal(t, 1, l.Cleanup(LimiterIdleTTL))
	assert.NotContains(t, l.ips, "10.0.0.1")
	assert.Contains(t, l.ips, "10.0.0.2")

	now = now.Add(LimiterIdleTTL)
	assert.Equal(t, 0, l.Cleanup(LimiterIdleTTL))
}

func TestLimiterKeepsBucketWhileActive(t *testing.T) {
	l := NewIPRateLimiter(0.001, 1)
	assert.True(t, l.getLimiter("10.0.0.3").Allow())
	assert.Equal(t, 1, l.Cleanup(LimiterIdleTTL))
	assert.False(t, l.getLimiter("10.0.0.3").Allow(), "bucket survives cleanup")
}

func TestClientIP(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.RemoteAddr = "10.0.0.7:53122"
	assert.Equal(t, "10.0.0.7", clientIP(r))
	r.RemoteAddr = "pipe"
	assert.Equal(t, "pipe", clientIP(r))
}
