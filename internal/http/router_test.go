package http_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voxlume/tts-backend/internal/config"
	"github.com/voxlume/tts-backend/internal/core/synth"
	internalhttp "github.com/voxlume/tts-backend/internal/http"
)

func testConfig(engineURL string, dir string) config.Config {
	return config.Config{
		Port:                 "0",
		OutputDir:            dir,
		Engine:               "http",
		EngineURL:            engineURL,
		EngineTimeoutSeconds: 2,
		DefaultSpeaker:       "p225",
		Workers:              1,
		QueueSize:            4,
		RateLimitPerMinute:   15,
	}
}

func TestNewRouterChecksEngineHealthAtStartup(t *testing.T) {
	gin.SetMode(gin.TestMode)

	var healthHits atomic.Int64

	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/health":
			healthHits.Add(1)
			w.WriteHeader(http.StatusOK)
		case "/speakers":
			_ = json.NewEncoder(w).Encode([]string{"p225"})
		default:
			http.NotFound(w, r)
		}
	}))
	defer upstream.Close()

	r, err := internalhttp.NewRouter(testConfig(upstream.URL, t.TempDir()))
	require.NoError(t, err)
	require.NotNil(t, r)
	assert.Equal(t, int64(1), healthHits.Load())
}

func TestNewRouterRejectsUnhealthyEngine(t *testing.T) {
	gin.SetMode(gin.TestMode)

	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer upstream.Close()

	_, err := internalhttp.NewRouter(testConfig(upstream.URL, t.TempDir()))
	require.ErrorIs(t, err, synth.ErrEngineUnhealthy)
}

func TestNewRouterRejectsUnreachableEngine(t *testing.T) {
	gin.SetMode(gin.TestMode)

	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	upstream.Close()

	_, err := internalhttp.NewRouter(testConfig(upstream.URL, t.TempDir()))
	require.Error(t, err)
}

func TestNewRouterRejectsBadEngineConfig(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cfg := testConfig("", t.TempDir())
	_, err := internalhttp.NewRouter(cfg)
	require.Error(t, err)

	cfg = testConfig("http://localhost:1", t.TempDir())
	cfg.Engine = "carrier-pigeon"
	_, err = internalhttp.NewRouter(cfg)
	require.Error(t, err)
}
