package http

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/voxlume/tts-backend/internal/config"
	"github.com/voxlume/tts-backend/internal/core/job"
	"github.com/voxlume/tts-backend/internal/core/synth"
	"github.com/voxlume/tts-backend/internal/http/handlers"
	"github.com/voxlume/tts-backend/internal/repo/disk"
	"github.com/voxlume/tts-backend/pkg/ws"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

const healthCheckTimeout = 10 * time.Second

func NewRouter(cfg config.Config) (*gin.Engine, error) {
	r := gin.Default()
	r.Use(cors.Default())

	store := disk.NewStore(cfg.OutputDir)

	engine, err := newEngine(cfg)
	if err != nil {
		return nil, err
	}

	timeout := time.Duration(cfg.EngineTimeoutSeconds) * time.Second
	gw := synth.NewGateway(store, engine, timeout)

	reg := job.NewRegistry()
	runner := job.NewRunner(cfg.Workers, cfg.QueueSize)
	hub := ws.NewHub()
	reg.SetNotifier(func(v job.View) { hub.Broadcast(v.ID, handlers.JobStatus(v)) })

	sh := handlers.NewSynthesizeHandler(gw, engine, cfg.DefaultSpeaker)
	jh := handlers.NewJobsHandler(gw, reg, runner, store, cfg.DefaultSpeaker)
	eh := handlers.NewEventsHandler(hub, reg)

	limited := NewRateLimiter(cfg.RateLimitPerMinute).Middleware()

	api := r.Group("/api")
	api.POST("/synthesize", limited, sh.Synthesize)
	api.GET("/speakers", sh.Speakers)
	api.POST("/synthesize-async", limited, jh.SubmitAsync)
	api.GET("/status/:job_id", jh.Status)
	api.GET("/audio/:job_id", jh.Audio)
	api.GET("/events/:job_id", eh.Events)

	return r, nil
}

func newEngine(cfg config.Config) (synth.Engine, error) {
	switch cfg.Engine {
	case "gemini":
		return synth.NewGeminiEngine(context.Background(), cfg.GeminiAPIKey, cfg.GeminiModel)
	case "http":
		if cfg.EngineURL == "" {
			return nil, errors.New("ENGINE_URL must be set for the http engine")
		}

		timeout := time.Duration(cfg.EngineTimeoutSeconds) * time.Second
		engine := synth.NewHTTPEngine(cfg.EngineURL, timeout)

		// Fail fast at startup instead of failing every request later.
		ctx, cancel := context.WithTimeout(context.Background(), healthCheckTimeout)
		defer cancel()

		if err := engine.Health(ctx); err != nil {
			return nil, fmt.Errorf("engine health check: %w", err)
		}

		return engine, nil
	default:
		return nil, fmt.Errorf("unknown engine %q", cfg.Engine)
	}
}
