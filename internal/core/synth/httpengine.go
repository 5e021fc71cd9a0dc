package synth

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	synthesizePath = "/synthesize"
	speakersPath   = "/speakers"
	healthPath     = "/health"

	errBodyLimit = 512
)

// ErrEngineUnhealthy indicates the upstream synthesis server failed its
// health check.
var ErrEngineUnhealthy = errors.New("synthesis engine unhealthy")

// HTTPEngine talks to a standalone synthesis server:
// POST /synthesize with the request JSON returns wav bytes, GET /speakers
// returns a JSON array of voice ids.
type HTTPEngine struct {
	base   string
	client *http.Client
}

func NewHTTPEngine(base string, timeout time.Duration) *HTTPEngine {
	return &HTTPEngine{
		base:   strings.TrimRight(base, "/"),
		client: &http.Client{Timeout: timeout},
	}
}

type synthesizeBody struct {
	Text    string  `json:"text"`
	Speaker string  `json:"speaker"`
	Speed   float64 `json:"speed"`
	SSML    bool    `json:"ssml"`
}

func (e *HTTPEngine) Synthesize(ctx context.Context, req Request) ([]byte, error) {
	body, err := json.Marshal(synthesizeBody{
		Text:    req.Text,
		Speaker: req.Speaker,
		Speed:   req.Speed,
		SSML:    req.SSML,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal synthesis request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(
		ctx, http.MethodPost, e.base+synthesizePath, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build synthesis request: %w", err)
	}

	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := e.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("call synthesis engine: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, errBodyLimit))

		return nil, fmt.Errorf("engine returned %d: %s",
			resp.StatusCode, strings.TrimSpace(string(msg)))
	}

	audio, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read engine response: %w", err)
	}

	if len(audio) == 0 {
		return nil, ErrEmptyAudio
	}

	return audio, nil
}

func (e *HTTPEngine) Speakers(ctx context.Context) ([]string, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, e.base+speakersPath, nil)
	if err != nil {
		return nil, fmt.Errorf("build speakers request: %w", err)
	}

	resp, err := e.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("list speakers: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("engine returned %d listing speakers", resp.StatusCode)
	}

	var speakers []string
	if err := json.NewDecoder(resp.Body).Decode(&speakers); err != nil {
		return nil, fmt.Errorf("decode speakers: %w", err)
	}

	return speakers, nil
}

// Health pings the upstream server, failing fast when it is unreachable.
func (e *HTTPEngine) Health(ctx context.Context) error {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, e.base+healthPath, nil)
	if err != nil {
		return fmt.Errorf("build health request: %w", err)
	}

	resp, err := e.client.Do(httpReq)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrEngineUnhealthy, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: status %d", ErrEngineUnhealthy, resp.StatusCode)
	}

	return nil
}
