package synth

import (
	"context"
	"crypto/tls"
	"net/http"
	"slices"
	"time"

	"google.golang.org/genai"
)

// Prebuilt Gemini voices exposed as the speaker list. The API offers no speed
// control, so Request.Speed only participates in cache identity here.
var geminiVoices = []string{
	"Zephyr", "Puck", "Charon", "Kore", "Fenrir", "Leda", "Orus", "Aoede",
}

// GeminiEngine synthesizes speech through the Gemini speech-generation
// models.
type GeminiEngine struct {
	client *genai.Client
	model  string
}

func NewGeminiEngine(ctx context.Context, apiKey, model string) (*GeminiEngine, error) {
	tr := &http.Transport{
		Proxy:           http.ProxyFromEnvironment,
		TLSClientConfig: &tls.Config{MinVersion: tls.VersionTLS12},
		MaxIdleConns:    100,
		IdleConnTimeout: 90 * time.Second,
	}
	hc := &http.Client{Transport: tr}

	cl, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:     apiKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: hc,
	})
	if err != nil {
		return nil, err
	}

	return &GeminiEngine{client: cl, model: model}, nil
}

func (e *GeminiEngine) Synthesize(ctx context.Context, req Request) ([]byte, error) {
	cfg := &genai.GenerateContentConfig{
		ResponseModalities: []string{"AUDIO"},
		SpeechConfig: &genai.SpeechConfig{
			VoiceConfig: &genai.VoiceConfig{
				PrebuiltVoiceConfig: &genai.PrebuiltVoiceConfig{
					VoiceName: req.Speaker,
				},
			},
		},
	}

	contents := []*genai.Content{{Parts: []*genai.Part{{Text: req.Text}}}}

	resp, err := e.client.Models.GenerateContent(ctx, e.model, contents, cfg)
	if err != nil {
		return nil, err
	}

	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}

		for _, p := range cand.Content.Parts {
			if p.InlineData != nil && len(p.InlineData.Data) > 0 {
				return p.InlineData.Data, nil
			}
		}
	}

	return nil, ErrEmptyAudio
}

func (e *GeminiEngine) Speakers(_ context.Context) ([]string, error) {
	return slices.Clone(geminiVoices), nil
}
