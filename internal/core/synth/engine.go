// Package synth coordinates speech synthesis behind the content-addressed
// cache, collapsing concurrent requests for identical input into a single
// engine invocation.
package synth

import (
	"context"
	"errors"

	"github.com/voxlume/tts-backend/internal/core/fingerprint"
)

// ErrEmptyAudio indicates the engine answered without any audio payload.
var ErrEmptyAudio = errors.New("engine returned no audio")

// Request carries the fully resolved parameters of one synthesis. Defaults
// must already be applied; Fingerprint is only stable for resolved requests.
type Request struct {
	Text    string
	Speaker string
	Speed   float64
	SSML    bool
}

func (r Request) Fingerprint() string {
	return fingerprint.Sum(r.Text, r.Speaker, r.Speed, r.SSML)
}

// Engine is the external synthesis collaborator. Implementations are not
// assumed safe for concurrent invocations with identical input; the Gateway
// guarantees at most one in-flight call per fingerprint.
type Engine interface {
	Synthesize(ctx context.Context, req Request) ([]byte, error)
	Speakers(ctx context.Context) ([]string, error)
}
