package synth

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/voxlume/tts-backend/internal/repo/disk"
)

// Gateway fronts the engine with the result store. All synthesis goes through
// Obtain, which is the only writer of the store.
type Gateway struct {
	store   *disk.Store
	engine  Engine
	timeout time.Duration
	group   singleflight.Group
}

// NewGateway wraps engine with cache lookups and per-fingerprint coalescing.
// A timeout > 0 bounds each engine call.
func NewGateway(store *disk.Store, engine Engine, timeout time.Duration) *Gateway {
	return &Gateway{store: store, engine: engine, timeout: timeout}
}

// Obtain returns the artifact for req, synthesizing it first on a cache miss.
// Concurrent calls sharing a fingerprint coalesce into one engine invocation
// and all receive the same artifact or the same error. Failures cache nothing
// and are not retried here; a later call for the same input starts fresh.
//
// The coalescing lock is internal to singleflight and held only for the
// check-and-register step, so distinct fingerprints never serialize behind
// one another's engine calls.
func (g *Gateway) Obtain(ctx context.Context, req Request) (disk.Artifact, error) {
	fp := req.Fingerprint()

	if art, ok := g.store.Get(fp); ok {
		return art, nil
	}

	v, err, _ := g.group.Do(fp, func() (any, error) {
		// A caller that lost the race may land here after the winner
		// already published.
		if art, ok := g.store.Get(fp); ok {
			return art, nil
		}

		// The flight's result is shared: a winner disconnecting must not
		// fail waiters that are still connected, so the engine call is
		// detached from the winning request's cancellation and bounded
		// only by the configured timeout.
		callCtx := context.WithoutCancel(ctx)
		if g.timeout > 0 {
			var cancel context.CancelFunc
			callCtx, cancel = context.WithTimeout(callCtx, g.timeout)
			defer cancel()
		}

		audio, synthErr := g.engine.Synthesize(callCtx, req)
		if synthErr != nil {
			return nil, fmt.Errorf("synthesize %s: %w", fp, synthErr)
		}

		if len(audio) == 0 {
			return nil, fmt.Errorf("synthesize %s: %w", fp, ErrEmptyAudio)
		}

		return g.store.Put(fp, audio)
	})
	if err != nil {
		return disk.Artifact{}, err
	}

	return v.(disk.Artifact), nil
}
