package job_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voxlume/tts-backend/internal/core/job"
)

func TestRegistryLifecycle(t *testing.T) {
	reg := job.NewRegistry()

	v := reg.Create("fp-1", job.StatusPending)
	require.NotEmpty(t, v.ID)
	assert.Equal(t, "fp-1", v.Fingerprint)
	assert.Equal(t, job.StatusPending, v.Status)

	reg.Transition(v.ID, job.StatusProcessing, "")

	got, ok := reg.Get(v.ID)
	require.True(t, ok)
	assert.Equal(t, job.StatusProcessing, got.Status)

	reg.Transition(v.ID, job.StatusComplete, "")

	got, ok = reg.Get(v.ID)
	require.True(t, ok)
	assert.Equal(t, job.StatusComplete, got.Status)
	assert.Empty(t, got.Err)
}

func TestRegistryFailureCarriesDetail(t *testing.T) {
	reg := job.NewRegistry()

	v := reg.Create("fp-1", job.StatusPending)
	reg.Transition(v.ID, job.StatusProcessing, "")
	reg.Transition(v.ID, job.StatusFailed, "engine down")

	got, ok := reg.Get(v.ID)
	require.True(t, ok)
	assert.Equal(t, job.StatusFailed, got.Status)
	assert.Equal(t, "engine down", got.Err)
}

func TestRegistryCreateCompleteForCachedFingerprint(t *testing.T) {
	reg := job.NewRegistry()

	v := reg.Create("fp-1", job.StatusComplete)

	got, ok := reg.Get(v.ID)
	require.True(t, ok)
	assert.Equal(t, job.StatusComplete, got.Status)
}

func TestRegistryUniqueIDsPerFingerprint(t *testing.T) {
	reg := job.NewRegistry()

	a := reg.Create("fp-1", job.StatusPending)
	b := reg.Create("fp-1", job.StatusPending)

	assert.NotEqual(t, a.ID, b.ID)
}

func TestRegistryIllegalTransitionsPanic(t *testing.T) {
	reg := job.NewRegistry()

	v := reg.Create("fp-1", job.StatusPending)

	assert.Panics(t, func() { reg.Transition(v.ID, job.StatusComplete, "") })
	assert.Panics(t, func() { reg.Transition(v.ID, job.StatusFailed, "") })
	assert.Panics(t, func() { reg.Transition("no-such-job", job.StatusProcessing, "") })

	reg.Transition(v.ID, job.StatusProcessing, "")
	reg.Transition(v.ID, job.StatusComplete, "")

	// Terminal states are final.
	assert.Panics(t, func() { reg.Transition(v.ID, job.StatusProcessing, "") })
	assert.Panics(t, func() { reg.Transition(v.ID, job.StatusFailed, "") })
}

func TestRegistryGetUnknown(t *testing.T) {
	reg := job.NewRegistry()

	_, ok := reg.Get("missing")
	assert.False(t, ok)
}

func TestRegistryRemove(t *testing.T) {
	reg := job.NewRegistry()

	v := reg.Create("fp-1", job.StatusPending)
	reg.Remove(v.ID)

	_, ok := reg.Get(v.ID)
	assert.False(t, ok)
}

func TestRegistryNotifierSeesEveryTransition(t *testing.T) {
	reg := job.NewRegistry()

	var seen []job.Status

	reg.SetNotifier(func(v job.View) { seen = append(seen, v.Status) })

	v := reg.Create("fp-1", job.StatusPending)
	reg.Transition(v.ID, job.StatusProcessing, "")
	reg.Transition(v.ID, job.StatusComplete, "")

	assert.Equal(t, []job.Status{
		job.StatusPending,
		job.StatusProcessing,
		job.StatusComplete,
	}, seen)
}
