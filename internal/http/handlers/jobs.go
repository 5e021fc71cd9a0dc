package handlers

import (
	"context"
	"net/http"

	"github.com/voxlume/tts-backend/internal/core/job"
	"github.com/voxlume/tts-backend/internal/core/synth"
	"github.com/voxlume/tts-backend/internal/repo/disk"
	"github.com/voxlume/tts-backend/pkg/types"

	"github.com/gin-gonic/gin"
)

// JobsHandler serves the asynchronous submission, polling and artifact
// retrieval endpoints.
type JobsHandler struct {
	Gateway        *synth.Gateway
	Registry       *job.Registry
	Runner         *job.Runner
	Store          *disk.Store
	DefaultSpeaker string
}

func NewJobsHandler(
	gw *synth.Gateway,
	reg *job.Registry,
	runner *job.Runner,
	store *disk.Store,
	defaultSpeaker string,
) *JobsHandler {
	return &JobsHandler{
		Gateway:        gw,
		Registry:       reg,
		Runner:         runner,
		Store:          store,
		DefaultSpeaker: defaultSpeaker,
	}
}

// JobStatus converts a registry snapshot to its wire form. Complete jobs
// carry the artifact URL, failed ones the error detail.
func JobStatus(v job.View) types.StatusResp {
	resp := types.StatusResp{JobID: v.ID, Status: string(v.Status)}

	switch v.Status {
	case job.StatusComplete:
		resp.URL = "/api/audio/" + v.ID
	case job.StatusFailed:
		resp.Error = v.Err
	}

	return resp
}

// SubmitAsync registers a job and returns immediately. A fingerprint that is
// already cached yields a job born complete; otherwise the work is handed to
// the pool, and a full queue is reported as backpressure with no job record
// kept.
func (h *JobsHandler) SubmitAsync(c *gin.Context) {
	var req types.SynthesizeReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad_request"})
		return
	}

	if req.Text == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no text provided"})
		return
	}

	sr := resolve(&req, h.DefaultSpeaker)
	fp := sr.Fingerprint()

	if h.Store.Has(fp) {
		v := h.Registry.Create(fp, job.StatusComplete)
		c.JSON(http.StatusOK, types.AsyncResp{
			JobID:  v.ID,
			Status: string(v.Status),
			Cached: true,
		})

		return
	}

	v := h.Registry.Create(fp, job.StatusPending)

	task := func(ctx context.Context) {
		h.Registry.Transition(v.ID, job.StatusProcessing, "")

		if _, err := h.Gateway.Obtain(ctx, sr); err != nil {
			h.Registry.Transition(v.ID, job.StatusFailed, err.Error())

			return
		}

		h.Registry.Transition(v.ID, job.StatusComplete, "")
	}

	if err := h.Runner.Submit(task); err != nil {
		h.Registry.Remove(v.ID)
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "server busy"})

		return
	}

	c.JSON(http.StatusAccepted, types.AsyncResp{JobID: v.ID, Status: string(v.Status)})
}

func (h *JobsHandler) Status(c *gin.Context) {
	v, ok := h.Registry.Get(c.Param("job_id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "job not found"})
		return
	}

	c.JSON(http.StatusOK, JobStatus(v))
}

// Audio serves the artifact of a completed job.
func (h *JobsHandler) Audio(c *gin.Context) {
	v, ok := h.Registry.Get(c.Param("job_id"))
	if !ok || v.Status != job.StatusComplete {
		c.JSON(http.StatusNotFound, gin.H{"error": "job not found or not complete"})
		return
	}

	art, ok := h.Store.Get(v.Fingerprint)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "audio file not found"})
		return
	}

	c.Header("Content-Type", "audio/wav")
	c.File(art.Path)
}
