package handlers

import (
	"log"
	"net/http"

	"github.com/voxlume/tts-backend/internal/core/synth"
	"github.com/voxlume/tts-backend/pkg/types"

	"github.com/gin-gonic/gin"
)

const defaultSpeed = 1.0

// SynthesizeHandler serves the blocking synthesis endpoint and the speaker
// list.
type SynthesizeHandler struct {
	Gateway        *synth.Gateway
	Engine         synth.Engine
	DefaultSpeaker string
}

func NewSynthesizeHandler(gw *synth.Gateway, engine synth.Engine, defaultSpeaker string) *SynthesizeHandler {
	return &SynthesizeHandler{Gateway: gw, Engine: engine, DefaultSpeaker: defaultSpeaker}
}

// resolve applies the configured defaults so that a request relying on them
// and one spelling them out share a fingerprint.
func resolve(req *types.SynthesizeReq, defaultSpeaker string) synth.Request {
	r := synth.Request{Text: req.Text, Speaker: req.Speaker, Speed: defaultSpeed}
	if r.Speaker == "" {
		r.Speaker = defaultSpeaker
	}

	if req.Speed != nil {
		r.Speed = *req.Speed
	}

	if req.SSML != nil {
		r.SSML = *req.SSML
	}

	return r
}

// Synthesize blocks until the artifact is ready (or served from cache) and
// streams the wav bytes back.
func (h *SynthesizeHandler) Synthesize(c *gin.Context) {
	var req types.SynthesizeReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad_request"})
		return
	}

	if req.Text == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no text provided"})
		return
	}

	art, err := h.Gateway.Obtain(c.Request.Context(), resolve(&req, h.DefaultSpeaker))
	if err != nil {
		log.Printf("synthesize failed: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "synthesis failed"})
		return
	}

	c.Header("Content-Type", "audio/wav")
	c.File(art.Path)
}

func (h *SynthesizeHandler) Speakers(c *gin.Context) {
	speakers, err := h.Engine.Speakers(c.Request.Context())
	if err != nil {
		log.Printf("speaker listing failed: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "speakers unavailable"})
		return
	}

	c.JSON(http.StatusOK, speakers)
}
