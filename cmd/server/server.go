package main

import (
	"log"

	"github.com/voxlume/tts-backend/internal/config"
	h "github.com/voxlume/tts-backend/internal/http"
	"github.com/voxlume/tts-backend/internal/logging"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	logging.Setup(cfg.LogFile)

	r, err := h.NewRouter(cfg)
	if err != nil {
		log.Fatal(err)
	}

	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}
