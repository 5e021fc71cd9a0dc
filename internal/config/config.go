package config

import (
	"os"
	"strconv"
)

type Config struct {
	Port                 string
	OutputDir            string
	Engine               string
	EngineURL            string
	EngineTimeoutSeconds int
	GeminiAPIKey         string
	GeminiModel          string
	DefaultSpeaker       string
	Workers              int
	QueueSize            int
	RateLimitPerMinute   int
	LogFile              string
}

func Load() Config {
	return Config{
		Port:                 getenv("PORT", "5002"),
		OutputDir:            getenv("OUTPUT_DIR", "output"),
		Engine:               getenv("ENGINE", "http"),
		EngineURL:            getenv("ENGINE_URL", ""),
		EngineTimeoutSeconds: getenvInt("ENGINE_TIMEOUT_SECONDS", 120),
		GeminiAPIKey:         getenv("GEMINI_API_KEY", ""),
		GeminiModel:          getenv("GEMINI_MODEL", "gemini-2.5-flash-preview-tts"),
		DefaultSpeaker:       getenv("DEFAULT_SPEAKER", "p225"),
		Workers:              getenvInt("WORKERS", 4),
		QueueSize:            getenvInt("QUEUE_SIZE", 64),
		RateLimitPerMinute:   getenvInt("RATE_LIMIT_PER_MINUTE", 15),
		LogFile:              getenv("LOG_FILE", ""),
	}
}

func getenv(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func getenvInt(k string, d int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return d
}
