// Package logging routes the standard logger through an optional rotating
// file.
package logging

import (
	"io"
	"log"
	"os"

	"github.com/natefinch/lumberjack"
)

// Setup directs the default logger to stdout, and additionally to a rotating
// file when path is non-empty.
func Setup(path string) {
	if path == "" {
		log.SetOutput(os.Stdout)
		return
	}

	rotator := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    50, // megabytes
		MaxBackups: 3,
		MaxAge:     14, // days
	}
	log.SetOutput(io.MultiWriter(os.Stdout, rotator))
}
