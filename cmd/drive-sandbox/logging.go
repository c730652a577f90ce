package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/lixenwraith/vi-drive/logging"
	"github.com/lixenwraith/vi-drive/parameter"
)

const (
	logDir      = "logs"
	logFileName = "drive-sandbox.log"
)

// setupLogging opens the log file, rotating it once past parameter.LogMaxSize
// The terminal belongs to tcell, so without debug everything is discarded
func setupLogging(debug bool, level string) (zerolog.Logger, *os.File, error) {
	if !debug {
		return logging.New(io.Discard, level, false), nil, nil
	}

	if err := os.MkdirAll(logDir, 0o755); err != nil {
		return zerolog.Nop(), nil, fmt.Errorf("create log dir: %w", err)
	}

	logPath := filepath.Join(logDir, logFileName)
	if info, err := os.Stat(logPath); err == nil && info.Size() > parameter.LogMaxSize {
		if err := os.Rename(logPath, logPath+".old"); err != nil {
			return zerolog.Nop(), nil, fmt.Errorf("rotate log: %w", err)
		}
	}

	f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return zerolog.Nop(), nil, fmt.Errorf("open log: %w", err)
	}
	return logging.New(f, level, true), f, nil
}
