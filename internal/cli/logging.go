package cli

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/agentskills/statusline/internal/config"
)

// logSettings is the resolved logging configuration.
type logSettings struct {
	level      string
	file       string
	maxSizeMB  int
	maxBackups int
}

var (
	logMu     sync.Mutex
	logCloser io.Closer
)

func logSettingsFromFlags(flags *rootFlags) logSettings {
	return logSettings{
		level:      flags.logLevel,
		file:       flags.logFile,
		maxSizeMB:  config.DefaultLogMaxSizeMB,
		maxBackups: config.DefaultLogMaxBackups,
	}
}

// logSettingsFromConfig merges cfg under the flags: a flag value wins.
func logSettingsFromConfig(cfg config.LogConfig, flags *rootFlags) logSettings {
	s := logSettings{
		level:      cfg.Level,
		file:       cfg.File,
		maxSizeMB:  cfg.MaxSizeMB,
		maxBackups: cfg.MaxBackups,
	}
	if flags.logLevel != "" {
		s.level = flags.logLevel
	}
	if flags.logFile != "" {
		s.file = flags.logFile
	}
	return s
}

// parseLevel maps a level name to slog.Level, defaulting to warn.
func parseLevel(name string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}

// newLogger builds a logger for s. Without a file, output is discarded:
// stdout belongs to the statusline and stderr may be shown by the host.
func newLogger(s logSettings) (*slog.Logger, io.Closer) {
	if s.file == "" {
		return slog.New(slog.DiscardHandler), nil
	}

	maxSize := s.maxSizeMB
	if maxSize <= 0 {
		maxSize = config.DefaultLogMaxSizeMB
	}
	w := &lumberjack.Logger{
		Filename:   s.file,
		MaxSize:    maxSize, // MB
		MaxBackups: max(s.maxBackups, 0),
		Compress:   false,
	}
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: parseLevel(s.level)})
	return slog.New(handler).With("pid", os.Getpid()), w
}

// installLogger replaces the default slog logger, closing any previous file.
func installLogger(s logSettings) {
	logger, closer := newLogger(s)

	logMu.Lock()
	defer logMu.Unlock()
	if logCloser != nil {
		_ = logCloser.Close()
	}
	logCloser = closer
	slog.SetDefault(logger)
}

// closeLogger flushes and closes the log file, if any.
func closeLogger() {
	logMu.Lock()
	defer logMu.Unlock()
	if logCloser != nil {
		_ = logCloser.Close()
		logCloser = nil
	}
}
