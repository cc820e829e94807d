package config

import (
	"time"

	"github.com/agentskills/statusline/internal/defs"
)

// Default value constants to avoid magic numbers and strings.
const (
	DefaultGitTimeout    = 500 * time.Millisecond
	DefaultStdinTimeout  = 2 * time.Second
	DefaultStdinMaxBytes = 1 << 20

	DefaultLogLevel      = "warn"
	DefaultLogMaxSizeMB  = 10
	DefaultLogMaxBackups = 3
)

// NewDefaultConfig returns a Config with every field set to its default.
// Each call returns a distinct instance.
func NewDefaultConfig() *Config {
	segments := make(map[string]bool, len(defs.SegmentKeys))
	for _, key := range defs.SegmentKeys {
		segments[key] = true
	}

	return &Config{
		Statusline: StatuslineConfig{
			Color:    false,
			Segments: segments,
			MCP: MCPConfig{
				ConfigPaths: defs.DefaultMCPConfigPaths(),
				Keys:        []string{defs.MCPServersKey},
			},
			Git: GitConfig{
				Timeout: DefaultGitTimeout,
			},
			Stdin: StdinConfig{
				Timeout:  DefaultStdinTimeout,
				MaxBytes: DefaultStdinMaxBytes,
			},
		},
		Log: LogConfig{
			Level:      DefaultLogLevel,
			MaxSizeMB:  DefaultLogMaxSizeMB,
			MaxBackups: DefaultLogMaxBackups,
		},
	}
}
