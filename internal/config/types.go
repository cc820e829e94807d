package config

import "time"

// Config is the root configuration aggregate.
type Config struct {
	Statusline StatuslineConfig `yaml:"statusline"`
	Log        LogConfig        `yaml:"log"`
}

// StatuslineConfig controls what the statusline renders and how it
// gathers data.
type StatuslineConfig struct {
	Color bool `yaml:"color"`
	// Segments maps segment keys to enabled state. Unlisted keys are enabled.
	Segments map[string]bool `yaml:"segments"`
	MCP      MCPConfig       `yaml:"mcp"`
	Git      GitConfig       `yaml:"git"`
	Stdin    StdinConfig     `yaml:"stdin"`
}

// MCPConfig lists where MCP servers are declared.
type MCPConfig struct {
	// ConfigPaths are candidate JSON files. "~" expands to the home
	// directory; relative paths resolve against the project directory.
	ConfigPaths []string `yaml:"config_paths"`
	// Keys are the JSON keys holding servers; the first present key counts.
	Keys []string `yaml:"keys"`
}

// GitConfig bounds branch lookups.
type GitConfig struct {
	Timeout time.Duration `yaml:"timeout"`
}

// StdinConfig bounds the payload read.
type StdinConfig struct {
	Timeout  time.Duration `yaml:"timeout"`
	MaxBytes int64         `yaml:"max_bytes"`
}

// LogConfig represents the logging section.
type LogConfig struct {
	Level      string `yaml:"level"`
	File       string `yaml:"file"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
}

// Paths names the configuration files to merge. Empty entries are skipped.
type Paths struct {
	User    string
	Project string
}

// SegmentEnabled reports whether key is enabled. Unlisted keys are enabled.
func (c *StatuslineConfig) SegmentEnabled(key string) bool {
	enabled, ok := c.Segments[key]
	return !ok || enabled
}
