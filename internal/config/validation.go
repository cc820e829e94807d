package config

import (
	"fmt"
	"slices"
	"strings"

	"github.com/agentskills/statusline/internal/defs"
)

// validLogLevels lists the accepted log.level values.
var validLogLevels = []string{"debug", "info", "warn", "error"}

// Validate checks the configuration for correctness.
// All problems are collected into a single *ValidationErrors.
func Validate(cfg *Config) error {
	var errs []ValidationError

	errs = append(errs, validateSegments(cfg.Statusline.Segments)...)
	errs = append(errs, validateMCP(&cfg.Statusline.MCP)...)
	errs = append(errs, validateLimits(&cfg.Statusline)...)
	errs = append(errs, validateLog(&cfg.Log)...)

	if len(errs) > 0 {
		return &ValidationErrors{Errors: errs}
	}
	return nil
}

// validateSegments rejects segment keys the renderer does not know.
func validateSegments(segments map[string]bool) []ValidationError {
	var errs []ValidationError

	keys := make([]string, 0, len(segments))
	for key := range segments {
		keys = append(keys, key)
	}
	slices.Sort(keys)

	for _, key := range keys {
		if !slices.Contains(defs.SegmentKeys, key) {
			errs = append(errs, ValidationError{
				Field:   "statusline.segments." + key,
				Message: fmt.Sprintf("unknown segment, must be one of: %s", strings.Join(defs.SegmentKeys, ", ")),
				Wrapped: ErrInvalidConfig,
			})
		}
	}
	return errs
}

func validateMCP(mcp *MCPConfig) []ValidationError {
	var errs []ValidationError

	for i, key := range mcp.Keys {
		if strings.TrimSpace(key) == "" {
			errs = append(errs, ValidationError{
				Field:   fmt.Sprintf("statusline.mcp.keys[%d]", i),
				Message: "must not be empty",
				Wrapped: ErrInvalidConfig,
			})
		}
	}
	for i, path := range mcp.ConfigPaths {
		if strings.TrimSpace(path) == "" {
			errs = append(errs, ValidationError{
				Field:   fmt.Sprintf("statusline.mcp.config_paths[%d]", i),
				Message: "must not be empty",
				Wrapped: ErrInvalidConfig,
			})
		}
	}
	return errs
}

func validateLimits(sl *StatuslineConfig) []ValidationError {
	var errs []ValidationError

	if sl.Git.Timeout <= 0 {
		errs = append(errs, ValidationError{
			Field:   "statusline.git.timeout",
			Message: "must be positive",
			Value:   sl.Git.Timeout,
			Wrapped: ErrInvalidConfig,
		})
	}
	if sl.Stdin.Timeout <= 0 {
		errs = append(errs, ValidationError{
			Field:   "statusline.stdin.timeout",
			Message: "must be positive",
			Value:   sl.Stdin.Timeout,
			Wrapped: ErrInvalidConfig,
		})
	}
	if sl.Stdin.MaxBytes <= 0 {
		errs = append(errs, ValidationError{
			Field:   "statusline.stdin.max_bytes",
			Message: "must be positive",
			Value:   sl.Stdin.MaxBytes,
			Wrapped: ErrInvalidConfig,
		})
	}
	return errs
}

func validateLog(log *LogConfig) []ValidationError {
	var errs []ValidationError

	if !slices.Contains(validLogLevels, strings.ToLower(log.Level)) {
		errs = append(errs, ValidationError{
			Field:   "log.level",
			Message: fmt.Sprintf("must be one of: %s", strings.Join(validLogLevels, ", ")),
			Value:   log.Level,
			Wrapped: ErrInvalidConfig,
		})
	}
	if log.MaxSizeMB <= 0 {
		errs = append(errs, ValidationError{
			Field:   "log.max_size_mb",
			Message: "must be positive",
			Value:   log.MaxSizeMB,
			Wrapped: ErrInvalidConfig,
		})
	}
	if log.MaxBackups < 0 {
		errs = append(errs, ValidationError{
			Field:   "log.max_backups",
			Message: "must not be negative",
			Value:   log.MaxBackups,
			Wrapped: ErrInvalidConfig,
		})
	}
	return errs
}
