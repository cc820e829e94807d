// Package wizard asks which statusline segments to show and whether to
// colorize them.
package wizard

import (
	"errors"
	"fmt"
	"slices"

	"github.com/charmbracelet/huh"

	"github.com/agentskills/statusline/internal/defs"
)

// ErrCancelled indicates the user aborted the wizard.
var ErrCancelled = errors.New("wizard: cancelled by user")

// Result is the selection made in the wizard.
type Result struct {
	// Segments holds every known segment key with its enabled state.
	Segments map[string]bool
	Color    bool
}

// segmentLabels describes each segment in the multi-select.
var segmentLabels = map[string]string{
	defs.SegmentBranch:  "Git branch",
	defs.SegmentModel:   "Model name",
	defs.SegmentContext: "Context window usage (ctx:N%)",
	defs.SegmentMCP:     "MCP server count (mcp:N)",
	defs.SegmentCost:    "Session cost ($X.YY)",
}

// Run shows the form, pre-filled from initial, and returns the selection.
// Returns ErrCancelled when the user aborts.
func Run(initial Result) (*Result, error) {
	selected := enabledKeys(initial.Segments)
	color := initial.Color

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewMultiSelect[string]().
				Title("Segments to show").
				Description("Hidden segments are skipped; the model is shown if nothing else is.").
				Options(segmentOptions(selected)...).
				Value(&selected),
			huh.NewConfirm().
				Title("Colorize segments?").
				Affirmative("Yes").
				Negative("No").
				Value(&color),
		),
	).WithTheme(huh.ThemeCharm())

	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return nil, ErrCancelled
		}
		return nil, fmt.Errorf("wizard error: %w", err)
	}

	return buildResult(selected, color), nil
}

// segmentOptions builds options in render order, marking selected keys.
func segmentOptions(selected []string) []huh.Option[string] {
	opts := make([]huh.Option[string], 0, len(defs.SegmentKeys))
	for _, key := range defs.SegmentKeys {
		opts = append(opts, huh.NewOption(segmentLabels[key], key).Selected(slices.Contains(selected, key)))
	}
	return opts
}

// enabledKeys returns the enabled segment keys in render order. Keys missing
// from segments count as enabled.
func enabledKeys(segments map[string]bool) []string {
	keys := make([]string, 0, len(defs.SegmentKeys))
	for _, key := range defs.SegmentKeys {
		if enabled, ok := segments[key]; !ok || enabled {
			keys = append(keys, key)
		}
	}
	return keys
}

// buildResult maps a multi-select answer back to a full segment table.
func buildResult(selected []string, color bool) *Result {
	segments := make(map[string]bool, len(defs.SegmentKeys))
	for _, key := range defs.SegmentKeys {
		segments[key] = slices.Contains(selected, key)
	}
	return &Result{Segments: segments, Color: color}
}
