package statusline

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"strconv"
	"strings"
)

// ParseInput reads at most maxBytes from r (no cap when maxBytes <= 0) and
// extracts the rendered fields. It never fails: unreadable input, invalid
// JSON and absent or mistyped fields all fall back to the Input defaults.
func ParseInput(r io.Reader, maxBytes int64) Input {
	if r == nil {
		return defaultInput()
	}
	if maxBytes > 0 {
		r = io.LimitReader(r, maxBytes)
	}

	data, err := io.ReadAll(r)
	if err != nil {
		slog.Debug("stdin read failed", "error", err)
	}
	return parsePayload(data)
}

func defaultInput() Input {
	return Input{Model: DefaultModel, ProjectDir: DefaultProjectDir}
}

// parsePayload extracts each field by key path so that one malformed field
// does not discard the others.
func parsePayload(data []byte) Input {
	in := defaultInput()

	var doc map[string]any
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&doc); err != nil || doc == nil {
		slog.Debug("stdin JSON parse failed", "error", err, "bytes", len(data))
		return in
	}
	in.Valid = true

	if model := extractModel(doc); model != "" {
		in.Model = model
	}
	if pct, ok := extractUsedPercentage(doc); ok {
		in.UsedPercentage = pct
	}
	if cost, ok := numberAt(doc, "cost", "total_cost_usd"); ok {
		in.CostUSD = cost
	}
	if dir := extractProjectDirectory(doc); dir != "" {
		in.ProjectDir = dir
	}

	return in
}

// extractModel prefers model.display_name, then model.id. A bare string
// under "model" is accepted as the display name.
func extractModel(doc map[string]any) string {
	if s, ok := doc["model"].(string); ok {
		return strings.TrimSpace(s)
	}
	if s := stringAt(doc, "model", "display_name"); s != "" {
		return s
	}
	return stringAt(doc, "model", "id")
}

// extractUsedPercentage returns context_window.used_percentage, or derives
// it from current_usage token counts over context_window_size.
func extractUsedPercentage(doc map[string]any) (float64, bool) {
	if pct, ok := numberAt(doc, "context_window", "used_percentage"); ok {
		return pct, true
	}

	size, ok := numberAt(doc, "context_window", "context_window_size")
	if !ok || size <= 0 {
		return 0, false
	}

	var used float64
	found := false
	for _, key := range []string{"input_tokens", "cache_creation_input_tokens", "cache_read_input_tokens"} {
		if n, ok := numberAt(doc, "context_window", "current_usage", key); ok {
			used += n
			found = true
		}
	}
	if !found {
		return 0, false
	}
	return used * 100 / size, true
}

// extractProjectDirectory applies the priority
// workspace.project_dir > workspace.current_dir > cwd.
func extractProjectDirectory(doc map[string]any) string {
	if dir := stringAt(doc, "workspace", "project_dir"); dir != "" {
		return dir
	}
	if dir := stringAt(doc, "workspace", "current_dir"); dir != "" {
		return dir
	}
	return stringAt(doc, "cwd")
}

// lookup walks nested objects along path.
func lookup(doc map[string]any, path ...string) (any, bool) {
	var cur any = doc
	for _, key := range path {
		obj, ok := cur.(map[string]any)
		if !ok {
			return nil, false
		}
		cur, ok = obj[key]
		if !ok {
			return nil, false
		}
	}
	return cur, true
}

// stringAt returns the trimmed string at path, or "" if absent or not a string.
func stringAt(doc map[string]any, path ...string) string {
	v, ok := lookup(doc, path...)
	if !ok {
		return ""
	}
	s, ok := v.(string)
	if !ok {
		return ""
	}
	return strings.TrimSpace(s)
}

// numberAt returns the number at path. Numeric strings are accepted.
func numberAt(doc map[string]any, path ...string) (float64, bool) {
	v, ok := lookup(doc, path...)
	if !ok {
		return 0, false
	}
	switch n := v.(type) {
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		return f, err == nil
	default:
		return 0, false
	}
}
