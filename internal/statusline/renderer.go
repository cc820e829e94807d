package statusline

import (
	"fmt"
	"io"
	"math"
	"strings"
	"unicode"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"
	"golang.org/x/text/unicode/norm"

	"github.com/agentskills/statusline/internal/defs"
)

// Separator joins rendered segments.
const Separator = " | "

// zeroCost is the formatted amount that suppresses the cost segment.
const zeroCost = "0.00"

// Renderer formats StatusData into a single-line statusline string.
// Format: branch | model | ctx:N% | mcp:N | $X.YY
type Renderer struct {
	separator     string
	color         bool
	styles        map[string]lipgloss.Style
	segmentConfig map[string]bool
}

// NewRenderer creates a Renderer. When segmentConfig is nil or empty, all
// segments are displayed. When color is true, segments are styled with a
// forced ANSI-256 profile, since the host reads the line from a pipe.
func NewRenderer(color bool, segmentConfig map[string]bool) *Renderer {
	r := &Renderer{
		separator:     Separator,
		color:         color,
		segmentConfig: segmentConfig,
	}

	if !color {
		return r
	}

	re := lipgloss.NewRenderer(io.Discard)
	re.SetColorProfile(termenv.ANSI256)
	muted := re.NewStyle().Foreground(lipgloss.Color("#6B7280"))
	r.styles = map[string]lipgloss.Style{
		defs.SegmentBranch:  re.NewStyle().Foreground(lipgloss.Color("3")),
		defs.SegmentModel:   re.NewStyle().Foreground(lipgloss.Color("5")),
		defs.SegmentContext: re.NewStyle().Foreground(lipgloss.Color("6")),
		defs.SegmentMCP:     muted,
		defs.SegmentCost:    muted,
	}
	return r
}

// Render formats data into one line without a trailing newline.
func (r *Renderer) Render(data *StatusData) string {
	if data == nil {
		data = &StatusData{Model: DefaultModel}
	}

	model := sanitize(data.Model)
	if model == "" {
		model = DefaultModel
	}

	var sections []string

	if branch := sanitize(data.Branch); branch != "" && r.isSegmentEnabled(defs.SegmentBranch) {
		sections = append(sections, r.style(defs.SegmentBranch, branch))
	}

	if r.isSegmentEnabled(defs.SegmentModel) {
		sections = append(sections, r.style(defs.SegmentModel, model))
	}

	if r.isSegmentEnabled(defs.SegmentContext) {
		ctx := fmt.Sprintf("ctx:%d%%", FloorPercent(data.ContextPercent))
		sections = append(sections, r.style(defs.SegmentContext, ctx))
	}

	if data.MCPServers > 0 && r.isSegmentEnabled(defs.SegmentMCP) {
		sections = append(sections, r.style(defs.SegmentMCP, fmt.Sprintf("mcp:%d", data.MCPServers)))
	}

	if cost := FormatCost(data.CostUSD); cost != zeroCost && r.isSegmentEnabled(defs.SegmentCost) {
		sections = append(sections, r.style(defs.SegmentCost, "$"+cost))
	}

	if len(sections) == 0 {
		return r.style(defs.SegmentModel, model)
	}

	return strings.Join(sections, r.separator)
}

// isSegmentEnabled checks whether a segment should be rendered based on config.
// Unknown keys and an empty config mean enabled.
func (r *Renderer) isSegmentEnabled(key string) bool {
	enabled, exists := r.segmentConfig[key]
	return !exists || enabled
}

func (r *Renderer) style(key, text string) string {
	if !r.color {
		return text
	}
	s, ok := r.styles[key]
	if !ok {
		return text
	}
	return s.Render(text)
}

// RenderFallback returns the line printed when rendering itself fails.
func RenderFallback() string {
	return DefaultModel + Separator + "ctx:0%"
}

// FloorPercent floors pct and clamps it to [0, 100]. NaN maps to 0.
func FloorPercent(pct float64) int {
	if math.IsNaN(pct) || pct <= 0 {
		return 0
	}
	if pct >= 100 {
		return 100
	}
	return int(math.Floor(pct))
}

// FormatCost renders usd with two decimals. Non-finite values format as
// "0.00", and so do negative values that round to zero.
func FormatCost(usd float64) string {
	if math.IsNaN(usd) || math.IsInf(usd, 0) {
		return zeroCost
	}
	s := fmt.Sprintf("%.2f", usd)
	if s == "-0.00" {
		return zeroCost
	}
	return s
}

// sanitize NFC-normalises s, drops ANSI escape sequences, and replaces
// other control characters, including newlines and tabs, with spaces so a
// segment can never break the line.
func sanitize(s string) string {
	s = strings.Map(func(r rune) rune {
		if r != ansi.ESC && unicode.IsControl(r) {
			return ' '
		}
		return r
	}, s)
	s = strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return ' '
		}
		return r
	}, ansi.Strip(s))
	return strings.TrimSpace(norm.NFC.String(s))
}
