package statusline

import (
	"context"
	"io"
	"log/slog"
)

// defaultBuilder implements the Builder interface by parsing the payload,
// collecting branch and MCP data, and rendering the statusline.
type defaultBuilder struct {
	branchProvider BranchProvider
	mcpProvider    MCPProvider
	renderer       *Renderer
	projectDir     string
	maxInputBytes  int64
	logger         *slog.Logger
}

// New creates a new Builder with the given options.
// If BranchProvider is nil, a GitCollector bounded by GitTimeout is used.
// If MCPProvider is nil, an MCPCollector over MCPConfigPaths and MCPKeys is used.
func New(opts Options) Builder {
	branchProvider := opts.BranchProvider
	if branchProvider == nil {
		branchProvider = NewGitCollector(opts.GitTimeout)
	}

	mcpProvider := opts.MCPProvider
	if mcpProvider == nil {
		mcpProvider = NewMCPCollector(opts.MCPConfigPaths, opts.MCPKeys)
	}

	return &defaultBuilder{
		branchProvider: branchProvider,
		mcpProvider:    mcpProvider,
		renderer:       NewRenderer(opts.Color, opts.SegmentConfig),
		projectDir:     opts.ProjectDir,
		maxInputBytes:  opts.MaxInputBytes,
		logger:         slog.Default().With("module", "statusline"),
	}
}

// Build reads the payload from r, collects branch and MCP data, and
// returns a single-line statusline. On any input error, it produces a safe
// fallback output. The output never contains newline characters.
func (b *defaultBuilder) Build(ctx context.Context, r io.Reader) (string, error) {
	input := ParseInput(r, b.maxInputBytes)
	if !input.Valid {
		b.logger.Debug("using default input")
	}

	data := b.collectAll(ctx, input)
	return b.renderer.Render(data), nil
}

// collectAll gathers data from all sources, one after another.
// Individual collector failures are non-fatal; partial data is used.
func (b *defaultBuilder) collectAll(ctx context.Context, input Input) *StatusData {
	data := &StatusData{
		Model:          input.Model,
		ContextPercent: input.UsedPercentage,
		CostUSD:        input.CostUSD,
	}

	projectDir := input.ProjectDir
	if b.projectDir != "" {
		projectDir = b.projectDir
	}

	if branch, err := b.branchProvider.CurrentBranch(ctx, projectDir); err != nil {
		b.logger.Debug("git collection failed", "dir", projectDir, "error", err)
	} else {
		data.Branch = branch
	}

	if n, err := b.mcpProvider.CountServers(ctx, projectDir); err != nil {
		b.logger.Debug("mcp collection failed", "dir", projectDir, "error", err)
	} else {
		data.MCPServers = n
	}

	return data
}
