package statusline

import (
	"context"
	"log/slog"
	"time"

	gitpkg "github.com/agentskills/statusline/internal/core/git"
)

// Compile-time interface compliance check.
var _ BranchProvider = (*GitCollector)(nil)

// GitCollector resolves the current branch through the system git binary.
type GitCollector struct {
	timeout time.Duration
	open    func(ctx context.Context, dir string) (gitpkg.Repository, error)
	logger  *slog.Logger
}

// NewGitCollector creates a GitCollector whose lookups are bounded by
// timeout. A non-positive timeout selects gitpkg.DefaultTimeout.
func NewGitCollector(timeout time.Duration) *GitCollector {
	if timeout <= 0 {
		timeout = gitpkg.DefaultTimeout
	}
	return &GitCollector{
		timeout: timeout,
		open:    openRepository,
		logger:  slog.Default().With("module", "statusline.git"),
	}
}

// CurrentBranch returns the branch checked out in projectDir. It returns
// an error when projectDir is not a repository, git is unavailable, HEAD is
// detached or the lookup times out.
func (g *GitCollector) CurrentBranch(ctx context.Context, projectDir string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	repo, err := g.open(ctx, projectDir)
	if err != nil {
		return "", err
	}

	branch, err := repo.CurrentBranch(ctx)
	if err != nil {
		return "", err
	}

	g.logger.Debug("branch resolved", "root", repo.Root(), "branch", branch)
	return branch, nil
}

// openRepository adapts gitpkg.NewRepository to the Repository interface
// without producing a typed-nil interface on error.
func openRepository(ctx context.Context, dir string) (gitpkg.Repository, error) {
	repo, err := gitpkg.NewRepository(ctx, dir)
	if err != nil {
		return nil, err
	}
	return repo, nil
}
