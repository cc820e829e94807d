package git

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// Compile-time interface compliance check.
var _ Repository = (*gitManager)(nil)

// gitManager implements the Repository interface using the system git binary.
type gitManager struct {
	root   string
	logger *slog.Logger
}

// NewRepository opens the Git repository containing path.
// Returns ErrNotRepository if the path is not inside a Git working tree,
// or ErrSystemGitNotFound if git is not installed.
func NewRepository(ctx context.Context, path string) (*gitManager, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve path %s: %w", path, err)
	}

	ctx, cancel := withDefaultTimeout(ctx)
	defer cancel()

	root, err := execGit(ctx, absPath, "rev-parse", "--show-toplevel")
	if err != nil {
		if errors.Is(err, ErrSystemGitNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("open repository at %s: %w", absPath, ErrNotRepository)
	}
	if root == "" {
		// Inside a .git directory or a bare repository: no working tree.
		return nil, fmt.Errorf("open repository at %s: %w", absPath, ErrNotRepository)
	}

	cleanRoot := filepath.Clean(root)
	logger := slog.Default().With("module", "git")
	logger.Debug("repository opened", "root", cleanRoot)

	return &gitManager{
		root:   cleanRoot,
		logger: logger,
	}, nil
}

// CurrentBranch returns the name of the currently checked-out branch.
func (m *gitManager) CurrentBranch(ctx context.Context) (string, error) {
	ctx, cancel := withDefaultTimeout(ctx)
	defer cancel()

	branch, err := currentBranch(ctx, m.root)
	if err != nil {
		return "", fmt.Errorf("current branch: %w", err)
	}

	m.logger.Debug("current branch retrieved", "branch", branch)
	return branch, nil
}

// Root returns the absolute path to the repository root directory.
func (m *gitManager) Root() string {
	return m.root
}

// withDefaultTimeout applies DefaultTimeout unless ctx already has a deadline.
func withDefaultTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if _, ok := ctx.Deadline(); ok {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, DefaultTimeout)
}

// execGit executes a git command in the given directory and returns stdout.
// It sets GIT_TERMINAL_PROMPT=0, GIT_OPTIONAL_LOCKS=0 and LC_ALL=C so a
// read never prompts, never takes the index lock, and parses stably.
func execGit(ctx context.Context, dir string, args ...string) (string, error) {
	gitPath, err := exec.LookPath("git")
	if err != nil {
		return "", fmt.Errorf("system git lookup: %w", ErrSystemGitNotFound)
	}

	cmd := exec.CommandContext(ctx, gitPath, args...)
	cmd.Dir = dir
	cmd.Env = append(os.Environ(),
		"GIT_TERMINAL_PROMPT=0",
		"GIT_OPTIONAL_LOCKS=0",
		"LC_ALL=C",
	)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		stderrStr := strings.TrimSpace(stderr.String())
		if len(args) > 0 {
			return "", fmt.Errorf("git %s: %s: %w", args[0], stderrStr, err)
		}
		return "", fmt.Errorf("git: %s: %w", stderrStr, err)
	}

	return strings.TrimRight(stdout.String(), "\n\r"), nil
}

// currentBranch is a package-level helper to get the current branch name.
func currentBranch(ctx context.Context, dir string) (string, error) {
	out, err := execGit(ctx, dir, "symbolic-ref", "--quiet", "--short", "HEAD")
	if err != nil {
		if errors.Is(err, ErrSystemGitNotFound) {
			return "", err
		}
		return "", ErrDetachedHEAD
	}
	return out, nil
}
