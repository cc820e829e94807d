package git

import "errors"

// Sentinel errors for repository access.
var (
	// ErrNotRepository indicates the path is not inside a Git working tree.
	ErrNotRepository = errors.New("git: not a repository")

	// ErrDetachedHEAD indicates HEAD does not point at a branch.
	ErrDetachedHEAD = errors.New("git: HEAD is detached")

	// ErrSystemGitNotFound indicates no git binary was found on PATH.
	ErrSystemGitNotFound = errors.New("git: system git not found")
)
