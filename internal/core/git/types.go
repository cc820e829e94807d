package git

import (
	"context"
	"time"
)

// DefaultTimeout bounds a single git invocation when the caller's context
// carries no deadline.
const DefaultTimeout = 500 * time.Millisecond

// Repository is read-only access to a Git working tree.
type Repository interface {
	// CurrentBranch returns the short name of the checked-out branch.
	// Returns ErrDetachedHEAD when HEAD is not a symbolic ref.
	CurrentBranch(ctx context.Context) (string, error)

	// Root returns the absolute path of the working tree root.
	Root() string
}
