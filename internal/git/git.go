// Package git reads the source revision a release is packaged from.
package git

import (
	"context"
	"errors"
	"fmt"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
)

// Common Git errors
var (
	ErrNotAGitRepo = errors.New("not a git repository")
	ErrNoCommits   = errors.New("repository has no commits")
)

// Revision identifies the checked out commit.
type Revision struct {
	Hash   string
	Branch string // empty when HEAD is detached
	Dirty  bool   // worktree has uncommitted changes
}

// Short returns the abbreviated commit hash.
func (r Revision) Short() string {
	if len(r.Hash) > 8 {
		return r.Hash[:8]
	}
	return r.Hash
}

// String renders the revision for a report line.
func (r Revision) String() string {
	s := r.Short()
	if r.Branch != "" {
		s = r.Branch + "@" + s
	}
	if r.Dirty {
		s += " (dirty)"
	}
	return s
}

// Client reads revision information from a repository.
type Client struct {
	repoPath string // any path inside the repository
}

// NewClient creates a Client for the repository containing path.
func NewClient(path string) *Client {
	return &Client{repoPath: path}
}

// HeadCommit returns the revision HEAD points to.
func (c *Client) HeadCommit(ctx context.Context) (*Revision, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context cancelled: %w", err)
	}

	repo, err := gogit.PlainOpenWithOptions(c.repoPath, &gogit.PlainOpenOptions{DetectDotGit: true})
	if errors.Is(err, gogit.ErrRepositoryNotExists) {
		return nil, ErrNotAGitRepo
	}
	if err != nil {
		return nil, fmt.Errorf("open repository: %w", err)
	}

	ref, err := repo.Head()
	if errors.Is(err, plumbing.ErrReferenceNotFound) {
		return nil, ErrNoCommits
	}
	if err != nil {
		return nil, fmt.Errorf("get HEAD: %w", err)
	}

	rev := &Revision{Hash: ref.Hash().String()}
	if ref.Name().IsBranch() {
		rev.Branch = ref.Name().Short()
	}

	worktree, err := repo.Worktree()
	if err != nil {
		return nil, fmt.Errorf("get worktree: %w", err)
	}
	status, err := worktree.Status()
	if err != nil {
		return nil, fmt.Errorf("get status: %w", err)
	}
	rev.Dirty = !status.IsClean()

	return rev, nil
}
