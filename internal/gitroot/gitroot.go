// Package gitroot locates the repository a command runs in.
package gitroot

import (
	"path/filepath"

	"github.com/go-git/go-git/v5"
)

func open(dir string) (*git.Repository, error) {
	return git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{DetectDotGit: true})
}

// Root returns the top of the worktree containing dir. When dir is not inside
// a git checkout, or the repository is bare, dir itself is returned.
func Root(dir string) string {
	abs, err := filepath.Abs(dir)
	if err != nil {
		abs = dir
	}
	repo, err := open(abs)
	if err != nil {
		return abs
	}
	wt, err := repo.Worktree()
	if err != nil {
		return abs
	}
	return wt.Filesystem.Root()
}

// Head returns the HEAD commit and branch of the repository containing dir,
// best-effort. Empty strings are returned on failure; branch is empty for a
// detached HEAD.
func Head(dir string) (commit, branch string) {
	repo, err := open(dir)
	if err != nil {
		return "", ""
	}
	ref, err := repo.Head()
	if err != nil {
		return "", ""
	}
	if ref.Name().IsBranch() {
		branch = ref.Name().Short()
	}
	return ref.Hash().String(), branch
}
