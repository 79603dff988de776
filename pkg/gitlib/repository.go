package gitlib

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	git2go "github.com/libgit2/git2go/v34"
)

// ErrRemoteNotSupported is returned when a remote repository URI is provided.
var ErrRemoteNotSupported = errors.New("remote repositories not supported")

// Repository wraps a libgit2 repository.
type Repository struct {
	repo *git2go.Repository
	path string
}

// OpenRepository opens a local git repository at the given path. Either the
// working tree or the .git directory itself may be passed.
func OpenRepository(path string) (*Repository, error) {
	if strings.Contains(path, "://") {
		return nil, fmt.Errorf("%w: %s", ErrRemoteNotSupported, path)
	}

	if len(path) > 1 && path[len(path)-1] == os.PathSeparator {
		path = path[:len(path)-1]
	}

	repo, err := git2go.OpenRepository(path)
	if err != nil {
		return nil, fmt.Errorf("open repository: %w", err)
	}

	return &Repository{repo: repo, path: path}, nil
}

// Path returns the repository path.
func (r *Repository) Path() string {
	return r.path
}

// Free releases the repository resources.
func (r *Repository) Free() {
	if r.repo != nil {
		r.repo.Free()
		r.repo = nil
	}
}

// Log returns an iterator over every commit reachable from HEAD, newest first.
// The walk is never cut short by timestamps: callers filter each commit.
func (r *Repository) Log() (*CommitIter, error) {
	walk, err := r.repo.Walk()
	if err != nil {
		return nil, fmt.Errorf("create revwalk: %w", err)
	}

	headRef, err := r.repo.Head()
	if err != nil {
		walk.Free()

		return nil, fmt.Errorf("get HEAD: %w", err)
	}
	defer headRef.Free()

	err = walk.Push(headRef.Target())
	if err != nil {
		walk.Free()

		return nil, fmt.Errorf("push HEAD to revwalk: %w", err)
	}

	walk.Sorting(git2go.SortTime)

	return &CommitIter{walk: walk, repo: r}, nil
}

// DiffTreeToTree computes the diff between two trees. A nil oldTree diffs
// against the empty tree.
func (r *Repository) DiffTreeToTree(oldTree, newTree *Tree) (*Diff, error) {
	opts, err := git2go.DefaultDiffOptions()
	if err != nil {
		return nil, fmt.Errorf("get diff options: %w", err)
	}

	var oldT, newT *git2go.Tree
	if oldTree != nil {
		oldT = oldTree.tree
	}

	if newTree != nil {
		newT = newTree.tree
	}

	diff, err := r.repo.DiffTreeToTree(oldT, newT, &opts)
	if err != nil {
		return nil, fmt.Errorf("diff trees: %w", err)
	}

	return &Diff{diff: diff}, nil
}

// CommitIter iterates over commits.
type CommitIter struct {
	walk *git2go.RevWalk
	repo *Repository
}

// LookupError reports a commit the walk yielded but that could not be loaded.
type LookupError struct {
	Hash Hash
	Err  error
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("lookup commit %s: %v", e.Hash.Short(), e.Err)
}

func (e *LookupError) Unwrap() error {
	return e.Err
}

// Next returns the next commit in the iteration, or io.EOF when exhausted.
// A commit that cannot be loaded yields a *LookupError and the iteration may
// continue; any other walk failure ends the iteration.
func (ci *CommitIter) Next() (*Commit, error) {
	if ci.walk == nil {
		return nil, io.EOF
	}

	oid := new(git2go.Oid)

	err := ci.walk.Next(oid)
	if git2go.IsErrorCode(err, git2go.ErrorCodeIterOver) {
		ci.Close()

		return nil, io.EOF
	}

	if err != nil {
		ci.Close()

		return nil, fmt.Errorf("revwalk: %w", err)
	}

	commit, err := ci.repo.repo.LookupCommit(oid)
	if err != nil {
		return nil, &LookupError{Hash: HashFromOid(oid), Err: err}
	}

	return &Commit{commit: commit, repo: ci.repo}, nil
}

// Close releases resources.
func (ci *CommitIter) Close() {
	if ci.walk != nil {
		ci.walk.Free()
		ci.walk = nil
	}
}
