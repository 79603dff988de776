package gitlib

import (
	"errors"
	"fmt"
	"time"

	git2go "github.com/libgit2/git2go/v34"

	"github.com/Sumatoshi-tech/contribplot/pkg/safeconv"
)

// ErrParentNotFound is returned when the requested parent commit is not found.
var ErrParentNotFound = errors.New("parent commit not found")

// Signature is the author or committer of a commit. When keeps the
// signature's own time zone offset.
type Signature struct {
	Name  string
	Email string
	When  time.Time
}

func newSignature(sig *git2go.Signature) Signature {
	if sig == nil {
		return Signature{}
	}

	return Signature{Name: sig.Name, Email: sig.Email, When: sig.When}
}

// Commit wraps a libgit2 commit.
type Commit struct {
	commit *git2go.Commit
	repo   *Repository
}

// Hash returns the commit hash.
func (c *Commit) Hash() Hash {
	return HashFromOid(c.commit.Id())
}

// Author returns the commit author.
func (c *Commit) Author() Signature {
	return newSignature(c.commit.Author())
}

// Committer returns the commit committer.
func (c *Commit) Committer() Signature {
	return newSignature(c.commit.Committer())
}

// NumParents returns the number of parent commits.
func (c *Commit) NumParents() int {
	return safeconv.MustUintToInt(c.commit.ParentCount())
}

// Parent returns the nth parent commit.
func (c *Commit) Parent(n int) (*Commit, error) {
	if n < 0 || n >= c.NumParents() {
		return nil, ErrParentNotFound
	}

	parent := c.commit.Parent(safeconv.MustIntToUint(n))
	if parent == nil {
		return nil, ErrParentNotFound
	}

	return &Commit{commit: parent, repo: c.repo}, nil
}

// Tree returns the tree associated with this commit.
func (c *Commit) Tree() (*Tree, error) {
	tree, err := c.commit.Tree()
	if err != nil {
		return nil, fmt.Errorf("get commit tree: %w", err)
	}

	return &Tree{tree: tree}, nil
}

// LineStats summarizes the lines changed by a commit.
type LineStats struct {
	Insertions   int
	Deletions    int
	FilesChanged int
}

// Stats computes the line statistics of the commit against its first parent.
// Root commits are compared with the empty tree, as `git show --numstat` does.
func (c *Commit) Stats() (LineStats, error) {
	newTree, err := c.Tree()
	if err != nil {
		return LineStats{}, err
	}
	defer newTree.Free()

	var oldTree *Tree

	if c.NumParents() > 0 {
		parent, parentErr := c.Parent(0)
		if parentErr != nil {
			return LineStats{}, fmt.Errorf("first parent of %s: %w", c.Hash(), parentErr)
		}
		defer parent.Free()

		oldTree, err = parent.Tree()
		if err != nil {
			return LineStats{}, err
		}
		defer oldTree.Free()
	}

	diff, err := c.repo.DiffTreeToTree(oldTree, newTree)
	if err != nil {
		return LineStats{}, err
	}
	defer diff.Free()

	stats, err := diff.Stats()
	if err != nil {
		return LineStats{}, err
	}
	defer stats.Free()

	return LineStats{
		Insertions:   stats.Insertions(),
		Deletions:    stats.Deletions(),
		FilesChanged: stats.FilesChanged(),
	}, nil
}

// Free releases the commit resources.
func (c *Commit) Free() {
	if c.commit != nil {
		c.commit.Free()
		c.commit = nil
	}
}
