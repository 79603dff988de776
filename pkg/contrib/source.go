package contrib

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/Sumatoshi-tech/contribplot/pkg/gitlib"
)

// Source yields the commits of one window.
type Source interface {
	Commits(ctx context.Context, window Window, today time.Time) ([]CommitResult, error)
}

// GitSource reads commits from a libgit2 repository.
type GitSource struct {
	repo *gitlib.Repository
}

// NewGitSource creates a Source backed by repo. The caller keeps ownership of repo.
func NewGitSource(repo *gitlib.Repository) *GitSource {
	return &GitSource{repo: repo}
}

// Commits walks the whole history reachable from HEAD and returns one result
// per commit whose committer date lies in the window. Results follow the walk
// order. A commit that cannot be loaded or diffed becomes a failed result
// rather than failing the call; a broken walk fails it.
func (s *GitSource) Commits(ctx context.Context, window Window, today time.Time) ([]CommitResult, error) {
	iter, err := s.repo.Log()
	if err != nil {
		return nil, fmt.Errorf("log %s: %w", s.repo.Path(), err)
	}
	defer iter.Close()

	var results []CommitResult

	for {
		ctxErr := ctx.Err()
		if ctxErr != nil {
			return nil, fmt.Errorf("walk %s: %w", s.repo.Path(), ctxErr)
		}

		commit, nextErr := iter.Next()
		if errors.Is(nextErr, io.EOF) {
			return results, nil
		}

		var lookupErr *gitlib.LookupError
		if errors.As(nextErr, &lookupErr) {
			results = append(results, CommitResult{
				Commit: Commit{Hash: lookupErr.Hash.String()},
				Err:    nextErr,
			})

			continue
		}

		if nextErr != nil {
			return nil, fmt.Errorf("walk %s: %w", s.repo.Path(), nextErr)
		}

		committed := commit.Committer().When
		if window.Contains(today, committed) {
			results = append(results, readCommit(commit, committed))
		}

		commit.Free()
	}
}

func readCommit(commit *gitlib.Commit, committed time.Time) CommitResult {
	author := commit.Author()

	result := CommitResult{
		Commit: Commit{
			Hash:       commit.Hash().String(),
			Author:     author.Email,
			AuthorName: author.Name,
			When:       committed,
		},
	}

	stats, err := commit.Stats()
	if err != nil {
		result.Err = fmt.Errorf("stats: %w", err)

		return result
	}

	result.Commit.Insertions = stats.Insertions
	result.Commit.Deletions = stats.Deletions

	return result
}
