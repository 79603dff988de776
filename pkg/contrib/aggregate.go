package contrib

import (
	"cmp"
	"context"
	"log/slog"
	"slices"
	"time"
)

// AuthorStats holds one author's activity within a single window.
type AuthorStats struct {
	Added       int
	Removed     int
	CommitDates []time.Time
}

// Total is the number of lines moved (added plus removed).
func (s *AuthorStats) Total() int {
	return s.Added + s.Removed
}

// CommitsPerDay counts commits by calendar day (see Day).
func (s *AuthorStats) CommitsPerDay() map[time.Time]int {
	counts := make(map[time.Time]int, len(s.CommitDates))

	for _, when := range s.CommitDates {
		counts[Day(when)]++
	}

	return counts
}

// Stats maps author identity to its activity.
type Stats map[string]*AuthorStats

// AuthorEntry pairs an author with its stats.
type AuthorEntry struct {
	Author string
	Stats  *AuthorStats
}

// Ranked returns the authors with nonzero activity, sorted by descending
// Total. Ties are ordered by author identity.
func (s Stats) Ranked() []AuthorEntry {
	entries := make([]AuthorEntry, 0, len(s))

	for author, stats := range s {
		if stats.Total() == 0 {
			continue
		}

		entries = append(entries, AuthorEntry{Author: author, Stats: stats})
	}

	slices.SortFunc(entries, func(a, b AuthorEntry) int {
		byTotal := cmp.Compare(b.Stats.Total(), a.Stats.Total())
		if byTotal != 0 {
			return byTotal
		}

		return cmp.Compare(a.Author, b.Author)
	})

	return entries
}

// Aggregation is the outcome of folding one window's commits.
type Aggregation struct {
	Stats   Stats
	Commits int
	Skipped int
}

// Aggregate folds commit results into per-author statistics. Failed results
// are logged and contribute nothing.
func Aggregate(ctx context.Context, results []CommitResult, logger *slog.Logger) Aggregation {
	agg := Aggregation{Stats: make(Stats)}

	for _, result := range results {
		commit := result.Commit

		if !result.OK() {
			logger.WarnContext(ctx, "error processing commit",
				"commit", commit.Hash, "author", commit.Author, "error", result.Err)

			agg.Skipped++

			continue
		}

		stats, ok := agg.Stats[commit.Author]
		if !ok {
			stats = &AuthorStats{}
			agg.Stats[commit.Author] = stats
		}

		stats.Added += commit.Insertions
		stats.Removed += commit.Deletions
		stats.CommitDates = append(stats.CommitDates, commit.When)
		agg.Commits++
	}

	return agg
}
