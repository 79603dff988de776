// Package summary collects per-window author totals for the terminal table
// and the summary.yaml export.
package summary

import (
	"time"

	"github.com/Sumatoshi-tech/contribplot/pkg/chart"
	"github.com/Sumatoshi-tech/contribplot/pkg/contrib"
)

const dateLayout = time.DateOnly

// Author is one ranked author row of a window.
type Author struct {
	Author  string `yaml:"author"`
	Added   int    `yaml:"added"`
	Removed int    `yaml:"removed"`
	Commits int    `yaml:"commits"`
	File    string `yaml:"file,omitempty"`
}

// Window summarises one processed window.
type Window struct {
	Name    string   `yaml:"name"`
	Days    int      `yaml:"days"`
	Start   string   `yaml:"start"`
	End     string   `yaml:"end"`
	Commits int      `yaml:"commits"`
	Skipped int      `yaml:"skipped"`
	Authors []Author `yaml:"authors"`
}

// Summary is the whole run.
type Summary struct {
	Repository string   `yaml:"repository"`
	Today      string   `yaml:"today"`
	Windows    []Window `yaml:"windows"`
}

// New creates an empty Summary for a run over repository.
func New(repository string, today time.Time) *Summary {
	return &Summary{
		Repository: repository,
		Today:      contrib.Day(today).Format(dateLayout),
	}
}

// AddWindow appends a window in ranked author order. Authors without a
// written chart keep an empty File.
func (s *Summary) AddWindow(window contrib.Window, today time.Time, agg contrib.Aggregation, records []chart.Record) {
	start, end := window.Span(today)

	files := make(map[string]string, len(records))
	for _, rec := range records {
		files[rec.Author] = rec.File
	}

	ranked := agg.Stats.Ranked()
	authors := make([]Author, 0, len(ranked))

	for _, entry := range ranked {
		authors = append(authors, Author{
			Author:  entry.Author,
			Added:   entry.Stats.Added,
			Removed: entry.Stats.Removed,
			Commits: len(entry.Stats.CommitDates),
			File:    files[entry.Author],
		})
	}

	s.Windows = append(s.Windows, Window{
		Name:    window.Name,
		Days:    window.Days,
		Start:   start.Format(dateLayout),
		End:     end.Format(dateLayout),
		Commits: agg.Commits,
		Skipped: agg.Skipped,
		Authors: authors,
	})
}
