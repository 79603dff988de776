package summary_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/Sumatoshi-tech/contribplot/pkg/chart"
	"github.com/Sumatoshi-tech/contribplot/pkg/contrib"
	"github.com/Sumatoshi-tech/contribplot/pkg/summary"
)

var today = time.Date(2024, time.March, 15, 12, 0, 0, 0, time.UTC)

func sampleSummary() *summary.Summary {
	agg := contrib.Aggregation{
		Stats: contrib.Stats{
			"alice@example.com": {Added: 1200, Removed: 300, CommitDates: []time.Time{today, today}},
			"bob@example.com":   {Added: 10, Removed: 0, CommitDates: []time.Time{today}},
			"idle@example.com":  {},
		},
		Commits: 4,
		Skipped: 1,
	}

	records := []chart.Record{
		{Author: "alice@example.com", File: "alice_example_com_00000000_last_two_weeks.svg"},
		{Author: "bob@example.com", File: "bob_example_com_00000000_last_two_weeks.svg"},
	}

	s := summary.New("/tmp/repo", today)
	s.AddWindow(contrib.Window{Name: "last_two_weeks", Days: 14}, today, agg, records)

	return s
}

func TestAddWindow_RanksAndSkipsIdle(t *testing.T) {
	t.Parallel()

	s := sampleSummary()

	require.Len(t, s.Windows, 1)

	win := s.Windows[0]
	assert.Equal(t, "2024-03-01", win.Start)
	assert.Equal(t, "2024-03-15", win.End)
	assert.Equal(t, 4, win.Commits)
	assert.Equal(t, 1, win.Skipped)

	require.Len(t, win.Authors, 2)
	assert.Equal(t, "alice@example.com", win.Authors[0].Author)
	assert.Equal(t, 2, win.Authors[0].Commits)
	assert.Equal(t, "alice_example_com_00000000_last_two_weeks.svg", win.Authors[0].File)
	assert.Equal(t, "bob@example.com", win.Authors[1].Author)
}

func TestWriteTable(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	require.NoError(t, summary.WriteTable(&buf, sampleSummary()))

	out := buf.String()
	assert.Contains(t, out, "last_two_weeks")
	assert.Contains(t, out, "alice@example.com")
	assert.Contains(t, out, "1,200")
	assert.Contains(t, out, "2 authors")
}

func TestWriteYAML(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	path, err := summary.WriteYAML(dir, sampleSummary())
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, summary.FileName), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var decoded summary.Summary

	require.NoError(t, yaml.Unmarshal(data, &decoded))
	assert.Equal(t, "2024-03-15", decoded.Today)
	require.Len(t, decoded.Windows, 1)
	assert.Equal(t, 1500, decoded.Windows[0].Authors[0].Added+decoded.Windows[0].Authors[0].Removed)
}

func TestWriteYAML_MissingDir(t *testing.T) {
	t.Parallel()

	_, err := summary.WriteYAML(filepath.Join(t.TempDir(), "missing"), sampleSummary())
	require.Error(t, err)
}
