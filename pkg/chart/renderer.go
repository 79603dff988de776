package chart

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/Sumatoshi-tech/contribplot/pkg/contrib"
)

const chartFilePerm = 0o644

// Record pairs an author with the chart file written for it.
type Record struct {
	Author string `yaml:"author"`
	File   string `yaml:"file"`
}

// Renderer writes one chart file per active author into OutputDir.
type Renderer struct {
	OutputDir string
	Size      Size
	Logger    *slog.Logger
}

// NewRenderer creates a Renderer with the default chart size.
func NewRenderer(outputDir string, logger *slog.Logger) *Renderer {
	return &Renderer{
		OutputDir: outputDir,
		Size:      DefaultSize(),
		Logger:    logger,
	}
}

// RenderWindow draws a chart for every author with nonzero activity, in
// descending order of lines moved, and returns the records actually written.
// Authors with no added or removed lines get neither a file nor a record.
func (r *Renderer) RenderWindow(
	ctx context.Context,
	window contrib.Window,
	today time.Time,
	stats contrib.Stats,
) ([]Record, error) {
	ranked := stats.Ranked()
	records := make([]Record, 0, len(ranked))

	for _, entry := range ranked {
		ctxErr := ctx.Err()
		if ctxErr != nil {
			return records, ctxErr
		}

		name := FileName(entry.Author, window)

		writeErr := r.writeChart(name, Data{
			Author: entry.Author,
			Window: window,
			Today:  today,
			Stats:  entry.Stats,
		})
		if writeErr != nil {
			return records, writeErr
		}

		r.Logger.InfoContext(ctx, "chart saved", "window", window.Name, "author", entry.Author, "file", name)

		records = append(records, Record{Author: entry.Author, File: name})
	}

	return records, nil
}

func (r *Renderer) writeChart(name string, data Data) error {
	var buf bytes.Buffer

	drawErr := Draw(&buf, data, r.Size)
	if drawErr != nil {
		return fmt.Errorf("draw chart for %s: %w", data.Author, drawErr)
	}

	path := filepath.Join(r.OutputDir, name)

	writeErr := os.WriteFile(path, buf.Bytes(), chartFilePerm)
	if writeErr != nil {
		return fmt.Errorf("write chart %s: %w", path, writeErr)
	}

	return nil
}
