package report

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// Default template file names.
const (
	IndexTemplateName = "index.tpl.html"
	TabTemplateName   = "tabs.tpl.html"

	templateDirPerm  = 0o750
	templateFilePerm = 0o644
)

// ErrTemplateNotFound is returned when a template file does not exist.
var ErrTemplateNotFound = errors.New("template file not found")

//go:embed templates/*.tpl.html
var defaultTemplates embed.FS

// Templates holds the raw text of the two report templates.
type Templates struct {
	Index string
	Tab   string
}

// LoadTemplates reads the main and tab templates from disk.
func LoadTemplates(indexPath, tabPath string) (Templates, error) {
	index, err := readTemplate(indexPath)
	if err != nil {
		return Templates{}, err
	}

	tab, err := readTemplate(tabPath)
	if err != nil {
		return Templates{}, err
	}

	return Templates{Index: index, Tab: tab}, nil
}

func readTemplate(path string) (string, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", fmt.Errorf("%w at %s", ErrTemplateNotFound, path)
	}

	if err != nil {
		return "", fmt.Errorf("read template %s: %w", path, err)
	}

	return string(data), nil
}

// DefaultTemplates returns the templates bundled with the binary.
func DefaultTemplates() Templates {
	index, _ := defaultTemplates.ReadFile("templates/" + IndexTemplateName)
	tab, _ := defaultTemplates.ReadFile("templates/" + TabTemplateName)

	return Templates{Index: string(index), Tab: string(tab)}
}

// WriteDefaultTemplates writes the bundled templates into dir, creating it
// if needed, and returns the written paths. Existing files are left alone
// unless overwrite is set.
func WriteDefaultTemplates(dir string, overwrite bool) ([]string, error) {
	mkErr := os.MkdirAll(dir, templateDirPerm)
	if mkErr != nil {
		return nil, fmt.Errorf("create template dir: %w", mkErr)
	}

	defaults := DefaultTemplates()
	files := []struct {
		name string
		body string
	}{
		{name: IndexTemplateName, body: defaults.Index},
		{name: TabTemplateName, body: defaults.Tab},
	}

	written := make([]string, 0, len(files))

	for _, file := range files {
		path := filepath.Join(dir, file.name)

		_, statErr := os.Stat(path)
		if statErr == nil && !overwrite {
			continue
		}

		writeErr := os.WriteFile(path, []byte(file.body), templateFilePerm)
		if writeErr != nil {
			return written, fmt.Errorf("write template %s: %w", path, writeErr)
		}

		written = append(written, path)
	}

	return written, nil
}
