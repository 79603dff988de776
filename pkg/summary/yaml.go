package summary

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileName is the name of the YAML export inside the output directory.
const FileName = "summary.yaml"

const (
	filePerm   = 0o644
	yamlIndent = 2
)

// WriteYAML writes the summary to outputDir/summary.yaml and returns the path.
func WriteYAML(outputDir string, s *Summary) (string, error) {
	path := filepath.Join(outputDir, FileName)

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, filePerm)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", path, err)
	}

	enc := yaml.NewEncoder(f)
	enc.SetIndent(yamlIndent)

	encodeErr := enc.Encode(s)
	closeEncErr := enc.Close()
	closeErr := f.Close()

	switch {
	case encodeErr != nil:
		return "", fmt.Errorf("encode %s: %w", path, encodeErr)
	case closeEncErr != nil:
		return "", fmt.Errorf("flush %s: %w", path, closeEncErr)
	case closeErr != nil:
		return "", fmt.Errorf("close %s: %w", path, closeErr)
	}

	return path, nil
}
