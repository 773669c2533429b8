package manifest

import (
	"fmt"
	"os"

	"go.yaml.in/yaml/v3"
)

// Parse reads and unmarshals a catalog file. It performs no schema or
// declaration validation; see Validate and File.Catalog for those.
func Parse(path string) (*File, error) {
	data, err := readFile(path)
	if err != nil {
		return nil, err
	}
	return ParseBytes(data, path)
}

// ParseBytes unmarshals catalog YAML. The path is used in error messages
// only.
func ParseBytes(data []byte, path string) (*File, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing catalog %s: %w", path, err)
	}
	if f.Name == "" {
		return nil, fmt.Errorf("catalog %s missing required 'name' field", path)
	}
	return &f, nil
}

// readFile reads the contents of a file at the given path.
func readFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading file %s: %w", path, err)
	}
	return data, nil
}
