// Command mazeschema writes the JSON Schema of the maze document.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/beka-birhanu/vinom-mazegen/document"
)

func main() {
	out := flag.String("out", "maze.schema.json", "path to write the schema to")
	flag.Parse()

	if err := writeSchema(*out); err != nil {
		fmt.Fprintf(os.Stderr, "mazeschema: %v\n", err)
		os.Exit(1)
	}
}

func writeSchema(path string) error {
	data, err := json.MarshalIndent(document.Schema(), "", "  ")
	if err != nil {
		return fmt.Errorf("marshal schema: %w", err)
	}
	data = append(data, '\n')

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create schema directory: %w", err)
		}
	}

	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o644); err != nil {
		return fmt.Errorf("write temp schema: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("replace schema: %w", err)
	}
	return nil
}
