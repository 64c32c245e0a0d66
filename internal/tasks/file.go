package tasks

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// File is the on-disk task file format. A file holding a bare list is read
// as a task list without projects.
type File struct {
	Projects []ProjectInput `json:"projects,omitempty" yaml:"projects,omitempty"`
	Tasks    []Input        `json:"tasks" yaml:"tasks"`
}

// LoadFile reads a YAML (.yaml, .yml) or JSON task file.
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading task file: %w", err)
	}

	var f *File
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		f, err = decodeYAML(data)
	default:
		f, err = decodeJSON(data)
	}
	if err != nil {
		return nil, fmt.Errorf("parsing task file %s: %w", path, err)
	}
	return f, nil
}

// SaveFile writes f to path, as YAML for .yaml and .yml paths and JSON
// otherwise. Creates parent directories if they don't exist.
func SaveFile(f *File, path string) error {
	var (
		data []byte
		err  error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		data, err = yaml.Marshal(f)
	default:
		data, err = json.MarshalIndent(f, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("marshaling task file: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating directory %s: %w", dir, err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing task file to %s: %w", path, err)
	}
	return nil
}

func decodeJSON(data []byte) (*File, error) {
	if trimmed := bytes.TrimSpace(data); len(trimmed) > 0 && trimmed[0] == '[' {
		var list []Input
		if err := json.Unmarshal(trimmed, &list); err != nil {
			return nil, err
		}
		return &File{Tasks: list}, nil
	}

	var f File
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, err
	}
	return &f, nil
}

func decodeYAML(data []byte) (*File, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, err
	}
	if len(root.Content) == 0 {
		return &File{}, nil
	}

	doc := root.Content[0]
	if doc.Kind == yaml.SequenceNode {
		var list []Input
		if err := doc.Decode(&list); err != nil {
			return nil, err
		}
		return &File{Tasks: list}, nil
	}

	var f File
	if err := doc.Decode(&f); err != nil {
		return nil, err
	}
	return &f, nil
}
