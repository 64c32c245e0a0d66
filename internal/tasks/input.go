package tasks

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Input is a raw task record as read from a task file or handed over by a host.
type Input struct {
	ID           string         `json:"id,omitempty" yaml:"id,omitempty"`
	Name         string         `json:"name" yaml:"name"`
	Start        string         `json:"start,omitempty" yaml:"start,omitempty"`
	End          string         `json:"end,omitempty" yaml:"end,omitempty"`
	Progress     float64        `json:"progress,omitempty" yaml:"progress,omitempty"`
	Dependencies DependencyList `json:"dependencies,omitempty" yaml:"dependencies,omitempty"`
	ProjectID    string         `json:"project_id,omitempty" yaml:"project_id,omitempty"`
	CustomClass  string         `json:"custom_class,omitempty" yaml:"custom_class,omitempty"`
}

// ProjectInput is a raw project record.
type ProjectInput struct {
	ID           string `json:"id" yaml:"id"`
	Name         string `json:"name" yaml:"name"`
	ProgressDate string `json:"progress_date,omitempty" yaml:"progress_date,omitempty"` // Tracked current-progress date; empty means now
}

// DependencyList accepts either a comma-separated string or a list of ids.
type DependencyList []string

// UnmarshalJSON implements json.Unmarshaler.
func (d *DependencyList) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*d = ParseDependencies(s)
		return nil
	}

	var list []string
	if err := json.Unmarshal(data, &list); err != nil {
		return fmt.Errorf("dependencies must be a string or a list of strings: %w", err)
	}
	*d = normalizeDependencies(list)
	return nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *DependencyList) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		*d = ParseDependencies(value.Value)
		return nil
	}

	var list []string
	if err := value.Decode(&list); err != nil {
		return fmt.Errorf("dependencies must be a string or a list of strings: %w", err)
	}
	*d = normalizeDependencies(list)
	return nil
}

// ParseDependencies splits a comma-separated id list, trimming blanks and
// dropping empty and repeated entries.
func ParseDependencies(s string) []string {
	return normalizeDependencies(strings.Split(s, ","))
}

func normalizeDependencies(ids []string) []string {
	out := make([]string, 0, len(ids))
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	"01/02/2006 15:04:05",
	"01/02/2006 15:04",
	"01/02/2006",
}

// ParseDate parses the date layouts accepted in task files. Dates without a
// zone are read as UTC.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	var err error
	for _, layout := range dateLayouts {
		var t time.Time
		t, err = time.Parse(layout, s)
		if err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unable to parse date %q: %w", s, err)
}
