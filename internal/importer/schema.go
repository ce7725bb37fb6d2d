// Package importer loads seed files of channels and their task templates.
package importer

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ImportSchema is the top-level YAML structure of a seed file.
type ImportSchema struct {
	Channels []ChannelImport `yaml:"channels"`
}

type ChannelImport struct {
	Name      string           `yaml:"name"`
	SortOrder *int             `yaml:"sort_order,omitempty"`
	Templates []TemplateImport `yaml:"templates,omitempty"`
}

// TemplateImport is one task template. A shift listed under Shifts is
// staffed; omitted shifts are not.
type TemplateImport struct {
	Name        string                 `yaml:"name"`
	Description string                 `yaml:"description,omitempty"`
	Priority    *int                   `yaml:"priority,omitempty"`
	Rule        string                 `yaml:"rule"`
	Important   *bool                  `yaml:"important,omitempty"`
	Shifts      map[string]ShiftImport `yaml:"shifts,omitempty"`
	SubTasks    []string               `yaml:"sub_tasks,omitempty"`
}

type ShiftImport struct {
	Min *int `yaml:"min,omitempty"`
	Max *int `yaml:"max,omitempty"`
}

// LoadImportSchema reads and parses a seed file.
func LoadImportSchema(path string) (*ImportSchema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseImportSchema(data)
}

func ParseImportSchema(data []byte) (*ImportSchema, error) {
	var schema ImportSchema
	if err := yaml.Unmarshal(data, &schema); err != nil {
		return nil, fmt.Errorf("parsing import file: %w", err)
	}
	return &schema, nil
}
