package rules

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadTables reads lookup tables from a YAML file. Sections present in the
// file replace the matching defaults; absent sections keep them.
func LoadTables(path string) (Tables, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return Tables{}, err
	}

	var tf tablesFile
	if err := yaml.Unmarshal(content, &tf); err != nil {
		return Tables{}, fmt.Errorf("parse tables: %w", err)
	}

	tables := DefaultTables()
	if tf.ImpactRanks != nil {
		tables.ImpactRanks = tf.ImpactRanks
	}
	if tf.TagCategories != nil {
		tables.TagCategories = tf.TagCategories
	}
	if tf.Categories != nil {
		tables.Categories = tf.Categories
	}
	if tf.RiskLabels != nil {
		tables.RiskLabels = tf.RiskLabels
	}
	if err := tables.Validate(); err != nil {
		return Tables{}, fmt.Errorf("%s: %w", path, err)
	}
	return tables, nil
}

// LoadResponse reads a recommendation response (YAML or JSON) from disk.
func LoadResponse(path string) (Response, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return Response{}, err
	}
	return ParseResponse(content)
}

// ParseResponse decodes a recommendation response.
func ParseResponse(content []byte) (Response, error) {
	if len(bytes.TrimSpace(content)) == 0 {
		return Response{}, fmt.Errorf("parse response: empty document")
	}
	var resp Response
	if err := yaml.Unmarshal(content, &resp); err != nil {
		return Response{}, fmt.Errorf("parse response: %w", err)
	}
	return resp, nil
}

type tablesFile struct {
	ImpactRanks   map[string]int `yaml:"impact_ranks"`
	TagCategories map[string]int `yaml:"tag_categories"`
	Categories    []Category     `yaml:"categories"`
	RiskLabels    map[int]string `yaml:"risk_labels"`
}
