// Package clusters feeds the affected-clusters table.
package clusters

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Cluster is one cluster affected by a recommendation.
type Cluster struct {
	ID            string
	Name          string
	Version       string
	LastCheckedAt time.Time
	Impacted      time.Time
}

// DisplayName returns the cluster name, or its id when unnamed.
func (c Cluster) DisplayName() string {
	if strings.TrimSpace(c.Name) != "" {
		return c.Name
	}
	return c.ID
}

type clusterLine struct {
	ID            string `yaml:"cluster"`
	Name          string `yaml:"cluster_name"`
	LastCheckedAt string `yaml:"last_checked_at"`
	Impacted      string `yaml:"impacted"`
	Meta          struct {
		Version string `yaml:"cluster_version"`
	} `yaml:"meta"`
}

// ParseLine decodes one JSON (or flow YAML) record.
func ParseLine(line string) (Cluster, error) {
	var raw clusterLine
	if err := yaml.Unmarshal([]byte(line), &raw); err != nil {
		return Cluster{}, fmt.Errorf("parse cluster: %w", err)
	}
	if raw.ID == "" {
		return Cluster{}, fmt.Errorf("parse cluster: missing cluster id")
	}
	c := Cluster{ID: raw.ID, Name: raw.Name, Version: raw.Meta.Version}
	var err error
	if c.LastCheckedAt, err = parseTime(raw.LastCheckedAt); err != nil {
		return Cluster{}, fmt.Errorf("cluster %s: last_checked_at: %w", raw.ID, err)
	}
	if c.Impacted, err = parseTime(raw.Impacted); err != nil {
		return Cluster{}, fmt.Errorf("cluster %s: impacted: %w", raw.ID, err)
	}
	return c, nil
}

func parseTime(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	return time.Parse(time.RFC3339, value)
}

// Set keeps the latest record per cluster id.
type Set struct {
	byID  map[string]int
	items []Cluster
}

// NewSet returns an empty set.
func NewSet() *Set {
	return &Set{byID: make(map[string]int)}
}

// Upsert adds c or replaces the record with the same id.
func (s *Set) Upsert(c Cluster) {
	if idx, ok := s.byID[c.ID]; ok {
		s.items[idx] = c
		return
	}
	s.byID[c.ID] = len(s.items)
	s.items = append(s.items, c)
}

// Len returns the number of distinct clusters.
func (s *Set) Len() int { return len(s.items) }

// Query returns clusters whose display name contains filter (case-insensitive),
// most recently checked first.
func (s *Set) Query(filter string) []Cluster {
	needle := strings.ToLower(strings.TrimSpace(filter))
	out := make([]Cluster, 0, len(s.items))
	for _, c := range s.items {
		if needle != "" && !strings.Contains(strings.ToLower(c.DisplayName()), needle) {
			continue
		}
		out = append(out, c)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].LastCheckedAt.Equal(out[j].LastCheckedAt) {
			return out[i].LastCheckedAt.After(out[j].LastCheckedAt)
		}
		return out[i].DisplayName() < out[j].DisplayName()
	})
	return out
}
