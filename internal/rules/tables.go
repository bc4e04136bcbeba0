package rules

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"
)

// Category is one entry of the category filter list.
type Category struct {
	Index int    `yaml:"index"`
	Label string `yaml:"label"`
}

// Tables holds the static lookups the page resolves codes and tags through.
type Tables struct {
	// ImpactRanks maps a severity code to its rank. Keys compare case-insensitively.
	ImpactRanks map[string]int
	// TagCategories maps a tag to a 1-based position in Categories.
	TagCategories map[string]int
	Categories    []Category
	// RiskLabels names a total-risk or likelihood rank.
	RiskLabels map[int]string
}

// DefaultTables returns the OpenShift advisor tables. Every call returns fresh
// maps so callers cannot alter one another's copy.
func DefaultTables() Tables {
	return Tables{
		ImpactRanks: map[string]int{
			"LOW":       1,
			"MODERATE":  2,
			"MEDIUM":    2,
			"IMPORTANT": 3,
			"HIGH":      3,
			"CRITICAL":  4,
		},
		TagCategories: map[string]int{
			"service_availability": 1,
			"performance":          2,
			"fault_tolerance":      3,
			"security":             4,
		},
		Categories: []Category{
			{Index: 1, Label: "Service Availability"},
			{Index: 2, Label: "Performance"},
			{Index: 3, Label: "Fault Tolerance"},
			{Index: 4, Label: "Security"},
		},
		RiskLabels: map[int]string{
			1: "Low",
			2: "Moderate",
			3: "Important",
			4: "Critical",
		},
	}
}

// ImpactRank returns the rank of a severity code, 0 when unknown.
func (t Tables) ImpactRank(code string) int {
	if rank, ok := t.ImpactRanks[code]; ok {
		return rank
	}
	for name, rank := range t.ImpactRanks {
		if strings.EqualFold(name, code) {
			return rank
		}
	}
	return 0
}

// RiskLabel names a rank, or returns "" when the rank is unknown.
func (t Tables) RiskLabel(rank int) string {
	return t.RiskLabels[rank]
}

// Validate checks that every tag points at an existing category.
func (t Tables) Validate() error {
	var errs []error
	// ImpactRank falls back to a case-insensitive match, so codes must stay
	// unique ignoring case.
	folded := make(map[string]string, len(t.ImpactRanks))
	for _, code := range slices.Sorted(maps.Keys(t.ImpactRanks)) {
		if rank := t.ImpactRanks[code]; rank <= 0 {
			errs = append(errs, fmt.Errorf("impact %q: rank must be positive, got %d", code, rank))
		}
		key := strings.ToUpper(code)
		if prev, ok := folded[key]; ok {
			errs = append(errs, fmt.Errorf("impact %q: duplicates %q ignoring case", code, prev))
			continue
		}
		folded[key] = code
	}
	for i, c := range t.Categories {
		if c.Index != i+categoryIndexBase {
			errs = append(errs, fmt.Errorf("category %q: index %d out of order, want %d", c.Label, c.Index, i+categoryIndexBase))
		}
	}
	for tag, idx := range t.TagCategories {
		if idx < categoryIndexBase || idx-categoryIndexBase >= len(t.Categories) {
			errs = append(errs, fmt.Errorf("tag %q: category %d not defined", tag, idx))
		}
	}
	return errors.Join(errs...)
}
