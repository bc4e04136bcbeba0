package rules

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Response is the payload returned for a single recommendation.
type Response struct {
	Content RawRule `yaml:"content"`
	Status  string  `yaml:"status"`
}

// Fields is the shape shared by a rule, its error-key entries and their
// metadata. Pointers distinguish an absent field from an empty one.
type Fields struct {
	RuleID                *string `yaml:"rule_id"`
	Plugin                *string `yaml:"plugin"`
	Description           *string `yaml:"description"`
	Summary               *string `yaml:"summary"`
	Reason                *string `yaml:"reason"`
	Resolution            *string `yaml:"resolution"`
	MoreInfo              *string `yaml:"more_info"`
	Generic               *string `yaml:"generic"`
	PublishDate           *string `yaml:"publish_date"`
	Impact                *string `yaml:"impact"`
	Severity              *string `yaml:"severity"`
	Likelihood            *int    `yaml:"likelihood"`
	TotalRisk             *int    `yaml:"total_risk"`
	Tags                  *Tags   `yaml:"tags"`
	Disabled              *bool   `yaml:"disabled"`
	ImpactedClustersCount *int    `yaml:"impacted_clusters_count"`
}

// RawRule is a recommendation as delivered by the content service.
type RawRule struct {
	Fields    `yaml:",inline"`
	ErrorKeys map[string]ErrorKeyEntry `yaml:"error_keys"`
}

// ErrorKeyEntry is one error key of a rule.
type ErrorKeyEntry struct {
	Fields   `yaml:",inline"`
	Metadata Fields `yaml:"metadata"`
}

// Impact pairs a severity code with its rank.
type Impact struct {
	Name   string
	Impact int
}

// AdjustedRule is a rule flattened onto one of its error keys.
type AdjustedRule struct {
	RuleID                string
	Plugin                string
	Description           string
	Summary               string
	Reason                string
	Resolution            string
	MoreInfo              string
	Generic               string
	PublishDate           string
	Impact                Impact
	Likelihood            int
	TotalRisk             int
	Tags                  *Tags
	Disabled              bool
	ImpactedClustersCount int
}

// PublishedAt parses the publish date.
func (r AdjustedRule) PublishedAt() (time.Time, error) {
	for _, layout := range []string{time.RFC3339, "2006-01-02 15:04:05", time.DateOnly} {
		if t, err := time.Parse(layout, r.PublishDate); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("parse publish date %q", r.PublishDate)
}

// HasTag reports whether the rule carries tag. Scalar tags compare as a whole.
func (r AdjustedRule) HasTag(tag string) bool {
	if r.Tags == nil {
		return false
	}
	if r.Tags.IsList() {
		return slices.ContainsFunc(r.Tags.List, func(t string) bool {
			return strings.EqualFold(t, tag)
		})
	}
	return strings.EqualFold(r.Tags.Scalar, tag)
}

// Tags holds either a list of tags or a single free-form string.
type Tags struct {
	List   []string
	Scalar string
	isList bool
}

// TagList builds list-valued tags.
func TagList(tags ...string) Tags {
	return Tags{List: append([]string{}, tags...), isList: true}
}

// ScalarTags builds string-valued tags.
func ScalarTags(value string) Tags {
	return Tags{Scalar: value}
}

// IsList reports whether the tags were given as a sequence.
func (t Tags) IsList() bool { return t.isList }

// Present reports whether there is anything to render. An empty list counts,
// an empty string does not.
func (t Tags) Present() bool {
	return t.isList || t.Scalar != ""
}

func (t Tags) clone() Tags {
	if t.isList {
		return TagList(t.List...)
	}
	return ScalarTags(t.Scalar)
}

// UnmarshalYAML accepts a sequence or a scalar.
func (t *Tags) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.SequenceNode:
		var list []string
		if err := node.Decode(&list); err != nil {
			return fmt.Errorf("tags: %w", err)
		}
		*t = TagList(list...)
	case yaml.ScalarNode:
		*t = ScalarTags(node.Value)
	default:
		return fmt.Errorf("tags: expected list or string at line %d", node.Line)
	}
	return nil
}
