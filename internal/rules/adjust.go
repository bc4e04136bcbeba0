package rules

import (
	"errors"
	"fmt"
	"strings"
)

// ErrErrorKeyNotFound is returned when a rule has no entry for the requested error key.
var ErrErrorKeyNotFound = errors.New("error key not found")

const errorKeySeparator = "|"

// ErrorKey extracts the error key from a recommendation id of the form
// "plugin.module|ERROR_KEY". Ids without a separator yield "".
func ErrorKey(recommendationID string) string {
	parts := strings.Split(recommendationID, errorKeySeparator)
	if len(parts) < 2 {
		return ""
	}
	return parts[1]
}

// Adjust flattens raw onto the error key named by recommendationID. Fields
// resolve metadata first, then the error-key entry, then the rule itself.
// raw is not modified.
func Adjust(raw RawRule, recommendationID string, tables Tables) (AdjustedRule, error) {
	key := ErrorKey(recommendationID)
	entry, ok := raw.ErrorKeys[key]
	if !ok {
		return AdjustedRule{}, fmt.Errorf("%w: %q (recommendation %q)", ErrErrorKeyNotFound, key, recommendationID)
	}

	// Highest precedence last.
	layers := []Fields{raw.Fields, entry.Fields, entry.Metadata}

	adjusted := AdjustedRule{
		RuleID:                value(layers, func(f Fields) *string { return f.RuleID }),
		Plugin:                value(layers, func(f Fields) *string { return f.Plugin }),
		Description:           value(layers, func(f Fields) *string { return f.Description }),
		Summary:               value(layers, func(f Fields) *string { return f.Summary }),
		Reason:                value(layers, func(f Fields) *string { return f.Reason }),
		Resolution:            value(layers, func(f Fields) *string { return f.Resolution }),
		MoreInfo:              value(layers, func(f Fields) *string { return f.MoreInfo }),
		Generic:               value(layers, func(f Fields) *string { return f.Generic }),
		PublishDate:           value(layers, func(f Fields) *string { return f.PublishDate }),
		Likelihood:            value(layers, func(f Fields) *int { return f.Likelihood }),
		TotalRisk:             value(layers, func(f Fields) *int { return f.TotalRisk }),
		Disabled:              value(layers, func(f Fields) *bool { return f.Disabled }),
		ImpactedClustersCount: value(layers, func(f Fields) *int { return f.ImpactedClustersCount }),
	}

	if tags, ok := lookup(layers, func(f Fields) *Tags { return f.Tags }); ok {
		copied := tags.clone()
		adjusted.Tags = &copied
	}

	code, ok := lookup(layers, func(f Fields) *string { return f.Impact })
	if !ok {
		code = value(layers, func(f Fields) *string { return f.Severity })
	}
	adjusted.Impact = Impact{Name: code, Impact: tables.ImpactRank(code)}

	return adjusted, nil
}

func lookup[T any](layers []Fields, get func(Fields) *T) (T, bool) {
	for i := len(layers) - 1; i >= 0; i-- {
		if v := get(layers[i]); v != nil {
			return *v, true
		}
	}
	var zero T
	return zero, false
}

func value[T any](layers []Fields, get func(Fields) *T) T {
	v, _ := lookup(layers, get)
	return v
}
