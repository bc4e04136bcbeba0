package tui

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"advisor/internal/messages"
	"advisor/internal/rules"
)

// categoryLabelLimit is how many category labels show before the group collapses.
const categoryLabelLimit = 1

// renderLabelGroup shows up to limit labels followed by an overflow marker.
// Expanded groups show everything plus a collapse hint.
func renderLabelGroup(theme Theme, msgs *messages.Printer, labels []rules.CategoryLabel, limit int, expanded bool) string {
	if len(labels) == 0 {
		return ""
	}
	shown := labels
	if !expanded && len(labels) > limit {
		shown = labels[:limit]
	}
	parts := make([]string, 0, len(shown)+1)
	for _, l := range shown {
		parts = append(parts, theme.labelStyle(l.Color).Render(l.Text))
	}
	switch {
	case len(labels) <= limit:
	case expanded:
		parts = append(parts, theme.Muted.Render(msgs.Format(messages.ShowLess)))
	default:
		parts = append(parts, theme.Muted.Render(msgs.Format(messages.MoreLabels, len(labels)-limit)))
	}
	return strings.Join(parts, " ")
}

// renderTags renders a rule's tags: category labels for a list, the raw
// string as one unstyled label otherwise.
func renderTags(theme Theme, msgs *messages.Printer, tables rules.Tables, tags *rules.Tags, expanded bool) string {
	if tags == nil || !tags.Present() {
		return ""
	}
	if !tags.IsList() {
		return theme.PlainLabel.Render(tags.Scalar)
	}
	return renderLabelGroup(theme, msgs, rules.CategoryLabels(tags.List, tables), categoryLabelLimit, expanded)
}

// RenderRuleLabels renders the inline labels next to a rule title.
func RenderRuleLabels(theme Theme, msgs *messages.Printer, rule rules.AdjustedRule) string {
	var parts []string
	if rule.Impact.Name != "" {
		name := cases.Title(language.English).String(strings.ToLower(rule.Impact.Name))
		parts = append(parts, theme.rankStyle(rule.Impact.Impact).Render(name))
	}
	if rule.HasTag("incident") {
		parts = append(parts, theme.labelStyle(rules.LabelRed).Render(msgs.Format(messages.Incident)))
	}
	if rule.Disabled {
		parts = append(parts, theme.labelStyle(rules.LabelGrey).Render(msgs.Format(messages.Disabled)))
	}
	return strings.Join(parts, " ")
}
