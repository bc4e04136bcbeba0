package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"advisor/internal/messages"
	"advisor/internal/rules"
)

// publishDateLayout formats dates without a time of day.
const publishDateLayout = "2 Jan 2006"

// DetailOptions selects the rule details variant.
type DetailOptions struct {
	// OpenShift adds the cluster-centric fields.
	OpenShift bool
	// DetailsPage renders Header above the body.
	DetailsPage bool
	Header      string
	Width       int
}

// RenderRuleDetails renders the body of a recommendation.
func RenderRuleDetails(env Env, rule rules.AdjustedRule, opts DetailOptions) string {
	width := opts.Width
	if width <= 0 {
		width = 80
	}
	sections := make([]string, 0, 8)
	if opts.DetailsPage && opts.Header != "" {
		sections = append(sections, opts.Header)
	}
	if body := env.Markdown.Render(coalesce(rule.Summary, rule.Generic), width); body != "" {
		sections = append(sections, body)
	}
	for _, part := range []struct {
		title messages.Key
		text  string
	}{
		{messages.Reason, rule.Reason},
		{messages.Resolution, rule.Resolution},
	} {
		if strings.TrimSpace(part.text) == "" {
			continue
		}
		sections = append(sections, env.Theme.SectionTitle.Render(env.Messages.Format(part.title))+"\n"+env.Markdown.Render(part.text, width))
	}
	if risk := renderRisk(env, rule); risk != "" {
		sections = append(sections, risk)
	}
	if strings.TrimSpace(rule.MoreInfo) != "" {
		sections = append(sections, env.Theme.SectionTitle.Render(env.Messages.Format(messages.MoreInfo))+"\n"+env.Markdown.Render(rule.MoreInfo, width))
	}
	if opts.OpenShift && rule.ImpactedClustersCount > 0 {
		sections = append(sections, env.Theme.Muted.Render(env.Messages.Format(messages.ImpactedClusters, rule.ImpactedClustersCount)))
	}
	return strings.Join(sections, "\n\n")
}

func renderRisk(env Env, rule rules.AdjustedRule) string {
	var rows []string
	add := func(key messages.Key, rank int, name string) {
		if name == "" {
			return
		}
		rows = append(rows, fmt.Sprintf("%s %s",
			env.Theme.Title.Render(env.Messages.Format(key)+":"),
			env.Theme.rankStyle(rank).Render(name)))
	}
	add(messages.TotalRisk, rule.TotalRisk, env.Tables.RiskLabel(rule.TotalRisk))
	add(messages.Likelihood, rule.Likelihood, env.Tables.RiskLabel(rule.Likelihood))
	add(messages.Impact, rule.Impact.Impact, env.Tables.RiskLabel(rule.Impact.Impact))
	if len(rows) == 0 {
		return ""
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// renderDetailsHeader builds the title line and publish-date line of the
// details page.
func renderDetailsHeader(env Env, rule rules.AdjustedRule, labelsExpanded bool) string {
	title := env.Theme.Title.Render(rule.Description)
	if labels := RenderRuleLabels(env.Theme, env.Messages, rule); labels != "" {
		title += " " + labels
	}
	line := env.Messages.Format(messages.PublishDate, formatPublishDate(rule))
	if tags := renderTags(env.Theme, env.Messages, env.Tables, rule.Tags, labelsExpanded); tags != "" {
		line += " " + tags
	}
	return title + "\n" + line
}

func formatPublishDate(rule rules.AdjustedRule) string {
	t, err := rule.PublishedAt()
	if err != nil {
		return rule.PublishDate
	}
	return t.Format(publishDateLayout)
}

func coalesce(val, fallback string) string {
	if strings.TrimSpace(val) == "" {
		return fallback
	}
	return val
}
