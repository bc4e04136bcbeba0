package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"advisor/internal/fetch"
	"advisor/internal/messages"
	"advisor/internal/rules"
)

// Env bundles the collaborators every renderer needs.
type Env struct {
	Theme    Theme
	Messages *messages.Printer
	Markdown *MarkdownRenderer
	Tables   rules.Tables
}

// RouteParams identifies the recommendation being viewed.
type RouteParams struct {
	// RecommendationID has the form "plugin.module|ERROR_KEY".
	RecommendationID string
}

// PageInput is everything the recommendation page renders from.
type PageInput struct {
	Env   Env
	State fetch.State
	Route RouteParams
	// Spinner is the current frame of the loading indicator.
	Spinner string
	// Clusters is the affected-clusters table, which fetches its own data.
	// Nil renders the empty state.
	Clusters       *ClustersTable
	LabelsExpanded bool
	Width          int
}

// RenderPage renders the recommendation page for the current fetch state.
// Idle renders nothing. A rule without the requested error key is an error.
func RenderPage(in PageInput) (string, error) {
	switch {
	case in.State.Status.Pending():
		return renderMain(in, renderLoading(in)), nil
	case in.State.Status == fetch.StatusError:
		return renderMain(in, renderErrorState(in.Env)), nil
	case in.State.Status == fetch.StatusSuccess:
		return renderSuccess(in)
	default:
		return "", nil
	}
}

func renderSuccess(in PageInput) (string, error) {
	if in.State.Data == nil {
		return "", fetch.ErrMissingPayload
	}
	rule, err := rules.Adjust(in.State.Data.Content, in.Route.RecommendationID, in.Env.Tables)
	if err != nil {
		return "", fmt.Errorf("render recommendation: %w", err)
	}

	width := contentWidth(in)
	crumbs := renderBreadcrumbs(in.Env, breadcrumbLabel(rule, in.Route))
	details := RenderRuleDetails(in.Env, rule, DetailOptions{
		OpenShift:   true,
		DetailsPage: true,
		Header:      renderDetailsHeader(in.Env, rule, in.LabelsExpanded),
		Width:       width,
	})
	clusters := in.Env.Theme.SectionTitle.Render(in.Env.Messages.Format(messages.AffectedClusters)) + "\n" + renderClusters(in)

	return lipgloss.JoinVertical(lipgloss.Left,
		crumbs,
		renderMain(in, details),
		renderMain(in, clusters),
	), nil
}

// breadcrumbLabel is the rule description, or the route id when it is empty.
// A blank but non-empty description is kept.
func breadcrumbLabel(rule rules.AdjustedRule, route RouteParams) string {
	if rule.Description != "" {
		return rule.Description
	}
	return route.RecommendationID
}

func renderClusters(in PageInput) string {
	if in.Clusters == nil {
		return in.Env.Theme.Muted.Render(in.Env.Messages.Format(messages.NoClusters))
	}
	width := 0
	if in.Width > 0 {
		width = paneInnerWidth(in.Env.Theme, in.Width)
	}
	return in.Clusters.View(in.Env.Theme, in.Env.Messages, width)
}

func renderBreadcrumbs(env Env, current string) string {
	root := env.Theme.Breadcrumb.Render(env.Messages.Format(messages.Recommendations))
	sep := env.Theme.Breadcrumb.Render(" › ")
	return root + sep + env.Theme.Header.Render(current)
}

func renderLoading(in PageInput) string {
	frame := strings.TrimSpace(in.Spinner)
	text := in.Env.Messages.Format(messages.Loading)
	if frame == "" {
		return in.Env.Theme.Muted.Render(text)
	}
	return in.Env.Theme.Header.Render(frame) + " " + in.Env.Theme.Muted.Render(text)
}

func renderErrorState(env Env) string {
	icon := env.Theme.Danger.Render("⚠")
	title := env.Theme.Title.Render(env.Messages.Format(messages.UnableToConnect))
	desc := env.Theme.Muted.Render(env.Messages.Format(messages.UnableToConnectDesc))
	return lipgloss.JoinVertical(lipgloss.Center, icon, title, desc)
}

// renderMain wraps content in the page's main region.
func renderMain(in PageInput, content string) string {
	style := in.Env.Theme.Pane
	if in.Width > 0 {
		style = style.Width(paneWidth(style, in.Width))
	}
	return style.Render(content)
}

// paneWidth is the Width given to the pane style so the bordered pane fits
// in total columns.
func paneWidth(pane lipgloss.Style, total int) int {
	frameW, _ := pane.GetFrameSize()
	return max(total-frameW, 10)
}

// paneInnerWidth is the number of columns content can use inside the pane
// without being wrapped.
func paneInnerWidth(theme Theme, total int) int {
	return max(paneWidth(theme.Pane, total)-theme.Pane.GetHorizontalPadding(), 1)
}

func contentWidth(in PageInput) int {
	if in.Width <= 0 {
		return 80
	}
	frameW, _ := in.Env.Theme.Pane.GetFrameSize()
	return max(in.Width-frameW*2, 20)
}
