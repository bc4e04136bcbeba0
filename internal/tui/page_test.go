package tui

import (
	"errors"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/require"

	"advisor/internal/clusters"
	"advisor/internal/fetch"
	"advisor/internal/messages"
	"advisor/internal/rules"
)

const pageResponse = `
status: ok
content:
  rule_id: plugin.module
  summary: Nodes should have enough memory.
  publish_date: "2021-08-19T12:00:00Z"
  impacted_clusters_count: 2
  error_keys:
    KEY1:
      description: Node memory is low
      reason: The node reports less memory than required.
      tags: [performance, fault_tolerance, unknown_tag, incident]
      metadata:
        severity: CRITICAL
        total_risk: 4
    BLANK:
      summary: no description here
    SPACES:
      description: "   "
`

func testEnv() Env {
	return Env{
		Theme:    ThemeByName("vapor"),
		Messages: messages.English(),
		Markdown: NewMarkdownRenderer("notty"),
		Tables:   rules.DefaultTables(),
	}
}

func successState(t *testing.T) fetch.State {
	t.Helper()
	resp, err := rules.ParseResponse([]byte(pageResponse))
	require.NoError(t, err)
	return fetch.Success(resp)
}

func render(t *testing.T, in PageInput) string {
	t.Helper()
	out, err := RenderPage(in)
	require.NoError(t, err)
	return out
}

func TestRenderPagePendingShowsOnlyLoading(t *testing.T) {
	for _, st := range []fetch.State{fetch.Uninitialized(), fetch.Loading(), fetch.Fetching()} {
		out := render(t, PageInput{
			Env:   testEnv(),
			State: st,
			Route: RouteParams{RecommendationID: "plugin.module|KEY1"},
			Width: 120,
		})
		require.Contains(t, out, "Loading…", st.Status.String())
		require.NotContains(t, out, "Advisor recommendations", st.Status.String())
		require.NotContains(t, out, "Unable to connect", st.Status.String())
	}
}

func TestRenderPageErrorState(t *testing.T) {
	out := render(t, PageInput{
		Env:   testEnv(),
		State: fetch.Failed(errors.New("boom")),
		Route: RouteParams{RecommendationID: "plugin.module|KEY1"},
		Width: 160,
	})
	require.Contains(t, out, "Unable to connect")
	require.Contains(t, out, "There was an error retrieving data.")
	require.NotContains(t, out, "Loading…")
	require.NotContains(t, out, "Advisor recommendations")
}

func TestRenderPageIdleIsEmpty(t *testing.T) {
	require.Empty(t, render(t, PageInput{Env: testEnv(), State: fetch.Idle()}))
}

func TestRenderPageSuccess(t *testing.T) {
	tbl := NewClustersTable(nil, 5)
	tbl.Ingest(clusters.Event{Cluster: clusters.Cluster{ID: "c-1", Name: "prod-east", Version: "4.14.2"}})
	out := render(t, PageInput{
		Env:      testEnv(),
		State:    successState(t),
		Route:    RouteParams{RecommendationID: "plugin.module|KEY1"},
		Clusters: &tbl,
		Width:    160,
	})
	require.Contains(t, out, "Advisor recommendations › Node memory is low")
	require.Contains(t, out, "Publish date: 19 Aug 2021")
	require.Contains(t, out, "Critical")
	require.Contains(t, out, "Incident")
	require.Contains(t, out, "Performance")
	require.Contains(t, out, "1 more")
	require.NotContains(t, out, "Fault Tolerance")
	require.Contains(t, out, "Affected clusters")
	require.Contains(t, out, "prod-east")
	require.Contains(t, out, "4.14.2")
	require.Contains(t, out, "2 clusters")
	require.NotContains(t, out, "Loading…")
}

func TestRenderPageExpandedLabels(t *testing.T) {
	out := render(t, PageInput{
		Env:            testEnv(),
		State:          successState(t),
		Route:          RouteParams{RecommendationID: "plugin.module|KEY1"},
		LabelsExpanded: true,
		Width:          160,
	})
	require.Contains(t, out, "Performance")
	require.Contains(t, out, "Fault Tolerance")
	require.Contains(t, out, "Show less")
	require.NotContains(t, out, "1 more")
}

func TestBreadcrumbFallsBackToRouteID(t *testing.T) {
	out := render(t, PageInput{
		Env:   testEnv(),
		State: successState(t),
		Route: RouteParams{RecommendationID: "plugin.module|BLANK"},
		Width: 160,
	})
	require.Contains(t, out, "Advisor recommendations › plugin.module|BLANK")
}

func TestBreadcrumbKeepsBlankDescription(t *testing.T) {
	out := render(t, PageInput{
		Env:   testEnv(),
		State: successState(t),
		Route: RouteParams{RecommendationID: "plugin.module|SPACES"},
		Width: 160,
	})
	require.Contains(t, out, "Advisor recommendations › ")
	require.NotContains(t, out, "plugin.module|SPACES")
}

func TestRenderPageNarrowKeepsClusterRowsIntact(t *testing.T) {
	env := testEnv()
	tbl := unnamedClusters(3)
	out := render(t, PageInput{
		Env:      env,
		State:    successState(t),
		Route:    RouteParams{RecommendationID: "plugin.module|KEY1"},
		Clusters: &tbl,
		Width:    60,
	})

	inner := paneInnerWidth(env.Theme, 60)
	for _, line := range strings.Split(tbl.View(env.Theme, env.Messages, inner), "\n") {
		require.Contains(t, out, line)
	}
	for _, line := range strings.Split(out, "\n") {
		require.LessOrEqual(t, lipgloss.Width(line), 60, line)
	}
}

func TestRenderPageWithoutClustersTable(t *testing.T) {
	out := render(t, PageInput{
		Env:   testEnv(),
		State: successState(t),
		Route: RouteParams{RecommendationID: "plugin.module|KEY1"},
		Width: 160,
	})
	require.Contains(t, out, "No clusters")
}

func TestRenderPageMissingErrorKey(t *testing.T) {
	_, err := RenderPage(PageInput{
		Env:   testEnv(),
		State: successState(t),
		Route: RouteParams{RecommendationID: "plugin.module|NOPE"},
	})
	require.ErrorIs(t, err, rules.ErrErrorKeyNotFound)
}

func TestRenderPageSuccessWithoutPayload(t *testing.T) {
	_, err := RenderPage(PageInput{
		Env:   testEnv(),
		State: fetch.State{Status: fetch.StatusSuccess},
	})
	require.ErrorIs(t, err, fetch.ErrMissingPayload)
}

func TestRenderTagsScalarIsSinglePlainLabel(t *testing.T) {
	env := testEnv()
	tags := rules.ScalarTags("custom-string")
	out := renderTags(env.Theme, env.Messages, env.Tables, &tags, false)
	require.Equal(t, env.Theme.PlainLabel.Render("custom-string"), out)
	require.Equal(t, 1, strings.Count(out, "custom-string"))
}

func TestRenderTagsSkipsUnknownCategories(t *testing.T) {
	env := testEnv()
	tags := rules.TagList("performance", "unknown_tag")
	out := renderTags(env.Theme, env.Messages, env.Tables, &tags, false)
	require.Contains(t, out, "Performance")
	require.NotContains(t, out, "unknown_tag")
	require.NotContains(t, out, "more")
}

func TestRenderRuleLabels(t *testing.T) {
	env := testEnv()
	tags := rules.TagList("incident")
	out := RenderRuleLabels(env.Theme, env.Messages, rules.AdjustedRule{
		Impact:   rules.Impact{Name: "IMPORTANT", Impact: 3},
		Tags:     &tags,
		Disabled: true,
	})
	require.Contains(t, out, "Important")
	require.Contains(t, out, "Incident")
	require.Contains(t, out, "Disabled")

	require.Empty(t, RenderRuleLabels(env.Theme, env.Messages, rules.AdjustedRule{}))
}
