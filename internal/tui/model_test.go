package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"advisor/internal/fetch"
	"advisor/internal/rules"
)

func newTestModel(t *testing.T, id string) Model {
	t.Helper()
	m := NewModel(ModelConfig{
		Route:     RouteParams{RecommendationID: id},
		ThemeName: "vapor",
		Markdown:  NewMarkdownRenderer("notty"),
		PageSize:  5,
	})
	next, _ := m.Update(tea.WindowSizeMsg{Width: 160, Height: 80})
	return next.(Model)
}

func feed(t *testing.T, m Model, st fetch.State) Model {
	t.Helper()
	next, _ := m.Update(stateMsg(st))
	return next.(Model)
}

func TestModelFollowsFetchLifecycle(t *testing.T) {
	m := newTestModel(t, "plugin.module|KEY1")
	require.Contains(t, m.View(), "Loading…")
	require.True(t, m.spinning)

	m = feed(t, m, fetch.Loading())
	require.Contains(t, m.View(), "state:LOADING")

	m = feed(t, m, successState(t))
	require.False(t, m.spinning)
	view := m.View()
	require.Contains(t, view, "Node memory is low")
	require.NotContains(t, view, "Loading…")
	require.NoError(t, m.Err())
}

func TestModelRenderErrorShowsBanner(t *testing.T) {
	m := newTestModel(t, "plugin.module|NOPE")
	m = feed(t, m, successState(t))
	require.ErrorIs(t, m.Err(), rules.ErrErrorKeyNotFound)
	require.Contains(t, m.View(), "Unable to display recommendation")
}

func TestModelKeys(t *testing.T) {
	m := newTestModel(t, "plugin.module|KEY1")
	m = feed(t, m, successState(t))

	next, _ := m.Update(key("t"))
	m = next.(Model)
	require.Equal(t, "midnight", m.env.Theme.Name)

	next, _ = m.Update(key("m"))
	m = next.(Model)
	require.True(t, m.labelsExpanded)
	require.Contains(t, m.View(), "Show less")

	next, _ = m.Update(key("?"))
	m = next.(Model)
	require.Contains(t, m.View(), "keyboard shortcuts")
	next, _ = m.Update(key("q"))
	m = next.(Model)
	require.False(t, m.helpOpen)

	// q is typed into the filter while it has focus
	next, _ = m.Update(key("/"))
	m = next.(Model)
	next, _ = m.Update(key("q"))
	m = next.(Model)
	require.True(t, m.table.Filtering())
	next, _ = m.Update(key("esc"))
	m = next.(Model)
	require.False(t, m.table.Filtering())

	_, cmd := m.Update(key("q"))
	require.NotNil(t, cmd)
	require.Equal(t, tea.QuitMsg{}, cmd())
}
