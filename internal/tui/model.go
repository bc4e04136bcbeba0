package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"advisor/internal/clusters"
	"advisor/internal/fetch"
	"advisor/internal/logging"
	"advisor/internal/messages"
	"advisor/internal/rules"
)

// ModelConfig wires the data streams into the UI.
type ModelConfig struct {
	States    <-chan fetch.State
	Clusters  <-chan clusters.Event
	Route     RouteParams
	Tables    rules.Tables
	ThemeName string
	Messages  *messages.Printer
	Markdown  *MarkdownRenderer
	PageSize  int
}

// Model renders the recommendation page.
type Model struct {
	cfg            ModelConfig
	env            Env
	states         <-chan fetch.State
	state          fetch.State
	spinner        spinner.Model
	spinning       bool
	viewport       viewport.Model
	table          ClustersTable
	labelsExpanded bool
	helpOpen       bool
	renderErr      error
	windowWidth    int
	windowHeight   int
	log            zerolog.Logger
}

type stateMsg fetch.State
type stateStreamClosedMsg struct{}

// NewModel returns a configured Bubble Tea model.
func NewModel(cfg ModelConfig) Model {
	if cfg.Messages == nil {
		cfg.Messages = messages.English()
	}
	if cfg.Tables.ImpactRanks == nil {
		cfg.Tables = rules.DefaultTables()
	}
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	m := Model{
		cfg: cfg,
		env: Env{
			Theme:    ThemeByName(cfg.ThemeName),
			Messages: cfg.Messages,
			Markdown: cfg.Markdown,
			Tables:   cfg.Tables,
		},
		states:       cfg.States,
		state:        fetch.Uninitialized(),
		spinner:      sp,
		spinning:     true,
		viewport:     viewport.New(80, 20),
		table:        NewClustersTable(cfg.Clusters, cfg.PageSize),
		windowWidth:  80,
		windowHeight: 24,
		log:          logging.WithComponent("tui"),
	}
	m.refresh()
	return m
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.listen(), m.spinner.Tick, m.table.Init())
}

func (m Model) listen() tea.Cmd {
	if m.states == nil {
		return nil
	}
	states := m.states
	return func() tea.Msg {
		st, ok := <-states
		if !ok {
			return stateStreamClosedMsg{}
		}
		return stateMsg(st)
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.windowWidth = max(msg.Width, 20)
		m.windowHeight = max(msg.Height, 5)
		m.viewport.Width = m.windowWidth
		m.viewport.Height = max(m.windowHeight-lipgloss.Height(m.renderHeader())-lipgloss.Height(m.renderStatus()), 1)
		m.refresh()
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	case stateMsg:
		return m.consumeState(fetch.State(msg))
	case stateStreamClosedMsg:
		m.log.Debug().Msg("state stream closed")
		return m, nil
	case spinner.TickMsg:
		if !m.spinning {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		m.refresh()
		return m, cmd
	case clusterMsg, clusterFeedClosedMsg:
		if evt, ok := msg.(clusterMsg); ok && evt.Err != nil {
			m.log.Warn().Err(evt.Err).Int("line", evt.Line).Msg("skipping cluster record")
		}
		var cmd tea.Cmd
		m.table, cmd = m.table.Update(msg)
		m.refresh()
		return m, cmd
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.table.Filtering() {
		var cmd tea.Cmd
		m.table, cmd = m.table.Update(msg)
		m.refresh()
		return m, cmd
	}
	if m.helpOpen {
		switch msg.String() {
		case "q", "esc", "enter", "?":
			m.helpOpen = false
		}
		return m, nil
	}
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "?":
		m.helpOpen = true
		return m, nil
	case "t":
		m.env.Theme = ThemeByName(nextTheme(m.env.Theme.Name))
		m.refresh()
		return m, nil
	case "m":
		m.labelsExpanded = !m.labelsExpanded
		m.refresh()
		return m, nil
	case "/", "[", "]":
		var cmd tea.Cmd
		m.table, cmd = m.table.Update(msg)
		m.refresh()
		return m, cmd
	}
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) consumeState(st fetch.State) (tea.Model, tea.Cmd) {
	prev := m.state.Status
	m.state = st
	m.log.Debug().Str("from", prev.String()).Str("to", st.Status.String()).Msg("fetch state changed")
	if st.Status == fetch.StatusError {
		m.log.Error().Err(st.Err).Str("recommendation", m.cfg.Route.RecommendationID).Msg("fetch failed")
	}

	cmds := []tea.Cmd{m.listen()}
	if st.Status.Pending() && !m.spinning {
		m.spinning = true
		cmds = append(cmds, m.spinner.Tick)
	} else if !st.Status.Pending() {
		m.spinning = false
	}
	m.refresh()
	return m, tea.Batch(cmds...)
}

// refresh re-renders the page into the viewport.
func (m *Model) refresh() {
	content, err := RenderPage(PageInput{
		Env:            m.env,
		State:          m.state,
		Route:          m.cfg.Route,
		Spinner:        m.spinner.View(),
		Clusters:       &m.table,
		LabelsExpanded: m.labelsExpanded,
		Width:          m.viewport.Width,
	})
	if err != nil {
		if m.renderErr == nil || m.renderErr.Error() != err.Error() {
			m.log.Error().Err(err).Str("recommendation", m.cfg.Route.RecommendationID).Msg("render failed")
		}
		m.renderErr = err
		content = m.renderFatal(err)
	} else {
		m.renderErr = nil
	}
	m.viewport.SetContent(content)
}

// Err returns the last render error, if the page could not be rendered.
func (m Model) Err() error { return m.renderErr }

func (m Model) renderFatal(err error) string {
	title := m.env.Theme.Danger.Render("⚠ " + m.env.Messages.Format(messages.RenderFailed))
	return m.env.Theme.Pane.Render(title + "\n" + m.env.Theme.Muted.Render(err.Error()))
}

func (m Model) renderHeader() string {
	parts := []string{
		"Advisor",
		m.cfg.Route.RecommendationID,
		fmt.Sprintf("state:%s", strings.ToUpper(m.state.Status.String())),
		fmt.Sprintf("theme:%s", m.env.Theme.Name),
	}
	return m.env.Theme.Header.Render(strings.Join(parts, "  ·  "))
}

func (m Model) renderStatus() string {
	content := "? help  ·  ↑/↓ scroll  ·  / filter  ·  [ ] page  ·  m labels  ·  t theme  ·  q quit"
	if m.windowWidth < 80 {
		content = "? help  ·  / filter  ·  [ ] page  ·  q quit"
	}
	return m.env.Theme.StatusBar.Width(max(m.windowWidth, 10)).Render(content)
}

func (m Model) renderHelp() string {
	help := `
NAVIGATION
  ↑ / ↓ / PgUp / PgDn   Scroll the page

AFFECTED CLUSTERS
  /                     Filter by name (enter keeps, esc clears)
  [ / ]                 Previous / next page

APPEARANCE
  m                     Expand or collapse category labels
  t                     Cycle themes (vapor → midnight → dusk)

OTHER
  ?                     Show this help
  q / Ctrl+C            Quit
`
	modal := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(m.env.Theme.Header.GetForeground()).
		Padding(1, 2).
		Render(m.env.Theme.Header.Render("keyboard shortcuts") + "\n" + strings.TrimSpace(help))
	return lipgloss.Place(m.windowWidth, m.windowHeight, lipgloss.Center, lipgloss.Center, modal)
}

func (m Model) View() string {
	if m.helpOpen {
		return m.renderHelp()
	}
	return lipgloss.JoinVertical(lipgloss.Left, m.renderHeader(), m.viewport.View(), m.renderStatus())
}
