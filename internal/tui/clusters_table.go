package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/dustin/go-humanize"

	"advisor/internal/clusters"
	"advisor/internal/highlight"
	"advisor/internal/messages"
)

type clusterMsg clusters.Event
type clusterFeedClosedMsg struct{}

// ClustersTable lists the clusters affected by the recommendation. It owns its
// subscription to the cluster feed.
type ClustersTable struct {
	events    <-chan clusters.Event
	set       *clusters.Set
	filter    textinput.Model
	filtering bool
	page      int
	pageSize  int
	lastErr   string
	errCount  int
}

// NewClustersTable returns a table fed by events. A nil channel yields an
// empty table.
func NewClustersTable(events <-chan clusters.Event, pageSize int) ClustersTable {
	if pageSize <= 0 {
		pageSize = 10
	}
	ti := textinput.New()
	ti.Prompt = "/ "
	ti.CharLimit = 128
	return ClustersTable{
		events:   events,
		set:      clusters.NewSet(),
		filter:   ti,
		pageSize: pageSize,
	}
}

// Init starts listening to the feed.
func (t ClustersTable) Init() tea.Cmd {
	return t.listen()
}

func (t ClustersTable) listen() tea.Cmd {
	if t.events == nil {
		return nil
	}
	events := t.events
	return func() tea.Msg {
		evt, ok := <-events
		if !ok {
			return clusterFeedClosedMsg{}
		}
		return clusterMsg(evt)
	}
}

// Filtering reports whether the filter input has focus.
func (t ClustersTable) Filtering() bool { return t.filtering }

// Ingest adds an event without going through the program loop.
func (t *ClustersTable) Ingest(evt clusters.Event) {
	if evt.Err != nil {
		t.lastErr = evt.Err.Error()
		t.errCount++
		return
	}
	t.set.Upsert(evt.Cluster)
}

// Drain ingests events until the feed closes.
func (t *ClustersTable) Drain() {
	if t.events == nil {
		return
	}
	for evt := range t.events {
		t.Ingest(evt)
	}
}

// Update handles feed messages and the table's own keys.
func (t ClustersTable) Update(msg tea.Msg) (ClustersTable, tea.Cmd) {
	switch msg := msg.(type) {
	case clusterMsg:
		t.Ingest(clusters.Event(msg))
		return t, t.listen()
	case clusterFeedClosedMsg:
		return t, nil
	case tea.KeyMsg:
		if t.filtering {
			switch msg.String() {
			case "esc":
				t.filtering = false
				t.filter.Blur()
				t.filter.SetValue("")
				t.page = 0
				return t, nil
			case "enter":
				t.filtering = false
				t.filter.Blur()
				return t, nil
			}
			var cmd tea.Cmd
			t.filter, cmd = t.filter.Update(msg)
			t.page = 0
			return t, cmd
		}
		switch msg.String() {
		case "/":
			t.filtering = true
			return t, t.filter.Focus()
		case "]":
			if t.page < t.pageCount()-1 {
				t.page++
			}
		case "[":
			if t.page > 0 {
				t.page--
			}
		}
	}
	return t, nil
}

func (t ClustersTable) rows() []clusters.Cluster {
	return t.set.Query(t.filter.Value())
}

func (t ClustersTable) pageCount() int {
	n := len(t.rows())
	if n == 0 {
		return 1
	}
	return (n + t.pageSize - 1) / t.pageSize
}

// View renders the current page. A positive width caps the table, shrinking
// its columns to fit.
func (t ClustersTable) View(theme Theme, msgs *messages.Printer, width int) string {
	var sections []string
	if t.filtering || t.filter.Value() != "" {
		sections = append(sections, theme.Muted.Render(msgs.Format(messages.FilterByName))+" "+t.filter.View())
	}

	rows := t.rows()
	switch {
	case t.set.Len() == 0:
		sections = append(sections, theme.Muted.Render(msgs.Format(messages.NoClusters)))
	case len(rows) == 0:
		sections = append(sections, theme.Muted.Render(msgs.Format(messages.NoMatchingClusters)))
	default:
		page := min(t.page, t.pageCount()-1)
		start := page * t.pageSize
		end := min(start+t.pageSize, len(rows))

		tbl := table.New().
			Border(lipgloss.NormalBorder()).
			BorderStyle(theme.TableBorder).
			Headers(msgs.Format(messages.ColumnName), msgs.Format(messages.ColumnVersion), msgs.Format(messages.ColumnLastSeen)).
			StyleFunc(func(row, col int) lipgloss.Style {
				if row == table.HeaderRow {
					return theme.TableHeader
				}
				return theme.TableCell
			})
		if width > 0 {
			tbl = tbl.Width(width)
		}
		for _, c := range rows[start:end] {
			tbl.Row(
				renderFragments(highlight.Fragments(c.DisplayName(), t.filter.Value()), lipgloss.NewStyle(), theme.Highlight),
				coalesce(c.Version, "—"),
				lastSeen(c),
			)
		}
		sections = append(sections, tbl.Render())
		sections = append(sections, theme.Muted.Render(fmt.Sprintf("%s · %d/%d",
			msgs.Format(messages.ClustersPage, page+1, t.pageCount()), len(rows), t.set.Len())))
	}

	if t.lastErr != "" {
		sections = append(sections, theme.Danger.Render(msgs.Format(messages.SkippedRecords, t.errCount, t.lastErr)))
	}
	return strings.Join(sections, "\n")
}

func lastSeen(c clusters.Cluster) string {
	if c.LastCheckedAt.IsZero() {
		return "—"
	}
	return humanize.Time(c.LastCheckedAt)
}

func renderFragments(frags []highlight.Fragment, base, emphasis lipgloss.Style) string {
	var b strings.Builder
	for _, frag := range frags {
		style := base
		if frag.Emphasized {
			style = emphasis.Inherit(base)
		}
		b.WriteString(style.Render(frag.Text))
	}
	return b.String()
}
