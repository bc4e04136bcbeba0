package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"advisor/internal/rules"
)

// Theme describes the colors and styles for the UI.
type Theme struct {
	Name         string
	Pane         lipgloss.Style
	StatusBar    lipgloss.Style
	Header       lipgloss.Style
	Title        lipgloss.Style
	SectionTitle lipgloss.Style
	Breadcrumb   lipgloss.Style
	Muted        lipgloss.Style
	Danger       lipgloss.Style
	Highlight    lipgloss.Style
	PlainLabel   lipgloss.Style
	LabelStyles  map[rules.LabelColor]lipgloss.Style

	// RankStyles colors severity labels by impact rank.
	RankStyles  map[int]lipgloss.Style
	TableHeader lipgloss.Style
	TableCell   lipgloss.Style
	TableBorder lipgloss.Style
}

var themeOrder = []string{"vapor", "midnight", "dusk"}

// ThemeByName returns the named theme, or vapor for unknown names.
func ThemeByName(name string) Theme {
	switch strings.ToLower(name) {
	case "midnight":
		return midnightTheme()
	case "dusk":
		return duskTheme()
	default:
		return vaporTheme()
	}
}

func nextTheme(current string) string {
	for i, name := range themeOrder {
		if name == strings.ToLower(current) {
			return themeOrder[(i+1)%len(themeOrder)]
		}
	}
	return themeOrder[0]
}

type palette struct {
	name       string
	background string
	text       string
	accent     string
	border     string
	muted      string
	danger     string
	highlight  string
	blue       string
	ranks      [4]string
	frame      lipgloss.Border
}

func (p palette) theme() Theme {
	chip := lipgloss.NewStyle().Padding(0, 1).Bold(true)
	return Theme{
		Name:         p.name,
		Pane:         lipgloss.NewStyle().Border(p.frame).BorderForeground(lipgloss.Color(p.border)).Padding(0, 1),
		StatusBar:    lipgloss.NewStyle().Foreground(lipgloss.Color(p.background)).Background(lipgloss.Color(p.accent)).Padding(0, 2),
		Header:       lipgloss.NewStyle().Foreground(lipgloss.Color(p.accent)).Bold(true),
		Title:        lipgloss.NewStyle().Foreground(lipgloss.Color(p.text)).Bold(true),
		SectionTitle: lipgloss.NewStyle().Foreground(lipgloss.Color(p.accent)).Bold(true).Underline(true),
		Breadcrumb:   lipgloss.NewStyle().Foreground(lipgloss.Color(p.muted)),
		Muted:        lipgloss.NewStyle().Foreground(lipgloss.Color(p.muted)),
		Danger:       lipgloss.NewStyle().Foreground(lipgloss.Color(p.danger)).Bold(true),
		Highlight:    lipgloss.NewStyle().Foreground(lipgloss.Color(p.highlight)).Underline(true),
		PlainLabel:   lipgloss.NewStyle(),
		LabelStyles: map[rules.LabelColor]lipgloss.Style{
			rules.LabelBlue: chip.Foreground(lipgloss.Color(p.background)).Background(lipgloss.Color(p.blue)),
			rules.LabelRed:  chip.Foreground(lipgloss.Color(p.background)).Background(lipgloss.Color(p.danger)),
			rules.LabelGrey: chip.Foreground(lipgloss.Color(p.background)).Background(lipgloss.Color(p.muted)),
		},
		RankStyles: map[int]lipgloss.Style{
			1: chip.Foreground(lipgloss.Color(p.ranks[0])),
			2: chip.Foreground(lipgloss.Color(p.ranks[1])),
			3: chip.Foreground(lipgloss.Color(p.ranks[2])),
			4: chip.Foreground(lipgloss.Color(p.ranks[3])),
		},
		TableHeader: lipgloss.NewStyle().Foreground(lipgloss.Color(p.accent)).Bold(true).Padding(0, 1),
		TableCell:   lipgloss.NewStyle().Foreground(lipgloss.Color(p.text)).Padding(0, 1),
		TableBorder: lipgloss.NewStyle().Foreground(lipgloss.Color(p.border)),
	}
}

func vaporTheme() Theme {
	return palette{
		name:       "vapor",
		background: "#1B1C30",
		text:       "#E7E7FF",
		accent:     "#FF61D8",
		border:     "#9F7AEA",
		muted:      "#A4A9FF",
		danger:     "#FF5F5F",
		highlight:  "#FFE066",
		blue:       "#7AF7FF",
		ranks:      [4]string{"#7AF7FF", "#FFC857", "#FF8B5D", "#FF61D8"},
		frame:      lipgloss.RoundedBorder(),
	}.theme()
}

func midnightTheme() Theme {
	return palette{
		name:       "midnight",
		background: "#02070D",
		text:       "#E3FDFD",
		accent:     "#00E6D2",
		border:     "#00C9A7",
		muted:      "#6C7A89",
		danger:     "#FF5F5F",
		highlight:  "#F4F269",
		blue:       "#73BCF7",
		ranks:      [4]string{"#78FECF", "#FFE066", "#FFA552", "#FF5F5F"},
		frame:      lipgloss.DoubleBorder(),
	}.theme()
}

func duskTheme() Theme {
	return palette{
		name:       "dusk",
		background: "#211830",
		text:       "#F1F2F8",
		accent:     "#FFB4A2",
		border:     "#FFCAD4",
		muted:      "#C7CEEA",
		danger:     "#FF5E5B",
		highlight:  "#FFE066",
		blue:       "#A0C4FF",
		ranks:      [4]string{"#A0E8AF", "#FFEAA7", "#FFA552", "#FF5E5B"},
		frame:      lipgloss.NormalBorder(),
	}.theme()
}

func (t Theme) labelStyle(color rules.LabelColor) lipgloss.Style {
	if style, ok := t.LabelStyles[color]; ok {
		return style
	}
	return t.PlainLabel
}

func (t Theme) rankStyle(rank int) lipgloss.Style {
	if style, ok := t.RankStyles[rank]; ok {
		return style
	}
	return t.Muted
}
