package ui

import "github.com/charmbracelet/lipgloss"

// GoBarber palette
const (
	Orange = lipgloss.Color("#FF9000")
	Gray   = lipgloss.Color("#999591")
	Dark   = lipgloss.Color("#3E3B47")
	Green  = lipgloss.Color("#04D361")
	Red    = lipgloss.Color("#C53030")
	Blue   = lipgloss.Color("#3172B7")
	Cyan   = lipgloss.Color("#34C6C6")
	Yellow = lipgloss.Color("#E6C229")
	White  = lipgloss.Color("#F4EDE8")
)

var methodColors = map[string]lipgloss.Color{
	"GET":    Green,
	"POST":   Blue,
	"PUT":    Cyan,
	"DELETE": Yellow,
}

type styles struct {
	title    lipgloss.Style
	subtle   lipgloss.Style
	accent   lipgloss.Style
	strong   lipgloss.Style
	past     lipgloss.Style
	info     lipgloss.Style
	success  lipgloss.Style
	failure  lipgloss.Style
	field    lipgloss.Style
	card     lipgloss.Style
	disabled lipgloss.Style
	method   func(string) lipgloss.Style
}

func newStyles(r *lipgloss.Renderer) styles {
	return styles{
		title:    r.NewStyle().Bold(true).Foreground(White),
		subtle:   r.NewStyle().Foreground(Gray),
		accent:   r.NewStyle().Foreground(Orange),
		strong:   r.NewStyle().Bold(true),
		past:     r.NewStyle().Foreground(Gray).Faint(true),
		info:     r.NewStyle().Foreground(Blue),
		success:  r.NewStyle().Foreground(Green),
		failure:  r.NewStyle().Foreground(Red),
		field:    r.NewStyle().Foreground(Red).Italic(true),
		card:     r.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(Orange).Padding(0, 1),
		disabled: r.NewStyle().Foreground(Dark).Strikethrough(true),
		method: func(m string) lipgloss.Style {
			if c, ok := methodColors[m]; ok {
				return r.NewStyle().Foreground(c)
			}
			return r.NewStyle()
		},
	}
}
