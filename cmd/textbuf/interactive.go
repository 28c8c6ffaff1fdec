package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"

	"github.com/wippyai/textbuf"
	"github.com/wippyai/textbuf/buffer"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

// encodingStat is one row of the live table.
type encodingStat struct {
	name  string
	units int
	bytes int
	err   error
}

type interactiveModel struct {
	input textinput.Model
	stats []encodingStat
	// symbol and display figures for the current text
	symbols   int
	graphemes int
	width     int
}

func newInteractiveModel() *interactiveModel {
	ti := textinput.New()
	ti.Placeholder = "type text to measure"
	ti.Prompt = "> "
	ti.Width = 60
	ti.Focus()
	return &interactiveModel{input: ti}
}

func (m *interactiveModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *interactiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.measure(m.input.Value())
	return m, cmd
}

// measure fills the stats table by pushing the typed text through a
// container of every kind.
func (m *interactiveModel) measure(text string) {
	m.symbols = 0
	m.graphemes = uniseg.GraphemeClusterCount(text)
	m.width = runewidth.StringWidth(text)
	m.stats = m.stats[:0]

	containers := []struct {
		name string
		c    *buffer.Container
	}{
		{"ansi", buffer.NewAnsi(0)},
		{"utf8", buffer.NewUTF8(0)},
		{"utf16", buffer.NewUTF16(0, textbuf.EndianLittle)},
		{"utf32", buffer.NewUTF32(0, textbuf.EndianLittle)},
		{"wide", buffer.NewWide(0, 4)},
	}
	for _, entry := range containers {
		err := entry.c.InsertUTF8(0, []byte(text), len(text), true)
		stat := encodingStat{name: entry.name, err: err}
		if err == nil {
			stat.units = entry.c.Size()
			stat.bytes = entry.c.Size() * entry.c.UnitWidth()
			m.symbols = entry.c.Length()
		}
		m.stats = append(m.stats, stat)
		entry.c.Destroy()
	}
}

func (m *interactiveModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("textbuf"))
	b.WriteString(" live encoding stats\n\n")
	b.WriteString(m.input.View())
	b.WriteString("\n\n")

	fmt.Fprintf(&b, "%s %s   %s %s   %s %s\n\n",
		labelStyle.Render("symbols:"), valueStyle.Render(fmt.Sprint(m.symbols)),
		labelStyle.Render("graphemes:"), valueStyle.Render(fmt.Sprint(m.graphemes)),
		labelStyle.Render("display width:"), valueStyle.Render(fmt.Sprint(m.width)))

	for _, stat := range m.stats {
		name := labelStyle.Render(fmt.Sprintf("%-6s", stat.name))
		if stat.err != nil {
			fmt.Fprintf(&b, "%s %s\n", name, errorStyle.Render("not representable"))
			continue
		}
		fmt.Fprintf(&b, "%s %s units, %s bytes\n", name,
			valueStyle.Render(fmt.Sprintf("%4d", stat.units)),
			valueStyle.Render(fmt.Sprintf("%4d", stat.bytes)))
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render("esc quit"))
	return b.String()
}

func runInteractive() error {
	p := tea.NewProgram(newInteractiveModel(), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
