// Package ui implements the interactive host picker: a searchable table of
// resolved hosts where Enter hands the selection back to the CLI layer.
package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	"sshp/internal/sshconfig"
	"sshp/internal/util"
)

// PickerOptions configures the host picker.
type PickerOptions struct {
	// Search pre-fills the search input.
	Search string
	// ShowProxyCommand adds the ProxyCommand column.
	ShowProxyCommand bool
}

// pickerKeyMap defines key bindings.
type pickerKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Select key.Binding
	Quit   key.Binding
}

var pickerKeys = pickerKeyMap{
	Up: key.NewBinding(
		key.WithKeys("up", "ctrl+p"),
		key.WithHelp("↑", "move up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "ctrl+n"),
		key.WithHelp("↓", "move down"),
	),
	Select: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "select"),
	),
	Quit: key.NewBinding(
		key.WithKeys("esc", "ctrl+c"),
		key.WithHelp("esc", "quit"),
	),
}

// hostSource adapts a host list for fuzzy matching over name, destination,
// and aliases.
type hostSource []sshconfig.Host

func (s hostSource) Len() int {
	return len(s)
}

func (s hostSource) String(i int) string {
	h := s[i]
	return strings.Join([]string{h.Name, h.Destination, util.JoinOrDefault(h.Aliases, "")}, " ")
}

// PickerModel is the Bubble Tea model for the host picker.
type PickerModel struct {
	hosts    []sshconfig.Host
	visible  []sshconfig.Host
	opts     PickerOptions
	search   textinput.Model
	table    table.Model
	selected *sshconfig.Host
	quitting bool
	height   int
}

// NewPickerModel creates a picker over the given resolved hosts.
func NewPickerModel(hosts []sshconfig.Host, opts PickerOptions) PickerModel {
	search := textinput.New()
	search.Prompt = "Search: "
	search.PromptStyle = lipgloss.NewStyle().Foreground(ColorInfo)
	search.SetValue(opts.Search)
	search.Focus()

	m := PickerModel{
		hosts:  hosts,
		opts:   opts,
		search: search,
	}
	m.applyFilter()
	return m
}

// applyFilter recomputes the visible hosts from the search input and rebuilds
// the table, keeping the cursor in range.
func (m *PickerModel) applyFilter() {
	query := strings.TrimSpace(m.search.Value())

	if query == "" {
		m.visible = m.hosts
	} else {
		matches := fuzzy.FindFrom(query, hostSource(m.hosts))
		m.visible = make([]sshconfig.Host, len(matches))
		for i, match := range matches {
			m.visible[i] = m.hosts[match.Index]
		}
	}

	cursor := m.table.Cursor()
	m.table = NewHostTable(m.visible, m.opts.ShowProxyCommand)
	m.resize()
	if cursor < len(m.visible) {
		m.table.SetCursor(cursor)
	} else {
		m.table.SetCursor(0)
	}
}

// resize fits the table into the current terminal height, leaving room for
// the search bar and help line.
func (m *PickerModel) resize() {
	if m.height == 0 {
		return
	}
	rows := len(m.visible) + 1 // +1 for header
	max := m.height - 4
	if max < 3 {
		max = 3
	}
	if rows > max {
		rows = max
	}
	m.table.SetHeight(rows)
}

// Init implements tea.Model.
func (m PickerModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m PickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, pickerKeys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, pickerKeys.Select):
			if cursor := m.table.Cursor(); cursor >= 0 && cursor < len(m.visible) {
				host := m.visible[cursor]
				m.selected = &host
			}
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, pickerKeys.Up), key.Matches(msg, pickerKeys.Down):
			var cmd tea.Cmd
			m.table, cmd = m.table.Update(msg)
			return m, cmd

		default:
			var cmd tea.Cmd
			m.search, cmd = m.search.Update(msg)
			m.applyFilter()
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.height = msg.Height
		m.resize()
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m PickerModel) View() string {
	if m.quitting {
		return ""
	}

	help := lipgloss.NewStyle().
		Foreground(ColorMuted).
		Render("(esc) quit | (↑/↓) move | (enter) select")

	status := fmt.Sprintf("%d %s", len(m.visible), util.Pluralize(len(m.visible), "host", "hosts"))

	return strings.Join([]string{
		m.search.View() + "  " + lipgloss.NewStyle().Foreground(ColorMuted).Render(status),
		m.table.View(),
		help,
	}, "\n")
}

// Selected returns the picked host, or nil if the picker was cancelled.
func (m PickerModel) Selected() *sshconfig.Host {
	return m.selected
}

// Pick displays the interactive host picker and returns the selection.
// A nil host with a nil error means the user cancelled.
func Pick(hosts []sshconfig.Host, opts PickerOptions) (*sshconfig.Host, error) {
	model := NewPickerModel(hosts, opts)

	p := tea.NewProgram(model, tea.WithAltScreen())

	finalModel, err := p.Run()
	if err != nil {
		return nil, fmt.Errorf("host picker error: %w", err)
	}

	if m, ok := finalModel.(PickerModel); ok {
		return m.Selected(), nil
	}
	return nil, nil
}
