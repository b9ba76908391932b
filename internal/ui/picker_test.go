package ui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sshp/internal/sshconfig"
)

var pickerHosts = []sshconfig.Host{
	{Name: "web", Aliases: []string{"www"}, User: "deploy", Destination: "web.example.com", Port: "22"},
	{Name: "db", Destination: "db.example.com", Port: "5432"},
	{Name: "bastion", Destination: "gateway.corp", ProxyCommand: "nc %h 22"},
}

func TestNewPickerModel_ShowsAllHosts(t *testing.T) {
	m := NewPickerModel(pickerHosts, PickerOptions{})

	assert.Len(t, m.visible, 3)
	assert.Nil(t, m.Selected())
}

func TestNewPickerModel_InitialSearchFilters(t *testing.T) {
	m := NewPickerModel(pickerHosts, PickerOptions{Search: "db"})

	require.Len(t, m.visible, 1)
	assert.Equal(t, "db", m.visible[0].Name)
}

func TestPickerModel_TypingFilters(t *testing.T) {
	m := NewPickerModel(pickerHosts, PickerOptions{})

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("bas")})
	model := updated.(PickerModel)

	require.Len(t, model.visible, 1)
	assert.Equal(t, "bastion", model.visible[0].Name)
}

func TestPickerModel_FuzzyMatchesDestination(t *testing.T) {
	m := NewPickerModel(pickerHosts, PickerOptions{Search: "gateway"})

	require.Len(t, m.visible, 1)
	assert.Equal(t, "bastion", m.visible[0].Name)
}

func TestPickerModel_EnterSelects(t *testing.T) {
	m := NewPickerModel(pickerHosts, PickerOptions{})

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	model := updated.(PickerModel)

	require.NotNil(t, model.Selected())
	assert.Equal(t, "web", model.Selected().Name)
}

func TestPickerModel_EscCancels(t *testing.T) {
	m := NewPickerModel(pickerHosts, PickerOptions{})

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	model := updated.(PickerModel)

	assert.Nil(t, model.Selected())
	assert.True(t, model.quitting)
}

func TestPickerModel_SelectionAfterFilter(t *testing.T) {
	m := NewPickerModel(pickerHosts, PickerOptions{Search: "db"})

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	model := updated.(PickerModel)

	require.NotNil(t, model.Selected())
	assert.Equal(t, "db", model.Selected().Name)
}

func TestPickerModel_NoMatchYieldsEmptyTable(t *testing.T) {
	m := NewPickerModel(pickerHosts, PickerOptions{Search: "zzzz"})

	assert.Empty(t, m.visible)

	// Enter on an empty table cancels instead of selecting.
	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	model := updated.(PickerModel)
	assert.Nil(t, model.Selected())
}

func TestHostColumns_WidthsFitContent(t *testing.T) {
	cols := HostColumns(pickerHosts, false)

	require.Len(t, cols, 5)
	assert.Equal(t, "Name", cols[0].Title)
	assert.Equal(t, len("bastion"), cols[0].Width)
	assert.Equal(t, len("web.example.com"), cols[3].Width)
	assert.Equal(t, len("Port"), cols[4].Width,
		"title sets the floor when cells are shorter")
}

func TestHostColumns_ProxyCommandIsOptIn(t *testing.T) {
	assert.Len(t, HostColumns(pickerHosts, false), 5)

	cols := HostColumns(pickerHosts, true)
	require.Len(t, cols, 6)
	assert.Equal(t, "ProxyCommand", cols[5].Title)
}

func TestHostRows(t *testing.T) {
	rows := HostRows(pickerHosts, false)

	require.Len(t, rows, 3)
	assert.Equal(t, []string{"web", "www", "deploy", "web.example.com", "22"}, []string(rows[0]))
	assert.Equal(t, []string{"db", "", "", "db.example.com", "5432"}, []string(rows[1]))
}

func TestRenderHostTable(t *testing.T) {
	out := RenderHostTable(pickerHosts, false)

	assert.Contains(t, out, "Name")
	assert.Contains(t, out, "web.example.com")
	assert.Contains(t, out, "bastion")
	assert.NotContains(t, out, "nc %h 22", "proxy command hidden by default")

	assert.Empty(t, RenderHostTable(nil, false))
}
