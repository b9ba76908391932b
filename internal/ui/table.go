package ui

import (
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"sshp/internal/sshconfig"
	"sshp/internal/util"
)

// Column titles for the host table, in display order.
const (
	columnName         = "Name"
	columnAliases      = "Aliases"
	columnUser         = "User"
	columnDestination  = "Destination"
	columnPort         = "Port"
	columnProxyCommand = "ProxyCommand"
)

// HostColumns computes the table columns for a host list, sizing each column
// to its widest cell. The ProxyCommand column only appears on request since
// proxy commands tend to be long and rarely matter when picking a host.
func HostColumns(hosts []sshconfig.Host, showProxyCommand bool) []table.Column {
	titles := []string{columnName, columnAliases, columnUser, columnDestination, columnPort}
	if showProxyCommand {
		titles = append(titles, columnProxyCommand)
	}

	widths := make([]int, len(titles))
	for i, title := range titles {
		widths[i] = len(title)
	}

	for _, h := range hosts {
		for i, cell := range hostCells(h, showProxyCommand) {
			if len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	cols := make([]table.Column, len(titles))
	for i, title := range titles {
		cols[i] = table.Column{Title: title, Width: widths[i]}
	}
	return cols
}

// HostRows converts hosts to table rows matching HostColumns.
func HostRows(hosts []sshconfig.Host, showProxyCommand bool) []table.Row {
	rows := make([]table.Row, len(hosts))
	for i, h := range hosts {
		rows[i] = hostCells(h, showProxyCommand)
	}
	return rows
}

func hostCells(h sshconfig.Host, showProxyCommand bool) []string {
	cells := []string{
		h.Name,
		util.JoinOrDefault(h.Aliases, ""),
		h.User,
		h.Destination,
		h.Port,
	}
	if showProxyCommand {
		cells = append(cells, h.ProxyCommand)
	}
	return cells
}

// NewHostTable creates a styled Bubbles table for the given hosts.
func NewHostTable(hosts []sshconfig.Host, showProxyCommand bool) table.Model {
	t := table.New(
		table.WithColumns(HostColumns(hosts, showProxyCommand)),
		table.WithRows(HostRows(hosts, showProxyCommand)),
		table.WithFocused(true),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(ColorMuted).
		BorderBottom(true).
		Bold(true).
		Foreground(ColorPrimary)
	s.Cell = s.Cell.
		Foreground(ColorPrimary)
	s.Selected = s.Selected.
		Foreground(ColorPrimary).
		Background(AccentColor()).
		Bold(false)

	t.SetStyles(s)
	return t
}

// RenderHostTable renders a non-interactive host table string for CLI output
// (sshp list), reusing the TUI table for consistent formatting.
func RenderHostTable(hosts []sshconfig.Host, showProxyCommand bool) string {
	if len(hosts) == 0 {
		return ""
	}

	t := table.New(
		table.WithColumns(HostColumns(hosts, showProxyCommand)),
		table.WithRows(HostRows(hosts, showProxyCommand)),
		table.WithFocused(false),
		table.WithHeight(len(hosts)+1), // +1 for header
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(ColorMuted).
		BorderBottom(true).
		Bold(true).
		Foreground(ColorPrimary)
	s.Cell = s.Cell.Foreground(ColorPrimary)
	s.Selected = s.Cell

	t.SetStyles(s)
	return t.View()
}
