package ui

import "github.com/charmbracelet/lipgloss"

// palette — стили интерфейса на lipgloss.
type palette struct {
	title       lipgloss.Style
	tabActive   lipgloss.Style
	tabInactive lipgloss.Style
	ok          lipgloss.Style
	err         lipgloss.Style
	rowTitle    lipgloss.Style
	rowMeta     lipgloss.Style
	cursor      lipgloss.Style
	help        lipgloss.Style
}

var styles = palette{
	title:       lipgloss.NewStyle().Foreground(lipgloss.Color("#7D56F4")).Bold(true).MarginBottom(1),
	tabActive:   lipgloss.NewStyle().Foreground(lipgloss.Color("#FFFFFF")).Background(lipgloss.Color("#7D56F4")).Padding(0, 1),
	tabInactive: lipgloss.NewStyle().Foreground(lipgloss.Color("#626262")).Padding(0, 1),
	ok:          lipgloss.NewStyle().Foreground(lipgloss.Color("#04B575")).Bold(true),
	err:         lipgloss.NewStyle().Foreground(lipgloss.Color("#FF5F5F")).Bold(true),
	rowTitle:    lipgloss.NewStyle().Bold(true),
	rowMeta:     lipgloss.NewStyle().Foreground(lipgloss.Color("#626262")),
	cursor:      lipgloss.NewStyle().Foreground(lipgloss.Color("#7D56F4")).Bold(true),
	help:        lipgloss.NewStyle().Foreground(lipgloss.Color("#626262")).Italic(true),
}
