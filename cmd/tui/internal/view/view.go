// Package view holds the Sprout terminal screens: the goals table, the goal
// detail with its milestone ladder, and the contribute form.
package view

import (
	tea "github.com/charmbracelet/bubbletea"
)

// View is the interface every Sprout screen implements.
type View interface {
	tea.Model
	Title() string
	ShortHelp() string
}

// CommonModel is embedded by every screen.
type CommonModel struct{}

// BackMsg hands control back to the screen underneath (goals list or menu).
type BackMsg struct{}

func Back() tea.Msg {
	return BackMsg{}
}
