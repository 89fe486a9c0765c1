package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Run starts the order entry program. The catalog is fetched from the
// configured server once the program is running.
func Run(cfg *Config) error {
	p := tea.NewProgram(NewModel(cfg, NewClient(cfg)), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
