// ABOUTME: TUI initialization and control
// ABOUTME: Wraps the bubbletea program for the SE manager panel
package ui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// NewProgram creates the panel program for pool
func NewProgram(pool Pool, opts ...tea.ProgramOption) *tea.Program {
	opts = append([]tea.ProgramOption{tea.WithAltScreen()}, opts...)
	return tea.NewProgram(NewModel(pool), opts...)
}

// Run shows the panel until the user quits
func Run(pool Pool, opts ...tea.ProgramOption) error {
	_, err := NewProgram(pool, opts...).Run()
	return err
}
