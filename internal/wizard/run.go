package wizard

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

// Run executes the wizard as a full-screen bubbletea program and returns
// the final session state.
func Run(opts Options) (*State, error) {
	m := New(opts)
	program := tea.NewProgram(m)
	final, err := program.Run()
	if err != nil {
		return nil, fmt.Errorf("running creation wizard: %w", err)
	}
	fm, ok := final.(*Model)
	if !ok {
		return nil, fmt.Errorf("unexpected model type %T", final)
	}
	return fm.State(), nil
}
