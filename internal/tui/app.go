package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/tracetide/tracetide/internal/config"
	"github.com/tracetide/tracetide/internal/logging"
	"github.com/tracetide/tracetide/internal/packet"
)

// App wraps the Bubbletea program
type App struct {
	model Model
}

// New creates a timeline viewer application for a recorded stream.
func New(cfg *config.Config, logger *logging.Logger, sessionKey string, stream []packet.Packet) *App {
	return &App{
		model: NewModel(cfg, logger, sessionKey, stream),
	}
}

// Run starts the viewer and blocks until the user quits.
func (a *App) Run() error {
	program := tea.NewProgram(a.model, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("timeline viewer failed: %w", err)
	}
	return nil
}
