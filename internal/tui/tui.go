// Package tui is the interactive terminal surface of the vault. It talks to
// the vault services exclusively through their plaintext-view interfaces;
// ciphertext and the encryption primitive never reach this package.
package tui

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/safepass/safepass/internal/config"
	"github.com/safepass/safepass/internal/logger"
	"github.com/safepass/safepass/internal/service"
	"github.com/safepass/safepass/internal/workers"
)

// ErrUserQuit reports that the user left the program from the main screen.
var ErrUserQuit = errors.New("user quit")

type TUI struct {
	services  *service.Services
	pool      *workers.Pool
	generator config.Generator

	// recovered triggers a one-time warning banner: the keyset was corrupt
	// on startup and a fresh key was generated, so old records are gone.
	recovered bool
}

func New(services *service.Services, pool *workers.Pool, generator config.Generator, recovered bool, _ *logger.Logger) (*TUI, error) {
	return &TUI{
		services:  services,
		pool:      pool,
		generator: generator,
		recovered: recovered,
	}, nil
}

// Run drives the vault screens until the user quits.
func (t *TUI) Run(ctx context.Context) error {
	model := newVaultModel(ctx, t.services, t.pool, t.generator, t.recovered)
	finalModel, err := tea.NewProgram(model, tea.WithAltScreen()).Run()
	if err != nil {
		return err
	}

	if _, ok := finalModel.(vaultModel); !ok {
		return tea.ErrProgramKilled
	}
	return nil
}
