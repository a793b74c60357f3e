package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"

	"tideline/internal/adapters/storage"
	"tideline/internal/domain"
	"tideline/internal/services"
)

// SessionsViewCmd views a saved session without making it active
type SessionsViewCmd struct {
	Format string `help:"Output format: table or json" enum:"table,json" default:"table"`
	ID     string `arg:"" help:"ID of the session to view"`
}

// Run executes the view command
func (s *SessionsViewCmd) Run(cli *CLI) error {
	ctx := context.Background()
	store := cli.Container.Store

	session, ok := store.Load(ctx, s.ID)
	if !ok {
		return fmt.Errorf("%w: %s", domain.ErrSessionNotFound, s.ID)
	}

	if s.Format == "json" {
		return s.printJSON(session)
	}

	state := services.GameState{
		Phase:   session.Phase,
		Session: session,
	}
	if session.Phase == domain.PhaseFinished {
		if report, ok := store.LoadReport(ctx, s.ID); ok {
			state.Report = report
		} else {
			estimate := domain.EstimateReport(session)
			state.Report = &estimate
		}
	}
	renderState(os.Stdout, state)
	return nil
}

func (s *SessionsViewCmd) printJSON(session *domain.Session) error {
	data, err := storage.EncodeSnapshot(session)
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}
	var out bytes.Buffer
	if err := json.Indent(&out, data, "", "  "); err != nil {
		return fmt.Errorf("failed to format JSON: %w", err)
	}
	fmt.Println(out.String())
	return nil
}
