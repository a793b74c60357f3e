package cmd

import (
	"context"
	"fmt"

	"github.com/charmbracelet/huh"

	"tideline/internal/domain"
	"tideline/internal/logging"
)

// SessionsDelCmd deletes a saved session
type SessionsDelCmd struct {
	Force bool   `help:"Force deletion without confirmation" short:"f"`
	ID    string `arg:"" help:"ID of the session to delete"`
}

// Run executes the del command
func (s *SessionsDelCmd) Run(cli *CLI) error {
	ctx := context.Background()
	logging.Logger.Info("Executing sessions del command", "session", s.ID, "force", s.Force)

	if _, ok := cli.Container.Store.Load(ctx, s.ID); !ok {
		return fmt.Errorf("%w: %s", domain.ErrSessionNotFound, s.ID)
	}

	if !s.Force {
		confirmed, err := s.confirmDeletion()
		if err != nil {
			return err
		}
		if !confirmed {
			logging.Logger.Info("User cancelled session deletion", "session", s.ID)
			fmt.Println("Cancelled")
			return nil
		}
	}

	svc := cli.Container.GameService
	svc.ResumeActive(ctx)
	svc.DeleteSession(ctx, s.ID)
	fmt.Printf("Deleted session %s\n", s.ID)
	return nil
}

func (s *SessionsDelCmd) confirmDeletion() (bool, error) {
	var confirmed bool
	err := huh.NewConfirm().
		Title(fmt.Sprintf("Delete session '%s' and its analysis?", s.ID)).
		Affirmative("Delete").
		Negative("Cancel").
		Value(&confirmed).
		Run()
	return confirmed, err
}
