package cmd

import (
	"context"
	"fmt"

	"tideline/internal/adapters/archive"
	"tideline/internal/domain"
	"tideline/internal/logging"
	"tideline/internal/paths"
)

// SessionsExportCmd exports a session to $TIDELINE_HOME/archive
type SessionsExportCmd struct {
	Dir string `help:"Directory to write the archive to (default: $TIDELINE_HOME/archive)" type:"path"`
	ID  string `arg:"" help:"ID of the session to export"`
}

// Run executes the export command
func (s *SessionsExportCmd) Run(cli *CLI) error {
	session, ok := cli.Container.Store.Load(context.Background(), s.ID)
	if !ok {
		return fmt.Errorf("%w: %s", domain.ErrSessionNotFound, s.ID)
	}

	dir := s.Dir
	if dir == "" {
		dir = paths.GetArchiveDir()
	}

	path, err := archive.Export(session, dir)
	if err != nil {
		return fmt.Errorf("failed to export session: %w", err)
	}
	logging.Logger.Info("Session exported", "session", s.ID, "path", path)
	fmt.Println(path)
	return nil
}

// SessionsImportCmd imports a session archive and makes it active
type SessionsImportCmd struct {
	Force bool   `help:"Overwrite an existing session with the same ID" short:"f"`
	Path  string `arg:"" help:"Path to a .json.zst archive" type:"existingfile"`
}

// Run executes the import command
func (s *SessionsImportCmd) Run(cli *CLI) error {
	ctx := context.Background()
	store := cli.Container.Store

	session, err := archive.Import(s.Path)
	if err != nil {
		return fmt.Errorf("failed to import session: %w", err)
	}

	if _, exists := store.Load(ctx, session.ID); exists && !s.Force {
		return fmt.Errorf("session %s already exists (use --force to overwrite)", session.ID)
	}

	store.Save(ctx, session)
	logging.Logger.Info("Session imported", "session", session.ID, "path", s.Path)
	fmt.Printf("Imported session %s (%s)\n", session.ID, session.Phase)
	return nil
}
