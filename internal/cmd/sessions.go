package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"tideline/internal/logging"
)

// SessionsCmd manages saved sessions
type SessionsCmd struct {
	Del    SessionsDelCmd    `cmd:"del" help:"Delete a saved session"`
	Export SessionsExportCmd `cmd:"export" help:"Export a session to a compressed archive"`
	Import SessionsImportCmd `cmd:"import" help:"Import a session from a compressed archive"`
	List   SessionsListCmd   `cmd:"list" help:"List saved sessions" default:"1"`
	View   SessionsViewCmd   `cmd:"view" help:"View a saved session"`
}

// SessionsListCmd lists saved sessions, most recent first
type SessionsListCmd struct {
	Format string `help:"Output format: table or json" enum:"table,json" default:"table"`
}

type sessionListEntry struct {
	Activity      string    `json:"activity"`
	ChoiceCount   int       `json:"choice_count"`
	ID            string    `json:"id"`
	IsActive      bool      `json:"is_active"`
	LastSavedAt   time.Time `json:"last_saved_at"`
	Participants  string    `json:"participants"`
	Phase         string    `json:"phase"`
	ScenarioCount int       `json:"scenario_count"`
}

// Run executes the list command
func (s *SessionsListCmd) Run(cli *CLI) error {
	ctx := context.Background()
	summaries := cli.Container.GameService.ListSessions(ctx)
	activeID, _ := cli.Container.Store.ActiveID(ctx)

	logging.Logger.Debug("Listing sessions", "count", len(summaries))

	if s.Format == "json" {
		entries := make([]sessionListEntry, 0, len(summaries))
		for _, sum := range summaries {
			entries = append(entries, sessionListEntry{
				Activity:      string(sum.Setup.Activity),
				ChoiceCount:   sum.ChoiceCount,
				ID:            sum.ID,
				IsActive:      sum.ID == activeID,
				LastSavedAt:   sum.LastSavedAt,
				Participants:  string(sum.Setup.Participants),
				Phase:         string(sum.Phase),
				ScenarioCount: sum.ScenarioCount,
			})
		}
		data, err := json.MarshalIndent(entries, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
		fmt.Println(string(data))
		return nil
	}

	if len(summaries) == 0 {
		fmt.Println("No saved sessions.")
		return nil
	}
	return renderSummaries(os.Stdout, summaries, activeID)
}
