package cmd

import (
	"context"
	"fmt"
	"os"

	"tideline/internal/domain"
	"tideline/internal/logging"
	"tideline/internal/theme"
)

// GameCmd drives the active session with one-shot intents
type GameCmd struct {
	Analyze GameAnalyzeCmd `cmd:"analyze" help:"Request the analysis of a completed session"`
	Choose  GameChooseCmd  `cmd:"choose" help:"Answer the active scenario"`
	Reset   GameResetCmd   `cmd:"reset" help:"Forget the active session (it stays saved)"`
	Show    GameShowCmd    `cmd:"show" help:"Show the active session" default:"1"`
	Start   GameStartCmd   `cmd:"start" help:"Start a new session"`
}

// GameStartCmd starts a new session
type GameStartCmd struct {
	Activity     string `help:"Activity: swimming, fishing or leisure" short:"a" required:""`
	Participants string `help:"Participants: single, double or group" short:"p" required:""`
}

// Run executes the start command
func (g *GameStartCmd) Run(cli *CLI) error {
	ctx := context.Background()
	svc := cli.Container.GameService

	participants, err := domain.ParseParticipants(g.Participants)
	if err != nil {
		return err
	}
	activity, err := domain.ParseActivity(g.Activity)
	if err != nil {
		return err
	}

	logging.Logger.Info("Executing game start command", "activity", activity, "participants", participants)
	session, err := svc.StartSetup(ctx, domain.SessionSetup{Activity: activity, Participants: participants})
	if err != nil {
		return err
	}

	fmt.Printf("Started session %s\n", session.ID)
	renderState(os.Stdout, svc.State())
	return nil
}

// GameChooseCmd answers the active scenario
type GameChooseCmd struct {
	ChoiceID string `arg:"" help:"ID of the choice to select"`
}

// Run executes the choose command
func (g *GameChooseCmd) Run(cli *CLI) error {
	ctx := context.Background()
	svc := cli.Container.GameService
	if !svc.ResumeActive(ctx) {
		return domain.ErrNoSession
	}

	state := svc.State()
	var rating int
	if sc, ok := state.Session.ActiveScenario(); ok {
		if c, ok := sc.FindChoice(g.ChoiceID); ok {
			rating = c.SafetyRating
		}
	}

	logging.Logger.Info("Executing game choose command", "session", state.Session.ID, "choice", g.ChoiceID)
	outcome, err := svc.SelectChoice(ctx, g.ChoiceID)
	if err != nil {
		return err
	}

	renderOutcome(os.Stdout, outcome, rating)
	state = svc.State()
	if state.Phase == domain.PhasePlaying {
		if sc, ok := state.Session.ActiveScenario(); ok {
			renderScenario(os.Stdout, sc, state.Session.CurrentIndex)
			renderChoices(os.Stdout, sc)
		}
		return nil
	}
	fmt.Println(theme.MutedStyle.Render("All scenarios answered. Run 'tideline game analyze' for the report."))
	return nil
}

// GameAnalyzeCmd requests the analysis of the active session
type GameAnalyzeCmd struct{}

// Run executes the analyze command
func (g *GameAnalyzeCmd) Run(cli *CLI) error {
	ctx := context.Background()
	svc := cli.Container.GameService
	if !svc.ResumeActive(ctx) {
		return domain.ErrNoSession
	}

	logging.Logger.Info("Executing game analyze command", "session", svc.State().Session.ID)
	report, err := svc.RequestAnalysis(ctx)
	if err != nil {
		return err
	}
	renderReport(os.Stdout, *report)
	return nil
}

// GameShowCmd shows the active session
type GameShowCmd struct{}

// Run executes the show command
func (g *GameShowCmd) Run(cli *CLI) error {
	svc := cli.Container.GameService
	svc.ResumeActive(context.Background())
	renderState(os.Stdout, svc.State())
	return nil
}

// GameResetCmd forgets the active session
type GameResetCmd struct{}

// Run executes the reset command
func (g *GameResetCmd) Run(cli *CLI) error {
	ctx := context.Background()
	cli.Container.GameService.Reset()
	cli.Container.Store.ClearActive(ctx)

	logging.Logger.Info("Active session cleared")
	fmt.Println("No active session. Saved sessions are kept; see 'tideline sessions list'.")
	return nil
}
