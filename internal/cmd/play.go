package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/huh"

	"tideline/internal/domain"
	"tideline/internal/logging"
	"tideline/internal/services"
	"tideline/internal/theme"
)

var participantLabels = map[domain.Participants]string{
	domain.ParticipantsDouble: "With a partner",
	domain.ParticipantsGroup:  "In a group",
	domain.ParticipantsSingle: "Alone",
}

var activityLabels = map[domain.Activity]string{
	domain.ActivityFishing:  "Fishing",
	domain.ActivityLeisure:  "Marine leisure",
	domain.ActivitySwimming: "Swimming",
}

// PlayCmd plays a session interactively
type PlayCmd struct {
	Activity     string `help:"Activity: swimming, fishing or leisure" short:"a"`
	Participants string `help:"Participants: single, double or group" short:"p"`
	Resume       string `help:"Resume a saved session by id" short:"r"`
}

// Run executes the play command
func (p *PlayCmd) Run(cli *CLI) error {
	ctx := context.Background()
	svc := cli.Container.GameService
	out := os.Stdout

	logging.Logger.Info("Executing play command", "resume", p.Resume, "activity", p.Activity, "participants", p.Participants)

	switch {
	case p.Resume != "":
		if _, err := svc.Resume(ctx, p.Resume); err != nil {
			return err
		}
	case p.Activity == "" && p.Participants == "" && p.resumeUnfinished(ctx, svc):
		fmt.Fprintln(out, theme.MutedStyle.Render("Resuming session "+svc.State().Session.ID))
	default:
		setup, err := p.promptSetup()
		if err != nil {
			return abortOr(out, err)
		}
		if _, err := svc.StartSetup(ctx, setup); err != nil {
			return err
		}
	}

	return playLoop(ctx, out, svc)
}

// resumeUnfinished resumes the active session unless it is already finished
func (p *PlayCmd) resumeUnfinished(ctx context.Context, svc *services.GameService) bool {
	if !svc.ResumeActive(ctx) {
		return false
	}
	if svc.State().Phase == domain.PhaseFinished {
		svc.Reset()
		return false
	}
	return true
}

func (p *PlayCmd) promptSetup() (domain.SessionSetup, error) {
	var setup domain.SessionSetup
	var fields []huh.Field

	if p.Participants != "" {
		participants, err := domain.ParseParticipants(p.Participants)
		if err != nil {
			return setup, err
		}
		setup.Participants = participants
	} else {
		options := make([]huh.Option[domain.Participants], 0, len(domain.AllParticipants))
		for _, v := range domain.AllParticipants {
			options = append(options, huh.NewOption(participantLabels[v], v))
		}
		fields = append(fields, huh.NewSelect[domain.Participants]().
			Title("Who is going?").
			Options(options...).
			Value(&setup.Participants))
	}

	if p.Activity != "" {
		activity, err := domain.ParseActivity(p.Activity)
		if err != nil {
			return setup, err
		}
		setup.Activity = activity
	} else {
		options := make([]huh.Option[domain.Activity], 0, len(domain.AllActivities))
		for _, v := range domain.AllActivities {
			options = append(options, huh.NewOption(activityLabels[v], v))
		}
		fields = append(fields, huh.NewSelect[domain.Activity]().
			Title("What are you planning?").
			Options(options...).
			Value(&setup.Activity))
	}

	if len(fields) > 0 {
		if err := huh.NewForm(huh.NewGroup(fields...)).Run(); err != nil {
			return setup, err
		}
	}
	return setup, nil
}

func playLoop(ctx context.Context, out io.Writer, svc *services.GameService) error {
	for {
		state := svc.State()
		if state.Session == nil {
			return domain.ErrNoSession
		}

		switch state.Phase {
		case domain.PhasePlaying:
			sc, ok := state.Session.ActiveScenario()
			if !ok {
				return fmt.Errorf("%w: no active scenario", domain.ErrValidation)
			}
			renderScenario(out, sc, state.Session.CurrentIndex)

			choiceID, err := promptChoice(sc)
			if err != nil {
				return abortOr(out, err)
			}
			choice, _ := sc.FindChoice(choiceID)

			outcome, err := svc.SelectChoice(ctx, choiceID)
			if err != nil {
				if retry, perr := promptRetry(out, err); perr != nil || !retry {
					return abortOr(out, perr)
				}
				continue
			}
			renderOutcome(out, outcome, choice.SafetyRating)

		case domain.PhaseAnalysis:
			fmt.Fprintln(out, theme.MutedStyle.Render("Analyzing your choices..."))
			if _, err := svc.RequestAnalysis(ctx); err != nil {
				if retry, perr := promptRetry(out, err); perr != nil || !retry {
					return abortOr(out, perr)
				}
			}

		case domain.PhaseFinished:
			report, err := svc.RequestAnalysis(ctx)
			if err != nil {
				return err
			}
			renderReport(out, *report)
			return nil

		default:
			return fmt.Errorf("%w: %s", domain.ErrInvalidPhase, state.Phase)
		}
	}
}

func promptChoice(sc domain.Scenario) (string, error) {
	options := make([]huh.Option[string], 0, len(sc.Choices))
	for _, c := range sc.Choices {
		options = append(options, huh.NewOption(choiceLabel(c), c.ID))
	}

	var choiceID string
	err := huh.NewSelect[string]().
		Title("What do you do?").
		Options(options...).
		Value(&choiceID).
		Run()
	return choiceID, err
}

func promptRetry(out io.Writer, cause error) (bool, error) {
	fmt.Fprintln(out, theme.ErrorStyle.Render(cause.Error()))
	retry := true
	err := huh.NewConfirm().
		Title("Try again?").
		Value(&retry).
		Run()
	return retry, err
}

// abortOr treats a user abort as a clean exit with progress saved
func abortOr(out io.Writer, err error) error {
	if err == nil || errors.Is(err, huh.ErrUserAborted) {
		fmt.Fprintln(out, theme.MutedStyle.Render("Progress saved. Continue later with 'tideline play'."))
		return nil
	}
	return err
}
