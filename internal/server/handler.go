package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"tideline/internal/domain"
	"tideline/internal/logging"
	"tideline/internal/wire"
)

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	var req wire.CreateSessionRequest
	if !s.decode(w, r, &req) {
		return
	}

	participants, err := domain.ParseParticipants(req.Participants)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}
	activity, err := domain.ParseActivity(req.Activity)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}

	created, err := s.provider.CreateSession(r.Context(), domain.SessionSetup{
		Activity:     activity,
		Participants: participants,
	})
	if err != nil {
		s.writeError(w, statusFor(err), err)
		return
	}

	writeJSON(w, http.StatusOK, wire.Success(wire.CreateSessionResponse{
		InitialScenario: wire.ScenarioFromDomain(created.InitialScenario),
		SessionID:       created.ID,
	}, s.now()))
}

func (s *Server) handleResolveChoice(w http.ResponseWriter, r *http.Request) {
	sessionID := r.PathValue("id")

	var req wire.ChoiceRequest
	if !s.decode(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.ChoiceID) == "" {
		s.writeError(w, http.StatusBadRequest, fmt.Errorf("%w: choiceId is required", domain.ErrValidation))
		return
	}

	outcome, err := s.provider.ResolveChoice(r.Context(), sessionID, req.ChoiceID)
	if err != nil {
		s.writeError(w, statusFor(err), err)
		return
	}

	resp := wire.ChoiceResponse{
		Feedback:             outcome.Feedback,
		ImmediateConsequence: outcome.ImmediateConsequence,
		IsComplete:           outcome.IsComplete,
	}
	if outcome.NextScenario != nil {
		next := wire.ScenarioFromDomain(*outcome.NextScenario)
		resp.NextScenario = &next
	}
	writeJSON(w, http.StatusOK, wire.Success(resp, s.now()))
}

func (s *Server) handleAnalysis(w http.ResponseWriter, r *http.Request) {
	sessionID := r.PathValue("id")

	var req wire.AnalysisRequest
	if !s.decode(w, r, &req) {
		return
	}
	session, err := req.ToSession(sessionID)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}

	report, err := s.provider.GetAnalysis(r.Context(), session)
	if err != nil {
		s.writeError(w, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, wire.Success(wire.AnalysisResponseFromReport(report), s.now()))
}

func (s *Server) handleNotFound(w http.ResponseWriter, r *http.Request) {
	s.writeError(w, http.StatusNotFound, fmt.Errorf("no route for %s %s", r.Method, r.URL.Path))
}

// decode reads a JSON body, writing a 400 envelope on failure
func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		s.writeError(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return false
	}
	return true
}

func (s *Server) writeError(w http.ResponseWriter, status int, err error) {
	if status >= http.StatusInternalServerError {
		logging.Logger.Error("Request failed", "status", status, "error", err)
	} else {
		logging.Logger.Debug("Request rejected", "status", status, "error", err)
	}
	writeJSON(w, status, wire.Failure(err.Error(), s.now()))
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrSessionNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.Logger.Warn("Failed to write response", "error", err)
	}
}
