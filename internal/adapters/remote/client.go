package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"

	"tideline/internal/domain"
	"tideline/internal/logging"
	"tideline/internal/ports"
	"tideline/internal/wire"
)

// Client is a ScenarioProvider that talks to a provider over HTTP
type Client struct {
	baseURL    string
	group      singleflight.Group
	httpClient *http.Client
}

// Verify interface compliance at compile time
var _ ports.ScenarioProvider = (*Client)(nil)

// NewClient creates a client for baseURL. A non-positive timeout disables
// the per-request limit.
func NewClient(baseURL string, timeout time.Duration) *Client {
	hc := &http.Client{}
	if timeout > 0 {
		hc.Timeout = timeout
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: hc,
	}
}

// CreateSession implements ScenarioProvider.CreateSession
func (c *Client) CreateSession(ctx context.Context, setup domain.SessionSetup) (*ports.CreatedSession, error) {
	resp, err := post[wire.CreateSessionResponse](ctx, c, "/sessions", wire.CreateSessionRequest{
		Activity:     string(setup.Activity),
		Participants: string(setup.Participants),
	})
	if err != nil {
		return nil, err
	}
	if resp.SessionID == "" {
		return nil, errors.New("provider returned no session id")
	}
	return &ports.CreatedSession{
		ID:              resp.SessionID,
		InitialScenario: resp.InitialScenario.ToDomain(),
	}, nil
}

// ResolveChoice implements ScenarioProvider.ResolveChoice
func (c *Client) ResolveChoice(ctx context.Context, sessionID, choiceID string) (*ports.ChoiceOutcome, error) {
	path := "/sessions/" + url.PathEscape(sessionID) + "/choices"
	resp, err := post[wire.ChoiceResponse](ctx, c, path, wire.ChoiceRequest{ChoiceID: choiceID})
	if err != nil {
		return nil, err
	}

	outcome := &ports.ChoiceOutcome{
		Feedback:             resp.Feedback,
		ImmediateConsequence: resp.ImmediateConsequence,
		IsComplete:           resp.IsComplete,
	}
	if resp.NextScenario != nil {
		next := resp.NextScenario.ToDomain()
		outcome.NextScenario = &next
	}
	return outcome, nil
}

// GetAnalysis implements ScenarioProvider.GetAnalysis. Concurrent requests
// for the same session share a single HTTP call; each caller still stops
// waiting when its own context ends.
func (c *Client) GetAnalysis(ctx context.Context, session domain.Session) (*domain.RemoteReport, error) {
	// The shared call must not die with whichever caller started it
	callCtx := context.WithoutCancel(ctx)
	ch := c.group.DoChan(session.ID, func() (any, error) {
		path := "/sessions/" + url.PathEscape(session.ID) + "/analysis"
		resp, err := post[wire.AnalysisResponse](callCtx, c, path, wire.AnalysisRequestFromSession(session))
		if err != nil {
			return nil, err
		}
		return resp.ToRemoteReport(), nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		if res.Shared {
			logging.Logger.Debug("Shared in-flight analysis request", "session", session.ID)
		}
		return res.Val.(*domain.RemoteReport), nil
	}
}

func post[T any](ctx context.Context, c *Client, path string, payload any) (*T, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	logging.Logger.Debug("Calling provider", "path", path)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	var env wire.Envelope[T]
	if err := json.Unmarshal(respBody, &env); err != nil {
		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("provider error (status %d): %s", resp.StatusCode, strings.TrimSpace(string(respBody)))
		}
		return nil, fmt.Errorf("unmarshal response: %w", err)
	}

	if !env.Success {
		if env.Error == "" {
			return nil, fmt.Errorf("provider error (status %d)", resp.StatusCode)
		}
		return nil, errors.New(env.Error)
	}
	if env.Data == nil {
		return nil, errors.New("provider returned no data")
	}
	return env.Data, nil
}
