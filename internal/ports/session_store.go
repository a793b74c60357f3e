package ports

import (
	"context"

	"tideline/internal/domain"
)

// SessionReader reads stored session snapshots
type SessionReader interface {
	ActiveID(ctx context.Context) (string, bool)
	ListSummaries(ctx context.Context) []domain.SessionSummary
	Load(ctx context.Context, id string) (*domain.Session, bool)
}

// SessionWriter saves and removes session snapshots
type SessionWriter interface {
	ClearActive(ctx context.Context)
	Delete(ctx context.Context, id string)
	Save(ctx context.Context, session *domain.Session)
	SetActive(ctx context.Context, id string)
}

// ReportCache keeps the analysis report of finished sessions
type ReportCache interface {
	LoadReport(ctx context.Context, id string) (*domain.AnalysisReport, bool)
	SaveReport(ctx context.Context, id string, report domain.AnalysisReport)
}

// SessionStore is the composite persistence interface.
// Implementations log storage failures and degrade to "no data"; none of
// the data methods report errors to the caller.
type SessionStore interface {
	SessionReader
	SessionWriter
	ReportCache
	Close() error
}
