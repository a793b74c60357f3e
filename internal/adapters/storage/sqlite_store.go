package storage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mattn/go-sqlite3"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"

	"tideline/internal/domain"
	"tideline/internal/logging"
	"tideline/internal/ports"
)

// SQLiteStore implements ports.SessionStore using GORM
type SQLiteStore struct {
	db  *gorm.DB
	now func() time.Time
}

// Verify interface compliance at compile time
var _ ports.SessionStore = (*SQLiteStore)(nil)

// gormLogger wraps the tideline logger for GORM
type gormLogger struct {
	level logger.LogLevel
}

func (l *gormLogger) LogMode(level logger.LogLevel) logger.Interface {
	return &gormLogger{level: level}
}

func (l *gormLogger) Info(ctx context.Context, msg string, data ...any) {
	if l.level >= logger.Info {
		logging.Logger.Info(fmt.Sprintf(msg, data...))
	}
}

func (l *gormLogger) Warn(ctx context.Context, msg string, data ...any) {
	if l.level >= logger.Warn {
		logging.Logger.Warn(fmt.Sprintf(msg, data...))
	}
}

func (l *gormLogger) Error(ctx context.Context, msg string, data ...any) {
	if l.level >= logger.Error {
		logging.Logger.Error(fmt.Sprintf(msg, data...))
	}
}

func (l *gormLogger) Trace(ctx context.Context, begin time.Time, fc func() (sql string, rowsAffected int64), err error) {
	if l.level < logger.Info {
		return
	}

	elapsed := time.Since(begin)
	sql, rows := fc()

	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		logging.Logger.Error("gorm query error",
			"error", err,
			"duration", elapsed,
			"sql", sql,
			"rows", rows,
		)
	} else if elapsed > 200*time.Millisecond {
		logging.Logger.Warn("slow query",
			"duration", elapsed,
			"sql", sql,
			"rows", rows,
		)
	} else {
		logging.Logger.Debug("gorm query",
			"duration", elapsed,
			"sql", sql,
			"rows", rows,
		)
	}
}

func newGormLogger() logger.Interface {
	if logging.Logger.Enabled(context.Background(), slog.LevelDebug) {
		return (&gormLogger{}).LogMode(logger.Info)
	}
	return (&gormLogger{}).LogMode(logger.Silent)
}

// NewSQLiteStore opens (or creates) the session database at dbPath
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	if len(dbPath) > 0 && dbPath[0] == '~' {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		dbPath = filepath.Join(homeDir, dbPath[1:])
	}

	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		PrepareStmt: false,
		NowFunc:     func() time.Time { return time.Now().UTC() },
		Logger:      newGormLogger(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// WAL lets a running server and the CLI share the file
	db.Exec("PRAGMA journal_mode=WAL")
	db.Exec("PRAGMA busy_timeout=5000")
	db.Exec("PRAGMA synchronous=NORMAL")

	if err := db.AutoMigrate(&SessionModel{}, &ActiveSessionModel{}, &AnalysisReportModel{}); err != nil {
		if !strings.Contains(err.Error(), "already exists") {
			return nil, fmt.Errorf("failed to migrate schema: %w", err)
		}
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(0)

	return &SQLiteStore{db: db, now: time.Now}, nil
}

// NewSQLiteStoreForPath opens the store inside a TIDELINE_HOME directory
func NewSQLiteStoreForPath(home string) (*SQLiteStore, error) {
	return NewSQLiteStore(filepath.Join(home, "state.db"))
}

// Close closes the database connection
func (r *SQLiteStore) Close() error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Save implements SessionWriter.Save. It stamps session.LastSavedAt and
// makes the session the active one.
func (r *SQLiteStore) Save(ctx context.Context, session *domain.Session) {
	if session == nil || session.ID == "" {
		logging.Logger.Warn("Refusing to save session without id")
		return
	}

	snapshot, err := EncodeSnapshot(session)
	if err != nil {
		logging.Logger.Error("Failed to encode session snapshot", "session", session.ID, "error", err)
		return
	}

	savedAt := r.now().UTC()
	model := sessionToModel(session, snapshot, savedAt)

	err = withRetry(func() error {
		return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			if err := tx.Clauses(clause.OnConflict{
				Columns: []clause.Column{{Name: "id"}},
				DoUpdates: clause.AssignmentColumns([]string{
					"activity", "choice_count", "last_saved_at", "participants",
					"phase", "scenario_count", "snapshot", "updated_at",
				}),
			}).Create(&model).Error; err != nil {
				return fmt.Errorf("failed to upsert session: %w", err)
			}
			return setActive(tx, session.ID)
		})
	}, 3)
	if err != nil {
		logging.Logger.Error("Failed to save session", "session", session.ID, "error", err)
		return
	}

	session.LastSavedAt = savedAt
	logging.Logger.Debug("Session saved", "session", session.ID, "phase", session.Phase, "choices", len(session.ChoiceHistory))
}

// Load implements SessionReader.Load. Missing and unreadable snapshots
// both report not-found.
func (r *SQLiteStore) Load(ctx context.Context, id string) (*domain.Session, bool) {
	var model SessionModel
	err := withRetry(func() error {
		return r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error
	}, 3)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			logging.Logger.Error("Failed to load session", "session", id, "error", err)
		}
		return nil, false
	}

	session, err := DecodeSnapshot([]byte(model.Snapshot))
	if err != nil {
		logging.Logger.Warn("Ignoring unreadable session snapshot", "session", id, "error", err)
		return nil, false
	}
	if session.ID != id {
		logging.Logger.Warn("Ignoring snapshot stored under another id", "session", id, "snapshot_id", session.ID)
		return nil, false
	}
	session.LastSavedAt = model.LastSavedAt.UTC()
	return session, true
}

// Delete implements SessionWriter.Delete. Deleting an unknown id is a no-op.
func (r *SQLiteStore) Delete(ctx context.Context, id string) {
	err := withRetry(func() error {
		return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			if err := tx.Where("id = ?", id).Delete(&SessionModel{}).Error; err != nil {
				return fmt.Errorf("failed to delete session: %w", err)
			}
			if err := tx.Where("session_id = ?", id).Delete(&AnalysisReportModel{}).Error; err != nil {
				return fmt.Errorf("failed to delete report: %w", err)
			}
			if err := tx.Where("slot = ? AND session_id = ?", activeSlot, id).Delete(&ActiveSessionModel{}).Error; err != nil {
				return fmt.Errorf("failed to clear active session: %w", err)
			}
			return nil
		})
	}, 3)
	if err != nil {
		logging.Logger.Error("Failed to delete session", "session", id, "error", err)
		return
	}
	logging.Logger.Debug("Session deleted", "session", id)
}

// ListSummaries implements SessionReader.ListSummaries. Rows whose snapshot
// cannot be decoded are skipped.
func (r *SQLiteStore) ListSummaries(ctx context.Context) []domain.SessionSummary {
	var models []SessionModel
	err := withRetry(func() error {
		return r.db.WithContext(ctx).Find(&models).Error
	}, 3)
	if err != nil {
		logging.Logger.Error("Failed to list sessions", "error", err)
		return []domain.SessionSummary{}
	}

	summaries := make([]domain.SessionSummary, 0, len(models))
	for _, m := range models {
		if _, err := DecodeSnapshot([]byte(m.Snapshot)); err != nil {
			logging.Logger.Warn("Skipping unreadable session snapshot", "session", m.ID, "error", err)
			continue
		}
		summaries = append(summaries, modelToSummary(m))
	}
	return summaries
}

// ActiveID implements SessionReader.ActiveID
func (r *SQLiteStore) ActiveID(ctx context.Context) (string, bool) {
	var active ActiveSessionModel
	err := withRetry(func() error {
		return r.db.WithContext(ctx).Where("slot = ?", activeSlot).First(&active).Error
	}, 3)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			logging.Logger.Error("Failed to read active session", "error", err)
		}
		return "", false
	}
	if active.SessionID == "" {
		return "", false
	}
	return active.SessionID, true
}

// SetActive implements SessionWriter.SetActive. Unknown ids are ignored.
func (r *SQLiteStore) SetActive(ctx context.Context, id string) {
	err := withRetry(func() error {
		return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			var count int64
			if err := tx.Model(&SessionModel{}).Where("id = ?", id).Count(&count).Error; err != nil {
				return err
			}
			if count == 0 {
				return fmt.Errorf("%w: %s", domain.ErrSessionNotFound, id)
			}
			return setActive(tx, id)
		})
	}, 3)
	if err != nil {
		logging.Logger.Warn("Failed to set active session", "session", id, "error", err)
	}
}

// ClearActive implements SessionWriter.ClearActive. Stored sessions are kept.
func (r *SQLiteStore) ClearActive(ctx context.Context) {
	err := withRetry(func() error {
		return r.db.WithContext(ctx).Where("slot = ?", activeSlot).Delete(&ActiveSessionModel{}).Error
	}, 3)
	if err != nil {
		logging.Logger.Error("Failed to clear active session", "error", err)
	}
}

// SaveReport implements ReportCache.SaveReport
func (r *SQLiteStore) SaveReport(ctx context.Context, id string, report domain.AnalysisReport) {
	data, err := encodeReport(report)
	if err != nil {
		logging.Logger.Error("Failed to encode report", "session", id, "error", err)
		return
	}

	model := AnalysisReportModel{SessionID: id, Report: string(data)}
	err = withRetry(func() error {
		return r.db.WithContext(ctx).Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "session_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"report", "updated_at"}),
		}).Create(&model).Error
	}, 3)
	if err != nil {
		logging.Logger.Error("Failed to save report", "session", id, "error", err)
	}
}

// LoadReport implements ReportCache.LoadReport
func (r *SQLiteStore) LoadReport(ctx context.Context, id string) (*domain.AnalysisReport, bool) {
	var model AnalysisReportModel
	err := withRetry(func() error {
		return r.db.WithContext(ctx).Where("session_id = ?", id).First(&model).Error
	}, 3)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			logging.Logger.Error("Failed to load report", "session", id, "error", err)
		}
		return nil, false
	}

	report, err := decodeReport([]byte(model.Report))
	if err != nil {
		logging.Logger.Warn("Ignoring unreadable report", "session", id, "error", err)
		return nil, false
	}
	return report, true
}

func setActive(tx *gorm.DB, id string) error {
	active := ActiveSessionModel{Slot: activeSlot, SessionID: id}
	if err := tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "slot"}},
		DoUpdates: clause.AssignmentColumns([]string{"session_id", "updated_at"}),
	}).Create(&active).Error; err != nil {
		return fmt.Errorf("failed to set active session: %w", err)
	}
	return nil
}

// withRetry retries operations on SQLITE_BUSY with linear backoff
func withRetry(fn func() error, maxRetries int) error {
	for i := 0; i < maxRetries; i++ {
		err := fn()
		if err == nil {
			return nil
		}

		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && (sqliteErr.Code == sqlite3.ErrBusy || sqliteErr.Code == sqlite3.ErrLocked) {
			time.Sleep(time.Millisecond * time.Duration(50*(i+1)))
			continue
		}

		return err
	}
	return fmt.Errorf("operation failed after %d retries", maxRetries)
}
