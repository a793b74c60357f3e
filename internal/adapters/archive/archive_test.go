package archive

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/klauspost/compress/zstd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tideline/internal/domain"
)

func finishedSession() *domain.Session {
	return &domain.Session{
		ID:           "game_1700000000000_abcdef123",
		CurrentIndex: 0,
		Phase:        domain.PhaseFinished,
		Setup:        domain.SessionSetup{Activity: domain.ActivityLeisure, Participants: domain.ParticipantsGroup},
		ScenarioLog: []domain.Scenario{{
			ID:    "leisure_1",
			Title: "Banana boat",
			Choices: []domain.Choice{
				{ID: "leisure_1_a", Text: "Skip", SafetyRating: 1},
				{ID: "leisure_1_b", Text: "Listen", SafetyRating: 5},
			},
		}},
		ChoiceHistory: []domain.RecordedChoice{{
			ChoiceID:     "leisure_1_b",
			SafetyRating: 5,
			ScenarioID:   "leisure_1",
			SelectedAt:   time.Date(2026, 5, 1, 9, 30, 0, 987654321, time.UTC),
		}},
	}
}

func TestExportImport_RoundTrip(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "archive")
	session := finishedSession()

	path, err := Export(session, dir)
	require.NoError(t, err)
	assert.Equal(t, ArchivePath(session.ID, dir), path)
	assert.True(t, IsArchived(session.ID, dir))

	imported, err := Import(path)
	require.NoError(t, err)
	assert.Equal(t, session.ID, imported.ID)
	assert.Equal(t, session.Phase, imported.Phase)
	assert.Equal(t, session.Setup, imported.Setup)
	assert.Equal(t, session.ScenarioLog, imported.ScenarioLog)
	assert.Equal(t, session.ChoiceHistory, imported.ChoiceHistory)
	assert.Equal(t, domain.PendingNone, imported.Pending)
}

func TestExport_RejectsUnsafeID(t *testing.T) {
	session := finishedSession()
	session.ID = "../escape"

	_, err := Export(session, t.TempDir())
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestExport_RejectsMissingID(t *testing.T) {
	_, err := Export(&domain.Session{}, t.TempDir())
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestImport_MissingFile(t *testing.T) {
	_, err := Import(filepath.Join(t.TempDir(), "nope.json.zst"))
	assert.Error(t, err)
}

func TestImport_NotCompressed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plain.json.zst")
	require.NoError(t, os.WriteFile(path, []byte(`{"id":"x"}`), 0o644))

	_, err := Import(path)
	assert.Error(t, err)
}

func TestImport_InvalidSession(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json.zst")
	f, err := os.Create(path)
	require.NoError(t, err)
	enc, err := zstd.NewWriter(f)
	require.NoError(t, err)
	_, err = enc.Write([]byte(`{"id":"g","phase":"playing","currentIndex":3,"setup":{"activity":"fishing","participants":"single"}}`))
	require.NoError(t, err)
	require.NoError(t, enc.Close())
	require.NoError(t, f.Close())

	_, err = Import(path)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestIsArchived_False(t *testing.T) {
	assert.False(t, IsArchived("missing", t.TempDir()))
}
