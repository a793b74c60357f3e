package archive

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zstd"

	"tideline/internal/adapters/storage"
	"tideline/internal/domain"
)

const extension = ".json.zst"

// Export compresses the session snapshot into archiveDir/{session-id}.json.zst.
// Returns the archive path.
func Export(session *domain.Session, archiveDir string) (string, error) {
	if session == nil || session.ID == "" {
		return "", fmt.Errorf("%w: session has no id", domain.ErrValidation)
	}
	if filepath.Base(session.ID) != session.ID || strings.ContainsAny(session.ID, `/\`) {
		return "", fmt.Errorf("%w: session id %q is not a valid file name", domain.ErrValidation, session.ID)
	}

	snapshot, err := storage.EncodeSnapshot(session)
	if err != nil {
		return "", fmt.Errorf("encode snapshot: %w", err)
	}

	if err := os.MkdirAll(archiveDir, 0o755); err != nil {
		return "", fmt.Errorf("create archive dir: %w", err)
	}

	destPath := ArchivePath(session.ID, archiveDir)
	dest, err := os.Create(destPath)
	if err != nil {
		return "", fmt.Errorf("create archive: %w", err)
	}
	defer dest.Close()

	encoder, err := zstd.NewWriter(dest)
	if err != nil {
		return "", fmt.Errorf("create zstd encoder: %w", err)
	}

	if _, err := io.Copy(encoder, bytes.NewReader(snapshot)); err != nil {
		encoder.Close()
		return "", fmt.Errorf("compress: %w", err)
	}

	if err := encoder.Close(); err != nil {
		return "", fmt.Errorf("finalize compression: %w", err)
	}

	return destPath, nil
}

// Import decompresses an archive and returns the validated session it holds
func Import(archivePath string) (*domain.Session, error) {
	src, err := os.Open(archivePath)
	if err != nil {
		return nil, fmt.Errorf("open archive: %w", err)
	}
	defer src.Close()

	decoder, err := zstd.NewReader(src)
	if err != nil {
		return nil, fmt.Errorf("create zstd decoder: %w", err)
	}
	defer decoder.Close()

	snapshot, err := io.ReadAll(decoder)
	if err != nil {
		return nil, fmt.Errorf("decompress: %w", err)
	}

	session, err := storage.DecodeSnapshot(snapshot)
	if err != nil {
		return nil, err
	}
	if err := session.Validate(); err != nil {
		return nil, fmt.Errorf("archived session %s: %w", session.ID, err)
	}
	return session, nil
}

// IsArchived returns true if an archive file exists for the given session ID
func IsArchived(sessionID, archiveDir string) bool {
	_, err := os.Stat(ArchivePath(sessionID, archiveDir))
	return err == nil
}

// ArchivePath returns the deterministic archive path for a session ID
func ArchivePath(sessionID, archiveDir string) string {
	return filepath.Join(archiveDir, sessionID+extension)
}
