// =============================================================================
// Float to Ledger Converter - File Manager Utility
// =============================================================================
//
// File management for processed expense exports:
//   - Archival of source files after a fully successful batch
//   - Date-based archive subdirectories
//   - Collision-safe archive naming
//
// ARCHIVAL STRATEGY:
//   - A source file is only archived when every transaction in its batch
//     was accepted by the accounting system; otherwise it stays in place
//     so the operator can fix and resubmit it.
//   - Archives are organized by date (archive/2026/09/01/export.csv).
//   - A name collision in the archive appends a short unique suffix rather
//     than overwriting the earlier file.
//
// =============================================================================

package utils

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// FileManager handles archival of processed source files.
type FileManager struct {
	// ArchiveDir is the root archive directory.
	ArchiveDir string

	// UseTimestampSubdirs creates date-based subdirectories in the archive.
	UseTimestampSubdirs bool
}

// NewFileManager creates a FileManager rooted at archiveDir.
func NewFileManager(archiveDir string) *FileManager {
	return &FileManager{
		ArchiveDir:          archiveDir,
		UseTimestampSubdirs: true,
	}
}

// ArchiveSourceFile moves a fully processed source file into the archive
// and returns the archived path.
func (fm *FileManager) ArchiveSourceFile(filePath string) (string, error) {
	archivePath := fm.archivePath(filePath)

	if err := os.MkdirAll(filepath.Dir(archivePath), 0755); err != nil {
		return "", fmt.Errorf("failed to create archive directory: %w", err)
	}

	if _, err := os.Stat(archivePath); err == nil {
		archivePath = uniquePath(archivePath)
	}

	if err := os.Rename(filePath, archivePath); err != nil {
		// Rename fails across filesystems; fall back to copy and delete.
		if err := copyFile(filePath, archivePath); err != nil {
			return "", fmt.Errorf("failed to copy file to archive: %w", err)
		}
		if err := os.Remove(filePath); err != nil {
			return "", fmt.Errorf("failed to remove original file: %w", err)
		}
	}

	return archivePath, nil
}

// archivePath constructs the archive destination for a file.
func (fm *FileManager) archivePath(filePath string) string {
	fileName := filepath.Base(filePath)

	if fm.UseTimestampSubdirs {
		now := time.Now()
		subDir := filepath.Join(
			fm.ArchiveDir,
			fmt.Sprintf("%d", now.Year()),
			fmt.Sprintf("%02d", now.Month()),
			fmt.Sprintf("%02d", now.Day()),
		)
		return filepath.Join(subDir, fileName)
	}

	return filepath.Join(fm.ArchiveDir, fileName)
}

// uniquePath appends a short unique suffix before the extension.
func uniquePath(path string) string {
	ext := filepath.Ext(path)
	base := strings.TrimSuffix(path, ext)
	suffix := uuid.NewString()[:8]
	return fmt.Sprintf("%s_%s%s", base, suffix, ext)
}

// copyFile copies src to dst, preserving the file mode.
func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return err
	}

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode())
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return out.Sync()
}
