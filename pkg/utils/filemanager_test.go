package utils

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArchiveSourceFileMoves(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "export.csv")
	require.NoError(t, os.WriteFile(src, []byte("Description,Total\n"), 0644))

	fm := NewFileManager(filepath.Join(dir, "archive"))
	fm.UseTimestampSubdirs = false

	archived, err := fm.ArchiveSourceFile(src)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "archive", "export.csv"), archived)
	assert.FileExists(t, archived)
	assert.NoFileExists(t, src)
}

func TestArchiveSourceFileDatedSubdirs(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "export.csv")
	require.NoError(t, os.WriteFile(src, []byte("x"), 0644))

	fm := NewFileManager(filepath.Join(dir, "archive"))

	archived, err := fm.ArchiveSourceFile(src)
	require.NoError(t, err)

	rel, err := filepath.Rel(filepath.Join(dir, "archive"), archived)
	require.NoError(t, err)
	// archive/<year>/<month>/<day>/export.csv
	assert.Len(t, strings.Split(rel, string(filepath.Separator)), 4)
	assert.Equal(t, "export.csv", filepath.Base(archived))
	assert.FileExists(t, archived)
}

func TestArchiveSourceFileCollision(t *testing.T) {
	dir := t.TempDir()
	fm := NewFileManager(filepath.Join(dir, "archive"))
	fm.UseTimestampSubdirs = false

	first := filepath.Join(dir, "export.csv")
	require.NoError(t, os.WriteFile(first, []byte("first"), 0644))
	firstArchived, err := fm.ArchiveSourceFile(first)
	require.NoError(t, err)

	second := filepath.Join(dir, "export.csv")
	require.NoError(t, os.WriteFile(second, []byte("second"), 0644))
	secondArchived, err := fm.ArchiveSourceFile(second)
	require.NoError(t, err)

	assert.NotEqual(t, firstArchived, secondArchived)
	assert.FileExists(t, firstArchived)
	assert.FileExists(t, secondArchived)

	content, err := os.ReadFile(firstArchived)
	require.NoError(t, err)
	assert.Equal(t, "first", string(content), "a collision must never overwrite the earlier archive")
}

func TestArchiveSourceFileMissing(t *testing.T) {
	fm := NewFileManager(t.TempDir())
	_, err := fm.ArchiveSourceFile(filepath.Join(t.TempDir(), "nope.csv"))
	require.Error(t, err)
}
