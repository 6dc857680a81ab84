package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"scan-viewer/internal/domain/entity"
)

func TestFileROIJournal_WriteAndLoad(t *testing.T) {
	dir := t.TempDir()
	j := NewFileROIJournal(dir)
	ctx := context.Background()

	rois := []entity.ROI{
		{ID: "a", ScanID: "scan1", Label: "ROI 0", Color: "#ff0000", X: 1, Y: 2, W: 3, H: -4},
		{ID: "b", ScanID: "scan1", Label: "ROI 2", Slice: 2, Color: "#00ff00"},
	}
	require.NoError(t, j.Write(ctx, "scan1", rois))
	// повторное сохранение не дублирует записи
	require.NoError(t, j.Write(ctx, "scan1", rois))

	data, err := os.ReadFile(filepath.Join(dir, "scan1"))
	require.NoError(t, err)
	require.Equal(t, 2, strings.Count(string(data), "\n"))

	all, err := j.LoadAll(ctx)
	require.NoError(t, err)
	require.Equal(t, map[string][]entity.ROI{"scan1": rois}, all)
}

func TestFileROIJournal_MissingDir(t *testing.T) {
	all, err := NewFileROIJournal(filepath.Join(t.TempDir(), "nope")).LoadAll(context.Background())
	require.NoError(t, err)
	require.Empty(t, all)
}

func TestFileROIJournal_BadLine(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "scan1"), []byte("{not json}\n"), 0644))

	_, err := NewFileROIJournal(dir).LoadAll(context.Background())
	require.Error(t, err)
}

func TestFileROIJournal_RejectsPathInScanID(t *testing.T) {
	err := NewFileROIJournal(t.TempDir()).Write(context.Background(), "../x", nil)
	require.Error(t, err)
}
