package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"scan-viewer/internal/domain/entity"
)

func TestMemoryROIRepository_AppendListRemove(t *testing.T) {
	repo := NewMemoryROIRepository()
	ctx := context.Background()

	require.NoError(t, repo.Append(ctx, entity.ROI{ID: "1", ScanID: "s", Color: "#ff0000"}))
	require.NoError(t, repo.Append(ctx, entity.ROI{ID: "2", ScanID: "s", Color: "#00ff00"}))
	require.NoError(t, repo.Append(ctx, entity.ROI{ID: "3", ScanID: "s", Color: "#ff0000"}))
	require.NoError(t, repo.Append(ctx, entity.ROI{ID: "4", ScanID: "other", Color: "#ff0000"}))

	rois, err := repo.List(ctx, "s")
	require.NoError(t, err)
	require.Len(t, rois, 3)

	left, err := repo.RemoveColor(ctx, "s", "#ff0000")
	require.NoError(t, err)
	require.Len(t, left, 1)
	require.Equal(t, "2", left[0].ID)

	other, err := repo.List(ctx, "other")
	require.NoError(t, err)
	require.Len(t, other, 1)
}

func TestMemoryROIRepository_ListReturnsCopy(t *testing.T) {
	repo := NewMemoryROIRepository()
	ctx := context.Background()
	require.NoError(t, repo.Append(ctx, entity.ROI{ID: "1", ScanID: "s"}))

	rois, err := repo.List(ctx, "s")
	require.NoError(t, err)
	rois[0].ID = "changed"

	rois, err = repo.List(ctx, "s")
	require.NoError(t, err)
	require.Equal(t, "1", rois[0].ID)
}

func TestMemoryROIRepository_UnknownScan(t *testing.T) {
	rois, err := NewMemoryROIRepository().List(context.Background(), "missing")
	require.NoError(t, err)
	require.Empty(t, rois)
}
