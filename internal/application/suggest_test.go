package app

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"scan-viewer/internal/domain/entity"
	"scan-viewer/internal/domain/port"
)

type fakeScanRepo struct {
	meta entity.ScanMetadata
	raw  []byte
}

func (r *fakeScanRepo) List(ctx context.Context) ([]entity.ScanMetadata, error) {
	return []entity.ScanMetadata{r.meta}, nil
}

func (r *fakeScanRepo) Metadata(ctx context.Context, uid string) (*entity.ScanMetadata, error) {
	if uid != r.meta.UID {
		return nil, port.ErrNotFound
	}
	m := r.meta
	return &m, nil
}

func (r *fakeScanRepo) Volume(ctx context.Context, uid string) ([]byte, error) {
	if uid != r.meta.UID {
		return nil, port.ErrNotFound
	}
	return r.raw, nil
}

func (r *fakeScanRepo) Compress(ctx context.Context, uid string) error { return nil }

type fakeDetector struct {
	got *entity.ImageDescriptor
}

func (d *fakeDetector) Detect(ctx context.Context, slice *entity.ImageDescriptor) ([]entity.Region, error) {
	d.got = slice
	return []entity.Region{{X: 1, Y: 1, Width: 2, Height: 2, Area: 4}}, nil
}

func TestScanService_Worklist(t *testing.T) {
	meta := testMeta
	meta.Name = "Jane Doe"
	meta.AccessionNumber = "AN-1"
	svc := NewScanService(&fakeScanRepo{meta: meta, raw: testVolume()})

	items, err := svc.Worklist(context.Background())
	require.NoError(t, err)
	require.Equal(t, []entity.WorklistItem{{AccessionNumber: "AN-1", PatientName: "Jane Doe", UID: "abc123"}}, items)
}

func TestScanService_Slice(t *testing.T) {
	ctx := context.Background()
	svc := NewScanService(&fakeScanRepo{meta: testMeta, raw: testVolume()})

	d, err := svc.Slice(ctx, "abc123", 1)
	require.NoError(t, err)
	require.Equal(t, int16(16), d.PixelData()[0])

	_, err = svc.Slice(ctx, "abc123", 2)
	require.ErrorIs(t, err, ErrSliceOutOfRange)

	_, err = svc.Slice(ctx, "other", 0)
	require.ErrorIs(t, err, port.ErrNotFound)
}

func TestSuggestService(t *testing.T) {
	ctx := context.Background()
	scans := NewScanService(&fakeScanRepo{meta: testMeta, raw: testVolume()})

	_, err := NewSuggestService(scans, nil).Suggest(ctx, "abc123", 0)
	require.ErrorIs(t, err, ErrNoDetector)

	det := &fakeDetector{}
	s, err := NewSuggestService(scans, det).Suggest(ctx, "abc123", 1)
	require.NoError(t, err)
	require.Equal(t, "abc123", s.ScanID)
	require.Equal(t, 1, s.Slice)
	require.Len(t, s.Regions, 1)
	require.Equal(t, 1, det.got.SliceIndex)
}
