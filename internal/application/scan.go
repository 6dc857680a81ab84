package app

import (
	"context"
	"fmt"

	"scan-viewer/internal/domain/entity"
	"scan-viewer/internal/domain/port"
)

// ScanService отдаёт сканы и их объёмы
type ScanService struct {
	repo port.ScanRepository
}

func NewScanService(repo port.ScanRepository) *ScanService {
	return &ScanService{repo: repo}
}

// Worklist возвращает список исследований для главной страницы
func (s *ScanService) Worklist(ctx context.Context) ([]entity.WorklistItem, error) {
	scans, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	items := make([]entity.WorklistItem, 0, len(scans))
	for _, scan := range scans {
		items = append(items, entity.WorklistItem{
			AccessionNumber: scan.AccessionNumber,
			PatientName:     scan.Name,
			UID:             scan.UID,
		})
	}
	return items, nil
}

func (s *ScanService) Metadata(ctx context.Context, uid string) (*entity.ScanMetadata, error) {
	return s.repo.Metadata(ctx, uid)
}

func (s *ScanService) Volume(ctx context.Context, uid string) ([]byte, error) {
	return s.repo.Volume(ctx, uid)
}

func (s *ScanService) Compress(ctx context.Context, uid string) error {
	return s.repo.Compress(ctx, uid)
}

// Slice собирает дескриптор одного среза прямо из хранилища
func (s *ScanService) Slice(ctx context.Context, uid string, slice int) (*entity.ImageDescriptor, error) {
	meta, err := s.repo.Metadata(ctx, uid)
	if err != nil {
		return nil, err
	}
	if slice < 0 || slice >= meta.Slices {
		return nil, fmt.Errorf("%w: slice %d of %d in %s", ErrSliceOutOfRange, slice, meta.Slices, uid)
	}

	raw, err := s.repo.Volume(ctx, uid)
	if err != nil {
		return nil, err
	}
	samples, err := entity.DecodeVolume(*meta, raw)
	if err != nil {
		return nil, err
	}
	views, err := entity.SplitVolume(*meta, samples)
	if err != nil {
		return nil, err
	}

	id := entity.ImageID{Scheme: entity.DefaultScheme, ScanID: uid, Slice: slice}
	return entity.NewImageDescriptor(id, *meta, views[slice], nil), nil
}
