package app

import (
	"context"
	"errors"

	"scan-viewer/internal/domain/entity"
	"scan-viewer/internal/domain/port"
)

// ErrNoDetector детектор не подключён
var ErrNoDetector = errors.New("detector is not configured")

// SuggestService ищет на срезе кандидатов в области интереса
type SuggestService struct {
	scans    *ScanService
	detector port.RegionDetector
}

// NewSuggestService создаёт сервис подсказок; detector может быть nil
func NewSuggestService(scans *ScanService, detector port.RegionDetector) *SuggestService {
	return &SuggestService{scans: scans, detector: detector}
}

// Suggest запускает детектор на срезе скана
func (s *SuggestService) Suggest(ctx context.Context, uid string, slice int) (*entity.Suggestion, error) {
	if s.detector == nil {
		return nil, ErrNoDetector
	}

	img, err := s.scans.Slice(ctx, uid, slice)
	if err != nil {
		return nil, err
	}

	regions, err := s.detector.Detect(ctx, img)
	if err != nil {
		return nil, err
	}

	return &entity.Suggestion{ScanID: uid, Slice: slice, Regions: regions}, nil
}
