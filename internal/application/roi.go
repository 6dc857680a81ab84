package app

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/twinj/uuid"

	"scan-viewer/internal/domain/entity"
	"scan-viewer/internal/domain/port"
)

// ROIService хранит области интереса на стороне сервера
type ROIService struct {
	repo    port.ROIRepository
	journal port.ROIJournal
	newID   func() string
}

// NewROIService создаёт сервис областей
func NewROIService(repo port.ROIRepository, journal port.ROIJournal) *ROIService {
	return &ROIService{
		repo:    repo,
		journal: journal,
		newID:   func() string { return uuid.NewV4().String() },
	}
}

// Restore загружает сохранённые области в хранилище
func (s *ROIService) Restore(ctx context.Context) error {
	byScan, err := s.journal.LoadAll(ctx)
	if err != nil {
		return fmt.Errorf("load roi journal: %w", err)
	}

	for scanID, rois := range byScan {
		if err := s.repo.Replace(ctx, scanID, rois); err != nil {
			return err
		}
		log.Printf("Restored %d rois for scan %s", len(rois), scanID)
	}
	return nil
}

// Add создаёт область на срезе image_index
func (s *ROIService) Add(ctx context.Context, req entity.AddROIRequest) (*entity.ROI, error) {
	if req.ScanID == "" {
		return nil, errors.New("scan_id is required")
	}

	roi := entity.ROI{
		ID:     s.newID(),
		ScanID: req.ScanID,
		Label:  entity.DefaultLabel(req.ImageIndex),
		Slice:  req.ImageIndex,
		Color:  req.Color,
		X:      req.X,
		Y:      req.Y,
		W:      req.W,
		H:      req.H,
	}

	if err := s.repo.Append(ctx, roi); err != nil {
		return nil, err
	}
	return &roi, nil
}

// Delete удаляет группу областей. Группа определяется цветом.
func (s *ROIService) Delete(ctx context.Context, scanID, groupID string) ([]entity.ROI, error) {
	left, err := s.repo.RemoveColor(ctx, scanID, groupID)
	if err != nil {
		return nil, err
	}

	log.Printf("Deleted roi group %s from scan %s, %d left", groupID, scanID, len(left))
	return left, nil
}

// InSlice возвращает области одного среза
func (s *ROIService) InSlice(ctx context.Context, scanID string, slice int) ([]entity.ROI, error) {
	rois, err := s.repo.List(ctx, scanID)
	if err != nil {
		return nil, err
	}

	out := make([]entity.ROI, 0, len(rois))
	for _, roi := range rois {
		if roi.Slice == slice {
			out = append(out, roi)
		}
	}
	return out, nil
}

// Groups возвращает сводку областей по цветам
func (s *ROIService) Groups(ctx context.Context, scanID string) ([]entity.ROIGroup, error) {
	rois, err := s.repo.List(ctx, scanID)
	if err != nil {
		return nil, err
	}
	return entity.GroupROIs(rois), nil
}

// Save переписывает журнал скана текущими областями
func (s *ROIService) Save(ctx context.Context, scanID string) error {
	rois, err := s.repo.List(ctx, scanID)
	if err != nil {
		return err
	}

	if err := s.journal.Write(ctx, scanID, rois); err != nil {
		return fmt.Errorf("save rois of %s: %w", scanID, err)
	}
	return nil
}
