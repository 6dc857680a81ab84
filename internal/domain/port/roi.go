package port

import (
	"context"
	"errors"

	"scan-viewer/internal/domain/entity"
)

// ErrNotFound возвращается, когда скан или область не найдены
var ErrNotFound = errors.New("not found")

// ROIClient точки сервера для работы с областями
type ROIClient interface {
	// ListROIs возвращает области среза
	ListROIs(ctx context.Context, scanID string, slice int) ([]entity.ROI, error)

	// AddROI создаёт область; сервер возвращает сохранённую версию
	AddROI(ctx context.Context, req entity.AddROIRequest) (*entity.ROI, error)

	// DeleteROI удаляет группу областей
	DeleteROI(ctx context.Context, scanID, id string) error

	// Save фиксирует области скана
	Save(ctx context.Context, scanID string) error

	// ListGroups возвращает сводку областей для таблицы
	ListGroups(ctx context.Context, scanID string) ([]entity.ROIGroup, error)
}

// ROIRepository хранилище областей на стороне сервера
type ROIRepository interface {
	// List возвращает все области скана в порядке добавления
	List(ctx context.Context, scanID string) ([]entity.ROI, error)

	// Append добавляет область
	Append(ctx context.Context, roi entity.ROI) error

	// RemoveColor удаляет области скана с указанным цветом и возвращает оставшиеся
	RemoveColor(ctx context.Context, scanID, color string) ([]entity.ROI, error)

	// Replace заменяет все области скана
	Replace(ctx context.Context, scanID string, rois []entity.ROI) error
}

// ROIJournal долговременное хранилище областей
type ROIJournal interface {
	// LoadAll читает все сохранённые области, сгруппированные по скану
	LoadAll(ctx context.Context) (map[string][]entity.ROI, error)

	// Write перезаписывает сохранённые области скана
	Write(ctx context.Context, scanID string, rois []entity.ROI) error
}
