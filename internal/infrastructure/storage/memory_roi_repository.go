package storage

import (
	"context"
	"sync"

	"scan-viewer/internal/domain/entity"
	"scan-viewer/internal/domain/port"
)

// MemoryROIRepository in-memory хранилище областей
type MemoryROIRepository struct {
	mu     sync.RWMutex
	byScan map[string][]entity.ROI
}

// NewMemoryROIRepository создаёт новое in-memory хранилище
func NewMemoryROIRepository() *MemoryROIRepository {
	return &MemoryROIRepository{
		byScan: make(map[string][]entity.ROI),
	}
}

// List возвращает копию областей скана; для неизвестного скана пустой список
func (r *MemoryROIRepository) List(ctx context.Context, scanID string) ([]entity.ROI, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rois := r.byScan[scanID]
	out := make([]entity.ROI, len(rois))
	copy(out, rois)
	return out, nil
}

// Append добавляет область в конец списка скана
func (r *MemoryROIRepository) Append(ctx context.Context, roi entity.ROI) error {
	r.mu.Lock()
	r.byScan[roi.ScanID] = append(r.byScan[roi.ScanID], roi)
	r.mu.Unlock()

	return nil
}

// RemoveColor удаляет области скана с указанным цветом
func (r *MemoryROIRepository) RemoveColor(ctx context.Context, scanID, color string) ([]entity.ROI, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	kept := make([]entity.ROI, 0, len(r.byScan[scanID]))
	for _, roi := range r.byScan[scanID] {
		if roi.Color != color {
			kept = append(kept, roi)
		}
	}
	r.byScan[scanID] = kept

	out := make([]entity.ROI, len(kept))
	copy(out, kept)
	return out, nil
}

// Replace заменяет области скана
func (r *MemoryROIRepository) Replace(ctx context.Context, scanID string, rois []entity.ROI) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := make([]entity.ROI, len(rois))
	copy(stored, rois)
	for i := range stored {
		stored[i].ScanID = scanID
	}
	r.byScan[scanID] = stored

	return nil
}

// Проверка реализации интерфейса
var _ port.ROIRepository = (*MemoryROIRepository)(nil)
