package port

import (
	"context"

	"scan-viewer/internal/domain/entity"
)

// RegionDetector интерфейс детектора кандидатов в области интереса
type RegionDetector interface {
	// Detect ищет на срезе области, похожие на находки
	Detect(ctx context.Context, slice *entity.ImageDescriptor) ([]entity.Region, error)
}
