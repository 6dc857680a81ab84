//go:build !gocv
// +build !gocv

package vision

import (
	"context"

	"scan-viewer/internal/domain/entity"
	"scan-viewer/internal/domain/port"
)

type GoCVDetector struct {
	MinAreaRatio   float64
	MaxAreaRatio   float64
	MaxAspectRatio float64
	MinAspectRatio float64
	CannyLow       float32
	CannyHigh      float32
}

// NewGoCVDetector создаёт детектор-заглушку (без OpenCV).
func NewGoCVDetector() *GoCVDetector {
	return &GoCVDetector{
		MinAreaRatio:   0.001,
		MaxAreaRatio:   0.5,
		MinAspectRatio: 0.1,
		MaxAspectRatio: 10.0,
		CannyLow:       50,
		CannyHigh:      150,
	}
}

// Detect возвращает ошибку, если сборка без тега gocv.
func (d *GoCVDetector) Detect(ctx context.Context, slice *entity.ImageDescriptor) ([]entity.Region, error) {
	_ = ctx
	_ = slice
	return nil, ErrDisabled
}

var _ port.RegionDetector = (*GoCVDetector)(nil)
