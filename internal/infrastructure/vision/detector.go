//go:build gocv
// +build gocv

package vision

import (
	"context"
	"errors"
	"image"

	"gocv.io/x/gocv"

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

// NewGoCVDetector создаёт детектор кандидатов с порогами по умолчанию.
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

// Detect ищет контуры на срезе в текущем окне и возвращает их рамки.
func (d *GoCVDetector) Detect(ctx context.Context, slice *entity.ImageDescriptor) ([]entity.Region, error) {
	_ = ctx
	if slice == nil || slice.Rows == 0 || slice.Columns == 0 {
		return nil, errors.New("empty image")
	}

	mat, err := gocv.ImageGrayToMatGray(slice.GrayImage())
	if err != nil {
		return nil, err
	}
	defer mat.Close()

	blur := gocv.NewMat()
	defer blur.Close()
	gocv.GaussianBlur(mat, &blur, image.Pt(5, 5), 0, 0, gocv.BorderDefault)

	edges := gocv.NewMat()
	defer edges.Close()
	gocv.Canny(blur, &edges, d.CannyLow, d.CannyHigh)

	contours := gocv.FindContours(edges, gocv.RetrievalExternal, gocv.ChainApproxSimple)
	defer contours.Close()

	total := mat.Cols() * mat.Rows()
	minArea := int(float64(total) * d.MinAreaRatio)
	maxArea := int(float64(total) * d.MaxAreaRatio)
	regions := make([]entity.Region, 0, contours.Size())
	for i := 0; i < contours.Size(); i++ {
		rect := gocv.BoundingRect(contours.At(i))
		area := rect.Dx() * rect.Dy()
		if area < minArea || area > maxArea {
			continue
		}

		if rect.Dy() == 0 {
			continue
		}
		aspect := float64(rect.Dx()) / float64(rect.Dy())
		if aspect < d.MinAspectRatio || aspect > d.MaxAspectRatio {
			continue
		}
		regions = append(regions, entity.Region{
			X:      rect.Min.X,
			Y:      rect.Min.Y,
			Width:  rect.Dx(),
			Height: rect.Dy(),
			Area:   area,
		})
	}

	return regions, nil
}

var _ port.RegionDetector = (*GoCVDetector)(nil)
