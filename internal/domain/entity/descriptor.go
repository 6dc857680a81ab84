package entity

import "image"

// Значения по умолчанию для дескриптора среза. От скана не зависят.
const (
	DefaultMinPixelValue = -1000
	DefaultMaxPixelValue = 4000
	DefaultSlope         = 1.0
	DefaultIntercept     = 0.0
	DefaultWindowCenter  = 70.0
	DefaultWindowWidth   = 50.0
	DefaultPixelSpacing  = 0.8984375
)

// RenderFunc отрисовывает срез в изображение. Реализацию даёт библиотека отображения.
type RenderFunc func(d *ImageDescriptor) image.Image

// ImageDescriptor описывает один срез для библиотеки отображения
type ImageDescriptor struct {
	ImageID            string
	SliceIndex         int
	MinPixelValue      int
	MaxPixelValue      int
	Slope              float64
	Intercept          float64
	WindowCenter       float64
	WindowWidth        float64
	Render             RenderFunc
	Rows               int
	Columns            int
	Height             int
	Width              int
	Color              bool
	ColumnPixelSpacing float64
	RowPixelSpacing    float64
	SizeInBytes        int

	pixels []int16
}

// NewImageDescriptor создаёт дескриптор среза со значениями по умолчанию
func NewImageDescriptor(id ImageID, meta ScanMetadata, pixels []int16, render RenderFunc) *ImageDescriptor {
	return &ImageDescriptor{
		ImageID:            id.String(),
		SliceIndex:         id.Slice,
		MinPixelValue:      DefaultMinPixelValue,
		MaxPixelValue:      DefaultMaxPixelValue,
		Slope:              DefaultSlope,
		Intercept:          DefaultIntercept,
		WindowCenter:       DefaultWindowCenter,
		WindowWidth:        DefaultWindowWidth,
		Render:             render,
		Rows:               meta.Height,
		Columns:            meta.Width,
		Height:             meta.Height,
		Width:              meta.Width,
		ColumnPixelSpacing: DefaultPixelSpacing,
		RowPixelSpacing:    DefaultPixelSpacing,
		SizeInBytes:        meta.Width * meta.Height * 2,
		pixels:             pixels,
	}
}

// PixelData возвращает отсчёты среза. Это вид на общий буфер объёма, не копия.
func (d *ImageDescriptor) PixelData() []int16 {
	return d.pixels
}

// Modality переводит сырой отсчёт в физическую величину
func (d *ImageDescriptor) Modality(sample int16) float64 {
	return float64(sample)*d.Slope + d.Intercept
}

// GrayImage строит 8-битное изображение среза по окну WindowCenter/WindowWidth
func (d *ImageDescriptor) GrayImage() *image.Gray {
	img := image.NewGray(image.Rect(0, 0, d.Columns, d.Rows))
	lut := d.windowLUT()
	for i, v := range d.pixels {
		if i >= len(img.Pix) {
			break
		}
		img.Pix[i] = lut(d.Modality(v))
	}
	return img
}

// windowLUT линейное VOI окно по формуле DICOM
func (d *ImageDescriptor) windowLUT() func(float64) uint8 {
	center, width := d.WindowCenter, d.WindowWidth
	if width < 1 {
		width = 1
	}
	lower := center - 0.5 - (width-1)/2
	upper := center - 0.5 + (width-1)/2
	return func(v float64) uint8 {
		switch {
		case v <= lower:
			return 0
		case v > upper:
			return 255
		}
		return uint8(((v-(center-0.5))/(width-1) + 0.5) * 255)
	}
}
