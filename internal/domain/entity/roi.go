package entity

import "fmt"

// Rect прямоугольник в координатах канвы. Ширина и высота могут быть отрицательными.
type Rect struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"w"`
	H float64 `json:"h"`
}

// DragEvent начало и конец жеста перетаскивания на канве
type DragEvent struct {
	StartX, StartY float64
	EndX, EndY     float64
}

// Rect строит прямоугольник из жеста без нормализации
func (e DragEvent) Rect() Rect {
	return Rect{
		X: e.StartX,
		Y: e.StartY,
		W: e.EndX - e.StartX,
		H: e.EndY - e.StartY,
	}
}

// ROI размеченная область на срезе
type ROI struct {
	ID     string  `json:"id"`
	ScanID string  `json:"scan_id,omitempty"`
	Label  string  `json:"label"`
	Slice  int     `json:"slice"`
	Color  string  `json:"color"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	W      float64 `json:"w"`
	H      float64 `json:"h"`
}

// Rect возвращает прямоугольник области
func (r ROI) Rect() Rect {
	return Rect{X: r.X, Y: r.Y, W: r.W, H: r.H}
}

// DefaultLabel подпись новой области на срезе
func DefaultLabel(slice int) string {
	return fmt.Sprintf("ROI %d", slice)
}

// ROIGroup сводка областей одного цвета для таблицы
type ROIGroup struct {
	Color    string `json:"color"`
	Label    string `json:"label"`
	MinSlice int    `json:"min_slice"`
	MaxSlice int    `json:"max_slice"`
}

// GroupLabel подпись группы в таблице
const GroupLabel = "ROI"

// GroupROIs собирает области в группы по цвету в порядке первого появления
func GroupROIs(rois []ROI) []ROIGroup {
	groups := make([]ROIGroup, 0)
	index := make(map[string]int)

	for _, roi := range rois {
		i, ok := index[roi.Color]
		if !ok {
			index[roi.Color] = len(groups)
			groups = append(groups, ROIGroup{
				Color:    roi.Color,
				Label:    GroupLabel,
				MinSlice: roi.Slice,
				MaxSlice: roi.Slice,
			})
			continue
		}
		g := &groups[i]
		g.MinSlice = min(g.MinSlice, roi.Slice)
		g.MaxSlice = max(g.MaxSlice, roi.Slice)
	}

	return groups
}

// AddROIRequest тело запроса add-roi
type AddROIRequest struct {
	ScanID     string  `json:"scan_id"`
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	W          float64 `json:"w"`
	H          float64 `json:"h"`
	Color      string  `json:"color"`
	ImageIndex int     `json:"image_index"`
}

// DeleteROIRequest тело запроса delete-roi. ID это идентификатор группы (цвет).
type DeleteROIRequest struct {
	ScanID string `json:"scan_id"`
	ID     string `json:"id"`
}

// SaveRequest тело запроса save
type SaveRequest struct {
	ScanID string `json:"scan_id"`
}
