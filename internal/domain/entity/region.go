package entity

// Region область, найденная детектором на срезе
type Region struct {
	X      int `json:"x"`      // координата X левого верхнего угла
	Y      int `json:"y"`      // координата Y левого верхнего угла
	Width  int `json:"width"`  // ширина области в пикселях
	Height int `json:"height"` // высота области в пикселях
	Area   int `json:"area"`   // площадь области в пикселях
}

// Center возвращает координаты центра области
func (r Region) Center() (x, y int) {
	return r.X + r.Width/2, r.Y + r.Height/2
}

// Rect переводит область в прямоугольник канвы
func (r Region) Rect() Rect {
	return Rect{X: float64(r.X), Y: float64(r.Y), W: float64(r.Width), H: float64(r.Height)}
}

// Suggestion результат поиска кандидатов на срезе
type Suggestion struct {
	ScanID  string   `json:"scan_id"`
	Slice   int      `json:"slice"`
	Regions []Region `json:"regions"`
}
