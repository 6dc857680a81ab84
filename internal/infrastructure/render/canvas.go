package render

import (
	"github.com/fogleman/gg"

	"scan-viewer/internal/domain/entity"
	"scan-viewer/internal/domain/port"
)

// Canvas двумерный контекст поверх gg.Context
type Canvas struct {
	dc *gg.Context
}

// NewCanvas оборачивает готовый gg.Context
func NewCanvas(dc *gg.Context) *Canvas {
	return &Canvas{dc: dc}
}

func (c *Canvas) Save() {
	c.dc.Push()
}

func (c *Canvas) Restore() {
	c.dc.Pop()
}

// SetFillStyle разбирает CSS цвет; при ошибке заливка не меняется
func (c *Canvas) SetFillStyle(style string) error {
	col, err := entity.ParseFillStyle(style)
	if err != nil {
		return err
	}
	c.dc.SetColor(col)
	return nil
}

// FillRect заливает прямоугольник; отрицательные размеры допустимы
func (c *Canvas) FillRect(x, y, w, h float64) {
	c.dc.DrawRectangle(x, y, w, h)
	c.dc.Fill()
}

var _ port.Canvas = (*Canvas)(nil)
