package port

import (
	"context"

	"scan-viewer/internal/domain/entity"
)

// Tool инструмент взаимодействия с изображением
type Tool string

const (
	ToolPan         Tool = "pan"
	ToolZoom        Tool = "zoom"
	ToolStackScroll Tool = "stackScroll"
)

// Кнопки мыши для активации инструментов
const (
	MouseLeft   = 1
	MouseMiddle = 2
	MouseRight  = 4
)

// RenderEvent отправляется после каждой отрисовки изображения
type RenderEvent struct {
	ImageID    string
	SliceIndex int
}

// Canvas двумерный контекст рисования
type Canvas interface {
	// Save запоминает состояние рисования
	Save()
	// Restore возвращает последнее запомненное состояние
	Restore()
	// SetFillStyle задаёт заливку CSS строкой, как fillStyle канвы браузера
	SetFillStyle(style string) error
	FillRect(x, y, w, h float64)
}

// Viewport поверхность отображения, которую даёт библиотека рендеринга
type Viewport interface {
	Enable() error
	AddLayer(img *entity.ImageDescriptor)
	// Update перерисовывает изображение и рассылает RenderEvent
	Update() error
	SetStack(stack *entity.Stack)
	ActivateTool(tool Tool, mouseMask int)
	OnImageRendered(fn func(RenderEvent))
	Canvas() Canvas
}

// ROITable таблица групп областей
type ROITable interface {
	Render(groups []entity.ROIGroup)
	MarkSelected(id string)
}

// ColorPicker поле выбора цвета
type ColorPicker interface {
	Value() string
}

// ErrorReporter канал для ошибок, которые иначе потерялись бы в обработчиках
type ErrorReporter interface {
	Report(ctx context.Context, op string, err error)
}
