package render

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"

	"github.com/fogleman/gg"

	"scan-viewer/internal/domain/entity"
	"scan-viewer/internal/domain/port"
)

var (
	// ErrNotEnabled поверхность не включена через Enable
	ErrNotEnabled = errors.New("viewport is not enabled")
	// ErrNoImage на поверхности нет ни одного слоя
	ErrNoImage = errors.New("viewport has no image")
	// ErrToolInactive инструмент не активирован для этой кнопки
	ErrToolInactive = errors.New("tool is not active")
)

// Viewport поверхность отображения в памяти.
// Как и страница браузера, рассчитана на один поток событий.
type Viewport struct {
	registry *Registry
	dc       *gg.Context

	enabled   bool
	layers    []*entity.ImageDescriptor
	stack     *entity.Stack
	tools     map[port.Tool]int
	scale     float64
	offX      float64
	offY      float64
	listeners []func(port.RenderEvent)
}

// NewViewport создаёт поверхность width x height
func NewViewport(width, height int, registry *Registry) *Viewport {
	return &Viewport{
		registry: registry,
		dc:       gg.NewContext(width, height),
		tools:    make(map[port.Tool]int),
		scale:    1,
	}
}

// Enable подготавливает поверхность: чистая канва, без слоёв и трансформаций
func (v *Viewport) Enable() error {
	v.enabled = true
	v.layers = nil
	v.scale, v.offX, v.offY = 1, 0, 0
	v.clear()
	return nil
}

// AddLayer кладёт изображение поверх остальных
func (v *Viewport) AddLayer(img *entity.ImageDescriptor) {
	v.layers = append(v.layers, img)
}

// Update отрисовывает верхний слой и рассылает событие отрисовки
func (v *Viewport) Update() error {
	if !v.enabled {
		return ErrNotEnabled
	}
	if len(v.layers) == 0 {
		return ErrNoImage
	}

	top := v.layers[len(v.layers)-1]
	render := top.Render
	if render == nil {
		render = RenderGrayscale
	}
	img := render(top)

	v.clear()
	b := img.Bounds()
	fit := min(float64(v.dc.Width())/float64(b.Dx()), float64(v.dc.Height())/float64(b.Dy())) * v.scale
	x := (float64(v.dc.Width())-float64(b.Dx())*fit)/2 + v.offX
	y := (float64(v.dc.Height())-float64(b.Dy())*fit)/2 + v.offY

	v.dc.Push()
	v.dc.Translate(x, y)
	v.dc.Scale(fit, fit)
	v.dc.DrawImage(img, 0, 0)
	v.dc.Pop()

	ev := port.RenderEvent{ImageID: top.ImageID, SliceIndex: top.SliceIndex}
	for _, fn := range v.listeners {
		fn(ev)
	}
	return nil
}

// SetStack привязывает стопку срезов для прокрутки
func (v *Viewport) SetStack(stack *entity.Stack) {
	v.stack = stack
}

// ActivateTool включает инструмент для кнопок mouseMask (0 для колеса)
func (v *Viewport) ActivateTool(tool port.Tool, mouseMask int) {
	v.tools[tool] = mouseMask
}

// OnImageRendered подписывает fn на событие отрисовки
func (v *Viewport) OnImageRendered(fn func(port.RenderEvent)) {
	v.listeners = append(v.listeners, fn)
}

// Canvas возвращает двумерный контекст поверхности
func (v *Viewport) Canvas() port.Canvas {
	return &Canvas{dc: v.dc}
}

// Scroll листает стопку на delta срезов колесом мыши
func (v *Viewport) Scroll(ctx context.Context, delta int) error {
	if _, ok := v.tools[port.ToolStackScroll]; !ok {
		return fmt.Errorf("%w: %s", ErrToolInactive, port.ToolStackScroll)
	}
	if v.stack == nil || len(v.stack.ImageIDs) == 0 {
		return ErrNoImage
	}

	idx := v.stack.CurrentImageIDIndex + delta
	idx = max(0, min(idx, len(v.stack.ImageIDs)-1))
	if idx == v.stack.CurrentImageIDIndex {
		return nil
	}

	img, err := v.registry.LoadImage(ctx, v.stack.ImageIDs[idx]).Await(ctx)
	if err != nil {
		return err
	}

	v.stack.CurrentImageIDIndex = idx
	if len(v.layers) == 0 {
		v.layers = append(v.layers, img)
	} else {
		v.layers[len(v.layers)-1] = img
	}
	return v.Update()
}

// Pan сдвигает изображение при перетаскивании кнопкой button
func (v *Viewport) Pan(button int, dx, dy float64) error {
	if !v.toolOn(port.ToolPan, button) {
		return fmt.Errorf("%w: %s", ErrToolInactive, port.ToolPan)
	}
	v.offX += dx
	v.offY += dy
	return v.Update()
}

// Zoom меняет масштаб при перетаскивании кнопкой button
func (v *Viewport) Zoom(button int, factor float64) error {
	if !v.toolOn(port.ToolZoom, button) {
		return fmt.Errorf("%w: %s", ErrToolInactive, port.ToolZoom)
	}
	if factor <= 0 {
		return fmt.Errorf("bad zoom factor %v", factor)
	}
	v.scale *= factor
	return v.Update()
}

// Image возвращает текущее содержимое канвы
func (v *Viewport) Image() image.Image {
	return v.dc.Image()
}

// EncodePNG пишет канву в PNG
func (v *Viewport) EncodePNG(w io.Writer) error {
	return v.dc.EncodePNG(w)
}

func (v *Viewport) toolOn(tool port.Tool, button int) bool {
	mask, ok := v.tools[tool]
	return ok && mask&button != 0
}

func (v *Viewport) clear() {
	v.dc.SetColor(color.Black)
	v.dc.Clear()
}

var _ port.Viewport = (*Viewport)(nil)
