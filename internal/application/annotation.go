package app

import (
	"context"
	"errors"
	"fmt"

	"scan-viewer/internal/domain/entity"
	"scan-viewer/internal/domain/port"
)

// AnnotationController связывает события экрана с сервером областей
// и перерисовывает области поверх изображения.
type AnnotationController struct {
	session  *Session
	slices   *SliceProvider
	viewport port.Viewport
	rois     port.ROIClient
	table    port.ROITable
	picker   port.ColorPicker
	reporter port.ErrorReporter
	bound    bool
}

// NewAnnotationController создаёт контроллер для сессии
func NewAnnotationController(
	session *Session,
	slices *SliceProvider,
	viewport port.Viewport,
	rois port.ROIClient,
	table port.ROITable,
	picker port.ColorPicker,
) *AnnotationController {
	return &AnnotationController{
		session:  session,
		slices:   slices,
		viewport: viewport,
		rois:     rois,
		table:    table,
		picker:   picker,
	}
}

// SetErrorReporter включает отправку ошибок в отдельный канал.
// Без него ошибки только возвращаются, а в обработчиках событий теряются.
func (c *AnnotationController) SetErrorReporter(r port.ErrorReporter) {
	c.reporter = r
}

// Session возвращает сессию контроллера
func (c *AnnotationController) Session() *Session {
	return c.session
}

// Bind подписывает контроллер на событие отрисовки
func (c *AnnotationController) Bind(ctx context.Context) {
	c.bound = true
	c.viewport.OnImageRendered(func(ev port.RenderEvent) {
		_ = c.OnImageRendered(ctx, ev)
	})
}

// Load показывает текущий срез, включает инструменты и рисует области
func (c *AnnotationController) Load(ctx context.Context) error {
	if err := c.viewport.Enable(); err != nil {
		return c.fail(ctx, "enable viewport", err)
	}

	c.slices.AddScan(c.session.Scan)
	img, err := c.slices.Resolve(ctx, c.session.Stack.Current()).Await(ctx)
	if err != nil {
		return c.fail(ctx, "load image", err)
	}

	c.viewport.AddLayer(img)
	if err := c.viewport.Update(); err != nil {
		return c.fail(ctx, "update image", err)
	}

	c.viewport.SetStack(c.session.Stack)
	c.viewport.ActivateTool(port.ToolStackScroll, 0)
	c.viewport.ActivateTool(port.ToolPan, port.MouseMiddle)
	c.viewport.ActivateTool(port.ToolZoom, port.MouseRight)

	// после Bind области уже нарисованы обработчиком события отрисовки
	var drawErr error
	if !c.bound {
		drawErr = c.drawSliceROIs(ctx)
	}
	return errors.Join(drawErr, c.RefreshTable(ctx))
}

// OnImageRendered перечитывает области текущего среза и рисует их заново
func (c *AnnotationController) OnImageRendered(ctx context.Context, _ port.RenderEvent) error {
	return c.drawSliceROIs(ctx)
}

// OnDragRelease сохраняет прямоугольник, нарисованный мышью
func (c *AnnotationController) OnDragRelease(ctx context.Context, ev entity.DragEvent) (*entity.ROI, error) {
	rect := ev.Rect()
	req := entity.AddROIRequest{
		ScanID:     c.session.Scan.UID,
		X:          rect.X,
		Y:          rect.Y,
		W:          rect.W,
		H:          rect.H,
		Color:      c.picker.Value(),
		ImageIndex: c.session.SliceIndex(),
	}

	roi, err := c.rois.AddROI(ctx, req)
	if err != nil {
		return nil, c.fail(ctx, "add roi", err)
	}

	// рисуем то, что вернул сервер
	if err := c.drawROI(roi.Rect(), roi.Color); err != nil {
		return roi, c.fail(ctx, "draw roi", err)
	}

	return roi, c.RefreshTable(ctx)
}

// SelectRow отмечает строку таблицы и запоминает группу для удаления
func (c *AnnotationController) SelectRow(id string) {
	c.session.Select(id)
	c.table.MarkSelected(id)
}

// Erase удаляет выбранную группу. Без выбора ничего не делает.
func (c *AnnotationController) Erase(ctx context.Context) error {
	id, ok := c.session.Selected()
	if !ok {
		return nil
	}

	if err := c.rois.DeleteROI(ctx, c.session.Scan.UID, id); err != nil {
		return c.fail(ctx, "delete roi", err)
	}
	c.session.ClearSelection()

	if err := c.viewport.Update(); err != nil {
		return c.fail(ctx, "update image", err)
	}
	// без подписки на отрисовку оставшиеся области рисуем сами
	var drawErr error
	if !c.bound {
		drawErr = c.drawSliceROIs(ctx)
	}
	return errors.Join(drawErr, c.RefreshTable(ctx))
}

// Save просит сервер зафиксировать области скана
func (c *AnnotationController) Save(ctx context.Context) error {
	if err := c.rois.Save(ctx, c.session.Scan.UID); err != nil {
		return c.fail(ctx, "save rois", err)
	}
	return nil
}

// RefreshTable перечитывает группы областей и перерисовывает таблицу
func (c *AnnotationController) RefreshTable(ctx context.Context) error {
	groups, err := c.rois.ListGroups(ctx, c.session.Scan.UID)
	if err != nil {
		return c.fail(ctx, "list roi groups", err)
	}
	c.table.Render(groups)
	return nil
}

func (c *AnnotationController) drawSliceROIs(ctx context.Context) error {
	rois, err := c.rois.ListROIs(ctx, c.session.Scan.UID, c.session.SliceIndex())
	if err != nil {
		return c.fail(ctx, "list rois", err)
	}

	var errs []error
	for _, roi := range rois {
		if err := c.drawROI(roi.Rect(), roi.Color); err != nil {
			errs = append(errs, c.fail(ctx, "draw roi", err))
		}
	}
	return errors.Join(errs...)
}

// drawROI заливает прямоугольник полупрозрачным цветом, не трогая остальное состояние канвы
func (c *AnnotationController) drawROI(rect entity.Rect, hex string) error {
	style, err := entity.HexToRGB(hex, entity.ROIAlpha)
	if err != nil {
		return err
	}

	canvas := c.viewport.Canvas()
	canvas.Save()
	defer canvas.Restore()

	if err := canvas.SetFillStyle(style); err != nil {
		return err
	}
	canvas.FillRect(rect.X, rect.Y, rect.W, rect.H)
	return nil
}

func (c *AnnotationController) fail(ctx context.Context, op string, err error) error {
	err = fmt.Errorf("%s: %w", op, err)
	if c.reporter != nil {
		c.reporter.Report(ctx, op, err)
	}
	return err
}
