package render

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"scan-viewer/internal/async"
	"scan-viewer/internal/domain/entity"
	"scan-viewer/internal/domain/port"
)

func testImages(meta entity.ScanMetadata) map[string]*entity.ImageDescriptor {
	images := make(map[string]*entity.ImageDescriptor)
	for i := 0; i < meta.Slices; i++ {
		id := entity.ImageID{Scheme: entity.DefaultScheme, ScanID: meta.UID, Slice: i}
		pixels := make([]int16, meta.SliceSize())
		images[id.String()] = entity.NewImageDescriptor(id, meta, pixels, RenderGrayscale)
	}
	return images
}

func newTestViewport(t *testing.T) (*Viewport, *entity.Stack, map[string]*entity.ImageDescriptor) {
	t.Helper()
	meta := entity.ScanMetadata{UID: "abc123", Width: 4, Height: 4, Slices: 3}
	images := testImages(meta)

	reg := NewRegistry()
	reg.RegisterImageLoader(entity.DefaultScheme, func(ctx context.Context, imageID string) *async.Future[*entity.ImageDescriptor] {
		return async.Resolved(images[imageID])
	})

	vp := NewViewport(64, 64, reg)
	require.NoError(t, vp.Enable())
	return vp, entity.NewStack(meta), images
}

func TestRegistry_UnknownScheme(t *testing.T) {
	_, err := NewRegistry().LoadImage(context.Background(), "other://x/0").Await(context.Background())
	require.ErrorIs(t, err, ErrNoLoader)

	_, err = NewRegistry().LoadImage(context.Background(), "no-scheme").Await(context.Background())
	require.ErrorIs(t, err, entity.ErrMalformedImageID)
}

func TestViewport_UpdateFiresRenderEvent(t *testing.T) {
	vp, stack, images := newTestViewport(t)

	var events []port.RenderEvent
	vp.OnImageRendered(func(ev port.RenderEvent) { events = append(events, ev) })

	require.ErrorIs(t, vp.Update(), ErrNoImage)

	vp.AddLayer(images[stack.Current()])
	require.NoError(t, vp.Update())
	require.Equal(t, []port.RenderEvent{{ImageID: "aidoc://abc123/0", SliceIndex: 0}}, events)
}

func TestViewport_NotEnabled(t *testing.T) {
	vp := NewViewport(8, 8, NewRegistry())
	require.ErrorIs(t, vp.Update(), ErrNotEnabled)
}

func TestViewport_ScrollLoadsThroughRegistry(t *testing.T) {
	vp, stack, images := newTestViewport(t)
	vp.AddLayer(images[stack.Current()])
	vp.SetStack(stack)
	ctx := context.Background()

	require.ErrorIs(t, vp.Scroll(ctx, 1), ErrToolInactive)

	vp.ActivateTool(port.ToolStackScroll, 0)
	var last port.RenderEvent
	vp.OnImageRendered(func(ev port.RenderEvent) { last = ev })

	require.NoError(t, vp.Scroll(ctx, 1))
	require.Equal(t, 1, stack.CurrentImageIDIndex)
	require.Equal(t, 1, last.SliceIndex)

	// за последний срез не уходим
	require.NoError(t, vp.Scroll(ctx, 10))
	require.Equal(t, 2, stack.CurrentImageIDIndex)
}

func TestViewport_PanZoomNeedActiveTool(t *testing.T) {
	vp, stack, images := newTestViewport(t)
	vp.AddLayer(images[stack.Current()])

	require.ErrorIs(t, vp.Pan(port.MouseMiddle, 5, 5), ErrToolInactive)

	vp.ActivateTool(port.ToolPan, port.MouseMiddle)
	vp.ActivateTool(port.ToolZoom, port.MouseRight)
	require.NoError(t, vp.Pan(port.MouseMiddle, 5, 5))
	require.ErrorIs(t, vp.Pan(port.MouseLeft, 5, 5), ErrToolInactive)
	require.NoError(t, vp.Zoom(port.MouseRight, 2))
	require.Error(t, vp.Zoom(port.MouseRight, 0))
}

func TestCanvas_FillRectRestoresState(t *testing.T) {
	vp, _, _ := newTestViewport(t)
	cv := vp.Canvas()

	cv.Save()
	require.NoError(t, cv.SetFillStyle("rgba(255, 0, 0, 0.5)"))
	require.ErrorIs(t, cv.SetFillStyle("crimson"), entity.ErrBadColor)
	// отрицательная высота, как при перетаскивании вверх
	cv.FillRect(10, 30, 20, -20)
	cv.Restore()

	r, g, b, _ := vp.Image().At(20, 20).RGBA()
	require.InDelta(t, 128, int(r>>8), 2)
	require.Zero(t, g)
	require.Zero(t, b)

	r, _, _, _ = vp.Image().At(40, 40).RGBA()
	require.Zero(t, r)

	var buf bytes.Buffer
	require.NoError(t, vp.EncodePNG(&buf))
	require.NotZero(t, buf.Len())
}

func TestTableAndColorInput(t *testing.T) {
	table := NewTable()
	table.Render([]entity.ROIGroup{
		{Color: "#ff0000", Label: "ROI", MinSlice: 1, MaxSlice: 4},
		{Color: "#00ff00", Label: "ROI", MinSlice: 2, MaxSlice: 2},
	})
	table.MarkSelected("#00ff00")

	var buf bytes.Buffer
	_, err := table.WriteTo(&buf)
	require.NoError(t, err)
	require.Contains(t, buf.String(), "ROI 1:4")
	require.Contains(t, buf.String(), "*  #00ff00")

	in, err := NewColorInput("#123456")
	require.NoError(t, err)
	require.Error(t, in.Set("red"))
	require.Equal(t, "#123456", in.Value())
}
