package app

import (
	"context"
	"errors"
	"image"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"scan-viewer/internal/domain/entity"
)

type fakeFetcher struct {
	data  []byte
	err   error
	gate  chan struct{}
	calls atomic.Int32
}

func (f *fakeFetcher) FetchVolume(ctx context.Context, scanID string) ([]byte, error) {
	f.calls.Add(1)
	if f.gate != nil {
		<-f.gate
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return f.data, f.err
}

var testMeta = entity.ScanMetadata{UID: "abc123", Width: 4, Height: 4, Slices: 2}

func testVolume() []byte {
	samples := make([]int16, testMeta.SliceSize()*testMeta.Slices)
	for i := range samples {
		samples[i] = int16(i)
	}
	return entity.EncodeVolume(samples)
}

func TestSliceProvider_SingleFetch(t *testing.T) {
	ctx := context.Background()
	fetcher := &fakeFetcher{data: testVolume()}
	p := NewSliceProvider(fetcher)
	p.AddScan(testMeta)

	first, err := p.Resolve(ctx, "aidoc://abc123/0").Await(ctx)
	require.NoError(t, err)
	require.Equal(t, 4, first.Rows)
	require.Equal(t, 4, first.Columns)
	require.Equal(t, 32, first.SizeInBytes)
	require.Equal(t, entity.DefaultWindowCenter, first.WindowCenter)
	require.Len(t, first.PixelData(), 16)
	require.Equal(t, 2, p.Cached())

	second, err := p.Resolve(ctx, "aidoc://abc123/1").Await(ctx)
	require.NoError(t, err)
	require.Equal(t, int16(16), second.PixelData()[0])
	require.Equal(t, int32(1), fetcher.calls.Load())
}

func TestSliceProvider_CachedIsSameInstance(t *testing.T) {
	ctx := context.Background()
	p := NewSliceProvider(&fakeFetcher{data: testVolume()})
	p.AddScan(testMeta)

	a, err := p.Resolve(ctx, "aidoc://abc123/1").Await(ctx)
	require.NoError(t, err)

	f := p.Resolve(ctx, "aidoc://abc123/1")
	select {
	case <-f.Done():
	default:
		t.Fatal("cached slice is not resolved immediately")
	}
	b, err := f.Await(ctx)
	require.NoError(t, err)
	require.Same(t, a, b)
}

func TestSliceProvider_DefaultSlice(t *testing.T) {
	ctx := context.Background()
	p := NewSliceProvider(&fakeFetcher{data: testVolume()})
	p.AddScan(testMeta)

	d, err := p.Resolve(ctx, "aidoc://abc123").Await(ctx)
	require.NoError(t, err)
	require.Equal(t, 0, d.SliceIndex)
}

func TestSliceProvider_FetchErrorNotCached(t *testing.T) {
	ctx := context.Background()
	fetchErr := errors.New("Not Found")
	fetcher := &fakeFetcher{err: fetchErr}
	p := NewSliceProvider(fetcher)
	p.AddScan(testMeta)

	_, err := p.Resolve(ctx, "aidoc://abc123/0").Await(ctx)
	require.ErrorIs(t, err, fetchErr)
	require.Equal(t, 0, p.Cached())

	fetcher.err = nil
	fetcher.data = testVolume()
	_, err = p.Resolve(ctx, "aidoc://abc123/0").Await(ctx)
	require.NoError(t, err)
	require.Equal(t, int32(2), fetcher.calls.Load())
}

func TestSliceProvider_BadVolume(t *testing.T) {
	ctx := context.Background()
	p := NewSliceProvider(&fakeFetcher{data: []byte{1, 2, 3}})
	p.AddScan(testMeta)

	_, err := p.Resolve(ctx, "aidoc://abc123/0").Await(ctx)
	require.ErrorIs(t, err, entity.ErrVolumeSize)
	require.Equal(t, 0, p.Cached())
}

func TestSliceProvider_Rejections(t *testing.T) {
	ctx := context.Background()
	fetcher := &fakeFetcher{data: testVolume()}
	p := NewSliceProvider(fetcher)
	p.AddScan(testMeta)

	_, err := p.Resolve(ctx, "aidoc:///0").Await(ctx)
	require.ErrorIs(t, err, entity.ErrMalformedImageID)

	_, err = p.Resolve(ctx, "aidoc://abc123/two").Await(ctx)
	require.ErrorIs(t, err, entity.ErrMalformedImageID)

	_, err = p.Resolve(ctx, "aidoc://other/0").Await(ctx)
	require.ErrorIs(t, err, ErrUnknownScan)

	_, err = p.Resolve(ctx, "aidoc://abc123/5").Await(ctx)
	require.ErrorIs(t, err, ErrSliceOutOfRange)

	require.Equal(t, int32(0), fetcher.calls.Load())
}

func TestSliceProvider_CoalescesConcurrentLoads(t *testing.T) {
	ctx := context.Background()
	fetcher := &fakeFetcher{data: testVolume(), gate: make(chan struct{})}
	p := NewSliceProvider(fetcher)
	p.AddScan(testMeta)

	var wg sync.WaitGroup
	results := make([]*entity.ImageDescriptor, 4)
	errs := make([]error, 4)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = p.Resolve(ctx, "aidoc://abc123/"+[]string{"0", "1"}[i%2]).Await(ctx)
		}(i)
	}

	require.Eventually(t, func() bool { return fetcher.calls.Load() == 1 }, time.Second, time.Millisecond)
	close(fetcher.gate)
	wg.Wait()

	for _, err := range errs {
		require.NoError(t, err)
	}
	require.Equal(t, int32(1), fetcher.calls.Load())
	require.Same(t, results[0], results[2])
	require.Same(t, results[1], results[3])
}

func TestSliceProvider_CancelledWaiterDoesNotFailOthers(t *testing.T) {
	fetcher := &fakeFetcher{data: testVolume(), gate: make(chan struct{})}
	p := NewSliceProvider(fetcher)
	p.AddScan(testMeta)

	ctxA, cancelA := context.WithCancel(context.Background())
	first := p.Resolve(ctxA, "aidoc://abc123/0")
	require.Eventually(t, func() bool { return fetcher.calls.Load() == 1 }, time.Second, time.Millisecond)

	ctxB := context.Background()
	second := p.Resolve(ctxB, "aidoc://abc123/1")
	// второй запрос успевает присоединиться к идущей загрузке
	time.Sleep(20 * time.Millisecond)

	cancelA()
	_, err := first.Await(context.Background())
	require.ErrorIs(t, err, context.Canceled)

	close(fetcher.gate)
	d, err := second.Await(ctxB)
	require.NoError(t, err)
	require.Equal(t, 1, d.SliceIndex)
	require.Equal(t, int32(1), fetcher.calls.Load())
	require.Equal(t, 2, p.Cached())
}

func TestSliceProvider_Renderer(t *testing.T) {
	ctx := context.Background()
	var rendered atomic.Int32
	p := NewSliceProvider(&fakeFetcher{data: testVolume()}, WithRenderer(func(d *entity.ImageDescriptor) image.Image {
		rendered.Add(1)
		return d.GrayImage()
	}))
	p.AddScan(testMeta)

	d, err := p.Resolve(ctx, "aidoc://abc123/0").Await(ctx)
	require.NoError(t, err)
	require.NotNil(t, d.Render)

	img := d.Render(d)
	require.Equal(t, 4, img.Bounds().Dx())
	require.Equal(t, int32(1), rendered.Load())
}
