package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/dustin/go-humanize"
	"golang.org/x/sync/singleflight"

	"scan-viewer/internal/async"
	"scan-viewer/internal/domain/entity"
	"scan-viewer/internal/domain/port"
)

var (
	// ErrUnknownScan скан не зарегистрирован в провайдере
	ErrUnknownScan = errors.New("unknown scan")
	// ErrSliceOutOfRange номер среза за пределами скана
	ErrSliceOutOfRange = errors.New("slice out of range")
)

// SliceProvider отдаёт дескрипторы срезов библиотеке отображения.
// Первый запрос к скану загружает весь объём, дальше срезы берутся из кэша.
type SliceProvider struct {
	fetcher port.VolumeFetcher
	render  entity.RenderFunc

	mu     sync.RWMutex
	scans  map[string]entity.ScanMetadata
	images map[string]*entity.ImageDescriptor

	// одна загрузка на скан, параллельные запросы ждут её
	flight singleflight.Group
}

// SliceProviderOption настраивает SliceProvider
type SliceProviderOption func(*SliceProvider)

// WithRenderer задаёт функцию отрисовки, которая попадёт в каждый дескриптор
func WithRenderer(fn entity.RenderFunc) SliceProviderOption {
	return func(p *SliceProvider) {
		p.render = fn
	}
}

// NewSliceProvider создаёт провайдер поверх загрузчика объёмов
func NewSliceProvider(fetcher port.VolumeFetcher, opts ...SliceProviderOption) *SliceProvider {
	p := &SliceProvider{
		fetcher: fetcher,
		scans:   make(map[string]entity.ScanMetadata),
		images:  make(map[string]*entity.ImageDescriptor),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// AddScan сообщает провайдеру геометрию скана
func (p *SliceProvider) AddScan(meta entity.ScanMetadata) {
	p.mu.Lock()
	p.scans[meta.UID] = meta
	p.mu.Unlock()
}

// Resolve возвращает дескриптор среза по идентификатору scheme://scanId/sliceIndex.
// Закэшированный дескриптор возвращается сразу, без сети.
func (p *SliceProvider) Resolve(ctx context.Context, imageID string) *async.Future[*entity.ImageDescriptor] {
	id, err := entity.ParseImageID(imageID)
	if err != nil {
		return async.Rejected[*entity.ImageDescriptor](err)
	}

	key := id.String()
	if d, ok := p.cached(key); ok {
		return async.Resolved(d)
	}

	p.mu.RLock()
	meta, ok := p.scans[id.ScanID]
	p.mu.RUnlock()
	if !ok {
		return async.Rejected[*entity.ImageDescriptor](fmt.Errorf("%w: %s", ErrUnknownScan, id.ScanID))
	}
	if id.Slice >= meta.Slices {
		return async.Rejected[*entity.ImageDescriptor](
			fmt.Errorf("%w: slice %d of %d in %s", ErrSliceOutOfRange, id.Slice, meta.Slices, id.ScanID))
	}

	return async.Go(func() (*entity.ImageDescriptor, error) {
		// кэш мог заполниться, пока горутина стартовала
		if d, ok := p.cached(key); ok {
			return d, nil
		}
		if err := p.load(ctx, id.Scheme, meta); err != nil {
			return nil, err
		}
		d, ok := p.cached(key)
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrSliceOutOfRange, key)
		}
		return d, nil
	})
}

// Cached возвращает количество дескрипторов в кэше
func (p *SliceProvider) Cached() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.images)
}

func (p *SliceProvider) cached(key string) (*entity.ImageDescriptor, bool) {
	p.mu.RLock()
	d, ok := p.images[key]
	p.mu.RUnlock()
	return d, ok
}

// load скачивает объём, режет на срезы и кладёт все дескрипторы в кэш
// Общая загрузка не отменяется вместе с контекстом одного из ждущих,
// каждый вызывающий перестаёт ждать только по своему контексту.
func (p *SliceProvider) load(ctx context.Context, scheme string, meta entity.ScanMetadata) error {
	fetchCtx := context.WithoutCancel(ctx)
	ch := p.flight.DoChan(scheme+"://"+meta.UID, func() (interface{}, error) {
		// предыдущая загрузка могла завершиться между проверкой кэша и Do
		if _, ok := p.cached(entity.ImageID{Scheme: scheme, ScanID: meta.UID}.String()); ok {
			return nil, nil
		}

		raw, err := p.fetcher.FetchVolume(fetchCtx, meta.UID)
		if err != nil {
			return nil, fmt.Errorf("fetch scan %s: %w", meta.UID, err)
		}

		samples, err := entity.DecodeVolume(meta, raw)
		if err != nil {
			return nil, fmt.Errorf("decode scan %s: %w", meta.UID, err)
		}
		views, err := entity.SplitVolume(meta, samples)
		if err != nil {
			return nil, fmt.Errorf("split scan %s: %w", meta.UID, err)
		}

		p.mu.Lock()
		for i, pixels := range views {
			id := entity.ImageID{Scheme: scheme, ScanID: meta.UID, Slice: i}
			p.images[id.String()] = entity.NewImageDescriptor(id, meta, pixels, p.render)
		}
		p.mu.Unlock()

		log.Printf("Loaded scan %s: %d slices, %s", meta.UID, meta.Slices, humanize.Bytes(uint64(len(raw))))
		return nil, nil
	})

	select {
	case res := <-ch:
		return res.Err
	case <-ctx.Done():
		return ctx.Err()
	}
}
