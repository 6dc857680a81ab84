// Package render заменяет браузерную библиотеку отображения. Рисует через gg.
package render

import (
	"context"
	"errors"
	"fmt"
	"image"
	"strings"
	"sync"

	"scan-viewer/internal/async"
	"scan-viewer/internal/domain/entity"
)

// ErrNoLoader для схемы идентификатора не зарегистрирован загрузчик
var ErrNoLoader = errors.New("no image loader registered")

// ImageLoader загрузчик изображений, подключаемый под схему
type ImageLoader func(ctx context.Context, imageID string) *async.Future[*entity.ImageDescriptor]

// Registry реестр загрузчиков по схеме идентификатора
type Registry struct {
	mu      sync.RWMutex
	loaders map[string]ImageLoader
}

func NewRegistry() *Registry {
	return &Registry{loaders: make(map[string]ImageLoader)}
}

// RegisterImageLoader подключает загрузчик для схемы scheme
func (r *Registry) RegisterImageLoader(scheme string, loader ImageLoader) {
	r.mu.Lock()
	r.loaders[scheme] = loader
	r.mu.Unlock()
}

// LoadImage передаёт идентификатор загрузчику его схемы
func (r *Registry) LoadImage(ctx context.Context, imageID string) *async.Future[*entity.ImageDescriptor] {
	scheme, _, ok := strings.Cut(imageID, "://")
	if !ok {
		return async.Rejected[*entity.ImageDescriptor](fmt.Errorf("%w: %q", entity.ErrMalformedImageID, imageID))
	}

	r.mu.RLock()
	loader, ok := r.loaders[scheme]
	r.mu.RUnlock()
	if !ok {
		return async.Rejected[*entity.ImageDescriptor](fmt.Errorf("%w: %s", ErrNoLoader, scheme))
	}
	return loader(ctx, imageID)
}

// RenderGrayscale отрисовывает срез в оттенках серого по окну дескриптора
func RenderGrayscale(d *entity.ImageDescriptor) image.Image {
	return d.GrayImage()
}
