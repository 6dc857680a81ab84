package port

import (
	"context"

	"scan-viewer/internal/domain/entity"
)

// VolumeFetcher загружает объём скана целиком
type VolumeFetcher interface {
	// FetchVolume возвращает сырые байты объёма: 16-битные отсчёты, срез за срезом
	FetchVolume(ctx context.Context, scanID string) ([]byte, error)
}

// ScanRepository хранилище сканов на стороне сервера
type ScanRepository interface {
	// List возвращает метаданные всех доступных сканов
	List(ctx context.Context) ([]entity.ScanMetadata, error)

	// Metadata возвращает метаданные скана или ErrNotFound
	Metadata(ctx context.Context, uid string) (*entity.ScanMetadata, error)

	// Volume возвращает сырые байты объёма
	Volume(ctx context.Context, uid string) ([]byte, error)

	// Compress сохраняет сжатую копию объёма
	Compress(ctx context.Context, uid string) error
}
