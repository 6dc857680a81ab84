package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/klauspost/compress/gzip"
	"gopkg.in/yaml.v3"

	"scan-viewer/internal/domain/entity"
	"scan-viewer/internal/domain/port"
)

const (
	metadataExt   = ".yaml"
	volumeExt     = ".dat"
	compressedExt = ".dat.gz"
)

// FileScanStore читает сканы из каталога: <uid>.yaml с метаданными
// и объём в <uid>.dat.gz или <uid>.dat.
type FileScanStore struct {
	dir string
}

// NewFileScanStore создаёт хранилище сканов в каталоге dir
func NewFileScanStore(dir string) *FileScanStore {
	return &FileScanStore{dir: dir}
}

// List возвращает метаданные всех сканов; нечитаемые пропускаются
func (s *FileScanStore) List(ctx context.Context) ([]entity.ScanMetadata, error) {
	paths, err := filepath.Glob(filepath.Join(s.dir, "*"+metadataExt))
	if err != nil {
		return nil, err
	}
	sort.Strings(paths)

	scans := make([]entity.ScanMetadata, 0, len(paths))
	for _, p := range paths {
		uid := strings.TrimSuffix(filepath.Base(p), metadataExt)
		meta, err := s.Metadata(ctx, uid)
		if err != nil {
			log.Printf("Skipping scan %s: %v", uid, err)
			continue
		}
		scans = append(scans, *meta)
	}
	return scans, nil
}

// Metadata читает YAML с описанием скана
func (s *FileScanStore) Metadata(ctx context.Context, uid string) (*entity.ScanMetadata, error) {
	path, err := s.path(uid, metadataExt)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("scan %s: %w", uid, port.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("read metadata of %s: %w", uid, err)
	}

	var meta entity.ScanMetadata
	if err := yaml.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("parse metadata of %s: %w", uid, err)
	}
	if meta.UID == "" {
		meta.UID = uid
	}
	if meta.Width <= 0 || meta.Height <= 0 || meta.Slices <= 0 {
		return nil, fmt.Errorf("scan %s has bad geometry %dx%dx%d", uid, meta.Width, meta.Height, meta.Slices)
	}
	return &meta, nil
}

// Volume возвращает сырые байты объёма. Сжатая копия предпочтительнее.
func (s *FileScanStore) Volume(ctx context.Context, uid string) ([]byte, error) {
	meta, err := s.Metadata(ctx, uid)
	if err != nil {
		return nil, err
	}

	data, err := s.readCompressed(uid)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("Error reading compressed volume of %s: %v", uid, err)
		}
		data, err = s.readRaw(uid)
		if err != nil {
			return nil, err
		}
	}

	if len(data) != meta.VolumeBytes() {
		return nil, fmt.Errorf("%w: scan %s has %d bytes, want %d", entity.ErrVolumeSize, uid, len(data), meta.VolumeBytes())
	}
	return data, nil
}

// Compress пишет <uid>.dat.gz рядом с сырым объёмом
func (s *FileScanStore) Compress(ctx context.Context, uid string) error {
	raw, err := s.readRaw(uid)
	if err != nil {
		return err
	}

	dst, err := s.path(uid, compressedExt)
	if err != nil {
		return err
	}
	tmp, err := os.CreateTemp(s.dir, uid+".*.tmp")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	zw, err := gzip.NewWriterLevel(tmp, gzip.BestCompression)
	if err != nil {
		tmp.Close()
		return err
	}
	if _, err := zw.Write(raw); err != nil {
		tmp.Close()
		return err
	}
	if err := zw.Close(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}

	if info, err := os.Stat(tmp.Name()); err == nil {
		log.Printf("Compressed scan %s: %s -> %s", uid, humanize.Bytes(uint64(len(raw))), humanize.Bytes(uint64(info.Size())))
	}
	return os.Rename(tmp.Name(), dst)
}

func (s *FileScanStore) readCompressed(uid string) ([]byte, error) {
	path, err := s.path(uid, compressedExt)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	zr, err := gzip.NewReader(f)
	if err != nil {
		return nil, err
	}
	defer zr.Close()

	return io.ReadAll(zr)
}

func (s *FileScanStore) readRaw(uid string) ([]byte, error) {
	path, err := s.path(uid, volumeExt)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("volume of %s: %w", uid, port.ErrNotFound)
	}
	return data, err
}

// path не даёт выйти за пределы каталога через uid
func (s *FileScanStore) path(uid, ext string) (string, error) {
	if uid == "" || filepath.Base(uid) != uid || strings.HasPrefix(uid, ".") {
		return "", fmt.Errorf("bad scan id %q: %w", uid, port.ErrNotFound)
	}
	return filepath.Join(s.dir, uid+ext), nil
}

var _ port.ScanRepository = (*FileScanStore)(nil)
