package storage

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"scan-viewer/internal/domain/entity"
	"scan-viewer/internal/domain/port"
)

// FileROIJournal хранит области каждого скана в отдельном файле, одна JSON-запись на строку
type FileROIJournal struct {
	dir string
}

// NewFileROIJournal создаёт журнал в каталоге dir
func NewFileROIJournal(dir string) *FileROIJournal {
	return &FileROIJournal{dir: dir}
}

// LoadAll читает все файлы каталога. Имя файла это идентификатор скана.
func (j *FileROIJournal) LoadAll(ctx context.Context) (map[string][]entity.ROI, error) {
	entries, err := os.ReadDir(j.dir)
	if os.IsNotExist(err) {
		return map[string][]entity.ROI{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read roi dir: %w", err)
	}

	out := make(map[string][]entity.ROI, len(entries))
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) == ".tmp" {
			continue
		}
		rois, err := j.read(filepath.Join(j.dir, e.Name()))
		if err != nil {
			return nil, err
		}
		out[e.Name()] = rois
	}
	return out, nil
}

func (j *FileROIJournal) read(path string) ([]entity.ROI, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var rois []entity.ROI
	sc := bufio.NewScanner(f)
	for line := 1; sc.Scan(); line++ {
		if len(sc.Bytes()) == 0 {
			continue
		}
		var roi entity.ROI
		if err := json.Unmarshal(sc.Bytes(), &roi); err != nil {
			return nil, fmt.Errorf("%s:%d: %w", path, line, err)
		}
		rois = append(rois, roi)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return rois, nil
}

// Write атомарно перезаписывает файл скана
func (j *FileROIJournal) Write(ctx context.Context, scanID string, rois []entity.ROI) error {
	if scanID == "" || filepath.Base(scanID) != scanID {
		return fmt.Errorf("bad scan id %q", scanID)
	}
	if err := os.MkdirAll(j.dir, 0755); err != nil {
		return fmt.Errorf("create roi dir: %w", err)
	}

	path := filepath.Join(j.dir, scanID)
	tmp, err := os.CreateTemp(j.dir, scanID+".*.tmp")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	w := bufio.NewWriter(tmp)
	enc := json.NewEncoder(w)
	for _, roi := range rois {
		if err := enc.Encode(roi); err != nil {
			tmp.Close()
			return err
		}
	}
	if err := w.Flush(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}

	return os.Rename(tmp.Name(), path)
}

var _ port.ROIJournal = (*FileROIJournal)(nil)
