package entity

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// DefaultScheme схема, под которой зарегистрирован загрузчик срезов
const DefaultScheme = "aidoc"

// ErrMalformedImageID возвращается для идентификатора без скана или с кривым номером среза
var ErrMalformedImageID = errors.New("malformed image id")

// ImageID разобранный идентификатор вида scheme://scanId/sliceIndex
type ImageID struct {
	Scheme string
	ScanID string
	Slice  int
}

// ParseImageID разбирает идентификатор изображения. Номер среза по умолчанию 0.
func ParseImageID(raw string) (ImageID, error) {
	scheme, rest, ok := strings.Cut(raw, "://")
	if !ok || scheme == "" {
		return ImageID{}, fmt.Errorf("%w: %q has no scheme", ErrMalformedImageID, raw)
	}

	parts := strings.Split(rest, "/")
	if parts[0] == "" {
		return ImageID{}, fmt.Errorf("%w: %q has no scan id", ErrMalformedImageID, raw)
	}

	id := ImageID{Scheme: scheme, ScanID: parts[0]}
	if len(parts) > 1 && parts[1] != "" {
		slice, err := strconv.Atoi(parts[1])
		if err != nil || slice < 0 {
			return ImageID{}, fmt.Errorf("%w: %q has bad slice index", ErrMalformedImageID, raw)
		}
		id.Slice = slice
	}

	return id, nil
}

func (id ImageID) String() string {
	return fmt.Sprintf("%s://%s/%d", id.Scheme, id.ScanID, id.Slice)
}
