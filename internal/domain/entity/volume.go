package entity

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// ErrVolumeSize возвращается, когда буфер не совпадает с геометрией скана
var ErrVolumeSize = errors.New("volume size mismatch")

// DecodeVolume превращает байты объёма в 16-битные знаковые отсчёты (little-endian)
func DecodeVolume(meta ScanMetadata, raw []byte) ([]int16, error) {
	if len(raw)%2 != 0 {
		return nil, fmt.Errorf("%w: odd buffer length %d", ErrVolumeSize, len(raw))
	}
	if len(raw) != meta.VolumeBytes() {
		return nil, fmt.Errorf("%w: got %d bytes, want %d for %dx%dx%d",
			ErrVolumeSize, len(raw), meta.VolumeBytes(), meta.Width, meta.Height, meta.Slices)
	}

	samples := make([]int16, len(raw)/2)
	for i := range samples {
		samples[i] = int16(binary.LittleEndian.Uint16(raw[i*2:]))
	}
	return samples, nil
}

// SplitVolume делит объём на срезы по width*height отсчётов.
// Срезы смотрят в общий буфер и не пересекаются.
func SplitVolume(meta ScanMetadata, samples []int16) ([][]int16, error) {
	size := meta.SliceSize()
	if size*meta.Slices != len(samples) {
		return nil, fmt.Errorf("%w: %d samples for %d slices of %d", ErrVolumeSize, len(samples), meta.Slices, size)
	}

	slices := make([][]int16, meta.Slices)
	for i := range slices {
		start := i * size
		slices[i] = samples[start : start+size : start+size]
	}
	return slices, nil
}

// EncodeVolume обратное преобразование, нужно хранилищу и тестам
func EncodeVolume(samples []int16) []byte {
	raw := make([]byte, len(samples)*2)
	for i, v := range samples {
		binary.LittleEndian.PutUint16(raw[i*2:], uint16(v))
	}
	return raw
}
