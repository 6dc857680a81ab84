package entity

import (
	"errors"
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// ErrBadColor возвращается для цвета не в формате #rrggbb
var ErrBadColor = errors.New("bad hex color")

// ROIAlpha прозрачность заливки областей на канве
const ROIAlpha = 0.5

// ParseHexColor разбирает цвет вида #rrggbb
func ParseHexColor(hex string) (r, g, b uint8, err error) {
	if len(hex) != 7 || hex[0] != '#' {
		return 0, 0, 0, fmt.Errorf("%w: %q", ErrBadColor, hex)
	}

	var rgb [3]uint8
	for i := range rgb {
		v, err := strconv.ParseUint(hex[1+i*2:3+i*2], 16, 8)
		if err != nil {
			return 0, 0, 0, fmt.Errorf("%w: %q", ErrBadColor, hex)
		}
		rgb[i] = uint8(v)
	}

	return rgb[0], rgb[1], rgb[2], nil
}

// HexToRGB переводит #rrggbb в CSS строку. Нулевая альфа даёт rgb(...).
func HexToRGB(hex string, alpha float64) (string, error) {
	r, g, b, err := ParseHexColor(hex)
	if err != nil {
		return "", err
	}

	if alpha != 0 {
		return fmt.Sprintf("rgba(%d, %d, %d, %s)", r, g, b, strconv.FormatFloat(alpha, 'f', -1, 64)), nil
	}
	return fmt.Sprintf("rgb(%d, %d, %d)", r, g, b), nil
}

// ParseFillStyle разбирает стиль заливки: rgba(r, g, b, a), rgb(r, g, b) или #rrggbb
func ParseFillStyle(style string) (color.NRGBA, error) {
	var r, g, b uint8
	a := 1.0

	var err error
	switch {
	case strings.HasPrefix(style, "rgba("):
		_, err = fmt.Sscanf(style, "rgba(%d, %d, %d, %g)", &r, &g, &b, &a)
	case strings.HasPrefix(style, "rgb("):
		_, err = fmt.Sscanf(style, "rgb(%d, %d, %d)", &r, &g, &b)
	default:
		r, g, b, err = ParseHexColor(style)
	}
	if err != nil || a < 0 || a > 1 {
		return color.NRGBA{}, fmt.Errorf("%w: fill style %q", ErrBadColor, style)
	}

	return color.NRGBA{R: r, G: g, B: b, A: uint8(a*255 + 0.5)}, nil
}
