// Package vision ищет на срезах кандидатов в области интереса средствами OpenCV.
// Без тега сборки gocv детектор только сообщает, что выключен.
package vision

import "errors"

// ErrDisabled детектор собран без OpenCV
var ErrDisabled = errors.New("gocv build tag is not enabled")
