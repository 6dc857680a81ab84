//go:build !gocv

package vision

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStubDetector_Disabled(t *testing.T) {
	_, err := NewGoCVDetector().Detect(context.Background(), nil)
	require.ErrorIs(t, err, ErrDisabled)
}
