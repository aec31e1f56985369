//go:build !hugot

package inference

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/spacesedan/thaisenti/config"
)

func TestNewHugotWithoutBuildTag(t *testing.T) {
	_, err := New(context.Background(), config.Settings{Backend: config.BACKEND_HUGOT, ModelName: "m"})
	assert.ErrorIs(t, err, ErrBackendUnavailable)
}
