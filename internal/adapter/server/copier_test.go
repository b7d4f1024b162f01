//go:build unit

package server

import (
	"context"
	"testing"

	"onbox-config-copy/internal/types"

	"github.com/stretchr/testify/assert"
)

func TestCopier_Copy(t *testing.T) {
	destination := types.Destination{Address: "10.0.0.50", Kind: types.KindServer}
	copier := NewCopier(destination)

	assert.Equal(t, destination, copier.Destination())

	err := copier.Copy(context.Background())
	assert.ErrorIs(t, err, types.ErrNotSupported)
	assert.Contains(t, err.Error(), "server:10.0.0.50")
}
