//go:build unit

package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInfo_String(t *testing.T) {
	t.Run("Clean", func(t *testing.T) {
		i := Info{Commit: "0123456789abcdef0123", Branch: "main", Tag: "v1.0.0"}
		assert.Equal(t, "v1.0.0 (0123456789ab)", i.String())
	})

	t.Run("Dirty", func(t *testing.T) {
		i := Info{Commit: "abc", Tag: "none", Dirty: true}
		assert.Equal(t, "none (abc, dirty)", i.String())
	})
}

func TestGetGitInfo(t *testing.T) {
	info := GetGitInfo()
	assert.NotEmpty(t, info.Commit)
	assert.NotEmpty(t, info.Tag)
}
