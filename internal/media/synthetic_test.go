package media_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/vk/framegridgo/internal/media"
)

func TestSyntheticReadiness(t *testing.T) {
	t.Run("ready immediately with zero latency", func(t *testing.T) {
		clip := media.NewSynthetic("synthetic://a", 10, 0)
		assert.True(t, clip.Ready())
	})

	t.Run("not ready until latency elapses", func(t *testing.T) {
		clip := media.NewSynthetic("synthetic://b", 10, 0.05)
		assert.False(t, clip.Ready())

		assert.Eventually(t, clip.Ready, time.Second, 5*time.Millisecond)
	})
}

func TestSyntheticAccessors(t *testing.T) {
	clip := media.NewSynthetic("synthetic://c", 7.5, 0)
	assert.Equal(t, "synthetic://c", clip.URI())
	assert.Equal(t, 7.5, clip.Duration())
}
