package slug

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestForTitle(t *testing.T) {
	s := ForTitle("Hello, World! A Go Story")
	assert.True(t, strings.HasPrefix(s, "hello-world-a-go-story-"))
	assert.Len(t, s, len("hello-world-a-go-story-")+8)

	t.Run("same title never collides", func(t *testing.T) {
		assert.NotEqual(t, ForTitle("Same Title"), ForTitle("Same Title"))
	})

	t.Run("title with no usable characters still slugs", func(t *testing.T) {
		s := ForTitle("!!! ???")
		assert.True(t, strings.HasPrefix(s, "post-"))
	})
}

func TestForName(t *testing.T) {
	assert.Equal(t, "web-development", ForName("Web Development"))
	assert.Equal(t, "web-development", ForName("  Web   Development  "))

	t.Run("deterministic", func(t *testing.T) {
		assert.Equal(t, ForName("Go & Rust"), ForName("Go & Rust"))
	})
}
