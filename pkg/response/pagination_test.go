package response

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPagination(t *testing.T) {
	t.Run("rounds the last partial page up", func(t *testing.T) {
		meta := NewPagination(41, 1, 20)
		assert.Equal(t, int64(41), meta.Total)
		assert.Equal(t, 1, meta.Page)
		assert.Equal(t, 3, meta.TotalPages)
	})

	t.Run("exact multiple needs no extra page", func(t *testing.T) {
		assert.Equal(t, 2, NewPagination(40, 2, 20).TotalPages)
	})

	t.Run("empty list has zero pages", func(t *testing.T) {
		assert.Equal(t, 0, NewPagination(0, 1, 20).TotalPages)
	})

	t.Run("zero limit does not divide by zero", func(t *testing.T) {
		assert.Equal(t, 0, NewPagination(10, 1, 0).TotalPages)
	})
}
