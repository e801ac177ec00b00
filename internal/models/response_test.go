package models

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewListResponseOutOfRange(t *testing.T) {
	t.Run("page within range", func(t *testing.T) {
		p := NewPagination(2, 10, 25)
		model := NewListResponse([]string{"a"}, &p)

		assert.Equal(t, http.StatusOK, model.Code)
		data, ok := model.Data.(ListData)
		require.True(t, ok)
		assert.False(t, data.OutOfRange)
	})

	t.Run("page past the last page", func(t *testing.T) {
		p := NewPagination(9, 10, 25)
		model := NewListResponse([]string{}, &p)

		data, ok := model.Data.(ListData)
		require.True(t, ok)
		assert.True(t, data.OutOfRange)
	})

	t.Run("no pagination block", func(t *testing.T) {
		model := NewListResponse([]string{"a"}, nil)

		data, ok := model.Data.(ListData)
		require.True(t, ok)
		assert.False(t, data.OutOfRange)
	})
}
