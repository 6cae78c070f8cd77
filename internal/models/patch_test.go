package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestElement_Merge(t *testing.T) {
	el := Element{
		ID:    "a",
		Style: Style{StrokeColor: "#000", Opacity: 100},
		Shape: Rect{Box{X: 0, Y: 0, Width: 10, Height: 10}},
	}

	t.Run("overwrites given fields only", func(t *testing.T) {
		p, err := NewPatch(map[string]any{"x": 25, "strokeColor": "#f00"})
		require.NoError(t, err)

		got, err := el.Merge(p)
		require.NoError(t, err)

		assert.Equal(t, "a", got.ID)
		assert.Equal(t, "#f00", got.Style.StrokeColor)
		assert.Equal(t, Rect{Box{X: 25, Width: 10, Height: 10}}, got.Shape)
		// исходный элемент не изменился
		assert.Equal(t, "#000", el.Style.StrokeColor)
	})

	t.Run("id and type are immutable", func(t *testing.T) {
		p, err := NewPatch(map[string]any{"id": "b", "type": "circle"})
		require.NoError(t, err)

		got, err := el.Merge(p)
		require.NoError(t, err)
		assert.Equal(t, "a", got.ID)
		assert.Equal(t, KindRect, got.Kind())
	})

	t.Run("undecodable value", func(t *testing.T) {
		p, err := NewPatch(map[string]any{"width": "wide"})
		require.NoError(t, err)

		_, err = el.Merge(p)
		assert.ErrorIs(t, err, ErrInvalidPatch)
	})
}

func TestPatchOf(t *testing.T) {
	el := Element{ID: "a", Style: Style{Opacity: 40}, Shape: Circle{Box{X: 1, Y: 2, Width: 3, Height: 4}}}

	p, err := PatchOf(el)
	require.NoError(t, err)
	assert.NotContains(t, p, "id")
	assert.NotContains(t, p, "type")
	assert.Contains(t, p, "opacity")

	other := Element{ID: "a", Style: Style{Opacity: 100}, Shape: Circle{}}
	merged, err := other.Merge(p)
	require.NoError(t, err)
	assert.Equal(t, el, merged)
}
