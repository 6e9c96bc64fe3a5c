package tensor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShapeNumElements(t *testing.T) {
	tests := []struct {
		shape Shape
		want  int
	}{
		{Shape{}, 1},
		{Shape{5}, 5},
		{Shape{3, 4}, 12},
		{Shape{2, 3, 4}, 24},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.shape.NumElements(), "shape %v", tt.shape)
	}
}

func TestShapeValidate(t *testing.T) {
	assert.NoError(t, Shape{3, 4}.Validate())
	assert.Error(t, Shape{3, 0}.Validate())
	assert.Error(t, Shape{-1}.Validate())
}

func TestShapeComputeStrides(t *testing.T) {
	assert.Equal(t, []int{12, 4, 1}, Shape{2, 3, 4}.ComputeStrides())
	assert.Equal(t, []int{1}, Shape{7}.ComputeStrides())
	assert.Empty(t, Shape{}.ComputeStrides())
}

func TestShapeIsRowVector(t *testing.T) {
	assert.True(t, Shape{5}.IsRowVector(5))
	assert.True(t, Shape{1, 5}.IsRowVector(5))
	assert.False(t, Shape{2, 5}.IsRowVector(5))
	assert.False(t, Shape{4}.IsRowVector(5))
}

func TestBroadcastRows(t *testing.T) {
	tests := []struct {
		name      string
		a, b      Shape
		want      Shape
		broadcast bool
		wantErr   bool
	}{
		{"equal", Shape{3, 5}, Shape{3, 5}, Shape{3, 5}, false, false},
		{"bias vector", Shape{3, 5}, Shape{5}, Shape{3, 5}, true, false},
		{"bias row", Shape{3, 5}, Shape{1, 5}, Shape{3, 5}, true, false},
		{"width mismatch", Shape{3, 4}, Shape{5}, nil, false, true},
		{"reversed", Shape{5}, Shape{3, 5}, nil, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, broadcast, err := BroadcastRows(tt.a, tt.b)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrShapeMismatch)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.broadcast, broadcast)
		})
	}
}
