package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleLayout = `
region_id: 12850
plane: 0
base_x: 3200
base_y: 3200
rows:
  - "..#"
  - "..."
walls:
  - x: 0
    y: 0
    block: [east, north]
`

func TestParseLayout(t *testing.T) {
	l, err := ParseLayout([]byte(sampleLayout))
	require.NoError(t, err)

	assert.Equal(t, 12850, l.RegionID)
	assert.Equal(t, 3200, l.BaseX)
	assert.Len(t, l.Rows, 2)

	g, err := l.Grid()
	require.NoError(t, err)

	assert.Equal(t, BlockMovementFull, g.At(2, 1), "first row is north")
	assert.Equal(t, Flag(0), g.At(2, 0))
	assert.Equal(t, BlockMovementEast|BlockMovementNorth, g.At(0, 0))
	assert.Equal(t, BlockMovementFull, g.At(3, 0), "tiles outside rows are blocked")
	assert.Equal(t, BlockMovementFull, g.At(0, 2))
}

func TestParseLayoutErrors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"bad yaml", "rows: [unterminated"},
		{"bad plane", "plane: 4"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseLayout([]byte(tt.yaml))
			assert.Error(t, err)
		})
	}
}

func TestLayoutGridErrors(t *testing.T) {
	tests := []struct {
		name   string
		layout Layout
	}{
		{"unknown tile", Layout{Rows: []string{".x."}}},
		{"unknown wall direction", Layout{Rows: []string{"."}, Walls: []Wall{{X: 0, Y: 0, Block: []string{"up"}}}}},
		{"wall out of region", Layout{Walls: []Wall{{X: RegionSize, Y: 0, Block: []string{"north"}}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.layout.Grid()
			assert.Error(t, err)
		})
	}
}
