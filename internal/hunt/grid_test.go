package hunt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixedRand always returns the same draw.
type fixedRand float64

func (r fixedRand) Float64() float64 { return float64(r) }

var (
	alwaysGrass = fixedRand(0)
	neverGrass  = fixedRand(0.99)
)

func TestPathBetween(t *testing.T) {
	tests := []struct {
		name     string
		from, to Point
		want     []Point
	}{
		{
			name: "horizontal then vertical",
			from: Point{1, 5}, to: Point{4, 3},
			want: []Point{{2, 5}, {3, 5}, {4, 5}, {4, 4}, {4, 3}},
		},
		{
			name: "leftward",
			from: Point{6, 5}, to: Point{4, 5},
			want: []Point{{5, 5}, {4, 5}},
		},
		{
			name: "vertical only",
			from: Point{7, 7}, to: Point{7, 5},
			want: []Point{{7, 6}, {7, 5}},
		},
		{
			name: "same cell",
			from: Point{3, 3}, to: Point{3, 3},
			want: []Point{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PathBetween(tt.from, tt.to))
		})
	}
}

func assertBorder(t *testing.T, g Grid) {
	t.Helper()
	for i := 0; i < GridSize; i++ {
		for _, p := range []Point{{i, 0}, {i, GridSize - 1}, {0, i}, {GridSize - 1, i}} {
			assert.Equalf(t, TileTree, g.At(p), "border cell %v", p)
		}
	}
}

func TestInitialGrid(t *testing.T) {
	house := Marker{X: 1, Y: 5, Landmark: "house"}

	g := InitialGrid(house, neverGrass)
	assertBorder(t, g)
	assert.Equal(t, Tile("house"), g.At(Point{1, 5}))
	assert.Equal(t, TilePath, g.At(Point{2, 5}))
	assert.Equal(t, 0, g.Count(TileGrass))
	assert.Equal(t, (GridSize-2)*(GridSize-2)-2, g.Count(TileUnrevealed))

	g = InitialGrid(house, alwaysGrass)
	assert.Equal(t, 0, g.Count(TileUnrevealed))
	assert.Equal(t, (GridSize-2)*(GridSize-2)-2, g.Count(TileGrass))
}

func TestInitialGridStubPointsInward(t *testing.T) {
	g := InitialGrid(Marker{X: 8, Y: 5, Landmark: "hotel"}, neverGrass)
	assert.Equal(t, TilePath, g.At(Point{7, 5}))
	assert.Equal(t, TileTree, g.At(Point{9, 5}))
}

func TestRevealForAdvance(t *testing.T) {
	house := Marker{X: 1, Y: 5, Landmark: "house"}
	cafe := Marker{X: 4, Y: 3, Landmark: "cafe"}

	before := InitialGrid(house, neverGrass)
	after := RevealForAdvance(before, house, cafe, neverGrass)

	assert.Equal(t, TileUnrevealed, before.At(Point{3, 5}), "input grid must not change")

	assert.Equal(t, Tile("cafe"), after.At(Point{4, 3}))
	assert.Equal(t, Tile("house"), after.At(Point{1, 5}))
	for _, p := range []Point{{2, 5}, {3, 5}, {4, 5}, {4, 4}} {
		assert.Equalf(t, TilePath, after.At(p), "path cell %v", p)
	}
	for _, p := range []Point{{3, 2}, {4, 2}, {5, 2}, {3, 3}, {5, 3}, {3, 4}, {5, 4}} {
		assert.Equalf(t, TileTree, after.At(p), "neighbour %v", p)
	}
	assertBorder(t, after)
}

func TestRevealForAdvanceKeepsRevealedCells(t *testing.T) {
	house := Marker{X: 1, Y: 5, Landmark: "house"}
	cafe := Marker{X: 4, Y: 3, Landmark: "cafe"}
	restaurant := Marker{X: 6, Y: 5, Landmark: "restaurant"}

	g1 := RevealForAdvance(InitialGrid(house, neverGrass), house, cafe, neverGrass)
	g2 := RevealForAdvance(g1, cafe, restaurant, alwaysGrass)

	for y := range g1 {
		for x := range g1[y] {
			if g1[y][x] != TileUnrevealed && g1[y][x] != TileGrass {
				assert.Equalf(t, g1[y][x], g2[y][x], "cell (%d,%d)", x, y)
			}
		}
	}
	// (5,3) became a tree around the cafe, so the path routes around it.
	assert.Equal(t, TileTree, g2.At(Point{5, 3}))
	assert.Equal(t, TilePath, g2.At(Point{6, 3}))
	assert.Equal(t, TilePath, g2.At(Point{6, 4}))
	assert.Equal(t, Tile("restaurant"), g2.At(Point{6, 5}))
	assert.Equal(t, TileGrass, g2.At(Point{7, 6}))
	assertBorder(t, g2)
}

func TestRevealPaintsOverGrass(t *testing.T) {
	from := Marker{X: 2, Y: 2, Landmark: "a"}
	to := Marker{X: 5, Y: 2, Landmark: "b"}

	g := InitialGrid(from, alwaysGrass)
	require.Equal(t, TileGrass, g.At(Point{4, 2}))

	g = RevealForAdvance(g, from, to, alwaysGrass)
	assert.Equal(t, TilePath, g.At(Point{4, 2}))
}

func TestGridString(t *testing.T) {
	g := InitialGrid(Marker{X: 1, Y: 5, Landmark: "house"}, neverGrass)
	lines := g.String()
	require.Len(t, lines, GridSize*(GridSize+1))
	assert.Equal(t, "^^^^^^^^^^\n", lines[:GridSize+1])
	row5 := lines[5*(GridSize+1) : 6*(GridSize+1)]
	assert.Equal(t, "^H.??????^\n", row5)
}

func TestNewRandIsDeterministic(t *testing.T) {
	m := Marker{X: 3, Y: 3, Landmark: "x"}
	assert.Equal(t, InitialGrid(m, NewRand(7)), InitialGrid(m, NewRand(7)))
}
