package hunt

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"unicode"
	"unicode/utf8"
)

// GridSize is the width and height of the square map.
const GridSize = 10

const (
	// initialGrassChance is the chance an interior filler cell starts as grass.
	initialGrassChance = 0.2
	// revealGrassChance is the chance a newly revealed neighbour is grass
	// rather than tree.
	revealGrassChance = 0.7
	// pathStubLength is how far the opening path reaches from the first
	// landmark toward the middle of the map.
	pathStubLength = 1
)

// Tile is the tag held by one grid cell. Landmark tags come from the
// content table; everything else is one of the terrain constants below.
type Tile string

const (
	TileUnrevealed Tile = "unknown"
	TileGrass      Tile = "grass"
	TilePath       Tile = "path"
	TileTree       Tile = "tree" // also the border
	TileWater      Tile = "water"
	TileMountain   Tile = "mountain"
)

var terrainGlyphs = map[Tile]byte{
	TileUnrevealed: '?',
	TileGrass:      ',',
	TilePath:       '.',
	TileTree:       '^',
	TileWater:      '~',
	TileMountain:   'M',
}

// Terrain reports whether t is one of the built-in terrain tags.
func (t Tile) Terrain() bool {
	_, ok := terrainGlyphs[t]
	return ok
}

// Landmark reports whether t marks a location.
func (t Tile) Landmark() bool {
	return t != "" && !t.Terrain()
}

// filler cells may be painted over by a path.
func (t Tile) filler() bool {
	return t == TileUnrevealed || t == TileGrass
}

type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func (p Point) String() string { return fmt.Sprintf("(%d,%d)", p.X, p.Y) }

// InBounds reports whether p lies on the grid.
func (p Point) InBounds() bool {
	return p.X >= 0 && p.X < GridSize && p.Y >= 0 && p.Y < GridSize
}

// Interior reports whether p lies inside the border ring.
func (p Point) Interior() bool {
	return p.X > 0 && p.X < GridSize-1 && p.Y > 0 && p.Y < GridSize-1
}

// Grid is indexed [y][x]. It is an array, so assigning or passing a Grid
// copies it.
type Grid [GridSize][GridSize]Tile

// Rand is the source of cosmetic randomness used for filler cells.
// *rand.Rand from math/rand and math/rand/v2 both satisfy it.
type Rand interface {
	Float64() float64
}

// NewRand returns a deterministic source for the given seed.
func NewRand(seed uint64) Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

type globalRand struct{}

func (globalRand) Float64() float64 { return rand.Float64() }

// DefaultRand draws from the process-wide generator.
var DefaultRand Rand = globalRand{}

func (g *Grid) At(p Point) Tile { return g[p.Y][p.X] }

func (g *Grid) set(p Point, t Tile) { g[p.Y][p.X] = t }

// Count returns how many cells hold t.
func (g *Grid) Count(t Tile) int {
	n := 0
	for y := range g {
		for x := range g[y] {
			if g[y][x] == t {
				n++
			}
		}
	}
	return n
}

// String draws the grid one row per line. Landmarks print as the first
// letter of their tag, upper-cased.
func (g *Grid) String() string {
	var b strings.Builder
	for y := range g {
		for x := range g[y] {
			t := g[y][x]
			if c, ok := terrainGlyphs[t]; ok {
				b.WriteByte(c)
			} else if r, _ := utf8.DecodeRuneInString(string(t)); t != "" {
				b.WriteRune(unicode.ToUpper(r))
			} else {
				b.WriteByte(' ')
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// InitialGrid builds the map shown when a hunt starts: a tree border, the
// first landmark with a short path stub toward the middle, and scattered
// grass. Everything else stays unrevealed.
func InitialGrid(start Marker, rng Rand) Grid {
	var g Grid
	for y := range g {
		for x := range g[y] {
			g[y][x] = TileUnrevealed
		}
	}

	origin := start.Point()
	g.set(origin, start.Landmark)

	step := 1
	if origin.X >= GridSize/2 {
		step = -1
	}
	for i := 1; i <= pathStubLength; i++ {
		p := Point{X: origin.X + i*step, Y: origin.Y}
		if p.Interior() {
			g.set(p, TilePath)
		}
	}

	for i := 0; i < GridSize; i++ {
		g[0][i] = TileTree
		g[GridSize-1][i] = TileTree
		g[i][0] = TileTree
		g[i][GridSize-1] = TileTree
	}

	for y := 1; y < GridSize-1; y++ {
		for x := 1; x < GridSize-1; x++ {
			if g[y][x] == TileUnrevealed && rng.Float64() < initialGrassChance {
				g[y][x] = TileGrass
			}
		}
	}

	return g
}

// PathBetween returns the cells walked from `from` to `to`, excluding
// `from`: the full horizontal run first, then the vertical one.
func PathBetween(from, to Point) []Point {
	points := make([]Point, 0, abs(to.X-from.X)+abs(to.Y-from.Y))

	dx := sign(to.X - from.X)
	for x := from.X + dx; dx != 0 && x != to.X+dx; x += dx {
		points = append(points, Point{X: x, Y: from.Y})
	}

	dy := sign(to.Y - from.Y)
	for y := from.Y + dy; dy != 0 && y != to.Y+dy; y += dy {
		points = append(points, Point{X: to.X, Y: y})
	}

	return points
}

// RevealForAdvance returns a copy of g with the new location uncovered:
// its landmark placed, a path drawn from the previous landmark over filler
// cells, and its unrevealed neighbours turned into grass or trees. g itself
// is not modified.
func RevealForAdvance(g Grid, from, to Marker, rng Rand) Grid {
	dst := to.Point()
	g.set(dst, to.Landmark)

	for _, p := range PathBetween(from.Point(), dst) {
		if g.At(p).filler() {
			g.set(p, TilePath)
		}
	}

	for y := dst.Y - 1; y <= dst.Y+1; y++ {
		for x := dst.X - 1; x <= dst.X+1; x++ {
			p := Point{X: x, Y: y}
			if !p.InBounds() || g.At(p) != TileUnrevealed {
				continue
			}
			if rng.Float64() < revealGrassChance {
				g.set(p, TileGrass)
			} else {
				g.set(p, TileTree)
			}
		}
	}

	return g
}

func sign(n int) int {
	switch {
	case n > 0:
		return 1
	case n < 0:
		return -1
	}
	return 0
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
