// Package mapexport draws a revealed hunt map as a printable PDF in an
// old-map style: parchment page, one coloured square per cell, landmark
// initials and a legend of the places found so far.
package mapexport

import (
	"bytes"
	"fmt"
	"unicode"
	"unicode/utf8"

	"github.com/jung-kurt/gofpdf/v2"

	"github.com/playperu/treasurehunt/internal/hunt"
)

const (
	pageW     = 595
	pageH     = 842
	margin    = 40
	cellSize  = 44.0
	fontSize  = 9
	titleSize = 18
)

type rgb struct{ r, g, b int }

var (
	parchment = rgb{245, 235, 210}
	ink       = rgb{80, 50, 30}
	pathRed   = rgb{180, 40, 40}
)

var tileColours = map[hunt.Tile]rgb{
	hunt.TileUnrevealed: {200, 190, 170},
	hunt.TileGrass:      {170, 200, 120},
	hunt.TilePath:       {225, 200, 150},
	hunt.TileTree:       {60, 110, 60},
	hunt.TileWater:      {110, 160, 210},
	hunt.TileMountain:   {140, 130, 120},
}

var landmarkColour = rgb{230, 170, 90}

// Place is a legend entry. Only places whose landmark is on the grid are
// listed.
type Place struct {
	Name    string
	Marker  hunt.Marker
	Current bool
}

// Render returns PDF bytes for g.
func Render(title string, g hunt.Grid, places []Place) ([]byte, error) {
	pdf := gofpdf.New("P", "pt", "A4", "")
	pdf.SetMargins(margin, margin, margin)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	fill(pdf, parchment)
	pdf.Rect(0, 0, pageW, pageH, "F")

	pdf.SetTextColor(ink.r, ink.g, ink.b)
	pdf.SetFont("Helvetica", "B", titleSize)
	pdf.SetXY(margin, margin)
	pdf.CellFormat(pageW-2*margin, 24, tr(title), "", 0, "C", false, 0, "")

	gridW := cellSize * hunt.GridSize
	x0 := (pageW - gridW) / 2
	y0 := float64(margin) + 48

	pdf.SetDrawColor(ink.r, ink.g, ink.b)
	pdf.SetLineWidth(0.5)
	for y := range g {
		for x := range g[y] {
			drawCell(pdf, tr, x0+float64(x)*cellSize, y0+float64(y)*cellSize, g[y][x])
		}
	}

	pdf.SetLineWidth(2)
	pdf.Rect(x0, y0, gridW, gridW, "D")

	for _, p := range places {
		if !p.Current || g.At(p.Marker.Point()) != p.Marker.Landmark {
			continue
		}
		pdf.SetDrawColor(pathRed.r, pathRed.g, pathRed.b)
		pdf.SetLineWidth(2)
		cx := x0 + (float64(p.Marker.X)+0.5)*cellSize
		cy := y0 + (float64(p.Marker.Y)+0.5)*cellSize
		pdf.Circle(cx, cy, cellSize*0.45, "D")
	}

	drawLegend(pdf, tr, x0, y0+gridW+24, g, places)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("writing pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func drawCell(pdf *gofpdf.Fpdf, tr func(string) string, x, y float64, t hunt.Tile) {
	c, ok := tileColours[t]
	if !ok {
		c = landmarkColour
	}
	fill(pdf, c)
	pdf.Rect(x, y, cellSize, cellSize, "FD")

	switch {
	case t == hunt.TileTree:
		fill(pdf, rgb{30, 70, 30})
		pdf.Polygon([]gofpdf.PointType{
			{X: x + cellSize/2, Y: y + 8},
			{X: x + cellSize - 10, Y: y + cellSize - 10},
			{X: x + 10, Y: y + cellSize - 10},
		}, "F")
	case t == hunt.TilePath:
		pdf.SetDrawColor(pathRed.r, pathRed.g, pathRed.b)
		pdf.SetDashPattern([]float64{4, 3}, 0)
		pdf.Line(x+6, y+cellSize/2, x+cellSize-6, y+cellSize/2)
		pdf.SetDashPattern([]float64{}, 0)
		pdf.SetDrawColor(ink.r, ink.g, ink.b)
	case t.Landmark():
		pdf.SetFont("Helvetica", "B", 16)
		pdf.SetXY(x, y+cellSize/2-8)
		pdf.CellFormat(cellSize, 16, tr(initial(t)), "", 0, "C", false, 0, "")
	}
}

func drawLegend(pdf *gofpdf.Fpdf, tr func(string) string, x, y float64, g hunt.Grid, places []Place) {
	pdf.SetFont("Helvetica", "B", fontSize+2)
	pdf.SetXY(x, y)
	pdf.CellFormat(200, 14, "Places found", "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", fontSize)
	row := y + 18
	for _, p := range places {
		if g.At(p.Marker.Point()) != p.Marker.Landmark {
			continue
		}
		label := fmt.Sprintf("%s  %s", initial(p.Marker.Landmark), p.Name)
		if p.Current {
			label += "  (you are here)"
		}
		pdf.SetXY(x, row)
		pdf.CellFormat(300, 12, tr(label), "", 0, "L", false, 0, "")
		row += 14
	}
}

func initial(t hunt.Tile) string {
	r, _ := utf8.DecodeRuneInString(string(t))
	return string(unicode.ToUpper(r))
}

func fill(pdf *gofpdf.Fpdf, c rgb) {
	pdf.SetFillColor(c.r, c.g, c.b)
}
