package banktui

import (
	"math"

	"github.com/banshee-data/trackgeo/internal/track"
)

// canvas is a grid of braille cells, each holding a 2x4 block of dots.
type canvas struct {
	w, h int
	m    [][]uint8
}

func newCanvas(w, h int) *canvas {
	m := make([][]uint8, h)
	for i := range m {
		m[i] = make([]uint8, w)
	}
	return &canvas{w: w, h: h, m: m}
}

// dotBits maps a dot's (column, row) inside a cell to its braille bit.
var dotBits = [2][4]uint8{
	{0x01, 0x02, 0x04, 0x40},
	{0x08, 0x10, 0x20, 0x80},
}

func (c *canvas) set(dx, dy int) {
	if dx < 0 || dy < 0 {
		return
	}
	cx, cy := dx/2, dy/4
	if cx >= c.w || cy >= c.h {
		return
	}
	c.m[cy][cx] |= dotBits[dx%2][dy%4]
}

// line draws between two dots with Bresenham's algorithm.
func (c *canvas) line(x0, y0, x1, y1 int) {
	dx := abs(x1 - x0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	dy := -abs(y1 - y0)
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx + dy
	for {
		c.set(x0, y0)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func (c *canvas) lines() []string {
	out := make([]string, c.h)
	for y, row := range c.m {
		r := make([]rune, c.w)
		for x, mask := range row {
			if mask == 0 {
				r[x] = ' '
			} else {
				r[x] = rune(0x2800 + int(mask))
			}
		}
		out[y] = string(r)
	}
	return out
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// preview draws p into a w x h cell canvas, scaled uniformly to fit with
// north up. Returns nil when there is nothing to draw.
func preview(p track.Path, w, h int) []string {
	if len(p) == 0 || w <= 0 || h <= 0 {
		return nil
	}
	minX, maxX := math.Inf(1), math.Inf(-1)
	minY, maxY := math.Inf(1), math.Inf(-1)
	for _, pt := range p {
		minX, maxX = math.Min(minX, pt.X), math.Max(maxX, pt.X)
		minY, maxY = math.Min(minY, pt.Y), math.Max(maxY, pt.Y)
	}
	dotsW, dotsH := float64(w*2-1), float64(h*4-1)
	scale := math.Min(dotsW/math.Max(maxX-minX, 1e-9), dotsH/math.Max(maxY-minY, 1e-9))

	c := newCanvas(w, h)
	toDot := func(pt track.Point) (int, int) {
		return int(math.Round((pt.X - minX) * scale)), int(math.Round(dotsH - (pt.Y-minY)*scale))
	}
	x0, y0 := toDot(p[0])
	c.set(x0, y0)
	for _, pt := range p[1:] {
		x1, y1 := toDot(pt)
		c.line(x0, y0, x1, y1)
		x0, y0 = x1, y1
	}
	return c.lines()
}
