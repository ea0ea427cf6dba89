package main

import (
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// canvas is a braille drawing surface: every terminal cell holds a 2x4
// micro-pixel mask plus a foreground color. Polygon fills and edges are
// drawn in micro coordinates (x in [0, w*2), y in [0, h*4)).
type canvas struct {
	w, h   int // in cells
	mask   [][]uint8
	colors [][]string // hex color per cell, "" = default
}

func newCanvas(w, h int) *canvas {
	mask := make([][]uint8, h)
	colors := make([][]string, h)
	for i := range mask {
		mask[i] = make([]uint8, w)
		colors[i] = make([]string, w)
	}
	return &canvas{w: w, h: h, mask: mask, colors: colors}
}

// setPixel sets one micro-pixel and claims the cell's color.
func (c *canvas) setPixel(mx, my int, color string) {
	if mx < 0 || my < 0 {
		return
	}
	cx, rx := mx/2, mx%2
	cy, ry := my/4, my%4
	if cy < 0 || cy >= c.h || cx < 0 || cx >= c.w {
		return
	}
	var bit uint8
	if rx == 0 {
		switch ry {
		case 0:
			bit = 0x01
		case 1:
			bit = 0x02
		case 2:
			bit = 0x04
		case 3:
			bit = 0x40
		}
	} else {
		switch ry {
		case 0:
			bit = 0x08
		case 1:
			bit = 0x10
		case 2:
			bit = 0x20
		case 3:
			bit = 0x80
		}
	}
	c.mask[cy][cx] |= bit
	c.colors[cy][cx] = color
}

// drawLine draws a micro-pixel line using Bresenham.
func (c *canvas) drawLine(x0, y0, x1, y1 int, color string) {
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
		c.setPixel(x0, y0, color)
		if x0 == x1 && y0 == y1 {
			break
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

// fillPolygon fills a polygon with the even-odd rule, one scanline of
// micro-pixels at a time, then traces its edges for a crisp outline.
func (c *canvas) fillPolygon(pts [][2]int, color string) {
	if len(pts) < 3 {
		return
	}

	minY, maxY := pts[0][1], pts[0][1]
	for _, p := range pts[1:] {
		if p[1] < minY {
			minY = p[1]
		}
		if p[1] > maxY {
			maxY = p[1]
		}
	}
	if minY < 0 {
		minY = 0
	}
	hMic := c.h * 4
	if maxY >= hMic {
		maxY = hMic - 1
	}

	for y := minY; y <= maxY; y++ {
		var xs []int
		for i := 0; i < len(pts); i++ {
			a := pts[i]
			b := pts[(i+1)%len(pts)]
			if a[1] == b[1] {
				continue
			}
			if (y >= a[1] && y < b[1]) || (y >= b[1] && y < a[1]) {
				t := float64(y-a[1]) / float64(b[1]-a[1])
				xs = append(xs, a[0]+int(t*float64(b[0]-a[0])))
			}
		}
		if len(xs) < 2 {
			continue
		}
		sort.Ints(xs)
		for i := 0; i+1 < len(xs); i += 2 {
			x0, x1 := xs[i], xs[i+1]
			if x0 > x1 {
				x0, x1 = x1, x0
			}
			if x0 < 0 {
				x0 = 0
			}
			if wMic := c.w * 2; x1 >= wMic {
				x1 = wMic - 1
			}
			for x := x0; x <= x1; x++ {
				c.setPixel(x, y, color)
			}
		}
	}

	for i := 0; i < len(pts); i++ {
		a := pts[i]
		b := pts[(i+1)%len(pts)]
		c.drawLine(a[0], a[1], b[0], b[1], color)
	}
}

// render flattens the canvas into styled terminal lines.
func (c *canvas) render() string {
	var b strings.Builder
	for y := 0; y < c.h; y++ {
		var line strings.Builder
		x := 0
		for x < c.w {
			mask := c.mask[y][x]
			if mask == 0 {
				line.WriteByte(' ')
				x++
				continue
			}
			// Batch a run of cells sharing one color into a single
			// styled segment.
			color := c.colors[y][x]
			var run strings.Builder
			for x < c.w && c.colors[y][x] == color {
				m := c.mask[y][x]
				if m == 0 {
					run.WriteByte(' ')
				} else {
					run.WriteRune(rune(0x2800 + int(m)))
				}
				x++
			}
			if color == "" {
				line.WriteString(run.String())
			} else {
				line.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render(run.String()))
			}
		}
		b.WriteString(line.String())
		if y < c.h-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
