package viz

import "strings"

// Braille cells pack 2x4 sub-pixels per character:
//
//	1 4
//	2 5
//	3 6
//	7 8
//
// Unicode offset 0x2800.
var pixelMap = [4][2]rune{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

// Canvas is a braille drawing surface addressed in world coordinates,
// so callers plot surface heights and trajectories directly.
type Canvas struct {
	Width, Height          int
	xmin, xmax, ymin, ymax float64
	grid                   [][]rune
}

func NewCanvas(w, h int, xmin, xmax, ymin, ymax float64) *Canvas {
	c := &Canvas{
		Width: w, Height: h,
		xmin: xmin, xmax: xmax, ymin: ymin, ymax: ymax,
		grid: make([][]rune, h),
	}
	for i := range c.grid {
		c.grid[i] = make([]rune, w)
	}
	c.Clear()
	return c
}

func (c *Canvas) Clear() {
	for i := range c.grid {
		for j := range c.grid[i] {
			c.grid[i][j] = 0x2800
		}
	}
}

// subPixel converts world coordinates to sub-pixel indices. ok is false
// when the point falls outside the viewport.
func (c *Canvas) subPixel(x, y float64) (int, int, bool) {
	if c.xmax <= c.xmin || c.ymax <= c.ymin {
		return 0, 0, false
	}
	px := int((x - c.xmin) / (c.xmax - c.xmin) * float64(c.Width*2-1))
	py := int((c.ymax - y) / (c.ymax - c.ymin) * float64(c.Height*4-1))
	if px < 0 || py < 0 || px >= c.Width*2 || py >= c.Height*4 {
		return 0, 0, false
	}
	return px, py, true
}

func (c *Canvas) set(px, py int) {
	if px < 0 || py < 0 {
		return
	}
	col, row := px/2, py/4
	if col >= c.Width || row >= c.Height {
		return
	}
	c.grid[row][col] |= pixelMap[py%4][px%2]
}

// Mark plots a single world-coordinate point; off-viewport points are
// dropped silently.
func (c *Canvas) Mark(x, y float64) {
	if px, py, ok := c.subPixel(x, y); ok {
		c.set(px, py)
	}
}

// Line draws a world-space segment with Bresenham over sub-pixels.
func (c *Canvas) Line(x0, y0, x1, y1 float64) {
	px0, py0, ok0 := c.subPixel(x0, y0)
	px1, py1, ok1 := c.subPixel(x1, y1)
	if !ok0 || !ok1 {
		return
	}

	dx, dy := absInt(px1-px0), absInt(py1-py0)
	sx, sy := -1, -1
	if px0 < px1 {
		sx = 1
	}
	if py0 < py1 {
		sy = 1
	}
	err := dx - dy
	for {
		c.set(px0, py0)
		if px0 == px1 && py0 == py1 {
			return
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			px0 += sx
		}
		if e2 < dx {
			err += dx
			py0 += sy
		}
	}
}

func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.grid {
		b.WriteString(string(row))
		b.WriteByte('\n')
	}
	return b.String()
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
