// Package export renders completed runs to SVG for inspection outside
// the terminal.
package export

import (
	"fmt"
	"strings"

	"github.com/shardul-317/slidesim/internal/physics"
	"github.com/shardul-317/slidesim/internal/sim"
	"github.com/shardul-317/slidesim/internal/surface"
)

const surfaceSamples = 400

// RunToSVG draws the surface profile and the mass trajectory of a run
// as two polylines sharing one coordinate frame.
func RunToSVG(surf surface.Surface, d sim.Domain, steps []physics.StepResult, width, height int) string {
	if len(steps) == 0 {
		return ""
	}

	type pt struct{ x, y float64 }

	profile := make([]pt, 0, surfaceSamples+1)
	for i := 0; i <= surfaceSamples; i++ {
		x := d.XMin + (d.XMax-d.XMin)*float64(i)/surfaceSamples
		profile = append(profile, pt{x, surf.Height(x)})
	}

	track := make([]pt, 0, len(steps))
	for _, r := range steps {
		track = append(track, pt{r.X, r.Y})
	}

	minX, maxX := d.XMin, d.XMax
	minY, maxY := profile[0].y, profile[0].y
	for _, p := range profile {
		minY, maxY = minFloat(minY, p.y), maxFloat(maxY, p.y)
	}
	for _, p := range track {
		minY, maxY = minFloat(minY, p.y), maxFloat(maxY, p.y)
	}

	rangeX, rangeY := maxX-minX, maxY-minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minX -= rangeX * 0.05
	maxX += rangeX * 0.05
	minY -= rangeY * 0.1
	maxY += rangeY * 0.1
	rangeX, rangeY = maxX-minX, maxY-minY

	toSVG := func(p pt) (float64, float64) {
		x := (p.x - minX) / rangeX * float64(width)
		y := float64(height) - (p.y-minY)/rangeY*float64(height)
		return x, y
	}

	path := func(pts []pt) string {
		var b strings.Builder
		for i, p := range pts {
			x, y := toSVG(p)
			if i == 0 {
				fmt.Fprintf(&b, "M%.1f,%.1f", x, y)
			} else {
				fmt.Fprintf(&b, " L%.1f,%.1f", x, y)
			}
		}
		return b.String()
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, width, height)

	fmt.Fprintf(&sb, "<path fill=\"none\" stroke=\"#555555\" stroke-width=\"1\" d=\"%s\"/>\n", path(profile))
	fmt.Fprintf(&sb, "<path fill=\"none\" stroke=\"#00ff88\" stroke-width=\"1.5\" d=\"%s\"/>\n", path(track))

	// Liftoff marker if the run left the surface.
	for _, r := range steps {
		if r.Phase == physics.PhaseProjectile {
			x, y := toSVG(pt{r.X, r.Y})
			fmt.Fprintf(&sb, "<circle cx=\"%.1f\" cy=\"%.1f\" r=\"3\" fill=\"#ff5577\"/>\n", x, y)
			break
		}
	}

	sb.WriteString("</svg>")
	return sb.String()
}

func minFloat(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func maxFloat(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
