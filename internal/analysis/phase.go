package analysis

import (
	"strings"

	"github.com/san-kum/physim/internal/vmath"
)

// Portrait is a 2D trajectory through any pair of recorded quantities, for
// example a body's height against its vertical velocity.
type Portrait struct {
	XLabel, YLabel string
	Points         []vmath.Vector2D
}

// NewPortrait pairs xs with ys, truncating to the shorter series.
func NewPortrait(xLabel string, xs []float64, yLabel string, ys []float64) *Portrait {
	n := min(len(xs), len(ys))
	p := &Portrait{XLabel: xLabel, YLabel: yLabel, Points: make([]vmath.Vector2D, n)}
	for i := 0; i < n; i++ {
		p.Points[i] = vmath.Vec(xs[i], ys[i])
	}
	return p
}

// Bounds is the padded extent of the portrait, 10% on each side.
func (p *Portrait) Bounds() vmath.AABB {
	box := vmath.NewAABB(p.Points[0], p.Points[0])
	for _, pt := range p.Points[1:] {
		box = box.Union(vmath.NewAABB(pt, pt))
	}
	rangeX, rangeY := box.Width(), box.Height()
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	return vmath.NewAABB(
		vmath.Vec(box.Min.X-rangeX*0.1, box.Min.Y-rangeY*0.1),
		vmath.Vec(box.Max.X+rangeX*0.1, box.Max.Y+rangeY*0.1),
	)
}

// PortraitToASCII converts phase portrait to ASCII art
func PortraitToASCII(p *Portrait, width, height int) string {
	if p == nil || len(p.Points) == 0 {
		return ""
	}

	b := p.Bounds()
	minX, minY := b.Min.X, b.Min.Y
	rangeX, rangeY := b.Width(), b.Height()

	canvas := make([][]rune, height)
	for i := range canvas {
		canvas[i] = make([]rune, width)
		for j := range canvas[i] {
			canvas[i][j] = ' '
		}
	}

	for _, pt := range p.Points {
		col := int((pt.X - minX) / rangeX * float64(width-1))
		row := height - 1 - int((pt.Y-minY)/rangeY*float64(height-1))

		if row >= 0 && row < height && col >= 0 && col < width {
			canvas[row][col] = '•'
		}
	}

	// Draw axes if they cross the visible area
	if b.Min.X <= 0 && b.Max.X >= 0 {
		col := int((0 - minX) / rangeX * float64(width-1))
		for row := 0; row < height; row++ {
			if col >= 0 && col < width && canvas[row][col] == ' ' {
				canvas[row][col] = '│'
			}
		}
	}
	if b.Min.Y <= 0 && b.Max.Y >= 0 {
		row := height - 1 - int((0-minY)/rangeY*float64(height-1))
		for col := 0; col < width; col++ {
			if row >= 0 && row < height && canvas[row][col] == ' ' {
				canvas[row][col] = '─'
			}
		}
	}

	var sb strings.Builder
	for _, row := range canvas {
		sb.WriteString(string(row))
		sb.WriteRune('\n')
	}
	return sb.String()
}
