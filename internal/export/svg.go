package export

import (
	"fmt"
	"strings"

	"github.com/san-kum/physim/internal/collision"
	"github.com/san-kum/physim/internal/dynamo"
	"github.com/san-kum/physim/internal/vmath"
)

const background = "#0a0a0a"

// Style holds the colors used for each kind of body.
type Style struct {
	Static  string
	Dynamic string
	Trigger string
	Path    string
}

func DefaultStyle() Style {
	return Style{Static: "#666688", Dynamic: "#00ccff", Trigger: "#ffaa00", Path: "#ff00ff"}
}

// frame maps world coordinates to SVG pixels, flipping y.
type frame struct {
	area  vmath.AABB
	scale float64
	w, h  int
}

func newFrame(area vmath.AABB, width int) frame {
	if area.Width() <= 0 || area.Height() <= 0 {
		area = area.Expand(1)
	}
	scale := float64(width) / area.Width()
	return frame{area: area, scale: scale, w: width, h: int(area.Height()*scale + 0.5)}
}

func (f frame) point(p vmath.Vector2D) (float64, float64) {
	return (p.X - f.area.Min.X) * f.scale, (f.area.Max.Y - p.Y) * f.scale
}

func (f frame) header(sb *strings.Builder) {
	fmt.Fprintf(sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="%s"/>
`, f.w, f.h, f.w, f.h, background)
}

// FrameToSVG draws every body of snap inside area, scaled to width pixels.
// Static bodies are filled, triggers are dashed outlines.
func FrameToSVG(snap dynamo.Frame, area vmath.AABB, width int, style Style) string {
	f := newFrame(area, width)
	var sb strings.Builder
	f.header(&sb)

	for _, b := range snap.Bodies {
		color := style.Dynamic
		switch {
		case b.Trigger:
			color = style.Trigger
		case b.Static:
			color = style.Static
		}
		fill, dash := "none", ""
		if b.Static && !b.Trigger {
			fill = color
		}
		if b.Trigger {
			dash = ` stroke-dasharray="4 2"`
		}

		switch {
		case b.Bounds.Width() == 0 && b.Bounds.Height() == 0:
			x, y := f.point(b.Position)
			fmt.Fprintf(&sb, `<circle cx="%.1f" cy="%.1f" r="2" fill="%s"/>`+"\n", x, y, color)
		case b.Shape == collision.ShapeCircle:
			x, y := f.point(b.Position)
			fmt.Fprintf(&sb, `<circle cx="%.1f" cy="%.1f" r="%.1f" fill="%s" stroke="%s"%s/>`+"\n",
				x, y, b.Bounds.Width()/2*f.scale, fill, color, dash)
		default:
			x, y := f.point(vmath.Vec(b.Bounds.Min.X, b.Bounds.Max.Y))
			fmt.Fprintf(&sb, `<rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="%s" stroke="%s"%s/>`+"\n",
				x, y, b.Bounds.Width()*f.scale, b.Bounds.Height()*f.scale, fill, color, dash)
		}
	}

	sb.WriteString("</svg>\n")
	return sb.String()
}

// TrajectoryToSVG creates an SVG path from trajectory data, padded by 10%
// of its extent.
func TrajectoryToSVG(points []vmath.Vector2D, width int, style Style) string {
	if len(points) < 2 {
		return ""
	}

	area := vmath.NewAABB(points[0], points[0])
	for _, p := range points[1:] {
		area = area.Union(vmath.NewAABB(p, p))
	}
	area = area.Expand(0.1 * max(area.Width(), area.Height(), 1))

	f := newFrame(area, width)
	var sb strings.Builder
	f.header(&sb)
	fmt.Fprintf(&sb, `<path fill="none" stroke="%s" stroke-width="1.5" d="M`, style.Path)

	for i, p := range points {
		x, y := f.point(p)
		if i == 0 {
			fmt.Fprintf(&sb, "%.1f,%.1f", x, y)
		} else {
			fmt.Fprintf(&sb, " L%.1f,%.1f", x, y)
		}
	}

	sb.WriteString(`"/>
</svg>
`)
	return sb.String()
}
