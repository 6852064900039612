package viz

import (
	"strings"
	"testing"

	"github.com/san-kum/physim/internal/collision"
	"github.com/san-kum/physim/internal/dynamo"
	"github.com/san-kum/physim/internal/vmath"
)

func TestCanvasSetUnset(t *testing.T) {
	c := NewCanvas(4, 2)
	c.Set(0, 0)
	if c.Grid[0][0] != 0x2801 {
		t.Errorf("expected 0x2801, got %#x", c.Grid[0][0])
	}
	c.Set(1, 3)
	if c.Grid[0][0] != 0x2881 {
		t.Errorf("expected 0x2881, got %#x", c.Grid[0][0])
	}
	c.Unset(0, 0)
	if c.Grid[0][0] != 0x2880 {
		t.Errorf("expected 0x2880, got %#x", c.Grid[0][0])
	}
	if c.IsSet(0, 0) || !c.IsSet(1, 3) {
		t.Error("IsSet disagrees with the grid")
	}

	c.Set(-1, 0)
	c.Set(8, 0)
	c.Set(0, 8)
	if c.IsSet(-1, 0) || c.IsSet(8, 0) {
		t.Error("off-canvas points must be dropped")
	}

	lines := strings.Split(strings.TrimSuffix(c.String(), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(lines))
	}
	if n := len([]rune(lines[0])); n != 4 {
		t.Errorf("expected 4 cells per row, got %d", n)
	}

	c.Clear()
	if c.IsSet(1, 3) {
		t.Error("Clear left a pixel set")
	}
}

func TestCanvasShapes(t *testing.T) {
	c := NewCanvas(20, 10)
	c.DrawRect(2, 2, 6, 6)
	for _, p := range [][2]int{{2, 2}, {6, 2}, {6, 6}, {2, 6}, {4, 2}} {
		if !c.IsSet(p[0], p[1]) {
			t.Errorf("expected %v on the outline", p)
		}
	}
	if c.IsSet(4, 4) {
		t.Error("DrawRect filled the interior")
	}

	c.FillRect(12, 12, 10, 10)
	if !c.IsSet(11, 11) {
		t.Error("FillRect missed the interior")
	}

	c.DrawCircle(20, 20, 4)
	for _, p := range [][2]int{{24, 20}, {16, 20}, {20, 24}, {20, 16}} {
		if !c.IsSet(p[0], p[1]) {
			t.Errorf("expected %v on the circle", p)
		}
	}
	if c.IsSet(20, 20) {
		t.Error("DrawCircle set the centre")
	}

	c.DrawCircle(30, 30, 0)
	if !c.IsSet(30, 30) {
		t.Error("zero radius should draw a dot")
	}
}

func TestFitViewport(t *testing.T) {
	c := NewCanvas(10, 5)
	v := Fit(c, vmath.NewAABB(vmath.Vec(0, 0), vmath.Vec(10, 10)))

	if x, y := v.Project(vmath.Vec(0, 0)); x != 0 || y != 19 {
		t.Errorf("expected bottom-left at (0, 19), got (%d, %d)", x, y)
	}
	if x, y := v.Project(vmath.Vec(10, 10)); x != 19 || y != 0 {
		t.Errorf("expected top-right at (19, 0), got (%d, %d)", x, y)
	}

	wide := Fit(c, vmath.NewAABB(vmath.Vec(0, 0), vmath.Vec(20, 10)))
	for _, p := range []vmath.Vector2D{vmath.Vec(0, 0), vmath.Vec(20, 10), vmath.Vec(0, 10), vmath.Vec(20, 0)} {
		x, y := wide.Project(p)
		if x < 0 || x > 19 || y < 0 || y > 19 {
			t.Errorf("expected %v on canvas, got (%d, %d)", p, x, y)
		}
	}

	flat := Fit(c, vmath.NewAABB(vmath.Vec(1, 1), vmath.Vec(1, 1)))
	if flat.Scale != 1 {
		t.Errorf("expected unit scale for an empty area, got %f", flat.Scale)
	}
}

func TestDrawFrame(t *testing.T) {
	c := NewCanvas(10, 5)
	v := Fit(c, vmath.NewAABB(vmath.Vec(0, 0), vmath.Vec(10, 10)))
	f := dynamo.Frame{Bodies: []dynamo.BodyState{
		{
			Shape:    collision.ShapeBox,
			Static:   true,
			Position: vmath.Vec(5, 0.5),
			Bounds:   vmath.NewAABB(vmath.Vec(0, 0), vmath.Vec(10, 1)),
		},
		{
			Shape:    collision.ShapeCircle,
			Position: vmath.Vec(5, 5),
			Bounds:   vmath.NewAABB(vmath.Vec(4, 4), vmath.Vec(6, 6)),
		},
	}}
	DrawFrame(c, v, f)

	if !c.IsSet(v.Project(vmath.Vec(5, 0.5))) {
		t.Error("static box should be filled")
	}
	cx, cy := v.Project(vmath.Vec(5, 5))
	r := v.Length(1)
	if !c.IsSet(cx+r, cy) {
		t.Error("circle outline missing")
	}
	if c.IsSet(cx, cy) {
		t.Error("dynamic circle should not be filled")
	}
}

func TestExtent(t *testing.T) {
	f := dynamo.Frame{Bodies: []dynamo.BodyState{
		{Bounds: vmath.NewAABB(vmath.Vec(0, 0), vmath.Vec(1, 1))},
		{Bounds: vmath.NewAABB(vmath.Vec(-2, 3), vmath.Vec(4, 5))},
	}}
	got := Extent(f, 1)
	want := vmath.NewAABB(vmath.Vec(-3, -1), vmath.Vec(5, 6))
	if got != want {
		t.Errorf("expected %v, got %v", want, got)
	}
	if (Extent(dynamo.Frame{}, 1) != vmath.AABB{}) {
		t.Error("expected zero box for an empty frame")
	}
}

func TestSpeedColor(t *testing.T) {
	th := GetTheme("minimal")
	if got := SpeedColor(th, 0, 10); got != "#444444" {
		t.Errorf("expected slow color, got %s", got)
	}
	if got := SpeedColor(th, 100, 10); got != "#ffffff" {
		t.Errorf("expected fast color, got %s", got)
	}
	if got := GetTheme("nope"); got.Name != Themes[0].Name {
		t.Errorf("expected fallback theme, got %s", got.Name)
	}
	if got := NextTheme(Themes[len(Themes)-1].Name); got.Name != Themes[0].Name {
		t.Errorf("expected wrap-around, got %s", got.Name)
	}
}
