package vmath

import (
	"math"
	"testing"
)

func almostEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func TestVector_Arithmetic(t *testing.T) {
	a := Vec(1, 2)
	b := Vec(3, -4)

	if got := a.Add(b); got != Vec(4, -2) {
		t.Errorf("Add = %v, want %v", got, Vec(4, -2))
	}
	if got := b.Sub(a); got != Vec(2, -6) {
		t.Errorf("Sub = %v, want %v", got, Vec(2, -6))
	}
	if got := a.Scale(3); got != Vec(3, 6) {
		t.Errorf("Scale = %v, want %v", got, Vec(3, 6))
	}
	if got := a.Dot(b); got != -5 {
		t.Errorf("Dot = %v, want -5", got)
	}
	if got := a.Cross(b); got != -10 {
		t.Errorf("Cross = %v, want -10", got)
	}
}

func TestVector_Normalize(t *testing.T) {
	tests := []struct {
		name string
		in   Vector2D
		want Vector2D
	}{
		{"unit x", Vec(5, 0), Vec(1, 0)},
		{"diagonal", Vec(3, 4), Vec(0.6, 0.8)},
		{"zero falls back", Vec(0, 0), DefaultNormal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.in.Normalize()
			if !almostEqual(got.X, tt.want.X, 1e-12) || !almostEqual(got.Y, tt.want.Y, 1e-12) {
				t.Errorf("Normalize(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}

	if _, ok := Vec(0, 0).TryNormalize(); ok {
		t.Error("TryNormalize on zero vector should report false")
	}
}

func TestVector_Distance(t *testing.T) {
	if got := Vec(1, 1).Distance(Vec(4, 5)); got != 5 {
		t.Errorf("Distance = %v, want 5", got)
	}
	if got := Vec(0, 0).DistanceSq(Vec(3, 4)); got != 25 {
		t.Errorf("DistanceSq = %v, want 25", got)
	}
}

func TestAABB_Overlaps(t *testing.T) {
	a := NewAABB(Vec(0, 0), Vec(2, 2))
	tests := []struct {
		name string
		b    AABB
		want bool
	}{
		{"overlapping", NewAABB(Vec(1, 1), Vec(3, 3)), true},
		{"contained", NewAABB(Vec(0.5, 0.5), Vec(1, 1)), true},
		{"touching edge", NewAABB(Vec(2, 0), Vec(3, 2)), false},
		{"disjoint", NewAABB(Vec(5, 5), Vec(6, 6)), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := a.Overlaps(tt.b); got != tt.want {
				t.Errorf("Overlaps = %v, want %v", got, tt.want)
			}
			if got := tt.b.Overlaps(a); got != tt.want {
				t.Errorf("Overlaps (reversed) = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAABB_Quadrants(t *testing.T) {
	q := NewAABB(Vec(0, 0), Vec(4, 2)).Quadrants()
	want := [4]AABB{
		NewAABB(Vec(0, 0), Vec(2, 1)),
		NewAABB(Vec(2, 0), Vec(4, 1)),
		NewAABB(Vec(0, 1), Vec(2, 2)),
		NewAABB(Vec(2, 1), Vec(4, 2)),
	}
	if q != want {
		t.Errorf("Quadrants = %v, want %v", q, want)
	}
}

func TestTransform_ToWorld(t *testing.T) {
	tr := Transform{Position: Vec(10, 0), Rotation: math.Pi / 2, Scale: Vec(2, 2)}

	got := tr.ToWorld(Vec(1, 0))
	if !almostEqual(got.X, 10, 1e-9) || !almostEqual(got.Y, 2, 1e-9) {
		t.Errorf("ToWorld = %v, want (10, 2)", got)
	}

	back := tr.ToLocal(got)
	if !almostEqual(back.X, 1, 1e-9) || !almostEqual(back.Y, 0, 1e-9) {
		t.Errorf("ToLocal(ToWorld(p)) = %v, want (1, 0)", back)
	}
}

func TestTransform_ZeroScaleIsIdentity(t *testing.T) {
	var tr Transform
	if got := tr.ToWorld(Vec(3, 4)); got != Vec(3, 4) {
		t.Errorf("ToWorld with zero transform = %v, want (3, 4)", got)
	}
}
