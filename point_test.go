package tilelabel

import "testing"

func TestPointOps(t *testing.T) {
	p := Pt(3, 4)
	if got := p.Length(); got != 5 {
		t.Errorf("Length() = %v, want 5", got)
	}
	if got := p.Add(Pt(1, 1)); got != Pt(4, 5) {
		t.Errorf("Add() = %v, want (4, 5)", got)
	}
	if got := p.Sub(Pt(3, 4)); got != Pt(0, 0) {
		t.Errorf("Sub() = %v, want (0, 0)", got)
	}
	if got := p.Mul(2); got != Pt(6, 8) {
		t.Errorf("Mul() = %v, want (6, 8)", got)
	}
	if got := Pt(0, 0).Distance(p); got != 5 {
		t.Errorf("Distance() = %v, want 5", got)
	}
}

func TestNewAnchor(t *testing.T) {
	a := NewAnchor(100, 200)
	if a.X != 100 || a.Y != 200 {
		t.Errorf("NewAnchor() point = (%v, %v), want (100, 200)", a.X, a.Y)
	}
	if a.Segment != NoSegment {
		t.Errorf("NewAnchor() segment = %d, want NoSegment", a.Segment)
	}
}
