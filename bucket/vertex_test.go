package bucket

import (
	"encoding/binary"
	"math"
	"testing"
)

func TestPackOpacity(t *testing.T) {
	tests := []struct {
		name    string
		opacity float64
		visible bool
	}{
		{"hidden zero", 0, false},
		{"visible zero", 0, true},
		{"visible full", 1, true},
		{"fading", 0.5, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := PackOpacity(tt.opacity, tt.visible)
			if got := v.TargetVisible(); got != tt.visible {
				t.Errorf("TargetVisible = %v, want %v", got, tt.visible)
			}
			if got := v.Opacity(); math.Abs(got-tt.opacity) > 1.0/127 {
				t.Errorf("Opacity = %v, want %v within 1/127", got, tt.opacity)
			}
		})
	}
}

func TestPackOpacityClamps(t *testing.T) {
	if got := PackOpacity(2, true).Opacity(); got != 1 {
		t.Errorf("Opacity = %v, want clamped 1", got)
	}
	if got := PackOpacity(-1, false).Opacity(); got != 0 {
		t.Errorf("Opacity = %v, want clamped 0", got)
	}
}

func TestLayoutVertexBytes(t *testing.T) {
	var a LayoutVertexArray
	a.Append(LayoutVertex{X: -1, Y: 2, OffsetX: -640, OffsetY: 64, TexX: 100, TexY: 200, SizeX: 16, SizeY: 16})
	a.Append(LayoutVertex{})

	buf := a.Bytes()
	if len(buf) != 2*layoutVertexStride {
		t.Fatalf("len = %d, want %d", len(buf), 2*layoutVertexStride)
	}
	if got := int16(binary.LittleEndian.Uint16(buf[0:])); got != -1 {
		t.Errorf("X = %d, want -1", got)
	}
	if got := int16(binary.LittleEndian.Uint16(buf[4:])); got != -640 {
		t.Errorf("OffsetX = %d, want -640", got)
	}
	if got := binary.LittleEndian.Uint16(buf[8:]); got != 100 {
		t.Errorf("TexX = %d, want 100", got)
	}
}

func TestDynamicVertexBytes(t *testing.T) {
	var a DynamicVertexArray
	a.Append(DynamicVertex{X: 1.5, Y: -2, Packed: 140})

	buf := a.Bytes()
	if len(buf) != dynamicVertexStride {
		t.Fatalf("len = %d, want %d", len(buf), dynamicVertexStride)
	}
	if got := math.Float32frombits(binary.LittleEndian.Uint32(buf[8:])); got != 140 {
		t.Errorf("Packed = %v, want 140", got)
	}
}

func TestIndexBytes(t *testing.T) {
	var a TriangleIndexArray
	a.Append(0, 1, 2)

	buf := a.Bytes()
	if len(buf) != 6 {
		t.Fatalf("len = %d, want 6", len(buf))
	}
	if got := binary.LittleEndian.Uint16(buf[4:]); got != 2 {
		t.Errorf("index 2 = %d, want 2", got)
	}
}
