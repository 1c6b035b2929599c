package utils

import (
	"math"
	"testing"
)

const epsilon = 1e-9

func TestEasingEndpoints(t *testing.T) {
	tests := []struct {
		name string
		fn   func(float64) float64
	}{
		{"EaseOutCubic", EaseOutCubic},
		{"EaseInCubic", EaseInCubic},
		{"EaseOutQuad", EaseOutQuad},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.fn(0); math.Abs(got) > epsilon {
				t.Errorf("%s(0) = %v, want 0", tt.name, got)
			}
			if got := tt.fn(1); math.Abs(got-1) > epsilon {
				t.Errorf("%s(1) = %v, want 1", tt.name, got)
			}

			// 单调不减
			prev := tt.fn(0)
			for i := 1; i <= 100; i++ {
				v := tt.fn(float64(i) / 100)
				if v < prev-epsilon {
					t.Fatalf("%s 在 t=%.2f 处递减: %v < %v", tt.name, float64(i)/100, v, prev)
				}
				prev = v
			}
		})
	}
}

func TestEasingMidpoint(t *testing.T) {
	tests := []struct {
		name string
		got  float64
		want float64
	}{
		{"EaseOutCubic", EaseOutCubic(0.5), 0.875},
		{"EaseInCubic", EaseInCubic(0.5), 0.125},
		{"EaseOutQuad", EaseOutQuad(0.5), 0.75},
	}

	for _, tt := range tests {
		if math.Abs(tt.got-tt.want) > epsilon {
			t.Errorf("%s(0.5) = %v, want %v", tt.name, tt.got, tt.want)
		}
	}
}

func TestLerp(t *testing.T) {
	tests := []struct {
		a, b, t float64
		want    float64
	}{
		{0, 360, 0, 0},
		{0, 360, 1, 360},
		{90, 450, 0.5, 270},
		{10, -10, 0.25, 5},
	}

	for _, tt := range tests {
		if got := Lerp(tt.a, tt.b, tt.t); math.Abs(got-tt.want) > epsilon {
			t.Errorf("Lerp(%v, %v, %v) = %v, want %v", tt.a, tt.b, tt.t, got, tt.want)
		}
	}
}

func TestClamp01(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{-0.5, 0},
		{0, 0},
		{0.3, 0.3},
		{1, 1},
		{2.5, 1},
	}

	for _, tt := range tests {
		if got := Clamp01(tt.in); got != tt.want {
			t.Errorf("Clamp01(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
