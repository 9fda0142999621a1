package core

import (
	"errors"
	"image/color"
	"testing"
)

func TestParseHex(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		in      string
		want    color.RGBA
		wantErr bool
	}{
		{name: "six digit", in: "#ff8000", want: color.RGBA{R: 255, G: 128, B: 0, A: 255}},
		{name: "uppercase", in: "#FF8000", want: color.RGBA{R: 255, G: 128, B: 0, A: 255}},
		{name: "three digit", in: "#f80", want: color.RGBA{R: 255, G: 136, B: 0, A: 255}},
		{name: "black", in: "#000000", want: color.RGBA{A: 255}},
		{name: "missing hash", in: "ff8000", wantErr: true},
		{name: "bad digit", in: "#ff80zz", wantErr: true},
		{name: "wrong length", in: "#ff80", wantErr: true},
		{name: "empty", in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := ParseHex(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseHex(%q) expected error, got %v", tt.in, got)
				}

				if !errors.Is(err, ErrInvalidColor) {
					t.Errorf("ParseHex(%q) error = %v, want ErrInvalidColor", tt.in, err)
				}

				return
			}

			if err != nil {
				t.Fatalf("ParseHex(%q) unexpected error: %v", tt.in, err)
			}

			if got != tt.want {
				t.Errorf("ParseHex(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestBlendEndpointsExact(t *testing.T) {
	t.Parallel()

	c1 := color.RGBA{R: 12, G: 34, B: 56, A: 255}
	c2 := color.RGBA{R: 200, G: 100, B: 50, A: 128}

	if got := Blend(c1, c2, 0); got != c1 {
		t.Errorf("Blend(c1, c2, 0) = %v, want %v", got, c1)
	}

	if got := Blend(c1, c2, 1); got != c2 {
		t.Errorf("Blend(c1, c2, 1) = %v, want %v", got, c2)
	}

	if got := Blend(c1, c2, -0.5); got != c1 {
		t.Errorf("Blend(c1, c2, -0.5) = %v, want %v", got, c1)
	}

	if got := Blend(c1, c2, 1.5); got != c2 {
		t.Errorf("Blend(c1, c2, 1.5) = %v, want %v", got, c2)
	}
}

func TestBlendMidpoint(t *testing.T) {
	t.Parallel()

	c1 := color.RGBA{R: 0, G: 0, B: 0, A: 255}
	c2 := color.RGBA{R: 100, G: 200, B: 50, A: 255}

	got := Blend(c1, c2, 0.5)
	want := color.RGBA{R: 50, G: 100, B: 25, A: 255}

	if got != want {
		t.Errorf("Blend midpoint = %v, want %v", got, want)
	}
}

func TestFormatHexRoundTrip(t *testing.T) {
	t.Parallel()

	c := color.RGBA{R: 1, G: 2, B: 3, A: 255}

	s := FormatHex(c)
	if s != "#010203" {
		t.Fatalf("FormatHex = %q, want %q", s, "#010203")
	}

	back, err := ParseHex(s)
	if err != nil {
		t.Fatalf("ParseHex(%q) unexpected error: %v", s, err)
	}

	if back != c {
		t.Errorf("round trip = %v, want %v", back, c)
	}
}

func TestHSVToRGBPrimaries(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		h    float64
		want color.RGBA
	}{
		{name: "red", h: 0, want: color.RGBA{R: 255, A: 255}},
		{name: "green", h: 120, want: color.RGBA{G: 255, A: 255}},
		{name: "blue", h: 240, want: color.RGBA{B: 255, A: 255}},
		{name: "wrapped red", h: 360, want: color.RGBA{R: 255, A: 255}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := HSVToRGB(tt.h, 1, 1)
			if got != tt.want {
				t.Errorf("HSVToRGB(%v, 1, 1) = %v, want %v", tt.h, got, tt.want)
			}
		})
	}
}
