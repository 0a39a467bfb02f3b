package layout

import (
	"image"
	"testing"
)

func TestCenterSquare(t *testing.T) {
	tests := []struct {
		name string
		in   image.Rectangle
		want image.Rectangle
	}{
		{"landscape", image.Rect(0, 0, 1920, 1080), image.Rect(420, 0, 1500, 1080)},
		{"portrait", image.Rect(0, 0, 300, 500), image.Rect(0, 100, 300, 400)},
		{"square", image.Rect(10, 10, 110, 110), image.Rect(10, 10, 110, 110)},
		{"inverted", image.Rect(200, 100, 0, 0), image.Rect(50, 0, 150, 100)},
		{"empty", image.Rectangle{}, image.Rectangle{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CenterSquare(tt.in); got != tt.want {
				t.Errorf("CenterSquare(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestInset(t *testing.T) {
	got := Inset(image.Rect(0, 0, 100, 50), 10)
	if want := image.Rect(10, 10, 90, 40); got != want {
		t.Errorf("Inset = %v, want %v", got, want)
	}
	if got := Inset(image.Rect(0, 0, 10, 10), 0); got != image.Rect(0, 0, 10, 10) {
		t.Errorf("Inset with zero padding changed rect: %v", got)
	}
	if got := Inset(image.Rect(0, 0, 10, 10), 8); got != image.Rect(2, 2, 8, 8) {
		t.Errorf("Inset past center = %v, want normalized (2,2)-(8,8)", got)
	}
}

func TestFit(t *testing.T) {
	tests := []struct {
		name       string
		srcW, srcH int
		dst        image.Rectangle
		want       image.Rectangle
	}{
		{"same aspect", 1920, 1080, image.Rect(0, 0, 1280, 720), image.Rect(0, 0, 1280, 720)},
		{"pillarbox", 1920, 1080, image.Rect(0, 0, 1024, 768), image.Rect(0, 96, 1024, 672)},
		{"letterbox", 100, 200, image.Rect(0, 0, 400, 100), image.Rect(175, 0, 225, 100)},
		{"empty source", 0, 10, image.Rect(5, 5, 50, 50), image.Rect(5, 5, 5, 5)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Fit(tt.srcW, tt.srcH, tt.dst); got != tt.want {
				t.Errorf("Fit(%d, %d, %v) = %v, want %v", tt.srcW, tt.srcH, tt.dst, got, tt.want)
			}
		})
	}
}
