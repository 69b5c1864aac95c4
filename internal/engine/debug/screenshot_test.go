package debug

import (
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func fixedClock(ts time.Time) func() time.Time {
	return func() time.Time { return ts }
}

func TestFlipRows(t *testing.T) {
	// Two rows, bottom first: red then cyan.
	pixels := []byte{
		255, 0, 0, 255,
		0, 255, 255, 255,
	}
	img, err := FlipRows(pixels, 1, 2)
	if err != nil {
		t.Fatalf("FlipRows: %v", err)
	}

	if got := img.RGBAAt(0, 0); got != (color.RGBA{0, 255, 255, 255}) {
		t.Errorf("top row = %v, want cyan", got)
	}
	if got := img.RGBAAt(0, 1); got != (color.RGBA{255, 0, 0, 255}) {
		t.Errorf("bottom row = %v, want red", got)
	}
}

func TestFlipRowsRejectsBadInput(t *testing.T) {
	tests := []struct {
		name          string
		pixels        []byte
		width, height int
	}{
		{"short data", make([]byte, 7), 1, 2},
		{"zero width", nil, 0, 2},
		{"negative height", nil, 2, -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := FlipRows(tt.pixels, tt.width, tt.height); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestCaptureFromPixelsWritesPNG(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "shots")
	sc := NewScreenshotCapture(dir, "anaglyph")
	sc.now = fixedClock(time.Date(2024, 3, 1, 12, 30, 45, 0, time.UTC))

	pixels := make([]byte, 4*3*4)
	for i := 0; i < len(pixels); i += 4 {
		pixels[i], pixels[i+3] = 255, 255
	}

	path, err := sc.CaptureFromPixels(pixels, 4, 3)
	if err != nil {
		t.Fatalf("CaptureFromPixels: %v", err)
	}
	want := filepath.Join(dir, "anaglyph_2024-03-01_12-30-45.png")
	if path != want {
		t.Errorf("path = %s, want %s", path, want)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open written file: %v", err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode written file: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 4 || b.Dy() != 3 {
		t.Errorf("decoded size = %dx%d, want 4x3", b.Dx(), b.Dy())
	}
	r, g, _, _ := img.At(2, 1).RGBA()
	if r != 0xffff || g != 0 {
		t.Errorf("pixel should be red, got r=%x g=%x", r, g)
	}
}

func TestGenerateFilenameSameSecond(t *testing.T) {
	sc := NewScreenshotCapture("", "shot")
	sc.now = fixedClock(time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC))

	first := sc.GenerateFilename()
	second := sc.GenerateFilename()
	if first != "shot_2024-01-02_03-04-05.png" {
		t.Errorf("first = %s", first)
	}
	if second != "shot_2024-01-02_03-04-05_1.png" {
		t.Errorf("second = %s", second)
	}

	sc.now = fixedClock(time.Date(2024, 1, 2, 3, 4, 6, 0, time.UTC))
	if third := sc.GenerateFilename(); third != "shot_2024-01-02_03-04-06.png" {
		t.Errorf("third = %s", third)
	}
}
