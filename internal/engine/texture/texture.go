// Package texture loads the image sampled across the surface mesh.
package texture

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	_ "image/jpeg"
	_ "image/png"
	"os"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Load decodes a PNG, JPEG, BMP, TIFF or WebP file into RGBA pixels.
func Load(path string) (*image.RGBA, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening texture: %w", err)
	}
	defer f.Close()

	img, format, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decoding texture %s: %w", path, err)
	}
	if b := img.Bounds(); b.Empty() {
		return nil, fmt.Errorf("texture %s (%s) is empty", path, format)
	}
	return ToRGBA(img), nil
}

// ToRGBA returns img as an *image.RGBA anchored at the origin, copying only
// when needed.
func ToRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok && rgba.Rect.Min == (image.Point{}) {
		return rgba
	}
	b := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)
	return rgba
}

// Checker colors of the fallback texture.
var (
	CheckerLight = color.RGBA{230, 230, 230, 255}
	CheckerDark  = color.RGBA{60, 60, 60, 255}
)

// checkerCells is the number of cells along each edge.
const checkerCells = 8

// Checkerboard generates a size x size checker texture, used when no
// texture file is configured or the file cannot be read.
func Checkerboard(size int) *image.RGBA {
	if size < checkerCells {
		size = checkerCells
	}
	cell := size / checkerCells

	img := image.NewRGBA(image.Rect(0, 0, size, size))
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			c := CheckerDark
			if (x/cell+y/cell)%2 == 0 {
				c = CheckerLight
			}
			img.SetRGBA(x, y, c)
		}
	}
	return img
}
