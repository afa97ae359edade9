package main

import (
	"image"
	"image/color"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"golang.org/x/image/bmp"

	"github.com/lixenwraith/bitflood/bitplane"
)

// Export palette
var (
	colorWall     = color.RGBA{0x10, 0x10, 0x18, 0xff}
	colorOccupied = color.RGBA{0xa0, 0xa0, 0xa0, 0xff}
	colorFilled   = color.RGBA{0x20, 0x80, 0xff, 0xff}
)

// planeImage draws each cell as a scale x scale block; fill may be nil
func planeImage(occ, fill *bitplane.Plane, scale int) *image.RGBA {
	dim := occ.Dim()
	img := image.NewRGBA(image.Rect(0, 0, dim*scale, dim*scale))

	for y := 0; y < dim; y++ {
		for x := 0; x < dim; x++ {
			c := colorWall
			switch {
			case fill != nil && fill.Get(x, y):
				c = colorFilled
			case occ.Get(x, y):
				c = colorOccupied
			}
			for py := y * scale; py < (y+1)*scale; py++ {
				for px := x * scale; px < (x+1)*scale; px++ {
					img.SetRGBA(px, py, c)
				}
			}
		}
	}
	return img
}

func writeBMP(path string, img image.Image) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return errors.Wrap(err, "create output dir")
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "create image")
	}
	if err := bmp.Encode(f, img); err != nil {
		f.Close()
		return errors.Wrapf(err, "encode %s", path)
	}
	return errors.Wrapf(f.Close(), "close %s", path)
}
