package data

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"github.com/jvlmdr/go-cv/imsamp"
	"github.com/nfnt/resize"
)

func loadImage(name string) (image.Image, error) {
	file, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	im, _, err := image.Decode(file)
	if err != nil {
		return nil, err
	}
	return im, nil
}

func loadImageSize(name string) (image.Point, error) {
	file, err := os.Open(name)
	if err != nil {
		return image.ZP, err
	}
	defer file.Close()
	cfg, _, err := image.DecodeConfig(file)
	if err != nil {
		return image.ZP, err
	}
	return image.Pt(cfg.Width, cfg.Height), nil
}

// Window loads an image file and returns its window of the given size.
// Images which are already the right size are returned as-is.
// Otherwise the image is resized if resizeOK is set,
// or an error naming the file and both sizes is returned if not.
func Window(file string, size image.Point, resizeOK bool, interp resize.InterpolationFunction) (image.Image, error) {
	if !resizeOK {
		// Reject before decoding the pixels.
		dims, err := loadImageSize(file)
		if err != nil {
			return nil, err
		}
		if !dims.Eq(size) {
			return nil, fmt.Errorf("image %s: size %dx%d, want %dx%d", file, dims.X, dims.Y, size.X, size.Y)
		}
	}
	im, err := loadImage(file)
	if err != nil {
		return nil, err
	}
	bnds := im.Bounds()
	if bnds.Dx() == size.X && bnds.Dy() == size.Y {
		rect := image.Rectangle{bnds.Min, bnds.Min.Add(size)}
		return imsamp.Rect(im, rect, imsamp.Continue), nil
	}
	return resize.Resize(uint(size.X), uint(size.Y), im, interp), nil
}
