// Package data prepares labelled training sets from directories of
// example images.
package data

import (
	"fmt"
	"image"
	"log"
	"time"

	"github.com/jvlmdr/go-cv/feat"
	"github.com/nfnt/resize"

	"github.com/DaHoC/trainHOG/svmlight"
)

// Extract computes the feature transform of the window in each image file
// and returns one sparse sample per window, all with the given label.
// Files which cannot be read, or whose size is wrong when resizeOK is not
// set, are skipped with a warning.
// With addFlip, a horizontally mirrored sample is added for every window.
func Extract(phi feat.Image, files []string, label float64, size image.Point, resizeOK, addFlip bool, interp resize.InterpolationFunction) ([]svmlight.Sample, error) {
	samples := make([]svmlight.Sample, 0, len(files))
	for i, file := range files {
		log.Printf("load image %d of %d: %s", i+1, len(files), file)
		t := time.Now()
		im, err := Window(file, size, resizeOK, interp)
		if err != nil {
			log.Printf("load image: %s, error: %v", file, err)
			continue
		}
		durLoad := time.Since(t)
		var durFlip, durFeat time.Duration
		flips := []bool{false}
		if addFlip {
			flips = []bool{false, true}
		}
		for _, flip := range flips {
			pix := im
			t = time.Now()
			if flip {
				pix = flipImageX(im)
			}
			durFlip += time.Since(t)
			t = time.Now()
			x, err := phi.Apply(pix)
			if err != nil {
				return nil, fmt.Errorf("feature transform: %s: %v", file, err)
			}
			durFeat += time.Since(t)
			samples = append(samples, svmlight.Sample{
				Label:    label,
				Features: svmlight.SparseVector(x.Elems),
			})
		}
		log.Printf(
			"load %.3gms, flip %.3gms, feat %.3gms",
			durLoad.Seconds()*1000, durFlip.Seconds()*1000, durFeat.Seconds()*1000,
		)
	}
	return samples, nil
}

func flipImageX(src image.Image) image.Image {
	r := src.Bounds()
	dst := image.NewRGBA64(r)
	q := dst.Bounds()
	for j := 0; j < q.Dy(); j++ {
		for i := 0; i < q.Dx(); i++ {
			dst.Set(q.Min.X+i, q.Min.Y+j, src.At(r.Max.X-1-i, r.Min.Y+j))
		}
	}
	return dst
}

// BuildProblem gathers positive then negative samples into one problem.
// The order of samples within each class is preserved.
func BuildProblem(pos, neg []svmlight.Sample) *svmlight.Problem {
	samples := make([]svmlight.Sample, 0, len(pos)+len(neg))
	samples = append(samples, pos...)
	samples = append(samples, neg...)
	return svmlight.NewProblem(samples)
}
