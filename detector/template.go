package detector

import (
	"fmt"
	"image"

	"github.com/jvlmdr/go-cv/detect"
	"github.com/jvlmdr/go-cv/rimg64"
	"github.com/jvlmdr/go-cv/slide"
)

// Template packs the detector into a sliding-window template.
// featsize and channels give the feature-map dimensions of the window, so
// that len(Weights) = featsize.X * featsize.Y * channels. region describes
// the window in pixels, with the interior rectangle of the object inside
// any padding.
func Template(v *Vector, featsize image.Point, channels int, region detect.PadRect) (*detect.FeatTmpl, error) {
	if n := featsize.X * featsize.Y * channels; len(v.Weights) != n {
		return nil, fmt.Errorf("want %d weights for %dx%dx%d template, got %d",
			n, featsize.X, featsize.Y, channels, len(v.Weights))
	}
	return &detect.FeatTmpl{
		Scorer: &slide.AffineScorer{
			Tmpl: &rimg64.Multi{
				Width:    featsize.X,
				Height:   featsize.Y,
				Channels: channels,
				Elems:    v.Weights,
			},
		},
		PixelShape: region,
	}, nil
}
