package main

/*
This command-line tool runs a trained sliding-window detector over images
and prints the detected windows with their scores.

Each image is searched at multiple scales. Windows whose raw score clears
the model threshold survive non-maximum suppression and are written to
stdout as

	file	x0,y0,x1,y1	score

with coordinates in pixels of the original image.
*/

import (
	"flag"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"log"
	"os"
	"path"

	"github.com/jvlmdr/go-cv/detect"
	"github.com/jvlmdr/go-cv/feat"
	"github.com/jvlmdr/go-cv/featset"
	"github.com/jvlmdr/go-cv/imsamp"
	"github.com/jvlmdr/go-file/fileutil"
	"github.com/nfnt/resize"

	"github.com/DaHoC/trainHOG/detector"
)

func init() {
	flag.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage:")
		fmt.Fprintln(os.Stderr, path.Base(os.Args[0]), "[flags] image...")
		fmt.Fprintln(os.Stderr)
		fmt.Fprintln(os.Stderr, "Detects objects in images using a trained template.")
		fmt.Fprintln(os.Stderr)
		fmt.Fprintln(os.Stderr, "Options:")
		flag.PrintDefaults()
		fmt.Fprintln(os.Stderr)
	}
}

func main() {
	var (
		tmplFile  = flag.String("tmpl", "genfiles/tmpl.gob", "Sliding-window template from the training tool")
		featFile  = flag.String("feat", "genfiles/feat.json", "Feature transform used for training")
		detFile   = flag.String("detector", "genfiles/descriptorvector.dat", "Dense detector weights with trailing bias")
		hitThresh = flag.Float64("hit-thresh", 0, "Extra margin above the model threshold for a window to count as a hit")

		// Search configuration.
		pyrStep   = flag.Float64("pyr-step", 1.07, "Geometric scale steps in image pyramid")
		maxScale  = flag.Float64("max-scale", 2, "Do not zoom in further than this")
		interpID  = flag.Int("interp", 1, "Interpolation for multi-scale search (0=nearest, 1=linear, 2=cubic)")
		margin    = flag.Int("margin", 0, "Margin to add to image before taking features")
		localMax  = flag.Bool("local-max", true, "Suppress detections which are less than a neighbor?")
		detsPerIm = flag.Int("dets-per-im", 0, "Maximum number of detections per image (zero means no limit)")
		maxIOU    = flag.Float64("max-iou", 0.3, "Intersection-over-union threshold for non-max suppression")
	)
	flag.Parse()
	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(1)
	}

	tmpl := new(detect.FeatTmpl)
	if err := fileutil.LoadExt(*tmplFile, tmpl); err != nil {
		log.Fatalln("load template:", err)
	}
	phi := new(featset.ImageMarshaler)
	if err := fileutil.LoadJSON(*featFile, phi); err != nil {
		log.Fatalln("load feature transform:", err)
	}
	vec, err := detector.Load(*detFile)
	if err != nil {
		log.Fatalln("load detector:", err)
	}
	// The template scores windows by raw dot product, without the bias.
	minScore := vec.Threshold() + *hitThresh
	log.Printf("detector: %d weights, min score %g", vec.Len(), minScore)

	searchOpts := detect.MultiScaleOpts{
		MaxScale:  *maxScale,
		PyrStep:   *pyrStep,
		Interp:    resize.InterpolationFunction(*interpID),
		Transform: phi,
		Pad:       feat.Pad{feat.UniformMargin(*margin), imsamp.Continue},
		DetFilter: detect.DetFilter{
			LocalMax: *localMax,
			MinScore: minScore,
		},
		SupprFilter: detect.SupprFilter{
			MaxNum:  *detsPerIm,
			Overlap: func(a, b image.Rectangle) bool { return detect.IOU(a, b) > *maxIOU },
		},
	}

	for _, file := range flag.Args() {
		im, err := loadImage(file)
		if err != nil {
			log.Printf("load image: %s, error: %v", file, err)
			continue
		}
		dets, dur, err := detect.MultiScale(im, tmpl.Scorer, tmpl.PixelShape, searchOpts)
		if err != nil {
			log.Fatalln("search:", err)
		}
		log.Printf("resize %v, feat %v, slide %v, suppr %v", dur.Resize, dur.Feat, dur.Slide, dur.Suppr)
		log.Printf("%s: %d detections", file, len(dets))
		for _, det := range dets {
			r := det.Rect
			fmt.Printf("%s\t%d,%d,%d,%d\t%g\n", file, r.Min.X, r.Min.Y, r.Max.X, r.Max.Y, det.Score)
		}
	}
}

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
