package main

/*
This command-line tool trains a sliding-window detector from directories
of positive and negative example images.

The feature transform of every example window is written to a file in
SVMlight sparse format, read back, and handed to the chosen training
backend. The support vectors of the trained model are collapsed into a
single dense weight vector, which is saved both as a plain text
descriptor and as a sliding-window template for the detection tool.
*/

import (
	"encoding/json"
	"flag"
	"fmt"
	"image"
	"log"
	"os"
	"path"
	"path/filepath"

	"github.com/jvlmdr/go-cv/detect"
	"github.com/jvlmdr/go-cv/featset"
	"github.com/jvlmdr/go-cv/hog"
	"github.com/jvlmdr/go-file/fileutil"
	"github.com/nfnt/resize"

	"github.com/DaHoC/trainHOG/data"
	"github.com/DaHoC/trainHOG/detector"
	"github.com/DaHoC/trainHOG/svmlight"
	"github.com/DaHoC/trainHOG/trainer"
)

func init() {
	flag.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage:")
		fmt.Fprintln(os.Stderr, path.Base(os.Args[0]), "[flags]")
		fmt.Fprintln(os.Stderr)
		fmt.Fprintln(os.Stderr, "Trains a detector from positive and negative example images.")
		fmt.Fprintln(os.Stderr)
		fmt.Fprintln(os.Stderr, "Options:")
		flag.PrintDefaults()
		fmt.Fprintln(os.Stderr)
	}
}

func main() {
	var (
		posDir = flag.String("pos", "pos", "Directory of positive example images")
		negDir = flag.String("neg", "neg", "Directory of negative example images")

		// Positive example configuration.
		width    = flag.Int("width", 64, "Pixel width of example windows (before padding)")
		height   = flag.Int("height", 128, "Pixel height of example windows (before padding)")
		pad      = flag.Int("pad", 0, "Dilate example windows to extract features from surrounding context")
		sbin     = flag.Int("sbin", 8, "HOG cell size in pixels")
		featJSON = flag.String("feat", "", "Feature transform (JSON), overrides -sbin")
		resizeOK = flag.Bool("resize", false, "Resize examples of the wrong size instead of skipping them?")
		flip     = flag.Bool("flip", false, "Incorporate horizontally mirrored positives?")
		interpID = flag.Int("interp", 1, "Interpolation for resizing examples (0=nearest, 1=linear, 2=cubic)")

		// Train configuration.
		backend     = flag.String("backend", "linear", fmt.Sprintf("Training backend, one of %v", trainer.Names()))
		machine     = flag.String("svm-type", trainer.EpsilonSVR.String(), "SVM formulation {c_svc, nu_svc, one_class, epsilon_svr, nu_svr} (libsvm backend)")
		cost        = flag.Float64("c", 0.01, "Misclassification cost")
		gamma       = flag.Float64("gamma", 0, "Kernel coefficient (0 derives 1/max feature index)")
		epsilon     = flag.Float64("epsilon", 0.1, "Epsilon in the epsilon-SVR loss function")
		probability = flag.Bool("probability", true, "Estimate probability outputs in backends that support it?")

		// Output files.
		featFile  = flag.String("features-file", "genfiles/features.dat", "Training features (SVMlight sparse format)")
		modelFile = flag.String("model-file", "genfiles/svmlightmodel.dat", "Trained model")
		detFile   = flag.String("detector-file", "genfiles/descriptorvector.dat", "Dense detector weights with trailing bias")
		tmplFile  = flag.String("tmpl-file", "genfiles/tmpl.gob", "Sliding-window template")
		featOut   = flag.String("feat-file", "genfiles/feat.json", "Feature transform used for training")
	)
	flag.Parse()
	if flag.NArg() != 0 {
		flag.Usage()
		os.Exit(1)
	}

	svmType, err := trainer.ParseMachine(*machine)
	if err != nil {
		log.Fatal(err)
	}
	for _, file := range []string{*featFile, *modelFile, *detFile, *tmplFile, *featOut} {
		if err := os.MkdirAll(filepath.Dir(file), 0755); err != nil {
			log.Fatal(err)
		}
	}

	// Geometry of template.
	interior := image.Rect(0, 0, *width, *height).Add(image.Pt(*pad, *pad))
	size := image.Pt(*pad*2+*width, *pad*2+*height)
	region := detect.PadRect{size, interior}

	var phi featset.Image = &featset.ImageMarshaler{"hog", hog.Transform{hog.FGMRConfig(*sbin)}}
	if *featJSON != "" {
		phi = new(featset.ImageMarshaler)
		if err := json.Unmarshal([]byte(*featJSON), phi); err != nil {
			log.Fatalln("load transform:", err)
		}
	}

	posIms, err := data.ListImages(*posDir)
	if err != nil {
		log.Fatalln("list positive images:", err)
	}
	negIms, err := data.ListImages(*negDir)
	if err != nil {
		log.Fatalln("list negative images:", err)
	}
	log.Printf("%d positive images, %d negative images", len(posIms), len(negIms))
	if len(posIms) == 0 {
		log.Fatal("set of positive images is empty")
	}
	if len(negIms) == 0 {
		log.Fatal("set of negative images is empty")
	}

	interp := resize.InterpolationFunction(*interpID)
	pos, err := data.Extract(phi, posIms, 1, size, *resizeOK, *flip, interp)
	if err != nil {
		log.Fatalln("extract positives:", err)
	}
	neg, err := data.Extract(phi, negIms, -1, size, *resizeOK, false, interp)
	if err != nil {
		log.Fatalln("extract negatives:", err)
	}
	log.Printf("%d positive examples, %d negative examples", len(pos), len(neg))
	if len(pos) == 0 {
		log.Fatal("set of positive examples is empty")
	}
	if len(neg) == 0 {
		log.Fatal("set of negative examples is empty")
	}

	// Write the features to disk and read them back, so that the saved file
	// is proven to hold everything the model is trained on.
	trainProb := data.BuildProblem(pos, neg)
	var comment string
	if *backend == "linear" {
		comment = fmt.Sprintf("%d positive and %d negative examples, %d features", len(pos), len(neg), trainProb.MaxIndex)
	}
	log.Println("save training features:", *featFile)
	if err := svmlight.WriteProblemFile(*featFile, trainProb, comment); err != nil {
		log.Fatalln("save features:", err)
	}
	log.Println("load training features:", *featFile)
	trainProb, err = svmlight.ReadProblemFile(*featFile, svmlight.ReadOptions{Comments: *backend == "linear"})
	if err != nil {
		log.Fatalln("load features:", err)
	}

	tr, err := trainer.New(*backend)
	if err != nil {
		log.Fatal(err)
	}
	params := trainer.DefaultParams()
	params.Type = svmType
	params.C = *cost
	params.Gamma = *gamma
	params.Epsilon = *epsilon
	params.Probability = *probability
	log.Printf("train %s backend: %d examples, %d features", *backend, trainProb.Len(), trainProb.MaxIndex)
	model, err := tr.Train(trainProb, params)
	if err != nil {
		log.Fatalln("train:", err)
	}
	log.Println("save model:", *modelFile)
	if err := tr.Save(model, *modelFile); err != nil {
		log.Fatalln("save model:", err)
	}

	vec, skipped, err := detector.Synthesize(model)
	if err != nil {
		log.Fatalln("synthesize detector:", err)
	}
	if skipped > 0 {
		log.Printf("skipped %d out-of-range support vector components", skipped)
	}
	log.Printf("detector: %d weights, threshold %g", vec.Len(), vec.Threshold())
	log.Println("save detector:", *detFile)
	if err := detector.Save(*detFile, vec); err != nil {
		log.Fatalln("save detector:", err)
	}

	featsize := phi.Size(size)
	channels := phi.Channels()
	if dim := featsize.X * featsize.Y * channels; vec.Len() < dim {
		// Indices beyond the last support vector component have zero weight.
		grown := make([]float64, dim)
		copy(grown, vec.Weights)
		vec = &detector.Vector{Weights: grown, Bias: vec.Bias}
	}
	tmpl, err := detector.Template(vec, featsize, channels, region)
	if err != nil {
		log.Fatalln("build template:", err)
	}
	log.Println("save template:", *tmplFile)
	if err := fileutil.SaveExt(*tmplFile, tmpl); err != nil {
		log.Fatalln("save template:", err)
	}
	log.Println("save feature transform:", *featOut)
	if err := fileutil.SaveExt(*featOut, phi); err != nil {
		log.Fatalln("save feature transform:", err)
	}

	evaluate(vec, trainProb)
}

// evaluate scores the training set against the detector vector and prints
// the confusion counts. A window is a hit when its score is positive.
func evaluate(vec *detector.Vector, prob *svmlight.Problem) {
	var tp, fn, fp, tn int
	for _, sample := range prob.Samples {
		hit := vec.ScoreSparse(sample.Features) > 0
		switch {
		case sample.Label > 0 && hit:
			tp++
		case sample.Label > 0:
			fn++
		case hit:
			fp++
		default:
			tn++
		}
	}
	fmt.Printf("true positives %d, false negatives %d\n", tp, fn)
	fmt.Printf("true negatives %d, false positives %d\n", tn, fp)
	if total := tp + fn + fp + tn; total > 0 {
		fmt.Printf("training accuracy %.4g%%\n", float64(tp+tn)/float64(total)*100)
	}
}
