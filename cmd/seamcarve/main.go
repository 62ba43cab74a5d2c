package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"runtime"
	"time"

	"github.com/seamkit/seamcarve"
	"github.com/seamkit/seamcarve/utils"
)

const helpBanner = `
┌─┐┌─┐┌─┐┌┬┐┌─┐┌─┐┬─┐┬  ┬┌─┐
└─┐├┤ ├─┤│││├─┘├─┤├┬┘└┐┌┘├┤
└─┘└─┘┴ ┴┴ ┴└─┘┴ ┴┴└─ └┘ └─┘

Content aware image shrinking.
    Version: %s

`

// pipeName is the file name that indicates stdin/stdout is being used.
const pipeName = "-"

// Version indicates the current build version.
var Version string

var (
	// Flags
	source      = flag.String("in", pipeName, "Source")
	destination = flag.String("out", pipeName, "Destination")
	newWidth    = flag.Int("width", 0, "New width")
	newHeight   = flag.Int("height", 0, "New height")
	percentage  = flag.Bool("perc", false, "Reduce image by percentage")
	square      = flag.Bool("square", false, "Reduce image to square dimensions")
	scale       = flag.Bool("scale", false, "Proportional scaling")
	faceDetect  = flag.Bool("face", false, "Use face detection")
	faceAngle   = flag.Float64("angle", 0.0, "Plane rotated faces angle")
	cascade     = flag.String("cc", "", "Cascade classifier")
	maskPath    = flag.String("mask", "", "Mask file path for protecting image regions")
	feather     = flag.Float64("feather", 0, "Mask blur radius")
	debug       = flag.Bool("debug", false, "Show the protected regions")
	tint        = flag.String("tint", seamcarve.DefaultTint, "Color of the protected regions in debug mode")
	energyPath  = flag.String("energy", "", "Write the energy map of the source image to this file")
	format      = flag.String("format", ".jpg", "Output format when writing to stdout")
	workers     = flag.Int("conc", runtime.NumCPU(), "Number of files to process concurrently")
)

func main() {
	log.SetFlags(0)

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, helpBanner, Version)
		flag.PrintDefaults()
	}
	flag.Parse()

	if *newWidth == 0 && *newHeight == 0 {
		flag.Usage()
		log.Fatal(fmt.Sprintf("%s%s",
			utils.DecorateText("\nPlease provide a width or a height for image rescaling!", utils.ErrorMessage),
			utils.DefaultColor,
		))
	}
	if *faceDetect && len(*cascade) == 0 {
		log.Fatal(utils.DecorateText("Please specify a face classifier in case you are using the -face flag!", utils.ErrorMessage))
	}

	proc := &seamcarve.Processor{
		NewWidth:   *newWidth,
		NewHeight:  *newHeight,
		Percentage: *percentage,
		Square:     *square,
		Scale:      *scale,
		FaceDetect: *faceDetect,
		FaceAngle:  *faceAngle,
		Classifier: *cascade,
		MaskPath:   *maskPath,
		Feather:    *feather,
		Debug:      *debug,
		Tint:       *tint,
		Format:     *format,
	}

	if *energyPath != "" {
		f, err := os.Create(*energyPath)
		if err != nil {
			log.Fatal(fmt.Sprintf("%s %s",
				utils.DecorateText("Unable to create the energy map file:", utils.ErrorMessage),
				utils.DecorateText(err.Error(), utils.DefaultMessage),
			))
		}
		defer f.Close()
		proc.EnergyDump = f
	}

	spinnerText := fmt.Sprintf("%s %s",
		utils.DecorateText("⚡ SEAMCARVE", utils.StatusMessage),
		utils.DecorateText("is resizing the image...", utils.DefaultMessage))

	op := &seamcarve.Ops{
		Src:      *source,
		Dst:      *destination,
		PipeName: pipeName,
		Workers:  *workers,
		Spinner:  utils.NewSpinner(spinnerText, time.Millisecond*200, true),
	}

	if err := proc.Execute(op); err != nil {
		op.Spinner.RestoreCursor()
		fmt.Fprintln(os.Stderr, utils.DecorateText(err.Error(), utils.ErrorMessage))
		os.Exit(1)
	}
}
