package seamcarve

import (
	"image"
	"os"

	pigo "github.com/esimov/pigo/core"
	"github.com/pkg/errors"
)

// Face detection settings. Only detections scoring above minFaceScore are kept.
const (
	minFaceSize  = 20
	minFaceScore = 5.0
	faceIoU      = 0.2
)

// LoadClassifier unpacks the pigo face classification cascade stored at path.
func LoadClassifier(path string) (*pigo.Pigo, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "could not read the face classifier")
	}

	// Unpack the binary file. This will return the number of cascade trees,
	// the tree depth, the threshold and the prediction from tree's leaf nodes.
	classifier, err := pigo.NewPigo().Unpack(data)
	if err != nil {
		return nil, errors.Wrap(err, "error unpacking the cascade file")
	}
	return classifier, nil
}

// detectFaces returns the bounding boxes of the faces found in img.
func (p *Processor) detectFaces(img *image.NRGBA) []image.Rectangle {
	dx, dy := img.Bounds().Dx(), img.Bounds().Dy()

	cParams := pigo.CascadeParams{
		MinSize:     minFaceSize,
		MaxSize:     max(dx, dy),
		ShiftFactor: 0.1,
		ScaleFactor: 1.1,

		ImageParams: pigo.ImageParams{
			Pixels: rgbToGrayscale(img),
			Rows:   dy,
			Cols:   dx,
			Dim:    dx,
		},
	}

	// Run the classifier over the obtained leaf nodes and return the detection results.
	// The result contains quadruplets representing the row, column, scale and detection score.
	faces := p.FaceDetector.RunCascade(cParams, p.FaceAngle)

	// Calculate the intersection over union (IoU) of two clusters.
	faces = p.FaceDetector.ClusterDetections(faces, faceIoU)

	var rects []image.Rectangle
	for _, face := range faces {
		if face.Q > minFaceScore {
			rects = append(rects, image.Rect(
				face.Col-face.Scale/2,
				face.Row-face.Scale/2,
				face.Col+face.Scale/2,
				face.Row+face.Scale/2,
			))
		}
	}
	return rects
}
