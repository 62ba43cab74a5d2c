package seamcarve

import (
	"image"
	"image/color"
	"io"
	"math"

	"github.com/disintegration/imaging"
	pigo "github.com/esimov/pigo/core"
	"github.com/pkg/errors"
	"github.com/seamkit/seamcarve/imop"
	"github.com/seamkit/seamcarve/utils"
)

const (
	// DefaultTint is the color of the protected regions drawn in debug mode.
	DefaultTint = "#ff0000"

	// debugAlpha is the opacity of a fully protected pixel in the debug overlay.
	debugAlpha = 0xa0
)

// Processor options
type Processor struct {
	// NewWidth and NewHeight are the requested dimensions. Zero keeps the
	// original dimension. With Percentage set, they are the percentages by
	// which the image is reduced.
	NewWidth   int
	NewHeight  int
	Percentage bool
	// Square reduces the image to a square whose side is the smaller of
	// NewWidth and NewHeight.
	Square bool
	// Scale rescales the image proportionally before carving when it is
	// reduced on both axes, so that only the remaining pixels are carved.
	Scale bool

	FaceDetect   bool
	FaceAngle    float64
	Classifier   string
	FaceDetector *pigo.Pigo

	// MaskPath points to an image whose white regions are protected.
	// Mask is the decoded mask image, loaded from MaskPath by Prepare.
	MaskPath string
	Mask     image.Image
	// Feather is the blur radius applied to the mask image.
	Feather float64

	// Debug draws the protected regions over the resized image in the Tint color.
	Debug bool
	Tint  string

	// Format is the file extension used to encode the result when the
	// destination is not a named file. It defaults to JPEG.
	Format string

	// EnergyDump receives the energy map of the source image in the
	// matrix text format.
	EnergyDump io.Writer

	// OnSeam is called with every seam right before it is removed.
	OnSeam func(Seam)
}

// Prepare loads the face classifier and the mask image referenced by the
// options. Both are loaded only once and are read only afterwards, so
// a prepared Processor can be shared by concurrent workers.
func (p *Processor) Prepare() error {
	if p.FaceDetect && p.FaceDetector == nil {
		if p.Classifier == "" {
			return errors.New("a cascade classifier is required for face detection")
		}
		classifier, err := LoadClassifier(p.Classifier)
		if err != nil {
			return err
		}
		p.FaceDetector = classifier
	}

	if p.MaskPath != "" && p.Mask == nil {
		mask, err := decodeImg(p.MaskPath)
		if err != nil {
			return errors.Wrap(err, "could not load the mask image")
		}
		p.Mask = mask
	}
	return nil
}

// Targets validates the requested dimensions against an image of the given
// size and returns the final width and height.
func (p *Processor) Targets(width, height int) (int, int, error) {
	nw, nh := p.NewWidth, p.NewHeight
	if nw < 0 || nh < 0 {
		return 0, 0, errors.Errorf("invalid dimensions %dx%d", nw, nh)
	}

	// Use the Percentage flag only for shrinking the image.
	if p.Percentage {
		if nw >= 100 || nh >= 100 {
			return 0, 0, errors.New("cannot use the percentage flag for image enlargement")
		}
		if nw > 0 {
			nw = width - int(float64(width)*float64(nw)/100)
		}
		if nh > 0 {
			nh = height - int(float64(height)*float64(nh)/100)
		}
	}

	if p.Square {
		if nw == 0 || nh == 0 {
			return 0, 0, errors.New("please provide a new WIDTH and HEIGHT when using the square option")
		}
		nw = utils.Min(nw, nh)
		nh = nw
	}

	if nw == 0 {
		nw = width
	}
	if nh == 0 {
		nh = height
	}
	if nw > width || nh > height {
		return 0, 0, errors.Errorf("cannot enlarge the image from %dx%d to %dx%d", width, height, nw, nh)
	}
	return nw, nh, nil
}

// Resize carves img down to the requested dimensions.
func (p *Processor) Resize(img *image.NRGBA) (image.Image, error) {
	img = imgToNRGBA(img)
	b := img.Bounds()

	nw, nh, err := p.Targets(b.Dx(), b.Dy())
	if err != nil {
		return nil, err
	}

	var tint color.NRGBA
	if p.Debug {
		hex := p.Tint
		if hex == "" {
			hex = DefaultTint
		}
		if tint, err = utils.HexToRGBA(hex); err != nil {
			return nil, errors.Wrap(err, "invalid debug color")
		}
	}

	if p.Scale && nw < b.Dx() && nh < b.Dy() {
		img = rescale(img, nw, nh)
	}

	src := FromImage(img)
	if p.EnergyDump != nil {
		if err := ComputeEnergyMatrix(src).Print(p.EnergyDump); err != nil {
			return nil, errors.Wrap(err, "could not write the energy map")
		}
	}

	c := NewCarver(p.protectionMask(img))
	c.OnSeam = p.OnSeam
	c.Carve(src, nw, nh)

	res := src.NRGBA()
	if p.Debug && c.Mask != nil {
		drawMask(res, c.Mask, tint)
	}
	return res, nil
}

// rescale resizes img proportionally to the smallest size still covering
// the target dimensions.
// Example: input: 5000x2500, target: 1920x1080, rescaled: 2160x1080.
func rescale(img *image.NRGBA, nw, nh int) *image.NRGBA {
	w, h := float64(img.Bounds().Dx()), float64(img.Bounds().Dy())
	ratio := math.Max(float64(nw)/w, float64(nh)/h)

	sw := utils.Max(nw, int(math.Round(w*ratio)))
	sh := utils.Max(nh, int(math.Round(h*ratio)))

	return imaging.Resize(img, sw, sh, imaging.Lanczos)
}

// drawMask multiplies the protected regions of dst with the tint color.
// The opacity follows the protection weight of every pixel.
func drawMask(dst *image.NRGBA, mask *Matrix, tint color.NRGBA) {
	layer := image.NewNRGBA(dst.Bounds())
	for row := 0; row < mask.height; row++ {
		for col := 0; col < mask.width; col++ {
			w := mask.Get(row, col)
			if w <= 0 {
				continue
			}
			alpha := utils.Min(w, ProtectWeight) * debugAlpha / ProtectWeight
			layer.SetNRGBA(col, row, color.NRGBA{R: tint.R, G: tint.G, B: tint.B, A: uint8(alpha)})
		}
	}

	blend := imop.NewBlend()
	blend.Set(imop.Multiply)
	imop.InitOp().Draw(nil, layer, dst, blend)
}

// Process decodes the image from r, resizes it and encodes the result into w.
// The output format is taken from the destination file extension.
func (p *Processor) Process(r io.Reader, w io.Writer) error {
	if err := p.Prepare(); err != nil {
		return err
	}

	src, _, err := image.Decode(r)
	if err != nil {
		return errors.Wrap(err, "could not decode the source image")
	}

	res, err := p.Resize(imgToNRGBA(src))
	if err != nil {
		return err
	}
	return errors.Wrap(encodeImg(w, res, p.outputExt(w)), "could not encode the resized image")
}
