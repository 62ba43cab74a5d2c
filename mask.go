package seamcarve

import (
	"image"

	"github.com/disintegration/imaging"
)

// ProtectWeight is the energy added to a fully protected pixel. It is far
// above the largest energy a pixel can have, so seams only cross protected
// regions when no other path exists.
const ProtectWeight = 1 << 24

// protectionMask builds the per-pixel energy bonus for img out of the detected
// faces and the user supplied mask. It returns nil when nothing is protected.
func (p *Processor) protectionMask(img *image.NRGBA) *Matrix {
	var (
		b    = img.Bounds()
		mask *Matrix
	)
	lazy := func() *Matrix {
		if mask == nil {
			mask = NewMatrix(b.Dx(), b.Dy())
		}
		return mask
	}

	if p.FaceDetect && p.FaceDetector != nil {
		for _, rect := range p.detectFaces(img) {
			protectRect(lazy(), rect)
		}
	}

	if p.Mask != nil {
		addMaskImage(lazy(), p.Mask, p.Feather)
	}
	return mask
}

// protectRect adds ProtectWeight to every cell of mask covered by rect.
func protectRect(mask *Matrix, rect image.Rectangle) {
	rect = rect.Intersect(image.Rect(0, 0, mask.width, mask.height))
	for row := rect.Min.Y; row < rect.Max.Y; row++ {
		for col := rect.Min.X; col < rect.Max.X; col++ {
			*mask.At(row, col) += ProtectWeight
		}
	}
}

// addMaskImage adds the weights encoded by a mask image to mask: white pixels
// are fully protected, black ones are not protected at all. The mask image is
// resized to the matrix size and optionally blurred to soften its edges.
func addMaskImage(mask *Matrix, src image.Image, feather float64) {
	var m image.Image = src
	if b := src.Bounds(); b.Dx() != mask.width || b.Dy() != mask.height {
		m = imaging.Resize(m, mask.width, mask.height, imaging.Lanczos)
	}
	if feather > 0 {
		m = imaging.Blur(m, feather)
	}
	gray := imaging.Grayscale(m)

	for row := 0; row < mask.height; row++ {
		i := gray.PixOffset(0, row)
		for col := 0; col < mask.width; col++ {
			if v := int(gray.Pix[i]); v > 0 {
				*mask.At(row, col) += ProtectWeight / 0xff * v
			}
			i += 4
		}
	}
}
