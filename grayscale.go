package seamcarve

import (
	"image"
)

// rgbToGrayscale converts an image to grayscale and returns the luminance
// values as a one dimensional, row-major array.
func rgbToGrayscale(src *image.NRGBA) []uint8 {
	width, height := src.Bounds().Dx(), src.Bounds().Dy()
	gray := make([]uint8, width*height)

	for y := 0; y < height; y++ {
		i := src.PixOffset(src.Bounds().Min.X, src.Bounds().Min.Y+y)
		for x := 0; x < width; x++ {
			r, g, b := float64(src.Pix[i]), float64(src.Pix[i+1]), float64(src.Pix[i+2])
			gray[y*width+x] = uint8(0.299*r + 0.587*g + 0.114*b + 0.5)
			i += 4
		}
	}
	return gray
}
