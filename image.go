package seamcarve

import (
	"image"
	"image/color"
)

// Pixel holds the red, green and blue intensities of a single pixel, each in the 0-255 range.
type Pixel struct {
	R, G, B int
}

// Image is an RGB image stored as three channel matrices of identical size.
type Image struct {
	width  int
	height int
	red    *Matrix
	green  *Matrix
	blue   *Matrix
}

// NewImage returns a black image of the given size.
func NewImage(width, height int) *Image {
	precondition(width > 0 && height > 0, "invalid image dimensions %dx%d", width, height)

	return &Image{
		width:  width,
		height: height,
		red:    NewMatrix(width, height),
		green:  NewMatrix(width, height),
		blue:   NewMatrix(width, height),
	}
}

// Width returns the image width in pixels.
func (img *Image) Width() int { return img.width }

// Height returns the image height in pixels.
func (img *Image) Height() int { return img.height }

// Pixel returns the color of the pixel at (row, col).
func (img *Image) Pixel(row, col int) Pixel {
	off := img.red.Offset(row, col)
	return Pixel{
		R: img.red.data[off],
		G: img.green.data[off],
		B: img.blue.data[off],
	}
}

// SetPixel sets the color of the pixel at (row, col).
func (img *Image) SetPixel(row, col int, p Pixel) {
	off := img.red.Offset(row, col)
	img.red.data[off] = p.R
	img.green.data[off] = p.G
	img.blue.data[off] = p.B
}

// Fill paints every pixel with p.
func (img *Image) Fill(p Pixel) {
	img.red.Fill(p.R)
	img.green.Fill(p.G)
	img.blue.Fill(p.B)
}

// Clone returns a deep copy of the image.
func (img *Image) Clone() *Image {
	return &Image{
		width:  img.width,
		height: img.height,
		red:    img.red.Clone(),
		green:  img.green.Clone(),
		blue:   img.blue.Clone(),
	}
}

// Equal reports whether both images have the same size and the same pixels.
func (img *Image) Equal(other *Image) bool {
	return img.red.Equal(other.red) &&
		img.green.Equal(other.green) &&
		img.blue.Equal(other.blue)
}

// RotateLeft rotates the image by 90 degrees counter clockwise.
// The pixel at (row, col) ends up at (width-1-col, row).
func (img *Image) RotateLeft() {
	*img = *fromChannels(img.red.RotateLeft(), img.green.RotateLeft(), img.blue.RotateLeft())
}

// RotateRight rotates the image by 90 degrees clockwise.
// The pixel at (row, col) ends up at (col, height-1-row).
func (img *Image) RotateRight() {
	*img = *fromChannels(img.red.RotateRight(), img.green.RotateRight(), img.blue.RotateRight())
}

func fromChannels(r, g, b *Matrix) *Image {
	return &Image{
		width:  r.width,
		height: r.height,
		red:    r,
		green:  g,
		blue:   b,
	}
}

// FromImage converts any image type to an Image. The alpha channel is discarded.
func FromImage(src image.Image) *Image {
	nrgba := imgToNRGBA(src)
	b := nrgba.Bounds()
	img := NewImage(b.Dx(), b.Dy())

	for row := 0; row < img.height; row++ {
		si := nrgba.PixOffset(0, row)
		for col := 0; col < img.width; col++ {
			off := row*img.width + col
			img.red.data[off] = int(nrgba.Pix[si+0])
			img.green.data[off] = int(nrgba.Pix[si+1])
			img.blue.data[off] = int(nrgba.Pix[si+2])
			si += 4
		}
	}
	return img
}

// NRGBA converts the image into a fully opaque *image.NRGBA.
// Channel values are clamped to the 0-255 range.
func (img *Image) NRGBA() *image.NRGBA {
	dst := image.NewNRGBA(image.Rect(0, 0, img.width, img.height))

	for row := 0; row < img.height; row++ {
		di := dst.PixOffset(0, row)
		for col := 0; col < img.width; col++ {
			off := row*img.width + col
			dst.Pix[di+0] = clampUint8(img.red.data[off])
			dst.Pix[di+1] = clampUint8(img.green.data[off])
			dst.Pix[di+2] = clampUint8(img.blue.data[off])
			dst.Pix[di+3] = 0xff
			di += 4
		}
	}
	return dst
}

func clampUint8(v int) uint8 {
	switch {
	case v < 0:
		return 0
	case v > 0xff:
		return 0xff
	}
	return uint8(v)
}

// imgToNRGBA converts any image type to *image.NRGBA with min-point at (0, 0).
func imgToNRGBA(img image.Image) *image.NRGBA {
	srcBounds := img.Bounds()
	if srcBounds.Min.X == 0 && srcBounds.Min.Y == 0 {
		if src0, ok := img.(*image.NRGBA); ok {
			return src0
		}
	}
	srcMinX := srcBounds.Min.X
	srcMinY := srcBounds.Min.Y

	dstBounds := srcBounds.Sub(srcBounds.Min)
	dstW := dstBounds.Dx()
	dstH := dstBounds.Dy()
	dst := image.NewNRGBA(dstBounds)

	switch src := img.(type) {
	case *image.NRGBA:
		rowSize := srcBounds.Dx() * 4
		for dstY := 0; dstY < dstH; dstY++ {
			di := dst.PixOffset(0, dstY)
			si := src.PixOffset(srcMinX, srcMinY+dstY)
			copy(dst.Pix[di:di+rowSize], src.Pix[si:si+rowSize])
		}
	case *image.YCbCr:
		for dstY := 0; dstY < dstH; dstY++ {
			di := dst.PixOffset(0, dstY)
			for dstX := 0; dstX < dstW; dstX++ {
				srcX := srcMinX + dstX
				srcY := srcMinY + dstY
				siy := src.YOffset(srcX, srcY)
				sic := src.COffset(srcX, srcY)
				r, g, b := color.YCbCrToRGB(src.Y[siy], src.Cb[sic], src.Cr[sic])
				dst.Pix[di+0] = r
				dst.Pix[di+1] = g
				dst.Pix[di+2] = b
				dst.Pix[di+3] = 0xff
				di += 4
			}
		}
	default:
		for dstY := 0; dstY < dstH; dstY++ {
			di := dst.PixOffset(0, dstY)
			for dstX := 0; dstX < dstW; dstX++ {
				c := color.NRGBAModel.Convert(img.At(srcMinX+dstX, srcMinY+dstY)).(color.NRGBA)
				dst.Pix[di+0] = c.R
				dst.Pix[di+1] = c.G
				dst.Pix[di+2] = c.B
				dst.Pix[di+3] = c.A
				di += 4
			}
		}
	}

	return dst
}
