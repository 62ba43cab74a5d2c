// Package ppm implements a decoder and encoder for the Netpbm PPM image format.
//
// The plain (P3) and the raw (P6) variants are decoded; images are always
// encoded in the plain, human readable P3 form with a maximum value of 255.
// Importing the package registers both variants with the image package.
package ppm

import (
	"bufio"
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"
	"strconv"
)

const (
	plainMagic = "P3"
	rawMagic   = "P6"

	// MaxValue is the maximum color value written by Encode.
	MaxValue = 255

	// MaxPixels bounds the number of pixels a decoded image may hold.
	MaxPixels = 1 << 28
)

// ErrFormat is returned for input that is not a valid PPM stream.
var ErrFormat = errors.New("ppm: invalid format")

func init() {
	image.RegisterFormat("ppm", plainMagic, Decode, DecodeConfig)
	image.RegisterFormat("ppm", rawMagic, Decode, DecodeConfig)
}

type header struct {
	magic  string
	width  int
	height int
	max    int
}

type reader struct {
	r *bufio.Reader
}

// token returns the next whitespace separated word, skipping '#' comments.
func (d *reader) token() (string, error) {
	var buf []byte
	for {
		c, err := d.r.ReadByte()
		if err != nil {
			if err == io.EOF && len(buf) > 0 {
				return string(buf), nil
			}
			if err == io.EOF {
				return "", io.ErrUnexpectedEOF
			}
			return "", err
		}
		switch {
		case c == '#' && len(buf) == 0:
			if _, err := d.r.ReadString('\n'); err != nil && err != io.EOF {
				return "", err
			}
		case isSpace(c):
			if len(buf) > 0 {
				return string(buf), nil
			}
		default:
			buf = append(buf, c)
		}
	}
}

func (d *reader) int(what string) (int, error) {
	tok, err := d.token()
	if err != nil {
		return 0, fmt.Errorf("ppm: reading %s: %w", what, err)
	}
	v, err := strconv.Atoi(tok)
	if err != nil {
		return 0, fmt.Errorf("%w: %s %q is not a number", ErrFormat, what, tok)
	}
	return v, nil
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\v' || c == '\f'
}

func (d *reader) header() (header, error) {
	var h header

	magic, err := d.token()
	if err != nil {
		return h, fmt.Errorf("ppm: reading magic number: %w", err)
	}
	if magic != plainMagic && magic != rawMagic {
		return h, fmt.Errorf("%w: unknown magic number %q", ErrFormat, magic)
	}
	h.magic = magic

	if h.width, err = d.int("width"); err != nil {
		return h, err
	}
	if h.height, err = d.int("height"); err != nil {
		return h, err
	}
	if h.width <= 0 || h.height <= 0 {
		return h, fmt.Errorf("%w: invalid dimensions %dx%d", ErrFormat, h.width, h.height)
	}
	if h.width > MaxPixels/h.height {
		return h, fmt.Errorf("%w: image %dx%d exceeds %d pixels", ErrFormat, h.width, h.height, MaxPixels)
	}
	if h.max, err = d.int("max value"); err != nil {
		return h, err
	}
	if h.max <= 0 || h.max > 0xffff {
		return h, fmt.Errorf("%w: max value %d out of range [1, 65535]", ErrFormat, h.max)
	}
	return h, nil
}

// DecodeConfig returns the color model and dimensions of a PPM image
// without decoding the entire image.
func DecodeConfig(r io.Reader) (image.Config, error) {
	d := &reader{r: bufio.NewReader(r)}
	h, err := d.header()
	if err != nil {
		return image.Config{}, err
	}
	return image.Config{
		ColorModel: color.NRGBAModel,
		Width:      h.width,
		Height:     h.height,
	}, nil
}

// Decode reads a PPM image from r and returns it as an *image.NRGBA.
// Samples are rescaled to 8 bits when the maximum value differs from 255.
func Decode(r io.Reader) (image.Image, error) {
	d := &reader{r: bufio.NewReader(r)}
	h, err := d.header()
	if err != nil {
		return nil, err
	}

	sample := d.plainSample
	if h.magic == rawMagic {
		sample = d.rawSample
	}

	img := image.NewNRGBA(image.Rect(0, 0, h.width, h.height))
	for y := 0; y < h.height; y++ {
		i := img.PixOffset(0, y)
		for x := 0; x < h.width; x++ {
			for ch := 0; ch < 3; ch++ {
				v, err := sample(h.max)
				if err != nil {
					return nil, fmt.Errorf("ppm: pixel (%d, %d): %w", x, y, err)
				}
				if v < 0 || v > h.max {
					return nil, fmt.Errorf("%w: sample %d out of range [0, %d]", ErrFormat, v, h.max)
				}
				img.Pix[i+ch] = scale(v, h.max)
			}
			img.Pix[i+3] = 0xff
			i += 4
		}
	}
	return img, nil
}

func (d *reader) plainSample(int) (int, error) {
	return d.int("sample")
}

func (d *reader) rawSample(max int) (int, error) {
	if max < 256 {
		b, err := d.r.ReadByte()
		if err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		return int(b), err
	}
	var buf [2]byte
	if _, err := io.ReadFull(d.r, buf[:]); err != nil {
		return 0, err
	}
	return int(buf[0])<<8 | int(buf[1]), nil
}

func scale(v, max int) uint8 {
	if max == MaxValue {
		return uint8(v)
	}
	return uint8((v*MaxValue + max/2) / max)
}

// Encode writes img to w in plain PPM (P3) format: a header made of the magic
// number, the width and height, and the max value, each on its own line, followed
// by one line per image row where every channel value is followed by a space.
// The alpha channel is discarded.
func Encode(w io.Writer, img image.Image) error {
	b := img.Bounds()
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "%s\n%d %d\n%d\n", plainMagic, b.Dx(), b.Dy(), MaxValue)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			for _, v := range [3]uint8{c.R, c.G, c.B} {
				bw.WriteString(strconv.Itoa(int(v)))
				bw.WriteByte(' ')
			}
		}
		bw.WriteByte('\n')
	}
	return bw.Flush()
}
