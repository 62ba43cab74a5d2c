package ppm

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const dogHeader = "P3\n3 2\n255\n"

func TestPPM_DecodePlain(t *testing.T) {
	src := dogHeader +
		"# a comment line\n" +
		"255 0 0 0 255 0 0 0 255\n" +
		"0 0 0 128 128 128 255 255 255\n"

	img, err := Decode(strings.NewReader(src))
	require.NoError(t, err)

	assert.Equal(t, image.Rect(0, 0, 3, 2), img.Bounds())
	assert.Equal(t, color.NRGBA{R: 255, A: 255}, img.At(0, 0))
	assert.Equal(t, color.NRGBA{G: 255, A: 255}, img.At(1, 0))
	assert.Equal(t, color.NRGBA{B: 255, A: 255}, img.At(2, 0))
	assert.Equal(t, color.NRGBA{R: 128, G: 128, B: 128, A: 255}, img.At(1, 1))
}

func TestPPM_DecodeRaw(t *testing.T) {
	var buf bytes.Buffer
	buf.WriteString("P6 2 1 255\n")
	buf.Write([]byte{10, 20, 30, 40, 50, 60})

	img, err := Decode(&buf)
	require.NoError(t, err)

	assert.Equal(t, color.NRGBA{R: 10, G: 20, B: 30, A: 255}, img.At(0, 0))
	assert.Equal(t, color.NRGBA{R: 40, G: 50, B: 60, A: 255}, img.At(1, 0))
}

func TestPPM_DecodeRescalesMaxValue(t *testing.T) {
	img, err := Decode(strings.NewReader("P3 1 1 15 15 0 5"))
	require.NoError(t, err)

	assert.Equal(t, color.NRGBA{R: 255, G: 0, B: 85, A: 255}, img.At(0, 0))
}

func TestPPM_DecodeErrors(t *testing.T) {
	testCases := []struct {
		name   string
		input  string
		format bool
	}{
		{name: "bad magic", input: "P5 1 1 255 0", format: true},
		{name: "zero width", input: "P3 0 1 255", format: true},
		{name: "bad max", input: "P3 1 1 70000 0 0 0", format: true},
		{name: "not a number", input: "P3 1 x 255", format: true},
		{name: "sample over max", input: "P3 1 1 100 101 0 0", format: true},
		{name: "negative sample", input: "P3\n1 1\n255\n-5 0 0\n", format: true},
		{name: "huge dimensions", input: "P3\n4000000000 4000000000\n255\n0 0 0\n", format: true},
		{name: "too many pixels", input: "P6 65536 65536 255\n", format: true},
		{name: "truncated", input: "P3 2 1 255 0 0 0 1 1"},
		{name: "empty", input: ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var err error
			require.NotPanics(t, func() {
				_, err = Decode(strings.NewReader(tc.input))
			})
			require.Error(t, err)
			assert.Equal(t, tc.format, errors.Is(err, ErrFormat), err.Error())
		})
	}
}

func TestPPM_DecodeConfigRejectsHugeImages(t *testing.T) {
	_, err := DecodeConfig(strings.NewReader("P3 4000000000 4000000000 255"))
	assert.ErrorIs(t, err, ErrFormat)
}

func TestPPM_DecodeConfig(t *testing.T) {
	cfg, err := DecodeConfig(strings.NewReader("P3\n# size\n7 4\n255\n"))
	require.NoError(t, err)

	assert.Equal(t, 7, cfg.Width)
	assert.Equal(t, 4, cfg.Height)
	assert.Equal(t, color.NRGBAModel, cfg.ColorModel)
}

func TestPPM_Encode(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.NRGBA{R: 1, G: 2, B: 3, A: 255})
	img.Set(1, 0, color.NRGBA{R: 4, G: 5, B: 6, A: 255})
	img.Set(0, 1, color.NRGBA{R: 7, G: 8, B: 9, A: 255})
	img.Set(1, 1, color.NRGBA{R: 10, G: 11, B: 12, A: 255})

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, img))

	expected := "P3\n2 2\n255\n" +
		"1 2 3 4 5 6 \n" +
		"7 8 9 10 11 12 \n"
	assert.Equal(t, expected, buf.String())
}

func TestPPM_RegisteredWithImagePackage(t *testing.T) {
	src := dogHeader +
		"1 1 1 2 2 2 3 3 3\n" +
		"4 4 4 5 5 5 6 6 6\n"

	img, format, err := image.Decode(strings.NewReader(src))
	require.NoError(t, err)
	assert.Equal(t, "ppm", format)

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, img))
	assert.Equal(t, "P3\n3 2\n255\n1 1 1 2 2 2 3 3 3 \n4 4 4 5 5 5 6 6 6 \n", buf.String())
}
