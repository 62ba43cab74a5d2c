package seamcarve

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// halfMask returns a mask image whose right half is white.
func halfMask(width, height int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			c := color.NRGBA{A: 255}
			if x >= width/2 {
				c = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
			}
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

func TestMask_ProtectRect(t *testing.T) {
	mask := NewMatrix(4, 3)
	protectRect(mask, image.Rect(2, 1, 10, 10))
	protectRect(mask, image.Rect(-5, -5, 1, 1))

	expected := matrixOf(
		[]int{ProtectWeight, 0, 0, 0},
		[]int{0, 0, ProtectWeight, ProtectWeight},
		[]int{0, 0, ProtectWeight, ProtectWeight},
	)
	assert.True(t, expected.Equal(mask))
}

func TestMask_AddMaskImage(t *testing.T) {
	mask := NewMatrix(6, 3)
	addMaskImage(mask, halfMask(6, 3), 0)

	full := ProtectWeight / 0xff * 0xff
	for row := 0; row < 3; row++ {
		for col := 0; col < 6; col++ {
			if col < 3 {
				assert.Equal(t, 0, mask.Get(row, col))
			} else {
				assert.Equal(t, full, mask.Get(row, col))
			}
		}
	}
}

func TestMask_AddMaskImageResizesAndFeathers(t *testing.T) {
	mask := NewMatrix(40, 10)
	addMaskImage(mask, halfMask(8, 2), 2)

	assert.Equal(t, 0, mask.Get(5, 0))
	assert.Greater(t, mask.Get(5, 39), 0)
	// The blurred edge produces partial weights.
	assert.Less(t, mask.Get(5, 20), ProtectWeight)
	assert.Greater(t, mask.Get(5, 20), 0)
}

func TestMask_ProtectionMask(t *testing.T) {
	p := &Processor{}
	assert.Nil(t, p.protectionMask(sampleNRGBA(4, 4)))

	p.Mask = halfMask(4, 4)
	mask := p.protectionMask(sampleNRGBA(4, 4))
	require.NotNil(t, mask)
	assert.Equal(t, 0, mask.Get(0, 0))
	assert.Greater(t, mask.Get(0, 3), 0)
}
