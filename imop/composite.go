package imop

import (
	"image"
	"math"

	"github.com/seamkit/seamcarve/utils"
)

// The supported Porter-Duff composition operators.
const (
	Clear   = "clear"
	Copy    = "copy"
	Dst     = "dst"
	SrcOver = "src_over"
	DstOver = "dst_over"
	SrcIn   = "src_in"
	DstIn   = "dst_in"
	SrcOut  = "src_out"
	DstOut  = "dst_out"
	SrcAtop = "src_atop"
	DstAtop = "dst_atop"
	Xor     = "xor"
)

var compositeOps = []string{
	Clear, Copy, Dst, SrcOver, DstOver, SrcIn, DstIn, SrcOut, DstOut, SrcAtop, DstAtop, Xor,
}

// Bitmap is the destination of a composition.
type Bitmap struct {
	Img *image.NRGBA
}

// NewBitmap allocates a transparent bitmap.
func NewBitmap(rect image.Rectangle) *Bitmap {
	return &Bitmap{
		Img: image.NewNRGBA(rect),
	}
}

// Composite holds the currently active composition operator.
type Composite struct {
	current string
}

// InitOp returns a Composite using the source-over operator.
func InitOp() *Composite {
	return &Composite{current: SrcOver}
}

// Set activates one of the supported operators. Unknown operators are ignored.
func (op *Composite) Set(cop string) {
	if utils.Contains(compositeOps, cop) {
		op.current = cop
	}
}

// Get returns the currently active operator.
func (op *Composite) Get() string {
	return op.current
}

// factors returns the Porter-Duff coefficients applied to the source and to the backdrop.
func (op *Composite) factors(as, ab float64) (fa, fb float64) {
	switch op.current {
	case Clear:
		return 0, 0
	case Copy:
		return 1, 0
	case Dst:
		return 0, 1
	case SrcOver:
		return 1, 1 - as
	case DstOver:
		return 1 - ab, 1
	case SrcIn:
		return ab, 0
	case DstIn:
		return 0, as
	case SrcOut:
		return 1 - ab, 0
	case DstOut:
		return 0, 1 - as
	case SrcAtop:
		return ab, 1 - as
	case DstAtop:
		return 1 - ab, as
	case Xor:
		return 1 - ab, 1 - as
	}
	return 1, 1 - as
}

// Draw composes src over the dst backdrop into bitmap. When blend is not nil the
// source colors are first mixed with the backdrop using the blend mode.
// All three images are expected to share the same bounds; a nil bitmap is drawn into dst.
func (op *Composite) Draw(bitmap *Bitmap, src, dst *image.NRGBA, blend *Blend) {
	if bitmap == nil {
		bitmap = &Bitmap{Img: dst}
	}
	b := src.Bounds()

	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			si, di, oi := src.PixOffset(x, y), dst.PixOffset(x, y), bitmap.Img.PixOffset(x, y)
			s, d := src.Pix[si:si+4], dst.Pix[di:di+4]

			as := float64(s[3]) / 255
			ab := float64(d[3]) / 255
			fa, fb := op.factors(as, ab)

			ao := as*fa + ab*fb
			var out [4]uint8
			if ao > 0 {
				for ch := 0; ch < 3; ch++ {
					cs := float64(s[ch]) / 255
					cb := float64(d[ch]) / 255
					if blend != nil {
						cs = (1-ab)*cs + ab*blend.apply(cs, cb)
					}
					co := (as*fa*cs + ab*fb*cb) / ao
					out[ch] = toUint8(co)
				}
				out[3] = toUint8(ao)
			}
			copy(bitmap.Img.Pix[oi:oi+4], out[:])
		}
	}
}

func toUint8(v float64) uint8 {
	return uint8(math.Round(utils.Min(utils.Max(v, 0), 1) * 255))
}
