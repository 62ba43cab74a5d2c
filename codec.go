package seamcarve

import (
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/seamkit/seamcarve/ppm"
	"github.com/seamkit/seamcarve/utils"
	"golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

// SupportedExtensions lists the file extensions the codec boundary can write.
var SupportedExtensions = []string{".jpg", ".jpeg", ".png", ".bmp", ".gif", ".ppm"}

// decodeImg decodes an image file. When decoding fails the sniffed
// content type is reported along with the decoder error.
func decodeImg(src string) (image.Image, error) {
	file, err := os.Open(src)
	if err != nil {
		return nil, errors.Wrapf(err, "could not open %s", src)
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		ctype, cerr := utils.DetectContentType(src)
		if cerr != nil {
			return nil, errors.Wrapf(err, "could not decode %s", src)
		}
		return nil, errors.Wrapf(err, "could not decode %s (%s)", src, ctype)
	}
	return img, nil
}

// encodeImg encodes img into w using the codec registered for ext.
// An empty extension falls back to JPEG.
func encodeImg(w io.Writer, img image.Image, ext string) error {
	switch strings.ToLower(ext) {
	case "", ".jpg", ".jpeg":
		return jpeg.Encode(w, img, &jpeg.Options{Quality: 100})
	case ".png":
		return png.Encode(w, img)
	case ".bmp":
		return bmp.Encode(w, img)
	case ".gif":
		return gif.Encode(w, img, nil)
	case ".ppm":
		return ppm.Encode(w, img)
	}
	return errors.Errorf("unsupported image format: %q", ext)
}

// outputExt returns the extension used to encode into w: the file name of an
// *os.File wins over the Processor's Format.
func (p *Processor) outputExt(w io.Writer) string {
	if f, ok := w.(*os.File); ok {
		if ext := filepath.Ext(f.Name()); ext != "" {
			return ext
		}
	}
	return p.Format
}
