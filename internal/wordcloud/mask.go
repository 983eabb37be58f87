package wordcloud

import (
	"image"

	"github.com/linuxmatters/lyricloud/internal/config"
	"golang.org/x/image/draw"
)

// MakeTransparent copies img and turns near-black pixels (R, G and B all
// below config.TransparentThreshold) fully transparent. Every other pixel
// becomes fully opaque with its colour unchanged.
func MakeTransparent(img image.Image) *image.NRGBA {
	b := img.Bounds()
	out := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(out, out.Bounds(), img, b.Min, draw.Src)

	for i := 0; i+3 < len(out.Pix); i += 4 {
		p := out.Pix[i : i+4 : i+4]
		if p[0] < config.TransparentThreshold && p[1] < config.TransparentThreshold && p[2] < config.TransparentThreshold {
			p[3] = 0
		} else {
			p[3] = 255
		}
	}
	return out
}
