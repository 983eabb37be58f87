package icon

import (
	"fmt"
	"image"
	"image/png"
	"math"
	"os"
	"path/filepath"

	"github.com/fogleman/gg"
	"github.com/linuxmatters/lyricloud/internal/config"
)

// box is an axis-aligned bounding box given as two corners
type box struct {
	x0, y0, x1, y1 float64
}

func (b box) center() (float64, float64) {
	return (b.x0 + b.x1) / 2, (b.y0 + b.y1) / 2
}

func (b box) radii() (float64, float64) {
	return (b.x1 - b.x0) / 2, (b.y1 - b.y0) / 2
}

// Draw renders the logo at size x size on a transparent canvas: a green disc
// with a white music note for tiny sizes, or three white arcs otherwise.
func Draw(size int) image.Image {
	dc := gg.NewContext(size, size)
	fs := float64(size)

	margin := float64(max(1, size/32))
	fillEllipse(dc, box{margin, margin, fs - margin, fs - margin}, config.BrandGreen)

	cx, cy := fs/2, fs/2
	line := float64(max(2, size/16))

	if size <= 16 {
		// Music note: head plus stem
		n := fs * 0.4
		fillEllipse(dc, box{cx - n*0.3, cy - n*0.15, cx + n*0.3, cy + n*0.15}, config.BrandWhite)

		dc.SetHexColor(config.BrandWhite)
		dc.DrawRectangle(cx+n*0.2, cy-n*0.15, line, n*0.55)
		dc.Fill()
		return dc.Image()
	}

	s := fs * 0.12
	h := fs * 0.15
	arcs := []box{
		{cx - s*1.5, cy - s - h*0.5, cx - s*0.5, cy - s + h*0.5}, // top, smallest
		{cx - s*0.5, cy - h*0.5, cx + s*0.5, cy + h*0.5},         // middle
		{cx + s*0.5, cy + s - h*0.5, cx + s*1.5, cy + s + h*0.5}, // bottom, largest
	}
	for _, b := range arcs {
		strokeArc(dc, b, line, config.BrandWhite)
	}

	return dc.Image()
}

func fillEllipse(dc *gg.Context, b box, hex string) {
	x, y := b.center()
	rx, ry := b.radii()
	dc.SetHexColor(hex)
	dc.DrawEllipse(x, y, rx, ry)
	dc.Fill()
}

// strokeArc draws the lower half (0 to 180 degrees, y down) of the ellipse
// inscribed in b. The stroke stays inside the box.
func strokeArc(dc *gg.Context, b box, width float64, hex string) {
	x, y := b.center()
	rx, ry := b.radii()
	rx = math.Max(rx-width/2, 0.5)
	ry = math.Max(ry-width/2, 0.5)

	dc.SetHexColor(hex)
	dc.SetLineWidth(width)
	dc.SetLineCap(gg.LineCapRound)
	dc.DrawEllipticalArc(x, y, rx, ry, 0, math.Pi)
	dc.Stroke()
}

// FileName is the conventional icon file name for a size
func FileName(size int) string {
	return fmt.Sprintf("icon%d.png", size)
}

// WriteAll draws every size into dir and returns the written paths
func WriteAll(dir string, sizes []int) ([]string, error) {
	if len(sizes) == 0 {
		sizes = config.IconSizes
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create icon directory: %w", err)
	}

	paths := make([]string, 0, len(sizes))
	for _, size := range sizes {
		if size <= 0 {
			return paths, fmt.Errorf("invalid icon size %d", size)
		}
		path := filepath.Join(dir, FileName(size))
		if err := writePNG(path, Draw(size)); err != nil {
			return paths, fmt.Errorf("failed to write %s: %w", path, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	enc := png.Encoder{CompressionLevel: png.BestCompression}
	if err := enc.Encode(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
