package icon

import (
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func isGreen(c color.Color) bool {
	r, g, b, a := c.RGBA()
	return a == 0xffff && r>>8 < 0x40 && g>>8 > 0xa0 && b>>8 < 0x70
}

func isWhite(c color.Color) bool {
	r, g, b, a := c.RGBA()
	return a == 0xffff && r>>8 > 0xc0 && g>>8 > 0xc0 && b>>8 > 0xc0
}

func TestDraw(t *testing.T) {
	for _, size := range []int{16, 48, 128} {
		img := Draw(size)

		b := img.Bounds()
		if b.Dx() != size || b.Dy() != size {
			t.Errorf("size %d: bounds %v", size, b)
		}
		if _, _, _, a := img.At(0, 0).RGBA(); a != 0 {
			t.Errorf("size %d: corner is not transparent", size)
		}
		// Just inside the left edge of the disc on the horizontal midline
		edge := max(1, size/32) + max(2, size/16)
		if c := img.At(edge, size/2); !isGreen(c) {
			t.Errorf("size %d: pixel at (%d,%d) = %v, want brand green", size, edge, size/2, c)
		}
	}
}

func TestDraw_NoteHead(t *testing.T) {
	img := Draw(16)
	if c := img.At(8, 8); !isWhite(c) {
		t.Errorf("note head centre = %v, want white", c)
	}
}

func TestDraw_MiddleArc(t *testing.T) {
	// Bottom of the middle arc sits at c + h/2 minus half the stroke
	size := 128
	img := Draw(size)
	c := size / 2
	h := int(float64(size) * 0.15)
	line := max(2, size/16)
	y := c + h/2 - line/2

	if px := img.At(c, y); !isWhite(px) {
		t.Errorf("middle arc at (%d,%d) = %v, want white", c, y, px)
	}
	// Top of the middle arc box is open: the arc only covers 0 to 180 degrees
	if px := img.At(c, c-h/2+1); isWhite(px) {
		t.Errorf("upper half of middle arc should not be drawn")
	}
}

func TestWriteAll(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "icons")

	paths, err := WriteAll(dir, nil)
	if err != nil {
		t.Fatalf("WriteAll() returned error: %v", err)
	}

	want := []string{"icon16.png", "icon48.png", "icon128.png"}
	if len(paths) != len(want) {
		t.Fatalf("wrote %d files, want %d", len(paths), len(want))
	}
	for i, name := range want {
		if filepath.Base(paths[i]) != name {
			t.Errorf("path %d = %s, want %s", i, paths[i], name)
		}

		f, err := os.Open(paths[i])
		if err != nil {
			t.Fatal(err)
		}
		cfg, err := png.DecodeConfig(f)
		f.Close()
		if err != nil {
			t.Fatalf("%s is not a PNG: %v", name, err)
		}
		if cfg.Width != []int{16, 48, 128}[i] {
			t.Errorf("%s width = %d", name, cfg.Width)
		}
	}
}

func TestWriteAll_InvalidSize(t *testing.T) {
	if _, err := WriteAll(t.TempDir(), []int{16, 0}); err == nil {
		t.Error("expected error for size 0")
	}
}
