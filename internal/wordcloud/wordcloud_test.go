package wordcloud

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/linuxmatters/lyricloud/internal/fonts"
)

const lyrics = `Shine on, shine on, the stars are bright tonight
Dancing in the moonlight, dancing till the light
Shine on, shine on, we sing the night away`

func offlineOptions(t *testing.T) Options {
	t.Helper()
	opts := DefaultOptions()
	opts.Lyrics = lyrics
	opts.Colors = []string{"#1DB954", "#FFFFFF", "#B3B3B3"}
	opts.Width = 1280
	opts.Height = 720
	opts.Fonts = &fonts.Discoverer{Dir: t.TempDir()}
	return opts
}

func TestMakeTransparent(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 4, 1))
	src.Set(0, 0, color.RGBA{0, 0, 0, 255})
	src.Set(1, 0, color.RGBA{9, 9, 9, 255})
	src.Set(2, 0, color.RGBA{10, 0, 0, 255})
	src.Set(3, 0, color.RGBA{0x1D, 0xB9, 0x54, 255})

	out := MakeTransparent(src)

	testCases := []struct {
		x    int
		want color.NRGBA
	}{
		{0, color.NRGBA{0, 0, 0, 0}},
		{1, color.NRGBA{9, 9, 9, 0}},
		{2, color.NRGBA{10, 0, 0, 255}},
		{3, color.NRGBA{0x1D, 0xB9, 0x54, 255}},
	}
	for _, tc := range testCases {
		if got := out.NRGBAAt(tc.x, 0); got != tc.want {
			t.Errorf("pixel %d = %v, want %v", tc.x, got, tc.want)
		}
	}
}

func TestMakeTransparent_OffsetBounds(t *testing.T) {
	src := image.NewRGBA(image.Rect(10, 10, 12, 12))
	src.Set(11, 11, color.White)

	out := MakeTransparent(src)
	if out.Bounds() != image.Rect(0, 0, 2, 2) {
		t.Fatalf("bounds = %v", out.Bounds())
	}
	if out.NRGBAAt(1, 1).A != 255 || out.NRGBAAt(0, 0).A != 0 {
		t.Error("pixels not copied from the source origin")
	}
}

func TestParsePalette(t *testing.T) {
	palette, err := ParsePalette([]string{"#1DB954", " ffffff "})
	if err != nil {
		t.Fatalf("ParsePalette() returned error: %v", err)
	}
	if len(palette) != 2 || palette[0] != (color.RGBA{0x1D, 0xB9, 0x54, 255}) {
		t.Errorf("palette = %v", palette)
	}

	if _, err := ParsePalette([]string{"#1DB954", "green"}); !errors.Is(err, ErrInvalidColor) {
		t.Errorf("error = %v, want ErrInvalidColor", err)
	}
}

func TestGenerate_Validation(t *testing.T) {
	testCases := []struct {
		name   string
		modify func(*Options)
		want   error
	}{
		{"blank lyrics", func(o *Options) { o.Lyrics = "  \n " }, ErrMissingInput},
		{"no colours", func(o *Options) { o.Colors = nil }, ErrMissingInput},
		{"zero width", func(o *Options) { o.Width = 0 }, ErrInvalidOption},
		{"negative height", func(o *Options) { o.Height = -1 }, ErrInvalidOption},
		{"zero max words", func(o *Options) { o.MaxWords = 0 }, ErrInvalidOption},
		{"bad colour", func(o *Options) { o.Colors = []string{"#12345"} }, ErrInvalidColor},
		{"bad background", func(o *Options) { o.Background = "rgba(1,2)" }, ErrInvalidColor},
		{"missing font file", func(o *Options) { o.FontPath = "/nonexistent/font.ttf" }, ErrInvalidOption},
		{"only stopwords", func(o *Options) { o.Lyrics = "the and of you" }, ErrNoWords},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			opts := offlineOptions(t)
			tc.modify(&opts)
			if _, err := Generate(context.Background(), opts); !errors.Is(err, tc.want) {
				t.Errorf("Generate() error = %v, want %v", err, tc.want)
			}
		})
	}
}

func TestGenerate_Transparent(t *testing.T) {
	opts := offlineOptions(t)
	opts.OutputPath = filepath.Join(t.TempDir(), "cloud.png")
	opts.ReturnBase64 = true

	var stages []Stage
	opts.Progress = func(s Stage) { stages = append(stages, s) }

	res, err := Generate(context.Background(), opts)
	if err != nil {
		t.Fatalf("Generate() returned error: %v", err)
	}

	if res.Font.Source != fonts.SourceEmbedded {
		t.Errorf("font source = %q, want embedded", res.Font.Source)
	}
	if res.Words == 0 {
		t.Error("no words were counted")
	}
	if _, ok := res.Image.(*image.NRGBA); !ok {
		t.Errorf("image type = %T, want *image.NRGBA for a transparent cloud", res.Image)
	}

	decoded, err := png.Decode(bytes.NewReader(res.PNG))
	if err != nil {
		t.Fatalf("PNG does not decode: %v", err)
	}
	if decoded.Bounds().Dx() != 1280 || decoded.Bounds().Dy() != 720 {
		t.Errorf("size = %v, want 1280x720", decoded.Bounds())
	}

	onDisk, err := os.ReadFile(opts.OutputPath)
	if err != nil {
		t.Fatalf("output not written: %v", err)
	}
	if !bytes.Equal(onDisk, res.PNG) {
		t.Error("file contents differ from Result.PNG")
	}

	raw, err := base64.StdEncoding.DecodeString(res.Base64)
	if err != nil || !bytes.Equal(raw, res.PNG) {
		t.Errorf("Base64 does not round trip to the PNG (err %v)", err)
	}

	if stages[0] != StageValidate || stages[len(stages)-1] != StageDone {
		t.Errorf("stages = %v", stages)
	}
	if !containsStage(stages, StageMask) {
		t.Error("transparent cloud skipped masking")
	}
}

func TestGenerate_OpaqueBackground(t *testing.T) {
	opts := offlineOptions(t)
	opts.Background = "white"

	var stages []Stage
	opts.Progress = func(s Stage) { stages = append(stages, s) }

	res, err := Generate(context.Background(), opts)
	if err != nil {
		t.Fatalf("Generate() returned error: %v", err)
	}
	if res.Base64 != "" {
		t.Error("Base64 set without ReturnBase64")
	}
	if containsStage(stages, StageMask) {
		t.Error("opaque cloud should not be masked")
	}
	if _, _, _, a := res.Image.At(0, 0).RGBA(); a != 0xffff {
		t.Errorf("corner alpha = %d, want opaque", a)
	}
}

func TestGenerate_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := Generate(ctx, offlineOptions(t)); !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}
}

func TestGenerate_CancelledDuringLayout(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	opts := offlineOptions(t)
	opts.OutputPath = filepath.Join(t.TempDir(), "cloud.png")
	opts.Progress = func(s Stage) {
		if s == StageLayout {
			cancel()
		}
	}

	if _, err := Generate(ctx, opts); !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}
	if _, err := os.Stat(opts.OutputPath); !os.IsNotExist(err) {
		t.Errorf("output written after cancel (stat err %v)", err)
	}
}

func TestDataURI(t *testing.T) {
	if got := DataURI("abc="); got != "data:image/png;base64,abc=" {
		t.Errorf("DataURI() = %q", got)
	}
}

func TestStage(t *testing.T) {
	if StageValidate.Fraction() != 0 || StageDone.Fraction() != 1 {
		t.Error("first and last stages should map to 0 and 1")
	}
	if f := StageLayout.Fraction(); f <= StageWords.Fraction() || f >= 1 {
		t.Errorf("layout fraction %v out of order", f)
	}
	if Stage(99).String() != "Unknown" {
		t.Error("out of range stage should be Unknown")
	}
}

func TestTuningString(t *testing.T) {
	s := DefaultTuning().String()
	for _, want := range []string{"40-300px", "prefer_horizontal 0.6", "repeat true"} {
		if !strings.Contains(s, want) {
			t.Errorf("tuning %q missing %q", s, want)
		}
	}
}

func containsStage(stages []Stage, s Stage) bool {
	for _, got := range stages {
		if got == s {
			return true
		}
	}
	return false
}
