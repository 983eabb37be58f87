// Package wordcloud renders lyric word clouds coloured from a fixed palette.
//
// Word placement is delegated to github.com/psykhi/wordclouds. This package
// prepares its input (palette, background, font, weighted words), masks the
// result when a transparent background is requested and encodes the PNG.
package wordcloud

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"log"
	"os"
	"strings"

	"github.com/linuxmatters/lyricloud/internal/config"
	"github.com/linuxmatters/lyricloud/internal/fonts"
	"github.com/linuxmatters/lyricloud/internal/wordfreq"
	"github.com/psykhi/wordclouds"
)

var (
	ErrMissingInput  = errors.New("lyrics and colours are required")
	ErrInvalidColor  = errors.New("invalid colour")
	ErrInvalidOption = errors.New("invalid option")
	ErrNoWords       = wordfreq.ErrNoWords
)

// Options describes one word cloud
type Options struct {
	Lyrics          string
	Colors          []string // hex palette
	Width           int
	Height          int
	Background      string // see config.ParseBackground; empty means transparent
	MaxWords        int
	RelativeScaling float64

	OutputPath   string // written when set
	ReturnBase64 bool

	FontPath string            // skips discovery when set
	Fonts    *fonts.Discoverer // nil uses the defaults

	Progress func(Stage)
}

// Result is a rendered cloud
type Result struct {
	Image  image.Image
	PNG    []byte
	Base64 string // only with ReturnBase64
	Font   fonts.Font
	Words  int
}

// DefaultOptions fills everything except the lyrics and palette
func DefaultOptions() Options {
	return Options{
		Width:           config.DefaultWidth,
		Height:          config.DefaultHeight,
		Background:      config.DefaultBackground,
		MaxWords:        config.DefaultMaxWords,
		RelativeScaling: config.DefaultRelativeScaling,
	}
}

// Generate renders a word cloud from opts
func Generate(ctx context.Context, opts Options) (*Result, error) {
	report := func(s Stage) {
		if opts.Progress != nil {
			opts.Progress(s)
		}
	}

	report(StageValidate)
	if err := validate(opts); err != nil {
		return nil, err
	}

	report(StagePalette)
	palette, err := ParsePalette(opts.Colors)
	if err != nil {
		return nil, err
	}
	bg, err := config.ParseBackground(opts.Background)
	if err != nil {
		return nil, fmt.Errorf("%w: background: %v", ErrInvalidColor, err)
	}

	report(StageFont)
	font, err := resolveFont(ctx, opts)
	if err != nil {
		return nil, err
	}

	report(StageWords)
	weights, words, err := wordfreq.Prepare(opts.Lyrics, opts.MaxWords, opts.RelativeScaling,
		wordfreq.Options{NormalizePlurals: config.NormalizePlurals})
	if err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	report(StageLayout)
	tuning := DefaultTuning()
	log.Printf("[wordcloud] %dx%d, %d words, %s", opts.Width, opts.Height, len(words), tuning)
	img, err := layout(weights, palette, bg.Color, font.Path, opts.Width, opts.Height, tuning)
	if err != nil {
		return nil, err
	}
	// Layout cannot be interrupted, so nothing is written once cancelled
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if bg.Transparent {
		report(StageMask)
		img = MakeTransparent(img)
	}

	report(StageEncode)
	data, err := encodePNG(img)
	if err != nil {
		return nil, fmt.Errorf("failed to encode PNG: %w", err)
	}

	res := &Result{Image: img, PNG: data, Font: font, Words: len(words)}
	if opts.OutputPath != "" {
		if err := os.WriteFile(opts.OutputPath, data, 0644); err != nil {
			return nil, fmt.Errorf("failed to write %s: %w", opts.OutputPath, err)
		}
	}
	if opts.ReturnBase64 {
		res.Base64 = base64.StdEncoding.EncodeToString(data)
	}

	report(StageDone)
	return res, nil
}

func validate(opts Options) error {
	if strings.TrimSpace(opts.Lyrics) == "" || len(opts.Colors) == 0 {
		return ErrMissingInput
	}
	if opts.Width <= 0 || opts.Height <= 0 {
		return fmt.Errorf("%w: dimensions must be positive, got %dx%d", ErrInvalidOption, opts.Width, opts.Height)
	}
	if opts.MaxWords <= 0 {
		return fmt.Errorf("%w: max words must be positive, got %d", ErrInvalidOption, opts.MaxWords)
	}
	return nil
}

// ParsePalette converts hex colours for the layout
func ParsePalette(colors []string) ([]color.Color, error) {
	palette := make([]color.Color, 0, len(colors))
	for _, c := range colors {
		rgba, err := config.HexToRGBA(strings.TrimSpace(c))
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidColor, err)
		}
		palette = append(palette, rgba)
	}
	return palette, nil
}

func resolveFont(ctx context.Context, opts Options) (fonts.Font, error) {
	if opts.FontPath != "" {
		if _, err := os.Stat(opts.FontPath); err != nil {
			return fonts.Font{}, fmt.Errorf("%w: font: %v", ErrInvalidOption, err)
		}
		return fonts.Font{Path: opts.FontPath, Source: fonts.SourceLocal}, nil
	}

	d := opts.Fonts
	if d == nil {
		d = fonts.NewDiscoverer(config.FontsDir, true)
	}
	font, err := d.Discover(ctx)
	if err != nil {
		return fonts.Font{}, fmt.Errorf("font discovery failed: %w", err)
	}

	if font.Preferred() {
		log.Printf("[wordcloud] using font %s (%s)", font.Path, font.Source)
	} else {
		log.Printf("[wordcloud] Roboto Bold not available, using %s font %s", font.Source, font.Path)
	}
	return font, nil
}

// layout runs the placement library, which panics on some internal failures
func layout(weights map[string]int, palette []color.Color, bg color.Color, fontPath string, w, h int, t Tuning) (img image.Image, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("word cloud layout failed: %v", r)
		}
	}()

	wc := wordclouds.NewWordcloud(weights,
		wordclouds.FontFile(fontPath),
		wordclouds.FontMinSize(t.MinFontSize),
		wordclouds.FontMaxSize(t.MaxFontSize),
		wordclouds.Colors(palette),
		wordclouds.BackgroundColor(bg),
		wordclouds.Width(w),
		wordclouds.Height(h),
		wordclouds.RandomPlacement(false),
	)
	img = wc.Draw()
	if img == nil {
		return nil, errors.New("word cloud layout produced no image")
	}
	return img, nil
}

func encodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	enc := png.Encoder{CompressionLevel: png.BestCompression}
	if err := enc.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// DataURI wraps base64 PNG data for use in an <img> src
func DataURI(b64 string) string {
	return "data:image/png;base64," + b64
}
