package config

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// Brand colours
const (
	BrandGreen = "#1DB954"
	BrandWhite = "#FFFFFF"
	BrandGray  = "#B3B3B3"
)

// DefaultPalette is used by the CLI when no colours are supplied
var DefaultPalette = []string{BrandGreen, BrandWhite, BrandGray, "#000000"}

// Word cloud defaults
const (
	DefaultWidth           = 1920
	DefaultHeight          = 1080
	DefaultMaxWords        = 200
	DefaultRelativeScaling = 0.5
	DefaultBackground      = "rgba(0,0,0,0)" // Transparent
	DefaultOutput          = "wordcloud.png"
)

// Layout tuning handed to the word cloud layout
const (
	MinFontSize      = 40
	MaxFontSize      = 300
	PreferHorizontal = 0.6 // 60% horizontal, 40% vertical
	FontStep         = 4
	Margin           = 0
	Collocations     = false
	NormalizePlurals = true
	Repeat           = true
)

// TransparentThreshold is the per-channel value below which a pixel counts as
// background when masking a transparent cloud.
const TransparentThreshold = 10

// Icon settings
var IconSizes = []int{16, 48, 128}

const DefaultIconDir = "icons"

// Fonts
const (
	FontsDir         = "fonts"
	RobotoBoldFile   = "Roboto-Bold.ttf"
	RobotoBoldURL    = "https://github.com/google/fonts/raw/main/apache/roboto/Roboto-Bold.ttf"
	EmbeddedFontFile = "GoBold.ttf"
)

// ParseHexColor parses a six digit hex colour with an optional leading '#'.
func ParseHexColor(s string) (uint8, uint8, uint8, error) {
	hex := strings.TrimPrefix(s, "#")
	if len(hex) != 6 {
		return 0, 0, 0, fmt.Errorf("invalid hex colour %q: expected 6 hex digits", s)
	}

	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("invalid hex colour %q: %w", s, err)
	}

	return uint8(v >> 16), uint8(v >> 8), uint8(v), nil
}

// HexToRGBA converts a hex colour to an opaque color.RGBA
func HexToRGBA(s string) (color.RGBA, error) {
	r, g, b, err := ParseHexColor(s)
	if err != nil {
		return color.RGBA{}, err
	}
	return color.RGBA{R: r, G: g, B: b, A: 255}, nil
}

// Background describes the canvas behind a word cloud.
// Transparent backgrounds are rendered on Color (black) and masked afterwards.
type Background struct {
	Color       color.RGBA
	Transparent bool
}

// ParseBackground accepts rgba(r,g,b,a), rgb(r,g,b), a hex colour, or one of
// black, white and transparent.
func ParseBackground(s string) (Background, error) {
	black := color.RGBA{A: 255}
	v := strings.ToLower(strings.Join(strings.Fields(s), ""))

	switch {
	case v == "" || v == "transparent" || v == "rgba(0,0,0,0)":
		return Background{Color: black, Transparent: true}, nil
	case v == "black":
		return Background{Color: black}, nil
	case v == "white":
		return Background{Color: color.RGBA{R: 255, G: 255, B: 255, A: 255}}, nil
	case strings.HasPrefix(v, "rgba(") && strings.HasSuffix(v, ")"):
		c, alpha, err := parseComponents(v[len("rgba("):len(v)-1], 4)
		if err != nil {
			return Background{}, fmt.Errorf("invalid background %q: %w", s, err)
		}
		// Any fully transparent rgba() renders on black, like rgba(0,0,0,0)
		if alpha == 0 {
			return Background{Color: black, Transparent: true}, nil
		}
		return Background{Color: c}, nil
	case strings.HasPrefix(v, "rgb(") && strings.HasSuffix(v, ")"):
		c, _, err := parseComponents(v[len("rgb("):len(v)-1], 3)
		if err != nil {
			return Background{}, fmt.Errorf("invalid background %q: %w", s, err)
		}
		return Background{Color: c}, nil
	}

	c, err := HexToRGBA(v)
	if err != nil {
		return Background{}, fmt.Errorf("invalid background %q: %w", s, err)
	}
	return Background{Color: c}, nil
}

// parseComponents reads n comma separated channels. The optional fourth
// channel is a CSS alpha in [0, 1] and is returned separately.
func parseComponents(s string, n int) (color.RGBA, float64, error) {
	fields := strings.Split(s, ",")
	if len(fields) != n {
		return color.RGBA{}, 0, fmt.Errorf("expected %d components, got %d", n, len(fields))
	}

	var rgb [3]uint8
	for i := 0; i < 3; i++ {
		v, err := strconv.ParseUint(fields[i], 10, 8)
		if err != nil {
			return color.RGBA{}, 0, fmt.Errorf("component %q: %w", fields[i], err)
		}
		rgb[i] = uint8(v)
	}

	alpha := 1.0
	if n == 4 {
		a, err := strconv.ParseFloat(fields[3], 64)
		if err != nil || a < 0 || a > 1 {
			return color.RGBA{}, 0, fmt.Errorf("alpha %q must be between 0 and 1", fields[3])
		}
		alpha = a
	}

	return color.RGBA{R: rgb[0], G: rgb[1], B: rgb[2], A: 255}, alpha, nil
}
