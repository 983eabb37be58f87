package config

import (
	"image/color"
	"testing"
	"time"
)

// TestParseHexColor_ValidInputs covers prefix handling, case and byte order
func TestParseHexColor_ValidInputs(t *testing.T) {
	testCases := []struct {
		name                string
		input               string
		wantR, wantG, wantB uint8
	}{
		{name: "brand green with hash", input: "#1DB954", wantR: 29, wantG: 185, wantB: 84},
		{name: "brand green lowercase", input: "1db954", wantR: 29, wantG: 185, wantB: 84},
		{name: "mixed case", input: "Ff00fF", wantR: 255, wantG: 0, wantB: 255},
		{name: "black", input: "#000000", wantR: 0, wantG: 0, wantB: 0},
		{name: "white", input: "#FFFFFF", wantR: 255, wantG: 255, wantB: 255},
		{name: "distinct channels", input: "#010203", wantR: 1, wantG: 2, wantB: 3},
		{name: "spotify gray", input: "#B3B3B3", wantR: 179, wantG: 179, wantB: 179},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			r, g, b, err := ParseHexColor(tc.input)
			if err != nil {
				t.Fatalf("ParseHexColor(%q) returned error: %v", tc.input, err)
			}
			if r != tc.wantR || g != tc.wantG || b != tc.wantB {
				t.Errorf("ParseHexColor(%q) = (%d, %d, %d), want (%d, %d, %d)",
					tc.input, r, g, b, tc.wantR, tc.wantG, tc.wantB)
			}
		})
	}
}

func TestParseHexColor_InvalidInputs(t *testing.T) {
	inputs := []string{
		"",
		"#",
		"FFF",
		"#FFF",
		"FFFFFFF",
		"##FF0000",
		"GGGGGG",
		"FF00GG",
		"FF 000",
		"FF#000",
		"FF0000\n",
		"+FFFFF",
		"red",
	}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			if _, _, _, err := ParseHexColor(input); err == nil {
				t.Errorf("ParseHexColor(%q) expected error, got nil", input)
			}
		})
	}
}

func TestDefaultPaletteParses(t *testing.T) {
	for _, hex := range DefaultPalette {
		if _, err := HexToRGBA(hex); err != nil {
			t.Errorf("default palette entry %q does not parse: %v", hex, err)
		}
	}
}

func TestParseBackground(t *testing.T) {
	black := color.RGBA{A: 255}

	testCases := []struct {
		input           string
		wantColor       color.RGBA
		wantTransparent bool
	}{
		{input: "rgba(0,0,0,0)", wantColor: black, wantTransparent: true},
		{input: "rgba( 0, 0, 0, 0 )", wantColor: black, wantTransparent: true},
		{input: "rgba(255,255,255,0)", wantColor: black, wantTransparent: true},
		{input: "transparent", wantColor: black, wantTransparent: true},
		{input: "", wantColor: black, wantTransparent: true},
		{input: "black", wantColor: black},
		{input: "White", wantColor: color.RGBA{R: 255, G: 255, B: 255, A: 255}},
		{input: "rgba(18,18,18,1)", wantColor: color.RGBA{R: 18, G: 18, B: 18, A: 255}},
		{input: "rgba(18,18,18,0.5)", wantColor: color.RGBA{R: 18, G: 18, B: 18, A: 255}},
		{input: "rgb(29,185,84)", wantColor: color.RGBA{R: 29, G: 185, B: 84, A: 255}},
		{input: "#121212", wantColor: color.RGBA{R: 18, G: 18, B: 18, A: 255}},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			bg, err := ParseBackground(tc.input)
			if err != nil {
				t.Fatalf("ParseBackground(%q) returned error: %v", tc.input, err)
			}
			if bg.Color != tc.wantColor {
				t.Errorf("colour = %v, want %v", bg.Color, tc.wantColor)
			}
			if bg.Transparent != tc.wantTransparent {
				t.Errorf("transparent = %t, want %t", bg.Transparent, tc.wantTransparent)
			}
		})
	}
}

func TestParseBackground_Invalid(t *testing.T) {
	for _, input := range []string{"rgba(0,0,0)", "rgba(300,0,0,1)", "rgba(0,0,0,2)", "rgb(a,b,c)", "purple", "#12"} {
		if _, err := ParseBackground(input); err == nil {
			t.Errorf("ParseBackground(%q) expected error, got nil", input)
		}
	}
}

func TestLoadServer_Defaults(t *testing.T) {
	for _, key := range []string{"HOST", "PORT", "CORS_ORIGINS", "REDIS_ADDR", "STORE_DIR", "S3_BUCKET", "CACHE_TTL", "RATE_LIMIT_RPS"} {
		t.Setenv(key, "")
	}

	cfg, err := LoadServer()
	if err != nil {
		t.Fatalf("LoadServer() returned error: %v", err)
	}

	if got := cfg.HTTP.Addr(); got != "127.0.0.1:5001" {
		t.Errorf("Addr() = %q, want 127.0.0.1:5001", got)
	}
	if len(cfg.HTTP.CORSOrigins) != 1 || cfg.HTTP.CORSOrigins[0] != "*" {
		t.Errorf("CORSOrigins = %v, want [*]", cfg.HTTP.CORSOrigins)
	}
	if cfg.Cache.TTL != time.Hour {
		t.Errorf("Cache.TTL = %s, want 1h", cfg.Cache.TTL)
	}
	if cfg.Limits.RateRPS != 2 || cfg.Limits.RateBurst != 4 {
		t.Errorf("rate limit = %g/%d, want 2/4", cfg.Limits.RateRPS, cfg.Limits.RateBurst)
	}
}

func TestLoadServer_Overrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("CORS_ORIGINS", "https://open.spotify.com, chrome-extension://abc ,")
	t.Setenv("MAX_DIMENSION", "not-a-number")
	t.Setenv("CACHE_TTL", "5m")
	t.Setenv("FONT_DOWNLOAD", "false")

	cfg, err := LoadServer()
	if err != nil {
		t.Fatalf("LoadServer() returned error: %v", err)
	}

	if cfg.HTTP.Port != "9090" {
		t.Errorf("Port = %q, want 9090", cfg.HTTP.Port)
	}
	if len(cfg.HTTP.CORSOrigins) != 2 || cfg.HTTP.CORSOrigins[1] != "chrome-extension://abc" {
		t.Errorf("CORSOrigins = %v", cfg.HTTP.CORSOrigins)
	}
	if cfg.Limits.MaxDimension != 4096 {
		t.Errorf("invalid MAX_DIMENSION should fall back to 4096, got %d", cfg.Limits.MaxDimension)
	}
	if cfg.Cache.TTL != 5*time.Minute {
		t.Errorf("Cache.TTL = %s, want 5m", cfg.Cache.TTL)
	}
	if cfg.Fonts.Download {
		t.Error("Fonts.Download should be false")
	}
}

func TestServerValidate(t *testing.T) {
	valid := Server{
		HTTP:   HTTPConfig{Port: "5001"},
		Limits: LimitsConfig{MaxBodyBytes: 1, MaxDimension: 1, RateRPS: 1, RateBurst: 1},
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("Validate() on valid config: %v", err)
	}

	broken := []func(*Server){
		func(s *Server) { s.HTTP.Port = "" },
		func(s *Server) { s.Limits.MaxBodyBytes = 0 },
		func(s *Server) { s.Limits.MaxDimension = -1 },
		func(s *Server) { s.Limits.RateRPS = -1 },
		func(s *Server) { s.Limits.RateBurst = 0 },
		func(s *Server) { s.Cache = CacheConfig{RedisAddr: "localhost:6379"} },
	}
	for i, mutate := range broken {
		cfg := valid
		mutate(&cfg)
		if err := cfg.Validate(); err == nil {
			t.Errorf("case %d: expected validation error", i)
		}
	}
}
