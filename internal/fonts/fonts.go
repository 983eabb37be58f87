// Package fonts locates a TrueType font the word cloud layout can load.
//
// Roboto Bold is preferred: first a copy in the project fonts directory, then
// the usual system locations, then a download from Google Fonts. When none of
// those work a medium/bold system font is used, and as a last resort the
// embedded Go Bold font is written next to where Roboto would have been.
package fonts

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/golang/freetype/truetype"
	"github.com/linuxmatters/lyricloud/internal/config"
	"golang.org/x/image/font/gofont/gobold"
)

// Source records where a discovered font came from
type Source string

const (
	SourceLocal      Source = "local"
	SourceSystem     Source = "system"
	SourceDownloaded Source = "downloaded"
	SourceFallback   Source = "fallback"
	SourceEmbedded   Source = "embedded"
)

// Font is a usable font file on disk
type Font struct {
	Path   string
	Source Source
}

// Preferred reports whether the font is Roboto rather than a fallback
func (f Font) Preferred() bool {
	return f.Source == SourceLocal || f.Source == SourceSystem || f.Source == SourceDownloaded
}

// maxFontBytes bounds a downloaded font; Roboto Bold is around 170 KB
const maxFontBytes = 16 << 20

// Discoverer walks the font fallback chain. The zero value is not useful;
// build one with NewDiscoverer.
type Discoverer struct {
	Dir         string   // project fonts directory
	Roboto      []string // system Roboto candidates, checked after Dir
	Fallbacks   []string // non-Roboto system fonts
	DownloadURL string   // empty disables the download step
	Client      *http.Client
}

// NewDiscoverer returns a discoverer with the candidate lists for the running OS
func NewDiscoverer(dir string, download bool) *Discoverer {
	if dir == "" {
		dir = config.FontsDir
	}

	d := &Discoverer{
		Dir:       dir,
		Roboto:    robotoCandidates(runtime.GOOS),
		Fallbacks: fallbackCandidates(runtime.GOOS),
		Client:    &http.Client{Timeout: 30 * time.Second},
	}
	if download {
		d.DownloadURL = config.RobotoBoldURL
	}
	return d
}

// LocalPath is where Roboto Bold is expected or downloaded to
func (d *Discoverer) LocalPath() string {
	return filepath.Join(d.Dir, config.RobotoBoldFile)
}

// Discover returns the best available font. It only fails when even the
// embedded font cannot be written to Dir.
func (d *Discoverer) Discover(ctx context.Context) (Font, error) {
	if err := os.MkdirAll(d.Dir, 0755); err != nil {
		return Font{}, fmt.Errorf("failed to create fonts directory: %w", err)
	}

	local := d.LocalPath()
	if usable(local) {
		return Font{Path: local, Source: SourceLocal}, nil
	}

	for _, path := range d.Roboto {
		if usable(path) {
			return Font{Path: path, Source: SourceSystem}, nil
		}
	}

	if d.DownloadURL != "" {
		if err := d.download(ctx, local); err != nil {
			log.Printf("[fonts] could not download Roboto Bold: %v", err)
		} else if usable(local) {
			return Font{Path: local, Source: SourceDownloaded}, nil
		}
	}

	for _, path := range d.Fallbacks {
		if usable(path) {
			return Font{Path: path, Source: SourceFallback}, nil
		}
	}

	path, err := d.writeEmbedded()
	if err != nil {
		return Font{}, err
	}
	return Font{Path: path, Source: SourceEmbedded}, nil
}

// download fetches the font to dest via a temp file so a failed transfer
// never leaves a truncated font behind.
func (d *Discoverer) download(ctx context.Context, dest string) error {
	client := d.Client
	if client == nil {
		client = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, d.DownloadURL, nil)
	if err != nil {
		return err
	}

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("font server returned status %d", resp.StatusCode)
	}

	tmp, err := os.CreateTemp(d.Dir, ".download-*.ttf")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	n, err := io.Copy(tmp, io.LimitReader(resp.Body, maxFontBytes+1))
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return err
	}
	if n > maxFontBytes {
		return errors.New("font download exceeds size limit")
	}
	if !usable(tmp.Name()) {
		return errors.New("downloaded file is not a TrueType font")
	}

	return os.Rename(tmp.Name(), dest)
}

func (d *Discoverer) writeEmbedded() (string, error) {
	path := filepath.Join(d.Dir, config.EmbeddedFontFile)
	if usable(path) {
		return path, nil
	}
	if err := os.WriteFile(path, gobold.TTF, 0644); err != nil {
		return "", fmt.Errorf("failed to write embedded font: %w", err)
	}
	return path, nil
}

// usable reports whether path is a regular file that parses as TrueType,
// which is what the layout library's font loader requires.
func usable(path string) bool {
	info, err := os.Stat(path)
	if err != nil || info.IsDir() || info.Size() == 0 {
		return false
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return false
	}
	_, err = truetype.Parse(data)
	return err == nil
}

func robotoCandidates(goos string) []string {
	switch goos {
	case "darwin":
		return expandHome([]string{
			"/System/Library/Fonts/Supplemental/Roboto-Bold.ttf",
			"/Library/Fonts/Roboto-Bold.ttf",
			"~/Library/Fonts/Roboto-Bold.ttf",
			"/System/Library/Fonts/Supplemental/Roboto-Regular.ttf",
			"/Library/Fonts/Roboto-Regular.ttf",
		})
	case "linux":
		return expandHome([]string{
			"~/.local/share/fonts/Roboto-Bold.ttf",
			"/usr/share/fonts/truetype/roboto/Roboto-Bold.ttf",
			"/usr/share/fonts/TTF/Roboto-Bold.ttf",
			"/usr/share/fonts/truetype/roboto/Roboto-Regular.ttf",
		})
	case "windows":
		return []string{
			"C:/Windows/Fonts/roboto-bold.ttf",
			"C:/Windows/Fonts/roboto-regular.ttf",
		}
	}
	return nil
}

func fallbackCandidates(goos string) []string {
	switch goos {
	case "darwin":
		return []string{
			"/System/Library/Fonts/Supplemental/SF-Pro-Display-Medium.otf",
			"/System/Library/Fonts/HelveticaNeue-Medium.ttc",
		}
	case "linux":
		return []string{
			"/usr/share/fonts/truetype/liberation/LiberationSans-Bold.ttf",
			"/usr/share/fonts/truetype/dejavu/DejaVuSans-Bold.ttf",
		}
	case "windows":
		return []string{
			"C:/Windows/Fonts/arialbd.ttf",
			"C:/Windows/Fonts/segoeuib.ttf",
		}
	}
	return nil
}

func expandHome(paths []string) []string {
	home, err := os.UserHomeDir()
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		if strings.HasPrefix(p, "~/") {
			if err != nil {
				continue
			}
			p = filepath.Join(home, p[2:])
		}
		out = append(out, p)
	}
	return out
}
