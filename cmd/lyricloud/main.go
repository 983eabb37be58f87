package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/linuxmatters/lyricloud/internal/cli"
	"github.com/linuxmatters/lyricloud/internal/config"
	"github.com/linuxmatters/lyricloud/internal/fonts"
	"github.com/linuxmatters/lyricloud/internal/ui"
	"github.com/linuxmatters/lyricloud/internal/wordcloud"
	"github.com/mattn/go-isatty"
)

// version is set via ldflags at build time
var version = "dev"

var CLI struct {
	Lyrics     string   `short:"l" help:"Lyrics text or path to a lyrics file. Read from stdin when omitted."`
	Colors     []string `short:"c" help:"Hex colours for the words, space or comma separated. Repeatable."`
	ColorsJSON string   `name:"colors-json" type:"existingfile" help:"JSON file with a \"colors\" array."`
	Output     string   `short:"o" default:"${output}" help:"Output image path."`
	Width      int      `default:"${width}" help:"Image width in pixels."`
	Height     int      `default:"${height}" help:"Image height in pixels."`
	MaxWords   int      `name:"max-words" default:"${max_words}" help:"Maximum number of words."`
	Background string   `default:"${background}" help:"Background colour; rgba(0,0,0,0) is transparent."`
	Base64     bool     `name:"base64" help:"Print the PNG as base64 instead of saving a file."`
	Font       string   `type:"existingfile" help:"TrueType font to use instead of discovering Roboto Bold."`
	FontsDir   string   `name:"fonts-dir" default:"${fonts_dir}" help:"Directory for the local or downloaded font."`
	NoDownload bool     `name:"no-download" help:"Never download Roboto Bold."`
	Version    bool     `help:"Show version information."`
}

func main() {
	kong.Parse(&CLI, parserOptions()...)

	if CLI.Version {
		cli.PrintVersion(version)
		os.Exit(0)
	}

	lyrics, err := readLyrics(CLI.Lyrics, os.Stdin)
	if err != nil {
		cli.PrintError(err.Error())
		os.Exit(1)
	}

	colors, usedDefault, err := resolveColors(CLI.Colors, CLI.ColorsJSON)
	if err != nil {
		cli.PrintError(err.Error())
		os.Exit(1)
	}
	if usedDefault {
		cli.PrintWarning("No colours provided, using the default palette")
	}
	if len(colors) == 0 {
		cli.PrintError("No colours provided")
		os.Exit(1)
	}

	opts := wordcloud.Options{
		Lyrics:          lyrics,
		Colors:          colors,
		Width:           CLI.Width,
		Height:          CLI.Height,
		Background:      CLI.Background,
		MaxWords:        CLI.MaxWords,
		RelativeScaling: config.DefaultRelativeScaling,
		ReturnBase64:    CLI.Base64,
		FontPath:        CLI.Font,
		Fonts:           fonts.NewDiscoverer(CLI.FontsDir, !CLI.NoDownload),
	}
	if !CLI.Base64 {
		opts.OutputPath = CLI.Output
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if CLI.Base64 {
		res, err := wordcloud.Generate(ctx, opts)
		if err != nil {
			cli.PrintError(err.Error())
			os.Exit(1)
		}
		fmt.Println(res.Base64)
		return
	}

	if !isatty.IsTerminal(os.Stdout.Fd()) {
		res, err := wordcloud.Generate(ctx, opts)
		if err != nil {
			cli.PrintError(err.Error())
			os.Exit(1)
		}
		cli.PrintSuccess(fmt.Sprintf("Word cloud saved to: %s (%d words, %s)", CLI.Output, res.Words, cli.FormatBytes(int64(len(res.PNG)))))
		return
	}

	if err := generateWithUI(ctx, opts); err != nil {
		cli.PrintError(err.Error())
		os.Exit(1)
	}
	cli.PrintSuccess("Word cloud generated successfully!")
}

var errCancelled = errors.New("cancelled")

func parserOptions() []kong.Option {
	return []kong.Option{
		kong.Name("lyricloud"),
		kong.Description("Generate a word cloud from song lyrics using album cover colours."),
		kong.Vars{
			"version":    version,
			"output":     config.DefaultOutput,
			"width":      strconv.Itoa(config.DefaultWidth),
			"height":     strconv.Itoa(config.DefaultHeight),
			"max_words":  strconv.Itoa(config.DefaultMaxWords),
			"background": config.DefaultBackground,
			"fonts_dir":  config.FontsDir,
		},
		kong.UsageOnError(),
		kong.Help(cli.StyledHelpPrinter(cli.AppName, "Generate a word cloud from song lyrics using album cover colours.")),
	}
}

// generateWithUI runs Generate in a goroutine and feeds stages to bubbletea
func generateWithUI(ctx context.Context, opts wordcloud.Options) error {
	p := tea.NewProgram(ui.NewGenerateModel())

	// Diagnostics would tear the TUI; the summary shows the font instead
	log.SetOutput(io.Discard)
	defer log.SetOutput(os.Stderr)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	results := make(chan error, 1)
	go func() {
		opts.Progress = func(s wordcloud.Stage) {
			p.Send(ui.StageMsg{Stage: s})
		}

		res, err := wordcloud.Generate(ctx, opts)
		results <- err
		if err != nil {
			p.Send(ui.ErrMsg{Err: err})
			return
		}
		p.Send(ui.DoneMsg{
			Output: opts.OutputPath,
			Bytes:  len(res.PNG),
			Words:  res.Words,
			Font:   fmt.Sprintf("%s (%s)", res.Font.Path, res.Font.Source),
			Width:  opts.Width,
			Height: opts.Height,
		})
	}()

	final, err := p.Run()
	return uiOutcome(final, err, cancel, results)
}

// uiOutcome waits for the generator once the UI has exited. Quitting early
// cancels generation and is reported as errCancelled unless the cloud was
// already written.
func uiOutcome(final tea.Model, runErr error, cancel context.CancelFunc, results <-chan error) error {
	if runErr == nil && !ui.Cancelled(final) {
		return <-results
	}

	cancel()
	err := <-results
	if runErr != nil {
		return fmt.Errorf("running UI: %w", runErr)
	}
	if err == nil {
		return nil
	}
	if errors.Is(err, context.Canceled) {
		return errCancelled
	}
	return err
}

// readLyrics treats arg as a file path when one exists, otherwise as the text
// itself. An empty arg reads stdin.
func readLyrics(arg string, stdin io.Reader) (string, error) {
	if arg == "" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("reading stdin: %w", err)
		}
		return string(data), nil
	}

	if info, err := os.Stat(arg); err == nil && !info.IsDir() {
		data, err := os.ReadFile(arg)
		if err != nil {
			return "", fmt.Errorf("reading lyrics file: %w", err)
		}
		return string(data), nil
	}
	return arg, nil
}

// resolveColors applies --colors, then --colors-json, then the default
// palette. The bool reports whether the default was used.
func resolveColors(flags []string, jsonPath string) ([]string, bool, error) {
	var colors []string
	for _, f := range flags {
		colors = append(colors, strings.FieldsFunc(f, func(r rune) bool {
			return r == ' ' || r == ','
		})...)
	}
	if len(colors) > 0 {
		return colors, false, nil
	}

	if jsonPath != "" {
		data, err := os.ReadFile(jsonPath)
		if err != nil {
			return nil, false, fmt.Errorf("reading colours file: %w", err)
		}
		var payload struct {
			Colors []string `json:"colors"`
		}
		if err := json.Unmarshal(data, &payload); err != nil {
			return nil, false, fmt.Errorf("parsing colours file: %w", err)
		}
		if len(payload.Colors) == 0 {
			return nil, false, errors.New("no colours in " + jsonPath)
		}
		return payload.Colors, false, nil
	}

	return append([]string(nil), config.DefaultPalette...), true, nil
}
