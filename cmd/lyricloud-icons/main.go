package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"
	"github.com/linuxmatters/lyricloud/internal/cli"
	"github.com/linuxmatters/lyricloud/internal/config"
	"github.com/linuxmatters/lyricloud/internal/icon"
)

// version is set via ldflags at build time
var version = "dev"

var CLI struct {
	OutputDir string `short:"o" name:"output-dir" default:"${output_dir}" help:"Directory to write the icons to."`
	Sizes     []int  `default:"16,48,128" help:"Icon sizes in pixels."`
	Version   bool   `help:"Show version information."`
}

func main() {
	kong.Parse(&CLI,
		kong.Name("lyricloud-icons"),
		kong.Description("Draw the Lyricloud icon set."),
		kong.Vars{"output_dir": config.DefaultIconDir},
		kong.UsageOnError(),
		kong.Help(cli.StyledHelpPrinter(cli.AppName, "Draw the Lyricloud icon set.")),
	)

	if CLI.Version {
		cli.PrintVersion(version)
		os.Exit(0)
	}

	sizes := CLI.Sizes
	if len(sizes) == 0 {
		sizes = config.IconSizes
	}

	fmt.Fprintln(cli.Stdout, cli.TitleStyle.Render("Creating icons..."))
	paths, err := icon.WriteAll(CLI.OutputDir, sizes)
	for i, path := range paths {
		cli.PrintSuccess(fmt.Sprintf("Created %s (%dx%d)", path, sizes[i], sizes[i]))
	}
	if err != nil {
		cli.PrintError(err.Error())
		os.Exit(1)
	}

	dir, _ := filepath.Abs(CLI.OutputDir)
	fmt.Fprintln(cli.Stdout)
	cli.PrintSuccess("All icons created successfully!")
	cli.PrintInfo("Icons saved in", dir)
}
