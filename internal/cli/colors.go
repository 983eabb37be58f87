package cli

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/linuxmatters/lyricloud/internal/config"
)

// Brand palette shared by the CLI and TUI
var (
	Green     = lipgloss.Color(config.BrandGreen)
	LightGray = lipgloss.Color(config.BrandGray)
	White     = lipgloss.Color(config.BrandWhite)
	Amber     = lipgloss.Color("#F59B23") // warnings
	Red       = lipgloss.Color("#E22134") // errors
	DimGray   = lipgloss.Color("#6A6A6A")
)
