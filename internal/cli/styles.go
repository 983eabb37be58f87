package cli

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/lipgloss"
)

const AppName = "Lyricloud ♫"

// Styles
var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(Green).
			MarginBottom(1)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(LightGray).
			Italic(true)

	SuccessStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(Green)

	ErrorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(Red)

	WarningStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(Amber)

	KeyStyle = lipgloss.NewStyle().
			Foreground(LightGray)

	ValueStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(White)

	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Green).
			Padding(1, 2)
)

// Output writers; tests swap these
var (
	Stdout io.Writer = os.Stdout
	Stderr io.Writer = os.Stderr
)

// PrintVersion prints version information
func PrintVersion(version string) {
	fmt.Fprintln(Stdout, TitleStyle.Render(AppName))
	fmt.Fprintf(Stdout, "%s %s\n", KeyStyle.Render("Version:"), ValueStyle.Render(version))
}

// PrintError prints an error message to stderr
func PrintError(message string) {
	fmt.Fprintf(Stderr, "%s %s\n", ErrorStyle.Render("Error:"), message)
}

// PrintWarning goes to stderr so --base64 output stays clean
func PrintWarning(message string) {
	fmt.Fprintf(Stderr, "%s %s\n", WarningStyle.Render("Warning:"), message)
}

func PrintSuccess(message string) {
	fmt.Fprintf(Stdout, "%s %s\n", SuccessStyle.Render("✓"), message)
}

func PrintInfo(key, value string) {
	fmt.Fprintf(Stdout, "%s %s\n", KeyStyle.Render(key+":"), ValueStyle.Render(value))
}

// FormatDuration formats a duration nicely
func FormatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%.0fms", d.Seconds()*1000)
	}
	return fmt.Sprintf("%.1fs", d.Seconds())
}

// FormatBytes formats bytes into human-readable format
func FormatBytes(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}
