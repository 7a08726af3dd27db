package ui

import (
	"os"

	"github.com/fatih/color"
	"golang.org/x/term"
)

// Color definitions for consistent styling across the UI.
var (
	// Headers: bold
	colorHeader = color.New(color.Bold)

	// Phase names and positions
	colorAccent = color.New(color.FgCyan, color.Bold)

	// Success lines: green
	colorOK = color.New(color.FgGreen)

	// Rejections and validation failures
	colorError = color.New(color.FgRed, color.Bold)

	// Warnings: yellow to make it pop
	colorWarn = color.New(color.FgYellow)

	// Muted: for secondary information
	colorMuted = color.New(color.FgWhite, color.Faint)
)

// termWidth returns the terminal width, or a default if detection fails.
func termWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return 80 // sensible default
	}
	return width
}

// DisableColor disables all color output.
func DisableColor() {
	color.NoColor = true
}

// EnableColor enables color output (if terminal supports it).
func EnableColor() {
	color.NoColor = false
}

func formatHeader(s string) string { return colorHeader.Sprint(s) }
func formatAccent(s string) string { return colorAccent.Sprint(s) }
func formatOK(s string) string     { return colorOK.Sprint(s) }
func formatError(s string) string  { return colorError.Sprint(s) }
func formatWarn(s string) string   { return colorWarn.Sprint(s) }
func formatMuted(s string) string  { return colorMuted.Sprint(s) }
