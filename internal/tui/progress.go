// Package tui provides terminal rendering helpers for judotimer.
package tui

import (
	"os"

	"github.com/charmbracelet/bubbles/progress"
)

// DefaultBarWidth fits a bar next to a status line on an 80 column terminal.
const DefaultBarWidth = 24

// ProgressBar wraps the charmbracelet/bubbles progress bar with judotimer
// styling. Supports NO_COLOR.
type ProgressBar struct {
	bar   progress.Model
	width int
}

// NewProgressBar creates a progress bar. Uses a gradient when colors are
// available and a solid fill otherwise.
func NewProgressBar(width int) *ProgressBar {
	if width <= 0 {
		width = DefaultBarWidth
	}

	var bar progress.Model
	if HasColorSupport() {
		bar = progress.New(
			progress.WithWidth(width),
			progress.WithScaledGradient("#FF5F5F", "#5FD75F"),
		)
	} else {
		bar = progress.New(
			progress.WithWidth(width),
			progress.WithSolidFill("#808080"),
		)
	}

	return &ProgressBar{bar: bar, width: width}
}

// Render returns the bar for percent (0.0-1.0) without animation.
func (pb *ProgressBar) Render(percent float64) string {
	return pb.bar.ViewAs(min(max(percent, 0), 1))
}

// Width returns the bar width.
func (pb *ProgressBar) Width() int {
	return pb.width
}

// HasColorSupport returns false if NO_COLOR is set (with any value) or
// TERM=dumb.
func HasColorSupport() bool {
	if _, exists := os.LookupEnv("NO_COLOR"); exists {
		return false
	}
	return os.Getenv("TERM") != "dumb"
}
