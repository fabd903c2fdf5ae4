package outwriter

import (
	"os"

	"golang.org/x/term"
)

// GetMaxSegmentWidth calculates the maximum width for segment names in table output
// based on terminal width and how many value columns sit beside them.
func GetMaxSegmentWidth(valueColumns int) int {
	termWidth := 80 // Conservative default for narrow terminals and CI
	if detected, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && detected > 0 {
		termWidth = detected
	}
	return segmentWidth(termWidth, valueColumns)
}

func segmentWidth(termWidth, valueColumns int) int {
	// Period column plus borders and padding
	baseWidth := 30
	baseWidth += valueColumns * 16

	available := termWidth - baseWidth
	if available < 12 {
		return 12
	}
	if available > 48 {
		return 48
	}
	return available
}
