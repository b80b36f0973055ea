// Package terminal provides small helpers for interactive terminal output.
package terminal

import (
	"fmt"
	"io"
	"math"
	"os"

	"golang.org/x/term"
)

const defaultWidth = 80

// IsInteractive reports whether f is attached to a terminal.
func IsInteractive(f *os.File) bool {
	if f == nil {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

// Width returns the width of the terminal behind f, or 80 when unknown.
func Width(f *os.File) int {
	if f != nil {
		if width, _, err := term.GetSize(int(f.Fd())); err == nil && width > 0 {
			return width
		}
	}
	return defaultWidth
}

// LinesFor returns how many rows textLength characters occupy at width,
// plus the empty row the cursor moves to after Enter.
func LinesFor(textLength, width int) int {
	if width <= 0 {
		width = defaultWidth
	}
	total := int(math.Ceil(float64(textLength) / float64(width)))
	if total < 1 {
		total = 1
	}
	return total + 1
}

// ClearPreviousLines erases a prompt and its echoed input from stdout.
// textLength is the number of characters printed (prompt plus input).
// Used after masked password input so the prompt does not linger.
func ClearPreviousLines(textLength int) {
	ClearLines(os.Stdout, LinesFor(textLength, Width(os.Stdout)))
}

// ClearLines moves up and clears n lines on w, ending at column 0.
func ClearLines(w io.Writer, n int) {
	for i := 0; i < n; i++ {
		fmt.Fprint(w, "\r\x1b[2K")
		if i < n-1 {
			fmt.Fprint(w, "\x1b[1A")
		}
	}
}
