// Package banner prints the startup summary box.
package banner

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/clickflow/clickflow/internal/config"
)

// ANSI color codes
const (
	reset    = "\033[0m"
	bold     = "\033[1m"
	dim      = "\033[2m"
	blue     = "\033[34m"
	green    = "\033[32m"
	yellow   = "\033[33m"
	boldBlue = "\033[1;34m"
)

// Box drawing characters
const (
	topLeft     = "╭"
	topRight    = "╮"
	bottomLeft  = "╰"
	bottomRight = "╯"
	horizontal  = "─"
	vertical    = "│"
	bullet      = "●"
)

// Banner handles pretty startup output
type Banner struct {
	writer io.Writer
	width  int
}

// New creates a new Banner that writes to stdout
func New() *Banner {
	return &Banner{
		writer: os.Stdout,
		width:  60,
	}
}

// NewWithWriter creates a Banner with a custom writer (for testing)
func NewWithWriter(w io.Writer) *Banner {
	return &Banner{
		writer: w,
		width:  60,
	}
}

// Print displays the startup banner with the profile summary.
func (b *Banner) Print(profilePath string, profile *config.Profile, loops int) {
	b.printTop()
	b.printLine(fmt.Sprintf("%s%sClickFlow%s", bold, blue, reset), len("ClickFlow"))

	failsafe := fmt.Sprintf("%sfailsafe off%s", yellow, reset)
	failsafeLen := len("failsafe off")
	if profile.FailsafeEnabled {
		failsafe = fmt.Sprintf("%sfailsafe on%s", green, reset)
		failsafeLen = len("failsafe on")
	}

	b.printPlain(fmt.Sprintf("%s %s", bullet, profilePath))
	b.printPlain(fmt.Sprintf("%s %d step%s, %d cycle%s", bullet, len(profile.Steps), pluralize(len(profile.Steps)), loops, pluralize(loops)))
	b.printLine(fmt.Sprintf("%s %s", bullet, failsafe), failsafeLen+2)
	b.printBottom()
}

func (b *Banner) printTop() {
	fmt.Fprintf(b.writer, "\n%s%s%s%s%s\n", dim, topLeft, strings.Repeat(horizontal, b.width-2), topRight, reset)
}

func (b *Banner) printBottom() {
	fmt.Fprintf(b.writer, "%s%s%s%s%s\n\n", dim, bottomLeft, strings.Repeat(horizontal, b.width-2), bottomRight, reset)
}

// printLine writes one boxed line. visible is the length of the text with
// ANSI codes stripped.
func (b *Banner) printLine(text string, visible int) {
	padding := b.width - visible - 4
	if padding < 0 {
		padding = 0
	}
	fmt.Fprintf(b.writer, "%s%s%s  %s%s%s\n", dim, vertical, reset, text, strings.Repeat(" ", padding), dim+vertical+reset)
}

func (b *Banner) printPlain(text string) {
	b.printLine(text, len([]rune(text)))
}

func pluralize(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}
