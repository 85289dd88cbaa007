package progress

import (
	"fmt"
	"io"
	"os"

	"github.com/schollz/progressbar/v3"
)

// Reporter provides progress feedback while documentation sets are scanned.
type Reporter interface {
	Start(total int)
	Update(current int, message string)
	Finish()
}

// NewReporter returns a LineReporter when running under CI (or when quiet
// terminal output is requested), and a TerminalReporter otherwise.
func NewReporter(plain bool) Reporter {
	if plain || os.Getenv("CI") != "" || os.Getenv("GITHUB_ACTIONS") != "" {
		return &LineReporter{Out: os.Stderr}
	}
	return &TerminalReporter{}
}

// TerminalReporter displays a progress bar in the terminal.
type TerminalReporter struct {
	bar *progressbar.ProgressBar
}

func (r *TerminalReporter) Start(total int) {
	r.bar = progressbar.NewOptions(total,
		progressbar.OptionSetDescription("Scanning navigation data"),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	)
}

func (r *TerminalReporter) Update(current int, message string) {
	if r.bar != nil {
		r.bar.Describe(message)
		_ = r.bar.Set(current)
	}
}

func (r *TerminalReporter) Finish() {
	if r.bar != nil {
		_ = r.bar.Finish()
	}
}

// LineReporter prints line-by-line progress suitable for CI logs.
type LineReporter struct {
	Out   io.Writer
	total int
}

func (r *LineReporter) Start(total int) {
	r.total = total
	fmt.Fprintf(r.Out, "Scanning %d navigation data files\n", total)
}

func (r *LineReporter) Update(current int, message string) {
	fmt.Fprintf(r.Out, "[%d/%d] %s\n", current, r.total, message)
}

func (r *LineReporter) Finish() {
	fmt.Fprintln(r.Out, "Scan complete")
}
