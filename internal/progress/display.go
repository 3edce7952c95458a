package progress

import (
	"fmt"
	"os"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
)

// ScanDisplay shows a spinner while a scan runs and a summary line when it
// finishes.
type ScanDisplay struct {
	capabilities TerminalCapabilities
	spinner      *spinner.Spinner
	symbols      Symbols
}

// NewScanDisplay creates a display with the given terminal capabilities.
func NewScanDisplay(caps TerminalCapabilities) *ScanDisplay {
	return &ScanDisplay{
		capabilities: caps,
		symbols:      SelectSymbols(caps),
	}
}

// Start begins displaying progress for a scan.
func (d *ScanDisplay) Start(root string) {
	msg := fmt.Sprintf("Scanning %s", root)

	if d.capabilities.IsTTY {
		d.spinner = spinner.New(
			spinner.CharSets[d.symbols.SpinnerSet],
			100*time.Millisecond,
		)
		d.spinner.Writer = os.Stderr // keep stdout clean for piped output
		d.spinner.Suffix = " " + msg
		d.spinner.Start()
	} else {
		fmt.Fprintln(os.Stderr, msg)
	}
}

// Complete stops the spinner and prints the scan summary.
func (d *ScanDisplay) Complete(summary string) {
	d.Stop()
	mark := d.symbols.Checkmark
	if d.capabilities.SupportsColor {
		mark = color.GreenString(mark)
	}
	fmt.Fprintf(os.Stderr, "%s %s\n", mark, summary)
}

// Fail stops the spinner and prints a failure line.
func (d *ScanDisplay) Fail(err error) {
	d.Stop()
	mark := d.symbols.Failure
	if d.capabilities.SupportsColor {
		mark = color.RedString(mark)
	}
	fmt.Fprintf(os.Stderr, "%s scan failed: %v\n", mark, err)
}

// Stop stops the spinner without printing a status line.
func (d *ScanDisplay) Stop() {
	if d.spinner != nil {
		d.spinner.Stop()
		d.spinner = nil
	}
}
