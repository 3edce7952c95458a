package errors

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
)

// FormatError renders a CLIError for terminal display, with colors when the
// output supports them.
func FormatError(err *CLIError) string {
	if err == nil {
		return ""
	}

	heading := color.New(color.FgRed, color.Bold).Sprint(err.Category.String())
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%s: %s\n", heading, err.Message))

	if err.Usage != "" {
		sb.WriteString(fmt.Sprintf("\nUsage: %s\n", err.Usage))
	}

	if len(err.Remediation) > 0 {
		sb.WriteString("\nTo fix this:\n")
		for i, step := range err.Remediation {
			sb.WriteString(fmt.Sprintf("  %d. %s\n", i+1, step))
		}
	}

	return sb.String()
}

// FormatErrorPlain renders a CLIError without any color escapes.
func FormatErrorPlain(err *CLIError) string {
	if err == nil {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%s: %s\n", err.Category.String(), err.Message))

	if err.Usage != "" {
		sb.WriteString(fmt.Sprintf("\nUsage: %s\n", err.Usage))
	}

	if len(err.Remediation) > 0 {
		sb.WriteString("\nTo fix this:\n")
		for i, step := range err.Remediation {
			sb.WriteString(fmt.Sprintf("  %d. %s\n", i+1, step))
		}
	}

	return sb.String()
}

// FormatSimpleError wraps a plain error in category formatting.
func FormatSimpleError(err error, category ErrorCategory) string {
	if err == nil {
		return ""
	}
	return FormatError(&CLIError{Category: category, Message: err.Error()})
}

// PrintError writes a formatted CLIError to stderr.
func PrintError(err *CLIError) {
	FprintError(os.Stderr, err)
}

// FprintError writes a formatted CLIError to the given writer. Color escapes
// are dropped entirely when color output is disabled.
func FprintError(w io.Writer, err *CLIError) {
	if err == nil {
		return
	}
	if color.NoColor {
		fmt.Fprint(w, FormatErrorPlain(err))
		return
	}
	fmt.Fprint(w, FormatError(err))
}
