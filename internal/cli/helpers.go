package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Confirm prompts the user for confirmation, reading the answer from in
func Confirm(in io.Reader, out io.Writer, prompt string, defaultYes bool) (bool, error) {
	suffix := " [y/N]: "
	if defaultYes {
		suffix = " [Y/n]: "
	}

	fmt.Fprint(out, prompt+suffix)

	reader := bufio.NewReader(in)
	response, err := reader.ReadString('\n')
	if err != nil && response == "" {
		return false, err
	}

	response = strings.ToLower(strings.TrimSpace(response))

	if response == "" {
		return defaultYes, nil
	}

	return response == "y" || response == "yes", nil
}

// PrintSuccess prints a success message unless quiet mode is enabled
func PrintSuccess(w io.Writer, format string, args ...interface{}) {
	if !quiet {
		msg := fmt.Sprintf(format, args...)
		if !noColor {
			fmt.Fprintf(w, "✓ %s\n", msg)
		} else {
			fmt.Fprintf(w, "OK: %s\n", msg)
		}
	}
}

// PrintInfo prints an info message unless quiet mode is enabled
func PrintInfo(w io.Writer, format string, args ...interface{}) {
	if !quiet {
		msg := fmt.Sprintf(format, args...)
		if !noColor {
			fmt.Fprintf(w, "ℹ %s\n", msg)
		} else {
			fmt.Fprintf(w, "INFO: %s\n", msg)
		}
	}
}

// PrintWarning prints a warning message
func PrintWarning(w io.Writer, format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if !noColor {
		fmt.Fprintf(w, "⚠ %s\n", msg)
	} else {
		fmt.Fprintf(w, "WARNING: %s\n", msg)
	}
}

// Global flags (will be set from cmd package)
var (
	quiet   bool
	noColor bool
)

// SetGlobalFlags sets the global flag values from the cmd package
func SetGlobalFlags(q, nc bool) {
	quiet = q
	noColor = nc
}
