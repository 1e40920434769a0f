package commands

import (
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/pluqqy/calqqy/internal/cli"
	"github.com/pluqqy/calqqy/internal/config"
	"github.com/pluqqy/calqqy/pkg/calculator"
	"github.com/pluqqy/calqqy/pkg/keypad"
)

var (
	pressOutput string
	pressTrace  bool
	pressCopy   bool
)

// copyToClipboard is swapped out in tests
var copyToClipboard = clipboard.WriteAll

// NewPressCommand creates the press command
func NewPressCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "press <button>...",
		Short: "Press calculator buttons and print the display",
		Long: `Press a sequence of calculator buttons on a fresh calculator and print
what the display shows afterwards.

Buttons are 0-9, the decimal comma (, or .), the operators + - × ÷
(x, * and / are accepted too), = to compute, DEL to delete the last
character and C to clear. An argument that is not a single button is read
one character at a time. Operations are evaluated left to right as they
are pressed, without precedence.

Examples:
  # Chaining evaluates left to right: (2+3)×4
  calqqy press 2 + 3 x 4 =

  # One argument works too
  calqqy press "12,5*2="

  # Show every step
  calqqy press 1 / 3 = --trace

  # Machine readable output
  calqqy press 7 - 10 = -o json`,
		Args: cobra.MinimumNArgs(1),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return cli.ValidateOutputFormat(pressOutput)
		},
		RunE: runPress,
	}

	cmd.Flags().StringVarP(&pressOutput, "output", "o", "text", "Output format (text, json, yaml)")
	cmd.Flags().BoolVar(&pressTrace, "trace", false, "Print a table with the display after each button")
	cmd.Flags().BoolVar(&pressCopy, "copy", false, "Copy the final display to the clipboard")

	return cmd
}

func runPress(cmd *cobra.Command, args []string) error {
	logger := config.GetLogger(cmd.Context())
	engine := calculator.New(calculator.WithLogger(logger))

	steps, err := keypad.PressAll(engine, args)
	if err != nil {
		return err
	}
	logger.Debug("buttons pressed", "count", len(steps), "display", engine.Display())

	out := cmd.OutOrStdout()
	snap := engine.Snapshot()

	if pressTrace && cli.OutputFormat(pressOutput) == cli.FormatText {
		cli.RenderTrace(out, steps)
	}

	switch cli.OutputFormat(pressOutput) {
	case cli.FormatText:
		if snap.PreviousLabel != "" {
			fmt.Fprintln(out, snap.PreviousLabel)
		}
		fmt.Fprintln(out, snap.Display)
	default:
		if err := cli.OutputResults(out, pressOutput, snap); err != nil {
			return err
		}
	}

	if pressCopy {
		if err := copyToClipboard(snap.Display); err != nil {
			return fmt.Errorf("failed to copy to clipboard: %w", err)
		}
		cli.PrintSuccess(cmd.ErrOrStderr(), "Copied %s to clipboard", snap.Display)
	}

	return nil
}
