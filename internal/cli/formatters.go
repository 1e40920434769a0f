package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"gopkg.in/yaml.v3"

	"github.com/pluqqy/calqqy/pkg/keypad"
)

// OutputFormat represents the output format type
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
	FormatYAML OutputFormat = "yaml"
)

// ValidateOutputFormat checks a --output flag value
func ValidateOutputFormat(format string) error {
	switch OutputFormat(format) {
	case FormatText, FormatJSON, FormatYAML:
		return nil
	}
	return fmt.Errorf("unsupported output format: %s (must be: text, json, or yaml)", format)
}

// OutputResults formats and outputs results based on the specified format
func OutputResults(w io.Writer, format string, data interface{}) error {
	switch OutputFormat(format) {
	case FormatJSON:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(data)

	case FormatYAML:
		yamlData, err := yaml.Marshal(data)
		if err != nil {
			return err
		}
		fmt.Fprint(w, string(yamlData))
		return nil

	case FormatText:
		// For text format, we expect the caller to have already formatted
		// the data appropriately. This is a fallback.
		fmt.Fprintf(w, "%v\n", data)
		return nil

	default:
		return fmt.Errorf("unsupported output format: %s", format)
	}
}

// RenderTrace prints one table row per button press
func RenderTrace(w io.Writer, steps []keypad.Step) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)

	t.AppendHeader(table.Row{"#", "Key", "Pending", "Display", "State"})
	for i, step := range steps {
		t.AppendRow(table.Row{
			i + 1,
			step.Button.Label,
			step.Snapshot.PreviousLabel,
			step.Snapshot.Display,
			step.Snapshot.State.String(),
		})
	}
	t.Render()
}
