package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"gopkg.in/yaml.v3"

	"github.com/rshade/postdeck/internal/config"
)

// Output formats.
const (
	outputTable = "table"
	outputJSON  = "json"
	outputYAML  = "yaml"
)

// tabPadding is the minimum padding between tabwriter columns.
const tabPadding = 2

// ErrUnsupportedFormat is returned for an --output value other than table,
// json or yaml.
var ErrUnsupportedFormat = errors.New("unsupported output format")

// printer formats counts with thousand separators.
//
//nolint:gochecknoglobals // Global printer is idiomatic for x/text/message usage.
var printer = message.NewPrinter(language.English)

// outputFormat returns the effective output format: --output, then
// POSTDECK_OUTPUT, then the config file.
func outputFormat() (string, error) {
	format := config.GetGlobalConfig().Output.DefaultFormat
	switch format {
	case outputTable, outputJSON, outputYAML:
		return format, nil
	case "":
		return outputTable, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

// writeStructured encodes v as JSON or YAML.
func writeStructured(w io.Writer, format string, v any) error {
	switch format {
	case outputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case outputYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2) //nolint:mnd // Two-space YAML indent.
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

// formatCount renders n with thousand separators.
func formatCount(n int) string {
	return printer.Sprintf("%d", n)
}
