// Package serializer formats structured data for stdout output in the
// formats the CLI exposes: yaml, json, and table.
package serializer

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"gopkg.in/yaml.v3"
)

// Format is an output format selector.
type Format string

// Supported output formats.
const (
	FormatYAML  Format = "yaml"
	FormatJSON  Format = "json"
	FormatTable Format = "table"
)

// IsUnknown reports whether the format is not one of the supported
// values.
func (f Format) IsUnknown() bool {
	switch f {
	case FormatYAML, FormatJSON, FormatTable:
		return false
	}
	return true
}

// Tabular is implemented by values that can render as a table.
type Tabular interface {
	TableHeader() []string
	TableRows() [][]string
}

// Writer serializes values to an io.Writer in a fixed format.
type Writer struct {
	format Format
	out    io.Writer
}

// NewWriter creates a Writer for the given format and destination.
func NewWriter(format Format, out io.Writer) *Writer {
	return &Writer{format: format, out: out}
}

// NewStdoutWriter creates a Writer targeting stdout.
func NewStdoutWriter(format Format) *Writer {
	return NewWriter(format, os.Stdout)
}

// Serialize writes data in the Writer's format. Table output requires
// data to implement Tabular.
func (w *Writer) Serialize(ctx context.Context, data any) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	switch w.format {
	case FormatJSON:
		j, err := json.MarshalIndent(data, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to serialize to json: %w", err)
		}
		_, err = fmt.Fprintln(w.out, string(j))
		return err
	case FormatYAML:
		y, err := yaml.Marshal(data)
		if err != nil {
			return fmt.Errorf("failed to serialize to yaml: %w", err)
		}
		_, err = w.out.Write(y)
		return err
	case FormatTable:
		tab, ok := data.(Tabular)
		if !ok {
			return fmt.Errorf("table format not supported for %T", data)
		}
		return w.writeTable(tab)
	default:
		return fmt.Errorf("unknown output format: %q", w.format)
	}
}

func (w *Writer) writeTable(data Tabular) error {
	tw := tabwriter.NewWriter(w.out, 0, 4, 2, ' ', 0)
	for i, col := range data.TableHeader() {
		if i > 0 {
			fmt.Fprint(tw, "\t")
		}
		fmt.Fprint(tw, col)
	}
	fmt.Fprintln(tw)
	for _, row := range data.TableRows() {
		for i, cell := range row {
			if i > 0 {
				fmt.Fprint(tw, "\t")
			}
			fmt.Fprint(tw, cell)
		}
		fmt.Fprintln(tw)
	}
	return tw.Flush()
}
