package serializer

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

type testEntry struct {
	Name  string `json:"name" yaml:"name"`
	Value int    `json:"value" yaml:"value"`
}

type testTable []testEntry

func (t testTable) TableHeader() []string {
	return []string{"NAME", "VALUE"}
}

func (t testTable) TableRows() [][]string {
	rows := make([][]string, 0, len(t))
	for _, e := range t {
		rows = append(rows, []string{e.Name, "42"})
	}
	return rows
}

func TestWriter_SerializeJSON(t *testing.T) {
	var buf bytes.Buffer
	writer := NewWriter(FormatJSON, &buf)

	data := []testEntry{
		{Name: "first", Value: 1},
		{Name: "second", Value: 2},
	}

	if err := writer.Serialize(context.Background(), data); err != nil {
		t.Fatalf("Serialize failed: %v", err)
	}

	var result []testEntry
	if err := json.Unmarshal(buf.Bytes(), &result); err != nil {
		t.Fatalf("Failed to unmarshal JSON: %v", err)
	}
	if len(result) != 2 || result[0].Name != "first" {
		t.Errorf("Unexpected data: %+v", result)
	}
}

func TestWriter_SerializeYAML(t *testing.T) {
	var buf bytes.Buffer
	writer := NewWriter(FormatYAML, &buf)

	if err := writer.Serialize(context.Background(), []testEntry{{Name: "first", Value: 1}}); err != nil {
		t.Fatalf("Serialize failed: %v", err)
	}

	var result []testEntry
	if err := yaml.Unmarshal(buf.Bytes(), &result); err != nil {
		t.Fatalf("Failed to unmarshal YAML: %v", err)
	}
	if len(result) != 1 || result[0].Value != 1 {
		t.Errorf("Unexpected data: %+v", result)
	}
}

func TestWriter_SerializeTable(t *testing.T) {
	var buf bytes.Buffer
	writer := NewWriter(FormatTable, &buf)

	if err := writer.Serialize(context.Background(), testTable{{Name: "first"}}); err != nil {
		t.Fatalf("Serialize failed: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "NAME") || !strings.Contains(out, "first") {
		t.Errorf("Unexpected table output: %q", out)
	}
}

func TestWriter_SerializeTableNonTabular(t *testing.T) {
	writer := NewWriter(FormatTable, &bytes.Buffer{})

	if err := writer.Serialize(context.Background(), 42); err == nil {
		t.Error("Expected error for non-tabular data")
	}
}

func TestWriter_UnknownFormat(t *testing.T) {
	writer := NewWriter(Format("xml"), &bytes.Buffer{})

	if err := writer.Serialize(context.Background(), "data"); err == nil {
		t.Error("Expected error for unknown format")
	}
}

func TestFormat_IsUnknown(t *testing.T) {
	for _, f := range []Format{FormatYAML, FormatJSON, FormatTable} {
		if f.IsUnknown() {
			t.Errorf("%q reported unknown", f)
		}
	}
	if !Format("xml").IsUnknown() {
		t.Error("xml should be unknown")
	}
}

func TestWriter_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	writer := NewWriter(FormatJSON, &bytes.Buffer{})
	if err := writer.Serialize(ctx, "data"); err == nil {
		t.Error("Expected error for cancelled context")
	}
}
