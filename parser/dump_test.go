package parser

import (
	"bytes"
	"strings"
	"testing"

	yaml "gopkg.in/yaml.v3"
)

func dumpHeader(t *testing.T) *Header {
	t.Helper()
	h, err := Parse(fileVersion + decl("FuncA", "1.0.0", "Hash"))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	return h
}

func TestDumpFormatFor(t *testing.T) {
	tests := []struct {
		path string
		want DumpFormat
	}{
		{"functions.json", DumpJSON},
		{"functions.yaml", DumpYAML},
		{"out/functions.YML", DumpYAML},
		{"functions", DumpJSON},
	}
	for _, tt := range tests {
		if got := DumpFormatFor(tt.path); got != tt.want {
			t.Errorf("DumpFormatFor(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestDumpJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := Dump(&buf, dumpHeader(t), DumpJSON); err != nil {
		t.Fatalf("Dump failed: %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		"\n    \"version\": {",
		`"name": "FuncA"`,
		`"typedef_name": "FUNC_A"`,
		`"group": "Hash"`,
		`"calling_convention": "EFIAPI"`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("dump does not contain %s:\n%s", want, out)
		}
	}
}

func TestDumpYAML(t *testing.T) {
	h := dumpHeader(t)

	var buf bytes.Buffer
	if err := Dump(&buf, h, DumpYAML); err != nil {
		t.Fatalf("Dump failed: %v", err)
	}

	var got Header
	if err := yaml.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("dump is not valid yaml: %v\n%s", err, buf.String())
	}
	if len(got.Functions) != 1 {
		t.Fatalf("len(Functions) = %d, want 1", len(got.Functions))
	}
	if got.Functions[0].Comment != h.Functions[0].Comment {
		t.Errorf("Comment = %q, want %q", got.Functions[0].Comment, h.Functions[0].Comment)
	}
	if got.Functions[0].Version != (Version{1, 0, 0}) {
		t.Errorf("Version = %v, want 1.0.0", got.Functions[0].Version)
	}
}

func TestDumpUnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	if err := Dump(&buf, dumpHeader(t), DumpFormat("xml")); err == nil {
		t.Fatal("Dump succeeded with an unknown format")
	}
}
