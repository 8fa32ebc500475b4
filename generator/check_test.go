package generator

import (
	"strings"
	"testing"
)

func TestStripTimestamp(t *testing.T) {
	in := "// This file was generated by protocol-converter\n// Timestamp: 2024-Mar-05 07:08:09\n#ifndef A_\n"
	want := "// This file was generated by protocol-converter\n#ifndef A_\n"
	if got := StripTimestamp(in); got != want {
		t.Errorf("StripTimestamp = %q, want %q", got, want)
	}
}

func TestDiff(t *testing.T) {
	existing := "// Timestamp: 2024-Mar-05 07:08:09\nline one\nline two\n"

	t.Run("only timestamp differs", func(t *testing.T) {
		generated := "// Timestamp: 2025-Jan-01 00:00:00\nline one\nline two\n"
		diff, err := Diff("A.h", existing, generated)
		if err != nil {
			t.Fatalf("Diff failed: %v", err)
		}
		if diff != "" {
			t.Errorf("diff = %q, want empty", diff)
		}
	})

	t.Run("content differs", func(t *testing.T) {
		generated := "// Timestamp: 2025-Jan-01 00:00:00\nline one\nline 2\n"
		diff, err := Diff("A.h", existing, generated)
		if err != nil {
			t.Fatalf("Diff failed: %v", err)
		}
		for _, want := range []string{"--- A.h\n", "+++ A.h (generated)\n", "-line two\n", "+line 2\n"} {
			if !strings.Contains(diff, want) {
				t.Errorf("diff does not contain %q:\n%s", want, diff)
			}
		}
	})
}
