package ui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/muesli/termenv"
)

func TestStatusBadge(t *testing.T) {
	var buf bytes.Buffer
	output := termenv.NewOutput(&buf, termenv.WithProfile(termenv.ANSI256))

	if got := StatusBadge(output, false, "pending"); got != "pending" {
		t.Fatalf("StatusBadge() disabled = %q, want plain", got)
	}
	if got := StatusBadge(output, true, "archived"); got != "archived" {
		t.Fatalf("StatusBadge() unknown = %q, want plain", got)
	}
	got := StatusBadge(output, true, "accepted")
	if !strings.Contains(got, "accepted") || !strings.Contains(got, "\x1b[") {
		t.Fatalf("StatusBadge() enabled = %q, want colored", got)
	}
}

func TestNormalizeColorMode(t *testing.T) {
	tests := map[string]ColorMode{
		"ALWAYS": ColorAlways,
		"never":  ColorNever,
		"":       ColorAuto,
		"bogus":  ColorAuto,
	}
	for in, want := range tests {
		if got := NormalizeColorMode(in); got != want {
			t.Fatalf("NormalizeColorMode(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestErrorfWithoutColor(t *testing.T) {
	var out, errOut bytes.Buffer
	u := New(&out, &errOut, ColorNever, false)
	u.Errorf("boom %d\n", 1)
	if errOut.String() != "boom 1\n" {
		t.Fatalf("Errorf() = %q", errOut.String())
	}
}
