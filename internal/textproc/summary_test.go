package textproc

import (
	"strings"
	"testing"
)

func TestSummarize(t *testing.T) {
	text := "La guía de configuración de solaris. Corta. " +
		"Describe los procedimientos de arranque del sistema. " +
		"Esta tercera frase no debería aparecer en el resumen"

	got := Summarize(text, 2)

	if !strings.HasSuffix(got, "...") {
		t.Errorf("expected ellipsis suffix, got %q", got)
	}
	if strings.Contains(got, "Corta") {
		t.Errorf("short sentence should be filtered out: %q", got)
	}
	if strings.Contains(got, "tercera frase") {
		t.Errorf("summary should keep only two sentences: %q", got)
	}
	if !strings.Contains(got, "guía de configuración") {
		t.Errorf("first meaningful sentence missing: %q", got)
	}
}

func TestSummarize_Empty(t *testing.T) {
	for _, input := range []string{"", "corto", "uno. dos. tres"} {
		if got := Summarize(input, 2); got != NoSummary {
			t.Errorf("Summarize(%q) = %q, want placeholder", input, got)
		}
	}
}

func TestSummarize_CollapsesWhitespace(t *testing.T) {
	got := Summarize("Una   frase\n\ncon espacios  raros dentro del texto. Otra", 2)
	if strings.Contains(got, "  ") {
		t.Errorf("whitespace runs should be collapsed: %q", got)
	}
}
