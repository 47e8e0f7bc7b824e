package shared

import "testing"

func TestRepairEncoding(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"umlaut mojibake", "MÃ¼nchen", "München"},
		{"a-umlaut mojibake", "StraÃe", "Straße"},
		{"clean german text untouched", "München, Hauptstraße 12", "München, Hauptstraße 12"},
		{"plain ascii untouched", "Bremen", "Bremen"},
		{"empty string", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RepairEncoding(tt.input); got != tt.want {
				t.Errorf("RepairEncoding(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalizeWhitespace(t *testing.T) {
	if got := NormalizeWhitespace("  Hauptstraße \t 12\n"); got != "Hauptstraße 12" {
		t.Errorf("NormalizeWhitespace = %q, want %q", got, "Hauptstraße 12")
	}
}

func TestDeref(t *testing.T) {
	if got := Deref(nil); got != "" {
		t.Errorf("Deref(nil) = %q, want empty", got)
	}

	s := "MÃ¼nchen"
	if got := Deref(&s); got != "München" {
		t.Errorf("Deref = %q, want repaired %q", got, "München")
	}
}
