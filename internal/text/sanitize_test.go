package text

import "testing"

func TestSanitizeUmlauts(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"plain", "Test", "Test"},
		{"empty", "", ""},
		{"lowercase umlauts", "äöü", "aeoeue"},
		{"uppercase umlauts", "ÄÖÜ", "AeOeUe"},
		{"sharp s", "Straße", "Strasze"},
		{"mixed", "Fö", "Foe"},
		{"song title", "Die Ärzte - Schrei nach Liebe", "Die Aerzte - Schrei nach Liebe"},
		{"newline becomes space", "a\nb", "a b"},
		{"tab becomes space", "a\tb", "a b"},
		{"frame break dropped", "a\x0cb", "ab"},
		{"end of datagram dropped", "a\x04b", "ab"},
		{"delete dropped", "a\x7fb", "ab"},
		{"other unicode kept", "café ♫", "café ♫"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := SanitizeUmlauts(tt.input)
			if result != tt.expected {
				t.Errorf("SanitizeUmlauts(%q) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}

func TestSanitizeUmlauts_Deterministic(t *testing.T) {
	input := "Mötley Crüe – Süße Grüße"
	first := SanitizeUmlauts(input)
	for i := 0; i < 100; i++ {
		if got := SanitizeUmlauts(input); got != first {
			t.Fatalf("Iteration %d: got %q, want %q", i, got, first)
		}
	}
}

func TestIdentity(t *testing.T) {
	if got := Identity("Fö\x0c"); got != "Fö\x0c" {
		t.Errorf("Identity changed its input: %q", got)
	}
}
