package text

import "strings"

// umlauts maps characters the board fonts cannot render to ASCII spellings
var umlauts = strings.NewReplacer(
	"ä", "ae",
	"ö", "oe",
	"ü", "ue",
	"Ä", "Ae",
	"Ö", "Oe",
	"Ü", "Ue",
	"ß", "sz",
	"\n", " ",
	"\r", " ",
	"\t", " ",
)

// SanitizeUmlauts replaces German umlauts with their two-letter equivalents
// and drops control characters.
// Security: control bytes in a payload would otherwise be interpreted by the
// board as protocol commands (frame breaks, color changes, end of datagram).
func SanitizeUmlauts(message string) string {
	message = umlauts.Replace(message)

	return strings.Map(func(r rune) rune {
		if r < 32 || r == 127 {
			return -1
		}
		return r
	}, message)
}

// Identity returns s unchanged. Useful where sanitizing is done upstream.
func Identity(s string) string {
	return s
}
