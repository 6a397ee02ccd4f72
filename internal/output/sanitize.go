package output

import (
	"encoding/hex"
	"strconv"
	"strings"
)

// escapeDatagram renders protocol bytes printable, e.g. "\x1c3NOW PLAYING".
// Security: raw control bytes must never reach a terminal or log shipper.
func escapeDatagram(s string) string {
	quoted := strconv.QuoteToASCII(s)
	return quoted[1 : len(quoted)-1]
}

// hexDatagram renders the datagram as lowercase hex
func hexDatagram(s string) string {
	return hex.EncodeToString([]byte(s))
}

// screenList joins screen names for display
func screenList(screens []string) string {
	if len(screens) == 0 {
		return "-"
	}
	return strings.Join(screens, "+")
}
