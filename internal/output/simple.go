package output

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/espegro/ledboard-bridge/internal/types"
)

const (
	screensWidth  = 28
	datagramWidth = 120
)

var simpleHeader = fmt.Sprintf("%-8s %-6s %-*s %6s %s",
	"TIME", "KIND", screensWidth, "SCREENS", "BYTES", "DATAGRAM")

// SimpleJournal prints one aligned line per datagram, for watching the
// board traffic on a terminal
type SimpleJournal struct {
	mu     sync.Mutex
	w      io.Writer
	header bool
}

// NewSimpleJournal creates a simple journal on stdout
func NewSimpleJournal() *SimpleJournal {
	return &SimpleJournal{w: os.Stdout}
}

// Record prints d, preceded by the column header on first use
func (j *SimpleJournal) Record(d *types.Datagram) error {
	j.mu.Lock()
	defer j.mu.Unlock()

	if !j.header {
		rule := strings.Repeat("─", len(simpleHeader))
		if _, err := fmt.Fprintf(j.w, "%s\n%s\n%s\n", rule, simpleHeader, rule); err != nil {
			return err
		}
		j.header = true
	}

	_, err := fmt.Fprintf(j.w, "%s %-6s %-*s %6d %s\n",
		d.Timestamp.Format("15:04:05"),
		d.Kind,
		screensWidth, truncateString(screenList(d.Screens), screensWidth),
		d.Size(),
		truncateString(escapeDatagram(d.Payload), datagramWidth),
	)
	return err
}

// Close is a no-op
func (j *SimpleJournal) Close() error {
	return nil
}

// truncateString cuts s to maxLen bytes, marking the cut with "..."
func truncateString(s string, maxLen int) string {
	switch {
	case len(s) <= maxLen:
		return s
	case maxLen <= 3:
		return s[:maxLen]
	default:
		return s[:maxLen-3] + "..."
	}
}
