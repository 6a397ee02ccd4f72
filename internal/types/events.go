package types

import "time"

// DatagramKind represents the type of datagram written to the board
type DatagramKind uint32

const (
	KindScreen DatagramKind = 1
	KindDate   DatagramKind = 2
)

// String returns the string representation of a datagram kind
func (k DatagramKind) String() string {
	switch k {
	case KindScreen:
		return "screen"
	case KindDate:
		return "date"
	default:
		return "unknown"
	}
}

// Datagram is a single framed write to the LED board
type Datagram struct {
	Kind DatagramKind
	// Screens lists the screen names packed into a screen datagram
	Screens   []string
	Payload   string
	Timestamp time.Time
}

// Size returns the payload length in bytes
func (d *Datagram) Size() int {
	return len(d.Payload)
}
