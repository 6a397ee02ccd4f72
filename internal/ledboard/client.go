// Package ledboard speaks the LED board's text protocol over UDP.
package ledboard

import (
	"fmt"
	"io"
	"net"
	"strings"
	"sync"
	"time"

	"github.com/espegro/ledboard-bridge/internal/logger"
	"github.com/espegro/ledboard-bridge/internal/metrics"
	"github.com/espegro/ledboard-bridge/internal/output"
	"github.com/espegro/ledboard-bridge/internal/types"
)

// DefaultPort is the UDP port the board listens on
const DefaultPort = 9520

// Client writes datagrams to the LED board
type Client struct {
	conn    io.WriteCloser
	journal output.Journal
	now     func() time.Time
	mu      sync.Mutex
}

// Dial resolves the board address and opens a UDP socket to it
func Dial(host string, port int, journal output.Journal) (*Client, error) {
	addr, err := net.ResolveUDPAddr("udp4", net.JoinHostPort(host, fmt.Sprint(port)))
	if err != nil {
		return nil, fmt.Errorf("resolving UDP address: %w", err)
	}

	conn, err := net.DialUDP("udp4", nil, addr)
	if err != nil {
		return nil, fmt.Errorf("dialing UDP: %w", err)
	}

	logger.Info("LED board client initialized (%s)", addr)
	return NewClient(conn, journal), nil
}

// NewClient creates a client writing to conn. A nil journal discards records.
func NewClient(conn io.WriteCloser, journal output.Journal) *Client {
	if journal == nil {
		journal = output.NopJournal{}
	}
	return &Client{
		conn:    conn,
		journal: journal,
		now:     time.Now,
	}
}

// Send writes a raw datagram to the board
func (c *Client) Send(d *types.Datagram) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if d.Timestamp.IsZero() {
		d.Timestamp = c.now()
	}

	logger.Debug("Sending to LED board: %q", d.Payload)

	if _, err := c.conn.Write([]byte(d.Payload)); err != nil {
		metrics.SendErrors.Inc()
		return fmt.Errorf("writing datagram: %w", err)
	}
	metrics.RecordDatagram(d.Kind.String(), d.Size())

	if err := c.journal.Record(d); err != nil {
		logger.Warn("Error recording datagram: %v", err)
	}
	return nil
}

// SetDate sets the board clock
func (c *Client) SetDate(date time.Time) error {
	logger.Info("Pushing datetime %s", date.Format(time.DateTime))
	return c.Send(&types.Datagram{
		Kind:    types.KindDate,
		Payload: DateDatagram(date),
	})
}

// SendScreen sends a single named screen to the board
func (c *Client) SendScreen(name, screen string) error {
	return c.Send(&types.Datagram{
		Kind:    types.KindScreen,
		Screens: []string{name},
		Payload: ScreenDatagram(screen),
	})
}

// SendScreens sends multiple screens in one datagram, separated by frames.
// names and screens are parallel slices.
func (c *Client) SendScreens(names []string, screens []string) error {
	return c.Send(&types.Datagram{
		Kind:    types.KindScreen,
		Screens: names,
		Payload: ScreenDatagram(strings.Join(screens, ControlFrame)),
	})
}

// Close closes the UDP socket
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.Close()
}

// ScreenDatagram frames a screen as a RAM text write
func ScreenDatagram(screen string) string {
	return FrameWriteText + FrameStoreRAM + screen + ControlEnd
}

// DateDatagram builds the set time datagram. Fields are BCD encoded,
// year low digits first.
func DateDatagram(date time.Time) string {
	fields := []byte{
		bcd(date.Year() % 100),
		bcd(date.Year() / 100),
		bcd(int(date.Month())),
		bcd(date.Day()),
		bcd(date.Hour()),
		bcd(date.Minute()),
		bcd(0),
		bcd(0),
	}
	return FrameSetTime + string(fields) + ControlEnd
}

// bcd packs a value in 0..99 into one byte, tens in the high nibble
func bcd(v int) byte {
	return byte((v/10)<<4 | v%10)
}
