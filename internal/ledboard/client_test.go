package ledboard

import (
	"bytes"
	"errors"
	"net"
	"strings"
	"testing"
	"time"

	"github.com/espegro/ledboard-bridge/internal/types"
)

// recordingConn captures writes
type recordingConn struct {
	writes []string
	err    error
	closed bool
}

func (c *recordingConn) Write(p []byte) (int, error) {
	if c.err != nil {
		return 0, c.err
	}
	c.writes = append(c.writes, string(p))
	return len(p), nil
}

func (c *recordingConn) Close() error {
	c.closed = true
	return nil
}

// recordingJournal captures recorded datagrams
type recordingJournal struct {
	records []*types.Datagram
}

func (j *recordingJournal) Record(d *types.Datagram) error {
	j.records = append(j.records, d)
	return nil
}

func (j *recordingJournal) Close() error { return nil }

func TestBCD(t *testing.T) {
	tests := []struct {
		value    int
		expected byte
	}{
		{0, 0x00},
		{9, 0x09},
		{10, 0x10},
		{20, 0x20},
		{25, 0x25},
		{59, 0x59},
		{99, 0x99},
	}

	for _, tt := range tests {
		if got := bcd(tt.value); got != tt.expected {
			t.Errorf("bcd(%d) = %#02x, want %#02x", tt.value, got, tt.expected)
		}
	}
}

func TestDateDatagram(t *testing.T) {
	date := time.Date(2024, time.March, 9, 18, 45, 33, 0, time.UTC)

	got := DateDatagram(date)
	want := "\x01Z00\x02EB" + "\x24\x20\x03\x09\x18\x45\x00\x00" + "\x04"
	if got != want {
		t.Errorf("DateDatagram = %q, want %q", got, want)
	}
}

func TestDateDatagramHighBytes(t *testing.T) {
	// Year 2099 encodes as 0x99, which must stay a single raw byte
	got := DateDatagram(time.Date(2099, time.December, 31, 23, 59, 0, 0, time.UTC))
	if len(got) != len(FrameSetTime)+8+len(ControlEnd) {
		t.Fatalf("Unexpected datagram length %d: %q", len(got), got)
	}
	if got[len(FrameSetTime)] != 0x99 {
		t.Errorf("Expected raw 0x99 year byte, got %#02x", got[len(FrameSetTime)])
	}
}

func TestScreenDatagram(t *testing.T) {
	got := ScreenDatagram("HELLO")
	want := "\x01Z00\x02A\x0fETAAHELLO\x04"
	if got != want {
		t.Errorf("ScreenDatagram = %q, want %q", got, want)
	}
}

func TestClientSendScreen(t *testing.T) {
	conn := &recordingConn{}
	journal := &recordingJournal{}
	client := NewClient(conn, journal)

	if err := client.SendScreen("doorbell", "RING"); err != nil {
		t.Fatalf("SendScreen failed: %v", err)
	}

	if len(conn.writes) != 1 || conn.writes[0] != ScreenDatagram("RING") {
		t.Fatalf("Unexpected writes: %q", conn.writes)
	}
	if len(journal.records) != 1 {
		t.Fatalf("Expected 1 journal record, got %d", len(journal.records))
	}
	rec := journal.records[0]
	if rec.Kind != types.KindScreen || rec.Screens[0] != "doorbell" || rec.Timestamp.IsZero() {
		t.Errorf("Unexpected journal record: %+v", rec)
	}
}

func TestClientSendScreens(t *testing.T) {
	conn := &recordingConn{}
	client := NewClient(conn, nil)

	err := client.SendScreens([]string{"pizza", "idle"}, []string{"A", "B"})
	if err != nil {
		t.Fatalf("SendScreens failed: %v", err)
	}

	want := ScreenDatagram("A" + ControlFrame + "B")
	if conn.writes[0] != want {
		t.Errorf("SendScreens wrote %q, want %q", conn.writes[0], want)
	}
}

func TestClientSendScreensSingle(t *testing.T) {
	conn := &recordingConn{}
	client := NewClient(conn, nil)

	client.SendScreens([]string{"idle"}, []string{"A"})
	if strings.Contains(conn.writes[0], ControlFrame) {
		t.Error("Single screen must not contain a frame separator")
	}
}

func TestClientSetDate(t *testing.T) {
	conn := &recordingConn{}
	journal := &recordingJournal{}
	client := NewClient(conn, journal)

	date := time.Date(2000, time.February, 0, 0, 0, 2, 0, time.UTC)
	if err := client.SetDate(date); err != nil {
		t.Fatalf("SetDate failed: %v", err)
	}

	if conn.writes[0] != DateDatagram(date) {
		t.Errorf("SetDate wrote %q, want %q", conn.writes[0], DateDatagram(date))
	}
	if journal.records[0].Kind != types.KindDate {
		t.Errorf("Expected date record, got %v", journal.records[0].Kind)
	}
}

func TestClientSendError(t *testing.T) {
	conn := &recordingConn{err: errors.New("connection refused")}
	journal := &recordingJournal{}
	client := NewClient(conn, journal)

	if err := client.SendScreen("idle", "X"); err == nil {
		t.Error("Expected error from failing connection")
	}
	if len(journal.records) != 0 {
		t.Error("Failed writes must not be journaled")
	}
}

func TestClientClose(t *testing.T) {
	conn := &recordingConn{}
	client := NewClient(conn, nil)
	client.Close()
	if !conn.closed {
		t.Error("Expected connection to be closed")
	}
}

func TestDialUDP(t *testing.T) {
	listener, err := net.ListenUDP("udp4", &net.UDPAddr{IP: net.IPv4(127, 0, 0, 1)})
	if err != nil {
		t.Fatalf("Failed to listen: %v", err)
	}
	defer listener.Close()

	port := listener.LocalAddr().(*net.UDPAddr).Port
	client, err := Dial("127.0.0.1", port, nil)
	if err != nil {
		t.Fatalf("Dial failed: %v", err)
	}
	defer client.Close()

	if err := client.SendScreen("nowplaying", "NOW PLAYING"); err != nil {
		t.Fatalf("SendScreen failed: %v", err)
	}

	buf := make([]byte, 1024)
	listener.SetReadDeadline(time.Now().Add(2 * time.Second))
	n, _, err := listener.ReadFromUDP(buf)
	if err != nil {
		t.Fatalf("Failed to read datagram: %v", err)
	}
	if !bytes.Equal(buf[:n], []byte(ScreenDatagram("NOW PLAYING"))) {
		t.Errorf("Received %q, want %q", buf[:n], ScreenDatagram("NOW PLAYING"))
	}
}

func TestDialInvalidHost(t *testing.T) {
	if _, err := Dial("invalid host name", DefaultPort, nil); err == nil {
		t.Error("Expected error for unresolvable host")
	}
}

func TestCommandsTable(t *testing.T) {
	table := Commands()
	if table.Control.PatternIn != ControlPatternIn {
		t.Errorf("Unexpected pattern in token %q", table.Control.PatternIn)
	}
	if table.Pattern.RadarScan != PatternRadarScan || table.Font.Normal7x6 != FontNormal7x6 {
		t.Error("Unexpected pattern/font tokens")
	}
	if table.FontColor.Yellow != FontColorYellow || table.Pause.Second2 != PauseSecond2 {
		t.Error("Unexpected color/pause tokens")
	}
	if table.Control.Frame != ControlFrame {
		t.Errorf("Unexpected frame token %q", table.Control.Frame)
	}
}
