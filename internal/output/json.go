package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/espegro/ledboard-bridge/internal/types"
	"gopkg.in/natefinch/lumberjack.v2"
)

// File journal defaults
const (
	defaultMaxSizeMB  = 20
	defaultMaxBackups = 5
	defaultMaxAgeDays = 14
)

// record is one JSON journal line in ECS layout
type record struct {
	Timestamp string         `json:"@timestamp"`
	Event     recordEvent    `json:"event"`
	LedBoard  recordLedBoard `json:"ledboard"`
}

type recordEvent struct {
	Kind   string `json:"kind"`
	Action string `json:"action"`
}

type recordLedBoard struct {
	Screens  []string       `json:"screens"`
	Datagram recordDatagram `json:"datagram"`
}

type recordDatagram struct {
	Bytes   int    `json:"bytes"`
	Hex     string `json:"hex"`
	Escaped string `json:"escaped"`
}

func newRecord(d *types.Datagram) record {
	screens := d.Screens
	if screens == nil {
		screens = []string{}
	}
	return record{
		Timestamp: d.Timestamp.Format("2006-01-02T15:04:05.000Z07:00"),
		Event:     recordEvent{Kind: "event", Action: "ledboard-" + d.Kind.String()},
		LedBoard: recordLedBoard{
			Screens: screens,
			Datagram: recordDatagram{
				Bytes:   d.Size(),
				Hex:     hexDatagram(d.Payload),
				Escaped: escapeDatagram(d.Payload),
			},
		},
	}
}

// JSONJournal writes one JSON document per datagram, to stdout or to a
// rotated file
type JSONJournal struct {
	mu      sync.Mutex
	encoder *json.Encoder
	file    *lumberjack.Logger
}

// NewStdoutJournal creates a JSON journal on stdout
func NewStdoutJournal() *JSONJournal {
	return newJSONJournal(os.Stdout)
}

func newJSONJournal(w io.Writer) *JSONJournal {
	return &JSONJournal{encoder: json.NewEncoder(w)}
}

// FileJournalConfig holds rotation settings for the file journal.
// Zero values fall back to the defaults.
type FileJournalConfig struct {
	Path       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

func orDefault(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}

// NewFileJournal creates a JSON journal on a lumberjack rotated file
func NewFileJournal(cfg FileJournalConfig) (*JSONJournal, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("journal file path is empty")
	}
	if dir := filepath.Dir(cfg.Path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("creating journal directory %s: %w", dir, err)
		}
	}

	file := &lumberjack.Logger{
		Filename:   cfg.Path,
		MaxSize:    orDefault(cfg.MaxSizeMB, defaultMaxSizeMB),
		MaxBackups: orDefault(cfg.MaxBackups, defaultMaxBackups),
		MaxAge:     orDefault(cfg.MaxAgeDays, defaultMaxAgeDays),
		Compress:   cfg.Compress,
		LocalTime:  true,
	}
	j := newJSONJournal(file)
	j.file = file
	return j, nil
}

// Record writes d as a JSON line
func (j *JSONJournal) Record(d *types.Datagram) error {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.encoder.Encode(newRecord(d))
}

// Rotate starts a new journal file. It is a no-op on stdout.
func (j *JSONJournal) Rotate() error {
	if j.file == nil {
		return nil
	}
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.file.Rotate()
}

// Close closes the journal file, if any
func (j *JSONJournal) Close() error {
	if j.file == nil {
		return nil
	}
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.file.Close()
}
