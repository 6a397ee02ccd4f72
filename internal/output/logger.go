package output

import "github.com/espegro/ledboard-bridge/internal/types"

// Journal is the interface for datagram journals
type Journal interface {
	// Record logs a datagram written to the board
	Record(d *types.Datagram) error

	// Close closes the journal and flushes any buffered data
	Close() error
}

// NopJournal discards all records
type NopJournal struct{}

// Record does nothing
func (NopJournal) Record(*types.Datagram) error { return nil }

// Close does nothing
func (NopJournal) Close() error { return nil }
