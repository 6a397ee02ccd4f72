// Package probe watches the LED board with ICMP echo requests. The board
// forgets its clock and playlist on power loss, so the bridge needs to know
// when it comes back.
package probe

import (
	"context"
	"fmt"
	"sync"
	"time"

	probing "github.com/prometheus-community/pro-bing"

	"github.com/espegro/ledboard-bridge/internal/logger"
)

// Probe pings a host and reports when it comes online
type Probe struct {
	host    string
	pinger  *probing.Pinger
	tracker *Tracker
	log     *logger.Logger

	// sequence of the last request, and whether it is still unanswered
	mu      sync.Mutex
	seq     int
	waiting bool
}

// New creates a probe for host. answers is the number of consecutive
// replies required before the host counts as online.
func New(host string, interval time.Duration, answers int, privileged bool) (*Probe, error) {
	pinger, err := probing.NewPinger(host)
	if err != nil {
		return nil, fmt.Errorf("creating pinger for %s: %w", host, err)
	}
	pinger.Interval = interval
	pinger.SetPrivileged(privileged)

	return &Probe{
		host:    host,
		pinger:  pinger,
		tracker: NewTracker(answers),
		log:     logger.Named("probe"),
	}, nil
}

// Run pings until ctx is done. onOnline is called every time the host
// goes from offline to online, including the first time.
func (p *Probe) Run(ctx context.Context, onOnline func()) error {
	results := make(chan bool, 16)
	report := func(answered bool) {
		select {
		case results <- answered:
		case <-ctx.Done():
		}
	}

	p.pinger.OnSend = func(pkt *probing.Packet) {
		if p.sent(pkt.Seq) {
			report(false)
		}
	}
	p.pinger.OnRecv = func(pkt *probing.Packet) {
		if p.received(pkt.Seq) {
			report(true)
		}
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			select {
			case <-ctx.Done():
				return
			case answered := <-results:
				p.observe(answered, onOnline)
			}
		}
	}()

	p.log.Info("Probing %s every %s", p.host, p.pinger.Interval)
	err := p.pinger.RunWithContext(ctx)
	<-done

	if err != nil && ctx.Err() == nil {
		return fmt.Errorf("pinging %s: %w", p.host, err)
	}
	return nil
}

// Online reports whether the host currently counts as reachable
func (p *Probe) Online() bool {
	return p.tracker.Online()
}

func (p *Probe) observe(answered bool, onOnline func()) {
	switch p.tracker.Observe(answered) {
	case WentOnline:
		p.log.Info("Host %s went online", p.host)
		if onOnline != nil {
			onOnline()
		}
	case WentOffline:
		p.log.Warn("Host %s went offline", p.host)
	}
}

// sent records an outgoing request. It returns true when the previous
// request never got a reply.
func (p *Probe) sent(seq int) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	lost := p.waiting
	p.seq = seq
	p.waiting = true
	return lost
}

// received records a reply. It returns true when the reply answers the
// outstanding request; late replies are ignored.
func (p *Probe) received(seq int) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.waiting || seq != p.seq {
		return false
	}
	p.waiting = false
	return true
}
