// Package app turns MQTT messages from the space into LED board screens.
package app

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/espegro/ledboard-bridge/internal/dedup"
	"github.com/espegro/ledboard-bridge/internal/logger"
	"github.com/espegro/ledboard-bridge/internal/metrics"
	"github.com/espegro/ledboard-bridge/internal/mqtt"
	"github.com/espegro/ledboard-bridge/internal/ratelimit"
	"github.com/espegro/ledboard-bridge/internal/screens"
)

// Display is the LED board
type Display interface {
	SetDate(date time.Time) error
	SendScreen(name, screen string) error
	SendScreens(names []string, screens []string) error
}

// Subscriber is the MQTT connection
type Subscriber interface {
	Subscribe(topic string, handler mqtt.Handler) error
	Disconnect()
}

// Prober reports when the board comes online
type Prober interface {
	Run(ctx context.Context, onOnline func()) error
}

// The board clock is used as a stopwatch while the laser runs
var laserEpoch = time.Date(2000, time.January, 31, 0, 0, 2, 0, time.UTC)

// Application holds the board state driven by MQTT messages
type Application struct {
	display    Display
	subscriber Subscriber
	prober     Prober
	screens    *screens.Screens
	dedup      *dedup.Filter
	limiter    *ratelimit.ScreenLimiter
	now        func() time.Time

	mode Mode

	mu          sync.Mutex
	memberCount int
	laserActive bool
}

// Option configures an Application
type Option func(*Application)

// WithScreens sets the screen builder
func WithScreens(s *screens.Screens) Option {
	return func(a *Application) {
		a.screens = s
	}
}

// WithDedup drops repeated payloads
func WithDedup(f *dedup.Filter) Option {
	return func(a *Application) {
		a.dedup = f
	}
}

// WithLimiter throttles screen pushes
func WithLimiter(l *ratelimit.ScreenLimiter) Option {
	return func(a *Application) {
		a.limiter = l
	}
}

// New creates an application in mode
func New(display Display, subscriber Subscriber, prober Prober, mode Mode, opts ...Option) *Application {
	a := &Application{
		display:    display,
		subscriber: subscriber,
		prober:     prober,
		screens:    screens.New(),
		now:        time.Now,
		mode:       mode,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Run subscribes to the mode's topics and probes the board until ctx is done
func (a *Application) Run(ctx context.Context) error {
	for _, topic := range Topics(a.mode) {
		if err := a.subscriber.Subscribe(topic, a.HandleMessage); err != nil {
			return fmt.Errorf("subscribing to MQTT topics: %w", err)
		}
	}
	logger.Info("Listening in %s mode", a.mode)

	if a.limiter != nil {
		go a.limiter.ReportStats(ctx)
	}

	err := a.prober.Run(ctx, a.boardOnline)

	logger.Info("Shutting down, disconnecting MQTT client")
	a.subscriber.Disconnect()

	if err != nil {
		return fmt.Errorf("probing board: %w", err)
	}
	return nil
}

// boardOnline restores clock and idle screen after the board (re)appears
func (a *Application) boardOnline() {
	a.mu.Lock()
	defer a.mu.Unlock()

	logger.Info("Board is alive, setting date and sending idle screen")
	a.setDate(a.now())
	name, screen := a.idleScreen()
	if err := a.display.SendScreen(name, screen); err != nil {
		logger.Error("Error sending idle screen: %v", err)
		return
	}
	metrics.ScreensSent.WithLabelValues(name).Inc()
}

// HandleMessage processes one MQTT message
func (a *Application) HandleMessage(topic, payload string) {
	metrics.MessagesReceived.WithLabelValues(topic).Inc()
	logger.Info("Received MQTT message topic=%s value=%q", topic, payload)

	if a.dedup.Seen(topic, payload) {
		logger.Debug("Dropping repeated message on %s", topic)
		metrics.RecordIgnored("duplicate")
		return
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	switch topic {
	case TopicMembersPresent:
		count, err := strconv.Atoi(payload)
		if err != nil {
			a.invalid(topic, err)
			return
		}
		a.memberCount = count
		metrics.MembersPresent.Set(float64(count))

		if !a.laserActive {
			name, screen := a.idleScreen()
			a.push([]string{name}, []string{screen})
		}

	case TopicPizza:
		a.pushWithIdle(screens.NamePizzaTimer, a.screens.PizzaTimer())

	case TopicDonation:
		a.pushWithIdle(screens.NameDonation, a.screens.Donation())

	case TopicAlarm:
		a.pushWithIdle(screens.NameAlarm, a.screens.Alarm(payload))

	case TopicNewMember:
		a.pushWithIdle(screens.NameNewMember, a.screens.NewMemberRegistration(payload))

	case TopicDoorBell:
		if payload != "pressed" {
			metrics.RecordIgnored("unhandled")
			return
		}
		a.pushWithIdle(screens.NameDoorBell, a.screens.DoorBell())

	case TopicMessage:
		if payload == "" {
			metrics.RecordIgnored("empty")
			return
		}
		a.pushWithIdle(screens.NameAnnouncement, a.screens.PublicServiceAnnouncement(payload))

	case TopicNowPlaying:
		if payload == "" {
			metrics.RecordIgnored("empty")
			return
		}
		a.pushWithIdle(screens.NameNowPlaying, a.screens.NowPlaying(payload))

	case TopicLaserOperation:
		if payload != "active" {
			a.laserActive = false
			return
		}
		a.laserActive = true
		a.setDate(laserEpoch)
		a.push([]string{screens.NameLaserOperation}, []string{a.screens.LaserOperation()})

	case TopicLaserDuration:
		duration, err := strconv.Atoi(payload)
		if err != nil {
			a.invalid(topic, err)
			return
		}
		// The board clock drifts against the cutter's timer. Pull it
		// back in line shortly before every other full minute.
		minutes := (duration % 3600) / 60
		seconds := duration % 60
		if minutes%2 == 0 && seconds == 57 {
			a.setDate(time.Date(2000, time.January, 31, 0, minutes+1, 0, 0, time.UTC))
		}

	case TopicLaserFinished:
		if payload == "" {
			metrics.RecordIgnored("empty")
			return
		}
		duration, err := strconv.Atoi(payload)
		if err != nil {
			a.invalid(topic, err)
			return
		}
		a.pushWithIdle(screens.NameLaserFinished, a.screens.LaserFinished(duration))
		a.setDate(a.now())

	default:
		metrics.RecordIgnored("unhandled")
	}
}

// State returns the member count and whether the laser is running
func (a *Application) State() (memberCount int, laserActive bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.memberCount, a.laserActive
}

// idleScreen returns the screen shown between announcements.
// Caller must hold a.mu.
func (a *Application) idleScreen() (string, string) {
	if a.mode == ModeLasercutter && a.laserActive {
		return screens.NameLaserOperation, a.screens.LaserOperation()
	}
	return screens.NameIdle, a.screens.Idle(a.memberCount)
}

// pushWithIdle shows screen once, followed by the idle screen
func (a *Application) pushWithIdle(name, screen string) {
	idleName, idle := a.idleScreen()
	a.push([]string{name, idleName}, []string{screen, idle})
}

// push sends screens to the board unless the rate limit is exhausted
func (a *Application) push(names, screenList []string) {
	if a.limiter != nil && !a.limiter.Allow() {
		metrics.RecordIgnored("ratelimit")
		return
	}

	var err error
	if len(screenList) == 1 {
		err = a.display.SendScreen(names[0], screenList[0])
	} else {
		err = a.display.SendScreens(names, screenList)
	}
	if err != nil {
		logger.Error("Error sending to LED board: %v", err)
		return
	}

	for _, name := range names {
		metrics.ScreensSent.WithLabelValues(name).Inc()
	}
}

func (a *Application) setDate(date time.Time) {
	if err := a.display.SetDate(date); err != nil {
		logger.Error("Error setting LED board date: %v", err)
	}
}

func (a *Application) invalid(topic string, err error) {
	logger.Error("Invalid payload on %s: %v", topic, err)
	metrics.RecordIgnored("invalid")
}
