// Package screens builds LED board command strings for each screen the
// bridge can show. Builders are pure: the output depends only on the
// arguments, the token table and the sanitizer.
package screens

import (
	"fmt"
	"strings"

	"github.com/espegro/ledboard-bridge/internal/ledboard"
	"github.com/espegro/ledboard-bridge/internal/text"
)

// Sanitizer normalizes user supplied text for the board
type Sanitizer func(string) string

// Screens renders screens from a token table
type Screens struct {
	cmd      ledboard.Table
	sanitize Sanitizer
}

// Option configures Screens
type Option func(*Screens)

// WithTable replaces the protocol token table
func WithTable(table ledboard.Table) Option {
	return func(s *Screens) {
		s.cmd = table
	}
}

// WithSanitizer replaces the text sanitizer
func WithSanitizer(sanitize Sanitizer) Option {
	return func(s *Screens) {
		s.sanitize = sanitize
	}
}

// New creates a screen renderer using the board protocol tokens and the
// umlaut sanitizer unless overridden
func New(opts ...Option) *Screens {
	s := &Screens{
		cmd:      ledboard.Commands(),
		sanitize: text.SanitizeUmlauts,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NowPlaying generates the command string for the now playing screen.
func (s *Screens) NowPlaying(message string) string {
	c := s.cmd
	var b strings.Builder

	b.WriteString(c.Control.PatternIn + c.Pattern.RadarScan)

	b.WriteString(c.Font.Normal7x6)

	b.WriteString(c.Control.FontColor + c.FontColor.Yellow)
	b.WriteString("NOW PLAYING")

	b.WriteString(c.Pause.Second2 + "05")
	b.WriteString(c.Control.Frame)

	b.WriteString(s.sanitize(message))
	b.WriteString(c.Pause.Second2 + "45")

	return b.String()
}

// PublicServiceAnnouncement generates the command string for a public service announcement.
func (s *Screens) PublicServiceAnnouncement(message string) string {
	c := s.cmd
	var b strings.Builder

	b.WriteString(c.Control.PatternIn + c.Pattern.RadarScan)
	b.WriteString(c.Control.Flash + c.Flash.On)

	b.WriteString(c.Font.Normal7x6)

	b.WriteString(c.Control.FontColor + c.FontColor.Yellow)
	b.WriteString("PUBLIC ")
	b.WriteString(c.Control.FontColor + c.FontColor.Red)
	b.WriteString("SERVICE ")
	b.WriteString(c.Control.FontColor + c.FontColor.Green)
	b.WriteString("ANNOUNCEMENT")

	b.WriteString(c.Control.Flash + c.Flash.Off)

	b.WriteString(c.Pause.Second2 + "05")
	b.WriteString(c.Control.Frame)

	b.WriteString(s.sanitize(message))
	b.WriteString(c.Pause.Second2 + "45")

	return b.String()
}

// Alarm generates the command string for the alarm screen.
func (s *Screens) Alarm(message string) string {
	c := s.cmd
	var b strings.Builder

	b.WriteString(c.Control.PatternIn + c.Pattern.RadarScan)

	b.WriteString(c.Font.Normal16x9)
	b.WriteString(c.Control.Flash + c.Flash.On)
	b.WriteString(c.Control.FontColor + c.FontColor.Red)
	b.WriteString("!  ALARM  !")
	b.WriteString(c.Control.Flash + c.Flash.Off)
	b.WriteString(c.Pause.Second2 + "04")

	b.WriteString(c.Control.Frame)

	b.WriteString(c.Font.Normal7x6)
	b.WriteString(c.Control.FontColor + c.FontColor.Green)
	b.WriteString(c.Control.PatternIn + c.Pattern.MoveUp)
	b.WriteString(c.Control.PatternOut + c.Pattern.MoveLeft)
	b.WriteString(s.sanitize(message))
	b.WriteString(c.Pause.Second2 + "30")

	return b.String()
}

// Donation generates the command string for the donation screen.
func (s *Screens) Donation() string {
	return s.banner(`\o/ Spende! \o/`, s.cmd.FontColor.YGRCharacter, "04", true)
}

// DoorBell generates the command string for the doorbell screen.
func (s *Screens) DoorBell() string {
	return s.banner("! DOORBELL !", s.cmd.FontColor.Red, "10", false)
}

// PizzaTimer generates the command string for the pizza timer screen.
func (s *Screens) PizzaTimer() string {
	return s.banner("PIZZA IS READY!", s.cmd.FontColor.YGRCharacter, "10", true)
}

// banner renders a single flashing 16x9 line scrolled in and out upwards.
// fontFirst places the font token before the transition tokens.
func (s *Screens) banner(title, color, pause string, fontFirst bool) string {
	c := s.cmd
	var b strings.Builder

	if fontFirst {
		b.WriteString(c.Font.Normal16x9)
	}
	b.WriteString(c.Control.PatternIn + c.Pattern.ScrollUp)
	b.WriteString(c.Control.PatternOut + c.Pattern.ScrollUp)
	if !fontFirst {
		b.WriteString(c.Font.Normal16x9)
	}

	b.WriteString(c.Control.Flash + c.Flash.On)
	b.WriteString(c.Control.FontColor + color)
	b.WriteString(title)
	b.WriteString(c.Control.Flash + c.Flash.Off)

	b.WriteString(c.Pause.Second2 + pause)

	return b.String()
}

// Idle generates the command string for the idle screen: board clock plus
// the number of members present.
func (s *Screens) Idle(memberCount int) string {
	c := s.cmd
	var b strings.Builder

	b.WriteString(c.Font.Normal7x6)
	b.WriteString(c.Control.PatternIn + c.Pattern.ScrollUp)
	b.WriteString(c.Control.PatternOut + c.Pattern.ScrollUp)

	b.WriteString(c.Control.FontColor + c.FontColor.Green)
	b.WriteString(c.Control.Special + c.Special.YYYY + "-")
	b.WriteString(c.Control.Special + c.Special.MM + "-")
	b.WriteString(c.Control.Special + c.Special.DD + " ")

	b.WriteString(c.Control.FontColor + c.FontColor.Red)
	b.WriteString(c.Control.Special + c.Special.HH + ":")
	b.WriteString(c.Control.Special + c.Special.MIN + ":")
	b.WriteString(c.Control.Special + c.Special.SEC)

	b.WriteString(c.Control.LineFeed)

	b.WriteString(c.Control.FontColor + c.FontColor.Yellow)
	fmt.Fprintf(&b, "humans present: %d", memberCount)
	b.WriteString(c.Pause.Second4 + "9999")

	return b.String()
}

// NewMemberRegistration generates the welcome screen for a new member.
func (s *Screens) NewMemberRegistration(nickname string) string {
	c := s.cmd
	var b strings.Builder

	b.WriteString(c.Control.PatternIn + c.Pattern.RadarScan)

	for _, color := range []string{c.FontColor.Green, c.FontColor.Red, c.FontColor.YGRHorizontal} {
		b.WriteString(c.Font.Normal7x6)
		b.WriteString(c.Control.FontColor + color)
		b.WriteString("Herzlich Willkommen im backspace!")
		b.WriteString(c.Pause.Second2 + "01")
		b.WriteString(c.Control.Frame)
	}

	b.WriteString(c.Font.Normal16x9)
	b.WriteString(c.Control.FontColor + c.FontColor.Yellow)
	b.WriteString(c.Control.PatternIn + c.Pattern.MoveUp)
	b.WriteString(c.Control.PatternOut + c.Pattern.MoveLeft)
	b.WriteString(s.sanitize(nickname))
	b.WriteString(c.Pause.Second2 + "30")

	return b.String()
}

// LaserOperation generates the screen shown while the laser cutter runs.
// It displays the board clock, which the bridge resets to zero when a job
// starts, so the clock works as a job timer.
func (s *Screens) LaserOperation() string {
	c := s.cmd
	var b strings.Builder

	b.WriteString(c.Control.PatternIn + c.Pattern.RadarScan)

	b.WriteString(c.Font.Normal15x9)
	b.WriteString(c.Control.FontColor + c.FontColor.Red)

	b.WriteString(c.Control.Special + c.Special.HH + "h ")
	b.WriteString(c.Control.Special + c.Special.MIN + "m ")
	b.WriteString(c.Control.Special + c.Special.SEC + "s ")

	b.WriteString(c.Pause.Second4 + "9999")

	return b.String()
}

// LaserFinished generates the screen shown when a laser job of the given
// duration in seconds finished.
func (s *Screens) LaserFinished(duration int) string {
	c := s.cmd
	var b strings.Builder

	b.WriteString(c.Control.PatternIn + c.Pattern.ScrollUp)
	b.WriteString(c.Control.PatternOut + c.Pattern.ScrollUp)

	if duration > 10*60 {
		b.WriteString(c.Font.Normal14x8)
		b.WriteString(c.Control.FontColor + c.FontColor.Green)

		// Blink by alternating text and blank frames
		for i := 0; i < 3; i++ {
			b.WriteString("Congratulations!")
			b.WriteString(c.Pause.Millisecond4 + "0400")
			b.WriteString(c.Control.Frame)
			b.WriteString(" ")
			b.WriteString(c.Pause.Millisecond4 + "0100")
			b.WriteString(c.Control.Frame)
		}
	}

	b.WriteString(c.Control.PatternIn + c.Pattern.PeelOffR)

	b.WriteString(c.Font.Normal7x6)
	b.WriteString(c.Control.FontColor + c.FontColor.Green)
	b.WriteString(c.Control.Flash + c.Flash.Off)

	b.WriteString("Laser-Job finished:")

	b.WriteString(c.Control.LineFeed)
	b.WriteString(c.Control.FontColor + c.FontColor.Red)
	b.WriteString(FormatDuration(duration))

	b.WriteString(c.Pause.Second4 + "0120")

	return b.String()
}

// FormatDuration formats seconds as "1h 2m 3s", omitting zero components
func FormatDuration(duration int) string {
	hours := duration / 3600
	minutes := (duration % 3600) / 60
	seconds := duration % 60

	var b strings.Builder
	if hours > 0 {
		fmt.Fprintf(&b, "%dh ", hours)
	}
	if minutes > 0 {
		fmt.Fprintf(&b, "%dm ", minutes)
	}
	if seconds > 0 {
		fmt.Fprintf(&b, "%ds", seconds)
	}
	return b.String()
}
