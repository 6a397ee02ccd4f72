package screens

import (
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/espegro/ledboard-bridge/internal/ledboard"
	"github.com/espegro/ledboard-bridge/internal/text"
)

const (
	nowPlayingPreamble = "\x06\x0aI\x47" + "\x1a\x31" + "\x1c\x33" + "NOW PLAYING" + "\x0e\x3005" + "\x0c"
	nowPlayingSuffix   = "\x0e\x3045"
)

// placeholderTable maps every token to a single distinct byte
func placeholderTable() ledboard.Table {
	var t ledboard.Table
	t.Control.PatternIn = "\x01"
	t.Pattern.RadarScan = "\x02"
	t.Font.Normal7x6 = "\x03"
	t.Control.FontColor = "\x04"
	t.FontColor.Yellow = "\x05"
	t.Pause.Second2 = "\x06"
	t.Control.Frame = "\x07"
	return t
}

func TestNowPlaying_PlaceholderTokens(t *testing.T) {
	s := New(WithTable(placeholderTable()), WithSanitizer(text.Identity))

	got := s.NowPlaying("Test")
	want := "\x01\x02\x03\x04\x05NOW PLAYING\x0605\x07Test\x0645"
	if got != want {
		t.Errorf("NowPlaying(%q) = %q, want %q", "Test", got, want)
	}
}

func TestNowPlaying_ProtocolTokens(t *testing.T) {
	s := New()

	tests := []struct {
		message string
		inner   string
	}{
		{"Daft Punk - Around the World", "Daft Punk - Around the World"},
		{"", ""},
		{"Fö", "Foe"},
		{"Die Ärzte - Männer sind Schweine", "Die Aerzte - Maenner sind Schweine"},
		{"evil\x04\x0cpayload", "evilpayload"},
	}

	for _, tt := range tests {
		got := s.NowPlaying(tt.message)
		want := nowPlayingPreamble + tt.inner + nowPlayingSuffix
		if got != want {
			t.Errorf("NowPlaying(%q) = %q, want %q", tt.message, got, want)
		}
	}
}

func TestNowPlaying_SanitizedPosition(t *testing.T) {
	s := New()
	got := s.NowPlaying("Fö")

	frame := strings.Index(got, ledboard.ControlFrame)
	if frame < 0 {
		t.Fatal("Expected frame token in output")
	}
	rest := got[frame+len(ledboard.ControlFrame):]
	if !strings.HasPrefix(rest, "Foe"+ledboard.PauseSecond2+"45") {
		t.Errorf("Expected sanitized message between frame and final pause, got %q", rest)
	}
	if strings.Contains(got, "ö") {
		t.Error("Raw umlaut leaked into command string")
	}
}

func TestNowPlaying_Deterministic(t *testing.T) {
	s := New()
	first := s.NowPlaying("Kraftwerk - Computerwelt")

	// Interleave other renders to make sure nothing carries over between calls
	s.Alarm("fire")
	s.Idle(42)

	if second := s.NowPlaying("Kraftwerk - Computerwelt"); second != first {
		t.Errorf("Expected identical output, got %q and %q", first, second)
	}
}

func TestNowPlaying_Concurrent(t *testing.T) {
	s := New()
	want := s.NowPlaying("Moderat - A New Error")

	var wg sync.WaitGroup
	errs := make(chan string, 50)
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if got := s.NowPlaying("Moderat - A New Error"); got != want {
				errs <- got
			}
		}()
	}
	wg.Wait()
	close(errs)

	for got := range errs {
		t.Errorf("Concurrent render differs: %q", got)
	}
}

func TestNewDoesNotShareTable(t *testing.T) {
	table := ledboard.Commands()
	table.Pattern.RadarScan = "X"

	if ledboard.Commands().Pattern.RadarScan != ledboard.PatternRadarScan {
		t.Error("Modifying a returned table changed the protocol table")
	}
	if got := New().NowPlaying(""); got != nowPlayingPreamble+nowPlayingSuffix {
		t.Errorf("Unexpected default render: %q", got)
	}
}

func TestPublicServiceAnnouncement(t *testing.T) {
	s := New()
	got := s.PublicServiceAnnouncement("Bitte Müll trennen")

	want := ledboard.ControlPatternIn + ledboard.PatternRadarScan +
		ledboard.ControlFlash + ledboard.FlashOn +
		ledboard.FontNormal7x6 +
		ledboard.ControlFontColor + ledboard.FontColorYellow + "PUBLIC " +
		ledboard.ControlFontColor + ledboard.FontColorRed + "SERVICE " +
		ledboard.ControlFontColor + ledboard.FontColorGreen + "ANNOUNCEMENT" +
		ledboard.ControlFlash + ledboard.FlashOff +
		ledboard.PauseSecond2 + "05" +
		ledboard.ControlFrame +
		"Bitte Muell trennen" +
		ledboard.PauseSecond2 + "45"

	if got != want {
		t.Errorf("PublicServiceAnnouncement = %q, want %q", got, want)
	}
}

func TestAlarm(t *testing.T) {
	s := New()
	got := s.Alarm("Rauchmelder Küche")

	want := ledboard.ControlPatternIn + ledboard.PatternRadarScan +
		ledboard.FontNormal16x9 +
		ledboard.ControlFlash + ledboard.FlashOn +
		ledboard.ControlFontColor + ledboard.FontColorRed +
		"!  ALARM  !" +
		ledboard.ControlFlash + ledboard.FlashOff +
		ledboard.PauseSecond2 + "04" +
		ledboard.ControlFrame +
		ledboard.FontNormal7x6 +
		ledboard.ControlFontColor + ledboard.FontColorGreen +
		ledboard.ControlPatternIn + ledboard.PatternMoveUp +
		ledboard.ControlPatternOut + ledboard.PatternMoveLeft +
		"Rauchmelder Kueche" +
		ledboard.PauseSecond2 + "30"

	if got != want {
		t.Errorf("Alarm = %q, want %q", got, want)
	}
}

func TestBanners(t *testing.T) {
	s := New()
	scroll := ledboard.ControlPatternIn + ledboard.PatternScrollUp +
		ledboard.ControlPatternOut + ledboard.PatternScrollUp

	tests := []struct {
		name string
		got  string
		want string
	}{
		{
			name: "donation",
			got:  s.Donation(),
			want: ledboard.FontNormal16x9 + scroll +
				ledboard.ControlFlash + ledboard.FlashOn +
				ledboard.ControlFontColor + ledboard.FontColorYGRCharacter +
				`\o/ Spende! \o/` +
				ledboard.ControlFlash + ledboard.FlashOff +
				ledboard.PauseSecond2 + "04",
		},
		{
			name: "doorbell",
			got:  s.DoorBell(),
			want: scroll + ledboard.FontNormal16x9 +
				ledboard.ControlFlash + ledboard.FlashOn +
				ledboard.ControlFontColor + ledboard.FontColorRed +
				"! DOORBELL !" +
				ledboard.ControlFlash + ledboard.FlashOff +
				ledboard.PauseSecond2 + "10",
		},
		{
			name: "pizza",
			got:  s.PizzaTimer(),
			want: ledboard.FontNormal16x9 + scroll +
				ledboard.ControlFlash + ledboard.FlashOn +
				ledboard.ControlFontColor + ledboard.FontColorYGRCharacter +
				"PIZZA IS READY!" +
				ledboard.ControlFlash + ledboard.FlashOff +
				ledboard.PauseSecond2 + "10",
		},
	}

	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s = %q, want %q", tt.name, tt.got, tt.want)
		}
	}
}

func TestIdle(t *testing.T) {
	s := New()
	got := s.Idle(7)

	if !strings.HasPrefix(got, ledboard.FontNormal7x6+ledboard.ControlPatternIn+ledboard.PatternScrollUp) {
		t.Errorf("Unexpected idle prefix: %q", got)
	}
	if !strings.Contains(got, ledboard.ControlSpecial+ledboard.SpecialYYYY+"-") {
		t.Error("Expected year special in idle screen")
	}
	if !strings.Contains(got, ledboard.ControlSpecial+ledboard.SpecialSEC+ledboard.ControlLineFeed) {
		t.Error("Expected seconds special followed by line feed")
	}
	if !strings.HasSuffix(got, "humans present: 7"+ledboard.PauseSecond4+"9999") {
		t.Errorf("Unexpected idle suffix: %q", got)
	}
}

func TestNewMemberRegistration(t *testing.T) {
	s := New()
	got := s.NewMemberRegistration("jöran")

	if n := strings.Count(got, "Herzlich Willkommen im backspace!"); n != 3 {
		t.Errorf("Expected 3 welcome frames, got %d", n)
	}
	if n := strings.Count(got, ledboard.ControlFrame); n != 3 {
		t.Errorf("Expected 3 frame breaks, got %d", n)
	}
	if !strings.HasSuffix(got, "joeran"+ledboard.PauseSecond2+"30") {
		t.Errorf("Expected sanitized nickname at the end, got %q", got)
	}
}

func TestLaserOperation(t *testing.T) {
	want := ledboard.ControlPatternIn + ledboard.PatternRadarScan +
		ledboard.FontNormal15x9 +
		ledboard.ControlFontColor + ledboard.FontColorRed +
		ledboard.ControlSpecial + ledboard.SpecialHH + "h " +
		ledboard.ControlSpecial + ledboard.SpecialMIN + "m " +
		ledboard.ControlSpecial + ledboard.SpecialSEC + "s " +
		ledboard.PauseSecond4 + "9999"

	if got := New().LaserOperation(); got != want {
		t.Errorf("LaserOperation = %q, want %q", got, want)
	}
}

func TestLaserFinished(t *testing.T) {
	s := New()

	short := s.LaserFinished(125)
	if strings.Contains(short, "Congratulations!") {
		t.Error("Short jobs should not be congratulated")
	}
	if !strings.HasSuffix(short, "2m 5s"+ledboard.PauseSecond4+"0120") {
		t.Errorf("Unexpected short job suffix: %q", short)
	}

	long := s.LaserFinished(3723)
	if n := strings.Count(long, "Congratulations!"); n != 3 {
		t.Errorf("Expected 3 congratulation frames, got %d", n)
	}
	if !strings.Contains(long, ledboard.ControlPatternIn+ledboard.PatternPeelOffR) {
		t.Error("Expected peel off transition")
	}
	if !strings.HasSuffix(long, "1h 2m 3s"+ledboard.PauseSecond4+"0120") {
		t.Errorf("Unexpected long job suffix: %q", long)
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		seconds  int
		expected string
	}{
		{0, ""},
		{5, "5s"},
		{60, "1m "},
		{61, "1m 1s"},
		{3600, "1h "},
		{3661, "1h 1m 1s"},
		{7322, "2h 2m 2s"},
	}

	for _, tt := range tests {
		if got := FormatDuration(tt.seconds); got != tt.expected {
			t.Errorf("FormatDuration(%d) = %q, want %q", tt.seconds, got, tt.expected)
		}
	}
}

func TestRender(t *testing.T) {
	s := New()

	got, err := s.Render(NameNowPlaying, "Test")
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if got != s.NowPlaying("Test") {
		t.Errorf("Render(nowplaying) differs from NowPlaying: %q", got)
	}

	got, err = s.Render(NameIdle, "3")
	if err != nil {
		t.Fatalf("Render idle failed: %v", err)
	}
	if got != s.Idle(3) {
		t.Errorf("Render(idle) differs from Idle: %q", got)
	}

	if _, err := s.Render(NameLaserFinished, "abc"); err == nil {
		t.Error("Expected error for non-numeric duration")
	}

	if _, err := s.Render("marquee", ""); !errors.Is(err, ErrUnknownScreen) {
		t.Errorf("Expected ErrUnknownScreen, got %v", err)
	}
}

func TestNames(t *testing.T) {
	s := New()
	names := Names()
	if len(names) != 10 {
		t.Errorf("Expected 10 screen names, got %d", len(names))
	}
	for _, name := range names {
		if _, err := s.Render(name, ""); err != nil {
			t.Errorf("Render(%q) failed: %v", name, err)
		}
	}
}
