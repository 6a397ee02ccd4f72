package screens

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
)

// ErrUnknownScreen is returned by Render for names not in Names()
var ErrUnknownScreen = errors.New("unknown screen")

// Screen names accepted by Render
const (
	NameNowPlaying     = "nowplaying"
	NameAnnouncement   = "announcement"
	NameAlarm          = "alarm"
	NameDonation       = "donation"
	NameDoorBell       = "doorbell"
	NamePizzaTimer     = "pizza"
	NameIdle           = "idle"
	NameNewMember      = "newmember"
	NameLaserOperation = "laseroperation"
	NameLaserFinished  = "laserfinished"
)

type renderFunc func(s *Screens, arg string) (string, error)

var renderers = map[string]renderFunc{
	NameNowPlaying: func(s *Screens, arg string) (string, error) {
		return s.NowPlaying(arg), nil
	},
	NameAnnouncement: func(s *Screens, arg string) (string, error) {
		return s.PublicServiceAnnouncement(arg), nil
	},
	NameAlarm: func(s *Screens, arg string) (string, error) {
		return s.Alarm(arg), nil
	},
	NameDonation: func(s *Screens, _ string) (string, error) {
		return s.Donation(), nil
	},
	NameDoorBell: func(s *Screens, _ string) (string, error) {
		return s.DoorBell(), nil
	},
	NamePizzaTimer: func(s *Screens, _ string) (string, error) {
		return s.PizzaTimer(), nil
	},
	NameIdle: func(s *Screens, arg string) (string, error) {
		count, err := atoiOrZero(arg)
		if err != nil {
			return "", fmt.Errorf("parsing member count: %w", err)
		}
		return s.Idle(count), nil
	},
	NameNewMember: func(s *Screens, arg string) (string, error) {
		return s.NewMemberRegistration(arg), nil
	},
	NameLaserOperation: func(s *Screens, _ string) (string, error) {
		return s.LaserOperation(), nil
	},
	NameLaserFinished: func(s *Screens, arg string) (string, error) {
		duration, err := atoiOrZero(arg)
		if err != nil {
			return "", fmt.Errorf("parsing duration: %w", err)
		}
		return s.LaserFinished(duration), nil
	},
}

// Render renders the screen with the given name. arg is the message,
// nickname, member count or duration depending on the screen and is
// ignored by screens without input.
func (s *Screens) Render(name, arg string) (string, error) {
	render, ok := renderers[name]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownScreen, name)
	}
	return render(s, arg)
}

// Names returns the sorted screen names accepted by Render
func Names() []string {
	names := make([]string, 0, len(renderers))
	for name := range renderers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func atoiOrZero(s string) (int, error) {
	if s == "" {
		return 0, nil
	}
	return strconv.Atoi(s)
}
