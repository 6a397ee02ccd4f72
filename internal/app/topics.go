package app

import "github.com/espegro/ledboard-bridge/internal/config"

// Mode selects which topics the bridge listens to
type Mode string

const (
	ModeDefault     Mode = config.ModeDefault
	ModeLasercutter Mode = config.ModeLasercutter
)

// MQTT topics
const (
	TopicAlarm          = "psa/alarm"
	TopicPizza          = "psa/pizza"
	TopicMessage        = "psa/message"
	TopicDoorBell       = "sensor/door/bell"
	TopicMembersPresent = "sensor/space/member/present"

	TopicDonation   = "psa/donation"
	TopicNewMember  = "psa/newMember"
	TopicNowPlaying = "psa/nowPlaying"

	TopicLaserOperation = "project/laser/operation"
	TopicLaserFinished  = "project/laser/finished"
	TopicLaserDuration  = "project/laser/duration"
)

var commonTopics = []string{
	TopicAlarm,
	TopicPizza,
	TopicMessage,
	TopicDoorBell,
	TopicMembersPresent,
}

var modeTopics = map[Mode][]string{
	ModeDefault:     {TopicDonation, TopicNewMember, TopicNowPlaying},
	ModeLasercutter: {TopicLaserOperation, TopicLaserFinished, TopicLaserDuration},
}

// Topics returns the topics subscribed in mode
func Topics(mode Mode) []string {
	topics := make([]string, 0, len(commonTopics)+len(modeTopics[mode]))
	topics = append(topics, commonTopics...)
	return append(topics, modeTopics[mode]...)
}
