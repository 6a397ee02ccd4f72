package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for ledboard-bridge
var (
	// MQTT counters
	MessagesReceived = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ledboard_mqtt_messages_received_total",
			Help: "Total number of MQTT messages received by topic",
		},
		[]string{"topic"},
	)

	MessagesIgnored = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ledboard_mqtt_messages_ignored_total",
			Help: "Total number of MQTT messages that did not produce a screen",
		},
		[]string{"reason"}, // "empty", "invalid", "duplicate", "ratelimit", "unhandled"
	)

	// Screens by name
	ScreensSent = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ledboard_screens_sent_total",
			Help: "Total number of screens pushed to the board by screen name",
		},
		[]string{"screen"},
	)

	// Datagram counters
	DatagramsSent = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ledboard_datagrams_sent_total",
			Help: "Total number of datagrams written to the board by kind",
		},
		[]string{"kind"}, // "screen" or "date"
	)

	BytesSent = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ledboard_bytes_sent_total",
		Help: "Total bytes written to the board",
	})

	SendErrors = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ledboard_send_errors_total",
		Help: "Total number of failed datagram writes",
	})

	// Gauges for current state
	BoardOnline = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "ledboard_board_online",
		Help: "1 if the board answered the last consecutive pings, 0 otherwise",
	})

	MembersPresent = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "ledboard_members_present",
		Help: "Last reported number of members present",
	})

	// Rate limiting metrics
	RateLimitTokensAvailable = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "ledboard_ratelimit_tokens_available",
		Help: "Number of rate limit tokens currently available",
	})

	// Histogram for datagram sizes
	DatagramSize = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "ledboard_datagram_size_bytes",
		Help:    "Size of datagrams written to the board",
		Buckets: prometheus.ExponentialBuckets(16, 2, 8), // 16B to 2KB
	})
)

// RecordDatagram records a successful datagram write
func RecordDatagram(kind string, size int) {
	DatagramsSent.WithLabelValues(kind).Inc()
	BytesSent.Add(float64(size))
	DatagramSize.Observe(float64(size))
}

// RecordIgnored records a message that was dropped without a screen
func RecordIgnored(reason string) {
	MessagesIgnored.WithLabelValues(reason).Inc()
}

// SetBoardOnline updates the board liveness gauge
func SetBoardOnline(online bool) {
	if online {
		BoardOnline.Set(1)
	} else {
		BoardOnline.Set(0)
	}
}
