package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	dto "github.com/prometheus/client_model/go"
)

func getCounterValue(counter prometheus.Counter) float64 {
	var m dto.Metric
	if err := counter.Write(&m); err != nil {
		return 0
	}
	return m.Counter.GetValue()
}

func getGaugeValue(gauge prometheus.Gauge) float64 {
	var m dto.Metric
	if err := gauge.Write(&m); err != nil {
		return 0
	}
	return m.Gauge.GetValue()
}

func TestRecordDatagram(t *testing.T) {
	initialBytes := getCounterValue(BytesSent)
	initialScreens := testutil.ToFloat64(DatagramsSent.WithLabelValues("screen"))
	initialDates := testutil.ToFloat64(DatagramsSent.WithLabelValues("date"))

	RecordDatagram("screen", 120)
	RecordDatagram("screen", 80)
	RecordDatagram("date", 17)

	if got := getCounterValue(BytesSent) - initialBytes; got != 217 {
		t.Errorf("Expected 217 bytes sent, got %.0f", got)
	}
	if got := testutil.ToFloat64(DatagramsSent.WithLabelValues("screen")) - initialScreens; got != 2 {
		t.Errorf("Expected 2 screen datagrams, got %.0f", got)
	}
	if got := testutil.ToFloat64(DatagramsSent.WithLabelValues("date")) - initialDates; got != 1 {
		t.Errorf("Expected 1 date datagram, got %.0f", got)
	}
}

func TestRecordIgnored(t *testing.T) {
	initial := testutil.ToFloat64(MessagesIgnored.WithLabelValues("empty"))
	RecordIgnored("empty")
	RecordIgnored("empty")

	if got := testutil.ToFloat64(MessagesIgnored.WithLabelValues("empty")) - initial; got != 2 {
		t.Errorf("Expected 2 ignored messages, got %.0f", got)
	}
}

func TestMessagesReceived(t *testing.T) {
	counter := MessagesReceived.WithLabelValues("psa/nowPlaying")
	initial := getCounterValue(counter)
	counter.Inc()

	if got := getCounterValue(counter) - initial; got != 1 {
		t.Errorf("Expected 1 message received, got %.0f", got)
	}
}

func TestSendErrors(t *testing.T) {
	initial := getCounterValue(SendErrors)
	SendErrors.Inc()

	if got := getCounterValue(SendErrors) - initial; got != 1 {
		t.Errorf("Expected 1 send error, got %.0f", got)
	}
}

func TestSetBoardOnline(t *testing.T) {
	SetBoardOnline(true)
	if value := getGaugeValue(BoardOnline); value != 1 {
		t.Errorf("Expected board online gauge 1, got %.0f", value)
	}

	SetBoardOnline(false)
	if value := getGaugeValue(BoardOnline); value != 0 {
		t.Errorf("Expected board online gauge 0, got %.0f", value)
	}
}

func TestMembersPresent(t *testing.T) {
	MembersPresent.Set(12)
	if value := getGaugeValue(MembersPresent); value != 12 {
		t.Errorf("Expected 12 members present, got %.0f", value)
	}
}

func TestRateLimitTokensAvailable(t *testing.T) {
	RateLimitTokensAvailable.Set(5)
	if value := getGaugeValue(RateLimitTokensAvailable); value != 5 {
		t.Errorf("Expected 5 tokens, got %.0f", value)
	}
}

func TestDatagramSizeHistogram(t *testing.T) {
	// Histograms expose no simple value; make sure observations are collected
	DatagramSize.Observe(64)
	if n := testutil.CollectAndCount(DatagramSize); n != 1 {
		t.Errorf("Expected 1 histogram metric, got %d", n)
	}
}
