// Package mqtt wraps the paho MQTT client with the subscribe-by-topic
// surface the bridge needs.
package mqtt

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	backoff "github.com/cenkalti/backoff/v4"
	paho "github.com/eclipse/paho.mqtt.golang"

	"github.com/espegro/ledboard-bridge/internal/config"
	"github.com/espegro/ledboard-bridge/internal/logger"
)

// ErrNotConnected is returned when the broker connection is down
var ErrNotConnected = errors.New("mqtt client not connected")

const (
	operationTimeout    = 10 * time.Second
	disconnectQuiesceMS = 250
)

// Handler receives a message payload for a topic
type Handler func(topic, payload string)

// Client is a broker connection with remembered subscriptions
type Client struct {
	client paho.Client
	subs   map[string]Handler
	mu     sync.Mutex
}

// Connect dials the broker described by cfg, retrying with exponential
// backoff for up to cfg.ConnectRetrySec. Subscriptions are restored after
// every reconnect.
func Connect(ctx context.Context, cfg config.MQTTConfig) (*Client, error) {
	routePahoLogs(logger.Named("paho"))
	c := &Client{subs: make(map[string]Handler)}

	opts := paho.NewClientOptions().
		AddBroker(fmt.Sprintf("tcp://%s:%d", cfg.Host, cfg.Port)).
		SetClientID(cfg.ClientID).
		SetKeepAlive(time.Duration(cfg.KeepAliveSec) * time.Second).
		SetPingTimeout(time.Second).
		SetAutoReconnect(true)

	if cfg.Username != "" {
		opts.SetUsername(cfg.Username)
		opts.SetPassword(cfg.Password)
	}

	opts.SetConnectionLostHandler(func(_ paho.Client, err error) {
		logger.Warn("MQTT connection lost: %v", err)
	})
	opts.SetOnConnectHandler(func(_ paho.Client) {
		logger.Info("MQTT connected to %s:%d", cfg.Host, cfg.Port)
		c.resubscribe()
	})

	c.client = paho.NewClient(opts)

	broker := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
	connect := func() error {
		token := c.client.Connect()
		if !token.WaitTimeout(operationTimeout) {
			return fmt.Errorf("connecting to MQTT broker %s: timeout", broker)
		}
		if err := token.Error(); err != nil {
			return fmt.Errorf("connecting to MQTT broker %s: %w", broker, err)
		}
		return nil
	}

	retry := time.Duration(cfg.ConnectRetrySec) * time.Second
	if err := retryConnect(ctx, connect, connectBackOff(retry)); err != nil {
		return nil, err
	}

	return c, nil
}

// routePahoLogs sends paho's internal warnings and errors to l. Debug
// chatter is only routed when l has debug enabled.
func routePahoLogs(l *logger.Logger) {
	paho.ERROR = l.Printer(logger.ERROR)
	paho.CRITICAL = l.Printer(logger.ERROR)
	paho.WARN = l.Printer(logger.WARN)
	if l.Enabled(logger.DEBUG) {
		paho.DEBUG = l.Printer(logger.DEBUG)
	}
}

// connectBackOff returns the retry schedule for the initial connect.
// A zero window means a single attempt.
func connectBackOff(window time.Duration) backoff.BackOff {
	if window <= 0 {
		return &backoff.StopBackOff{}
	}
	expo := backoff.NewExponentialBackOff()
	expo.InitialInterval = time.Second
	expo.MaxInterval = 30 * time.Second
	expo.MaxElapsedTime = window
	return expo
}

func retryConnect(ctx context.Context, connect func() error, b backoff.BackOff) error {
	notify := func(err error, next time.Duration) {
		logger.Warn("%v, retrying in %v", err, next.Round(time.Millisecond))
	}
	return backoff.RetryNotify(connect, backoff.WithContext(b, ctx), notify)
}

// newClient wraps an existing paho client
func newClient(client paho.Client) *Client {
	return &Client{
		client: client,
		subs:   make(map[string]Handler),
	}
}

// Subscribe registers handler for topic with QoS 0
func (c *Client) Subscribe(topic string, handler Handler) error {
	if !c.client.IsConnected() {
		return fmt.Errorf("subscribing to %s: %w", topic, ErrNotConnected)
	}

	c.mu.Lock()
	c.subs[topic] = handler
	c.mu.Unlock()

	if err := c.subscribe(topic, handler); err != nil {
		return err
	}
	logger.Debug("Subscribed to %s", topic)
	return nil
}

func (c *Client) subscribe(topic string, handler Handler) error {
	token := c.client.Subscribe(topic, 0, func(_ paho.Client, msg paho.Message) {
		handler(msg.Topic(), string(msg.Payload()))
	})
	if !token.WaitTimeout(operationTimeout) {
		return fmt.Errorf("subscribing to %s: timeout", topic)
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("subscribing to %s: %w", topic, err)
	}
	return nil
}

// resubscribe restores remembered subscriptions after a reconnect
func (c *Client) resubscribe() {
	topics := c.Topics()

	c.mu.Lock()
	handlers := make([]Handler, len(topics))
	for i, topic := range topics {
		handlers[i] = c.subs[topic]
	}
	c.mu.Unlock()

	for i, topic := range topics {
		if err := c.subscribe(topic, handlers[i]); err != nil {
			logger.Error("Resubscribe failed: %v", err)
		}
	}
}

// Publish sends payload to topic with QoS 0
func (c *Client) Publish(topic, payload string) error {
	if !c.client.IsConnected() {
		return fmt.Errorf("publishing to %s: %w", topic, ErrNotConnected)
	}

	token := c.client.Publish(topic, 0, false, payload)
	if !token.WaitTimeout(operationTimeout) {
		return fmt.Errorf("publishing to %s: timeout", topic)
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("publishing to %s: %w", topic, err)
	}
	return nil
}

// Topics returns the remembered subscriptions, sorted
func (c *Client) Topics() []string {
	c.mu.Lock()
	defer c.mu.Unlock()

	topics := make([]string, 0, len(c.subs))
	for topic := range c.subs {
		topics = append(topics, topic)
	}
	sort.Strings(topics)
	return topics
}

// Disconnect closes the broker connection
func (c *Client) Disconnect() {
	if c.client.IsConnected() {
		c.client.Disconnect(disconnectQuiesceMS)
		logger.Info("MQTT disconnected")
	}
}
