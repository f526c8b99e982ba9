// Package telemetry publishes the daemon's status reports to the
// observatory MQTT bus.
package telemetry

import (
	"encoding/json"
	"fmt"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"go.uber.org/zap"
)

// ClientConfig holds MQTT connection settings for the telemetry feed.
type ClientConfig struct {
	// BrokerURL is the MQTT broker URL (e.g. "tcp://mqtt:1883")
	BrokerURL string
	// ClientID identifies this daemon on the bus
	ClientID string
	// ConnectTimeout bounds the initial connection attempt
	ConnectTimeout time.Duration
	// KeepAlive is the MQTT keepalive interval
	KeepAlive time.Duration
}

// Client is a publish-only MQTT client with automatic reconnection.
type Client struct {
	client mqtt.Client
	config ClientConfig
	logger *zap.Logger
}

// NewClient creates a telemetry client for the given broker.
func NewClient(config ClientConfig, logger *zap.Logger) *Client {
	if config.ConnectTimeout == 0 {
		config.ConnectTimeout = 5 * time.Second
	}
	if config.KeepAlive == 0 {
		config.KeepAlive = 60 * time.Second
	}

	opts := mqtt.NewClientOptions()
	opts.AddBroker(config.BrokerURL)
	opts.SetClientID(config.ClientID)
	opts.SetConnectTimeout(config.ConnectTimeout)
	opts.SetKeepAlive(config.KeepAlive)
	opts.SetAutoReconnect(true)
	opts.SetMaxReconnectInterval(time.Minute)

	opts.SetConnectionLostHandler(func(_ mqtt.Client, err error) {
		logger.Error("Telemetry connection lost", zap.Error(err))
	})
	opts.SetOnConnectHandler(func(_ mqtt.Client) {
		logger.Info("Telemetry connected", zap.String("broker", config.BrokerURL))
	})

	return &Client{
		client: mqtt.NewClient(opts),
		config: config,
		logger: logger,
	}
}

// Connect establishes the broker connection.
func (c *Client) Connect() error {
	token := c.client.Connect()
	if !token.WaitTimeout(c.config.ConnectTimeout) {
		return fmt.Errorf("connection timeout after %v", c.config.ConnectTimeout)
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("failed to connect to %s: %w", c.config.BrokerURL, err)
	}
	return nil
}

// Disconnect closes the broker connection.
func (c *Client) Disconnect() {
	c.client.Disconnect(250)
}

// IsConnected reports whether the client currently holds a connection.
func (c *Client) IsConnected() bool {
	return c.client.IsConnected()
}

// PublishJSON serialises payload and publishes it to topic. Status
// messages are retained so late subscribers see the last known state.
func (c *Client) PublishJSON(topic string, retained bool, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	token := c.client.Publish(topic, 1, retained, data)
	token.Wait()
	if err := token.Error(); err != nil {
		return fmt.Errorf("publish to %s failed: %w", topic, err)
	}

	c.logger.Debug("Telemetry published",
		zap.String("topic", topic),
		zap.Int("size", len(data)))
	return nil
}
