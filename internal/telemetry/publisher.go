package telemetry

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/rockit-astro/lmountd/internal/daemon"
)

// statusMessage is the wire shape of a published status report.
type statusMessage struct {
	MessageID string        `json:"message_id"`
	Report    daemon.Report `json:"report"`
}

// Publisher periodically publishes the daemon status report.
type Publisher struct {
	client   *Client
	daemon   *daemon.Daemon
	logger   *zap.Logger
	topic    string
	interval time.Duration
}

// StatusTopic returns the bus topic for a daemon's status feed.
func StatusTopic(logName string) string {
	return fmt.Sprintf("observatory/lmount/%s/status", logName)
}

// NewPublisher creates a status publisher for the daemon.
func NewPublisher(client *Client, d *daemon.Daemon, logger *zap.Logger, interval time.Duration) *Publisher {
	return &Publisher{
		client:   client,
		daemon:   d,
		logger:   logger.With(zap.String("component", "telemetry")),
		topic:    StatusTopic(d.Config().LogName),
		interval: interval,
	}
}

// Run publishes status reports until the context is cancelled.
func (p *Publisher) Run(ctx context.Context) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	p.publish()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.publish()
		}
	}
}

func (p *Publisher) publish() {
	if !p.client.IsConnected() {
		return
	}

	msg := statusMessage{
		MessageID: uuid.NewString(),
		Report:    p.daemon.Report(),
	}

	if err := p.client.PublishJSON(p.topic, true, msg); err != nil {
		p.logger.Error("Failed to publish status report", zap.Error(err))
	}
}
