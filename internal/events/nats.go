// Package events publishes forecast events to NATS.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/sumesh-12/energy-demand-prediction/internal/model"
)

// SubjectForecastCompleted carries a model.ForecastEvent per served forecast.
const SubjectForecastCompleted = "forecast.completed"

// Conn is the part of *nats.Conn the publisher uses.
type Conn interface {
	Publish(subject string, data []byte) error
}

// Config holds NATS connection settings.
type Config struct {
	URL           string
	Name          string
	ReconnectWait time.Duration
	// MaxReconnects of 0 means the client default; negative retries forever.
	MaxReconnects  int
	ConnectTimeout time.Duration
}

func (c Config) withDefaults() Config {
	if c.Name == "" {
		c.Name = "forecaster"
	}
	if c.ReconnectWait == 0 {
		c.ReconnectWait = 2 * time.Second
	}
	if c.MaxReconnects == 0 {
		c.MaxReconnects = nats.DefaultMaxReconnect
	}
	if c.ConnectTimeout == 0 {
		c.ConnectTimeout = 5 * time.Second
	}
	return c
}

// Publisher implements forecast.Publisher.
type Publisher struct {
	conn    Conn
	subject string
}

// Connect dials NATS and returns a publisher plus the connection to close.
func Connect(cfg Config) (*Publisher, *nats.Conn, error) {
	cfg = cfg.withDefaults()
	nc, err := nats.Connect(cfg.URL,
		nats.Name(cfg.Name),
		nats.ReconnectWait(cfg.ReconnectWait),
		nats.MaxReconnects(cfg.MaxReconnects),
		nats.Timeout(cfg.ConnectTimeout),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}
	return NewPublisher(nc, SubjectForecastCompleted), nc, nil
}

// NewPublisher publishes to subject over conn.
func NewPublisher(conn Conn, subject string) *Publisher {
	return &Publisher{conn: conn, subject: subject}
}

// PublishForecast publishes ev as JSON.
func (p *Publisher) PublishForecast(ctx context.Context, ev model.ForecastEvent) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}
	if err := p.conn.Publish(p.subject, data); err != nil {
		return fmt.Errorf("publish %s: %w", p.subject, err)
	}
	return nil
}
