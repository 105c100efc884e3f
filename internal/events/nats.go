package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"

	"kundenstopper/internal/config"
	"kundenstopper/internal/logger"
)

// conn is the subset of *nats.Conn the publisher needs.
type conn interface {
	Publish(subject string, data []byte) error
	IsConnected() bool
	Drain() error
}

// NATSPublisher publishes events as JSON on "<prefix>.<event>" subjects.
type NATSPublisher struct {
	nc     conn
	prefix string
	now    func() time.Time
}

// NewNATSPublisher connects to the configured server, retrying forever on disconnects.
func NewNATSPublisher(cfg config.NATSConfig, log *logger.Logger) (*NATSPublisher, error) {
	log = log.With(logger.Fields{"component": "nats"})

	nc, err := nats.Connect(cfg.URL,
		nats.Name("kundenstopper"),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			log.Warn("nats_disconnected", logger.Fields{"error": fmt.Sprint(err)})
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			log.Info("nats_reconnected", logger.Fields{"url": nc.ConnectedUrl()})
		}),
		nats.ClosedHandler(func(*nats.Conn) {
			log.Info("nats_closed", nil)
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("connect nats: %w", err)
	}

	log.Info("nats_connected", logger.Fields{"url": nc.ConnectedUrl()})
	return newNATSPublisher(nc, cfg.SubjectPrefix), nil
}

func newNATSPublisher(nc conn, prefix string) *NATSPublisher {
	return &NATSPublisher{nc: nc, prefix: prefix, now: time.Now}
}

// Subject returns the full subject for an event name.
func (p *NATSPublisher) Subject(event string) string {
	if p.prefix == "" {
		return event
	}
	return p.prefix + "." + event
}

func (p *NATSPublisher) Publish(ctx context.Context, event string, data any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if !p.nc.IsConnected() {
		return nats.ErrConnectionClosed
	}
	b, err := json.Marshal(Envelope{Event: event, OccurredAt: p.now().UTC(), Data: data})
	if err != nil {
		return fmt.Errorf("marshal event %s: %w", event, err)
	}
	return p.nc.Publish(p.Subject(event), b)
}

// Close flushes pending messages and closes the connection.
func (p *NATSPublisher) Close() error {
	return p.nc.Drain()
}
