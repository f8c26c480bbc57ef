package events

import (
	"encoding/json"
	"fmt"
	"time"

	"clueless/internal/shared"

	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog/log"
)

// Conn is the part of *nats.Conn the publisher needs.
type Conn interface {
	Publish(subject string, data []byte) error
}

// Publisher mirrors the public events of every session onto NATS subjects
// "<prefix>.session.<id>.<type>". Private events never leave the process.
type Publisher struct {
	conn   Conn
	prefix string
}

func NewPublisher(conn Conn, prefix string) *Publisher {
	if prefix == "" {
		prefix = "clueless"
	}
	return &Publisher{conn: conn, prefix: prefix}
}

// Connect dials the server with reconnects enabled and logs connection changes.
func Connect(url string) (*nats.Conn, error) {
	nc, err := nats.Connect(url,
		nats.Name("clueless"),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			log.Warn().Err(err).Msg("nats disconnected")
		}),
		nats.ReconnectHandler(func(c *nats.Conn) {
			log.Info().Str("url", c.ConnectedUrl()).Msg("nats reconnected")
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("connect nats %s: %w", url, err)
	}
	return nc, nil
}

func (p *Publisher) Subject(sessionID, eventType string) string {
	return fmt.Sprintf("%s.session.%s.%s", p.prefix, sessionID, eventType)
}

func (p *Publisher) Broadcast(sessionID string, ev shared.Event) {
	if ev.Private() {
		return
	}
	data, err := json.Marshal(ev)
	if err != nil {
		log.Error().Err(err).Str("session", sessionID).Str("type", ev.Type).Msg("encode event")
		return
	}
	if err := p.conn.Publish(p.Subject(sessionID, ev.Type), data); err != nil {
		log.Warn().Err(err).Str("session", sessionID).Str("type", ev.Type).Msg("nats publish failed")
	}
}
