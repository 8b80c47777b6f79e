package messaging

import (
	"context"
	"strings"
)

const playerSubjectPrefix = "player."

// Publisher sends raw bytes to a subject.
type Publisher interface {
	Publish(subject string, data []byte) error
}

// NatsPublisher publishes messages to individual player NATS subjects.
type NatsPublisher struct {
	pub Publisher
}

// NewNatsPublisher wraps a publisher for per-player message delivery.
func NewNatsPublisher(pub Publisher) *NatsPublisher {
	return &NatsPublisher{pub: pub}
}

func (p *NatsPublisher) NotifyPlayer(_ context.Context, player string, msg string) error {
	return p.pub.Publish(PlayerSubject(player), []byte(msg))
}

// PlayerSubject returns the subject a player's messages are published on.
// Characters that are not valid in a subject token become underscores.
func PlayerSubject(player string) string {
	token := strings.Map(func(r rune) rune {
		switch {
		case r == '.', r == '*', r == '>', r <= ' ', r == 0x7f:
			return '_'
		}
		return r
	}, strings.ToLower(player))

	if token == "" {
		token = "_"
	}
	return playerSubjectPrefix + token
}
