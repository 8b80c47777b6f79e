package messaging

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/pixil98/go-resin/internal/service"
)

// BalanceEvent is published after every successful mutation.
type BalanceEvent struct {
	Id      string    `json:"id"`
	Time    time.Time `json:"time"`
	Player  string    `json:"player"`
	Type    string    `json:"type"`
	Op      string    `json:"op"`
	Amount  int       `json:"amount"`
	Balance int       `json:"balance"`
}

// EventPublisher reports balance changes on SubjectBalanceChanged.
type EventPublisher struct {
	pub Publisher
	now func() time.Time
}

func NewEventPublisher(pub Publisher) *EventPublisher {
	return &EventPublisher{pub: pub, now: time.Now}
}

func (e *EventPublisher) BalanceChanged(ctx context.Context, c service.Change) {
	ev := BalanceEvent{
		Id:      uuid.NewString(),
		Time:    e.now().UTC(),
		Player:  c.Player,
		Type:    c.Type.String(),
		Op:      string(c.Op),
		Amount:  c.Amount,
		Balance: c.Balance,
	}

	data, err := json.Marshal(ev)
	if err != nil {
		slog.ErrorContext(ctx, "marshalling balance event", "error", err)
		return
	}

	if err := e.pub.Publish(SubjectBalanceChanged, data); err != nil {
		slog.WarnContext(ctx, "publishing balance event", "id", ev.Id, "player", c.Player, "error", err)
	}
}
