package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/pixil98/go-resin/internal/commands"
	"github.com/pixil98/go-resin/internal/resin"
	"github.com/pixil98/go-resin/internal/service"
)

// Gateway connects the host game server to the ledger over NATS.
type Gateway struct {
	server  *NatsServer
	service *service.Service
	handler *commands.Handler
}

func NewGateway(server *NatsServer, svc *service.Service, handler *commands.Handler) *Gateway {
	return &Gateway{
		server:  server,
		service: svc,
		handler: handler,
	}
}

func (g *Gateway) Start(ctx context.Context) error {
	select {
	case <-g.server.Ready():
	case <-ctx.Done():
		return nil
	}

	var unsubs []func()
	defer func() {
		for _, u := range unsubs {
			u()
		}
	}()

	subs := map[string]func([]byte){
		SubjectPlayerJoin: g.onJoin(ctx),
		SubjectPlayerQuit: g.onQuit(ctx),
	}
	for subject, h := range subs {
		u, err := g.server.Subscribe(subject, h)
		if err != nil {
			return fmt.Errorf("subscribing to %s: %w", subject, err)
		}
		unsubs = append(unsubs, u)
	}

	handlers := map[string]func([]byte) []byte{
		SubjectCommand:    g.onCommand(ctx),
		SubjectBalanceGet: g.onBalance,
	}
	for subject, h := range handlers {
		u, err := g.server.Handle(subject, h)
		if err != nil {
			return fmt.Errorf("handling %s: %w", subject, err)
		}
		unsubs = append(unsubs, u)
	}

	slog.InfoContext(ctx, "host gateway ready")
	<-ctx.Done()
	return nil
}

func (g *Gateway) onJoin(ctx context.Context) func([]byte) {
	return func(data []byte) {
		var ev PlayerEvent
		if err := json.Unmarshal(data, &ev); err != nil || ev.Player == "" {
			slog.WarnContext(ctx, "invalid join event", "data", string(data), "error", err)
			return
		}
		g.service.Join(ctx, ev.Player)
	}
}

func (g *Gateway) onQuit(ctx context.Context) func([]byte) {
	return func(data []byte) {
		var ev PlayerEvent
		if err := json.Unmarshal(data, &ev); err != nil || ev.Player == "" {
			slog.WarnContext(ctx, "invalid quit event", "data", string(data), "error", err)
			return
		}
		g.service.Quit(ctx, ev.Player)
	}
}

func (g *Gateway) onCommand(ctx context.Context) func([]byte) []byte {
	return func(data []byte) []byte {
		var req CommandRequest
		if err := json.Unmarshal(data, &req); err != nil {
			return marshalReply(CommandReply{Error: fmt.Sprintf("unmarshalling command: %v", err)})
		}
		if req.Sender == "" {
			return marshalReply(CommandReply{Error: "sender is required"})
		}

		var sender *commands.BufferedSender
		if req.Player {
			sender = commands.NewPlayerSender(req.Sender, req.Permissions)
		} else {
			sender = commands.NewConsoleSender(req.Sender)
		}

		reply := CommandReply{}
		err := g.handler.Exec(ctx, sender, req.Args...)
		reply.Messages = sender.Messages()
		if reply.Messages == nil {
			reply.Messages = []string{}
		}

		ue, isUser := commands.AsUserError(err)
		switch {
		case isUser:
			reply.Error = ue.Message
			reply.ErrorKey = ue.Key
		case err != nil:
			slog.ErrorContext(ctx, "running command", "sender", req.Sender, "args", req.Args, "error", err)
			reply.Error = err.Error()
		}

		return marshalReply(reply)
	}
}

func (g *Gateway) onBalance(data []byte) []byte {
	var req BalanceRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return marshalReply(BalanceReply{Error: fmt.Sprintf("unmarshalling balance request: %v", err)})
	}

	return marshalReply(BalanceReply{
		Exists:   g.service.AccountExists(req.Player),
		Balances: byName(g.service.GetAllBalances(req.Player)),
		Caps:     byName(g.service.Caps()),
	})
}

func byName(b resin.Balances) map[string]int {
	out := make(map[string]int, len(b))
	for t, v := range b {
		out[t.String()] = v
	}
	return out
}

func marshalReply(v any) []byte {
	data, err := json.Marshal(v)
	if err != nil {
		slog.Error("marshalling reply", "error", err)
		return []byte(`{"error":"internal error"}`)
	}
	return data
}
