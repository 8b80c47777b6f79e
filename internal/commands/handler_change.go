package commands

import (
	"context"
	"log/slog"
	"strconv"

	"github.com/pixil98/go-resin/internal/lang"
	"github.com/pixil98/go-resin/internal/resin"
	"github.com/pixil98/go-resin/internal/service"
)

var changePermissions = map[service.Operation]string{
	service.OpGive: PermGive,
	service.OpSet:  PermSet,
	service.OpTake: PermTake,
}

var changeMessages = map[service.Operation]struct{ sender, target string }{
	service.OpGive: {sender: lang.SuccessConsoleResinGive, target: lang.SuccessPlayerResinGive},
	service.OpSet:  {sender: lang.SuccessConsoleResinSet, target: lang.SuccessPlayerResinSet},
	service.OpTake: {sender: lang.SuccessConsoleResinTake, target: lang.SuccessPlayerResinTake},
}

// change builds the give, set and take subcommands:
// <op> <player> <resin type> <amount>.
func (h *Handler) change(op service.Operation) CommandFunc {
	return func(ctx context.Context, sender Sender, args []string) error {
		if err := h.requirePermission(sender, changePermissions[op]); err != nil {
			return err
		}

		if len(args) != 4 || isBlank(args[1]) {
			return h.userError(lang.UsageChange, lang.Params{"command": string(op)})
		}

		target := h.resolveTarget(args[1])
		typ := resin.Lookup(args[2])

		// Non-numeric input is treated as an invalid amount.
		amount, err := strconv.Atoi(args[3])
		if err != nil {
			amount = 0
		}

		var result service.Result
		switch op {
		case service.OpGive:
			result = h.service.Give(ctx, target, amount, typ)
		case service.OpSet:
			result = h.service.SetAmount(ctx, target, amount, typ)
		case service.OpTake:
			result = h.service.Take(ctx, target, amount, typ)
		}

		p := lang.Params{
			"player": target,
			"sender": sender.Name(),
			"type":   typeName(typ, args[2]),
			"amount": amount,
		}

		if result != service.Success {
			sender.SendMessage(h.resultMessage(result, p))
			return nil
		}

		msgs := changeMessages[op]
		sender.SendMessage(h.catalog.Translate(msgs.sender, p))
		h.notifyTarget(ctx, sender, target, h.catalog.Translate(msgs.target, p))
		return nil
	}
}

// notifyTarget tells an online target about the change, unless the target
// issued the command.
func (h *Handler) notifyTarget(ctx context.Context, sender Sender, target string, msg string) {
	if h.notifier == nil || !h.service.Presence().IsOnline(target) {
		return
	}
	if sender.IsPlayer() && sender.Name() == target {
		return
	}

	if err := h.notifier.NotifyPlayer(ctx, target, msg); err != nil {
		slog.WarnContext(ctx, "notifying player", "player", target, "error", err)
	}
}

func typeName(t resin.Type, raw string) string {
	if t.Valid() {
		return t.DisplayName()
	}
	return raw
}
