package commands

import (
	"context"

	"github.com/pixil98/go-resin/internal/lang"
	"github.com/pixil98/go-resin/internal/resin"
	"github.com/pixil98/go-resin/internal/service"
)

// check shows the sender's own balances, or another player's when a name is
// given.
func (h *Handler) check(_ context.Context, sender Sender, args []string) error {
	if err := h.requirePermission(sender, PermCheck); err != nil {
		return err
	}

	if len(args) < 2 {
		if !sender.IsPlayer() {
			return h.userError(lang.UsageCheck, nil)
		}
		h.sendBalances(sender, sender.Name(), lang.SuccessResinCheck)
		return nil
	}

	if err := h.requirePermission(sender, PermCheckOther); err != nil {
		return err
	}
	if isBlank(args[1]) {
		return h.userError(lang.UsageCheck, nil)
	}

	h.sendBalances(sender, h.resolveTarget(args[1]), lang.SuccessResinCheckOther)
	return nil
}

func (h *Handler) sendBalances(sender Sender, target string, key string) {
	status := h.service.CheckStatus(target)
	if status == service.NotOnline && !h.service.RequireOnline() {
		status = service.Success
	}

	if status != service.Success {
		sender.SendMessage(h.resultMessage(status, lang.Params{"player": target}))
		return
	}

	balances := h.service.GetAllBalances(target)
	caps := h.service.Caps()
	p := lang.Params{"player": target}
	for _, t := range resin.All() {
		p[string(t)] = balances[t]
		p[string(t)+"_max"] = caps[t]
	}
	sender.SendMessage(h.catalog.Translate(key, p))
}
