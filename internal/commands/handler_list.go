package commands

import (
	"context"

	"github.com/pixil98/go-resin/internal/lang"
	"github.com/pixil98/go-resin/internal/resin"
)

func (h *Handler) list(_ context.Context, sender Sender, _ []string) error {
	if err := h.requirePermission(sender, PermList); err != nil {
		return err
	}

	sender.SendMessage(h.catalog.Translate(lang.ListHeader, nil))
	for _, t := range resin.All() {
		sender.SendMessage(h.catalog.Translate(lang.ListEntry, lang.Params{
			"name": t.DisplayName(),
			"id":   t.String(),
		}))
	}
	return nil
}
