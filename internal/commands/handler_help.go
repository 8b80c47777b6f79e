package commands

import (
	"context"

	"github.com/pixil98/go-resin/internal/lang"
)

var helpEntries = []struct {
	key  string
	perm string
}{
	{key: lang.HelpHelp, perm: PermHelp},
	{key: lang.HelpList, perm: PermList},
	{key: lang.HelpCheck, perm: PermCheck},
	{key: lang.HelpGive, perm: PermGive},
	{key: lang.HelpSet, perm: PermSet},
	{key: lang.HelpTake, perm: PermTake},
}

// help lists the subcommands the sender is allowed to run.
func (h *Handler) help(_ context.Context, sender Sender, _ []string) error {
	if err := h.requirePermission(sender, PermHelp); err != nil {
		return err
	}

	sender.SendMessage(h.catalog.Translate(lang.HelpHeader, nil))
	for _, e := range helpEntries {
		if sender.HasPermission(e.perm) {
			sender.SendMessage(h.catalog.Translate(e.key, nil))
		}
	}
	return nil
}
