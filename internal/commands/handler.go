package commands

import (
	"context"
	"strings"

	"github.com/pixil98/go-resin/internal/lang"
	"github.com/pixil98/go-resin/internal/service"
)

// Labels are the names the resin command answers to.
var Labels = []string{"resin", "resinapi"}

// IsLabel reports whether word names the resin command, with or without a
// leading slash.
func IsLabel(word string) bool {
	word = strings.ToLower(strings.TrimPrefix(word, "/"))
	for _, l := range Labels {
		if word == l {
			return true
		}
	}
	return false
}

// PlayerNotifier delivers a message to a player's session on the host.
type PlayerNotifier interface {
	NotifyPlayer(ctx context.Context, player string, msg string) error
}

// CommandFunc runs one subcommand. args[0] is the subcommand name.
type CommandFunc func(ctx context.Context, sender Sender, args []string) error

type Handler struct {
	service  *service.Service
	catalog  *lang.Catalog
	notifier PlayerNotifier
	commands map[string]CommandFunc
}

func NewHandler(svc *service.Service, catalog *lang.Catalog, notifier PlayerNotifier) *Handler {
	h := &Handler{
		service:  svc,
		catalog:  catalog,
		notifier: notifier,
	}

	h.commands = map[string]CommandFunc{
		"help":  h.help,
		"list":  h.list,
		"check": h.check,
		"give":  h.change(service.OpGive),
		"set":   h.change(service.OpSet),
		"take":  h.change(service.OpTake),
	}

	return h
}

func (h *Handler) Catalog() *lang.Catalog {
	return h.catalog
}

// Exec runs the subcommand named by args[0]. Results are sent to the sender;
// usage and permission problems come back as a *UserError.
func (h *Handler) Exec(ctx context.Context, sender Sender, args ...string) error {
	if len(args) == 0 {
		return h.userError(lang.UsageMain, nil)
	}

	cmd, ok := h.commands[strings.ToLower(args[0])]
	if !ok {
		return h.userError(lang.UsageMain, nil)
	}

	return cmd(ctx, sender, args)
}

// resolveTarget maps a typed name onto an online player where possible.
func (h *Handler) resolveTarget(input string) string {
	return h.service.Presence().Resolve(input)
}
