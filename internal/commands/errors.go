package commands

import (
	"errors"
	"strings"

	"github.com/pixil98/go-resin/internal/lang"
)

// UserError is a problem with the command as typed, such as bad usage or a
// missing permission. Message is already translated for the sender and Key
// names the catalog entry it came from.
type UserError struct {
	Key     string
	Message string
}

func (e *UserError) Error() string {
	return e.Message
}

func NewUserError(key string, msg string) *UserError {
	return &UserError{Key: key, Message: msg}
}

// AsUserError reports whether err carries a *UserError.
func AsUserError(err error) (*UserError, bool) {
	var ue *UserError
	if errors.As(err, &ue) {
		return ue, true
	}
	return nil, false
}

func (h *Handler) userError(key string, p lang.Params) *UserError {
	return NewUserError(key, h.catalog.Translate(key, p))
}

func (h *Handler) requirePermission(sender Sender, perm string) error {
	if !sender.HasPermission(perm) {
		return h.userError(lang.ErrorNoPermission, nil)
	}
	return nil
}

// isBlank rejects empty player names before they reach prefix matching.
func isBlank(name string) bool {
	return strings.TrimSpace(name) == ""
}
