package commands

import (
	"github.com/pixil98/go-resin/internal/lang"
	"github.com/pixil98/go-resin/internal/service"
)

var resultKeys = map[service.Result]string{
	service.ProviderFailure:     lang.ErrorProviderFailure,
	service.InvalidResourceType: lang.ErrorInvalidResinType,
	service.InsufficientAmount:  lang.ErrorInsufficientAmount,
	service.InvalidNumber:       lang.ErrorInvalidNumber,
	service.NotOnline:           lang.ErrorPlayerNotOnline,
	service.NoAccount:           lang.ErrorPlayerNotFound,
}

// resultMessage renders the failure message for r.
func (h *Handler) resultMessage(r service.Result, p lang.Params) string {
	key, ok := resultKeys[r]
	if !ok {
		return r.String()
	}
	return h.catalog.Translate(key, p)
}
