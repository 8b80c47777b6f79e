package ledger

import "errors"

var (
	ErrNoAccount           = errors.New("account does not exist")
	ErrInvalidAmount       = errors.New("amount must be positive")
	ErrUnknownType         = errors.New("unknown resin type")
	ErrNoCap               = errors.New("no cap configured for resin type")
	ErrCapExceeded         = errors.New("amount would exceed cap")
	ErrInsufficientBalance = errors.New("insufficient balance")
)
