package service

import "fmt"

// Result is the status of a service call. The numeric values are shared with
// host plugins and must not change.
type Result int

const (
	ProviderFailure     Result = -5
	InvalidResourceType Result = -4
	InsufficientAmount  Result = -3
	InvalidNumber       Result = -2
	NotOnline           Result = -1
	NoAccount           Result = 0
	Success             Result = 1
)

func (r Result) String() string {
	switch r {
	case ProviderFailure:
		return "provider failure"
	case InvalidResourceType:
		return "invalid resource type"
	case InsufficientAmount:
		return "insufficient amount"
	case InvalidNumber:
		return "invalid number"
	case NotOnline:
		return "not online"
	case NoAccount:
		return "no account"
	case Success:
		return "success"
	default:
		return fmt.Sprintf("result(%d)", int(r))
	}
}

func (r Result) OK() bool {
	return r == Success
}
