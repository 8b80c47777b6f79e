package messaging

// Subjects shared with the host game server.
const (
	SubjectPlayerJoin     = "resin.player.join"
	SubjectPlayerQuit     = "resin.player.quit"
	SubjectCommand        = "resin.command"
	SubjectBalanceGet     = "resin.balance.get"
	SubjectBalanceChanged = "resin.balance.changed"
)

type PlayerEvent struct {
	Player string `json:"player"`
}

type CommandRequest struct {
	Sender      string   `json:"sender"`
	Player      bool     `json:"player"`
	Permissions []string `json:"permissions,omitempty"`
	Args        []string `json:"args"`
}

type CommandReply struct {
	Messages []string `json:"messages"`
	Error    string   `json:"error,omitempty"`
	// ErrorKey is the message catalog key behind Error, for hosts that
	// translate on their side.
	ErrorKey string `json:"error_key,omitempty"`
}

type BalanceRequest struct {
	Player string `json:"player"`
}

type BalanceReply struct {
	Exists   bool           `json:"exists"`
	Balances map[string]int `json:"balances"`
	Caps     map[string]int `json:"caps"`
	Error    string         `json:"error,omitempty"`
}
