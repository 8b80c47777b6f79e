package commands

import (
	"slices"
	"sync"
)

// Sender is whoever issued a command: a player relayed by the host or an
// operator at the console.
type Sender interface {
	Name() string
	IsPlayer() bool
	HasPermission(perm string) bool
	SendMessage(msg string)
}

// BufferedSender collects the messages sent to it.
type BufferedSender struct {
	name   string
	player bool
	perms  map[string]bool
	all    bool

	mu       sync.Mutex
	messages []string
}

// NewConsoleSender returns a non-player sender holding every permission.
func NewConsoleSender(name string) *BufferedSender {
	return &BufferedSender{name: name, all: true}
}

func NewPlayerSender(name string, perms []string) *BufferedSender {
	s := &BufferedSender{name: name, player: true, perms: make(map[string]bool, len(perms))}
	for _, p := range perms {
		s.perms[p] = true
	}
	return s
}

func (s *BufferedSender) Name() string {
	return s.name
}

func (s *BufferedSender) IsPlayer() bool {
	return s.player
}

func (s *BufferedSender) HasPermission(perm string) bool {
	return s.all || s.perms[perm]
}

func (s *BufferedSender) SendMessage(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = append(s.messages, msg)
}

// Messages returns everything sent so far and clears the buffer.
func (s *BufferedSender) Messages() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	msgs := slices.Clone(s.messages)
	s.messages = nil
	return msgs
}
