// Package presence tracks which players currently have a session on the host.
package presence

import (
	"slices"
	"strings"
	"sync"
)

type Registry struct {
	online map[string]struct{}

	mu sync.RWMutex
}

func NewRegistry() *Registry {
	return &Registry{online: map[string]struct{}{}}
}

// Join marks name online. It returns false if the player was already online.
func (r *Registry) Join(name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.online[name]; ok {
		return false
	}
	r.online[name] = struct{}{}
	return true
}

// Leave marks name offline. It returns false if the player was not online.
func (r *Registry) Leave(name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.online[name]; !ok {
		return false
	}
	delete(r.online, name)
	return true
}

func (r *Registry) IsOnline(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.online[name]
	return ok
}

// Online returns the sorted names of every online player.
func (r *Registry) Online() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.online))
	for n := range r.online {
		names = append(names, n)
	}
	slices.Sort(names)
	return names
}

// Resolve maps user input to an online player's name: an exact match first,
// then the shortest name that starts with the input ignoring case. When no
// online player matches, the input is returned unchanged so offline accounts
// can still be addressed.
func (r *Registry) Resolve(input string) string {
	if strings.TrimSpace(input) == "" {
		return input
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	if _, ok := r.online[input]; ok {
		return input
	}

	prefix := strings.ToLower(input)
	best := ""
	for n := range r.online {
		if !strings.HasPrefix(strings.ToLower(n), prefix) {
			continue
		}
		if best == "" || len(n) < len(best) || (len(n) == len(best) && n < best) {
			best = n
		}
	}

	if best == "" {
		return input
	}
	return best
}
