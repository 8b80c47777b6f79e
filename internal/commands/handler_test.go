package commands

import (
	"context"
	"errors"
	"testing"

	"github.com/pixil98/go-resin/internal/lang"
	"github.com/pixil98/go-resin/internal/ledger"
	"github.com/pixil98/go-resin/internal/presence"
	"github.com/pixil98/go-resin/internal/resin"
	"github.com/pixil98/go-resin/internal/service"
	"github.com/pixil98/go-testutil"
)

type notification struct {
	player string
	msg    string
}

type fakeNotifier struct {
	sent []notification
	err  error
}

func (f *fakeNotifier) NotifyPlayer(_ context.Context, player string, msg string) error {
	f.sent = append(f.sent, notification{player: player, msg: msg})
	return f.err
}

func newTestHandler(t *testing.T, opts ...service.ServiceOpt) (*Handler, *service.Service, *fakeNotifier) {
	t.Helper()

	catalog, err := lang.New("en-US")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	l := ledger.New(ledger.Limits{
		Defaults: resin.Balances{resin.Original: 5, resin.Condensed: 0, resin.Fragile: 0},
		Caps:     resin.Balances{resin.Original: 200, resin.Condensed: 5, resin.Fragile: 10},
	})
	svc := service.New(l, presence.NewRegistry(), opts...)
	n := &fakeNotifier{}

	return NewHandler(svc, catalog, n), svc, n
}

func assertMessages(t *testing.T, got []string, exp []string) {
	t.Helper()
	if len(got) != len(exp) {
		t.Fatalf("got %d messages %q, expected %d %q", len(got), got, len(exp), exp)
	}
	for i := range exp {
		testutil.AssertEqual(t, "message", got[i], exp[i])
	}
}

func assertUserError(t *testing.T, err error, exp string) {
	t.Helper()
	var ue *UserError
	if !errors.As(err, &ue) {
		t.Fatalf("expected *UserError, got %v", err)
	}
	testutil.AssertEqual(t, "user error", ue.Message, exp)
}

func TestIsLabel(t *testing.T) {
	tests := map[string]struct {
		word string
		exp  bool
	}{
		"plain":        {word: "resin", exp: true},
		"slash":        {word: "/resin", exp: true},
		"alias":        {word: "resinapi", exp: true},
		"upper":        {word: "/RESIN", exp: true},
		"other":        {word: "save", exp: false},
		"empty":        {word: "", exp: false},
		"double slash": {word: "//resin", exp: false},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			testutil.AssertEqual(t, "label", IsLabel(tt.word), tt.exp)
		})
	}
}

func TestHandler_Usage(t *testing.T) {
	h, _, _ := newTestHandler(t)
	console := NewConsoleSender("CONSOLE")

	assertUserError(t, h.Exec(context.Background(), console), "Usage: /resin help")
	assertUserError(t, h.Exec(context.Background(), console, "dance"), "Usage: /resin help")
}

func TestHandler_Help(t *testing.T) {
	h, _, _ := newTestHandler(t)
	ctx := context.Background()

	console := NewConsoleSender("CONSOLE")
	if err := h.Exec(ctx, console, "help"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "console lines", len(console.Messages()), 7)

	player := NewPlayerSender("Alice", []string{PermHelp, PermCheck})
	if err := h.Exec(ctx, player, "HELP"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertMessages(t, player.Messages(), []string{
		"All ResinAPI main commands:",
		"- /resin help (Show all commands)",
		"- /resin check [player] (Check resin balances)",
	})

	denied := NewPlayerSender("Bob", nil)
	assertUserError(t, h.Exec(ctx, denied, "help"), "You do not have permission to use this command.")
	testutil.AssertEqual(t, "denied lines", len(denied.Messages()), 0)
}

func TestHandler_List(t *testing.T) {
	h, _, _ := newTestHandler(t)
	console := NewConsoleSender("CONSOLE")

	if err := h.Exec(context.Background(), console, "list"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertMessages(t, console.Messages(), []string{
		"All resin types:",
		"- Original Resin (original)",
		"- Condensed Resin (condensed)",
		"- Fragile Resin (fragile)",
	})
}

func TestHandler_Check(t *testing.T) {
	tests := map[string]struct {
		sender func() *BufferedSender
		args   []string
		exp    []string
		expErr string
	}{
		"console needs a name": {
			sender: func() *BufferedSender { return NewConsoleSender("CONSOLE") },
			args:   []string{"check"},
			expErr: "Usage: /resin check <player>",
		},
		"player checks self": {
			sender: func() *BufferedSender { return NewPlayerSender("Alice", []string{PermCheck}) },
			args:   []string{"check"},
			exp:    []string{"Your resin: Original 5/200, Condensed 0/5, Fragile 0/10"},
		},
		"other needs permission": {
			sender: func() *BufferedSender { return NewPlayerSender("Alice", []string{PermCheck}) },
			args:   []string{"check", "Steve"},
			expErr: "You do not have permission to use this command.",
		},
		"check needs permission": {
			sender: func() *BufferedSender { return NewPlayerSender("Alice", nil) },
			args:   []string{"check"},
			expErr: "You do not have permission to use this command.",
		},
		"other by prefix": {
			sender: func() *BufferedSender { return NewConsoleSender("CONSOLE") },
			args:   []string{"check", "ste"},
			exp:    []string{"Steve's resin: Original 5/200, Condensed 0/5, Fragile 0/10"},
		},
		"offline account": {
			sender: func() *BufferedSender { return NewConsoleSender("CONSOLE") },
			args:   []string{"check", "Alice"},
			exp:    []string{"Alice's resin: Original 5/200, Condensed 0/5, Fragile 0/10"},
		},
		"blank name": {
			sender: func() *BufferedSender { return NewConsoleSender("CONSOLE") },
			args:   []string{"check", ""},
			expErr: "Usage: /resin check <player>",
		},
		"unknown account": {
			sender: func() *BufferedSender { return NewConsoleSender("CONSOLE") },
			args:   []string{"check", "Nobody"},
			exp:    []string{"No resin account found for Nobody."},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			h, svc, _ := newTestHandler(t)
			svc.CreateAccount("Alice")
			svc.Join(context.Background(), "Steve")

			sender := tt.sender()
			err := h.Exec(context.Background(), sender, tt.args...)
			if tt.expErr != "" {
				assertUserError(t, err, tt.expErr)
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			assertMessages(t, sender.Messages(), tt.exp)
		})
	}
}

func TestHandler_CheckRequireOnline(t *testing.T) {
	h, svc, _ := newTestHandler(t, service.WithRequireOnline(true))
	svc.CreateAccount("Alice")

	console := NewConsoleSender("CONSOLE")
	if err := h.Exec(context.Background(), console, "check", "Alice"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertMessages(t, console.Messages(), []string{"Alice is not online."})
}

func TestHandler_Change(t *testing.T) {
	tests := map[string]struct {
		args        []string
		exp         []string
		expErr      string
		expBalance  int
		expNotified []notification
	}{
		"give": {
			args:       []string{"give", "Alice", "original", "40"},
			exp:        []string{"Gave 40 Original Resin to Alice."},
			expBalance: 45,
			expNotified: []notification{
				{player: "Alice", msg: "CONSOLE gave you 40 Original Resin."},
			},
		},
		"give by prefix and display name": {
			args:       []string{"give", "al", "Original Resin", "1"},
			exp:        []string{"Gave 1 Original Resin to Alice."},
			expBalance: 6,
			expNotified: []notification{
				{player: "Alice", msg: "CONSOLE gave you 1 Original Resin."},
			},
		},
		"give over cap": {
			args:       []string{"give", "Alice", "original", "1000"},
			exp:        []string{"That amount would take the balance out of range."},
			expBalance: 5,
		},
		"set": {
			args:       []string{"set", "Alice", "original_resin", "100"},
			exp:        []string{"Set Alice's Original Resin to 100."},
			expBalance: 100,
			expNotified: []notification{
				{player: "Alice", msg: "CONSOLE set your Original Resin to 100."},
			},
		},
		"take": {
			args:       []string{"take", "Alice", "original", "5"},
			exp:        []string{"Took 5 Original Resin from Alice."},
			expBalance: 0,
			expNotified: []notification{
				{player: "Alice", msg: "CONSOLE took 5 Original Resin from you."},
			},
		},
		"take too much": {
			args:       []string{"take", "Alice", "original", "100"},
			exp:        []string{"That amount would take the balance out of range."},
			expBalance: 5,
		},
		"negative amount": {
			args:       []string{"take", "Alice", "original", "-5"},
			exp:        []string{"The amount must be a whole number greater than zero."},
			expBalance: 5,
		},
		"not a number": {
			args:       []string{"give", "Alice", "original", "lots"},
			exp:        []string{"The amount must be a whole number greater than zero."},
			expBalance: 5,
		},
		"invalid type": {
			args:       []string{"give", "Alice", "mystic", "1"},
			exp:        []string{`"mystic" is not a resin type. Use /resin list to see them all.`},
			expBalance: 5,
		},
		"unknown player": {
			args:       []string{"give", "Nobody", "original", "1"},
			exp:        []string{"No resin account found for Nobody."},
			expBalance: 5,
		},
		"wrong arg count": {
			args:       []string{"give", "Alice", "original"},
			expErr:     "Usage: /resin give <player> <resin type> <amount>",
			expBalance: 5,
		},
		"blank player": {
			args:       []string{"give", "", "original", "5"},
			expErr:     "Usage: /resin give <player> <resin type> <amount>",
			expBalance: 5,
		},
		"whitespace player": {
			args:       []string{"set", " ", "original", "50"},
			expErr:     "Usage: /resin set <player> <resin type> <amount>",
			expBalance: 5,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			h, svc, n := newTestHandler(t)
			svc.Join(ctx, "Alice")

			console := NewConsoleSender("CONSOLE")
			err := h.Exec(ctx, console, tt.args...)
			if tt.expErr != "" {
				assertUserError(t, err, tt.expErr)
			} else if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			assertMessages(t, console.Messages(), tt.exp)
			testutil.AssertEqual(t, "balance", svc.GetBalance("Alice", resin.Original), tt.expBalance)
			testutil.AssertEqual(t, "notification count", len(n.sent), len(tt.expNotified))
			for i := range tt.expNotified {
				testutil.AssertEqual(t, "notified player", n.sent[i].player, tt.expNotified[i].player)
				testutil.AssertEqual(t, "notified message", n.sent[i].msg, tt.expNotified[i].msg)
			}
		})
	}
}

func TestHandler_ChangePermissions(t *testing.T) {
	tests := map[string]struct {
		op   string
		perm string
	}{
		"give": {op: "give", perm: PermGive},
		"set":  {op: "set", perm: PermSet},
		"take": {op: "take", perm: PermTake},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			h, svc, _ := newTestHandler(t)
			svc.CreateAccount("Alice")

			denied := NewPlayerSender("Bob", []string{PermHelp})
			assertUserError(t, h.Exec(ctx, denied, tt.op, "Alice", "original", "1"), "You do not have permission to use this command.")

			allowed := NewPlayerSender("Bob", []string{tt.perm})
			if err := h.Exec(ctx, allowed, tt.op, "Alice", "original", "1"); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			testutil.AssertEqual(t, "messages", len(allowed.Messages()), 1)
		})
	}
}

func TestHandler_ChangeOfflineTarget(t *testing.T) {
	ctx := context.Background()
	h, svc, n := newTestHandler(t)
	svc.CreateAccount("Alice")

	console := NewConsoleSender("CONSOLE")
	if err := h.Exec(ctx, console, "give", "Alice", "fragile", "2"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	assertMessages(t, console.Messages(), []string{"Gave 2 Fragile Resin to Alice."})
	testutil.AssertEqual(t, "notifications", len(n.sent), 0)
}

func TestHandler_ChangeRequireOnline(t *testing.T) {
	ctx := context.Background()
	h, svc, _ := newTestHandler(t, service.WithRequireOnline(true))
	svc.CreateAccount("Alice")

	console := NewConsoleSender("CONSOLE")
	if err := h.Exec(ctx, console, "give", "Alice", "original", "2"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	assertMessages(t, console.Messages(), []string{"Alice is not online."})
	testutil.AssertEqual(t, "balance", svc.GetBalance("Alice", resin.Original), 5)
}

func TestHandler_SelfChangeSkipsNotification(t *testing.T) {
	ctx := context.Background()
	h, svc, n := newTestHandler(t)
	svc.Join(ctx, "Alice")

	alice := NewPlayerSender("Alice", []string{PermGive})
	if err := h.Exec(ctx, alice, "give", "Alice", "condensed", "1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	assertMessages(t, alice.Messages(), []string{"Gave 1 Condensed Resin to Alice."})
	testutil.AssertEqual(t, "notifications", len(n.sent), 0)
}
