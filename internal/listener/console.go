package listener

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/pixil98/go-resin/internal/commands"
	"github.com/pixil98/go-resin/internal/display"
	"github.com/pixil98/go-resin/internal/lang"
	"github.com/pixil98/go-resin/internal/service"
)

const (
	consoleSender = "CONSOLE"
	consolePrompt = "> "
	consoleBanner = "resind operator console. Type 'resin help' for commands, 'exit' to leave.\n"
)

// Saver flushes the ledger on demand.
type Saver interface {
	Save(ctx context.Context) error
}

// Console runs operator sessions. Every line executes with all permissions.
type Console struct {
	service *service.Service
	handler *commands.Handler
	saver   Saver
}

func NewConsole(svc *service.Service, handler *commands.Handler, saver Saver) *Console {
	return &Console{
		service: svc,
		handler: handler,
		saver:   saver,
	}
}

// Exec runs one console line and returns the output. done is true when the
// operator asked to leave.
func (c *Console) Exec(ctx context.Context, line string) (msgs []string, done bool) {
	parts := strings.Fields(line)
	if len(parts) == 0 {
		return nil, false
	}

	catalog := c.handler.Catalog()
	word := strings.ToLower(parts[0])

	switch {
	case word == "exit" || word == "logout":
		return []string{"Goodbye!"}, true

	case commands.IsLabel(word):
		sender := commands.NewConsoleSender(consoleSender)
		err := c.handler.Exec(ctx, sender, parts[1:]...)
		msgs = sender.Messages()

		if ue, ok := commands.AsUserError(err); ok {
			msgs = append(msgs, ue.Message)
		} else if err != nil {
			msgs = append(msgs, fmt.Sprintf("error: %v", err))
		}
		return msgs, false

	case word == "save":
		if err := c.saver.Save(ctx); err != nil {
			return []string{catalog.Translate(lang.ConsoleSaveFailed, lang.Params{"error": err.Error()})}, false
		}
		return []string{catalog.Translate(lang.ConsoleSaved, lang.Params{"accounts": c.service.Ledger().Len()})}, false

	case word == "join" && len(parts) == 2:
		created := c.service.Join(ctx, parts[1])
		return []string{catalog.Translate(lang.ConsoleJoined, lang.Params{"player": parts[1], "created": created})}, false

	case word == "quit" && len(parts) == 2:
		c.service.Quit(ctx, parts[1])
		return []string{catalog.Translate(lang.ConsoleQuit, lang.Params{"player": parts[1]})}, false

	case word == "who":
		return []string{catalog.Translate(lang.ConsoleOnline, lang.Params{"players": c.service.Presence().Online()})}, false

	default:
		return []string{catalog.Translate(lang.ConsoleUnknown, lang.Params{"command": parts[0]})}, false
	}
}

// RunSession serves one connection until the operator leaves, the
// connection drops or ctx ends.
func (c *Console) RunSession(ctx context.Context, conn io.ReadWriter) error {
	// Start goroutine to read input lines into a channel
	inputChan := make(chan string)
	inputErrChan := make(chan error, 1)
	go func() {
		defer close(inputChan)
		scanner := bufio.NewScanner(conn)
		for scanner.Scan() {
			select {
			case inputChan <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		inputErrChan <- scanner.Err()
	}()

	if _, err := io.WriteString(conn, consoleBanner+consolePrompt); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return nil

		case line, ok := <-inputChan:
			if !ok {
				select {
				case err := <-inputErrChan:
					return err
				default:
					return nil
				}
			}

			msgs, done := c.Exec(ctx, line)
			if _, err := io.WriteString(conn, display.Lines(msgs)); err != nil {
				return err
			}
			if done {
				return nil
			}
			if _, err := io.WriteString(conn, consolePrompt); err != nil {
				return err
			}
		}
	}
}
