// Package lang renders player-facing messages from the embedded language
// files. Keys missing from a language fall back to the base language.
package lang

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"log/slog"
	"path"
	"slices"
	"strings"
	"text/template"

	"github.com/Masterminds/sprig/v3"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const BaseLanguage = "en-US"

//go:embed languages/*.json
var languageFS embed.FS

// Params are the values a message template can reference.
type Params map[string]any

type Catalog struct {
	tag      language.Tag
	printer  *message.Printer
	messages map[string]*template.Template
}

// Available returns the codes of every embedded language, sorted.
func Available() []string {
	entries, err := fs.ReadDir(languageFS, "languages")
	if err != nil {
		return nil
	}

	codes := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || path.Ext(e.Name()) != ".json" {
			continue
		}
		codes = append(codes, strings.TrimSuffix(e.Name(), ".json"))
	}
	slices.Sort(codes)
	return codes
}

// New builds the catalog of the embedded language that best matches code.
func New(code string) (*Catalog, error) {
	requested, err := language.Parse(code)
	if err != nil {
		return nil, fmt.Errorf("parsing language %q: %w", code, err)
	}

	codes := Available()
	tags := make([]language.Tag, 0, len(codes))
	for _, c := range codes {
		tags = append(tags, language.MustParse(c))
	}

	_, idx, confidence := language.NewMatcher(tags).Match(requested)
	if confidence == language.No {
		return nil, fmt.Errorf("language %q not available, have %s", code, strings.Join(codes, ", "))
	}
	chosen := codes[idx]

	raw, err := readLanguage(BaseLanguage)
	if err != nil {
		return nil, err
	}
	if chosen != BaseLanguage {
		overlay, err := readLanguage(chosen)
		if err != nil {
			return nil, err
		}
		for k, v := range overlay {
			raw[k] = v
		}
	}

	c := &Catalog{
		tag:      tags[idx],
		printer:  message.NewPrinter(tags[idx]),
		messages: make(map[string]*template.Template, len(raw)),
	}

	funcs := sprig.TxtFuncMap()
	funcs["num"] = c.number

	for key, text := range raw {
		tmpl, err := template.New(key).Funcs(funcs).Option("missingkey=zero").Parse(text)
		if err != nil {
			return nil, fmt.Errorf("parsing message %q in %s: %w", key, chosen, err)
		}
		c.messages[key] = tmpl
	}

	return c, nil
}

func readLanguage(code string) (map[string]string, error) {
	b, err := languageFS.ReadFile(path.Join("languages", code+".json"))
	if err != nil {
		return nil, fmt.Errorf("reading language %s: %w", code, err)
	}

	var raw map[string]string
	if err := json.Unmarshal(b, &raw); err != nil {
		return nil, fmt.Errorf("unmarshalling language %s: %w", code, err)
	}
	return raw, nil
}

func (c *Catalog) Tag() language.Tag {
	return c.tag
}

func (c *Catalog) Has(key string) bool {
	_, ok := c.messages[key]
	return ok
}

// Translate renders the message for key. An unknown key renders as the key.
func (c *Catalog) Translate(key string, p Params) string {
	tmpl, ok := c.messages[key]
	if !ok {
		slog.Warn("unknown message key", "key", key, "language", c.tag)
		return key
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, p); err != nil {
		slog.Warn("rendering message", "key", key, "language", c.tag, "error", err)
		return key
	}
	return buf.String()
}

func (c *Catalog) number(v any) string {
	switch n := v.(type) {
	case int:
		return c.printer.Sprintf("%d", n)
	case int64:
		return c.printer.Sprintf("%d", n)
	case nil:
		return "0"
	default:
		return fmt.Sprint(v)
	}
}
