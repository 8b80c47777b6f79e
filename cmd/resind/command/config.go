package command

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/pixil98/go-errors"
	"github.com/pixil98/go-resin/internal/lang"
	"github.com/pixil98/go-resin/internal/ledger"
	"github.com/pixil98/go-resin/internal/resin"
)

const (
	defaultTickInterval = "1s"
	defaultSaveInterval = "1m"
	defaultLang         = lang.BaseLanguage
)

type Config struct {
	Provider         ProviderType    `json:"provider" env:"RESIN_PROVIDER"`
	DefaultResin     resin.Balances  `json:"default_resin"`
	MaxResin         resin.Balances  `json:"max_resin"`
	IntervalToUpdate int             `json:"interval_to_update" env:"RESIN_INTERVAL_TO_UPDATE"`
	TickInterval     string          `json:"tick_interval" env:"RESIN_TICK_INTERVAL"`
	SaveInterval     string          `json:"save_interval" env:"RESIN_SAVE_INTERVAL"`
	DefaultLang      string          `json:"default_lang" env:"RESIN_DEFAULT_LANG"`
	RequireOnline    bool            `json:"require_online" env:"RESIN_REQUIRE_ONLINE"`
	Database         DatabaseConfig  `json:"database"`
	Nats             NatsConfig      `json:"nats"`
	Consoles         []ConsoleConfig `json:"consoles"`
}

// Validate applies RESIN_* environment overrides on top of the loaded file
// before checking the result.
func (c *Config) Validate() error {
	if err := env.Parse(c); err != nil {
		return fmt.Errorf("applying environment overrides: %w", err)
	}

	el := errors.NewErrorList()

	if c.Provider == ProviderUnset {
		el.Add(fmt.Errorf("provider is required"))
	}

	if c.IntervalToUpdate < 1 {
		el.Add(fmt.Errorf("interval_to_update must be at least 1 minute"))
	}

	tick, err := c.tickLength()
	if err != nil {
		el.Add(err)
	} else if tick < 10*time.Millisecond {
		el.Add(fmt.Errorf("tick_interval must be at least 10ms"))
	}

	save, err := c.saveInterval()
	if err != nil {
		el.Add(err)
	} else if tick > 0 && save < tick {
		el.Add(fmt.Errorf("save_interval must not be shorter than tick_interval"))
	}

	if _, err := lang.New(c.language()); err != nil {
		el.Add(fmt.Errorf("default_lang: %w", err))
	}

	el.Add(c.limits().Validate())
	el.Add(c.Database.validate(c.Provider))
	el.Add(c.Nats.validate())

	for i, con := range c.Consoles {
		err := con.validate()
		if err != nil {
			el.Add(fmt.Errorf("console %d: %w", i, err))
		}
	}

	return el.Err()
}

func (c *Config) limits() ledger.Limits {
	return ledger.Limits{
		Defaults: c.DefaultResin.Clone(),
		Caps:     c.MaxResin.Clone(),
	}
}

func (c *Config) language() string {
	if c.DefaultLang == "" {
		return defaultLang
	}
	return c.DefaultLang
}

func (c *Config) tickLength() (time.Duration, error) {
	return parseDuration("tick_interval", c.TickInterval, defaultTickInterval)
}

func (c *Config) saveInterval() (time.Duration, error) {
	return parseDuration("save_interval", c.SaveInterval, defaultSaveInterval)
}

// ticksPerMinute is how many driver ticks make up one regeneration minute.
func (c *Config) ticksPerMinute() (int, error) {
	tick, err := c.tickLength()
	if err != nil {
		return 0, err
	}
	return max(1, int(time.Minute/tick)), nil
}

// saveTicks is how many driver ticks pass between periodic saves.
func (c *Config) saveTicks() (int, error) {
	tick, err := c.tickLength()
	if err != nil {
		return 0, err
	}
	save, err := c.saveInterval()
	if err != nil {
		return 0, err
	}
	return max(1, int(save/tick)), nil
}

func parseDuration(name string, value string, fallback string) (time.Duration, error) {
	if value == "" {
		value = fallback
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("parsing %s: %w", name, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%s must be positive", name)
	}
	return d, nil
}
