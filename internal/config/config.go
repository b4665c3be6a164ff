package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

var ErrMissingToken = errors.New("missing bot token (set TOKEN or token in config)")

// Environment variables read on top of the config file.
const (
	EnvToken  = "TOKEN"
	EnvGuild  = "TEST_SERVER"
	EnvStatus = "STATUS"
)

type Config struct {
	BaseURL    string `yaml:"base_url"`
	ExplainURL string `yaml:"explain_url"`
	UserAgent  string `yaml:"user_agent"`

	TimeoutSeconds       int  `yaml:"timeout_seconds"`
	MaxRange             int  `yaml:"max_range"`
	RangeWorkers         int  `yaml:"range_workers"`
	ButtonTimeoutMinutes int  `yaml:"button_timeout_minutes"`
	Debug                bool `yaml:"debug"`

	GuildID string `yaml:"guild_id"`
	Status  string `yaml:"status"`
	Token   string `yaml:"token,omitempty"`
}

type Options struct {
	IgnoreConfig bool
	Debug        bool
	EnvFile      string
	BaseURL      string
	UserAgent    string
	Timeout      int
	Token        string
	GuildID      string
	Status       string
}

func DefaultConfig() *Config {
	return &Config{
		BaseURL:              "https://xkcd.com",
		ExplainURL:           "https://www.explainxkcd.com",
		UserAgent:            "",
		TimeoutSeconds:       10,
		MaxRange:             10,
		RangeWorkers:         4,
		ButtonTimeoutMinutes: 15,
		Debug:                false,
		Status:               "xkcd.com",
	}
}

func (c *Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

func (c *Config) ButtonTimeout() time.Duration {
	return time.Duration(c.ButtonTimeoutMinutes) * time.Minute
}

func (c *Config) RequireToken() error {
	if c.Token == "" {
		return ErrMissingToken
	}
	return nil
}

func SaveYAML(cfg *Config, path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0600)
}

func loadYAML(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	c := DefaultConfig()
	if err := yaml.Unmarshal(b, c); err != nil {
		return nil, err
	}

	return c, nil
}

// LoadMerged builds the effective config: active profile (or defaults),
// then environment, then CLI options.
func LoadMerged(opts Options) (*Config, string, error) {
	if err := loadEnvFile(opts.EnvFile); err != nil {
		return nil, "", err
	}

	if opts.IgnoreConfig {
		cfg := DefaultConfig()
		finish(cfg, opts)
		return cfg, "(ignored config)", nil
	}

	activePath, err := ActiveConfigPath()
	if errors.Is(err, ErrNoConfig) || activePath == "" {
		cfg := DefaultConfig()
		finish(cfg, opts)
		return cfg, "(default config in memory)\nRun `xkcdbot config init` to create an actual config\n", nil
	}
	if err != nil {
		return nil, "", err
	}

	cfg, err := loadYAML(activePath)
	if err != nil {
		return nil, "", fmt.Errorf("failed to load config %s: %w", activePath, err)
	}

	finish(cfg, opts)

	return cfg, activePath, nil
}

func finish(c *Config, o Options) {
	mergeEnv(c)
	mergeOptions(c, o)
	normalizeDefaults(c)
}

// loadEnvFile reads a dotenv file if present. An explicitly named file
// that does not exist is an error; the implicit ".env" is optional.
func loadEnvFile(path string) error {
	if path == "" {
		if _, err := os.Stat(".env"); err != nil {
			return nil
		}
		path = ".env"
	}

	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("failed to load env file %s: %w", path, err)
	}
	return nil
}

func mergeEnv(c *Config) {
	if v := os.Getenv(EnvToken); v != "" {
		c.Token = v
	}
	if v := os.Getenv(EnvGuild); v != "" {
		c.GuildID = v
	}
	if v := os.Getenv(EnvStatus); v != "" {
		c.Status = v
	}
}

func mergeOptions(c *Config, o Options) {
	if o.Debug {
		c.Debug = true
	}
	if o.BaseURL != "" {
		c.BaseURL = o.BaseURL
	}
	if o.UserAgent != "" {
		c.UserAgent = o.UserAgent
	}
	if o.Timeout != 0 {
		c.TimeoutSeconds = o.Timeout
	}
	if o.Token != "" {
		c.Token = o.Token
	}
	if o.GuildID != "" {
		c.GuildID = o.GuildID
	}
	if o.Status != "" {
		c.Status = o.Status
	}
}

func normalizeDefaults(c *Config) {
	def := DefaultConfig()

	if c.BaseURL == "" {
		c.BaseURL = def.BaseURL
	}
	if c.ExplainURL == "" {
		c.ExplainURL = def.ExplainURL
	}
	if c.TimeoutSeconds <= 0 {
		c.TimeoutSeconds = def.TimeoutSeconds
	}
	if c.MaxRange <= 0 {
		c.MaxRange = def.MaxRange
	}
	if c.RangeWorkers <= 0 {
		c.RangeWorkers = def.RangeWorkers
	}
	if c.ButtonTimeoutMinutes <= 0 {
		c.ButtonTimeoutMinutes = def.ButtonTimeoutMinutes
	}
}

func (c *Config) Print() {
	fmt.Printf(" -base_url: %s\n", c.BaseURL)
	fmt.Printf(" -explain_url: %s\n", c.ExplainURL)
	if c.UserAgent != "" {
		fmt.Printf(" -user_agent: %s\n", c.UserAgent)
	}
	fmt.Printf(" -timeout_seconds: %d\n", c.TimeoutSeconds)
	fmt.Printf(" -max_range: %d\n", c.MaxRange)
	fmt.Printf(" -range_workers: %d\n", c.RangeWorkers)
	fmt.Printf(" -button_timeout_minutes: %d\n", c.ButtonTimeoutMinutes)
	if c.Debug {
		fmt.Printf(" -debug: %t\n", c.Debug)
	}
	if c.GuildID != "" {
		fmt.Printf(" -guild_id: %s\n", c.GuildID)
	}
	if c.Status != "" {
		fmt.Printf(" -status: %s\n", c.Status)
	}
	if c.Token != "" {
		fmt.Println(" -token: ***")
	}
}
