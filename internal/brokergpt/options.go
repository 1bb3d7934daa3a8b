// Package brokergpt assembles the BrokerGPT API server: options, component
// construction, and the serve loop.
package brokergpt

import (
	"fmt"
	"time"

	"github.com/spf13/pflag"

	"github.com/kart-io/brokergpt/pkg/component/postgres"
	logopts "github.com/kart-io/brokergpt/pkg/options/logger"
)

// ServerOptions configures the HTTP listener.
type ServerOptions struct {
	Addr            string        `json:"addr" mapstructure:"addr"`
	Mode            string        `json:"mode" mapstructure:"mode"`
	ShutdownTimeout time.Duration `json:"shutdown-timeout" mapstructure:"shutdown-timeout"`
}

// NewServerOptions creates server options with defaults.
func NewServerOptions() *ServerOptions {
	return &ServerOptions{
		Addr:            ":8080",
		Mode:            "release",
		ShutdownTimeout: 10 * time.Second,
	}
}

// AddFlags adds server flags.
func (o *ServerOptions) AddFlags(fs *pflag.FlagSet) {
	fs.StringVar(&o.Addr, "server.addr", o.Addr, "HTTP listen address")
	fs.StringVar(&o.Mode, "server.mode", o.Mode, "Gin mode (debug, release, test)")
	fs.DurationVar(&o.ShutdownTimeout, "server.shutdown-timeout", o.ShutdownTimeout, "Graceful shutdown timeout")
}

// AssistantOptions configures the chat language-model provider.
type AssistantOptions struct {
	// Provider selects the chat provider; empty disables the assistant.
	Provider       string        `json:"provider" mapstructure:"provider"`
	BaseURL        string        `json:"base-url" mapstructure:"base-url"`
	APIKey         string        `json:"api-key" mapstructure:"api-key"`
	Model          string        `json:"model" mapstructure:"model"`
	Timeout        time.Duration `json:"timeout" mapstructure:"timeout"`
	MaxRetries     int           `json:"max-retries" mapstructure:"max-retries"`
	CooldownWindow time.Duration `json:"cooldown-window" mapstructure:"cooldown-window"`
}

// NewAssistantOptions creates assistant options with defaults.
func NewAssistantOptions() *AssistantOptions {
	return &AssistantOptions{
		Provider:       "openai",
		Model:          "gpt-4o-mini",
		Timeout:        60 * time.Second,
		MaxRetries:     2,
		CooldownWindow: time.Minute,
	}
}

// AddFlags adds assistant flags.
func (o *AssistantOptions) AddFlags(fs *pflag.FlagSet) {
	fs.StringVar(&o.Provider, "assistant.provider", o.Provider, "Chat provider (openai); empty disables the assistant")
	fs.StringVar(&o.BaseURL, "assistant.base-url", o.BaseURL, "Chat API base URL override")
	fs.StringVar(&o.APIKey, "assistant.api-key", o.APIKey, "Chat API key")
	fs.StringVar(&o.Model, "assistant.model", o.Model, "Chat model name")
	fs.DurationVar(&o.Timeout, "assistant.timeout", o.Timeout, "Chat request timeout")
	fs.IntVar(&o.MaxRetries, "assistant.max-retries", o.MaxRetries, "Chat transport retry count")
	fs.DurationVar(&o.CooldownWindow, "assistant.cooldown-window", o.CooldownWindow, "How long to back off after a rate limit")
}

// ToConfigMap converts the options to a provider factory config map.
func (o *AssistantOptions) ToConfigMap() map[string]any {
	return map[string]any{
		"base_url":    o.BaseURL,
		"api_key":     o.APIKey,
		"chat_model":  o.Model,
		"timeout":     o.Timeout,
		"max_retries": o.MaxRetries,
	}
}

// SearchOptions configures the web search provider used by company research.
type SearchOptions struct {
	Endpoint   string        `json:"endpoint" mapstructure:"endpoint"`
	APIKey     string        `json:"api-key" mapstructure:"api-key"`
	Timeout    time.Duration `json:"timeout" mapstructure:"timeout"`
	MaxResults int           `json:"max-results" mapstructure:"max-results"`
	Workers    int           `json:"workers" mapstructure:"workers"`
}

// NewSearchOptions creates search options with defaults.
func NewSearchOptions() *SearchOptions {
	return &SearchOptions{
		Endpoint:   "https://google.serper.dev/search",
		Timeout:    20 * time.Second,
		MaxResults: 5,
		Workers:    4,
	}
}

// AddFlags adds search flags.
func (o *SearchOptions) AddFlags(fs *pflag.FlagSet) {
	fs.StringVar(&o.Endpoint, "search.endpoint", o.Endpoint, "Search API endpoint")
	fs.StringVar(&o.APIKey, "search.api-key", o.APIKey, "Search API key; empty disables research")
	fs.DurationVar(&o.Timeout, "search.timeout", o.Timeout, "Search request timeout")
	fs.IntVar(&o.MaxResults, "search.max-results", o.MaxResults, "Search results per query")
	fs.IntVar(&o.Workers, "search.workers", o.Workers, "Concurrent page fetches per research lookup")
}

// CacheOptions configures the Redis reply cache.
type CacheOptions struct {
	Enabled  bool          `json:"enabled" mapstructure:"enabled"`
	Addr     string        `json:"addr" mapstructure:"addr"`
	Password string        `json:"-" mapstructure:"password"`
	Database int           `json:"database" mapstructure:"database"`
	TTL      time.Duration `json:"ttl" mapstructure:"ttl"`
}

// NewCacheOptions creates cache options with defaults.
func NewCacheOptions() *CacheOptions {
	return &CacheOptions{
		Enabled:  false,
		Addr:     "127.0.0.1:6379",
		Database: 0,
		TTL:      time.Hour,
	}
}

// AddFlags adds cache flags.
func (o *CacheOptions) AddFlags(fs *pflag.FlagSet) {
	fs.BoolVar(&o.Enabled, "cache.enabled", o.Enabled, "Enable the Redis assistant reply cache")
	fs.StringVar(&o.Addr, "cache.addr", o.Addr, "Redis address")
	fs.StringVar(&o.Password, "cache.password", o.Password, "Redis password")
	fs.IntVar(&o.Database, "cache.database", o.Database, "Redis database number")
	fs.DurationVar(&o.TTL, "cache.ttl", o.TTL, "Cached reply lifetime")
}

// BootstrapOptions bounds the primary store connection attempts.
type BootstrapOptions struct {
	MaxAttempts int           `json:"max-attempts" mapstructure:"max-attempts"`
	RetryDelay  time.Duration `json:"retry-delay" mapstructure:"retry-delay"`
}

// NewBootstrapOptions creates bootstrap options with defaults.
func NewBootstrapOptions() *BootstrapOptions {
	return &BootstrapOptions{
		MaxAttempts: 5,
		RetryDelay:  3 * time.Second,
	}
}

// AddFlags adds bootstrap flags.
func (o *BootstrapOptions) AddFlags(fs *pflag.FlagSet) {
	fs.IntVar(&o.MaxAttempts, "bootstrap.max-attempts", o.MaxAttempts, "Database connection attempts before giving up")
	fs.DurationVar(&o.RetryDelay, "bootstrap.retry-delay", o.RetryDelay, "Fixed delay between connection attempts")
}

// Options aggregates all server configuration.
type Options struct {
	Server    *ServerOptions    `json:"server" mapstructure:"server"`
	Log       *logopts.Options  `json:"log" mapstructure:"log"`
	Postgres  *postgres.Options `json:"postgres" mapstructure:"postgres"`
	Assistant *AssistantOptions `json:"assistant" mapstructure:"assistant"`
	Search    *SearchOptions    `json:"search" mapstructure:"search"`
	Cache     *CacheOptions     `json:"cache" mapstructure:"cache"`
	Bootstrap *BootstrapOptions `json:"bootstrap" mapstructure:"bootstrap"`
}

// NewOptions creates the full option set with defaults.
func NewOptions() *Options {
	return &Options{
		Server:    NewServerOptions(),
		Log:       logopts.NewOptions(),
		Postgres:  postgres.NewOptions(),
		Assistant: NewAssistantOptions(),
		Search:    NewSearchOptions(),
		Cache:     NewCacheOptions(),
		Bootstrap: NewBootstrapOptions(),
	}
}

// AddFlags registers every component's flags.
func (o *Options) AddFlags(fs *pflag.FlagSet) {
	o.Server.AddFlags(fs)
	o.Log.AddFlags(fs)
	o.Postgres.AddFlags(fs)
	o.Assistant.AddFlags(fs)
	o.Search.AddFlags(fs)
	o.Cache.AddFlags(fs)
	o.Bootstrap.AddFlags(fs)
}

// Complete fills in derived defaults.
func (o *Options) Complete() error {
	if o.Assistant.Provider != "" && o.Assistant.APIKey == "" {
		// The server still runs; the assistant degrades to apologies.
		o.Assistant.Provider = ""
	}
	return nil
}

// Validate checks the full option set.
func (o *Options) Validate() error {
	if o.Server.Addr == "" {
		return fmt.Errorf("server.addr must not be empty")
	}
	if o.Postgres.Enabled {
		if err := o.Postgres.Validate(); err != nil {
			return err
		}
	}
	if o.Bootstrap.MaxAttempts < 1 {
		return fmt.Errorf("bootstrap.max-attempts must be at least 1")
	}
	return o.Log.Validate()
}
