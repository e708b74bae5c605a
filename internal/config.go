package internal

import (
	"fmt"
	"log/slog"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// Content sources.
const (
	SourceFS   = "fs"
	SourceHTTP = "http"
)

// Config represents the application configuration.
type Config struct {
	App     ApplicationConfig `yaml:"app"`
	Content ContentConfig     `yaml:"content"`
	Corpus  CorpusConfig      `yaml:"corpus"`
	Watch   WatchConfig       `yaml:"watch"`
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if err := c.App.Validate(); err != nil {
		return err
	}
	if err := c.Content.Validate(); err != nil {
		return err
	}
	return c.Corpus.Validate()
}

// ApplicationConfig holds application-level configuration.
type ApplicationConfig struct {
	LogLevel slog.Level `yaml:"log_level"`
	HTTP     HTTPConfig `yaml:"http"`
}

// Validate validates the application configuration.
func (c *ApplicationConfig) Validate() error {
	return c.HTTP.Validate()
}

// HTTPConfig holds HTTP server configuration.
type HTTPConfig struct {
	Port        int      `yaml:"port"`
	CORSOrigins []string `yaml:"cors_origins"`
}

// Address returns HTTP server address.
func (c *HTTPConfig) Address() string {
	return fmt.Sprintf(":%d", c.Port)
}

// Validate validates the HTTP configuration.
func (c *HTTPConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Port, validation.Required, validation.Min(1), validation.Max(65535)),
	)
}

// ContentConfig selects where the static JSON corpus is read from.
//
// Source controls the backend:
//   - "fs" (default): Path is a local directory holding articles/ and daily-office/.
//   - "http": BaseURL is the root the same layout is served under.
//
// Timeout bounds each HTTP fetch; zero leaves fetches unbounded.
type ContentConfig struct {
	Source  string        `yaml:"source"`
	Path    string        `yaml:"path"`
	BaseURL string        `yaml:"base_url"`
	Timeout time.Duration `yaml:"timeout"`
}

// Validate validates the content configuration.
func (c *ContentConfig) Validate() error {
	if c.Source == "" {
		c.Source = SourceFS
	}
	return validation.ValidateStruct(c,
		validation.Field(&c.Source, validation.Required, validation.In(SourceFS, SourceHTTP)),
		validation.Field(&c.Path, validation.When(c.Source == SourceFS, validation.Required)),
		validation.Field(&c.BaseURL, validation.When(c.Source == SourceHTTP, validation.Required, is.URL)),
		validation.Field(&c.Timeout, validation.Min(time.Duration(0))),
	)
}

// CorpusConfig describes the fixed, known shape of the corpus.
type CorpusConfig struct {
	Size int `yaml:"size"`
}

// Validate validates the corpus configuration.
func (c *CorpusConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Size, validation.Required, validation.Min(1)),
	)
}

// WatchConfig controls change notifications. It only applies to the fs
// content source and is ignored otherwise.
type WatchConfig struct {
	Enabled  bool          `yaml:"enabled"`
	Throttle time.Duration `yaml:"throttle"`
}

// NewDefaultConfig returns a new Config with sensible default values.
func NewDefaultConfig() *Config {
	return &Config{
		App: ApplicationConfig{
			LogLevel: slog.LevelInfo,
			HTTP: HTTPConfig{
				Port:        8080,
				CORSOrigins: []string{"*"},
			},
		},
		Content: ContentConfig{
			Source: SourceFS,
			Path:   "./content",
		},
		Corpus: CorpusConfig{
			Size: 39,
		},
		Watch: WatchConfig{
			Enabled:  true,
			Throttle: 2 * time.Second,
		},
	}
}
