package config

import (
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/firefly/text-analyzer/internal/fetcher"
)

const (
	// DefaultTopWords is the default number of top words in a report
	DefaultTopWords = 10

	// EnvPrefix prefixes every environment variable read by the flags
	EnvPrefix = "TEXT_ANALYZER_"
)

// Config holds all configuration for the text analyzer
type Config struct {
	Verbose      bool
	RateLimit    float64 // 0 means no limit
	Timeout      time.Duration
	MaxBodyBytes int64
	Selector     string
	TopWords     int
	Output       string
	NoProgress   bool
}

// Flags returns the flags shared by every command
func Flags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{
			Name:    "verbose",
			Usage:   "Enable debug logging",
			EnvVars: []string{EnvPrefix + "VERBOSE"},
		},
		&cli.Float64Flag{
			Name:    "rate-limit",
			Usage:   "Requests per second for URL sources (0 = no limit)",
			EnvVars: []string{EnvPrefix + "RATE_LIMIT"},
		},
		&cli.DurationFlag{
			Name:    "timeout",
			Value:   fetcher.DefaultTimeout,
			Usage:   "HTTP timeout for URL sources",
			EnvVars: []string{EnvPrefix + "TIMEOUT"},
		},
		&cli.Int64Flag{
			Name:    "max-body-bytes",
			Value:   fetcher.DefaultMaxBodyBytes,
			Usage:   "Largest page accepted from a URL source",
			EnvVars: []string{EnvPrefix + "MAX_BODY_BYTES"},
		},
		&cli.StringFlag{
			Name:    "selector",
			Usage:   "CSS selector tried first when extracting text from HTML",
			EnvVars: []string{EnvPrefix + "SELECTOR"},
		},
	}
}

// ReportFlags returns the flags of the report command
func ReportFlags() []cli.Flag {
	return []cli.Flag{
		&cli.IntFlag{
			Name:    "top",
			Value:   DefaultTopWords,
			Usage:   "Number of top words in the report",
			EnvVars: []string{EnvPrefix + "TOP"},
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "Write the JSON report to this file instead of stdout",
			EnvVars: []string{EnvPrefix + "OUTPUT"},
		},
		&cli.BoolFlag{
			Name:    "no-progress",
			Usage:   "Hide the progress bar while loading sources",
			EnvVars: []string{EnvPrefix + "NO_PROGRESS"},
		},
	}
}

// FromContext builds and validates a Config from parsed flags
func FromContext(c *cli.Context) (*Config, error) {
	config := &Config{
		Verbose:      c.Bool("verbose"),
		RateLimit:    c.Float64("rate-limit"),
		Timeout:      c.Duration("timeout"),
		MaxBodyBytes: c.Int64("max-body-bytes"),
		Selector:     c.String("selector"),
		TopWords:     DefaultTopWords,
		Output:       c.String("output"),
		NoProgress:   c.Bool("no-progress"),
	}
	if c.IsSet("top") {
		config.TopWords = c.Int("top")
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// Validate checks value ranges
func (c *Config) Validate() error {
	if c.RateLimit < 0 {
		return fmt.Errorf("--rate-limit must be non-negative (0 = no limit)")
	}

	if c.Timeout <= 0 {
		return fmt.Errorf("--timeout must be positive")
	}

	if c.MaxBodyBytes <= 0 {
		return fmt.Errorf("--max-body-bytes must be positive")
	}

	if c.TopWords <= 0 {
		return fmt.Errorf("--top must be positive")
	}

	return nil
}

// FetcherOptions maps the config onto fetcher options
func (c *Config) FetcherOptions() fetcher.Options {
	return fetcher.Options{
		RequestsPerSecond: c.RateLimit,
		Timeout:           c.Timeout,
		MaxBodyBytes:      c.MaxBodyBytes,
	}
}

// Logger builds the program logger writing to w; verbose enables debug output
func (c *Config) Logger(w io.Writer) *slog.Logger {
	level := slog.LevelWarn
	if c.Verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
