// Package config resolves runtime settings from flags, CELLKIT_* environment
// variables and an optional TOML file, in that order of precedence.
package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/atomicstack/cellkit/internal/theme"
)

// Config captures runtime configuration for the application.
type Config struct {
	App     App
	Logging Logging
	Palette map[string]theme.Entry
	Flags   map[string]string
	Args    []string
}

// App holds the settings the demo console consumes.
type App struct {
	FeedPath     string
	FeedInterval time.Duration
	LogCapacity  int
	MirrorPath   string
	MirrorKind   string
	DialogWidth  int
	DoubleClick  time.Duration
}

type Logging struct {
	FilePath string
	Trace    bool
}

const (
	MirrorText   = "text"
	MirrorSQLite = "sqlite"
)

const (
	envConfigFile   = "CELLKIT_CONFIG"
	envFeedPath     = "CELLKIT_FEED"
	envFeedInterval = "CELLKIT_FEED_INTERVAL"
	envLogCapacity  = "CELLKIT_LOG_CAPACITY"
	envMirrorPath   = "CELLKIT_MIRROR"
	envMirrorKind   = "CELLKIT_MIRROR_KIND"
	envDialogWidth  = "CELLKIT_DIALOG_WIDTH"
	envDoubleClick  = "CELLKIT_DOUBLE_CLICK"
	envTrace        = "CELLKIT_TRACE"
	envLogFile      = "CELLKIT_LOG_FILE"
)

// fileConfig is the shape of the TOML file. Every key is optional.
type fileConfig struct {
	Feed struct {
		Path     string `toml:"path"`
		Interval string `toml:"interval"`
	} `toml:"feed"`
	Log struct {
		Capacity   int    `toml:"capacity"`
		MirrorPath string `toml:"mirror"`
		MirrorKind string `toml:"mirror_kind"`
	} `toml:"log"`
	UI struct {
		DialogWidth int    `toml:"dialog_width"`
		DoubleClick string `toml:"double_click"`
	} `toml:"ui"`
	Logging struct {
		File  string `toml:"file"`
		Trace bool   `toml:"trace"`
	} `toml:"logging"`
	Palette map[string]theme.Entry `toml:"palette"`
}

func defaults() fileConfig {
	var fc fileConfig
	fc.Feed.Interval = "250ms"
	fc.Log.Capacity = 500
	fc.Log.MirrorKind = MirrorText
	fc.UI.DialogWidth = 46
	fc.UI.DoubleClick = "500ms"
	return fc
}

// Load parses configuration from CLI arguments and environment variables.
func Load() (Config, error) {
	return LoadArgs(os.Args[1:], os.Environ())
}

// LoadArgs allows tests to supply specific args/environment.
func LoadArgs(args []string, environ []string) (Config, error) {
	env := parseEnv(environ)

	fc := defaults()
	configPath := envOrDefault(env, envConfigFile, findConfigFlag(args))
	if configPath != "" {
		if _, err := toml.DecodeFile(configPath, &fc); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", configPath, err)
		}
	}
	fileInterval, err := time.ParseDuration(fc.Feed.Interval)
	if err != nil {
		return Config{}, fmt.Errorf("feed.interval: %w", err)
	}
	fileDouble, err := time.ParseDuration(fc.UI.DoubleClick)
	if err != nil {
		return Config{}, fmt.Errorf("ui.double_click: %w", err)
	}

	fs := flag.NewFlagSet("cellkit", flag.ContinueOnError)
	fs.SetOutput(new(strings.Builder))

	fs.String("config", configPath, "path to a TOML configuration file")
	feed := fs.String("feed", envOrDefault(env, envFeedPath, fc.Feed.Path), "file to follow in the monitor tab")
	interval := fs.Duration("feed-interval", envOrDuration(env, envFeedInterval, fileInterval), "how often the feed file is polled")
	capacity := fs.Int("log-capacity", envOrInt(env, envLogCapacity, fc.Log.Capacity), "lines kept by each log panel")
	mirror := fs.String("mirror", envOrDefault(env, envMirrorPath, fc.Log.MirrorPath), "mirror monitor lines to this path")
	mirrorKind := fs.String("mirror-kind", envOrDefault(env, envMirrorKind, fc.Log.MirrorKind), "mirror format: text or sqlite")
	dialogWidth := fs.Int("dialog-width", envOrInt(env, envDialogWidth, fc.UI.DialogWidth), "dialog width in cells")
	double := fs.Duration("double-click", envOrDuration(env, envDoubleClick, fileDouble), "longest gap between the presses of a double click")
	trace := fs.Bool("trace", envOrBool(env, envTrace, fc.Logging.Trace), "enable verbose JSON trace logging")
	logFile := fs.String("log-file", envOrDefault(env, envLogFile, fc.Logging.File), "path to the log file")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	cfg := Config{
		App: App{
			FeedPath:     *feed,
			FeedInterval: *interval,
			LogCapacity:  *capacity,
			MirrorPath:   *mirror,
			MirrorKind:   strings.ToLower(strings.TrimSpace(*mirrorKind)),
			DialogWidth:  *dialogWidth,
			DoubleClick:  *double,
		},
		Logging: Logging{
			FilePath: *logFile,
			Trace:    *trace,
		},
		Palette: fc.Palette,
		Flags: map[string]string{
			"config":        configPath,
			"feed":          *feed,
			"feed-interval": interval.String(),
			"log-capacity":  strconv.Itoa(*capacity),
			"mirror":        *mirror,
			"mirror-kind":   *mirrorKind,
			"dialog-width":  strconv.Itoa(*dialogWidth),
			"double-click":  double.String(),
			"trace":         strconv.FormatBool(*trace),
			"logFile":       *logFile,
		},
		Args: append([]string(nil), args...),
	}

	return cfg, nil
}

// findConfigFlag picks -config out of args ahead of the full parse, so the
// file can supply the flag defaults.
func findConfigFlag(args []string) string {
	for i, arg := range args {
		name, value, hasValue := strings.Cut(strings.TrimLeft(arg, "-"), "=")
		if !strings.HasPrefix(arg, "-") || name != "config" {
			continue
		}
		if hasValue {
			return value
		}
		if i+1 < len(args) {
			return args[i+1]
		}
	}
	return ""
}

func parseEnv(environ []string) map[string]string {
	values := make(map[string]string, len(environ))
	for _, entry := range environ {
		if entry == "" {
			continue
		}
		parts := strings.SplitN(entry, "=", 2)
		if len(parts) != 2 {
			continue
		}
		values[parts[0]] = parts[1]
	}
	return values
}

func envOrDefault(env map[string]string, key, fallback string) string {
	if v, ok := env[key]; ok {
		return v
	}
	return fallback
}

func envOrInt(env map[string]string, key string, fallback int) int {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrBool(env map[string]string, key string, fallback bool) bool {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrDuration(env map[string]string, key string, fallback time.Duration) time.Duration {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return parsed
}

// MustLoad returns configuration or exits.
func MustLoad() Config {
	cfg, err := Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(2)
	}
	return cfg
}

// Validate checks ranges and that palette overrides name known colours.
func Validate(cfg Config) error {
	var errs []error
	if cfg.App.LogCapacity < 1 {
		errs = append(errs, fmt.Errorf("log capacity must be >= 1 (got %d)", cfg.App.LogCapacity))
	}
	if cfg.App.FeedInterval <= 0 {
		errs = append(errs, fmt.Errorf("feed interval must be positive (got %s)", cfg.App.FeedInterval))
	}
	if cfg.App.DoubleClick <= 0 {
		errs = append(errs, fmt.Errorf("double click window must be positive (got %s)", cfg.App.DoubleClick))
	}
	if cfg.App.DialogWidth < 0 {
		errs = append(errs, fmt.Errorf("dialog width must be >= 0 (got %d)", cfg.App.DialogWidth))
	}
	switch cfg.App.MirrorKind {
	case MirrorText, MirrorSQLite:
	default:
		errs = append(errs, fmt.Errorf("mirror kind must be %q or %q (got %q)", MirrorText, MirrorSQLite, cfg.App.MirrorKind))
	}
	if len(cfg.Palette) > 0 {
		if err := theme.Default().Clone().Apply(cfg.Palette); err != nil {
			errs = append(errs, fmt.Errorf("palette: %w", err))
		}
	}
	return errors.Join(errs...)
}
