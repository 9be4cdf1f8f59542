package config

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/vango-dev/reconciler/internal/errors"
	"github.com/vango-dev/reconciler/pkg/fiber"
)

// ConfigFileNames are the file names Load looks for, in order.
var ConfigFileNames = []string{"reconciler.json", "reconciler.yaml", "reconciler.yml"}

const (
	// DefaultPort is the default server port.
	DefaultPort = 8080

	// DefaultHost is the default server host.
	DefaultHost = "localhost"

	// DefaultStreamPath is the default WebSocket endpoint of the stream target.
	DefaultStreamPath = "/ws"

	// DefaultTable is the default table of the SQL target.
	DefaultTable = "reconciler_fibers"
)

// Target kinds.
const (
	TargetMemory = "memory"
	TargetSQLite = "sqlite"
	TargetSQL    = "sql"
	TargetS3     = "s3"
	TargetStream = "stream"
)

// Config represents a complete configuration file.
type Config struct {
	// Name is the project name.
	Name string `json:"name,omitempty" yaml:"name,omitempty"`

	// Root contains fiber.Root settings.
	Root RootConfig `json:"root" yaml:"root"`

	// Target selects and configures the render target.
	Target TargetConfig `json:"target" yaml:"target"`

	// Server contains HTTP server settings for the serve command.
	Server ServerConfig `json:"server" yaml:"server"`

	// Metrics contains Prometheus settings.
	Metrics MetricsConfig `json:"metrics" yaml:"metrics"`

	// Tracing contains OpenTelemetry settings.
	Tracing TracingConfig `json:"tracing" yaml:"tracing"`

	// Log contains logging settings.
	Log LogConfig `json:"log" yaml:"log"`

	// configPath stores the path where the config was loaded from.
	configPath string
}

// RootConfig contains fiber.Root settings.
type RootConfig struct {
	// MaxRendersPerPass bounds one render pass. Zero disables the bound.
	MaxRendersPerPass int `json:"maxRendersPerPass" yaml:"maxRendersPerPass"`

	// DispatchBuffer is the capacity of the dispatch queue.
	DispatchBuffer int `json:"dispatchBuffer" yaml:"dispatchBuffer"`

	// SlowRender is the duration above which renders are logged
	// (e.g., "50ms"). Empty disables slow-render logging.
	SlowRender string `json:"slowRender,omitempty" yaml:"slowRender,omitempty"`
}

// TargetConfig selects and configures the render target.
type TargetConfig struct {
	// Kind is one of memory, sqlite, sql, s3 or stream.
	Kind string `json:"kind" yaml:"kind"`

	// MaxLog bounds the commit log of the memory target. Zero keeps all.
	MaxLog int `json:"maxLog,omitempty" yaml:"maxLog,omitempty"`

	// SQL configures the sqlite and sql targets.
	SQL SQLConfig `json:"sql,omitempty" yaml:"sql,omitempty"`

	// S3 configures the s3 target.
	S3 S3Config `json:"s3,omitempty" yaml:"s3,omitempty"`
}

// SQLConfig configures a database/sql target.
type SQLConfig struct {
	// Driver is the database/sql driver name. The sqlite kind always
	// uses "sqlite".
	Driver string `json:"driver,omitempty" yaml:"driver,omitempty"`

	// DSN is the data source name.
	DSN string `json:"dsn,omitempty" yaml:"dsn,omitempty"`

	// Table is the table name.
	Table string `json:"table,omitempty" yaml:"table,omitempty"`

	// Dialect is sqlite, postgres or mysql. Defaults to the driver name.
	Dialect string `json:"dialect,omitempty" yaml:"dialect,omitempty"`
}

// S3Config configures the S3 target.
type S3Config struct {
	Bucket       string `json:"bucket,omitempty" yaml:"bucket,omitempty"`
	Prefix       string `json:"prefix,omitempty" yaml:"prefix,omitempty"`
	Region       string `json:"region,omitempty" yaml:"region,omitempty"`
	Endpoint     string `json:"endpoint,omitempty" yaml:"endpoint,omitempty"`
	UsePathStyle bool   `json:"usePathStyle,omitempty" yaml:"usePathStyle,omitempty"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Host string `json:"host" yaml:"host"`
	Port int    `json:"port" yaml:"port"`

	// StreamPath is the WebSocket endpoint of the stream target.
	StreamPath string `json:"streamPath" yaml:"streamPath"`
}

// MetricsConfig contains Prometheus settings.
type MetricsConfig struct {
	Enabled   bool   `json:"enabled" yaml:"enabled"`
	Namespace string `json:"namespace,omitempty" yaml:"namespace,omitempty"`
}

// TracingConfig contains OpenTelemetry settings.
type TracingConfig struct {
	Enabled    bool   `json:"enabled" yaml:"enabled"`
	TracerName string `json:"tracerName,omitempty" yaml:"tracerName,omitempty"`
}

// LogConfig contains logging settings.
type LogConfig struct {
	// Level is debug, info, warn or error.
	Level string `json:"level" yaml:"level"`

	// Format is text or json.
	Format string `json:"format" yaml:"format"`
}

// New creates a new Config with default values.
func New() *Config {
	return &Config{
		Name: "reconciler",
		Root: RootConfig{
			MaxRendersPerPass: fiber.DefaultMaxRendersPerPass,
			DispatchBuffer:    fiber.DefaultDispatchBuffer,
		},
		Target: TargetConfig{
			Kind: TargetMemory,
		},
		Server: ServerConfig{
			Host:       DefaultHost,
			Port:       DefaultPort,
			StreamPath: DefaultStreamPath,
		},
		Metrics: MetricsConfig{
			Enabled:   true,
			Namespace: "reconciler",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Find returns the path of the first config file present in dir, or ""
// when there is none.
func Find(dir string) string {
	for _, name := range ConfigFileNames {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// Exists checks if a config file exists in the given directory.
func Exists(dir string) bool {
	return Find(dir) != ""
}

// Load reads configuration from the specified directory. A directory with
// no config file yields the defaults.
func Load(dir string) (*Config, error) {
	path := Find(dir)
	if path == "" {
		return New(), nil
	}
	return LoadFile(path)
}

// LoadFile reads configuration from the specified file path. The format
// is chosen by extension.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.New("R100").Wrap(err)
	}

	cfg := New()
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		err = json.Unmarshal(data, cfg)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, cfg)
	default:
		return nil, errors.New("R103").WithDetail("Unsupported file extension " + strconv.Quote(ext))
	}
	if err != nil {
		return nil, errors.New("R100").
			WithDetail("Failed to parse " + filepath.Base(path) + ": " + err.Error()).
			WithSuggestion("Check that " + filepath.Base(path) + " is valid")
	}

	cfg.configPath = path
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the configuration to the file it was loaded from.
func (c *Config) Save() error {
	if c.configPath == "" {
		return errors.Newf(errors.CategoryConfig, "no config path set")
	}
	return c.SaveTo(c.configPath)
}

// SaveTo writes the configuration to the specified path, as YAML for .yaml
// and .yml paths and JSON otherwise.
func (c *Config) SaveTo(path string) error {
	var (
		data []byte
		err  error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		data, err = yaml.Marshal(c)
	default:
		data, err = json.MarshalIndent(c, "", "  ")
		data = append(data, '\n')
	}
	if err != nil {
		return errors.New("R100").Wrap(err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.New("R100").Wrap(err)
	}
	c.configPath = path
	return nil
}

// Path returns the path where the config was loaded from.
func (c *Config) Path() string {
	return c.configPath
}

// Dir returns the directory containing the config file.
func (c *Config) Dir() string {
	if c.configPath == "" {
		return "."
	}
	return filepath.Dir(c.configPath)
}

// applyDefaults fills in default values for empty fields.
func (c *Config) applyDefaults() {
	if c.Target.Kind == "" {
		c.Target.Kind = TargetMemory
	}
	if c.Target.SQL.Table == "" {
		c.Target.SQL.Table = DefaultTable
	}
	if c.Target.Kind == TargetSQLite {
		c.Target.SQL.Driver = "sqlite"
		if c.Target.SQL.DSN == "" {
			c.Target.SQL.DSN = ":memory:"
		}
	}
	if c.Target.SQL.Dialect == "" {
		c.Target.SQL.Dialect = c.Target.SQL.Driver
	}
	if c.Server.Host == "" {
		c.Server.Host = DefaultHost
	}
	if c.Server.Port == 0 {
		c.Server.Port = DefaultPort
	}
	if c.Server.StreamPath == "" {
		c.Server.StreamPath = DefaultStreamPath
	}
	if c.Metrics.Namespace == "" {
		c.Metrics.Namespace = "reconciler"
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return errors.New("R101").
			WithDetail("server.port must be between 0 and 65535")
	}
	if c.Root.MaxRendersPerPass < 0 {
		return errors.New("R101").
			WithDetail("root.maxRendersPerPass must not be negative")
	}
	if c.Root.DispatchBuffer < 0 {
		return errors.New("R101").
			WithDetail("root.dispatchBuffer must not be negative")
	}
	if _, err := c.SlowRender(); err != nil {
		return errors.New("R101").
			WithDetail("root.slowRender: " + err.Error()).
			WithSuggestion(`Use a Go duration such as "50ms"`)
	}
	if _, err := c.Log.SlogLevel(); err != nil {
		return errors.New("R101").WithDetail(err.Error())
	}
	if c.Log.Format != "text" && c.Log.Format != "json" {
		return errors.New("R101").
			WithDetail("log.format must be text or json, got " + strconv.Quote(c.Log.Format))
	}

	switch c.Target.Kind {
	case TargetMemory, TargetStream, TargetSQLite:
	case TargetSQL:
		if c.Target.SQL.Driver == "" || c.Target.SQL.DSN == "" {
			return errors.New("R102").WithDetail("target.sql.driver and target.sql.dsn are required")
		}
	case TargetS3:
		if c.Target.S3.Bucket == "" {
			return errors.New("R102").WithDetail("target.s3.bucket is required")
		}
	default:
		return errors.New("R102").WithDetail("unknown target kind " + strconv.Quote(c.Target.Kind))
	}
	return nil
}

// SlowRender returns the parsed slow-render threshold, zero when unset.
func (c *Config) SlowRender() (time.Duration, error) {
	if c.Root.SlowRender == "" {
		return 0, nil
	}
	return time.ParseDuration(c.Root.SlowRender)
}

// Address returns the listen address of the server.
func (c *Config) Address() string {
	return c.Server.Host + ":" + strconv.Itoa(c.Server.Port)
}

// RootOptions returns the fiber.Root options for the root settings.
func (c *Config) RootOptions() []fiber.Option {
	return []fiber.Option{
		fiber.WithMaxRendersPerPass(c.Root.MaxRendersPerPass),
		fiber.WithDispatchBuffer(c.Root.DispatchBuffer),
	}
}

// SlogLevel parses the level.
func (l LogConfig) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(l.Level)); err != nil {
		return 0, fmt.Errorf("log.level: %w", err)
	}
	return level, nil
}

// NewLogger builds a logger writing to w.
func (l LogConfig) NewLogger(w io.Writer) *slog.Logger {
	level, err := l.SlogLevel()
	if err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}
	if l.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}
