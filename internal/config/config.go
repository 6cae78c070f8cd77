// Package config разбирает флаги командной строки и переменные окружения.
// Переменная окружения имеет приоритет над флагом, значения из .env файла
// используются, только если переменная не задана.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Переменные окружения
const (
	EnvAddr             = "INKBOARD_ADDR"
	EnvDB               = "INKBOARD_DB"
	EnvRedisURL         = "INKBOARD_REDIS_URL"
	EnvLogLevel         = "INKBOARD_LOG_LEVEL"
	EnvServer           = "INKBOARD_SERVER"
	EnvDocument         = "INKBOARD_DOC"
	EnvFlushDelay       = "INKBOARD_FLUSH_DELAY"
	EnvSnapshotInterval = "INKBOARD_SNAPSHOT_INTERVAL"
)

// Значения по умолчанию
const (
	DefaultAddr             = ":8080"
	DefaultServerDB         = "inkboard.db"
	DefaultClientDB         = "inkboard-client.db"
	DefaultServerURL        = "http://localhost:8080"
	DefaultLogLevel         = "info"
	DefaultEnvFile          = ".env"
	DefaultShutdownTimeout  = 10 * time.Second
	DefaultFlushDelay       = 600 * time.Millisecond
	DefaultSnapshotInterval = 50
)

// ErrHelp запрошена справка (-h)
var ErrHelp = flag.ErrHelp

// LookupFunc источник переменных окружения, обычно os.LookupEnv
type LookupFunc func(key string) (string, bool)

type Server struct {
	Addr            string
	DBPath          string
	RedisURL        string // RedisURL пустой, если ретрансляция между экземплярами не нужна
	LogLevel        string
	ShutdownTimeout time.Duration
	ShowVersion     bool
}

type Client struct {
	ServerURL        string
	DBPath           string
	LogLevel         string
	Document         string
	Args             []string // Args команда и её аргументы
	FlushDelay       time.Duration
	SnapshotInterval int64
	ShowVersion      bool
}

// ParseServer разбирает конфигурацию сервера.
func ParseServer(args []string, lookup LookupFunc, output io.Writer) (*Server, error) {
	cfg := &Server{}

	fs := flag.NewFlagSet("inkboard-server", flag.ContinueOnError)
	fs.SetOutput(output)
	fs.StringVar(&cfg.Addr, "addr", DefaultAddr, "HTTP listen address")
	fs.StringVar(&cfg.DBPath, "db", DefaultServerDB, "Path to SQLite database")
	fs.StringVar(&cfg.RedisURL, "redis", "", "Redis URL for broadcast between instances (optional)")
	fs.StringVar(&cfg.LogLevel, "log-level", DefaultLogLevel, "Log level: debug, info, warn, error")
	fs.DurationVar(&cfg.ShutdownTimeout, "shutdown-timeout", DefaultShutdownTimeout, "Graceful shutdown timeout")
	fs.BoolVar(&cfg.ShowVersion, "version", false, "Show version information")
	envFile := fs.String("env", DefaultEnvFile, "Path to .env file")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	env, err := newEnv(lookup, *envFile)
	if err != nil {
		return nil, err
	}
	env.str(EnvAddr, &cfg.Addr)
	env.str(EnvDB, &cfg.DBPath)
	env.str(EnvRedisURL, &cfg.RedisURL)
	env.str(EnvLogLevel, &cfg.LogLevel)

	if cfg.Addr == "" {
		return nil, errors.New("listen address cannot be empty")
	}
	return cfg, nil
}

// ParseClient разбирает конфигурацию CLI клиента.
func ParseClient(args []string, lookup LookupFunc, output io.Writer) (*Client, error) {
	cfg := &Client{}

	fs := flag.NewFlagSet("inkboard", flag.ContinueOnError)
	fs.SetOutput(output)
	fs.StringVar(&cfg.ServerURL, "server", DefaultServerURL, "Server URL")
	fs.StringVar(&cfg.DBPath, "db", DefaultClientDB, "Path to local database")
	fs.StringVar(&cfg.LogLevel, "log-level", "warn", "Log level: debug, info, warn, error")
	fs.StringVar(&cfg.Document, "doc", "", "Document id (default: last opened)")
	fs.DurationVar(&cfg.FlushDelay, "flush-delay", DefaultFlushDelay, "Pause before sending a batch of events")
	fs.Int64Var(&cfg.SnapshotInterval, "snapshot-interval", DefaultSnapshotInterval, "Write a snapshot every N events")
	fs.BoolVar(&cfg.ShowVersion, "version", false, "Show version information")
	envFile := fs.String("env", DefaultEnvFile, "Path to .env file")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	cfg.Args = fs.Args()

	env, err := newEnv(lookup, *envFile)
	if err != nil {
		return nil, err
	}
	env.str(EnvServer, &cfg.ServerURL)
	env.str(EnvDB, &cfg.DBPath)
	env.str(EnvLogLevel, &cfg.LogLevel)
	env.str(EnvDocument, &cfg.Document)
	if err := env.duration(EnvFlushDelay, &cfg.FlushDelay); err != nil {
		return nil, err
	}
	if err := env.int64(EnvSnapshotInterval, &cfg.SnapshotInterval); err != nil {
		return nil, err
	}

	if cfg.FlushDelay < 0 {
		return nil, fmt.Errorf("flush delay must not be negative, got %s", cfg.FlushDelay)
	}
	if cfg.SnapshotInterval <= 0 {
		return nil, fmt.Errorf("snapshot interval must be positive, got %d", cfg.SnapshotInterval)
	}
	return cfg, nil
}

// env объединяет окружение процесса и .env файл
type env struct {
	lookup LookupFunc
	file   map[string]string
}

// newEnv читает .env файл, если он существует.
func newEnv(lookup LookupFunc, path string) (*env, error) {
	if lookup == nil {
		lookup = os.LookupEnv
	}
	e := &env{lookup: lookup}

	if path == "" {
		return e, nil
	}
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return e, nil
		}
		return nil, fmt.Errorf("failed to stat env file: %w", err)
	}
	file, err := godotenv.Read(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read env file %s: %w", path, err)
	}
	e.file = file
	return e, nil
}

func (e *env) get(key string) (string, bool) {
	if v, ok := e.lookup(key); ok && v != "" {
		return v, true
	}
	v, ok := e.file[key]
	return v, ok && v != ""
}

func (e *env) str(key string, dst *string) {
	if v, ok := e.get(key); ok {
		*dst = v
	}
}

func (e *env) duration(key string, dst *time.Duration) error {
	v, ok := e.get(key)
	if !ok {
		return nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fmt.Errorf("invalid %s: %w", key, err)
	}
	*dst = d
	return nil
}

func (e *env) int64(key string, dst *int64) error {
	v, ok := e.get(key)
	if !ok {
		return nil
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid %s: %w", key, err)
	}
	*dst = n
	return nil
}
