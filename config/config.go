// Package config resolves runtime settings from defaults, an optional TOML
// file, the environment (including a .env file) and command-line flags,
// each layer overriding the previous one.
package config

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"

	"github.com/lixenwraith/mazegen/maze"
	"github.com/lixenwraith/mazegen/store"
	"github.com/lixenwraith/mazegen/terminal"
)

// ErrInvalid wraps every validation failure
var ErrInvalid = errors.New("config: invalid")

// EnvPrefix prefixes every environment override
const EnvPrefix = "MAZEGEN_"

type Config struct {
	Width   int    `toml:"width"`    // Maze width in cells
	Height  int    `toml:"height"`   // Maze height in cells
	DelayMS int    `toml:"delay_ms"` // Pause between carve steps
	Seed    uint64 `toml:"seed"`     // 0 picks a time-based seed

	Backend string `toml:"backend"` // Terminal surface: tcell or ansi
	Sound   bool   `toml:"sound"`   // Play audio cues
	Debug   bool   `toml:"debug"`   // Write logs/mazegen.log

	Store     string `toml:"store"`      // Snapshot backend: file or redis
	SaveFile  string `toml:"save_file"`  // File backend path
	RedisAddr string `toml:"redis_addr"` // Redis backend address
	RedisKey  string `toml:"redis_key"`  // Redis backend key
}

func Default() Config {
	return Config{
		Width:    20,
		Height:   12,
		DelayMS:  2,
		Backend:  terminal.BackendTcell,
		Store:    store.BackendFile,
		SaveFile: store.DefaultFileName,
		RedisKey: store.DefaultRedisKey,
	}
}

// Delay returns the carve step delay as a duration
func (c Config) Delay() time.Duration {
	return time.Duration(c.DelayMS) * time.Millisecond
}

// StoreOptions maps the snapshot settings onto store.Options
func (c Config) StoreOptions() store.Options {
	return store.Options{
		Backend:   c.Store,
		Path:      c.SaveFile,
		RedisAddr: c.RedisAddr,
		RedisKey:  c.RedisKey,
	}
}

func (c Config) Validate() error {
	if err := maze.CheckSize(c.Width, c.Height); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if c.DelayMS < 0 {
		return fmt.Errorf("%w: negative delay %dms", ErrInvalid, c.DelayMS)
	}
	switch c.Backend {
	case terminal.BackendTcell, terminal.BackendANSI:
	default:
		return fmt.Errorf("%w: unknown backend %q", ErrInvalid, c.Backend)
	}
	switch c.Store {
	case store.BackendFile:
		if c.SaveFile == "" {
			return fmt.Errorf("%w: file store needs save_file", ErrInvalid)
		}
	case store.BackendRedis:
		if c.RedisAddr == "" {
			return fmt.Errorf("%w: redis store needs redis_addr", ErrInvalid)
		}
	default:
		return fmt.Errorf("%w: unknown store %q", ErrInvalid, c.Store)
	}
	return nil
}

// LoadFile overlays the TOML file at path onto c. Keys absent from the
// file keep their current values.
func (c *Config) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(c); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

// LoadEnv overlays MAZEGEN_* variables onto c. Values from envFile (if
// present) apply only where the process environment does not set the key;
// the process environment itself is left untouched.
func (c *Config) LoadEnv(envFile string) error {
	var fileVals map[string]string
	if envFile != "" {
		vals, err := godotenv.Read(envFile)
		switch {
		case err == nil:
			fileVals = vals
		case !errors.Is(err, fs.ErrNotExist):
			log.Printf("[CONFIG] %s not loaded: %v", envFile, err)
		}
	}
	lookup := func(key string) (string, bool) {
		if v, ok := os.LookupEnv(EnvPrefix + key); ok {
			return v, true
		}
		v, ok := fileVals[EnvPrefix+key]
		return v, ok
	}

	var errs []error
	lookupInt := func(key string, dst *int) {
		if v, ok := lookup(key); ok {
			n, err := strconv.Atoi(v)
			if err != nil {
				errs = append(errs, fmt.Errorf("%w: %s%s must be an integer: %v", ErrInvalid, EnvPrefix, key, err))
				return
			}
			*dst = n
		}
	}
	lookupBool := func(key string, dst *bool) {
		if v, ok := lookup(key); ok {
			b, err := strconv.ParseBool(v)
			if err != nil {
				errs = append(errs, fmt.Errorf("%w: %s%s must be a boolean: %v", ErrInvalid, EnvPrefix, key, err))
				return
			}
			*dst = b
		}
	}
	lookupString := func(key string, dst *string) {
		if v, ok := lookup(key); ok {
			*dst = v
		}
	}

	lookupInt("WIDTH", &c.Width)
	lookupInt("HEIGHT", &c.Height)
	lookupInt("DELAY_MS", &c.DelayMS)
	if v, ok := lookup("SEED"); ok {
		seed, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			errs = append(errs, fmt.Errorf("%w: %sSEED must be an unsigned integer: %v", ErrInvalid, EnvPrefix, err))
		} else {
			c.Seed = seed
		}
	}
	lookupString("BACKEND", &c.Backend)
	lookupBool("SOUND", &c.Sound)
	lookupBool("DEBUG", &c.Debug)
	lookupString("STORE", &c.Store)
	lookupString("SAVE_FILE", &c.SaveFile)
	lookupString("REDIS_ADDR", &c.RedisAddr)
	lookupString("REDIS_KEY", &c.RedisKey)

	return errors.Join(errs...)
}

// RegisterFlags binds flags to the fields of c. Defaults shown by -help are
// the values c holds at registration time.
func (c *Config) RegisterFlags(fs *flag.FlagSet) {
	fs.IntVar(&c.Width, "width", c.Width, fmt.Sprintf("Maze width in cells (1-%d)", maze.MaxSize))
	fs.IntVar(&c.Height, "height", c.Height, fmt.Sprintf("Maze height in cells (1-%d)", maze.MaxSize))
	fs.IntVar(&c.DelayMS, "delay", c.DelayMS, "Milliseconds between carve steps (0 disables animation pacing)")
	fs.Uint64Var(&c.Seed, "seed", c.Seed, "Random seed (0 = time based)")
	fs.StringVar(&c.Backend, "backend", c.Backend, "Terminal backend: tcell, ansi")
	fs.BoolVar(&c.Sound, "sound", c.Sound, "Play audio cues")
	fs.BoolVar(&c.Debug, "debug", c.Debug, "Write debug log to logs/")
	fs.StringVar(&c.Store, "store", c.Store, "Snapshot store: file, redis")
	fs.StringVar(&c.SaveFile, "save-file", c.SaveFile, "Snapshot file for the file store")
	fs.StringVar(&c.RedisAddr, "redis-addr", c.RedisAddr, "Redis address for the redis store")
	fs.StringVar(&c.RedisKey, "redis-key", c.RedisKey, "Redis key for the redis store")
}

// Load resolves the full configuration for a command line. The -config and
// -env flags name the TOML and .env files; every other flag overrides both.
func Load(name string, args []string) (Config, error) {
	// First pass only locates the files; errors surface in the second pass
	pre := flag.NewFlagSet(name, flag.ContinueOnError)
	pre.SetOutput(io.Discard)
	configPath, envFile := fileFlags(pre)
	scratch := Default()
	scratch.RegisterFlags(pre)
	_ = pre.Parse(args)

	cfg := Default()
	if *configPath != "" {
		if err := cfg.LoadFile(*configPath); err != nil {
			return cfg, err
		}
	}
	if err := cfg.LoadEnv(*envFile); err != nil {
		return cfg, err
	}

	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fileFlags(fs)
	cfg.RegisterFlags(fs)
	if err := fs.Parse(args); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

func fileFlags(fs *flag.FlagSet) (configPath, envFile *string) {
	configPath = fs.String("config", "", "TOML config file")
	envFile = fs.String("env", ".env", "Environment file loaded before MAZEGEN_* variables")
	return configPath, envFile
}
