package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/ik5/wavepcm/protocol"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes environment overrides, e.g. WAVEPCM_ENCODER_BIT_DEPTH.
const EnvPrefix = "WAVEPCM"

var (
	// ErrInvalidConfig indicates a value that fails validation
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrConfigExists is returned by WriteFile when it would overwrite a file
	ErrConfigExists = errors.New("config file already exists")
)

type Config struct {
	Encoder EncoderConfig `mapstructure:"encoder" yaml:"encoder"`
	Quantum QuantumConfig `mapstructure:"quantum" yaml:"quantum"`
	Mode    string        `mapstructure:"mode" yaml:"mode"` // "worker" or "worklet"
	Server  ServerConfig  `mapstructure:"server" yaml:"server"`
	Log     LogConfig     `mapstructure:"log" yaml:"log"`
}

type EncoderConfig struct {
	BitDepth int `mapstructure:"bit_depth" yaml:"bit_depth"`
}

type QuantumConfig struct {
	Frames     int `mapstructure:"frames" yaml:"frames"`           // frames per recorded quantum
	FlushEvery int `mapstructure:"flush_every" yaml:"flush_every"` // quanta between getBuffer in raw mode
}

type ServerConfig struct {
	Addr string `mapstructure:"addr" yaml:"addr"`
	Path string `mapstructure:"path" yaml:"path"`
}

type LogConfig struct {
	Level string `mapstructure:"level" yaml:"level"` // debug, info, warn, error
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Encoder: EncoderConfig{BitDepth: 16},
		Quantum: QuantumConfig{Frames: 128, FlushEvery: 64},
		Mode:    string(protocol.ModeWorker),
		Server:  ServerConfig{Addr: ":8080", Path: "/wavepcm"},
		Log:     LogConfig{Level: "info"},
	}
}

func setDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("encoder.bit_depth", d.Encoder.BitDepth)
	v.SetDefault("quantum.frames", d.Quantum.Frames)
	v.SetDefault("quantum.flush_every", d.Quantum.FlushEvery)
	v.SetDefault("mode", d.Mode)
	v.SetDefault("server.addr", d.Server.Addr)
	v.SetDefault("server.path", d.Server.Path)
	v.SetDefault("log.level", d.Log.Level)
}

// Load reads configFile on top of the defaults and applies WAVEPCM_*
// environment overrides. An empty configFile uses defaults and
// environment only.
func Load(configFile string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) Validate() error {
	switch c.Encoder.BitDepth {
	case 8, 16, 24, 32:
	default:
		return fmt.Errorf("%w: encoder.bit_depth %d (must be 8, 16, 24 or 32)", ErrInvalidConfig, c.Encoder.BitDepth)
	}

	if c.Quantum.Frames < 1 {
		return fmt.Errorf("%w: quantum.frames must be positive, got %d", ErrInvalidConfig, c.Quantum.Frames)
	}
	if c.Quantum.FlushEvery < 1 {
		return fmt.Errorf("%w: quantum.flush_every must be positive, got %d", ErrInvalidConfig, c.Quantum.FlushEvery)
	}

	if _, err := protocol.ParseMode(c.Mode); err != nil {
		return fmt.Errorf("%w: mode: %w", ErrInvalidConfig, err)
	}

	if !strings.HasPrefix(c.Server.Path, "/") {
		return fmt.Errorf("%w: server.path %q must start with /", ErrInvalidConfig, c.Server.Path)
	}

	if _, err := c.SlogLevel(); err != nil {
		return err
	}

	return nil
}

// SlogLevel parses Log.Level.
func (c *Config) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return 0, fmt.Errorf("%w: log.level %q", ErrInvalidConfig, c.Log.Level)
	}

	return level, nil
}

// Marshal renders the configuration as YAML.
func (c *Config) Marshal() ([]byte, error) {
	out, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("error marshaling config: %w", err)
	}

	return out, nil
}

// WriteFile stores the configuration at path, refusing to replace an
// existing file unless force is set.
func (c *Config) WriteFile(path string, force bool) error {
	out, err := c.Marshal()
	if err != nil {
		return err
	}

	flags := os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	if !force {
		flags |= os.O_EXCL
	}

	f, err := os.OpenFile(path, flags, 0o644)
	if errors.Is(err, os.ErrExist) {
		return fmt.Errorf("%w: %s", ErrConfigExists, path)
	}
	if err != nil {
		return fmt.Errorf("error creating config file: %w", err)
	}

	return writeAndClose(f, out)
}

// writeAndClose writes data to w and closes it, reporting the first error.
func writeAndClose(w io.WriteCloser, data []byte) error {
	if _, err := w.Write(data); err != nil {
		_ = w.Close()
		return fmt.Errorf("error writing config file: %w", err)
	}

	if err := w.Close(); err != nil {
		return fmt.Errorf("error closing config file: %w", err)
	}

	return nil
}
