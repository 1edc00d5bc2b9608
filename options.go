package wavelettrie

import (
	"errors"
	"fmt"

	"go.uber.org/zap"
)

// Config holds the options a Trie is constructed with.
type Config struct {
	Logger *zap.Logger
}

// Apply applies the given options to this Config
func (cfg *Config) Apply(opts ...Option) error {
	for i, opt := range opts {
		if err := opt(cfg); err != nil {
			return fmt.Errorf("wavelettrie option %d failed: %w", i, err)
		}
	}
	return nil
}

// Option type for Trie
type Option func(*Config) error

// DefaultConfig is always applied before the options passed to a constructor.
var DefaultConfig = func(cfg *Config) error {
	cfg.Logger = zap.NewNop()
	return nil
}

// WithLogger sets the logger structural changes are reported to at debug level.
func WithLogger(l *zap.Logger) Option {
	return func(cfg *Config) error {
		if l == nil {
			return errors.New("logger is nil")
		}
		cfg.Logger = l
		return nil
	}
}

func newConfig(opts []Option) (Config, error) {
	var cfg Config
	if err := cfg.Apply(append([]Option{DefaultConfig}, opts...)...); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
