package config

import (
	"errors"
	"fmt"

	"annconv/internal/token"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if _, err := token.ParseStrategy(c.Tokenizer.Strategy); err != nil {
		return fmt.Errorf("tokenizer.strategy: %w", err)
	}
	if c.Segment.MaxEntities <= 0 {
		return errors.New("segment.max_entities must be positive")
	}
	if c.Annotations.Suffix != "" && c.Annotations.Suffix == c.Output.Suffix {
		return errors.New("annotations.suffix and output.suffix must differ")
	}
	switch c.Logging.Format {
	case "auto", "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	return nil
}

// Strategy returns the validated tokenizer strategy.
func (c *Config) Strategy() token.Strategy {
	strategy, err := token.ParseStrategy(c.Tokenizer.Strategy)
	if err != nil {
		return token.StrategyRegex
	}
	return strategy
}
