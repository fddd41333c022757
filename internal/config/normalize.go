package config

import (
	"fmt"
	"strings"
)

func (c *Config) normalize() error {
	c.Annotations.Suffix = normalizeSuffix(c.Annotations.Suffix)
	c.Annotations.SingleClass = strings.TrimSpace(c.Annotations.SingleClass)
	c.Output.Suffix = normalizeSuffix(c.Output.Suffix)
	c.Tokenizer.Strategy = strings.ToLower(strings.TrimSpace(c.Tokenizer.Strategy))
	if c.Tokenizer.Strategy == "" {
		c.Tokenizer.Strategy = defaultTokenizerStrategy
	}

	if strings.TrimSpace(c.RunLog.Dir) == "" {
		c.RunLog.Dir = defaultRunLogDir
	}
	dir, err := expandPath(c.RunLog.Dir)
	if err != nil {
		return fmt.Errorf("run_log.dir: %w", err)
	}
	c.RunLog.Dir = dir

	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	return nil
}

// normalizeSuffix guarantees a leading dot on non-empty suffixes. An empty
// suffix is meaningful (no annotations / stdout output) and stays empty.
func normalizeSuffix(suffix string) string {
	suffix = strings.TrimSpace(suffix)
	if suffix == "" {
		return ""
	}
	if !strings.HasPrefix(suffix, ".") {
		return "." + suffix
	}
	return suffix
}
