package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

const (
	EnvEvalWorkers          = "LAUREL_EVAL_WORKERS"
	EnvEvalQueueSize        = "LAUREL_EVAL_QUEUE_SIZE"
	EnvEvalMinEssayChars    = "LAUREL_EVAL_MIN_ESSAY_CHARS"
	EnvEvalGradingTimeout   = "LAUREL_EVAL_GRADING_TIMEOUT"
	EnvEvalSynthesisTimeout = "LAUREL_EVAL_SYNTHESIS_TIMEOUT"
	EnvEvalJobRetention     = "LAUREL_EVAL_JOB_RETENTION"
	EnvEvalSweepInterval    = "LAUREL_EVAL_SWEEP_INTERVAL"
	EnvEvalSweepOnSubmit    = "LAUREL_EVAL_SWEEP_ON_SUBMIT"
)

// EvaluationConfig holds evaluation pipeline and job manager settings.
type EvaluationConfig struct {
	Workers          int    `toml:"workers"`
	QueueSize        int    `toml:"queue_size"`
	MinEssayChars    int    `toml:"min_essay_chars"`
	GradingTimeout   string `toml:"grading_timeout"`
	SynthesisTimeout string `toml:"synthesis_timeout"`
	JobRetention     string `toml:"job_retention"`
	SweepInterval    string `toml:"sweep_interval"`
	SweepOnSubmit    bool   `toml:"sweep_on_submit"`
}

// GradingTimeoutDuration returns GradingTimeout as a time.Duration.
func (c *EvaluationConfig) GradingTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.GradingTimeout)
	return d
}

// SynthesisTimeoutDuration returns SynthesisTimeout as a time.Duration.
func (c *EvaluationConfig) SynthesisTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.SynthesisTimeout)
	return d
}

// JobRetentionDuration returns JobRetention as a time.Duration.
func (c *EvaluationConfig) JobRetentionDuration() time.Duration {
	d, _ := time.ParseDuration(c.JobRetention)
	return d
}

// SweepIntervalDuration returns SweepInterval as a time.Duration.
func (c *EvaluationConfig) SweepIntervalDuration() time.Duration {
	d, _ := time.ParseDuration(c.SweepInterval)
	return d
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *EvaluationConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()
	return c.validate()
}

// Merge overwrites fields from overlay. Boolean fields always apply;
// numeric and string fields only apply when non-zero.
func (c *EvaluationConfig) Merge(overlay *EvaluationConfig) {
	c.SweepOnSubmit = overlay.SweepOnSubmit

	if overlay.Workers != 0 {
		c.Workers = overlay.Workers
	}
	if overlay.QueueSize != 0 {
		c.QueueSize = overlay.QueueSize
	}
	if overlay.MinEssayChars != 0 {
		c.MinEssayChars = overlay.MinEssayChars
	}
	if overlay.GradingTimeout != "" {
		c.GradingTimeout = overlay.GradingTimeout
	}
	if overlay.SynthesisTimeout != "" {
		c.SynthesisTimeout = overlay.SynthesisTimeout
	}
	if overlay.JobRetention != "" {
		c.JobRetention = overlay.JobRetention
	}
	if overlay.SweepInterval != "" {
		c.SweepInterval = overlay.SweepInterval
	}
}

func (c *EvaluationConfig) loadDefaults() {
	if c.Workers == 0 {
		c.Workers = 3
	}
	if c.QueueSize == 0 {
		c.QueueSize = 256
	}
	if c.MinEssayChars == 0 {
		c.MinEssayChars = 100
	}
	if c.GradingTimeout == "" {
		c.GradingTimeout = "2m"
	}
	if c.SynthesisTimeout == "" {
		c.SynthesisTimeout = "2m"
	}
	if c.JobRetention == "" {
		c.JobRetention = "5m"
	}
	if c.SweepInterval == "" {
		c.SweepInterval = "1m"
	}
}

func (c *EvaluationConfig) loadEnv() {
	if v := os.Getenv(EnvEvalWorkers); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Workers = n
		}
	}
	if v := os.Getenv(EnvEvalQueueSize); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.QueueSize = n
		}
	}
	if v := os.Getenv(EnvEvalMinEssayChars); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.MinEssayChars = n
		}
	}
	if v := os.Getenv(EnvEvalGradingTimeout); v != "" {
		c.GradingTimeout = v
	}
	if v := os.Getenv(EnvEvalSynthesisTimeout); v != "" {
		c.SynthesisTimeout = v
	}
	if v := os.Getenv(EnvEvalJobRetention); v != "" {
		c.JobRetention = v
	}
	if v := os.Getenv(EnvEvalSweepInterval); v != "" {
		c.SweepInterval = v
	}
	if v := os.Getenv(EnvEvalSweepOnSubmit); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.SweepOnSubmit = b
		}
	}
}

func (c *EvaluationConfig) validate() error {
	if c.Workers < 1 {
		return fmt.Errorf("workers must be positive")
	}
	if c.QueueSize < 1 {
		return fmt.Errorf("queue_size must be positive")
	}
	if c.MinEssayChars < 1 {
		return fmt.Errorf("min_essay_chars must be positive")
	}
	if _, err := time.ParseDuration(c.GradingTimeout); err != nil {
		return fmt.Errorf("invalid grading_timeout: %w", err)
	}
	if _, err := time.ParseDuration(c.SynthesisTimeout); err != nil {
		return fmt.Errorf("invalid synthesis_timeout: %w", err)
	}
	if _, err := time.ParseDuration(c.JobRetention); err != nil {
		return fmt.Errorf("invalid job_retention: %w", err)
	}
	if _, err := time.ParseDuration(c.SweepInterval); err != nil {
		return fmt.Errorf("invalid sweep_interval: %w", err)
	}
	return nil
}
