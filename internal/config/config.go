package config

import "time"

type Config struct {
	Source    SourceConfig    `yaml:"source"`
	Target    TargetConfig    `yaml:"target"`
	Logging   LoggingConfig   `yaml:"logging"`
	Workers   WorkerConfig    `yaml:"workers"`
	Retention RetentionConfig `yaml:"retention"`
}

type SourceConfig struct {
	Path  string      `yaml:"path"`
	Watch WatchConfig `yaml:"watch"`
}

type WatchConfig struct {
	Mode         string        `yaml:"mode"`         // "auto", "poll", "fsnotify"
	PollInterval time.Duration `yaml:"pollInterval"` // e.g. 5s
}

type TargetConfig struct {
	Path string `yaml:"path"`
}

type LoggingConfig struct {
	Level string `yaml:"level"` // "debug", "info", "warning", "error", "critical"
	Dir   string `yaml:"dir"`
}

type WorkerConfig struct {
	Count     int `yaml:"count"`
	QueueSize int `yaml:"queueSize"`
}

type RetentionConfig struct {
	Enabled bool          `yaml:"enabled"`
	Cron    string        `yaml:"cron"`   // e.g. "0 3 * * *"
	MaxAge  time.Duration `yaml:"maxAge"` // e.g. 720h
}

// Default returns the configuration used when no file or overrides are given.
func Default() *Config {
	return &Config{
		Source: SourceConfig{
			Watch: WatchConfig{
				Mode:         "auto",
				PollInterval: 5 * time.Second,
			},
		},
		Logging: LoggingConfig{
			Level: "info",
			Dir:   "./logs",
		},
		Workers: WorkerConfig{
			Count:     4,
			QueueSize: 256,
		},
		Retention: RetentionConfig{
			Cron:   "0 3 * * *",
			MaxAge: 30 * 24 * time.Hour,
		},
	}
}
