// Package config loads and validates traintrack configuration via Viper.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config captures all configuration knobs loaded via Viper.
type Config struct {
	Logging LoggingConfig `mapstructure:"logging"`
	Track   TrackConfig   `mapstructure:"track"`
	Train   TrainConfig   `mapstructure:"train"`
	Server  ServerConfig  `mapstructure:"server"`
	DB      DBConfig      `mapstructure:"db"`
	PubSub  PubSubConfig  `mapstructure:"pubsub"`
	GCS     GCSConfig     `mapstructure:"gcs"`
}

// LoggingConfig toggles zap development features.
type LoggingConfig struct {
	Development bool `mapstructure:"development"`
}

// TrackConfig governs tracker cadence and the dashboard writer.
type TrackConfig struct {
	LogEvery   int    `mapstructure:"log_every"`
	RunsDir    string `mapstructure:"runs_dir"`
	FlushEvery int    `mapstructure:"flush_every"`
}

// TrainConfig sets the demo training job's hyperparameters.
type TrainConfig struct {
	Epochs       int     `mapstructure:"epochs"`
	BatchSize    int     `mapstructure:"batch_size"`
	LearningRate float64 `mapstructure:"learning_rate"`
	Samples      int     `mapstructure:"samples"`
	Features     int     `mapstructure:"features"`
	Seed         int64   `mapstructure:"seed"`
}

// ServerConfig controls the metrics HTTP endpoint.
type ServerConfig struct {
	Enabled bool `mapstructure:"enabled"`
	Port    int  `mapstructure:"port"`
}

// DBConfig controls access to the experiment database.
type DBConfig struct {
	DSN   string `mapstructure:"dsn"`
	Table string `mapstructure:"table"`
}

// PubSubConfig holds metadata for streaming scalar events.
type PubSubConfig struct {
	ProjectID string `mapstructure:"project_id"`
	TopicName string `mapstructure:"topic_name"`
}

// GCSConfig holds metadata for archiving event files to Cloud Storage.
type GCSConfig struct {
	Bucket string `mapstructure:"bucket"`
	Prefix string `mapstructure:"prefix"`
}

// Load builds a Config from disk/environment.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("TRAINTRACK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("logging.development", true)
	v.SetDefault("track.log_every", 1)
	v.SetDefault("track.runs_dir", "runs")
	v.SetDefault("track.flush_every", 128)
	v.SetDefault("train.epochs", 10)
	v.SetDefault("train.batch_size", 32)
	v.SetDefault("train.learning_rate", 0.1)
	v.SetDefault("train.samples", 1024)
	v.SetDefault("train.features", 8)
	v.SetDefault("train.seed", 1)
	v.SetDefault("server.enabled", false)
	v.SetDefault("server.port", 9090)
	v.SetDefault("db.table", "scalars")
}

// Validate enforces required values and reasonable limits.
func (c Config) Validate() error {
	if c.Track.LogEvery < 0 {
		return fmt.Errorf("track.log_every must be >= 0")
	}
	if c.Train.Epochs <= 0 {
		return fmt.Errorf("train.epochs must be > 0")
	}
	if c.Train.BatchSize <= 0 {
		return fmt.Errorf("train.batch_size must be > 0")
	}
	if c.Train.LearningRate <= 0 {
		return fmt.Errorf("train.learning_rate must be > 0")
	}
	if c.Train.Samples <= 0 || c.Train.Features <= 0 {
		return fmt.Errorf("train.samples and train.features must be > 0")
	}
	if c.Server.Enabled && c.Server.Port <= 0 {
		return fmt.Errorf("server.port must be > 0 when the server is enabled")
	}
	if c.PubSub.TopicName != "" && c.PubSub.ProjectID == "" {
		return fmt.Errorf("pubsub.project_id must be set when pubsub.topic_name is set")
	}
	return nil
}
