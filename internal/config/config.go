// Package config loads configs/config.yml into an explicit Config value.
// Services receive the sections they need at construction time; nothing
// outside this package and main reads viper or the process environment.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Port     string `mapstructure:"port"`
	LogLevel string `mapstructure:"log_level"`
	DB       DB     `mapstructure:"db"`
	JWT      JWT    `mapstructure:"jwt"`
	S3       S3     `mapstructure:"s3"`
}

type DB struct {
	Path string `mapstructure:"path"`
}

// JWT holds the signing material for both token kinds. Access and refresh
// tokens use distinct secrets so one cannot stand in for the other.
type JWT struct {
	AccessSecret  string        `mapstructure:"access_secret"`
	RefreshSecret string        `mapstructure:"refresh_secret"`
	AccessTTL     time.Duration `mapstructure:"access_ttl"`
	RefreshTTL    time.Duration `mapstructure:"refresh_ttl"`
}

type S3 struct {
	Bucket        string `mapstructure:"bucket"`
	Endpoint      string `mapstructure:"endpoint"`
	Region        string `mapstructure:"region"`
	AccessKey     string `mapstructure:"access_key"`
	SecretKey     string `mapstructure:"secret_key"`
	PublicBaseURL string `mapstructure:"public_base_url"`
}

const (
	defaultAccessTTL  = 15 * time.Minute
	defaultRefreshTTL = 7 * 24 * time.Hour
)

// Load reads configs/config.yml. Every key can be overridden through the
// environment with a VIDTUBE_ prefix, e.g. VIDTUBE_JWT_ACCESS_SECRET.
func Load() (*Config, error) {
	v := viper.New()
	v.AddConfigPath("configs")
	v.SetConfigName("config")

	v.SetDefault("port", "8080")
	v.SetDefault("log_level", "info")
	v.SetDefault("db.path", "vidtube.db")
	v.SetDefault("jwt.access_ttl", defaultAccessTTL)
	v.SetDefault("jwt.refresh_ttl", defaultRefreshTTL)
	v.SetDefault("jwt.access_secret", "")
	v.SetDefault("jwt.refresh_secret", "")
	v.SetDefault("s3.bucket", "")
	v.SetDefault("s3.endpoint", "")
	v.SetDefault("s3.region", "auto")
	v.SetDefault("s3.access_key", "")
	v.SetDefault("s3.secret_key", "")
	v.SetDefault("s3.public_base_url", "")

	v.SetEnvPrefix("vidtube")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if cfg.JWT.AccessSecret == "" || cfg.JWT.RefreshSecret == "" {
		return nil, fmt.Errorf("jwt.access_secret and jwt.refresh_secret must be set")
	}
	return &cfg, nil
}
