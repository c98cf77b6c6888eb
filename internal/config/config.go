package config

import (
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
)

type Config struct {
	Port              string        `mapstructure:"port"`
	Storage           string        `mapstructure:"storage"` // "memory" or "redis"
	RedisAddr         string        `mapstructure:"redis_addr"`
	RedisPassword     string        `mapstructure:"redis_password"`
	MaxPlayers        int           `mapstructure:"max_players"`
	StatementsPerGame int           `mapstructure:"statements_per_game"`
	CleanupInterval   time.Duration `mapstructure:"cleanup_interval"`
	AdminUser         string        `mapstructure:"admin_user"`
	AdminPass         string        `mapstructure:"admin_pass"`
}

// Load reads an optional config file and the environment. Env vars use the
// upper-cased key names (PORT, STORAGE, REDIS_ADDR, ...).
func Load() (Config, error) {
	v := viper.New()
	v.SetConfigName("swipedeck")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	v.SetDefault("port", "8080")
	v.SetDefault("storage", "memory")
	v.SetDefault("redis_addr", "localhost:6379")
	v.SetDefault("redis_password", "")
	v.SetDefault("max_players", 4)
	v.SetDefault("statements_per_game", 10)
	v.SetDefault("cleanup_interval", "30m")
	v.SetDefault("admin_user", "")
	v.SetDefault("admin_pass", "")

	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		// config file is optional; defaults plus env suffice
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return Config{}, eris.Wrap(err, "failed to read config file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, eris.Wrap(err, "failed to parse config")
	}
	return cfg, nil
}
