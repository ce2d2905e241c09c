package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the review engine.
type Config struct {
	Server      ServerConfig      `mapstructure:"server"`
	Database    DatabaseConfig    `mapstructure:"database"`
	Redis       RedisConfig       `mapstructure:"redis"`
	Transcriber TranscriberConfig `mapstructure:"transcriber"`
	VerseText   VerseTextConfig   `mapstructure:"versetext"`
	Engine      EngineConfig      `mapstructure:"engine"`
	Log         LogConfig         `mapstructure:"log"`
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
}

// DatabaseConfig holds PostgreSQL configuration.
type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Name     string `mapstructure:"name"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	SSLMode  string `mapstructure:"sslmode"`
	LogSQL   bool   `mapstructure:"log_sql"`
}

// RedisConfig holds the cache and event bus connection.
type RedisConfig struct {
	URI string `mapstructure:"uri"`
}

// TranscriberConfig holds the speech-to-text provider settings.
type TranscriberConfig struct {
	APIKey  string `mapstructure:"api_key"`
	BaseURL string `mapstructure:"base_url"`
	Model   string `mapstructure:"model"`
}

// VerseTextConfig holds the verse text API settings.
type VerseTextConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	APIKey  string        `mapstructure:"api_key"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// EngineConfig tunes analysis caching and provider deadlines.
type EngineConfig struct {
	VerseTextTTL    time.Duration `mapstructure:"verse_text_ttl"`
	AnalysisTTL     time.Duration `mapstructure:"analysis_ttl"`
	ProviderTimeout time.Duration `mapstructure:"provider_timeout"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads configuration from file and environment variables.
func Load() (*Config, error) {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")

	setDefaults()

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	return &config, nil
}

func setDefaults() {
	viper.SetDefault("server.host", "localhost")
	viper.SetDefault("server.port", 8080)

	viper.SetDefault("database.host", "localhost")
	viper.SetDefault("database.port", 5432)
	viper.SetDefault("database.name", "murajaah")
	viper.SetDefault("database.user", "postgres")
	viper.SetDefault("database.password", "postgres")
	viper.SetDefault("database.sslmode", "disable")
	viper.SetDefault("database.log_sql", false)

	viper.SetDefault("redis.uri", "redis://localhost:6379/0")

	viper.SetDefault("transcriber.model", "whisper-1")

	viper.SetDefault("versetext.base_url", "https://api.quran.com/api/v4")
	viper.SetDefault("versetext.timeout", 10*time.Second)

	viper.SetDefault("engine.verse_text_ttl", 30*24*time.Hour)
	viper.SetDefault("engine.analysis_ttl", 24*time.Hour)
	viper.SetDefault("engine.provider_timeout", 30*time.Second)

	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.format", "json")
}

// DatabaseURL returns the PostgreSQL connection string.
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

// Addr returns the HTTP listen address.
func (c *ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
