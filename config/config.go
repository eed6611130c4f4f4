package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

//go:embed config.yml
var embeddedConfig []byte

type Config struct {
	Mode     string `mapstructure:"mode"`
	Dotenv   string `mapstructure:"dotenv"`
	Handlers struct {
		Prometheus struct {
			Port string `mapstructure:"port"`
		} `mapstructure:"prometheus"`
	} `mapstructure:"handlers"`
	Repositories struct {
		Postgres struct {
			Host              string `mapstructure:"host"`
			Password          string `mapstructure:"password"`
			Port              string `mapstructure:"port"`
			Username          string `mapstructure:"username"`
			DB                string `mapstructure:"db"`
			SSLMODE           string `mapstructure:"SSLMODE"`
			MAXCONWAITINGTIME int    `mapstructure:"MAXCONWAITINGTIME"`
		} `mapstructure:"postgres"`
	} `mapstructure:"repositories"`
	// Store holds the connection settings read from STORE_URL / STORE_KEY.
	// When URL is empty the repositories.postgres block is used instead.
	Store  StoreConfig `mapstructure:"store"`
	Server struct {
		HTTPPort string        `mapstructure:"HTTPPort"`
		Timeout  time.Duration `mapstructure:"HTTPTimeout"`
	} `mapstructure:"server"`
	Auth    AuthConfig    `mapstructure:"auth"`
	Ingest  IngestConfig  `mapstructure:"ingest"`
	Scraper ScraperConfig `mapstructure:"scraper"`
}

type StoreConfig struct {
	URL string `mapstructure:"url"`
	Key string `mapstructure:"key"`
}

type AuthConfig struct {
	JWTSecret string        `mapstructure:"jwtSecret"`
	Issuer    string        `mapstructure:"issuer"`
	TokenTTL  time.Duration `mapstructure:"tokenTTL"`
}

type IngestConfig struct {
	SeedFile string `mapstructure:"seedFile"`
}

type ScraperConfig struct {
	BaseURL          string        `mapstructure:"baseURL"`
	Token            string        `mapstructure:"token"`
	Actor            string        `mapstructure:"actor"`
	MaxCrawledPlaces int           `mapstructure:"maxCrawledPlaces"`
	Timeout          time.Duration `mapstructure:"timeout"`
	SearchStrings    []string      `mapstructure:"searchStrings"`
}

// envBindings maps config keys to the environment variables that override them.
var envBindings = map[string]string{
	"store.url":       "STORE_URL",
	"store.key":       "STORE_KEY",
	"scraper.token":   "APIFY_TOKEN",
	"auth.jwtSecret":  "JWT_SECRET",
	"server.HTTPPort": "HTTP_PORT",
	"mode":            "APP_ENV",
}

func InitConfig() (Config, error) {
	var config Config
	v := viper.New()

	// Add file-based config paths
	v.AddConfigPath(".")
	v.AddConfigPath("config")
	v.AddConfigPath("/app/config")

	v.SetConfigName("config")
	v.SetConfigType("yml")

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return Config{}, fmt.Errorf("failed to bind env %s: %w", env, err)
		}
	}

	// Try to load file-based config
	err := v.ReadInConfig()
	if err != nil {
		fmt.Printf("Warning: Failed to find file-based config: %s. Falling back to embedded config.\n", err)
		if err = v.ReadConfig(bytes.NewReader(embeddedConfig)); err != nil {
			return Config{}, fmt.Errorf("failed to read embedded config: %w", err)
		}
	}

	if err = v.Unmarshal(&config); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	fmt.Println("Successfully loaded app configs...")
	return config, nil
}
