package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type AppConfig struct {
	API      *APIConfig      `yaml:"api" mapstructure:"api"`
	Gin      *GinConfig      `yaml:"gin" mapstructure:"gin"`
	Postgres *PostgresConfig `yaml:"postgres" mapstructure:"postgres"`
	Gateway  *GatewayConfig  `yaml:"gateway" mapstructure:"gateway"`
	SMTP     *SMTPConfig     `yaml:"smtp" mapstructure:"smtp"`
}

type APIConfig struct {
	Environment        string `yaml:"environment" mapstructure:"environment"`
	BaseURL            string `yaml:"base_url" mapstructure:"base_url"`
	Port               string `yaml:"port" mapstructure:"port"`
	JWTSigningKey      string `yaml:"jwt_signing_key" mapstructure:"jwt_signing_key"`
	AllowedCORSDomains string `yaml:"allowed_cors_domains" mapstructure:"allowed_cors_domains"`
}

type GinConfig struct {
	Mode string `yaml:"mode" mapstructure:"mode"`
}

type PostgresConfig struct {
	Host     string `yaml:"host" mapstructure:"host"`
	Port     string `yaml:"port" mapstructure:"port"`
	User     string `yaml:"user" mapstructure:"user"`
	Password string `yaml:"password" mapstructure:"password"`
	DB       string `yaml:"db" mapstructure:"db"`
}

// GatewayConfig configures the external payment gateway client.
// Amounts are always sent in minor currency units.
type GatewayConfig struct {
	SecretKey     string        `yaml:"secret_key" mapstructure:"secret_key"`
	WebhookSecret string        `yaml:"webhook_secret" mapstructure:"webhook_secret"`
	Currency      string        `yaml:"currency" mapstructure:"currency"`
	Timeout       time.Duration `yaml:"timeout" mapstructure:"timeout"`
}

type SMTPConfig struct {
	Host     string `yaml:"host" mapstructure:"host"`
	Port     string `yaml:"port" mapstructure:"port"`
	Username string `yaml:"username" mapstructure:"username"`
	Password string `yaml:"password" mapstructure:"password"`
	From     string `yaml:"from" mapstructure:"from"`
}

func Load(configPath string) (*AppConfig, error) {
	viper.SetConfigFile(configPath)

	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("viper.ReadInConfig -> %w", err)
	}

	config := &AppConfig{}
	if err := viper.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("viper.Unmarshal -> %w", err)
	}

	return config, nil
}
