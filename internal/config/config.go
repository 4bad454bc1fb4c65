package config

import (
	"errors"

	"github.com/spf13/viper"
)

// Config holds all runtime configuration loaded from environment variables.
type Config struct {
	// Server
	Port int    `mapstructure:"PORT"`
	Env  string `mapstructure:"APP_ENV"` // development | production

	// Firestore
	ProjectID       string `mapstructure:"FIRESTORE_PROJECT_ID"`
	CredentialsFile string `mapstructure:"GOOGLE_APPLICATION_CREDENTIALS"`
	CredentialsJSON string `mapstructure:"GOOGLE_APPLICATION_CREDENTIALS_JSON"`

	// Auth
	JWTSecret            string `mapstructure:"JWT_SECRET"`
	JWTExpirationSeconds int    `mapstructure:"JWT_EXPIRATION_SECONDS"`
}

// Load reads configuration from environment variables (and optional .env file).
func Load() (*Config, error) {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AutomaticEnv()

	// Sensible defaults for development. JWT_SECRET deliberately has no default.
	viper.SetDefault("PORT", 8000)
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("JWT_EXPIRATION_SECONDS", 3600)

	// Optional .env file for local development, ignored if missing.
	_ = viper.ReadInConfig()

	cfg := &Config{}
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validar(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validar enforces the settings the process must not start without.
func (c *Config) Validar() error {
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET no configurado: el proceso no arranca con un secreto por defecto")
	}
	if c.CredentialsFile == "" && c.CredentialsJSON == "" {
		return errors.New("no se encontró la variable de entorno GOOGLE_APPLICATION_CREDENTIALS o GOOGLE_APPLICATION_CREDENTIALS_JSON")
	}
	return nil
}
