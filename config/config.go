package config

import (
	"errors"
	"os"
	"sync"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Auth     AuthConfig     `yaml:"auth"`
	Cleanup  CleanupConfig  `yaml:"cleanup"`
	Logger   LoggerConfig   `yaml:"logger"`
}

type ServerConfig struct {
	Port         string `yaml:"port"`
	Host         string `yaml:"host"`
	ReadTimeout  int    `yaml:"readTimeout"`
	WriteTimeout int    `yaml:"writeTimeout"`
}

type DatabaseConfig struct {
	Host         string `yaml:"host"`
	Port         string `yaml:"port"`
	User         string `yaml:"user"`
	Password     string `yaml:"password"`
	DBName       string `yaml:"dbname"`
	SSLMode      string `yaml:"sslmode"`
	MaxIdleConns int    `yaml:"maxIdleConns"`
	MaxOpenConns int    `yaml:"maxOpenConns"`
	MaxLifetime  int    `yaml:"maxLifetime"` // in minutes
}

type AuthConfig struct {
	JWTSecret          string `yaml:"jwtSecret"`
	AccessTokenMinutes int    `yaml:"accessTokenMinutes"`
	RefreshTokenDays   int    `yaml:"refreshTokenDays"`
}

type CleanupConfig struct {
	RevokedTokensHours int `yaml:"revokedTokensHours"` // purge interval for expired blacklist rows
}

type LoggerConfig struct {
	Level      string `yaml:"level"`
	OutputPath string `yaml:"outputPath"`
}

var (
	config *Config
	once   sync.Once
)

// Load reads the configuration file and returns a Config struct
func Load(configPath string) (*Config, error) {
	var loadErr error
	once.Do(func() {
		cfg := &Config{}

		// Read the config file
		data, err := os.ReadFile(configPath)
		if err != nil {
			loadErr = err
			return
		}

		// Unmarshal the YAML into the config struct
		if err := yaml.Unmarshal(data, cfg); err != nil {
			loadErr = err
			return
		}

		// Override with environment variables if they exist
		if envPort := os.Getenv("SERVER_PORT"); envPort != "" {
			cfg.Server.Port = envPort
		}
		if dbHost := os.Getenv("DB_HOST"); dbHost != "" {
			cfg.Database.Host = dbHost
		}
		if dbPort := os.Getenv("DB_PORT"); dbPort != "" {
			cfg.Database.Port = dbPort
		}
		if dbUser := os.Getenv("DB_USER"); dbUser != "" {
			cfg.Database.User = dbUser
		}
		if dbPass := os.Getenv("DB_PASSWORD"); dbPass != "" {
			cfg.Database.Password = dbPass
		}
		if dbName := os.Getenv("DB_NAME"); dbName != "" {
			cfg.Database.DBName = dbName
		}
		if jwtSecret := os.Getenv("JWT_SECRET"); jwtSecret != "" {
			cfg.Auth.JWTSecret = jwtSecret
		}

		if cfg.Auth.AccessTokenMinutes <= 0 {
			cfg.Auth.AccessTokenMinutes = 15
		}
		if cfg.Auth.RefreshTokenDays <= 0 {
			cfg.Auth.RefreshTokenDays = 7
		}
		if cfg.Cleanup.RevokedTokensHours <= 0 {
			cfg.Cleanup.RevokedTokensHours = 24
		}

		if err := cfg.Validate(); err != nil {
			loadErr = err
			return
		}

		config = cfg
	})

	if loadErr != nil {
		return nil, loadErr
	}
	return config, nil
}

// Validate checks settings the server cannot start without
func (c *Config) Validate() error {
	if c.Auth.JWTSecret == "" {
		return errors.New("auth.jwtSecret is not configured")
	}
	return nil
}

// Get returns the loaded configuration
func Get() *Config {
	if config == nil {
		panic("Config not loaded")
	}
	return config
}

// GetDSN returns the PostgreSQL connection string
func (c *DatabaseConfig) GetDSN() string {
	return "postgresql://" + c.User + ":" + c.Password + "@" + c.Host + ":" + c.Port + "/" + c.DBName + "?sslmode=" + c.SSLMode
}
