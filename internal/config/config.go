package config

import (
	"os"

	"clienthub/internal/models"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	Server  ServerConfig    `yaml:"server"`
	Auth    AuthConfig      `yaml:"auth"`
	App     models.Settings `yaml:"app"`
	Monitor MonitorConfig   `yaml:"monitor"`
}

// ServerConfig represents server configuration
type ServerConfig struct {
	Port string `yaml:"port"`
	Mode string `yaml:"mode"` // debug/release
}

// AuthConfig represents the admin account configuration
type AuthConfig struct {
	Username  string `yaml:"username"`
	Password  string `yaml:"password"`
	JWTSecret string `yaml:"jwt_secret"`
}

// MonitorConfig represents background status-refresh configuration
type MonitorConfig struct {
	StatusRefresh string `yaml:"status_refresh"` // Cron expression
}

// LoadConfig loads configuration from a YAML file
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, err
	}

	applyDefaults(&config)
	return &config, nil
}

// applyDefaults fills in anything the config file left out
func applyDefaults(cfg *Config) {
	if cfg.Server.Port == "" {
		cfg.Server.Port = "8080"
	}
	if cfg.Auth.Username == "" {
		cfg.Auth.Username = "admin"
	}
	if cfg.Monitor.StatusRefresh == "" {
		cfg.Monitor.StatusRefresh = "0 * * * *"
	}
	if cfg.App.AppName == "" {
		cfg.App.AppName = "ClientHub Pro"
	}
	if cfg.App.Currency == "" {
		cfg.App.Currency = "₹"
	}
	if cfg.App.MonthlyGoal == 0 {
		cfg.App.MonthlyGoal = 100000
	}
	if cfg.App.MessageFrequency == 0 {
		cfg.App.MessageFrequency = 3
	}
	t := &cfg.App.Templates
	if t.Reminder == "" {
		t.Reminder = "Hi {name}, your subscription for {website} expires in {days} days. Amount: {currency}{price}"
	}
	if t.Critical == "" {
		t.Critical = "URGENT: {name}, your {website} subscription expires in {days} days! Please renew to avoid service interruption."
	}
	if t.Expired == "" {
		t.Expired = "Hi {name}, your subscription for {website} has expired. Please renew immediately."
	}
	if t.Welcome == "" {
		t.Welcome = "Welcome {name}! Your subscription for {website} is now active."
	}
}
