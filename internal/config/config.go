package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config structure represents the application configuration
type Config struct {
	Server struct {
		Port        string `yaml:"port" env:"SERVER_PORT"`
		Mode        string `yaml:"mode" env:"SERVER_MODE"`
		StoragePath string `yaml:"storage_path" env:"STORAGE_PATH"`
	} `yaml:"server"`

	Backend struct {
		BaseURL    string `yaml:"base_url" env:"BACKEND_URL"`
		Timeout    string `yaml:"timeout" env:"BACKEND_TIMEOUT"`
		LogoutPath string `yaml:"logout_path" env:"BACKEND_LOGOUT_PATH"`
		LoginPath  string `yaml:"login_path" env:"BACKEND_LOGIN_PATH"`
	} `yaml:"backend"`

	Session struct {
		RedirectDelay   string `yaml:"redirect_delay" env:"SESSION_REDIRECT_DELAY"`
		LoginPath       string `yaml:"login_path" env:"SESSION_LOGIN_PATH"`
		CredentialsPath string `yaml:"credentials_path" env:"SMARTED_CREDENTIALS"`
	} `yaml:"session"`

	Player struct {
		ScriptURL    string `yaml:"script_url" env:"PLAYER_SCRIPT_URL"`
		EmbedBaseURL string `yaml:"embed_base_url" env:"PLAYER_EMBED_BASE_URL"`
	} `yaml:"player"`

	Logging struct {
		Level  string `yaml:"level" env:"LOG_LEVEL"`
		Format string `yaml:"format" env:"LOG_FORMAT"`
	} `yaml:"logging"`
}

// LoadConfig loads configuration from a file and environment variables.
// A missing file is not an error; defaults and env overrides still apply.
func LoadConfig(configPath string) (*Config, error) {
	config := &Config{}
	setDefaults(config)

	if _, err := os.Stat(configPath); err == nil {
		file, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}

		if err := yaml.Unmarshal(file, config); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	if err := applyEnvOverrides(config); err != nil {
		return nil, fmt.Errorf("failed to load from environment: %w", err)
	}

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// setDefaults sets default values for the configuration
func setDefaults(config *Config) {
	config.Server.Port = "8080"
	config.Server.Mode = "development"
	config.Server.StoragePath = filepath.Join(os.TempDir(), "smarted-uploads")

	config.Backend.BaseURL = "http://localhost:3000"
	config.Backend.Timeout = "30s"
	config.Backend.LogoutPath = "/api/auth/logout"
	config.Backend.LoginPath = "/api/auth/login"

	config.Session.RedirectDelay = "1500ms"
	config.Session.LoginPath = "/auth/login"
	config.Session.CredentialsPath = defaultCredentialsPath()

	config.Player.ScriptURL = "https://www.youtube.com/iframe_api"
	config.Player.EmbedBaseURL = "https://www.youtube.com/embed/"

	config.Logging.Level = "info"
	config.Logging.Format = "text"
}

func defaultCredentialsPath() string {
	dir, err := os.UserConfigDir()
	if err != nil || dir == "" {
		return filepath.Join(".smarted", "credentials.yaml")
	}
	return filepath.Join(dir, "smarted", "credentials.yaml")
}

// validateConfig ensures that the configuration is valid
func validateConfig(config *Config) error {
	if strings.TrimSpace(config.Backend.BaseURL) == "" {
		return fmt.Errorf("backend base URL is required")
	}
	u, err := url.Parse(config.Backend.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("backend base URL must be absolute: %q", config.Backend.BaseURL)
	}

	if _, err := time.ParseDuration(config.Backend.Timeout); err != nil {
		return fmt.Errorf("invalid backend timeout format: %w", err)
	}

	if _, err := time.ParseDuration(config.Session.RedirectDelay); err != nil {
		return fmt.Errorf("invalid session redirect delay format: %w", err)
	}

	if !strings.HasPrefix(config.Backend.LogoutPath, "/") {
		return fmt.Errorf("backend logout path must start with '/'")
	}

	return nil
}

// BackendTimeout returns the parsed transport timeout. Zero disables the client timeout.
func (c *Config) BackendTimeout() time.Duration {
	d, _ := time.ParseDuration(c.Backend.Timeout)
	return d
}

// RedirectDelay returns the parsed post-logout redirect delay
func (c *Config) RedirectDelay() time.Duration {
	d, _ := time.ParseDuration(c.Session.RedirectDelay)
	return d
}

// IsProduction reports whether the gateway runs in production mode
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Server.Mode, "production")
}

// GetEnv gets an environment variable or returns a default value
func GetEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
