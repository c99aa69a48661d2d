package config

import (
	"sync"
)

// ProviderSettings configures the external places provider.
type ProviderSettings struct {
	BaseURL string `json:"base_url"`
	APIKey  string `json:"api_key"`
}

// Settings holds the remotely-managed portion of the configuration: the
// places provider credentials and the venue categories searched by default.
type Settings struct {
	Provider          ProviderSettings `json:"provider"`
	DefaultCategories []string         `json:"default_categories"`
}

// Config holds all the configuration settings for our application.
type Config struct {
	Port     int
	Env      string
	Mu       sync.RWMutex
	Settings Settings
}

// NewConfig creates a new instance of a Config struct.
func NewConfig(port int, env string, settings Settings) *Config {
	return &Config{
		Port:     port,
		Env:      env,
		Settings: settings,
	}
}

// UpdateSettings safely replaces the current settings.
func (cfg *Config) UpdateSettings(newSettings Settings) {
	cfg.Mu.Lock()
	defer cfg.Mu.Unlock()
	cfg.Settings = newSettings
}

// GetSettings safely returns a copy of the current settings.
// This method should be used to access the settings from other parts of the application.
func (cfg *Config) GetSettings() Settings {
	cfg.Mu.RLock()
	defer cfg.Mu.RUnlock()
	settings := cfg.Settings
	settings.DefaultCategories = append([]string(nil), cfg.Settings.DefaultCategories...)
	return settings
}
