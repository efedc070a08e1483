package config

import (
	"encoding/json"
	"fmt"
	"os"
)

// DefaultPath is where the dashboard looks for its settings file.
const DefaultPath = "dashboard_config.json"

// Config holds the dashboard settings. Zero values fall back to defaults on
// load, so a partial file is fine.
type Config struct {
	UserName        string `json:"user_name"`
	JournalPath     string `json:"journal_path"`
	LogoPath        string `json:"logo_path"`
	Timezone        string `json:"timezone"`
	CalendarID      string `json:"calendar_id"`
	TokenFile       string `json:"token_file"`
	CredentialsFile string `json:"credentials_file"`
	QuoteKeyFile    string `json:"quote_key_file"`
}

// Default returns the built-in settings used when no file exists.
func Default() Config {
	return Config{
		UserName:        "Prof. Cosmic",
		LogoPath:        "logo.png",
		CalendarID:      "primary",
		TokenFile:       "token.json",
		CredentialsFile: "credentials.json",
	}
}

// Load reads the settings file and merges it over the defaults. A missing
// or corrupt file yields the defaults; the dashboard must stay usable.
func Load(path string) Config {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg
	}
	var file Config
	if err := json.Unmarshal(data, &file); err != nil {
		return cfg
	}
	merge(&cfg, file)
	return cfg
}

// FromEnv overlays environment variables on top of the loaded settings.
func (c Config) FromEnv() Config {
	merge(&c, Config{
		UserName:     os.Getenv("DASHBOARD_USER_NAME"),
		JournalPath:  os.Getenv("JOURNAL_PATH"),
		Timezone:     os.Getenv("PRIMARY_TIMEZONE"),
		CalendarID:   os.Getenv("CALENDAR_ID"),
		TokenFile:    os.Getenv("TOKEN_FILE"),
		QuoteKeyFile: os.Getenv("QUOTE_KEY_FILE"),
	})
	return c
}

// Save writes the settings as indented JSON.
func Save(path string, cfg Config) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

func merge(dst *Config, over Config) {
	if over.UserName != "" {
		dst.UserName = over.UserName
	}
	if over.JournalPath != "" {
		dst.JournalPath = over.JournalPath
	}
	if over.LogoPath != "" {
		dst.LogoPath = over.LogoPath
	}
	if over.Timezone != "" {
		dst.Timezone = over.Timezone
	}
	if over.CalendarID != "" {
		dst.CalendarID = over.CalendarID
	}
	if over.TokenFile != "" {
		dst.TokenFile = over.TokenFile
	}
	if over.CredentialsFile != "" {
		dst.CredentialsFile = over.CredentialsFile
	}
	if over.QuoteKeyFile != "" {
		dst.QuoteKeyFile = over.QuoteKeyFile
	}
}
