package config

import (
	"errors"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DocumentsConfig locates the source documents.
type DocumentsConfig struct {
	Dir string `yaml:"dir"`
}

// IndexConfig configures chunking and retrieval.
type IndexConfig struct {
	ChunkSize  int `yaml:"chunk_size"`
	MaxResults int `yaml:"max_results"`
}

// LLMConfig configures the generation backend.
type LLMConfig struct {
	URL         string `yaml:"url"`
	Model       string `yaml:"model"`
	TimeoutSecs int    `yaml:"timeout_secs"`
}

// AppConfig is the root application configuration structure.
type AppConfig struct {
	Documents DocumentsConfig `yaml:"documents"`
	Index     IndexConfig     `yaml:"index"`
	LLM       LLMConfig       `yaml:"llm"`
}

// Load reads a config from a specified path. If the file does not exist, returns defaults.
func Load(path string) (*AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return defaultConfig(), nil
		}
		return nil, err
	}
	var cfg AppConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	applyConfigDefaults(&cfg)
	return &cfg, nil
}

// LoadDefault tries ./config.yaml first, then ~/.config/docchat/config.yaml.
// If neither exists, it writes defaults to ~/.config/docchat/config.yaml and returns them.
func LoadDefault() (*AppConfig, string, error) {
	cwdPath := "config.yaml"
	if _, err := os.Stat(cwdPath); err == nil {
		cfg, err := Load(cwdPath)
		return cfg, cwdPath, err
	}
	userPath, err := defaultUserConfigPath()
	if err != nil {
		return nil, "", err
	}
	if _, err := os.Stat(userPath); err == nil {
		cfg, err := Load(userPath)
		return cfg, userPath, err
	}
	cfg := defaultConfig()
	if err := Save(userPath, cfg); err != nil {
		return nil, "", err
	}
	return cfg, userPath, nil
}

// Save writes the config to the given path, creating directories as needed.
func Save(path string, cfg *AppConfig) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func defaultUserConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "docchat", "config.yaml"), nil
}

func defaultConfig() *AppConfig {
	cfg := &AppConfig{}
	applyConfigDefaults(cfg)
	return cfg
}

func applyConfigDefaults(cfg *AppConfig) {
	if cfg.Documents.Dir == "" {
		cfg.Documents.Dir = filepath.Join("data", "PDF")
	}
	if cfg.Index.ChunkSize <= 0 {
		cfg.Index.ChunkSize = 900
	}
	if cfg.Index.MaxResults <= 0 {
		cfg.Index.MaxResults = 4
	}
	if cfg.LLM.URL == "" {
		cfg.LLM.URL = "http://localhost:11434/api/chat"
	}
	if cfg.LLM.Model == "" {
		cfg.LLM.Model = "llama3:latest"
	}
	if cfg.LLM.TimeoutSecs <= 0 {
		cfg.LLM.TimeoutSecs = 120
	}
}
