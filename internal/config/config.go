package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/xxxsen/common/logger"
)

type Config struct {
	VaultRoot    string           `json:"vault_root"`
	OutputDir    string           `json:"output_dir"`
	OneDriveBase string           `json:"onedrive_base"`
	PromptsDir   string           `json:"prompts_dir"`
	ScanSpec     string           `json:"scan_spec"`
	LogConfig    logger.LogConfig `json:"log_config"`
	AI           AIConfig         `json:"ai"`
	Chunking     ChunkingConfig   `json:"chunking"`
	Cache        CacheConfig      `json:"cache"`
}

// AIConfig selects the generation backend. An empty provider is valid: the
// tool then writes notes without AI summaries.
type AIConfig struct {
	Provider  string                 `json:"provider"`
	Model     string                 `json:"model"`
	Timeout   int                    `json:"timeout"`
	Data      map[string]interface{} `json:"data"`
	Fallbacks []FallbackConfig       `json:"fallbacks"`
}

type FallbackConfig struct {
	Provider string                 `json:"provider"`
	Model    string                 `json:"model"`
	Data     map[string]interface{} `json:"data"`
}

type ChunkingConfig struct {
	Threshold int `json:"threshold"`
	ChunkSize int `json:"chunk_size"`
	Overlap   int `json:"overlap"`
}

type CacheConfig struct {
	Size     int `json:"size"`
	TTLHours int `json:"ttl_hours"`
}

func Load(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	var cfg Config
	if err := json.NewDecoder(file).Decode(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if cfg.VaultRoot == "" {
		return nil, fmt.Errorf("vault_root is required")
	}
	if cfg.OutputDir == "" {
		return nil, fmt.Errorf("output_dir is required")
	}
	if cfg.LogConfig.Level == "" {
		cfg.LogConfig.Level = "info"
	}
	if cfg.AI.Provider != "" && cfg.AI.Model == "" {
		return nil, fmt.Errorf("ai.model is required when ai.provider is set")
	}
	if cfg.AI.Timeout == 0 {
		cfg.AI.Timeout = 120
	}
	if cfg.Chunking.Threshold == 0 {
		cfg.Chunking.Threshold = 12000
	}
	if cfg.Chunking.ChunkSize == 0 {
		cfg.Chunking.ChunkSize = 8000
	}
	if cfg.Chunking.Overlap == 0 {
		cfg.Chunking.Overlap = 500
	}
	if cfg.Chunking.Overlap >= cfg.Chunking.ChunkSize {
		return nil, fmt.Errorf("chunking.overlap must be smaller than chunking.chunk_size")
	}
	if cfg.Cache.Size == 0 {
		cfg.Cache.Size = 4096
	}
	if cfg.Cache.TTLHours == 0 {
		cfg.Cache.TTLHours = 24
	}
	return &cfg, nil
}
