package config

import (
	"os"
	"strconv"
)

// EnvConfig содержит переопределения из переменных окружения.
// Обязательных переменных нет: пайплайн работает на дефолтах.
type EnvConfig struct {
	ArtifactPath  string // ARTIFACT_PATH: куда писать артефакт
	DataDir       string // DATA_DIR: каталог клиентского kv-хранилища
	RetentionDays int    // RETENTION_DAYS: окно удержания, 0 = из YAML
}

// LoadEnvConfig читает переменные окружения.
func LoadEnvConfig() EnvConfig {
	cfg := EnvConfig{
		ArtifactPath: os.Getenv("ARTIFACT_PATH"),
		DataDir:      envOrDefault("DATA_DIR", "data"),
	}

	if raw := os.Getenv("RETENTION_DAYS"); raw != "" {
		if days, err := strconv.Atoi(raw); err == nil && days > 0 {
			cfg.RetentionDays = days
		}
	}

	return cfg
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
