package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type (
	// Root объединяет все конфигурационные блоки пайплайна.
	Root struct {
		Radar Radar `yaml:"radar"`
	}

	// Radar описывает настройки агрегации.
	Radar struct {
		RetentionDays       int    `yaml:"retention_days"`
		MaxItems            int    `yaml:"max_items"`
		FetchTimeoutSeconds int    `yaml:"fetch_timeout_seconds"`
		HarvestLimit        int    `yaml:"harvest_limit"`
		ArtifactPath        string `yaml:"artifact_path"`
	}

	// SourcesRoot описывает инвентарь источников.
	SourcesRoot struct {
		Feeds   []Feed   `yaml:"feeds"`
		Queries []string `yaml:"queries"`
		Pages   []Page   `yaml:"pages"`
	}

	// Feed — прямая синдикационная лента с человекочитаемой меткой.
	Feed struct {
		URL   string `yaml:"url"`
		Label string `yaml:"label"`
	}

	// Page — HTML-страница со списком ссылок (у таких страниц нет ленты).
	Page struct {
		URL   string `yaml:"url"`
		Label string `yaml:"label"`
	}
)

// Defaults для незаполненных полей Radar.
const (
	DefaultRetentionDays = 7
	DefaultMaxItems      = 800
	DefaultHarvestLimit  = 60
)

// LoadRoot читает основной файл конфигурации.
func LoadRoot(path string) (Root, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Root{}, fmt.Errorf("read config: %w", err)
	}

	var cfg Root
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Root{}, fmt.Errorf("unmarshal config: %w", err)
	}
	cfg.Radar.applyDefaults()
	return cfg, nil
}

// LoadSources читает конфиг со списком источников.
func LoadSources(path string) (SourcesRoot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return SourcesRoot{}, fmt.Errorf("read sources config: %w", err)
	}

	var cfg SourcesRoot
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return SourcesRoot{}, fmt.Errorf("unmarshal sources config: %w", err)
	}
	return cfg, nil
}

func (r *Radar) applyDefaults() {
	if r.RetentionDays <= 0 {
		r.RetentionDays = DefaultRetentionDays
	}
	if r.MaxItems <= 0 {
		r.MaxItems = DefaultMaxItems
	}
	if r.HarvestLimit <= 0 {
		r.HarvestLimit = DefaultHarvestLimit
	}
	if r.ArtifactPath == "" {
		r.ArtifactPath = "data/artifact.json"
	}
}
