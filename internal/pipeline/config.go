package pipeline

import (
	"fmt"
	"os"

	"github.com/ilyakaznacheev/cleanenv"

	"github.com/surayt/turoyo-glossary/internal/domain"
)

// Config holds pipeline settings.
type Config struct {
	Workers      int    `yaml:"workers"       env:"GLOSSARY_WORKERS"       env-default:"4"`
	LogLevel     string `yaml:"log_level"     env:"GLOSSARY_LOG_LEVEL"     env-default:"info"`
	LogFormat    string `yaml:"log_format"    env:"GLOSSARY_LOG_FORMAT"    env-default:"text"`
	ExportIndent bool   `yaml:"export_indent" env:"GLOSSARY_EXPORT_INDENT" env-default:"true"`
}

// LoadConfig reads pipeline configuration from a YAML file and
// environment variables. Priority: ENV > YAML > defaults (via
// env-default tags).
func LoadConfig(path string) (*Config, error) {
	var cfg Config

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := cleanenv.ReadConfig(path, &cfg); err != nil {
				return nil, fmt.Errorf("pipeline config: read %s: %w", path, err)
			}
			return &cfg, cfg.Validate()
		}
		return nil, fmt.Errorf("pipeline config: file %s not found", path)
	}

	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("pipeline config: read env: %w", err)
	}
	return &cfg, cfg.Validate()
}

// Validate checks the loaded values.
func (c *Config) Validate() error {
	if c.Workers < 1 {
		return fmt.Errorf("%w: workers must be positive, got %d", domain.ErrInvalidConfig, c.Workers)
	}
	return nil
}
