package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/innerlog/sift/pkg/sift/internalerr"
)

// Config is the application configuration shared by the batch tools.
type Config struct {
	DBPath    string `yaml:"db_path"`
	Lexicon   string `yaml:"lexicon"`   // optional YAML lexicon override
	Stopwords string `yaml:"stopwords"` // optional YAML stopword override

	Ollama struct {
		BaseURL    string `yaml:"base_url"`
		Model      string `yaml:"model"`
		EmbedModel string `yaml:"embed_model"`
	} `yaml:"ollama"`
}

// Load reads a YAML config file.
func Load(path string) (Config, error) {
	var cfg Config
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("%w: %v", internalerr.ErrInvalidConfig, err)
	}
	return cfg, nil
}

// Stopwords represents the stopword list configuration
type Stopwords struct {
	Terms []string `yaml:"terms"`
}

// LoadStopwords loads stopwords from a YAML file
func LoadStopwords(path string) (*Stopwords, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var sw Stopwords
	if err := yaml.Unmarshal(data, &sw); err != nil {
		return nil, fmt.Errorf("%w: %v", internalerr.ErrInvalidConfig, err)
	}

	return &sw, nil
}
