// Package config loads process configuration once at startup. The resulting
// Config is treated as immutable for the process lifetime.
package config

import (
	"errors"
	"os"
	"strconv"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Analysis provider selectors.
const (
	ProviderMock   = "mock"
	ProviderOpenAI = "openai"
)

type Config struct {
	// Addr is the HTTP listen address, e.g. ":4000".
	Addr string `koanf:"addr"`

	// MongoURI and MongoDB locate the document store.
	MongoURI string `koanf:"mongo_uri"`
	MongoDB  string `koanf:"mongo_db"`

	// JWTSecret signs and verifies bearer tokens.
	JWTSecret string `koanf:"jwt_secret"`

	// GelfAddr enables GELF UDP log shipping when non-empty.
	GelfAddr string `koanf:"gelf_addr"`

	// AnalysisProvider selects the scoring variant: mock | openai.
	AnalysisProvider string `koanf:"analysis_provider"`

	// OpenAI settings, used only when AnalysisProvider is "openai".
	OpenAIAPIKey      string `koanf:"openai_api_key"`
	OpenAIModel       string `koanf:"openai_model"`
	OpenAITemperature string `koanf:"openai_temperature"`
}

func defaults() *Config {
	return &Config{
		Addr:             ":4000",
		MongoURI:         "mongodb://127.0.0.1:27017",
		MongoDB:          "interview_feedback",
		JWTSecret:        "aif-dev-secret-change-me",
		AnalysisProvider: ProviderMock,
		OpenAIModel:      "gpt-4o-mini",
	}
}

// Load builds a Config by layering, low to high precedence:
//  1. defaults
//  2. YAML file if AIF_CONFIG is set
//  3. environment variables (ADDR, MONGO_URI, JWT_SECRET, ANALYSIS_PROVIDER,
//     OPENAI_API_KEY, OPENAI_MODEL, OPENAI_TEMPERATURE, GELF_ADDR, ...)
func Load() (*Config, error) {
	k := koanf.New(".")

	if path := os.Getenv("AIF_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, err
		}
	}

	envProvider := env.Provider("", ".", strings.ToLower)
	if err := k.Load(envProvider, nil); err != nil {
		return nil, err
	}

	cfg := *defaults()
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, err
	}

	// PORT is honored for parity with the original deployment env.
	if port := os.Getenv("PORT"); port != "" {
		cfg.Addr = ":" + port
	}

	cfg.AnalysisProvider = strings.ToLower(strings.TrimSpace(cfg.AnalysisProvider))
	if cfg.AnalysisProvider == "" {
		cfg.AnalysisProvider = ProviderMock
	}

	if cfg.Addr == "" {
		return nil, errors.New("addr must not be empty")
	}
	if cfg.MongoURI == "" {
		return nil, errors.New("mongo_uri must not be empty")
	}
	return &cfg, nil
}

// Temperature returns the sampling parameter to forward to the model-backed
// scorer, or nil when unset or not numeric.
func (c *Config) Temperature() *float64 {
	raw := strings.TrimSpace(c.OpenAITemperature)
	if raw == "" {
		return nil
	}
	t, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil
	}
	return &t
}
