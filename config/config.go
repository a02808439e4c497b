// Package config loads environment-driven settings, optionally seeded from a
// .env file.
package config

import (
	"os"

	"github.com/joho/godotenv"
)

// Environment variable names.
const (
	EnvDataDir        = "SMARTBORROW_DATA_DIR"
	EnvStoreDir       = "SMARTBORROW_STORE_DIR"
	EnvStoreBackend   = "SMARTBORROW_STORE_BACKEND"
	EnvLogLevel       = "SMARTBORROW_LOG_LEVEL"
	EnvOpenAIAPIKey   = "OPENAI_API_KEY"
	EnvModelName      = "SMARTBORROW_MODEL"
	EnvEmbeddingModel = "SMARTBORROW_EMBEDDING_MODEL"
)

// Defaults applied when a variable is unset.
const (
	DefaultDataDir        = "data/processed"
	DefaultStoreDir       = "data/results"
	DefaultStoreBackend   = "file"
	DefaultLogLevel       = "info"
	DefaultModelName      = "gpt-4o-mini"
	DefaultEmbeddingModel = "text-embedding-3-small"
)

// Settings holds everything the services need from the environment.
type Settings struct {
	DataDir        string
	StoreDir       string
	StoreBackend   string
	LogLevel       string
	OpenAIAPIKey   string
	ModelName      string
	EmbeddingModel string
}

// Load reads settings from the environment. When envFiles are given they are
// loaded first; a missing .env file is not an error, the environment simply
// wins.
func Load(envFiles ...string) Settings {
	for _, f := range envFiles {
		// Ignore load errors: the file is optional.
		_ = godotenv.Load(f)
	}

	return Settings{
		DataDir:        getenv(EnvDataDir, DefaultDataDir),
		StoreDir:       getenv(EnvStoreDir, DefaultStoreDir),
		StoreBackend:   getenv(EnvStoreBackend, DefaultStoreBackend),
		LogLevel:       getenv(EnvLogLevel, DefaultLogLevel),
		OpenAIAPIKey:   os.Getenv(EnvOpenAIAPIKey),
		ModelName:      getenv(EnvModelName, DefaultModelName),
		EmbeddingModel: getenv(EnvEmbeddingModel, DefaultEmbeddingModel),
	}
}

// HasOpenAI reports whether answer generation and OpenAI embeddings can be
// enabled.
func (s Settings) HasOpenAI() bool {
	return s.OpenAIAPIKey != ""
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
