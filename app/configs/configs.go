package configs

import (
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

type Config struct {
	LLM       LLM       `yaml:"llm"`
	Index     Index     `yaml:"index"`
	Chunking  Chunking  `yaml:"chunking"`
	Retrieval Retrieval `yaml:"retrieval"`
	Prompt    Prompt    `yaml:"prompt"`
	Ingest    Ingest    `yaml:"ingest"`

	// QueryTimeoutSecs bounds one full Ask pipeline run: embedding,
	// search and generation all share this deadline.
	QueryTimeoutSecs int `yaml:"query_timeout_secs" validate:"min=1"`
}

type LLM struct {
	BaseURL        string  `yaml:"base_url" validate:"required,url"`
	APIKey         string  `yaml:"api_key"`
	Model          string  `yaml:"model" validate:"required"`
	EmbeddingModel string  `yaml:"embedding_model" validate:"required"`
	Temperature    float64 `yaml:"temperature" validate:"min=0,max=2"`
	MaxTokens      int     `yaml:"max_tokens" validate:"min=1"`
	TimeoutSecs    int     `yaml:"timeout_secs" validate:"min=1"`
	MaxAttempts    int     `yaml:"max_attempts" validate:"min=1"`
}

type Index struct {
	Backend          string `yaml:"backend" validate:"oneof=memory qdrant"`
	Host             string `yaml:"host"`
	Port             int    `yaml:"port"`
	CollectionPrefix string `yaml:"collection_prefix" validate:"required"`
	VectorSize       int    `yaml:"vector_size" validate:"min=1"`
}

type Chunking struct {
	Size    int `yaml:"size" validate:"min=1"`
	Overlap int `yaml:"overlap" validate:"min=0,ltfield=Size"`
}

type Retrieval struct {
	TopK int `yaml:"top_k" validate:"min=1"`

	// Fallback re-runs an empty search against exactly one designated
	// area, and only when enabled. Never an implicit escalation.
	FallbackArea    string `yaml:"fallback_area"`
	FallbackEnabled bool   `yaml:"fallback_enabled"`
}

type Prompt struct {
	MaxContextChars int `yaml:"max_context_chars" validate:"min=1"`
}

type Ingest struct {
	Folder      string `yaml:"folder"`
	JournalPath string `yaml:"journal_path"`
	DefaultArea string `yaml:"default_area" validate:"required"`
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read configs file: %w", err)
	}

	expanded := os.ExpandEnv(string(data))

	cfg := Default()
	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return nil, fmt.Errorf("parse YAML: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Default() *Config {
	return &Config{
		LLM: LLM{
			BaseURL:        "http://localhost:8000",
			Model:          "Qwen/Qwen2.5-3B-Instruct",
			EmbeddingModel: "BAAI/bge-m3",
			Temperature:    0.2,
			MaxTokens:      512,
			TimeoutSecs:    60,
			MaxAttempts:    3,
		},
		Index: Index{
			Backend:          "qdrant",
			Host:             "localhost",
			Port:             6334,
			CollectionPrefix: "docs",
			VectorSize:       1024,
		},
		Chunking: Chunking{
			Size:    1200,
			Overlap: 150,
		},
		Retrieval: Retrieval{
			TopK:         5,
			FallbackArea: "general",
		},
		Prompt: Prompt{
			MaxContextChars: 12000,
		},
		Ingest: Ingest{
			Folder:      "./rag_data",
			JournalPath: "./data/journal.db",
			DefaultArea: "general",
		},
		QueryTimeoutSecs: 120,
	}
}

func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configs: %w", err)
	}
	if c.Index.Backend == "qdrant" && (c.Index.Host == "" || c.Index.Port == 0) {
		return fmt.Errorf("invalid configs: qdrant backend needs host and port")
	}
	return nil
}

func (c *Config) QueryTimeout() time.Duration {
	return time.Duration(c.QueryTimeoutSecs) * time.Second
}

func (l LLM) Timeout() time.Duration {
	return time.Duration(l.TimeoutSecs) * time.Second
}
