package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config holds application configuration.
type Config struct {
	Port              string        `env:"PORT" env-default:"8080"`
	Env               string        `env:"ENV" env-default:"dev"`
	DatabaseURL       string        `env:"DATABASE_URL"`
	CORSAllowOrigin   []string      `env:"CORS_ALLOW_ORIGINS" env-separator:"," env-default:"http://localhost:5173"`
	ObjectStoreType   string        `env:"OBJECT_STORE" env-default:"local"`
	LocalStoreDir     string        `env:"LOCAL_STORE_DIR" env-default:"./data"`
	AWSRegion         string        `env:"AWS_REGION"`
	S3Bucket          string        `env:"S3_BUCKET"`
	S3Prefix          string        `env:"S3_PREFIX"`
	SSEKMSKeyID       string        `env:"SSE_KMS_KEY_ID"`
	JWTSecret         string        `env:"JWT_SECRET"`
	MaxUploadBytes    int64         `env:"MAX_UPLOAD_BYTES" env-default:"10485760"`
	ReferenceCacheTTL time.Duration `env:"REFERENCE_CACHE_TTL" env-default:"10m"`
	RateLimitLLM      int           `env:"RATE_LIMIT_LLM_PER_MIN" env-default:"20"`
	RateLimitUpload   int           `env:"RATE_LIMIT_UPLOAD_PER_MIN" env-default:"30"`

	Inference Inference
}

// Inference configures the model provider.
type Inference struct {
	Provider          string        `env:"LLM_PROVIDER" env-default:"openrouter"`
	BaseURL           string        `env:"LLM_BASE_URL"`
	APIKey            string        `env:"LLM_API_KEY"`
	VisionModel       string        `env:"LLM_VISION_MODEL"`
	TextModel         string        `env:"LLM_TEXT_MODEL"`
	Timeout           time.Duration `env:"LLM_TIMEOUT" env-default:"90s"`
	Temperature       float32       `env:"LLM_TEMPERATURE" env-default:"0.2"`
	MaxRetries        int           `env:"LLM_MAX_RETRIES" env-default:"2"`
	RetryBackoff      time.Duration `env:"LLM_RETRY_BACKOFF" env-default:"1200ms"`
	AppReferer        string        `env:"LLM_APP_REFERER"`
	AppTitle          string        `env:"LLM_APP_TITLE" env-default:"PixWeight"`
	VertexProject     string        `env:"VERTEX_PROJECT"`
	VertexLocation    string        `env:"VERTEX_LOCATION" env-default:"us-central1"`
	VertexCredentials string        `env:"VERTEX_CREDENTIALS_FILE"`
}

type preset struct {
	baseURL     string
	visionModel string
	textModel   string
}

var providerPresets = map[string]preset{
	"openrouter": {"https://openrouter.ai/api/v1", "qwen/qwen2.5-vl-32b-instruct", "openai/gpt-4o-mini"},
	"groq":       {"https://api.groq.com/openai/v1", "meta-llama/llama-4-scout-17b-16e-instruct", "llama-3.3-70b-versatile"},
	"openai":     {"https://api.openai.com/v1", "gpt-4o-mini", "gpt-4o-mini"},
	"vertex":     {"", "gemini-1.5-flash", "gemini-1.5-flash"},
}

// Load reads configuration from a local .env file when present, then from
// the process environment, which takes precedence.
func Load() (Config, error) {
	var cfg Config
	var err error
	if _, statErr := os.Stat(".env"); statErr == nil {
		err = cleanenv.ReadConfig(".env", &cfg)
	} else {
		err = cleanenv.ReadEnv(&cfg)
	}
	if err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}
	if err := cfg.normalize(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) normalize() error {
	c.Env = normalizeEnv(c.Env)
	c.ObjectStoreType = normalizeStoreType(c.ObjectStoreType)
	c.CORSAllowOrigin = trimAll(c.CORSAllowOrigin)
	c.Inference.Provider = normalizeProvider(c.Inference.Provider)

	if p, ok := providerPresets[c.Inference.Provider]; ok {
		if c.Inference.BaseURL == "" {
			c.Inference.BaseURL = p.baseURL
		}
		if c.Inference.VisionModel == "" {
			c.Inference.VisionModel = p.visionModel
		}
		if c.Inference.TextModel == "" {
			c.Inference.TextModel = p.textModel
		}
	}
	if c.Inference.MaxRetries < 0 {
		c.Inference.MaxRetries = 0
	}

	if c.Env == "production" {
		if c.DatabaseURL == "" {
			return errors.New("DATABASE_URL is required in production")
		}
		if c.JWTSecret == "" {
			return errors.New("JWT_SECRET is required in production")
		}
	}
	return nil
}

// IsDevLike reports whether the environment allows development shortcuts.
func (c Config) IsDevLike() bool {
	return c.Env == "dev" || c.Env == "local"
}

func trimAll(in []string) []string {
	var out []string
	for _, p := range in {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func normalizeEnv(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "production", "prod":
		return "production"
	case "staging":
		return "staging"
	case "local":
		return "local"
	case "development", "dev":
		return "dev"
	default:
		return "dev"
	}
}

func normalizeStoreType(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "s3":
		return "s3"
	default:
		return "local"
	}
}

func normalizeProvider(raw string) string {
	switch p := strings.ToLower(strings.TrimSpace(raw)); p {
	case "openrouter", "groq", "openai", "vertex", "none":
		return p
	case "":
		return "openrouter"
	default:
		return p
	}
}
