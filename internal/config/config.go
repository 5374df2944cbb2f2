package config

import "time"

// Config is the root application configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	Auth      AuthConfig      `yaml:"auth"`
	LLM       LLMConfig       `yaml:"llm"`
	STT       STTConfig       `yaml:"stt"`
	Vocab     VocabConfig     `yaml:"vocab"`
	Catalog   CatalogConfig   `yaml:"catalog"`
	Log       LogConfig       `yaml:"log"`
	CORS      CORSConfig      `yaml:"cors"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
	Metrics   MetricsConfig   `yaml:"metrics"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins   string `yaml:"allowed_origins"   env:"CORS_ALLOWED_ORIGINS"   env-default:"*"`
	AllowedMethods   string `yaml:"allowed_methods"   env:"CORS_ALLOWED_METHODS"   env-default:"GET,POST,OPTIONS"`
	AllowedHeaders   string `yaml:"allowed_headers"   env:"CORS_ALLOWED_HEADERS"   env-default:"Authorization,Content-Type"`
	AllowCredentials bool   `yaml:"allow_credentials" env:"CORS_ALLOW_CREDENTIALS" env-default:"true"`
	MaxAge           int    `yaml:"max_age"           env:"CORS_MAX_AGE"           env-default:"86400"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"60s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"15s"`
	// MaxUploadBytes caps the multipart body of a voice turn.
	MaxUploadBytes int64 `yaml:"max_upload_bytes" env:"SERVER_MAX_UPLOAD_BYTES" env-default:"10485760"`
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"                env-required:"true"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"25"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"5"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
	AutoMigrate     bool          `yaml:"auto_migrate"       env:"DATABASE_AUTO_MIGRATE"       env-default:"true"`
}

// AuthConfig holds account and session settings.
type AuthConfig struct {
	SessionSecret    string        `yaml:"session_secret"     env:"AUTH_SESSION_SECRET"     env-required:"true"`
	Issuer           string        `yaml:"issuer"             env:"AUTH_ISSUER"             env-default:"lingua-tutor"`
	SessionTTL       time.Duration `yaml:"session_ttl"        env:"AUTH_SESSION_TTL"        env-default:"720h"`
	PasswordHashCost int           `yaml:"password_hash_cost" env:"AUTH_PASSWORD_HASH_COST" env-default:"12"`
}

// LLMConfig selects and tunes the chat model vendor.
type LLMConfig struct {
	Provider         string        `yaml:"provider"             env:"LLM_PROVIDER"             env-default:"groq"`
	APIKey           string        `yaml:"api_key"              env:"LLM_API_KEY"`
	BaseURL          string        `yaml:"base_url"             env:"LLM_BASE_URL"`
	Model            string        `yaml:"model"                env:"LLM_MODEL"                env-default:"llama-3.3-70b-versatile"`
	Temperature      float64       `yaml:"temperature"          env:"LLM_TEMPERATURE"          env-default:"0.3"`
	MaxTokens        int           `yaml:"max_tokens"           env:"LLM_MAX_TOKENS"           env-default:"500"`
	VoiceTemperature float64       `yaml:"voice_temperature"    env:"LLM_VOICE_TEMPERATURE"    env-default:"0.7"`
	VoiceMaxTokens   int           `yaml:"voice_max_tokens"     env:"LLM_VOICE_MAX_TOKENS"     env-default:"300"`
	Timeout          time.Duration `yaml:"timeout"              env:"LLM_TIMEOUT"              env-default:"30s"`
	JSONMode         bool          `yaml:"json_mode"            env:"LLM_JSON_MODE"            env-default:"true"`
	PromptTemplate   string        `yaml:"prompt_template_path" env:"LLM_PROMPT_TEMPLATE_PATH"`
}

// STTConfig configures the speech-to-text vendor (an OpenAI-compatible
// transcription endpoint). Empty APIKey and BaseURL inherit the LLM values.
type STTConfig struct {
	APIKey  string        `yaml:"api_key"  env:"STT_API_KEY"`
	BaseURL string        `yaml:"base_url" env:"STT_BASE_URL"`
	Model   string        `yaml:"model"    env:"STT_MODEL"    env-default:"whisper-large-v3-turbo"`
	Timeout time.Duration `yaml:"timeout"  env:"STT_TIMEOUT"  env-default:"60s"`
}

// VocabConfig holds word bank settings.
type VocabConfig struct {
	JapaneseSegmentation bool `yaml:"japanese_segmentation" env:"VOCAB_JAPANESE_SEGMENTATION" env-default:"false"`
}

// CatalogConfig points at an optional catalog file replacing the embedded one.
type CatalogConfig struct {
	Path string `yaml:"path" env:"CATALOG_PATH"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// RateLimitConfig holds per-IP request limits.
type RateLimitConfig struct {
	ChatPerMinute int `yaml:"chat_per_minute" env:"RATE_LIMIT_CHAT_PER_MINUTE" env-default:"30"`
	AuthPerMinute int `yaml:"auth_per_minute" env:"RATE_LIMIT_AUTH_PER_MINUTE" env-default:"10"`
}

// MetricsConfig controls the Prometheus scrape endpoint.
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled" env:"METRICS_ENABLED" env-default:"true"`
	Path    string `yaml:"path"    env:"METRICS_PATH"    env-default:"/metrics"`
}
