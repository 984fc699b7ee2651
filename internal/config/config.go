package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server ServerConfig
	DB     DBConfig
	S3     S3Config
	Log    LogConfig
	OCR    OCRConfig
	AI     AIConfig
	Queue  QueueConfig
}

// QueueConfig holds upload job worker settings.
type QueueConfig struct {
	PollIntervalSecs int `mapstructure:"poll_interval_secs"`
	Concurrency      int `mapstructure:"concurrency"`
	JobTimeoutSecs   int `mapstructure:"job_timeout_secs"`
}

// OCRConfig holds text-extraction backend settings.
type OCRConfig struct {
	Backend     string `mapstructure:"backend"`
	TimeoutSecs int    `mapstructure:"timeout_secs"`
	MaxRetries  int    `mapstructure:"max_retries"`
	WorkDir     string `mapstructure:"work_dir"`

	TesseractLanguage string `mapstructure:"tesseract_language"`
	TesseractPSM      int    `mapstructure:"tesseract_psm"`
	TessdataPrefix    string `mapstructure:"tessdata_prefix"`

	TextractRegion    string `mapstructure:"textract_region"`
	TextractAccessKey string `mapstructure:"textract_access_key"`
	TextractSecretKey string `mapstructure:"textract_secret_key"`
	TextractEndpoint  string `mapstructure:"textract_endpoint"`

	VisionAPIKey   string `mapstructure:"vision_api_key"`
	VisionEndpoint string `mapstructure:"vision_endpoint"`
}

// Timeout returns the per-call backend timeout.
func (o *OCRConfig) Timeout() time.Duration {
	if o.TimeoutSecs <= 0 {
		return 30 * time.Second
	}
	return time.Duration(o.TimeoutSecs) * time.Second
}

// AIProviderConfig holds settings for a single language-model provider.
type AIProviderConfig struct {
	Provider     string `mapstructure:"provider"`
	APIKey       string `mapstructure:"api_key"`
	DefaultModel string `mapstructure:"default_model"`
	TimeoutSecs  int    `mapstructure:"timeout_secs"`
}

// AIConfig holds AI-assisted extraction settings with multi-provider support.
type AIConfig struct {
	Enabled bool `mapstructure:"enabled"`

	// Legacy flat fields (single provider)
	Provider     string `mapstructure:"provider"`
	APIKey       string `mapstructure:"api_key"`
	DefaultModel string `mapstructure:"default_model"`
	TimeoutSecs  int    `mapstructure:"timeout_secs"`

	Primary   AIProviderConfig `mapstructure:"primary"`
	Secondary AIProviderConfig `mapstructure:"secondary"`
	Tertiary  AIProviderConfig `mapstructure:"tertiary"`
}

// PrimaryConfig returns the primary provider config, falling back to the flat fields.
func (a *AIConfig) PrimaryConfig() *AIProviderConfig {
	if a.Primary.Provider != "" {
		return &a.Primary
	}
	return &AIProviderConfig{
		Provider:     a.Provider,
		APIKey:       a.APIKey,
		DefaultModel: a.DefaultModel,
		TimeoutSecs:  a.TimeoutSecs,
	}
}

// ProviderChain returns the configured providers in fallback order.
func (a *AIConfig) ProviderChain() []*AIProviderConfig {
	var chain []*AIProviderConfig
	if p := a.PrimaryConfig(); p.Provider != "" {
		chain = append(chain, p)
	}
	if a.Secondary.Provider != "" {
		chain = append(chain, &a.Secondary)
	}
	if a.Tertiary.Provider != "" {
		chain = append(chain, &a.Tertiary)
	}
	return chain
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`

	// AllowedOrigins is the comma-separated CORS origin allow list.
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// DBConfig holds PostgreSQL connection settings.
type DBConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
	MaxOpen  int    `mapstructure:"max_open"`
	MaxIdle  int    `mapstructure:"max_idle"`
}

// DSN returns the PostgreSQL connection string.
func (d *DBConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// S3Config holds AWS S3 settings.
type S3Config struct {
	Region        string `mapstructure:"region"`
	Bucket        string `mapstructure:"bucket"`
	Endpoint      string `mapstructure:"endpoint"`
	AccessKey     string `mapstructure:"access_key"`
	SecretKey     string `mapstructure:"secret_key"`
	MaxFileSizeMB int64  `mapstructure:"max_file_size_mb"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads configuration from environment variables with the ROSTERSCAN_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("ROSTERSCAN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "30s")
	v.SetDefault("server.write_timeout", "30s")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.allowed_origins", "http://localhost:3000")

	// DB defaults
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "rosterscan")
	v.SetDefault("db.password", "rosterscan_secret")
	v.SetDefault("db.name", "rosterscan_db")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open", 25)
	v.SetDefault("db.max_idle", 10)

	// S3 defaults
	v.SetDefault("s3.region", "us-east-1")
	v.SetDefault("s3.bucket", "rosterscan-uploads")
	v.SetDefault("s3.endpoint", "")
	v.SetDefault("s3.max_file_size_mb", 20)

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")

	// OCR defaults
	v.SetDefault("ocr.backend", "local-engine")
	v.SetDefault("ocr.timeout_secs", 30)
	v.SetDefault("ocr.max_retries", 2)
	v.SetDefault("ocr.work_dir", "")
	v.SetDefault("ocr.tesseract_language", "eng")
	v.SetDefault("ocr.tesseract_psm", 6)
	v.SetDefault("ocr.tessdata_prefix", "")
	v.SetDefault("ocr.textract_region", "us-east-1")
	v.SetDefault("ocr.textract_endpoint", "")
	v.SetDefault("ocr.vision_api_key", "")
	v.SetDefault("ocr.vision_endpoint", "")

	// AI defaults (legacy flat)
	v.SetDefault("ai.enabled", false)
	v.SetDefault("ai.provider", "")
	v.SetDefault("ai.api_key", "")
	v.SetDefault("ai.default_model", "")
	v.SetDefault("ai.timeout_secs", 60)

	// AI primary/secondary/tertiary defaults
	for _, slot := range []string{"primary", "secondary", "tertiary"} {
		v.SetDefault("ai."+slot+".provider", "")
		v.SetDefault("ai."+slot+".api_key", "")
		v.SetDefault("ai."+slot+".default_model", "")
		v.SetDefault("ai."+slot+".timeout_secs", 60)
	}

	// Queue defaults
	v.SetDefault("queue.poll_interval_secs", 5)
	v.SetDefault("queue.concurrency", 4)
	v.SetDefault("queue.job_timeout_secs", 300)

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":              "ROSTERSCAN_SERVER_PORT",
		"server.read_timeout":      "ROSTERSCAN_SERVER_READ_TIMEOUT",
		"server.write_timeout":     "ROSTERSCAN_SERVER_WRITE_TIMEOUT",
		"server.environment":       "ROSTERSCAN_SERVER_ENVIRONMENT",
		"server.allowed_origins":   "ROSTERSCAN_SERVER_ALLOWED_ORIGINS",
		"db.host":                  "ROSTERSCAN_DB_HOST",
		"db.port":                  "ROSTERSCAN_DB_PORT",
		"db.user":                  "ROSTERSCAN_DB_USER",
		"db.password":              "ROSTERSCAN_DB_PASSWORD",
		"db.name":                  "ROSTERSCAN_DB_NAME",
		"db.sslmode":               "ROSTERSCAN_DB_SSLMODE",
		"db.max_open":              "ROSTERSCAN_DB_MAX_OPEN",
		"db.max_idle":              "ROSTERSCAN_DB_MAX_IDLE",
		"s3.region":                "ROSTERSCAN_S3_REGION",
		"s3.bucket":                "ROSTERSCAN_S3_BUCKET",
		"s3.endpoint":              "ROSTERSCAN_S3_ENDPOINT",
		"s3.access_key":            "ROSTERSCAN_S3_ACCESS_KEY",
		"s3.secret_key":            "ROSTERSCAN_S3_SECRET_KEY",
		"s3.max_file_size_mb":      "ROSTERSCAN_S3_MAX_FILE_SIZE_MB",
		"log.level":                "ROSTERSCAN_LOG_LEVEL",
		"log.format":               "ROSTERSCAN_LOG_FORMAT",
		"ocr.backend":              "ROSTERSCAN_OCR_BACKEND",
		"ocr.timeout_secs":         "ROSTERSCAN_OCR_TIMEOUT_SECS",
		"ocr.max_retries":          "ROSTERSCAN_OCR_MAX_RETRIES",
		"ocr.work_dir":             "ROSTERSCAN_OCR_WORK_DIR",
		"ocr.tesseract_language":   "ROSTERSCAN_OCR_TESSERACT_LANGUAGE",
		"ocr.tesseract_psm":        "ROSTERSCAN_OCR_TESSERACT_PSM",
		"ocr.tessdata_prefix":      "ROSTERSCAN_OCR_TESSDATA_PREFIX",
		"ocr.textract_region":      "ROSTERSCAN_OCR_TEXTRACT_REGION",
		"ocr.textract_access_key":  "ROSTERSCAN_OCR_TEXTRACT_ACCESS_KEY",
		"ocr.textract_secret_key":  "ROSTERSCAN_OCR_TEXTRACT_SECRET_KEY",
		"ocr.textract_endpoint":    "ROSTERSCAN_OCR_TEXTRACT_ENDPOINT",
		"ocr.vision_api_key":       "ROSTERSCAN_OCR_VISION_API_KEY",
		"ocr.vision_endpoint":      "ROSTERSCAN_OCR_VISION_ENDPOINT",
		"ai.enabled":               "ROSTERSCAN_AI_ENABLED",
		"ai.provider":              "ROSTERSCAN_AI_PROVIDER",
		"ai.api_key":               "ROSTERSCAN_AI_API_KEY",
		"ai.default_model":         "ROSTERSCAN_AI_DEFAULT_MODEL",
		"ai.timeout_secs":          "ROSTERSCAN_AI_TIMEOUT_SECS",
		"queue.poll_interval_secs": "ROSTERSCAN_QUEUE_POLL_INTERVAL_SECS",
		"queue.concurrency":        "ROSTERSCAN_QUEUE_CONCURRENCY",
		"queue.job_timeout_secs":   "ROSTERSCAN_QUEUE_JOB_TIMEOUT_SECS",
	}
	for _, slot := range []string{"primary", "secondary", "tertiary"} {
		for _, field := range []string{"provider", "api_key", "default_model", "timeout_secs"} {
			key := "ai." + slot + "." + field
			envBindings[key] = "ROSTERSCAN_AI_" + strings.ToUpper(slot) + "_" + strings.ToUpper(field)
		}
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Hosting platforms set PORT. Use it if ROSTERSCAN_SERVER_PORT is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("ROSTERSCAN_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:           serverPort,
		ReadTimeout:    v.GetDuration("server.read_timeout"),
		WriteTimeout:   v.GetDuration("server.write_timeout"),
		Environment:    v.GetString("server.environment"),
		AllowedOrigins: splitList(v.GetString("server.allowed_origins")),
	}
	cfg.DB = DBConfig{
		Host:     v.GetString("db.host"),
		Port:     v.GetInt("db.port"),
		User:     v.GetString("db.user"),
		Password: v.GetString("db.password"),
		Name:     v.GetString("db.name"),
		SSLMode:  v.GetString("db.sslmode"),
		MaxOpen:  v.GetInt("db.max_open"),
		MaxIdle:  v.GetInt("db.max_idle"),
	}
	cfg.S3 = S3Config{
		Region:        v.GetString("s3.region"),
		Bucket:        v.GetString("s3.bucket"),
		Endpoint:      v.GetString("s3.endpoint"),
		AccessKey:     v.GetString("s3.access_key"),
		SecretKey:     v.GetString("s3.secret_key"),
		MaxFileSizeMB: v.GetInt64("s3.max_file_size_mb"),
	}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}
	cfg.OCR = OCRConfig{
		Backend:           v.GetString("ocr.backend"),
		TimeoutSecs:       v.GetInt("ocr.timeout_secs"),
		MaxRetries:        v.GetInt("ocr.max_retries"),
		WorkDir:           v.GetString("ocr.work_dir"),
		TesseractLanguage: v.GetString("ocr.tesseract_language"),
		TesseractPSM:      v.GetInt("ocr.tesseract_psm"),
		TessdataPrefix:    v.GetString("ocr.tessdata_prefix"),
		TextractRegion:    v.GetString("ocr.textract_region"),
		TextractAccessKey: v.GetString("ocr.textract_access_key"),
		TextractSecretKey: v.GetString("ocr.textract_secret_key"),
		TextractEndpoint:  v.GetString("ocr.textract_endpoint"),
		VisionAPIKey:      v.GetString("ocr.vision_api_key"),
		VisionEndpoint:    v.GetString("ocr.vision_endpoint"),
	}

	cfg.AI = AIConfig{
		Enabled:      v.GetBool("ai.enabled"),
		Provider:     v.GetString("ai.provider"),
		APIKey:       v.GetString("ai.api_key"),
		DefaultModel: v.GetString("ai.default_model"),
		TimeoutSecs:  v.GetInt("ai.timeout_secs"),
		Primary:      providerConfig(v, "primary"),
		Secondary:    providerConfig(v, "secondary"),
		Tertiary:     providerConfig(v, "tertiary"),
	}

	cfg.Queue = QueueConfig{
		PollIntervalSecs: v.GetInt("queue.poll_interval_secs"),
		Concurrency:      v.GetInt("queue.concurrency"),
		JobTimeoutSecs:   v.GetInt("queue.job_timeout_secs"),
	}

	return cfg, nil
}

func providerConfig(v *viper.Viper, slot string) AIProviderConfig {
	return AIProviderConfig{
		Provider:     v.GetString("ai." + slot + ".provider"),
		APIKey:       v.GetString("ai." + slot + ".api_key"),
		DefaultModel: v.GetString("ai." + slot + ".default_model"),
		TimeoutSecs:  v.GetInt("ai." + slot + ".timeout_secs"),
	}
}

// splitList splits a comma-separated setting, dropping blanks.
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
