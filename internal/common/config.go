package common

import (
	"os"
	"strconv"
	"time"
)

// Provider names for the hosted model backends.
const (
	ProviderGemini = "gemini"
	ProviderGroq   = "groq"
)

// Config holds all application configuration. It is built once at process
// start and passed down explicitly; components never read the environment.
type Config struct {
	Server  ServerConfig
	OCR     OCRConfig
	LLM     LLMConfig
	Store   StoreConfig
	Imaging ImagingConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	HTTPAddr       string
	MaxUploadBytes int64
}

// OCRConfig holds OCR engine configuration.
type OCRConfig struct {
	Tesseract     string  // binary name or absolute path
	Language      string  // default "eng"
	PSM           int     // page segmentation mode; 1 = auto with orientation detection
	MinConfidence float32 // per-line detection confidence floor (0..1)
}

// LLMConfig holds hosted-model configuration for both providers.
type LLMConfig struct {
	Provider    string // "gemini" (multimodal) or "groq" (OCR + text-only)
	GeminiKey   string
	GeminiModel string
	GroqKey     string
	GroqModel   string
	Timeout     time.Duration
}

// StoreConfig holds the job-history store configuration.
type StoreConfig struct {
	// DBPath is the sqlite file for the extraction job log. Empty disables
	// job history (and the export endpoint).
	DBPath string
}

// ImagingConfig holds normalizer configuration.
type ImagingConfig struct {
	// DebugDir receives timestamped snapshots of the input and normalized
	// images. Empty disables snapshots. Snapshots are never read back.
	DebugDir string
	// SkipNormalize bypasses the preprocessing pipeline entirely.
	SkipNormalize bool
}

// LoadConfig loads configuration from environment variables.
func LoadConfig() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPAddr:       getEnv("HTTP_ADDR", ":8080"),
			MaxUploadBytes: int64(getEnvAsInt("MAX_UPLOAD_MB", 10)) * 1024 * 1024,
		},
		OCR: OCRConfig{
			Tesseract:     getEnv("TESSERACT_BIN", "tesseract"),
			Language:      getEnv("TESSERACT_LANG", "eng"),
			PSM:           getEnvAsInt("TESSERACT_PSM", 1),
			MinConfidence: getEnvAsFloat32("OCR_MIN_CONFIDENCE", 0.5),
		},
		LLM: LLMConfig{
			Provider:    getEnv("MODEL_PROVIDER", ProviderGemini),
			GeminiKey:   getEnv("GOOGLE_API_KEY", ""),
			GeminiModel: getEnv("GEMINI_MODEL", "gemini-2.0-flash"),
			GroqKey:     getEnv("GROQ_API_KEY", ""),
			GroqModel:   getEnv("GROQ_MODEL", "llama3-70b-8192"),
			Timeout:     getEnvAsDuration("MODEL_TIMEOUT", 8*time.Second),
		},
		Store: StoreConfig{
			DBPath: getEnv("JOBS_DB_PATH", "./lentra.db"),
		},
		Imaging: ImagingConfig{
			DebugDir:      getEnv("DEBUG_IMAGE_DIR", ""),
			SkipNormalize: getEnvAsBool("SKIP_NORMALIZE", false),
		},
	}
}

// Validate checks the loaded configuration. A missing credential for the
// selected provider is a startup-time error, not a per-request one.
func (c *Config) Validate() error {
	switch c.LLM.Provider {
	case ProviderGemini:
		if c.LLM.GeminiKey == "" {
			return NewAppError("CONFIG_ERROR", "GOOGLE_API_KEY is required for provider gemini", ErrInvalidInput)
		}
	case ProviderGroq:
		if c.LLM.GroqKey == "" {
			return NewAppError("CONFIG_ERROR", "GROQ_API_KEY is required for provider groq", ErrInvalidInput)
		}
	default:
		return NewAppError("CONFIG_ERROR", "MODEL_PROVIDER must be gemini or groq", ErrInvalidInput)
	}
	if c.Server.HTTPAddr == "" {
		return NewAppError("CONFIG_ERROR", "HTTP_ADDR is required", ErrInvalidInput)
	}
	if c.LLM.Timeout <= 0 {
		return NewAppError("CONFIG_ERROR", "MODEL_TIMEOUT must be positive", ErrInvalidInput)
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsFloat32(key string, defaultValue float32) float32 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 32); err == nil {
			return float32(floatVal)
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
