package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	ProviderOpenAI   = "openai"
	ProviderGemini   = "gemini"
	ProviderScripted = "scripted"
)

var (
	ErrMissingAPIKey   = errors.New("LLM_API_KEY is required for the configured provider")
	ErrUnknownProvider = errors.New("unknown LLM_PROVIDER")
)

// Config se construye una sola vez al arrancar y se pasa explícitamente
// a quien lo necesite (gateway, router, storage). No hay lecturas de env diferidas.
type Config struct {
	Port string

	LogLevel  string
	LogFormat string
	AppName   string

	LLM LLMConfig

	// Opcional: si viene, el audit log va a Postgres. Si no, in-memory.
	DBDSN string

	MaxBodyBytes int64
}

type LLMConfig struct {
	Provider    string
	APIKey      string
	Model       string
	BaseURL     string
	Timeout     time.Duration
	MaxRetries  int
	Temperature float32
}

// Load lee .env (si existe) y luego el entorno del proceso.
// Las variables del proceso siempre ganan sobre el .env.
func Load() (Config, error) {
	loadEnvFile()
	return FromViper(newViper())
}

func loadEnvFile() {
	path := strings.TrimSpace(os.Getenv("ENV_FILE"))
	if path == "" {
		path = ".env"
	}
	if _, err := os.Stat(path); err != nil {
		return
	}
	// godotenv.Load no pisa variables ya definidas.
	_ = godotenv.Load(path)
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	v.SetDefault("PORT", "8080")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "text")
	v.SetDefault("APP_NAME", "pet-symptom-triage")
	v.SetDefault("LLM_PROVIDER", ProviderOpenAI)
	v.SetDefault("LLM_TIMEOUT", "45s")
	v.SetDefault("LLM_MAX_RETRIES", 1)
	v.SetDefault("LLM_TEMPERATURE", 0.2)
	v.SetDefault("MAX_BODY_BYTES", 1<<20)

	// AutomaticEnv solo resuelve keys conocidas por Get; estas no tienen default.
	for _, k := range []string{"LLM_API_KEY", "OPENAI_API_KEY", "GEMINI_API_KEY", "LLM_MODEL", "LLM_BASE_URL", "DB_DSN"} {
		_ = v.BindEnv(k)
	}
	return v
}

// FromViper arma y valida el Config. Se expone para tests con un viper.New() propio.
func FromViper(v *viper.Viper) (Config, error) {
	provider := strings.ToLower(strings.TrimSpace(v.GetString("LLM_PROVIDER")))

	cfg := Config{
		Port:      strings.TrimSpace(v.GetString("PORT")),
		LogLevel:  v.GetString("LOG_LEVEL"),
		LogFormat: v.GetString("LOG_FORMAT"),
		AppName:   v.GetString("APP_NAME"),
		LLM: LLMConfig{
			Provider:    provider,
			APIKey:      strings.TrimSpace(v.GetString("LLM_API_KEY")),
			Model:       strings.TrimSpace(v.GetString("LLM_MODEL")),
			BaseURL:     strings.TrimSpace(v.GetString("LLM_BASE_URL")),
			Timeout:     v.GetDuration("LLM_TIMEOUT"),
			MaxRetries:  v.GetInt("LLM_MAX_RETRIES"),
			Temperature: float32(v.GetFloat64("LLM_TEMPERATURE")),
		},
		DBDSN:        strings.TrimSpace(v.GetString("DB_DSN")),
		MaxBodyBytes: v.GetInt64("MAX_BODY_BYTES"),
	}

	// Compat: cada proveedor tiene su variable "histórica".
	if cfg.LLM.APIKey == "" {
		switch provider {
		case ProviderOpenAI:
			cfg.LLM.APIKey = strings.TrimSpace(v.GetString("OPENAI_API_KEY"))
		case ProviderGemini:
			cfg.LLM.APIKey = strings.TrimSpace(v.GetString("GEMINI_API_KEY"))
		}
	}

	if cfg.LLM.Model == "" {
		cfg.LLM.Model = defaultModel(provider)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate falla rápido al arrancar en vez de esperar al primer request.
func (c *Config) Validate() error {
	switch c.LLM.Provider {
	case ProviderOpenAI, ProviderGemini:
		if c.LLM.APIKey == "" {
			return fmt.Errorf("%w (provider=%s)", ErrMissingAPIKey, c.LLM.Provider)
		}
	case ProviderScripted:
		// modo dev, no necesita credenciales
	default:
		return fmt.Errorf("%w: %q", ErrUnknownProvider, c.LLM.Provider)
	}

	if c.Port == "" {
		c.Port = "8080"
	}
	if c.LLM.Timeout <= 0 {
		c.LLM.Timeout = 45 * time.Second
	}
	if c.LLM.MaxRetries < 0 {
		c.LLM.MaxRetries = 0
	}
	if c.MaxBodyBytes <= 0 {
		c.MaxBodyBytes = 1 << 20
	}
	return nil
}

// Addr devuelve la dirección de escucha para http.Server.
func (c Config) Addr() string {
	return ":" + strings.TrimPrefix(c.Port, ":")
}

func defaultModel(provider string) string {
	switch provider {
	case ProviderGemini:
		return "gemini-2.0-flash"
	case ProviderScripted:
		return "scripted"
	default:
		return "gpt-4o-mini"
	}
}
