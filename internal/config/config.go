package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. INTERVIEW_BOT_LLM_MODEL
const EnvPrefix = "INTERVIEW_BOT"

// Config holds application configuration
type Config struct {
	Server     ServerConfig   `mapstructure:"server"`
	UploadsDir string         `mapstructure:"uploads_dir"`
	Database   DatabaseConfig `mapstructure:"database"`
	LLM        LLMConfig      `mapstructure:"llm"`
	Redis      RedisConfig    `mapstructure:"redis"`
	Mail       MailConfig     `mapstructure:"mail"`
	Auth       AuthConfig     `mapstructure:"auth"`
	Scoring    ScoringConfig  `mapstructure:"scoring"`
}

type ServerConfig struct {
	Addr    string `mapstructure:"addr"`
	BaseURL string `mapstructure:"base_url"`
}

type DatabaseConfig struct {
	URL             string        `mapstructure:"url"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
}

// LLMConfig selects and configures the text-generation backend
type LLMConfig struct {
	Provider string        `mapstructure:"provider"`
	BaseURL  string        `mapstructure:"base_url"`
	Model    string        `mapstructure:"model"`
	Timeout  time.Duration `mapstructure:"timeout"`
	APIKey   string        `mapstructure:"api_key"`
	Project  string        `mapstructure:"project"`
	Location string        `mapstructure:"location"`
}

// RedisConfig configures the extraction cache. An empty Addr disables it.
type RedisConfig struct {
	Addr     string        `mapstructure:"addr"`
	Password string        `mapstructure:"password"`
	DB       int           `mapstructure:"db"`
	TTL      time.Duration `mapstructure:"ttl"`
}

type MailConfig struct {
	Provider         string        `mapstructure:"provider"`
	Host             string        `mapstructure:"host"`
	Port             int           `mapstructure:"port"`
	User             string        `mapstructure:"user"`
	Password         string        `mapstructure:"password"`
	From             string        `mapstructure:"from"`
	Timeout          time.Duration `mapstructure:"timeout"`
	GmailCredentials string        `mapstructure:"gmail_credentials"`
	GmailToken       string        `mapstructure:"gmail_token"`
}

type AuthConfig struct {
	JWTSecret  string        `mapstructure:"jwt_secret"`
	TokenTTL   time.Duration `mapstructure:"token_ttl"`
	HREmail    string        `mapstructure:"hr_email"`
	HRPassword string        `mapstructure:"hr_password"`
}

type ScoringConfig struct {
	MinDomainScoreFresher int  `mapstructure:"min_domain_score_fresher"`
	StrictFresherGate     bool `mapstructure:"strict_fresher_gate"`
}

// Supported backends
const (
	ProviderOllama   = "ollama"
	ProviderGemini   = "gemini"
	ProviderVertexAI = "vertexai"

	MailSMTP  = "smtp"
	MailGmail = "gmail"
)

// DefaultConfig returns a new config with default values
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:    ":8080",
			BaseURL: "http://localhost:8080",
		},
		UploadsDir: "uploads",
		Database: DatabaseConfig{
			MaxOpenConns:    25,
			MaxIdleConns:    10,
			ConnMaxLifetime: 5 * time.Minute,
		},
		LLM: LLMConfig{
			Provider: ProviderOllama,
			BaseURL:  "http://localhost:11434",
			Model:    "llama3.2:3b",
			Timeout:  60 * time.Second,
			Location: "us-central1",
		},
		Redis: RedisConfig{
			TTL: 24 * time.Hour,
		},
		Mail: MailConfig{
			Provider:         MailSMTP,
			Port:             587,
			Timeout:          20 * time.Second,
			GmailCredentials: "credentials.json",
			GmailToken:       "token.json",
		},
		Auth: AuthConfig{
			TokenTTL:   12 * time.Hour,
			HREmail:    "hr",
			HRPassword: "hr@123",
		},
		Scoring: ScoringConfig{
			MinDomainScoreFresher: 30,
		},
	}
}

// legacyEnv maps keys to the unprefixed variable names older deployments use
var legacyEnv = map[string]string{
	"server.base_url": "BASE_URL",
	"database.url":    "DATABASE_URL",
	"mail.host":       "SMTP_HOST",
	"mail.port":       "SMTP_PORT",
	"mail.user":       "SMTP_USER",
	"mail.password":   "SMTP_PASSWORD",
	"mail.from":       "SMTP_FROM",
}

// SetDefaults registers every key on v so environment overrides reach Unmarshal
func SetDefaults(v *viper.Viper) {
	d := DefaultConfig()

	v.SetDefault("server.addr", d.Server.Addr)
	v.SetDefault("server.base_url", d.Server.BaseURL)
	v.SetDefault("uploads_dir", d.UploadsDir)

	v.SetDefault("database.url", d.Database.URL)
	v.SetDefault("database.max_open_conns", d.Database.MaxOpenConns)
	v.SetDefault("database.max_idle_conns", d.Database.MaxIdleConns)
	v.SetDefault("database.conn_max_lifetime", d.Database.ConnMaxLifetime)

	v.SetDefault("llm.provider", d.LLM.Provider)
	v.SetDefault("llm.base_url", d.LLM.BaseURL)
	v.SetDefault("llm.model", d.LLM.Model)
	v.SetDefault("llm.timeout", d.LLM.Timeout)
	v.SetDefault("llm.api_key", d.LLM.APIKey)
	v.SetDefault("llm.project", d.LLM.Project)
	v.SetDefault("llm.location", d.LLM.Location)

	v.SetDefault("redis.addr", d.Redis.Addr)
	v.SetDefault("redis.password", d.Redis.Password)
	v.SetDefault("redis.db", d.Redis.DB)
	v.SetDefault("redis.ttl", d.Redis.TTL)

	v.SetDefault("mail.provider", d.Mail.Provider)
	v.SetDefault("mail.host", d.Mail.Host)
	v.SetDefault("mail.port", d.Mail.Port)
	v.SetDefault("mail.user", d.Mail.User)
	v.SetDefault("mail.password", d.Mail.Password)
	v.SetDefault("mail.from", d.Mail.From)
	v.SetDefault("mail.timeout", d.Mail.Timeout)
	v.SetDefault("mail.gmail_credentials", d.Mail.GmailCredentials)
	v.SetDefault("mail.gmail_token", d.Mail.GmailToken)

	v.SetDefault("auth.jwt_secret", d.Auth.JWTSecret)
	v.SetDefault("auth.token_ttl", d.Auth.TokenTTL)
	v.SetDefault("auth.hr_email", d.Auth.HREmail)
	v.SetDefault("auth.hr_password", d.Auth.HRPassword)

	v.SetDefault("scoring.min_domain_score_fresher", d.Scoring.MinDomainScoreFresher)
	v.SetDefault("scoring.strict_fresher_gate", d.Scoring.StrictFresherGate)
}

// BindEnv enables INTERVIEW_BOT_* overrides and the legacy variable names
func BindEnv(v *viper.Viper) error {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	for key, legacy := range legacyEnv {
		prefixed := EnvPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
		if err := v.BindEnv(key, prefixed, legacy); err != nil {
			return fmt.Errorf("failed to bind %s: %w", legacy, err)
		}
	}
	return nil
}

// Load reads configuration from v. path is optional; a missing default
// file is not an error, but an explicitly named one must exist.
func Load(v *viper.Viper, path string) (*Config, error) {
	SetDefaults(v)
	if err := BindEnv(v); err != nil {
		return nil, err
	}

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("interview-bot")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if cfg.Mail.From == "" {
		cfg.Mail.From = cfg.Mail.User
	}
	cfg.Server.BaseURL = strings.TrimRight(cfg.Server.BaseURL, "/")

	return cfg, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	switch c.LLM.Provider {
	case ProviderOllama:
		if c.LLM.BaseURL == "" {
			return fmt.Errorf("llm.base_url is required for the ollama provider")
		}
	case ProviderGemini:
		if c.LLM.APIKey == "" {
			return fmt.Errorf("llm.api_key is required for the gemini provider")
		}
	case ProviderVertexAI:
		if c.LLM.Project == "" {
			return fmt.Errorf("llm.project is required for the vertexai provider")
		}
	default:
		return fmt.Errorf("unknown llm.provider %q", c.LLM.Provider)
	}

	if c.LLM.Timeout <= 0 {
		return fmt.Errorf("llm.timeout must be positive")
	}

	switch c.Mail.Provider {
	case MailSMTP:
		if c.Mail.Port <= 0 || c.Mail.Port > 65535 {
			return fmt.Errorf("mail.port %d is out of range", c.Mail.Port)
		}
	case MailGmail:
		if _, err := os.Stat(c.Mail.GmailCredentials); err != nil {
			return fmt.Errorf("gmail credentials file not found: %w", err)
		}
	default:
		return fmt.Errorf("unknown mail.provider %q", c.Mail.Provider)
	}

	if c.Scoring.MinDomainScoreFresher < 0 || c.Scoring.MinDomainScoreFresher > 100 {
		return fmt.Errorf("scoring.min_domain_score_fresher must be within 0..100")
	}

	return nil
}

// ValidateServer adds the checks that only matter when running the HTTP server
func (c *Config) ValidateServer() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.Database.URL == "" {
		return fmt.Errorf("database.url is required")
	}
	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("auth.jwt_secret is required")
	}
	return nil
}
