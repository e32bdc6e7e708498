package config

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

// Plan is a paid subscription tier offered through the payment flow.
type Plan struct {
	ID           string   `yaml:"id" json:"id"`
	Name         string   `yaml:"name" json:"name"`
	Amount       int64    `yaml:"amount" json:"amount"` // minor units (paise, cents)
	DurationDays int      `yaml:"duration_days" json:"durationDays"`
	Features     []string `yaml:"features" json:"features"`
}

type Config struct {
	Server struct {
		Host        string   `yaml:"host"`
		Port        int      `yaml:"port"`
		Env         string   `yaml:"env"`
		CORSOrigins []string `yaml:"cors_origins"`
	} `yaml:"server"`

	Database struct {
		Driver string `yaml:"driver"` // postgres, mysql
		DSN    string `yaml:"url"`
	} `yaml:"database"`

	JWT struct {
		Secret       string `yaml:"secret"`
		TTL          int    `yaml:"ttl"` // minutes
		CookieName   string `yaml:"cookie_name"`
		CookieSecure bool   `yaml:"cookie_secure"`
	} `yaml:"jwt"`

	AI struct {
		APIKey         string `yaml:"api_key"`
		Model          string `yaml:"model"`
		TimeoutSeconds int    `yaml:"timeout_seconds"`
	} `yaml:"ai"`

	Payment struct {
		KeyID              string `yaml:"key_id"`
		KeySecret          string `yaml:"key_secret"`
		Currency           string `yaml:"currency"`
		FreeProjectLimit   int    `yaml:"free_project_limit"`
		ExpiryCheckMinutes int    `yaml:"expiry_check_minutes"`
		Plans              []Plan `yaml:"plans"`
	} `yaml:"payment"`

	Corpus struct {
		Path string `yaml:"path"` // empty: bundled dataset
	} `yaml:"corpus"`

	Storage struct {
		Type      string `yaml:"type"`      // local, s3
		BasePath  string `yaml:"base_path"` // local
		BaseURL   string `yaml:"base_url"`
		Bucket    string `yaml:"bucket"`
		Region    string `yaml:"region"`
		AccessKey string `yaml:"access_key"`
		SecretKey string `yaml:"secret_key"`
		Endpoint  string `yaml:"endpoint"` // R2 / MinIO
	} `yaml:"storage"`

	Email struct {
		SMTPHost     string `yaml:"smtp_host"`
		SMTPPort     int    `yaml:"smtp_port"`
		SMTPUsername string `yaml:"smtp_user"`
		SMTPPassword string `yaml:"smtp_password"`
		FromEmail    string `yaml:"from_email"`
		FromName     string `yaml:"from_name"`
	} `yaml:"email"`
}

// LoadConfig читает .env, затем YAML (если файл есть), затем переменные окружения.
// Пустой path означает CONFIG_PATH или config/config.yaml.
func LoadConfig(path string) (*Config, error) {
	_ = godotenv.Load()

	var cfg Config

	if path == "" {
		path = os.Getenv("CONFIG_PATH")
	}
	if path == "" {
		path = "config/config.yaml"
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file at %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist):
		// без файла работаем на env + defaults
	default:
		return nil, fmt.Errorf("failed to read config file at %s: %w", path, err)
	}

	applyEnv(&cfg)
	applyDefaults(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func applyEnv(cfg *Config) {
	setString(&cfg.Database.DSN, "DATABASE_URL")
	setString(&cfg.Database.Driver, "DATABASE_DRIVER")
	setString(&cfg.Server.Env, "SERVER_ENV")
	setString(&cfg.Server.Host, "SERVER_HOST")
	setInt(&cfg.Server.Port, "SERVER_PORT")
	setString(&cfg.JWT.Secret, "JWT_SECRET")
	setString(&cfg.AI.APIKey, "GEMINI_API_KEY")
	setString(&cfg.AI.Model, "GEMINI_MODEL")
	setString(&cfg.Payment.KeyID, "PAYMENT_KEY_ID")
	setString(&cfg.Payment.KeySecret, "PAYMENT_KEY_SECRET")
	setString(&cfg.Corpus.Path, "CORPUS_PATH")
	setString(&cfg.Storage.Type, "STORAGE_TYPE")
	setString(&cfg.Storage.Bucket, "STORAGE_BUCKET")
	setString(&cfg.Storage.AccessKey, "STORAGE_ACCESS_KEY")
	setString(&cfg.Storage.SecretKey, "STORAGE_SECRET_KEY")
	setString(&cfg.Email.SMTPHost, "SMTP_HOST")
	setString(&cfg.Email.SMTPPassword, "SMTP_PASSWORD")

	if origins := os.Getenv("CORS_ORIGINS"); origins != "" {
		cfg.Server.CORSOrigins = strings.Split(origins, ",")
	}
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 4000
	}
	if cfg.Server.Env == "" {
		cfg.Server.Env = "development"
	}
	if cfg.Database.Driver == "" {
		cfg.Database.Driver = "postgres"
	}
	if cfg.JWT.TTL == 0 {
		cfg.JWT.TTL = 7 * 24 * 60
	}
	if cfg.JWT.CookieName == "" {
		cfg.JWT.CookieName = "session"
	}
	if cfg.JWT.Secret == "" && !cfg.IsProduction() {
		cfg.JWT.Secret = "dev-only-secret"
	}
	if cfg.AI.Model == "" {
		cfg.AI.Model = "gemini-2.5-flash"
	}
	if cfg.AI.TimeoutSeconds == 0 {
		cfg.AI.TimeoutSeconds = 30
	}
	if cfg.Payment.Currency == "" {
		cfg.Payment.Currency = "INR"
	}
	if cfg.Payment.FreeProjectLimit == 0 {
		cfg.Payment.FreeProjectLimit = 3
	}
	if cfg.Payment.ExpiryCheckMinutes == 0 {
		cfg.Payment.ExpiryCheckMinutes = 60
	}
	if len(cfg.Payment.Plans) == 0 {
		cfg.Payment.Plans = DefaultPlans()
	}
	if cfg.Storage.Type == "" {
		cfg.Storage.Type = "local"
	}
	if cfg.Storage.BasePath == "" {
		cfg.Storage.BasePath = "./exports"
	}
	if cfg.Storage.BaseURL == "" {
		cfg.Storage.BaseURL = "/exports"
	}
	if cfg.Email.SMTPPort == 0 {
		cfg.Email.SMTPPort = 587
	}
	if cfg.Email.FromName == "" {
		cfg.Email.FromName = "Launchpad"
	}
}

// DefaultPlans are used when the config file declares none.
func DefaultPlans() []Plan {
	return []Plan{
		{ID: "pro-monthly", Name: "Pro Monthly", Amount: 49900, DurationDays: 30,
			Features: []string{"unlimited_projects", "ai_generation", "export"}},
		{ID: "pro-yearly", Name: "Pro Yearly", Amount: 499900, DurationDays: 365,
			Features: []string{"unlimited_projects", "ai_generation", "export", "priority_support"}},
	}
}

// Validate проверяет обязательные поля.
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case "postgres", "mysql":
	default:
		return fmt.Errorf("unsupported database driver %q", c.Database.Driver)
	}
	if c.JWT.Secret == "" {
		return errors.New("JWT secret is required in production")
	}
	switch c.Storage.Type {
	case "local", "s3":
	default:
		return fmt.Errorf("unsupported storage type %q", c.Storage.Type)
	}
	if c.IsProduction() && slices.Contains(c.Server.CORSOrigins, "*") {
		return errors.New("wildcard CORS origin is not allowed in production")
	}
	seen := make(map[string]bool, len(c.Payment.Plans))
	for _, p := range c.Payment.Plans {
		if p.ID == "" || p.Amount <= 0 || p.DurationDays <= 0 {
			return fmt.Errorf("invalid plan %q: id, amount and duration_days are required", p.ID)
		}
		if seen[p.ID] {
			return fmt.Errorf("duplicate plan id %q", p.ID)
		}
		seen[p.ID] = true
	}
	return nil
}

func (c *Config) IsProduction() bool {
	return c.Server.Env == "production"
}

// FindPlan returns the plan with the given id.
func (c *Config) FindPlan(id string) (Plan, bool) {
	for _, p := range c.Payment.Plans {
		if p.ID == id {
			return p, true
		}
	}
	return Plan{}, false
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}
