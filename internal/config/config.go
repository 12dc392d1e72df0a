// Package config assembles runtime settings from an optional YAML file
// and environment variables. Environment always wins, so deployments can
// override a checked-in file without editing it.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds every tunable of the service.
type Config struct {
	ListenAddr string `yaml:"listen_addr"`

	// AllowedOrigins is the browser origin allowlist. Empty means any.
	AllowedOrigins []string `yaml:"allowed_origins"`

	Model           string  `yaml:"model"`
	MaxOutputTokens int     `yaml:"max_output_tokens"`
	WordCeiling     int     `yaml:"word_ceiling"`
	MaxDailyCost    float64 `yaml:"max_daily_cost"`

	RateLimitWindow time.Duration `yaml:"rate_limit_window"`
	RateLimitMax    int           `yaml:"rate_limit_max"`

	CaptchaProvider string `yaml:"captcha_provider"`
	RecaptchaSecret string `yaml:"-"`
	HcaptchaSecret  string `yaml:"-"`

	LeadCSVPath    string `yaml:"lead_csv_path"`
	LeadWebhookURL string `yaml:"lead_webhook_url"`
	CostWebhookURL string `yaml:"cost_webhook_url"`
}

// Default returns the baseline configuration.
func Default() Config {
	return Config{
		ListenAddr:      ":8080",
		Model:           "openai:gpt-4o-mini",
		MaxOutputTokens: 3000,
		MaxDailyCost:    10,
		RateLimitWindow: time.Hour,
		RateLimitMax:    10,
		CaptchaProvider: "none",
		LeadCSVPath:     "tmp/leads.csv",
	}
}

// Load builds the configuration: defaults, then the YAML file at path if
// non-empty, then environment variables.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("reading config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv("LISTEN_ADDR"); v != "" {
		c.ListenAddr = v
	}
	if v := os.Getenv("ALLOWED_ORIGINS"); v != "" {
		c.AllowedOrigins = splitOrigins(v)
	}
	if v := os.Getenv("LEASEDRAFT_MODEL"); v != "" {
		c.Model = v
	}
	if v := os.Getenv("MAX_OUTPUT_TOKENS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("MAX_OUTPUT_TOKENS: %w", err)
		}
		c.MaxOutputTokens = n
	}
	if v := os.Getenv("WORD_CEILING"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("WORD_CEILING: %w", err)
		}
		c.WordCeiling = n
	}
	if v := os.Getenv("MAX_DAILY_COST"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("MAX_DAILY_COST: %w", err)
		}
		c.MaxDailyCost = f
	}
	if v := os.Getenv("RATE_LIMIT_WINDOW_SECONDS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("RATE_LIMIT_WINDOW_SECONDS: %w", err)
		}
		c.RateLimitWindow = time.Duration(n) * time.Second
	}
	if v := os.Getenv("RATE_LIMIT_MAX_REQUESTS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("RATE_LIMIT_MAX_REQUESTS: %w", err)
		}
		c.RateLimitMax = n
	}
	if v := os.Getenv("CAPTCHA_PROVIDER"); v != "" {
		c.CaptchaProvider = v
	}
	// Secrets only ever come from the environment.
	c.RecaptchaSecret = os.Getenv("RECAPTCHA_SECRET")
	c.HcaptchaSecret = os.Getenv("HCAPTCHA_SECRET")

	if v := os.Getenv("LEAD_CSV_PATH"); v != "" {
		c.LeadCSVPath = v
	}
	if v := os.Getenv("LEAD_WEBHOOK_URL"); v != "" {
		c.LeadWebhookURL = v
	}
	if v := os.Getenv("COST_WEBHOOK_URL"); v != "" {
		c.CostWebhookURL = v
	}
	return nil
}

// CaptchaSecret returns the secret matching the configured provider.
func (c *Config) CaptchaSecret() string {
	switch c.CaptchaProvider {
	case "recaptcha":
		return c.RecaptchaSecret
	case "hcaptcha":
		return c.HcaptchaSecret
	}
	return ""
}

func splitOrigins(v string) []string {
	var out []string
	for _, o := range strings.Split(v, ",") {
		o = strings.TrimSpace(o)
		if o != "" {
			out = append(out, o)
		}
	}
	return out
}
