package bootstrap

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/mobivas/vas-platform/internal/domain"
)

// Config is the resolved runtime configuration. Defaults are merged with
// the optional yaml file and then environment overrides, in that order.
type Config struct {
	ServiceID string
	HTTPPort  int

	JWTSecret         string
	AllowEphemeralJWT bool
	TokenTTL          time.Duration

	OTPTTL             time.Duration
	OTPRateLimitMax    int
	OTPRateLimitWindow time.Duration

	BillingSuccessRate float64
	DefaultCarrier     string

	Services  []domain.Service
	Providers []domain.Provider
}

// configFile mirrors the yaml schema of configs/default.yaml.
type configFile struct {
	Service struct {
		ID       string `yaml:"id"`
		HTTPPort int    `yaml:"http_port"`
	} `yaml:"service"`
	Auth struct {
		TokenTTLHours       int `yaml:"token_ttl_hours"`
		OTPTTLMinutes       int `yaml:"otp_ttl_minutes"`
		OTPRateLimitMax     int `yaml:"otp_rate_limit_max"`
		OTPRateLimitMinutes int `yaml:"otp_rate_limit_minutes"`
	} `yaml:"auth"`
	Billing struct {
		SuccessRate    float64 `yaml:"success_rate"`
		DefaultCarrier string  `yaml:"default_carrier"`
		Providers      []struct {
			ID       string  `yaml:"id"`
			Name     string  `yaml:"name"`
			Rate     float64 `yaml:"rate"`
			Currency string  `yaml:"currency"`
		} `yaml:"providers"`
	} `yaml:"billing"`
	Catalog []struct {
		ID          string `yaml:"id"`
		Name        string `yaml:"name"`
		Description string `yaml:"description"`
	} `yaml:"catalog"`
}

// LoadConfig resolves configuration in priority order: defaults -> file ->
// env. A missing file is not an error; local runs work out of the box.
func LoadConfig(path string) (Config, error) {
	cfg := Config{
		ServiceID:          "vas-platform",
		HTTPPort:           5000,
		AllowEphemeralJWT:  true,
		TokenTTL:           time.Hour,
		OTPTTL:             5 * time.Minute,
		OTPRateLimitMax:    5,
		OTPRateLimitWindow: 15 * time.Minute,
		BillingSuccessRate: 0.9,
		DefaultCarrier:     domain.DefaultProviderID,
		Services:           domain.DefaultServices(),
		Providers:          domain.DefaultProviders(),
	}

	raw, err := os.ReadFile(path)
	if err == nil {
		var f configFile
		if unmarshalErr := yaml.Unmarshal(raw, &f); unmarshalErr != nil {
			return Config{}, fmt.Errorf("parse config file: %w", unmarshalErr)
		}
		if f.Service.ID != "" {
			cfg.ServiceID = f.Service.ID
		}
		if f.Service.HTTPPort > 0 {
			cfg.HTTPPort = f.Service.HTTPPort
		}
		if f.Auth.TokenTTLHours > 0 {
			cfg.TokenTTL = time.Duration(f.Auth.TokenTTLHours) * time.Hour
		}
		if f.Auth.OTPTTLMinutes > 0 {
			cfg.OTPTTL = time.Duration(f.Auth.OTPTTLMinutes) * time.Minute
		}
		if f.Auth.OTPRateLimitMax > 0 {
			cfg.OTPRateLimitMax = f.Auth.OTPRateLimitMax
		}
		if f.Auth.OTPRateLimitMinutes > 0 {
			cfg.OTPRateLimitWindow = time.Duration(f.Auth.OTPRateLimitMinutes) * time.Minute
		}
		if f.Billing.SuccessRate > 0 {
			cfg.BillingSuccessRate = f.Billing.SuccessRate
		}
		if f.Billing.DefaultCarrier != "" {
			cfg.DefaultCarrier = f.Billing.DefaultCarrier
		}
		if len(f.Billing.Providers) > 0 {
			providers := make([]domain.Provider, 0, len(f.Billing.Providers))
			for _, p := range f.Billing.Providers {
				providers = append(providers, domain.Provider{ID: p.ID, Name: p.Name, Rate: p.Rate, Currency: p.Currency})
			}
			cfg.Providers = providers
		}
		if len(f.Catalog) > 0 {
			services := make([]domain.Service, 0, len(f.Catalog))
			for _, svc := range f.Catalog {
				services = append(services, domain.Service{ID: svc.ID, Name: svc.Name, Description: svc.Description})
			}
			cfg.Services = services
		}
	}

	cfg.HTTPPort = envInt("HTTP_PORT", envInt("PORT", cfg.HTTPPort))
	cfg.JWTSecret = envOrDefault("JWT_SECRET", cfg.JWTSecret)
	cfg.AllowEphemeralJWT = envBool("JWT_ALLOW_EPHEMERAL", cfg.AllowEphemeralJWT)
	cfg.TokenTTL = time.Duration(envInt("TOKEN_TTL_HOURS", int(cfg.TokenTTL.Hours()))) * time.Hour
	cfg.OTPTTL = time.Duration(envInt("OTP_TTL_MINUTES", int(cfg.OTPTTL.Minutes()))) * time.Minute
	cfg.OTPRateLimitMax = envInt("OTP_RATE_LIMIT_MAX", cfg.OTPRateLimitMax)
	cfg.OTPRateLimitWindow = time.Duration(envInt("OTP_RATE_LIMIT_MINUTES", int(cfg.OTPRateLimitWindow.Minutes()))) * time.Minute
	cfg.DefaultCarrier = envOrDefault("DEFAULT_CARRIER", cfg.DefaultCarrier)

	if cfg.JWTSecret == "" && !cfg.AllowEphemeralJWT {
		return Config{}, fmt.Errorf("missing JWT_SECRET")
	}
	if cfg.BillingSuccessRate < 0 || cfg.BillingSuccessRate > 1 {
		return Config{}, fmt.Errorf("billing success_rate must be within [0,1]")
	}
	knownProvider := false
	for _, p := range cfg.Providers {
		if p.ID == cfg.DefaultCarrier {
			knownProvider = true
			break
		}
	}
	if !knownProvider {
		return Config{}, fmt.Errorf("default carrier %q is not in the provider table", cfg.DefaultCarrier)
	}

	return cfg, nil
}

func envOrDefault(name, fallback string) string {
	if value := os.Getenv(name); value != "" {
		return value
	}
	return fallback
}

func envInt(name string, fallback int) int {
	raw := os.Getenv(name)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return v
}

func envBool(name string, fallback bool) bool {
	raw := os.Getenv(name)
	if raw == "" {
		return fallback
	}
	switch raw {
	case "1", "true", "TRUE", "yes", "YES":
		return true
	case "0", "false", "FALSE", "no", "NO":
		return false
	default:
		return fallback
	}
}
