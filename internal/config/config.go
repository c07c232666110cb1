package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/caarlos0/env/v9"
)

type Config struct {
	Port                   string `env:"PORT" envDefault:"8080"`
	DBUser                 string `env:"DB_USER,required"`
	DBPassword             string `env:"DB_PASSWORD,required"`
	DBHost                 string `env:"DB_HOST,required"` // e.g. tcp(host:3306) or unix(/cloudsql/instance)
	DBName                 string `env:"DB_NAME,required"`
	DBPort                 string `env:"DB_PORT" envDefault:"3306"`
	InstanceConnectionName string `env:"INSTANCE_CONNECTION_NAME"`

	AuthMode  string `env:"AUTH_MODE" envDefault:"jwt"` // jwt or firebase
	JWTSecret string `env:"JWT_SECRET"`

	GeminiModel     string `env:"GEMINI_MODEL" envDefault:"gemini-2.5-flash"`
	StorageBucket   string `env:"STORAGE_BUCKET"`
	CredentialsFile string `env:"GOOGLE_APPLICATION_CREDENTIALS"`

	CooldownSeconds int     `env:"SCAN_COOLDOWN_SECONDS" envDefault:"60"`
	PaperThreshold  float64 `env:"PAPER_CONFIDENCE_THRESHOLD" envDefault:"0.82"`
	DefaultAward    int     `env:"SCAN_AWARD_POINTS" envDefault:"10"`
	// Optional per-category overrides, e.g. "metal=15,glass=12,plastic=10,paper=5".
	CategoryAwards string `env:"SCAN_AWARD_OVERRIDES"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}
	if cfg.AuthMode != "jwt" && cfg.AuthMode != "firebase" {
		return nil, fmt.Errorf("invalid AUTH_MODE %q", cfg.AuthMode)
	}
	if cfg.AuthMode == "jwt" && cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required when AUTH_MODE=jwt")
	}
	if _, err := cfg.AwardOverrides(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// AwardOverrides parses SCAN_AWARD_OVERRIDES into category -> points.
// Category names are normalized to upper case.
func (c *Config) AwardOverrides() (map[string]int, error) {
	out := map[string]int{}
	raw := strings.TrimSpace(c.CategoryAwards)
	if raw == "" {
		return out, nil
	}
	for _, pair := range strings.Split(raw, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		k, v, ok := strings.Cut(pair, "=")
		if !ok {
			return nil, fmt.Errorf("invalid award override %q", pair)
		}
		pts, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil || pts < 0 {
			return nil, fmt.Errorf("invalid award value in %q", pair)
		}
		out[strings.ToUpper(strings.TrimSpace(k))] = pts
	}
	return out, nil
}
