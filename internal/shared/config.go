package shared

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

type Config struct {
	AppEnv      string
	LogLevel    string
	HTTPAddr    string
	MetricsAddr string
	MySQLDSN    string
	RedisAddr   string
	RedisDB     int
	RedisPass   string

	HotelAPIBase    string
	HotelAPIToken   string
	HotelAPIRPS     int
	HotelAPITimeout time.Duration

	CacheTTL         time.Duration
	Pricing          PricingDefaults
	OccupancyWorkers int
}

// PricingDefaults seed a new booking form when the rate store has nothing.
type PricingDefaults struct {
	CGSTRate       float64 `yaml:"cgstRate"`
	SGSTRate       float64 `yaml:"sgstRate"`
	ExtraBedCharge float64 `yaml:"extraBedCharge"`
}

// Load reads .env (if present), the environment and the optional PRICING_FILE.
func Load() Config {
	if err := godotenv.Load(); err == nil {
		log.Debug().Msg("loaded .env")
	}

	c := Config{
		AppEnv:      env("APP_ENV", "prod"),
		LogLevel:    env("LOG_LEVEL", "info"),
		HTTPAddr:    env("HTTP_ADDR", ":8080"),
		MetricsAddr: env("METRICS_ADDR", ":9100"),
		MySQLDSN:    env("MYSQL_DSN", "root:root@tcp(localhost:3306)/frontdesk?parseTime=true&charset=utf8mb4&loc=UTC"),
		RedisAddr:   env("REDIS_ADDR", "localhost:6379"),
		RedisPass:   env("REDIS_PASSWORD", ""),
		RedisDB:     atoi("REDIS_DB", 0),

		HotelAPIBase:    env("HOTEL_API_BASE_URL", "http://localhost:8000/api"),
		HotelAPIToken:   env("HOTEL_API_TOKEN", ""),
		HotelAPIRPS:     atoi("HOTEL_API_RPS", 5),
		HotelAPITimeout: time.Duration(atoi("HOTEL_API_TIMEOUT_SECONDS", 20)) * time.Second,

		CacheTTL:         time.Duration(atoi("CACHE_TTL_SECONDS", 300)) * time.Second,
		OccupancyWorkers: atoi("OCCUPANCY_WORKERS", 4),
		Pricing: PricingDefaults{
			CGSTRate: 2.5,
			SGSTRate: 2.5,
		},
	}

	if path := os.Getenv("PRICING_FILE"); path != "" {
		p, err := LoadPricingFile(path, c.Pricing)
		if err != nil {
			log.Warn().Err(err).Str("path", path).Msg("pricing file ignored")
		} else {
			c.Pricing = p
		}
	}
	c.Pricing.CGSTRate = atof("DEFAULT_CGST_RATE", c.Pricing.CGSTRate)
	c.Pricing.SGSTRate = atof("DEFAULT_SGST_RATE", c.Pricing.SGSTRate)
	c.Pricing.ExtraBedCharge = atof("EXTRA_BED_CHARGE", c.Pricing.ExtraBedCharge)

	if c.HotelAPIToken == "" {
		log.Warn().Msg("HOTEL_API_TOKEN is empty")
	}
	return c
}

// LoadPricingFile overlays the YAML at path on base. Keys missing from the
// file keep the base value.
func LoadPricingFile(path string, base PricingDefaults) (PricingDefaults, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return base, err
	}
	out := base
	if err := yaml.Unmarshal(b, &out); err != nil {
		return base, fmt.Errorf("parse %s: %w", path, err)
	}
	if out.CGSTRate < 0 || out.SGSTRate < 0 || out.ExtraBedCharge < 0 {
		return base, fmt.Errorf("%s: negative pricing default", path)
	}
	return out, nil
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func atoi(k string, def int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func atof(k string, def float64) float64 {
	if v := os.Getenv(k); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}
