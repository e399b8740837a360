package config

import (
	"fmt"
	"os"
	"strings"

	httpapi "github.com/jekabolt/grbpwr-analytics/internal/api/http"
	"github.com/jekabolt/grbpwr-analytics/internal/entity"
	"github.com/jekabolt/grbpwr-analytics/internal/store"
	"github.com/jekabolt/grbpwr-analytics/log"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// TierConfig is one loyalty tier range as written in the config file.
type TierConfig struct {
	Name  string  `mapstructure:"name"`
	Min   float64 `mapstructure:"min"`
	Max   float64 `mapstructure:"max"`
	Color string  `mapstructure:"color"`
}

// AnalyticsConfig tunes the derivation rules.
type AnalyticsConfig struct {
	Tiers                 []TierConfig `mapstructure:"tiers"`
	ActivityThresholdDays int          `mapstructure:"activity_threshold_days"`
	PhoneCountryCode      string       `mapstructure:"phone_country_code"`
	ExcludeRefunded       bool         `mapstructure:"exclude_refunded"`
}

// LoyaltyTiers converts the configured ranges, falling back to the stock
// set when none are configured.
func (c AnalyticsConfig) LoyaltyTiers() []entity.LoyaltyTier {
	if len(c.Tiers) == 0 {
		return entity.DefaultLoyaltyTiers()
	}
	tiers := make([]entity.LoyaltyTier, 0, len(c.Tiers))
	for _, t := range c.Tiers {
		tiers = append(tiers, entity.LoyaltyTier{
			Name:     t.Name,
			MinValue: decimal.NewFromFloat(t.Min),
			MaxValue: decimal.NewFromFloat(t.Max),
			Color:    t.Color,
		})
	}
	return tiers
}

// Config represents the global configuration for the service.
type Config struct {
	DB        store.Config    `mapstructure:"mysql"`
	Logger    log.Config      `mapstructure:"logger"`
	HTTP      httpapi.Config  `mapstructure:"http"`
	Analytics AnalyticsConfig `mapstructure:"analytics"`
}

// LoadConfig loads the configuration from a file and/or environment variables.
// Environment variables take precedence over config file values.
// Env vars use underscores and uppercase, e.g., MYSQL_DSN, HTTP_PORT
func LoadConfig(cfgFile string) (*Config, error) {
	viper.SetConfigType("toml")

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "__", "-", "__"))

	bindEnvVars()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
		if err := viper.ReadInConfig(); err != nil {
			// If config file doesn't exist, continue with env vars only
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("failed to read config file: %v", err)
			}
		}
	} else {
		viper.SetConfigName("config")
		viper.AddConfigPath("./config")
		viper.AddConfigPath("$HOME/config/grbpwr-analytics")
		viper.AddConfigPath("/etc/grbpwr-analytics")
		_ = viper.ReadInConfig()
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config into struct: %v", err)
	}

	// Construct the DSN from individual env vars when not set directly.
	if config.DB.DSN == "" {
		mysqlHost := os.Getenv("MYSQL_HOST")
		mysqlPort := os.Getenv("MYSQL_PORT")
		mysqlUser := os.Getenv("MYSQL_USER")
		mysqlPassword := os.Getenv("MYSQL_PASSWORD")
		mysqlDatabase := os.Getenv("MYSQL_DATABASE")

		if mysqlHost != "" {
			if mysqlPort == "" {
				mysqlPort = "3306"
			}
			if mysqlUser != "" && mysqlPassword != "" && mysqlDatabase != "" {
				config.DB.DSN = fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8&parseTime=true",
					mysqlUser, mysqlPassword, mysqlHost, mysqlPort, mysqlDatabase)
			}
		}
	}

	return &config, nil
}

// bindEnvVars binds environment variables to config keys
func bindEnvVars() {
	// MySQL
	viper.BindEnv("mysql.dsn", "MYSQL_DSN")
	viper.BindEnv("mysql.automigrate", "MYSQL_AUTOMIGRATE")
	viper.BindEnv("mysql.max_open_connections", "MYSQL_MAX_OPEN_CONNECTIONS")
	viper.BindEnv("mysql.max_idle_connections", "MYSQL_MAX_IDLE_CONNECTIONS")
	viper.BindEnv("mysql.tls_ca_path", "MYSQL_TLS_CA_PATH")

	// Logger
	viper.BindEnv("logger.level", "LOG_LEVEL")
	viper.BindEnv("logger.add_source", "LOG_ADD_SOURCE")

	// HTTP
	viper.BindEnv("http.port", "HTTP_PORT")
	viper.BindEnv("http.address", "HTTP_ADDRESS")
	viper.BindEnv("http.allowed_origins", "HTTP_ALLOWED_ORIGINS")
	viper.BindEnv("http.rate_limit", "HTTP_RATE_LIMIT")

	// Analytics
	viper.BindEnv("analytics.activity_threshold_days", "ANALYTICS_ACTIVITY_THRESHOLD_DAYS")
	viper.BindEnv("analytics.phone_country_code", "ANALYTICS_PHONE_COUNTRY_CODE")
	viper.BindEnv("analytics.exclude_refunded", "ANALYTICS_EXCLUDE_REFUNDED")
}
