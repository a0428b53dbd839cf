package config

import (
	"github.com/spf13/viper"

	"shipping-rates/internal/modules/carrier"
	"shipping-rates/internal/modules/packing"
	"shipping-rates/internal/modules/quotes"
)

// CacheConfig selects and configures the shared key-value store.
type CacheConfig struct {
	Backend       string `mapstructure:"backend"` // memory, redis or postgres
	RedisAddr     string `mapstructure:"redis_addr"`
	RedisPassword string `mapstructure:"redis_password"`
	RedisDB       int    `mapstructure:"redis_db"`
	DatabaseURL   string `mapstructure:"database_url"`
}

// NotifyConfig configures operator-notice delivery.
type NotifyConfig struct {
	Backend    string `mapstructure:"backend"` // log or ses
	SESRegion  string `mapstructure:"ses_region"`
	FromEmail  string `mapstructure:"from_email"`
	OwnerEmail string `mapstructure:"owner_email"`
}

// Config is the full application configuration: server settings plus the
// externally supplied shipping-method configuration the pipeline consumes.
type Config struct {
	ServerPort   string `mapstructure:"server_port"`
	ClientOrigin string `mapstructure:"client_origin"`
	LogLevel     string `mapstructure:"log_level"`
	JWTSecret    string `mapstructure:"jwt_secret"`

	Cache  CacheConfig  `mapstructure:"cache"`
	Notify NotifyConfig `mapstructure:"notify"`

	Carrier carrier.Settings `mapstructure:"carrier"`
	Packing packing.Settings `mapstructure:"packing"`

	Quotes struct {
		Title             string `mapstructure:"title"`
		OfferRates        string `mapstructure:"offer_rates"`
		Fallback          string `mapstructure:"fallback"`
		AddressValidation bool   `mapstructure:"address_validation"`
	} `mapstructure:"quotes"`
}

// QuoteSettings builds the rate-policy settings, parsing the optional
// fallback rate.
func (c Config) QuoteSettings() (quotes.Settings, error) {
	fallback, err := quotes.Fallback(c.Quotes.Fallback)
	if err != nil {
		return quotes.Settings{}, err
	}
	return quotes.Settings{
		Title:             c.Quotes.Title,
		OfferRates:        c.Quotes.OfferRates,
		Fallback:          fallback,
		AddressValidation: c.Quotes.AddressValidation,
	}, nil
}

// LoadConfig reads config.yaml from the given path, with environment
// variables overriding file values.
func LoadConfig(path string) (Config, error) {
	viper.AddConfigPath(path)
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AutomaticEnv()

	viper.SetDefault("server_port", "8080")
	viper.SetDefault("log_level", "info")
	viper.SetDefault("cache.backend", "memory")
	viper.SetDefault("notify.backend", "log")
	viper.SetDefault("carrier.environment", "test")
	viper.SetDefault("carrier.auth_mode", "basic")
	viper.SetDefault("carrier.weight_unit", "KG")
	viper.SetDefault("carrier.dimension_unit", "cm")
	viper.SetDefault("carrier.store_currency", "USD")
	viper.SetDefault("packing.method", string(packing.PerItem))
	viper.SetDefault("packing.store_weight_unit", "kg")
	viper.SetDefault("packing.store_dimension_unit", "cm")
	viper.SetDefault("quotes.offer_rates", quotes.OfferAll)
	viper.SetDefault("quotes.title", "DHL Express")

	var cfg Config
	if err := viper.ReadInConfig(); err != nil {
		// A missing config file is fine; defaults and env cover it.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return cfg, err
		}
	}
	if err := viper.Unmarshal(&cfg); err != nil {
		return cfg, err
	}

	// The packing layer shares the carrier's target units, currency and
	// insurance flag so parcels always match the request they ride in.
	cfg.Packing.WeightUnit = cfg.Carrier.WeightUnit
	cfg.Packing.DimensionUnit = cfg.Carrier.DimensionUnit
	cfg.Packing.InsuredValue = cfg.Carrier.InsuredValue
	cfg.Packing.StoreCurrency = cfg.Carrier.StoreCurrency

	return cfg, nil
}
