package config

import (
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Config holds all application configuration, loaded from environment
// variables with sensible local-development defaults.
type Config struct {
	AppPort     string
	DatabaseDSN string
	JWTSecret   string
	RabbitMQURL string
	SeedData    bool

	TaxRate      decimal.Decimal
	ShippingFlat decimal.Decimal

	ReviewMinLength int

	PlaidClientID   string
	PlaidSecret     string
	PlaidEnv        string
	PlaidClientName string
}

// Load reads configuration from the environment via Viper.
func Load() Config {
	viper.SetDefault("APP_PORT", ":8080")
	viper.SetDefault("DATABASE_DSN", "")
	viper.SetDefault("JWT_SECRET", "session-secret")
	viper.SetDefault("RABBITMQ_URL", "")
	viper.SetDefault("SEED_DATA", true)
	viper.SetDefault("TAX_RATE", "0.1")
	viper.SetDefault("SHIPPING_FLAT", "9.99")
	viper.SetDefault("REVIEW_MIN_LENGTH", 3)
	viper.SetDefault("PLAID_CLIENT_ID", "")
	viper.SetDefault("PLAID_SECRET", "")
	viper.SetDefault("PLAID_ENV", "sandbox")
	viper.SetDefault("PLAID_CLIENT_NAME", "Storefront")
	viper.AutomaticEnv()

	taxRate, err := decimal.NewFromString(viper.GetString("TAX_RATE"))
	if err != nil {
		taxRate = decimal.NewFromFloat(0.1)
	}
	shipping, err := decimal.NewFromString(viper.GetString("SHIPPING_FLAT"))
	if err != nil {
		shipping = decimal.NewFromFloat(9.99)
	}

	return Config{
		AppPort:         viper.GetString("APP_PORT"),
		DatabaseDSN:     viper.GetString("DATABASE_DSN"),
		JWTSecret:       viper.GetString("JWT_SECRET"),
		RabbitMQURL:     viper.GetString("RABBITMQ_URL"),
		SeedData:        viper.GetBool("SEED_DATA"),
		TaxRate:         taxRate,
		ShippingFlat:    shipping,
		ReviewMinLength: viper.GetInt("REVIEW_MIN_LENGTH"),
		PlaidClientID:   viper.GetString("PLAID_CLIENT_ID"),
		PlaidSecret:     viper.GetString("PLAID_SECRET"),
		PlaidEnv:        viper.GetString("PLAID_ENV"),
		PlaidClientName: viper.GetString("PLAID_CLIENT_NAME"),
	}
}
