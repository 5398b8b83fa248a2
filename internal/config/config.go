package config

import (
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server   ServerConfig
	MongoDB  MongoDBConfig
	JWT      JWTConfig
	Jackpot  JackpotConfig
	Payments PaymentsConfig
	LogLevel string
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Port         string
	AllowedHosts []string
}

// MongoDBConfig holds MongoDB-specific configuration
type MongoDBConfig struct {
	URI      string
	Database string
}

// JWTConfig holds JWT-specific configuration
type JWTConfig struct {
	Secret    string
	ExpiresIn int
}

// JackpotConfig holds the parameters new jackpot pools are created with.
// Existing pools keep the values they were created with.
type JackpotConfig struct {
	ActivationThreshold float64
	WeeklyCap           float64
	TimeZone            string
}

// PaymentsConfig holds payment-processor-specific configuration
type PaymentsConfig struct {
	BaseURL string
	APIKey  string
	MockAPI bool
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	viper.AutomaticEnv()

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		// It's okay if config file is not found, we'll use environment variables
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}
	applyEnvOverrides(&config)

	return &config, nil
}

// applyEnvOverrides applies flat environment variables on top of the file
// config. AutomaticEnv does not reach nested keys or slices, so the ones
// deployments actually set are bound by hand.
func applyEnvOverrides(config *Config) {
	config.Server.Port = GetEnv("PORT", config.Server.Port)
	config.Server.AllowedHosts = GetEnvAsSlice("ALLOWED_HOSTS", ",", config.Server.AllowedHosts)
	config.MongoDB.URI = GetEnv("MONGODB_URI", config.MongoDB.URI)
	config.MongoDB.Database = GetEnv("MONGODB_DATABASE", config.MongoDB.Database)
	config.JWT.Secret = GetEnv("JWT_SECRET", config.JWT.Secret)
	config.JWT.ExpiresIn = GetEnvAsInt("JWT_EXPIRES_IN", config.JWT.ExpiresIn)
	config.Jackpot.TimeZone = GetEnv("JACKPOT_TIMEZONE", config.Jackpot.TimeZone)
	config.Payments.BaseURL = GetEnv("PAYMENTS_BASE_URL", config.Payments.BaseURL)
	config.Payments.APIKey = GetEnv("PAYMENTS_API_KEY", config.Payments.APIKey)
	config.Payments.MockAPI = GetEnvAsBool("PAYMENTS_MOCK_API", config.Payments.MockAPI)
}

// setDefaults sets default values for configuration
func setDefaults() {
	viper.SetDefault("Server.Port", "4000")
	viper.SetDefault("Server.AllowedHosts", []string{"localhost:3000"})
	viper.SetDefault("MongoDB.URI", "mongodb://localhost:27017")
	viper.SetDefault("MongoDB.Database", "dimesonly")
	viper.SetDefault("JWT.ExpiresIn", 24*60*60) // 24 hours
	viper.SetDefault("Jackpot.ActivationThreshold", 1000.0)
	viper.SetDefault("Jackpot.WeeklyCap", 250000.0)
	viper.SetDefault("Jackpot.TimeZone", "America/New_York")
	viper.SetDefault("Payments.MockAPI", true)
	viper.SetDefault("LogLevel", "info")
}
