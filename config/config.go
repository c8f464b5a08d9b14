package config

import (
	"log"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	Env               string `mapstructure:"ENV"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// Upstream aggregator API.
	UpstreamBaseURL string `mapstructure:"UPSTREAM_BASE_URL"`
	// Country calling prefix prepended to local phone numbers before OTP requests.
	PhonePrefix string `mapstructure:"PHONE_PREFIX"`
	// MockOTP forwards isMock=true on OTP generation (never in production).
	MockOTP bool `mapstructure:"MOCK_OTP"`

	// MongoDB (booking audit + reconciliation records).
	DatabaseURL string `mapstructure:"DATABASE_URL"`

	// Redis configuration.
	RedisAddr       string `mapstructure:"REDIS_ADDR"`
	RedisPassword   string `mapstructure:"REDIS_PASSWORD"`
	RedisSessionDB  int    `mapstructure:"REDIS_SESSION_DB"`
	RedisCheckoutDB int    `mapstructure:"REDIS_CHECKOUT_DB"`
	RedisAuthFlowDB int    `mapstructure:"REDIS_AUTHFLOW_DB"`
	// Queue database for the reconciliation worker.
	RedisReconcileQueueDB int `mapstructure:"REDIS_RECONCILE_QUEUE_DB"`

	// Payment gateway (Razorpay) credentials.
	RazorpayKeyID  string `mapstructure:"RAZORPAY_KEY_ID"`
	RazorpaySecret string `mapstructure:"RAZORPAY_SECRET"`

	// Analytics.
	MixpanelToken string `mapstructure:"MIXPANEL_TOKEN"`
}

var AppConfig Config

func LoadConfig() {
	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	// Automatically use environment variables where available.
	viper.AutomaticEnv()

	// Set default values.
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 100)
	viper.SetDefault("UPSTREAM_BASE_URL", "http://localhost:9000")
	viper.SetDefault("PHONE_PREFIX", "+91")
	viper.SetDefault("MOCK_OTP", false)
	viper.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_SESSION_DB", 0)
	viper.SetDefault("REDIS_CHECKOUT_DB", 1)
	viper.SetDefault("REDIS_AUTHFLOW_DB", 2)
	viper.SetDefault("REDIS_RECONCILE_QUEUE_DB", 3)
	viper.SetDefault("RAZORPAY_KEY_ID", "")
	viper.SetDefault("RAZORPAY_SECRET", "")
	viper.SetDefault("MIXPANEL_TOKEN", "")

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}
