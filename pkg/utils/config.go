package utils

import (
	"github.com/spf13/viper"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Redis    RedisConfig
	JWT      JWTConfig
	Email    EmailConfig
	OTP      OTPConfig
	Checkout CheckoutConfig
	Media    MediaConfig
}

type AppConfig struct {
	Name    string
	Port    string
	Debug   bool
	LogPath string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	MaxConns int32
}

type RedisConfig struct {
	Addr string
}

type JWTConfig struct {
	Secret            string
	AccessExpiryMins  int
	RefreshExpiryDays int
}

type EmailConfig struct {
	Host     string
	Port     string
	From     string
	FromName string
}

type OTPConfig struct {
	ExpiryMinutes     int
	Length            int
	MaxAttempts       int
	ResendCooldown    int // seconds
	SweepIntervalMins int
}

type CheckoutConfig struct {
	TaxRate           float64
	ShippingFee       float64
	FreeShipThreshold float64
}

type MediaConfig struct {
	UploadDir string
	BaseURL   string
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.SetConfigType("env")

	// Set defaults
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("DEBUG", false)
	viper.SetDefault("DB_MAX_CONNS", 10)
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("JWT_ACCESS_EXPIRY_MINUTES", 30)
	viper.SetDefault("JWT_REFRESH_EXPIRY_DAYS", 7)
	viper.SetDefault("OTP_EXPIRY_MINUTES", 10)
	viper.SetDefault("OTP_LENGTH", 6)
	viper.SetDefault("OTP_MAX_ATTEMPTS", 3)
	viper.SetDefault("OTP_RESEND_COOLDOWN_SECONDS", 60)
	viper.SetDefault("OTP_SWEEP_INTERVAL_MINUTES", 15)
	viper.SetDefault("TAX_RATE", 0.12)
	viper.SetDefault("SHIPPING_FEE", 10.0)
	viper.SetDefault("FREE_SHIPPING_THRESHOLD", 1000.0)
	viper.SetDefault("UPLOAD_DIR", "uploads/products")
	viper.SetDefault("MEDIA_BASE_URL", "http://localhost:8080")
	viper.SetDefault("LOG_PATH", "logs/")

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	viper.AutomaticEnv()

	config := &Config{
		App: AppConfig{
			Name:    viper.GetString("APP_NAME"),
			Port:    viper.GetString("PORT"),
			Debug:   viper.GetBool("DEBUG"),
			LogPath: viper.GetString("LOG_PATH"),
		},
		Database: DatabaseConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			Name:     viper.GetString("DB_NAME"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASS"),
			MaxConns: viper.GetInt32("DB_MAX_CONNS"),
		},
		Redis: RedisConfig{
			Addr: viper.GetString("REDIS_ADDR"),
		},
		JWT: JWTConfig{
			Secret:            viper.GetString("JWT_SECRET"),
			AccessExpiryMins:  viper.GetInt("JWT_ACCESS_EXPIRY_MINUTES"),
			RefreshExpiryDays: viper.GetInt("JWT_REFRESH_EXPIRY_DAYS"),
		},
		Email: EmailConfig{
			Host:     viper.GetString("SMTP_HOST"),
			Port:     viper.GetString("SMTP_PORT"),
			From:     viper.GetString("EMAIL_FROM"),
			FromName: viper.GetString("EMAIL_FROM_NAME"),
		},
		OTP: OTPConfig{
			ExpiryMinutes:     viper.GetInt("OTP_EXPIRY_MINUTES"),
			Length:            viper.GetInt("OTP_LENGTH"),
			MaxAttempts:       viper.GetInt("OTP_MAX_ATTEMPTS"),
			ResendCooldown:    viper.GetInt("OTP_RESEND_COOLDOWN_SECONDS"),
			SweepIntervalMins: viper.GetInt("OTP_SWEEP_INTERVAL_MINUTES"),
		},
		Checkout: CheckoutConfig{
			TaxRate:           viper.GetFloat64("TAX_RATE"),
			ShippingFee:       viper.GetFloat64("SHIPPING_FEE"),
			FreeShipThreshold: viper.GetFloat64("FREE_SHIPPING_THRESHOLD"),
		},
		Media: MediaConfig{
			UploadDir: viper.GetString("UPLOAD_DIR"),
			BaseURL:   viper.GetString("MEDIA_BASE_URL"),
		},
	}

	return config, nil
}
