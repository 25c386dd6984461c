package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	Port      string
	DBName    string
	JWTKey    string
	SaltRound int

	EmailSender string
	Password    string // SMTP Password

	UploadDir  string // Local directory for uploaded lecture media
	CDNBaseURL string // Base URL under which uploaded files are served

	PaymentApiURL    string // Payment gateway base URL
	PaymentKeyID     string // Payment gateway key id
	PaymentKeySecret string // Payment gateway key secret
	PaymentCurrency  string
}

// AppConfig is a global variable to access configuration
var AppConfig *Config

// LoadConfig initializes configuration from environment variables or defaults
func LoadConfig() {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found. Using system environment variables.")
	}

	// Initialize AppConfig with values from environment variables
	AppConfig = &Config{
		Port:      getEnv("PORT", "3000"),
		DBName:    getEnv("DB_NAME", "easylearn"),
		JWTKey:    getEnv("JWT_SECRET_KEY", "defaultSecret"),
		SaltRound: getEnvInt("SALT_ROUND", 10),

		EmailSender: getEnv("EMAIL_SENDER", "defaultSecret"),
		Password:    getEnv("PASSWORD", "defaultSecret"),

		UploadDir:  getEnv("UPLOAD_DIR", "./uploads"),
		CDNBaseURL: getEnv("CDN_BASE_URL", "/uploads"),

		PaymentApiURL:    getEnv("PAYMENT_API_URL", "https://api.razorpay.com/v1"),
		PaymentKeyID:     getEnv("PAYMENT_KEY_ID", "defaultSecret"),
		PaymentKeySecret: getEnv("PAYMENT_KEY_SECRET", "defaultSecret"),
		PaymentCurrency:  getEnv("PAYMENT_CURRENCY", "INR"),
	}

	// Validate critical configuration
	if AppConfig.JWTKey == "defaultSecret" {
		log.Println("Warning: Using default JWT_SECRET_KEY. Update it in your environment.")
	}
	if AppConfig.PaymentKeySecret == "defaultSecret" {
		log.Println("Warning: Using default PAYMENT_KEY_SECRET. Checkout will fail against the live gateway.")
	}
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvInt retrieves an environment variable as an integer or returns the default integer value
func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	intValue, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("Error converting environment variable %s to int: %v", key, err)
		return defaultValue
	}
	return intValue
}
