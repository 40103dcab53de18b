package config

import (
	"os"
	"strconv"
)

type Config struct {
	Port    string
	GinMode string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	RedisAddr         string
	KafkaBroker       string
	NotificationTopic string

	JWTSecret    string
	OpenAIAPIKey string

	// Seed credentials for the initial admin account.
	AdminUsername string
	AdminPassword string

	// Yearly leave allowance granted to every new user.
	TotalLeavesPerYear int

	// When true, rejecting a pending leave request credits the debited days
	// back to the user. Default off: rejected days stay spent.
	LeaveRefundOnRejection bool
}

func Load() *Config {
	return &Config{
		Port:    getEnv("PORT", "3000"),
		GinMode: getEnv("GIN_MODE", "debug"),

		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "hr"),
		DBPassword: getEnv("DB_PASSWORD", "hr"),
		DBName:     getEnv("DB_NAME", "hr_dashboard"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		RedisAddr:         getEnv("REDIS_ADDR", "localhost:6379"),
		KafkaBroker:       getEnv("KAFKA_BROKER", ""),
		NotificationTopic: getEnv("NOTIFICATION_TOPIC", "hr.notifications"),

		JWTSecret:    getEnv("JWT_SECRET", ""),
		OpenAIAPIKey: getEnv("OPENAI_API_KEY", ""),

		AdminUsername: getEnv("ADMIN_USERNAME", "admin"),
		AdminPassword: getEnv("ADMIN_PASSWORD", ""),

		TotalLeavesPerYear:     getEnvInt("TOTAL_LEAVES_PER_YEAR", 20),
		LeaveRefundOnRejection: getEnvBool("LEAVE_REFUND_ON_REJECTION", false),
	}
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return n
}

func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}
	return b
}
