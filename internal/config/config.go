package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	MySQLDSN        string
	RedisAddr       string
	KafkaBrokers    []string // empty disables event publishing
	KafkaTopic      string
	ServerPort      string
	GuardBackend    string // "memory" or "redis"
	GuardTTLSeconds int    // redis guard only
}

func Load() *Config {
	// Load .env file if exists
	godotenv.Load()

	return &Config{
		MySQLDSN:        getEnv("MYSQL_DSN", "root:root@tcp(localhost:3306)/supplierhub?parseTime=true"),
		RedisAddr:       getEnv("REDIS_ADDR", "localhost:6379"),
		KafkaBrokers:    splitCSV(getEnv("KAFKA_BROKERS", "")),
		KafkaTopic:      getEnv("KAFKA_TOPIC", "order-transitions"),
		ServerPort:      getEnv("SERVER_PORT", "8080"),
		GuardBackend:    getEnv("GUARD_BACKEND", "memory"),
		GuardTTLSeconds: getEnvAsInt("GUARD_TTL_SECONDS", 30),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func splitCSV(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}
