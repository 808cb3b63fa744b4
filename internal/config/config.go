package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	HTTPAddr       string
	RedisAddr      string
	KafkaBrokers   []string
	ServiceName    string
	PaymentURL     string
	PaymentTimeout time.Duration
}

func Load() Config {
	return Config{
		HTTPAddr:       getenv("HTTP_ADDR", ":8081"),
		RedisAddr:      getenv("REDIS_ADDR", "redis:6379"),
		KafkaBrokers:   splitCSV(getenv("KAFKA_BROKERS", "kafka:9092")),
		ServiceName:    getenv("SERVICE_NAME", "pos-api"),
		PaymentURL:     getenv("PAYMENT_URL", "https://api.stripe.com/v2"),
		PaymentTimeout: time.Duration(getint("PAYMENT_TIMEOUT_MS", 5000)) * time.Millisecond,
	}
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getint(k string, def int) int {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return i
}

func splitCSV(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}
