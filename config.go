package main

import (
	"fmt"
	"os"
)

// Config holds all environment variables for the purchase-service.
type Config struct {
	Port     string // Service port (default: 8084)
	MongoURL string // MongoDB connection string
	MongoDB  string // Database name (default: purchases)
	RedisURL string // Redis connection string for the analytics cache
	Env      string // "production" or "development"
}

// LoadConfig loads environment variables into Config struct and validates them.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		Port:     os.Getenv("PORT"),
		MongoURL: os.Getenv("MONGO_URL"),
		MongoDB:  os.Getenv("MONGO_DB"),
		RedisURL: os.Getenv("REDIS_URL"),
		Env:      os.Getenv("ENV"),
	}

	if cfg.Port == "" {
		cfg.Port = "8084"
	}
	if cfg.MongoDB == "" {
		cfg.MongoDB = "purchases"
	}
	if cfg.RedisURL == "" {
		cfg.RedisURL = "redis://redis:6379"
	}
	if cfg.Env == "" {
		cfg.Env = "development"
	}

	if cfg.MongoURL == "" {
		return nil, fmt.Errorf("MONGO_URL is required")
	}

	return cfg, nil
}
