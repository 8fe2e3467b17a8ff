package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config holds all configuration for the application
// Following 12-factor app principles, all config is loaded from environment variables
type Config struct {
	Server    ServerConfig
	CORS      CORSConfig
	Registers RegisterConfig
	Login     LoginConfig
	LogLevel  string
}

type ServerConfig struct {
	Port            string
	Host            string
	ReadTimeout     int
	WriteTimeout    int
	ShutdownTimeout int
}

type CORSConfig struct {
	AllowedOrigins []string
}

// RegisterConfig describes the register grid shown to cashiers
type RegisterConfig struct {
	Count int
	InUse []int // IDs that start out occupied
}

type LoginConfig struct {
	PasswordMinLength int
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	inUse, err := getEnvAsIntSlice("REGISTERS_IN_USE", []int{1, 2})
	if err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:            getEnv("PORT", "8080"),
			Host:            getEnv("HOST", "0.0.0.0"),
			ReadTimeout:     getEnvAsInt("READ_TIMEOUT", 15),
			WriteTimeout:    getEnvAsInt("WRITE_TIMEOUT", 15),
			ShutdownTimeout: getEnvAsInt("SHUTDOWN_TIMEOUT", 30),
		},
		CORS: CORSConfig{
			AllowedOrigins: getEnvAsSlice("CORS_ALLOWED_ORIGINS", []string{"*"}),
		},
		Registers: RegisterConfig{
			Count: getEnvAsInt("REGISTER_COUNT", 6),
			InUse: inUse,
		},
		Login: LoginConfig{
			PasswordMinLength: getEnvAsInt("PASSWORD_MIN_LENGTH", 6),
		},
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("PORT is required")
	}

	if c.Registers.Count < 1 {
		return fmt.Errorf("REGISTER_COUNT must be at least 1, got %d", c.Registers.Count)
	}

	for _, id := range c.Registers.InUse {
		if id < 1 || id > c.Registers.Count {
			return fmt.Errorf("REGISTERS_IN_USE contains %d, outside 1..%d", id, c.Registers.Count)
		}
	}

	if c.Login.PasswordMinLength < 1 {
		return fmt.Errorf("PASSWORD_MIN_LENGTH must be at least 1, got %d", c.Login.PasswordMinLength)
	}

	if len(c.CORS.AllowedOrigins) == 0 {
		return fmt.Errorf("at least one CORS origin must be configured")
	}

	validLogLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLogLevels[strings.ToLower(c.LogLevel)] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.LogLevel)
	}

	return nil
}

// Helper functions for reading environment variables

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsSlice(key string, defaultValue []string) []string {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	var out []string
	for _, part := range strings.Split(valueStr, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// getEnvAsIntSlice parses a comma-separated list of integers.
// Unlike the scalar helpers it reports malformed entries instead of
// falling back to the default.
func getEnvAsIntSlice(key string, defaultValue []int) ([]int, error) {
	if os.Getenv(key) == "" {
		return defaultValue, nil
	}

	parts := getEnvAsSlice(key, nil)
	out := make([]int, 0, len(parts))
	for _, part := range parts {
		value, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("%s: %q is not an integer", key, part)
		}
		out = append(out, value)
	}
	return out, nil
}
