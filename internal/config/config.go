package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	minSecretKeyLength    = 32
	defaultTokenTTLHours  = 168
	insecureSecretDefault = "change_me_in_production"
)

var defaultDBPath = filepath.Join("data", "graceflow.db")

var (
	ErrSecretKeyMissing  = errors.New("SECRET_KEY is required")
	ErrSecretKeyInsecure = errors.New("SECRET_KEY uses an insecure placeholder")
	ErrSecretKeyTooShort = fmt.Errorf("SECRET_KEY must be at least %d characters", minSecretKeyLength)
)

type Config struct {
	Port      string
	DBPath    string
	SecretKey string
	Location  *time.Location
	TokenTTL  time.Duration
}

// Load reads an optional .env file from the working directory and then the
// process environment. Variables already set in the environment win over
// the file.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}
	return FromEnv()
}

// DatabasePath resolves DB_PATH like Load does, without requiring the server
// settings. Maintenance commands use it.
func DatabasePath() string {
	_ = godotenv.Load()
	return getEnv("DB_PATH", defaultDBPath)
}

func FromEnv() (Config, error) {
	secretKey, err := resolveSecretKey()
	if err != nil {
		return Config{}, err
	}

	port, err := resolvePort()
	if err != nil {
		return Config{}, err
	}

	tokenTTL, err := resolveTokenTTL()
	if err != nil {
		return Config{}, err
	}

	return Config{
		Port:      port,
		DBPath:    getEnv("DB_PATH", defaultDBPath),
		SecretKey: secretKey,
		Location:  mustLoadLocation(getEnv("TZ", "UTC")),
		TokenTTL:  tokenTTL,
	}, nil
}

func resolveSecretKey() (string, error) {
	secretKey := strings.TrimSpace(os.Getenv("SECRET_KEY"))
	switch {
	case secretKey == "":
		return "", ErrSecretKeyMissing
	case secretKey == insecureSecretDefault:
		return "", ErrSecretKeyInsecure
	case len(secretKey) < minSecretKeyLength:
		return "", ErrSecretKeyTooShort
	}
	return secretKey, nil
}

func resolvePort() (string, error) {
	port := getEnv("PORT", "8080")
	value, err := strconv.Atoi(port)
	if err != nil || value < 1 || value > 65535 {
		return "", fmt.Errorf("invalid PORT %q", port)
	}
	return port, nil
}

func resolveTokenTTL() (time.Duration, error) {
	raw := getEnv("TOKEN_TTL_HOURS", strconv.Itoa(defaultTokenTTLHours))
	hours, err := strconv.Atoi(raw)
	if err != nil || hours <= 0 {
		return 0, fmt.Errorf("invalid TOKEN_TTL_HOURS %q", raw)
	}
	return time.Duration(hours) * time.Hour, nil
}

func mustLoadLocation(name string) *time.Location {
	location, err := time.LoadLocation(name)
	if err != nil {
		log.Printf("invalid TZ %q, falling back to UTC", name)
		return time.UTC
	}
	return location
}

func getEnv(key string, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}
