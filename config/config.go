// Package config reads the advisor settings from the environment.
package config

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds the settings of the ias command and server.
type Config struct {
	Store        string // memory, file, redis or postgres
	DataDir      string // snapshot directory of the file store
	User         string // user id of the command line
	StartingCash float64
	ListenAddr   string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	JWTSecret string

	CatalogFile string // JSON array of instruments, empty for the built-in catalog

	PriceFile string // JSON document of prices, empty to use the catalog prices
	PricePath string // JSONPath of the prices in PriceFile
}

// Load reads a .env file if present, then the environment.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using environment variables")
	}
	return &Config{
		Store:         getEnv("ADVISOR_STORE", "file"),
		DataDir:       getEnv("ADVISOR_DATA_DIR", ".advisor"),
		User:          getEnv("ADVISOR_USER", "local"),
		StartingCash:  getEnvAsCash("ADVISOR_STARTING_CASH", 100000),
		ListenAddr:    getEnv("ADVISOR_LISTEN_ADDR", ":8080"),
		RedisAddr:     getEnv("REDIS_ADDR", "127.0.0.1:6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvAsInt("REDIS_DB", 0),
		DBHost:        getEnv("DB_HOST", "localhost"),
		DBPort:        getEnv("DB_PORT", "5432"),
		DBUser:        getEnv("DB_USER", "postgres"),
		DBPassword:    getEnv("DB_PASSWORD", ""),
		DBName:        getEnv("DB_NAME", "advisor"),
		JWTSecret:     getEnv("JWT_SECRET", ""),
		CatalogFile:   getEnv("ADVISOR_CATALOG_FILE", ""),
		PriceFile:     getEnv("ADVISOR_PRICE_FILE", ""),
		PricePath:     getEnv("ADVISOR_PRICE_PATH", "$"),
	}
}

// PostgresDSN returns the connection string of the postgres store.
func (c *Config) PostgresDSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=Asia/Kolkata",
		c.DBHost, c.DBUser, c.DBPassword, c.DBName, c.DBPort)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	s := os.Getenv(key)
	if s == "" {
		return fallback
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		log.Printf("invalid %s=%q, using %d", key, s, fallback)
		return fallback
	}
	return v
}

func getEnvAsFloat64(key string, fallback float64) float64 {
	s := os.Getenv(key)
	if s == "" {
		return fallback
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		log.Printf("invalid %s=%q, using %v", key, s, fallback)
		return fallback
	}
	return v
}

// getEnvAsCash is getEnvAsFloat64 for amounts that cannot be negative.
func getEnvAsCash(key string, fallback float64) float64 {
	v := getEnvAsFloat64(key, fallback)
	if v < 0 {
		log.Printf("negative %s=%v, using %v", key, v, fallback)
		return fallback
	}
	return v
}
