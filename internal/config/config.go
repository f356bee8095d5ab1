package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Project  ProjectConfig
	Database DatabaseConfig
	Logger   LoggerConfig
	Output   OutputConfig
}

type ProjectConfig struct {
	// DirName is the marker directory that makes a working directory a deposito project.
	DirName          string
	DefaultWarehouse string
}

type DatabaseConfig struct {
	URL             string
	File            string
	MaxOpenConns    int
	ConnMaxLifetime time.Duration
}

type LoggerConfig struct {
	Level  string
	Format string
}

type OutputConfig struct {
	NoColor bool
}

// Load reads .env files from the working directory and from the marker
// directory inside it, then builds the config from the environment.
// Variables already present in the environment are never overridden.
func Load(workDir string) *Config {
	_ = godotenv.Load(filepath.Join(workDir, ".env"))

	dirName := getEnv("DEPOSITO_DIR", "deposito")
	_ = godotenv.Load(filepath.Join(workDir, dirName, ".env"))

	return &Config{
		Project: ProjectConfig{
			DirName:          dirName,
			DefaultWarehouse: getEnv("DEPOSITO_WAREHOUSE", ""),
		},
		Database: DatabaseConfig{
			URL:             getEnv("DATABASE_URL", ""),
			File:            getEnv("DEPOSITO_DB_FILE", "deposito.db"),
			MaxOpenConns:    getEnvInt("DATABASE_MAX_OPEN_CONNS", 4),
			ConnMaxLifetime: time.Duration(getEnvInt("DATABASE_CONN_MAX_LIFETIME", 300)) * time.Second,
		},
		Logger: LoggerConfig{
			Level:  getEnv("LOG_LEVEL", "warn"),
			Format: getEnv("LOG_FORMAT", "console"),
		},
		Output: OutputConfig{
			NoColor: os.Getenv("NO_COLOR") != "" || getEnvBool("DEPOSITO_NO_COLOR", false),
		},
	}
}

// DatabasePath is the SQLite file location for a project rooted at workDir.
func (c *Config) DatabasePath(workDir string) string {
	return filepath.Join(workDir, c.Project.DirName, c.Database.File)
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && strings.TrimSpace(value) != "" {
		return strings.TrimSpace(value)
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return fallback
}
