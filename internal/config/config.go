package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/courseforge/courseforge/internal/cache"
	_ "github.com/joho/godotenv/autoload"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Config is the process configuration, read from the environment with a
// .env file loaded when present.
type Config struct {
	Env      string
	HTTPPort string

	DBDriver   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBPath     string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	SessionKey     string
	ExternalAPIKey string
	Compression    string
	SecureCookies  bool
}

func LoadConfig() *Config {
	return &Config{
		Env:      getEnv("ENV", "development"),
		HTTPPort: getEnv("PORT", "8080"),

		DBDriver:   getEnv("DB_DRIVER", "sqlite"),
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "courseforge"),
		DBPassword: getEnv("DB_PASSWORD", "courseforge"),
		DBName:     getEnv("DB_NAME", "courseforge"),
		DBPath:     getEnv("DB_PATH", ".db/courseforge.db"),

		RedisAddr:     getEnv("REDIS_ADDR", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvAsInt("REDIS_DB", 0),

		SessionKey:     getEnv("SESSION_KEY", "courseforge-dev-key"),
		ExternalAPIKey: getEnv("EXTERNAL_API_KEY", ""),
		Compression:    getEnv("COMPRESSION", "gzip"),
		SecureCookies:  getEnv("ENV", "development") == "production",
	}
}

// GetDB opens the configured database. Unknown drivers fall back to the
// sqlite file so a bare checkout runs without setup.
func GetDB(cnf *Config) *gorm.DB {
	var (
		db  *gorm.DB
		err error
	)

	switch cnf.DBDriver {
	case "postgres":
		dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
			cnf.DBHost, cnf.DBPort, cnf.DBUser, cnf.DBPassword, cnf.DBName)
		db, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	default:
		if err := os.MkdirAll(".db", os.ModePerm); err != nil {
			logrus.Fatalf("failed to create db dir: %v", err)
		}
		db, err = gorm.Open(sqlite.Open(cnf.DBPath), &gorm.Config{})
	}
	if err != nil {
		logrus.Fatalf("failed to connect to database: %v", err)
	}

	return db
}

// GetRedis connects to redis when REDIS_ADDR is set, nil otherwise.
func GetRedis(cnf *Config) *cache.Redis {
	if cnf.RedisAddr == "" {
		return nil
	}
	return cache.NewRedis(cnf.RedisAddr, cnf.RedisPassword, cnf.RedisDB)
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	v := getEnv(key, "")
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		logrus.Warnf("invalid value for %s, using default %d", key, fallback)
		return fallback
	}
	return n
}
