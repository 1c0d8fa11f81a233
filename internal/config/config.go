package config

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/hairlyf/backend/internal/models"
)

type Config struct {
	PORT        string
	DB_HOST     string
	DB_PORT     string
	DB_USER     string
	DB_PASSWORD string
	DB_NAME     string

	JWT_SECRET string

	ES_URL      string
	ES_USER     string
	ES_PASSWORD string
	ES_INDEX    string

	KAFKA_ADDRESS string

	SMTP_HOST     string
	SMTP_PORT     int
	SMTP_USER     string
	SMTP_PASSWORD string
	FRONTEND_URL  string

	LOG_LEVEL string

	// Policy flags, see DESIGN.md.
	REQUIRE_EMAIL_VERIFICATION bool
	RESERVE_STOCK_ON_ORDER     bool
	MIN_PASSWORD_LENGTH        int
}

func LoadConfig() (*Config, error) {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Notice: .env file not found: %v. Using system environment variables", err)
	}

	config := &Config{
		PORT:        getEnvDefault("PORT", "8080"),
		DB_HOST:     os.Getenv("DB_HOST"),
		DB_PORT:     os.Getenv("DB_PORT"),
		DB_USER:     os.Getenv("DB_USER"),
		DB_PASSWORD: os.Getenv("DB_PASSWORD"),
		DB_NAME:     os.Getenv("DB_NAME"),

		JWT_SECRET: os.Getenv("JWT_SECRET"),

		ES_URL:      os.Getenv("ES_URL"),
		ES_USER:     os.Getenv("ES_USER"),
		ES_PASSWORD: os.Getenv("ES_PASSWORD"),
		ES_INDEX:    getEnvDefault("ES_INDEX", "products"),

		KAFKA_ADDRESS: os.Getenv("KAFKA_ADDRESS"),

		SMTP_HOST:     os.Getenv("SMTP_HOST"),
		SMTP_PORT:     getEnvInt("SMTP_PORT", 587),
		SMTP_USER:     os.Getenv("SMTP_USER"),
		SMTP_PASSWORD: os.Getenv("SMTP_PASSWORD"),
		FRONTEND_URL:  getEnvDefault("FRONTEND_URL", "http://localhost:3000"),

		LOG_LEVEL: getEnvDefault("LOG_LEVEL", "info"),

		REQUIRE_EMAIL_VERIFICATION: getEnvBool("REQUIRE_EMAIL_VERIFICATION", false),
		RESERVE_STOCK_ON_ORDER:     getEnvBool("RESERVE_STOCK_ON_ORDER", true),
		MIN_PASSWORD_LENGTH:        getEnvInt("MIN_PASSWORD_LENGTH", 6),
	}

	if config.JWT_SECRET == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	return config, nil
}

func InitDB(cfg *Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=disable",
		cfg.DB_USER, cfg.DB_PASSWORD, cfg.DB_HOST, cfg.DB_PORT, cfg.DB_NAME,
	)
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("cannot connect to database: %w", err)
	}
	if err := Migrate(db); err != nil {
		return nil, fmt.Errorf("cannot run migrations: %w", err)
	}
	return db, nil
}

// Migrate is shared with the test harness, which runs it against an
// in-memory sqlite database instead of postgres.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Product{},
		&models.Review{},
		&models.ProductVariant{},
		&models.CartItem{},
		&models.WishlistItem{},
		&models.Order{},
		&models.OrderItem{},
	)
}

func getEnvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}
