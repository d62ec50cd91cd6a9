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

	"github.com/ruslansymonenko/server-electro-grand/internal/models"
)

type Config struct {
	Port         string
	ServerDomain string
	LogLevel     string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	JWTSecret        string
	RefreshSecret    string
	AdminTokenSecret string
	AdminSecretKey   string
	CookieTTLDays    int

	ESURL      string
	ESUser     string
	ESPassword string

	KafkaAddress string

	SMTPHost      string
	SMTPPort      string
	SystemEmail   string
	SystemEmailPw string
	StaffEmail    string

	UploadsDir string
}

func Load() (*Config, error) {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("notice: .env file not found: %v, using system environment variables", err)
	}

	cfg := &Config{
		Port:         getenv("PORT", "4200"),
		ServerDomain: os.Getenv("SERVER_DOMAIN"),
		LogLevel:     getenv("LOG_LEVEL", "info"),

		DBHost:     os.Getenv("DB_HOST"),
		DBPort:     getenv("DB_PORT", "5432"),
		DBUser:     os.Getenv("DB_USER"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     os.Getenv("DB_NAME"),

		JWTSecret:        os.Getenv("JWT_SECRET"),
		RefreshSecret:    os.Getenv("REFRESH_SECRET"),
		AdminTokenSecret: os.Getenv("ADMIN_TOKEN_SECRET"),
		AdminSecretKey:   os.Getenv("ADMIN_SECRET_KEY"),
		CookieTTLDays:    getenvInt("COOKIE_TTL_DAYS", 1),

		ESURL:      os.Getenv("ES_URL"),
		ESUser:     os.Getenv("ES_USER"),
		ESPassword: os.Getenv("ES_PASSWORD"),

		KafkaAddress: os.Getenv("KAFKA_ADDRESS"),

		SMTPHost:      os.Getenv("SMTP_HOST"),
		SMTPPort:      getenv("SMTP_PORT", "587"),
		SystemEmail:   os.Getenv("SYSTEM_EMAIL"),
		SystemEmailPw: os.Getenv("SYSTEM_EMAIL_PASSWORD"),
		StaffEmail:    os.Getenv("STAFF_EMAIL"),

		UploadsDir: getenv("UPLOADS_DIR", "public/uploads"),
	}

	if cfg.JWTSecret == "" || cfg.RefreshSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET and REFRESH_SECRET must be set")
	}
	// an enabled admin gate must not sign elevation tokens with an empty key
	if cfg.AdminSecretKey != "" && cfg.AdminTokenSecret == "" {
		return nil, fmt.Errorf("ADMIN_TOKEN_SECRET must be set when ADMIN_SECRET_KEY is set")
	}

	return cfg, nil
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func InitDB(cfg *Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=disable",
		cfg.DBUser, cfg.DBPassword, cfg.DBHost, cfg.DBPort, cfg.DBName,
	)
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Subcategory{},
		&models.Brand{},
		&models.Product{},
		&models.Attribute{},
		&models.AttributeValue{},
		&models.ProductAttribute{},
		&models.Order{},
		&models.OrderItem{},
		&models.Payment{},
		&models.Review{},
	)
	if err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}
	return nil
}
