package config

import (
	"os"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// Config is read once at startup; nothing else touches the environment
// afterwards.
type Config struct {
	Port      string
	DBDSN     string
	JWTSecret string
	TokenTTL  time.Duration
	S3Region  string
	S3Bucket  string
	S3BaseURL string
}

func Load() Config {
	cfg := Config{
		Port:      getEnv("PORT", "8080"),
		DBDSN:     getEnv("DB_DSN", "root:root@tcp(127.0.0.1:3306)/kudakan?charset=utf8mb4&parseTime=True&loc=Local"),
		JWTSecret: getEnv("JWT_SECRET", "change-me-in-production"),
		TokenTTL:  30 * time.Minute,
		S3Region:  getEnv("S3_REGION", "ap-southeast-1"),
		S3Bucket:  getEnv("S3_BUCKET", "kudakan-menu-images"),
		S3BaseURL: getEnv("S3_BASE_URL", "https://s3.ap-southeast-1.amazonaws.com"),
	}

	if ttl := os.Getenv("TOKEN_TTL"); ttl != "" {
		if d, err := time.ParseDuration(ttl); err == nil && d > 0 {
			cfg.TokenTTL = d
		}
	}
	return cfg
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func InitDB(cfg Config) (*gorm.DB, error) {
	db, err := gorm.Open(mysql.Open(cfg.DBDSN), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(time.Hour)

	return db, nil
}
