package main

import (
	"context"
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/kudakan/kudakan-api/config"
	"github.com/kudakan/kudakan-api/models"
	"github.com/kudakan/kudakan-api/router"
	"github.com/kudakan/kudakan-api/services"
	"github.com/kudakan/kudakan-api/utils"
	"gorm.io/gorm"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found or error loading: %v", err)
	}
	utils.InitLogger()

	cfg := config.Load()

	if os.Getenv("GIN_MODE") == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := config.InitDB(cfg)
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to connect to database: %v", err)
	}
	autoMigrate(db)

	tokenMaker := utils.NewTokenMaker(cfg.JWTSecret, cfg.TokenTTL)

	images, err := services.NewS3ImageStore(context.Background(), cfg.S3Region, cfg.S3Bucket, cfg.S3BaseURL)
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to configure image storage: %v", err)
	}

	r := router.SetupRouter(db, tokenMaker, images)

	utils.InfoLogger.Printf("Listening on port %s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		utils.ErrorLogger.Fatal(err)
	}
}

func autoMigrate(db *gorm.DB) {
	err := db.AutoMigrate(
		&models.Mahasiswa{},
		&models.Kantin{},
		&models.Menu{},
		&models.Pesanan{},
		&models.DetailPesanan{},
	)
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to AutoMigrate: %v", err)
	}
	utils.InfoLogger.Println("AutoMigrate completed.")
}
