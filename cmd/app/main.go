package main

import (
	"github.com/BenHowl/ReceiptChef/cmd/config"
	migration "github.com/BenHowl/ReceiptChef/cmd/database/migrate"
	"github.com/BenHowl/ReceiptChef/internal/utils"
	"github.com/gofiber/fiber/v2/log"
	"github.com/joho/godotenv"
	"gorm.io/gorm"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Infof("no .env file loaded: %v", err)
	}
	utils.LoadConfig()

	// Without a configured database the app falls back to in-memory records.
	var db *gorm.DB
	if utils.GetConfig("DB_HOST") != "" {
		conn, err := config.ConnectDB()
		if err != nil {
			log.Fatalf("failed connecting to database: %v", err)
		}
		if err := migration.Migrate(conn); err != nil {
			log.Fatalf("failed migrating database: %v", err)
		}
		db = conn
	} else {
		log.Warn("DB_HOST not set, using in-memory record store")
	}

	app, err := config.NewApp(db)
	if err != nil {
		log.Fatalf("failed setting up app: %v", err)
	}

	port := utils.GetConfig("APP_PORT")
	if port == "" {
		port = "5000"
	}
	if err := app.Listen(":" + port); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
