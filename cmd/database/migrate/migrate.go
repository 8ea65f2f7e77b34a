package migration

import (
	"fmt"

	"github.com/BenHowl/ReceiptChef/entities"
	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	db.Exec("CREATE EXTENSION IF NOT EXISTS \"uuid-ossp\";")

	if err := db.AutoMigrate(&entities.Receipt{}); err != nil {
		return fmt.Errorf("migrating receipts: %w", err)
	}
	if err := db.AutoMigrate(&entities.SavedRecipe{}); err != nil {
		return fmt.Errorf("migrating saved recipes: %w", err)
	}

	fmt.Println("Database migration complete")
	return nil
}
