package infra

import (
	"log"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"vibenav/internal/models/db_models"
)

// InitSqlite opens (creating if absent) the local database file and migrates
// the schema. The pure-Go driver keeps the binary cgo-free.
func InitSqlite(path string) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		log.Printf("Error connecting to database: %v", err)
		log.Fatal("Error connecting to database")
	}

	if err := db.AutoMigrate(
		&db_models.Place{},
		&db_models.Review{},
		&db_models.VibeSummary{},
	); err != nil {
		log.Fatalf("Error migrating database schema: %v", err)
	}

	return db
}

func CloseSqlite(db *gorm.DB) {
	sqlDB, err := db.DB()
	if err != nil {
		log.Printf("Error getting database instance: %v", err)
		return
	}

	if err := sqlDB.Close(); err != nil {
		log.Printf("Error closing database connection: %v", err)
	} else {
		log.Println("Database connection closed successfully")
	}
}
