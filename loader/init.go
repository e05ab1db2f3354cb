package loader

import (
	"fmt"
	"log"

	"ecadmin/database"

	"github.com/jmoiron/sqlx"
)

// InitDatabase はキャッシュDBにスキーマを適用します。
func InitDatabase(db *sqlx.DB) error {
	log.Println("Applying cache schema...")
	if err := database.ApplySchema(db); err != nil {
		return fmt.Errorf("failed to apply schema.sql: %w", err)
	}
	log.Println("Schema applied successfully.")

	taken, err := database.SnapshotTakenAt(db)
	if err != nil {
		log.Printf("WARN: Failed to read order snapshot time: %v", err)
		return nil
	}
	if taken.IsZero() {
		log.Println("No cached order snapshot yet.")
	} else {
		log.Printf("Cached order snapshot from %s.", taken.Local().Format("2006-01-02 15:04"))
	}
	return nil
}
