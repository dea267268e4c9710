package store

import (
	"fmt"
	"sort"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/R3MiX9002/my-gemini-app/internal/model"
)

// Models lists every persisted entity in creation order.
func Models() []any {
	return []any{
		&model.User{},
		&model.UserSetting{},
		&model.Session{},
		&model.ContextPoint{},
		&model.ProjectElement{},
		&model.Relationship{},
		&model.UploadedFile{},
	}
}

// InitSchema creates any missing table. Existing tables are left alone, so
// running it again is a no-op.
func InitSchema(db *gorm.DB) error {
	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("auto migrate tables failed: %w", err)
	}
	return nil
}

// Initialize runs InitSchema and only logs a failure; startup carries on
// either way.
func Initialize(db *gorm.DB, logger *zap.Logger) {
	if err := InitSchema(db); err != nil {
		logger.Error("schema initialization failed", zap.Error(err))
		return
	}
	logger.Info("schema initialized", zap.Int("tables", len(Models())))
}

// Tables returns the sorted names of the user tables in db.
func Tables(db *gorm.DB) ([]string, error) {
	tables, err := db.Migrator().GetTables()
	if err != nil {
		return nil, fmt.Errorf("list tables failed: %w", err)
	}
	sort.Strings(tables)
	return tables, nil
}
