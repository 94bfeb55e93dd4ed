package testhelpers

import (
	"fmt"
	"strings"
	"testing"

	"github.com/kushhpatell/r-intervyou/internal/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var (
	openSQLite = func(dsn string) (*gorm.DB, error) {
		return gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true, Logger: gormlogger.Default.LogMode(gormlogger.Silent)})
	}
	migrateSchema      = func(db *gorm.DB) error { return db.AutoMigrate(&models.User{}, &models.InterviewSession{}) }
	dropUserTableFn    = func(db *gorm.DB) error { return db.Migrator().DropTable(&models.User{}) }
	dropSessionTableFn = func(db *gorm.DB) error { return db.Migrator().DropTable(&models.InterviewSession{}) }
)

// SetupTestDB creates an isolated in-memory SQLite database for tests.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := openSQLite(dsn)
	if err != nil {
		panic(fmt.Sprintf("failed to open test database: %v", err))
	}
	if err := migrateSchema(db); err != nil {
		panic(fmt.Sprintf("failed to migrate test database: %v", err))
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

// DropUserTable removes the users table to force repository errors.
func DropUserTable(t *testing.T, db *gorm.DB) {
	t.Helper()
	if err := dropUserTableFn(db); err != nil {
		panic(fmt.Sprintf("failed to drop user table: %v", err))
	}
}

// DropSessionTable removes the sessions table to force repository errors.
func DropSessionTable(t *testing.T, db *gorm.DB) {
	t.Helper()
	if err := dropSessionTableFn(db); err != nil {
		panic(fmt.Sprintf("failed to drop session table: %v", err))
	}
}
