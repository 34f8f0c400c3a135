// Package testutil builds throwaway databases and fixtures for package tests.
package testutil

import (
	"testing"
	"time"

	"github.com/lshigami/examguard/internal/model"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// NewDB returns a migrated in-memory sqlite database private to t.
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// Every connection to ":memory:" is a separate database.
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(model.All()...))
	return db
}

func SeedUser(t testing.TB, db *gorm.DB, username, password string, superuser bool) *model.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	user := &model.User{Username: username, PasswordHash: string(hash), IsSuperuser: superuser}
	require.NoError(t, db.Create(user).Error)
	return user
}

func SeedTest(t testing.TB, db *gorm.DB, title, filePath string) *model.Test {
	t.Helper()
	test := &model.Test{Title: title, FilePath: filePath}
	require.NoError(t, db.Create(test).Error)
	return test
}

func SeedResult(t testing.TB, db *gorm.DB, userID, testID uint) *model.Result {
	t.Helper()
	now := time.Now().UTC()
	result := &model.Result{
		UserID:      userID,
		TestID:      testID,
		AnswersJSON: "{}",
		StartTime:   now,
		FinishTime:  now,
	}
	require.NoError(t, db.Omit("User", "Test").Create(result).Error)
	return result
}
