package services

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/yeremiapane/interior-consult/database"
	"github.com/yeremiapane/interior-consult/models"
	"github.com/yeremiapane/interior-consult/session"
	"github.com/yeremiapane/interior-consult/utils"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var kst = time.FixedZone("KST", 9*60*60)

// fixedNow is 2026-10-19 09:30 KST.
func fixedNow() time.Time {
	return time.Date(2026, 10, 19, 9, 30, 0, 0, kst)
}

// setupTestDB opens a private in-memory sqlite database with the full schema.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(database.Models()...))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })
	return db
}

func seedCompany(t *testing.T, db *gorm.DB, code string) session.Identity {
	t.Helper()
	company := models.Company{Code: code, Name: code + " 인테리어"}
	require.NoError(t, db.Create(&company).Error)
	return session.Identity{CompanyID: company.ID, Code: company.Code, Name: company.Name}
}

func requireKind(t *testing.T, err error, kind utils.ErrorKind) {
	t.Helper()
	require.Error(t, err)
	var appErr *utils.AppError
	require.True(t, errors.As(err, &appErr), "expected *utils.AppError, got %T: %v", err, err)
	require.Equal(t, kind, appErr.Kind, appErr.Message)
}

func strPtr(s string) *string { return &s }

func floatPtr(f float64) *float64 { return &f }
