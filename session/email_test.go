package session

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yeremiapane/interior-consult/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupEmailDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Company{}, &models.CompanyMember{}))
	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })
	return db
}

func emailRequest(value string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if value != "" {
		req.Header.Set(DefaultEmailHeader, value)
	}
	return req
}

func TestEmailResolver_ProvisionsOnce(t *testing.T) {
	db := setupEmailDB(t)
	resolver := NewEmailResolver(db, "")

	first, err := resolver.Resolve(emailRequest("Owner@Example.com"))
	require.NoError(t, err)
	assert.True(t, first.Valid())
	assert.Regexp(t, `^c-[0-9a-f]{12}$`, first.Code)

	second, err := resolver.Resolve(emailRequest("owner@example.com"))
	require.NoError(t, err)
	assert.Equal(t, first, second)

	var companies, members int64
	db.Model(&models.Company{}).Count(&companies)
	db.Model(&models.CompanyMember{}).Count(&members)
	assert.Equal(t, int64(1), companies)
	assert.Equal(t, int64(1), members)

	other, err := resolver.Resolve(emailRequest("Kim <kim@example.com>"))
	require.NoError(t, err)
	assert.NotEqual(t, first.CompanyID, other.CompanyID)
}

func TestEmailResolver_MissingOrInvalidHeader(t *testing.T) {
	resolver := NewEmailResolver(setupEmailDB(t), "")

	for _, value := range []string{"", "not-an-email", "   "} {
		_, err := resolver.Resolve(emailRequest(value))
		assert.ErrorIs(t, err, ErrNoIdentity, value)
	}
}
