package controllers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/yeremiapane/interior-consult/controllers"
	"github.com/yeremiapane/interior-consult/database"
	"github.com/yeremiapane/interior-consult/middlewares"
	"github.com/yeremiapane/interior-consult/services"
	"github.com/yeremiapane/interior-consult/session"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type testEnv struct {
	DB     *gorm.DB
	Router *gin.Engine
	Codec  *session.CookieCodec
}

// setupTestEnv wires every controller behind a cookie session on a private
// in-memory sqlite database.
func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

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

	codec := session.NewCookieCodec(session.DefaultCookieName, []byte("test-secret"), time.Hour, false)

	companyCtrl := controllers.NewCompanyController(services.NewCompanyService(db), codec)
	consultationCtrl := controllers.NewConsultationController(services.NewConsultationService(db, time.UTC))
	picCtrl := controllers.NewPicController(services.NewPicService(db))
	pinCtrl := controllers.NewAdminPinController(services.NewAdminPinService(db))
	estimateCtrl := controllers.NewEstimateController(services.NewEstimateService(db, time.UTC))

	r := gin.New()
	r.Use(middlewares.CompanySession(codec))

	r.POST("/api/company/login", companyCtrl.Login)
	r.POST("/api/company/logout", companyCtrl.Logout)
	r.GET("/api/company/me", companyCtrl.Me)
	r.GET("/api/company/admin-pin", pinCtrl.GetStatus)
	r.POST("/api/company/admin-pin", middlewares.RequireCompany(), pinCtrl.Submit)
	r.PATCH("/api/company/admin-pin", middlewares.RequireCompany(), pinCtrl.Change)
	r.GET("/api/company/pics", picCtrl.GetAllPics)
	r.POST("/api/company/pics", middlewares.RequireCompany(), picCtrl.CreatePic)
	r.DELETE("/api/company/pics/:id", middlewares.RequireCompany(), picCtrl.DeletePic)

	r.GET("/api/consultations", consultationCtrl.GetAllConsultations)
	r.GET("/api/consultations/scope-options", consultationCtrl.GetScopeOptions)
	r.GET("/api/consultations/statuses", consultationCtrl.GetStatuses)
	r.GET("/api/consultations/export", middlewares.RequireCompany(), consultationCtrl.ExportConsultations)
	r.GET("/api/consultations/:id", consultationCtrl.GetConsultationByID)
	r.POST("/api/consultations", middlewares.RequireCompany(), consultationCtrl.CreateConsultation)
	r.PATCH("/api/consultations/:id", middlewares.RequireCompany(), consultationCtrl.UpdateConsultation)

	r.GET("/api/estimates", estimateCtrl.GetAllEstimates)
	r.GET("/api/estimates/:id", estimateCtrl.GetEstimateByID)
	r.GET("/api/estimates/:id/export", middlewares.RequireCompany(), estimateCtrl.ExportEstimate)
	r.POST("/api/estimates", middlewares.RequireCompany(), estimateCtrl.CreateEstimate)
	r.PATCH("/api/estimates/:id", middlewares.RequireCompany(), estimateCtrl.UpdateEstimate)
	r.DELETE("/api/estimates/:id", middlewares.RequireCompany(), estimateCtrl.DeleteEstimate)

	return &testEnv{DB: db, Router: r, Codec: codec}
}

// companyCookie registers a company and returns its session cookie.
func (env *testEnv) companyCookie(t *testing.T, code string) *http.Cookie {
	t.Helper()
	company, err := services.NewCompanyService(env.DB).Create(context.Background(), code, code+" 인테리어", "pw-"+code)
	require.NoError(t, err)
	cookie, err := env.Codec.Cookie(session.Identity{CompanyID: company.ID, Code: company.Code, Name: company.Name})
	require.NoError(t, err)
	return cookie
}

func (env *testEnv) do(t *testing.T, method, path string, body interface{}, cookie *http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	switch b := body.(type) {
	case nil:
	case string:
		buf.WriteString(b)
	default:
		require.NoError(t, json.NewEncoder(&buf).Encode(b))
	}

	req, err := http.NewRequest(method, path, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if cookie != nil {
		req.AddCookie(cookie)
	}

	w := httptest.NewRecorder()
	env.Router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, dst interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), dst), w.Body.String())
}

func errorMessage(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]interface{}
	decode(t, w, &body)
	msg, _ := body["error"].(string)
	return msg
}
