package router

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/interior-consult/config"
	"github.com/yeremiapane/interior-consult/controllers"
	"github.com/yeremiapane/interior-consult/middlewares"
	"github.com/yeremiapane/interior-consult/services"
	"github.com/yeremiapane/interior-consult/session"
	"github.com/yeremiapane/interior-consult/utils"
	"gorm.io/gorm"
)

// NewResolver builds the identity resolver for the configured strategy.
// The cookie codec is returned separately because login and logout need it.
func NewResolver(db *gorm.DB, cfg *config.Config) (session.Resolver, *session.CookieCodec, error) {
	if cfg.SessionStrategy == config.StrategyEmail {
		return session.NewEmailResolver(db, cfg.EmailHeader), nil, nil
	}

	codec := session.NewCookieCodec(cfg.CookieName, []byte(cfg.SessionSecret), cfg.SessionMaxAge, cfg.CookieSecure)
	if err := codec.Validate(); err != nil {
		return nil, nil, err
	}
	return codec, codec, nil
}

func SetupRouter(db *gorm.DB, cfg *config.Config) (*gin.Engine, error) {
	resolver, codec, err := NewResolver(db, cfg)
	if err != nil {
		return nil, err
	}

	r := gin.New()
	r.Use(
		middlewares.Recovery(),
		middlewares.RequestID(),
		middlewares.SecurityHeaders(),
		middlewares.CORSMiddlewares(cfg.CORSOrigins),
		middlewares.LoggerMiddleware(),
		middlewares.CompanySession(resolver),
	)

	// Services
	companySvc := services.NewCompanyService(db)
	consultationSvc := services.NewConsultationService(db, cfg.Location)
	picSvc := services.NewPicService(db)
	pinSvc := services.NewAdminPinService(db)
	estimateSvc := services.NewEstimateService(db, cfg.Location)

	// Controllers
	companyCtrl := controllers.NewCompanyController(companySvc, codec)
	consultationCtrl := controllers.NewConsultationController(consultationSvc)
	picCtrl := controllers.NewPicController(picSvc)
	pinCtrl := controllers.NewAdminPinController(pinSvc)
	estimateCtrl := controllers.NewEstimateController(estimateSvc)

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	api := r.Group("/api")

	// -- COMPANY --
	company := api.Group("/company")
	if codec != nil {
		limiter := middlewares.NewRateLimiter(cfg.LoginRatePerMinute)
		company.POST("/login", limiter.RateLimit(), companyCtrl.Login)
		company.POST("/logout", companyCtrl.Logout)
	}
	company.GET("/me", companyCtrl.Me)

	company.GET("/admin-pin", pinCtrl.GetStatus)
	company.POST("/admin-pin", middlewares.RequireCompany(), pinCtrl.Submit)
	company.PATCH("/admin-pin", middlewares.RequireCompany(), pinCtrl.Change)

	company.GET("/pics", picCtrl.GetAllPics)
	company.POST("/pics", middlewares.RequireCompany(), picCtrl.CreatePic)
	company.DELETE("/pics/:id", middlewares.RequireCompany(), picCtrl.DeletePic)

	// -- CONSULTATIONS --
	consultations := api.Group("/consultations")
	consultations.GET("", consultationCtrl.GetAllConsultations)
	consultations.GET("/scope-options", consultationCtrl.GetScopeOptions)
	consultations.GET("/statuses", consultationCtrl.GetStatuses)
	consultations.GET("/export", middlewares.RequireCompany(), consultationCtrl.ExportConsultations)
	consultations.GET("/:id", consultationCtrl.GetConsultationByID)
	consultations.POST("", middlewares.RequireCompany(), consultationCtrl.CreateConsultation)
	consultations.PATCH("/:id", middlewares.RequireCompany(), consultationCtrl.UpdateConsultation)

	// -- ESTIMATES --
	estimates := api.Group("/estimates")
	estimates.GET("", estimateCtrl.GetAllEstimates)
	estimates.GET("/:id", estimateCtrl.GetEstimateByID)
	estimates.GET("/:id/export", middlewares.RequireCompany(), estimateCtrl.ExportEstimate)
	estimates.POST("", middlewares.RequireCompany(), estimateCtrl.CreateEstimate)
	estimates.PATCH("/:id", middlewares.RequireCompany(), estimateCtrl.UpdateEstimate)
	estimates.DELETE("/:id", middlewares.RequireCompany(), estimateCtrl.DeleteEstimate)

	if cfg.StaticDir != "" {
		files := http.FileServer(http.Dir(cfg.StaticDir))
		r.NoRoute(func(c *gin.Context) {
			if strings.HasPrefix(c.Request.URL.Path, "/api/") || c.Request.Method != http.MethodGet {
				c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
				return
			}
			files.ServeHTTP(c.Writer, c.Request)
		})
		utils.InfoLogger.Printf("Serving static files from %s", cfg.StaticDir)
	}

	return r, nil
}
