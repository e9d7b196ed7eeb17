package api

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"hillgate/server/config"
	"hillgate/server/internal/auth"
	"hillgate/server/internal/models"
	"hillgate/server/internal/occupancy"
)

// SetupRouter wires the services and returns the configured gin engine.
func SetupRouter(db *gorm.DB, cfg *config.Config, logger *logrus.Logger) *gin.Engine {
	gin.SetMode(cfg.GinMode)

	registerValidators()

	store := occupancy.NewStore(logger)
	manager := occupancy.NewManager(db, store, logger)
	authService := auth.NewService(db, cfg.JWTSecret, time.Duration(cfg.JWTExpiryHours)*time.Hour, logger)
	handler := NewHandler(manager, authService, logger)

	router := gin.Default()
	router.Use(cors.Default())
	router.Use(RequestID())

	api := router.Group("/api")
	{
		api.POST("/auth/login", handler.Login)
		api.POST("/auth/register", handler.Register)

		protected := api.Group("")
		protected.Use(RequireAuth(authService))
		{
			protected.GET("/summary", handler.GetSummary)

			protected.GET("/properties", handler.ListProperties)
			protected.GET("/properties/vacant", handler.ListVacantProperties)
			protected.POST("/properties", handler.CreateProperty)
			protected.PUT("/properties/:id", handler.UpdateProperty)
			protected.DELETE("/properties/:id", handler.DeleteProperty)

			protected.GET("/tenants", handler.ListTenants)
			protected.GET("/tenants/archived", handler.ListArchivedTenants)
			protected.GET("/tenants/archived/export", handler.ExportArchivedTenants)
			protected.POST("/tenants", handler.CreateTenant)
			protected.PUT("/tenants/:id", handler.UpdateTenant)
			protected.POST("/tenants/:id/archive", handler.ArchiveTenant)
			protected.POST("/tenants/:id/unarchive", handler.UnarchiveTenant)
			protected.DELETE("/tenants/:id", handler.DeleteTenant)
		}
	}

	return router
}

// registerValidators adds the workplace rule to gin's validator engine so the
// sector list is enforced at binding time.
func registerValidators() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("workplace", func(fl validator.FieldLevel) bool {
			return models.IsValidWorkplace(fl.Field().String())
		})
	}
}
