package main

import (
	"context"
	"log"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"portal/cmd/fx/account_fx"
	"portal/cmd/fx/config_fx"
	"portal/cmd/fx/controllers_fx"
	"portal/cmd/fx/db_fx"
	"portal/cmd/fx/memcache_fx"
	"portal/cmd/fx/photo_fx"
	"portal/cmd/fx/profile_fx"
	"portal/internal/api/controllers"
	"portal/internal/config"
	"portal/pkg/middleware"
	mem "portal/pkg/memcache"
)

func main() {
	app := fx.New(
		config_fx.Module,
		db_fx.Module,
		memcache_fx.Module,
		account_fx.Module,
		photo_fx.Module,
		profile_fx.Module,
		controllers_fx.Module,

		fx.Provide(ProvideRouter),
		fx.Invoke(StartServer),
	)

	app.Run()
}

func StartServer(lc fx.Lifecycle, engine *gin.Engine, cfg *config.Config) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				log.Printf("Starting HTTP server at :%s", cfg.Port)
				if err := engine.Run(":" + cfg.Port); err != nil {
					log.Fatalf("Failed to start server: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Println("Stopping HTTP server")
			return nil
		},
	})
}

func ProvideRouter(
	accountController *controllers.AccountController,
	profileController *controllers.ProfileController,
	adminController *controllers.AdminController,
	sessions mem.SessionStore,
	cfg *config.Config) *gin.Engine {

	// gin.Default already carries Logger and Recovery.
	r := gin.Default()
	r.Use(middleware.CORSMiddleware())
	r.Use(middleware.TraceIDMiddleware())
	r.MaxMultipartMemory = cfg.MaxUploadBytes

	RegisterRoutes(r, accountController, profileController, adminController, sessions, cfg)

	return r
}

func RegisterRoutes(r *gin.Engine,
	accountController *controllers.AccountController,
	profileController *controllers.ProfileController,
	adminController *controllers.AdminController,
	sessions mem.SessionStore,
	cfg *config.Config) {

	r.Static("/photos", cfg.UploadDir)

	accountsGroup := r.Group("/accounts")
	accountsGroup.POST("/register", accountController.Register)
	accountsGroup.POST("/login", accountController.Login)
	accountsGroup.POST("/logout", middleware.SessionAuthMiddleware(sessions, cfg), accountController.Logout)

	profileGroup := r.Group("/profile")
	profileGroup.Use(middleware.SessionAuthMiddleware(sessions, cfg))
	profileGroup.GET("", profileController.GetProfile)
	profileGroup.PUT("", profileController.UpdateContactInfo)
	profileGroup.POST("/photo", profileController.UpdatePhoto)

	adminGroup := r.Group("/admin")
	adminGroup.Use(middleware.SessionAuthMiddleware(sessions, cfg))
	adminGroup.Use(middleware.RoleMiddleware("admin"))
	adminGroup.GET("/dashboard", adminController.Dashboard)
	adminGroup.DELETE("/users/:id", adminController.DeleteUser)
}
