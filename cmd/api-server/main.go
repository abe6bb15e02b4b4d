package main

import (
	"fmt"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/medbook/medbook-api/api/swagger"
	"github.com/medbook/medbook-api/internal/handler"
	internalmiddleware "github.com/medbook/medbook-api/internal/middleware"
	"github.com/medbook/medbook-api/internal/models"
	"github.com/medbook/medbook-api/internal/repository"
	"github.com/medbook/medbook-api/internal/service"
	rediscache "github.com/medbook/medbook-api/pkg/cache"
	"github.com/medbook/medbook-api/pkg/config"
	"github.com/medbook/medbook-api/pkg/database"
	"github.com/medbook/medbook-api/pkg/logger"
	corsmiddleware "github.com/medbook/medbook-api/pkg/middleware/cors"
	reqidmiddleware "github.com/medbook/medbook-api/pkg/middleware/requestid"
)

// @title Medbook API
// @version 1.0.0
// @description Medical appointment booking service
// @BasePath /
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to postgres", "error", err)
	}
	defer db.Close()

	redisClient, err := rediscache.NewRedis(cfg.Redis)
	if err != nil {
		logr.Sugar().Warnw("redis unavailable, caching disabled", "error", err)
		redisClient = nil
	}

	validate := validator.New()

	userRepo := repository.NewUserRepository(db)
	doctorRepo := repository.NewDoctorRepository(db)
	availabilityRepo := repository.NewAvailabilityRepository(db)
	appointmentRepo := repository.NewAppointmentRepository(db)
	ratingRepo := repository.NewRatingRepository(db)
	cacheRepo := repository.NewCacheRepository(redisClient, logr)

	authSvc := service.NewAuthService(userRepo, validate, logr, service.AuthConfig{
		TokenSecret: cfg.JWT.Secret,
		TokenExpiry: cfg.JWT.Expiration,
		Issuer:      "medbook-api",
	})
	userSvc := service.NewUserService(userRepo, validate, logr)
	doctorSvc := service.NewDoctorService(doctorRepo, availabilityRepo, ratingRepo, cacheRepo, logr, service.DoctorServiceConfig{
		SlotGranularity: cfg.Booking.SlotGranularity,
		ListingCacheTTL: cfg.Doctors.ListingCacheTTL,
	})
	bookingSvc := service.NewBookingService(appointmentRepo, userRepo, doctorRepo, validate, logr, cfg.Database.QueryTimeout)
	ratingSvc := service.NewRatingService(ratingRepo, appointmentRepo, validate, logr)
	approvalSvc := service.NewApprovalService(doctorRepo, cacheRepo, logr)
	metricsSvc := service.NewMetricsService()

	authHandler := handler.NewAuthHandler(authSvc)
	userHandler := handler.NewUserHandler(userSvc, bookingSvc)
	doctorHandler := handler.NewDoctorHandler(doctorSvc)
	bookingHandler := handler.NewBookingHandler(bookingSvc, ratingSvc, metricsSvc)
	adminHandler := handler.NewAdminHandler(approvalSvc)
	healthHandler := handler.NewHealthHandler(db, redisClient)

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(internalmiddleware.Metrics(metricsSvc))

	r.GET("/health", healthHandler.Health)
	r.GET("/metrics", gin.WrapH(metricsSvc.Handler()))

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	r.POST("/users/register", authHandler.Register)
	r.POST("/users/login", authHandler.Login)

	r.GET("/doctors", doctorHandler.List)
	r.GET("/doctors/:id", doctorHandler.Get)
	r.GET("/doctors/:id/availability", doctorHandler.Availability)

	secured := r.Group("", internalmiddleware.JWT(authSvc))
	secured.GET("/users/:id", internalmiddleware.RBAC("SELF", string(models.RoleAdmin)), userHandler.Get)
	secured.PUT("/users/:id", internalmiddleware.RBAC("SELF", string(models.RoleAdmin)), userHandler.Update)
	secured.GET("/users/:id/appointments", internalmiddleware.RBAC("SELF", string(models.RoleAdmin)), userHandler.Appointments)

	secured.POST("/appointments", internalmiddleware.RequireRoles(models.RolePatient, models.RoleAdmin), bookingHandler.Book)
	secured.PUT("/appointments/:id/cancel", internalmiddleware.RequireRoles(models.RolePatient, models.RoleAdmin), bookingHandler.Cancel)
	secured.POST("/appointments/:id/rating", internalmiddleware.RequireRoles(models.RolePatient, models.RoleAdmin), bookingHandler.Rate)

	admin := secured.Group("/admin", internalmiddleware.RequireRoles(models.RoleAdmin))
	admin.POST("/doctors/:id/approve", adminHandler.Approve)
	admin.POST("/doctors/:id/reject", adminHandler.Reject)
	admin.POST("/doctors/:id/suspend", adminHandler.Suspend)

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
