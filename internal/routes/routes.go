package routes

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"portal-backend/internal/attendance"
	"portal-backend/internal/auth"
	"portal-backend/internal/config"
	"portal-backend/internal/email"
	"portal-backend/internal/handlers"
	"portal-backend/internal/middleware"
	"portal-backend/internal/models"
	"portal-backend/internal/secrets"
	"portal-backend/internal/store"
)

func Register(router *gin.Engine, db *gorm.DB, cfg config.Config) {
	router.Use(corsMiddleware(cfg.AllowedOriginsRaw))

	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "service": "employee-portal-backend"})
	})

	st := store.NewGorm(db)
	hasher := secrets.NewHasher(cfg.BcryptCost)
	sender := email.NewSender(email.Config{
		Host:     cfg.SmtpHost,
		Port:     cfg.SmtpPort,
		Username: cfg.SmtpUser,
		Password: cfg.SmtpPass,
		From:     cfg.SmtpFrom,
	})

	authenticator := auth.NewAuthenticator(st, hasher, sender,
		time.Duration(cfg.OtpMinutes)*time.Minute, cfg.OtpMaxAttempts)
	tokens := auth.NewTokens(st, cfg.JwtAccessSecret, cfg.JwtRefreshSecret,
		time.Duration(cfg.JwtAccessMinutes)*time.Minute,
		time.Duration(cfg.JwtRefreshHours)*time.Hour)
	attendanceService := attendance.NewService(st, cfg.LateCutoff)

	secureCookies := strings.EqualFold(cfg.AppEnv, "production")
	authHandler := handlers.NewAuthHandler(st, authenticator, tokens,
		cfg.JwtRefreshHours*3600, secureCookies)
	attendanceHandler := handlers.NewAttendanceHandler(attendanceService)
	leaveHandler := handlers.NewLeaveHandler(st)
	healthHandler := handlers.NewHealthHandler(st)

	api := router.Group("/api")
	{
		api.GET("/health", healthHandler.Get)
		api.POST("/auth/login", authHandler.Login)
		api.POST("/auth/resend-otp", authHandler.Login)
		api.POST("/auth/verify-otp", authHandler.VerifyOTP)
		api.POST("/auth/refresh", authHandler.Refresh)
		api.POST("/auth/logout", authHandler.Logout)
	}

	anyRole := middleware.RequireAnyRole(models.RoleAdmin, models.RoleHR, models.RoleEmployee)

	protected := api.Group("/")
	protected.Use(middleware.AuthRequired(tokens))
	{
		protected.GET("/auth/me", authHandler.Me)

		protected.GET("/attendance/today", anyRole, attendanceHandler.Today)
		protected.POST("/attendance/check-in", anyRole, attendanceHandler.CheckIn)
		protected.POST("/attendance/check-out", anyRole, attendanceHandler.CheckOut)

		protected.GET("/leave-types", anyRole, leaveHandler.ListTypes)
		protected.GET("/leaves", anyRole, leaveHandler.List)
		protected.POST("/leaves", anyRole, leaveHandler.Apply)
	}
}

func corsMiddleware(allowed string) gin.HandlerFunc {
	origins := []string{}
	for _, origin := range strings.Split(allowed, ",") {
		origin = strings.TrimSpace(origin)
		if origin != "" {
			origins = append(origins, origin)
		}
	}

	allowAll := len(origins) == 0

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if allowAll {
			c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		} else {
			for _, allowedOrigin := range origins {
				if origin == allowedOrigin {
					c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
					c.Writer.Header().Set("Vary", "Origin")
					break
				}
			}
		}

		c.Writer.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
