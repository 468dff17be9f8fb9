package main

import (
	"context"
	"log"
	"time"

	"github.com/gin-gonic/gin"

	"portal-backend/internal/auth"
	"portal-backend/internal/config"
	"portal-backend/internal/db"
	"portal-backend/internal/routes"
	"portal-backend/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	database, err := db.Open(cfg.DbDsn)
	if err != nil {
		log.Fatalf("db error: %v", err)
	}

	auth.StartJanitor(context.Background(), store.NewGorm(database), 10*time.Minute)

	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())

	routes.Register(router, database, cfg)

	if err := router.Run(cfg.Addr); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
