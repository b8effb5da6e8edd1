package main

import (
	"fmt"
	"log"

	"referral-api/internal/config"
	"referral-api/internal/handlers"
	"referral-api/internal/store"

	"github.com/gin-gonic/gin"
)

func main() {
	port, dbPath, baseURL := config.LoadConfig()

	db, err := store.InitDB(dbPath)
	if err != nil {
		log.Fatalf("failed to init db: %v", err)
	}
	store.SetDB(db)

	r := gin.Default()
	handlers.RegisterRoutes(r, baseURL)

	addr := fmt.Sprintf(":%d", port)
	log.Printf("Referral API listening on %s", addr)
	if err := r.Run(addr); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
