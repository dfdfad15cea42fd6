package main

import (
	log "github.com/sirupsen/logrus"

	_ "projectboard/docs"
	"projectboard/internal/config"
	"projectboard/internal/server"
)

// @title           Project Board API
// @version         1.0
// @description     API for managing projects, boards, columns, tasks and team membership.

// @host      localhost:8080
// @BasePath  /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @schemes http
func main() {
	cfg := config.Load()

	s, err := server.Init(cfg)
	if err != nil {
		log.Fatalf("❌ Server initialization failed: %v", err)
	}

	s.Run()
}
