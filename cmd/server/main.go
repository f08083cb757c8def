package main

import (
	"log"

	"github.com/FrFaber2025/school-uniform-exchange/internal/app"
	"github.com/FrFaber2025/school-uniform-exchange/internal/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	application, err := app.New(cfg)
	if err != nil {
		log.Fatalf("failed to initialize application: %v", err)
	}

	application.Run()
}
