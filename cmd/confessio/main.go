package main

import (
	"log"

	"github.com/MrSnakeDoc/confessio/internal/app"
)

func main() {
	if err := app.New().Run(); err != nil {
		log.Fatalf("❌ confessio failed to start: %v", err)
	}
}
