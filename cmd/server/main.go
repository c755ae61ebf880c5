package main

import (
	"log"

	"github.com/nexus/godiscord/config"
	"github.com/nexus/godiscord/internal/server"
)

func main() {
	cfg := config.LoadConfig()

	app, err := server.NewServer(cfg)
	if err != nil {
		log.Fatal(err)
	}

	log.Printf("godiscord listening on port %s", cfg.ServerPort)
	if err := app.Listen(":" + cfg.ServerPort); err != nil {
		log.Fatal(err)
	}
}
