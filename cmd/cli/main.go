package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"

	"github.com/avolkov/finsync/internal/client/cli"
	"github.com/avolkov/finsync/internal/client/config"
)

func main() {
	// A missing .env file is fine; the environment still applies.
	_ = godotenv.Load()

	ctx := context.Background()

	cfg := config.LoadConfig()
	app, err := cli.NewApp(ctx, cfg)
	if err != nil {
		log.Fatalf("%v", err)
	}

	app.Run(ctx)
}
