package main

import (
	"context"
	"log"
	"os"

	"github.com/dmitrijs2005/lifedash/internal/server"
	"github.com/dmitrijs2005/lifedash/internal/server/config"
)

func main() {
	cfg, err := config.LoadConfig(os.Args[1:])
	if err != nil {
		log.Fatalf("%v", err)
	}

	ctx := context.Background()
	app, err := server.NewApp(ctx, cfg)
	if err != nil {
		log.Printf("%v", err)
		return
	}

	app.Run(ctx)
}
