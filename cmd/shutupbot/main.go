package main

import (
	"log"

	_ "github.com/joho/godotenv/autoload"

	"github.com/shutupbot/shutupbot/pkg/bot"
	"github.com/shutupbot/shutupbot/pkg/botutil"
	"github.com/shutupbot/shutupbot/pkg/config"
)

func main() {
	cfg, err := config.Load(config.ProfileGuild)
	if err != nil {
		log.Fatalf("Error: %v", err)
	}
	if err := botutil.ConfigureLogger(cfg.LogLevel); err != nil {
		log.Fatalf("Error: %v", err)
	}

	b, err := bot.New(cfg)
	if err != nil {
		log.Fatalf("Failed to create bot: %v", err)
	}

	ctx, stop := botutil.ShutdownContext(b.Log, "Shutupbot")
	defer stop()

	if err := b.Run(ctx); err != nil {
		log.Fatalf("Bot error: %v", err)
	}
}
