package main

import (
	"log"

	_ "github.com/joho/godotenv/autoload"

	"github.com/shutupbot/shutupbot/pkg/bot"
	"github.com/shutupbot/shutupbot/pkg/botutil"
	"github.com/shutupbot/shutupbot/pkg/config"
	"github.com/shutupbot/shutupbot/pkg/keepalive"
)

func main() {
	cfg, err := config.Load(config.ProfileGlobal)
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

	web, err := keepalive.New(cfg.Port, b.Log)
	if err != nil {
		log.Fatalf("Failed to create web server: %v", err)
	}

	ctx, stop := botutil.ShutdownContext(b.Log, "Shutupbot")
	defer stop()

	// The page is served whether or not the gateway has connected yet.
	err = botutil.Supervise(ctx,
		botutil.Task{Name: "web", Run: web.Run},
		botutil.Task{Name: "bot", Run: b.Run},
	)
	if err != nil {
		log.Fatalf("Shutupbot error: %v", err)
	}
}
