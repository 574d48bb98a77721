package botutil

import (
	"context"
	"log/slog"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/disgoorg/disgo/bot"
	"github.com/disgoorg/disgo/events"
)

// BaseBot holds the client and the process-wide bits every profile needs.
type BaseBot struct {
	Client              *bot.Client
	Env                 string
	Log                 *slog.Logger
	Ready               atomic.Bool
	healthcheckEndpoint string
	httpClient          *http.Client
}

// NewBaseBot creates a BaseBot for the given env. The healthcheck endpoint
// may be empty, in which case PingHealthcheck does nothing.
func NewBaseBot(env, healthcheckEndpoint string, log *slog.Logger) *BaseBot {
	if log == nil {
		log = slog.Default()
	}
	return &BaseBot{
		Env:                 env,
		Log:                 log,
		healthcheckEndpoint: healthcheckEndpoint,
		httpClient:          &http.Client{Timeout: 10 * time.Second},
	}
}

// PingHealthcheck sends a GET to the configured healthcheck endpoint.
// It is a no-op outside prod or if no endpoint is configured.
func (b *BaseBot) PingHealthcheck(ctx context.Context) {
	if b.Env != "prod" || b.healthcheckEndpoint == "" {
		return
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, b.healthcheckEndpoint, nil)
	if err != nil {
		b.Log.Error("Invalid healthcheck endpoint", "endpoint", b.healthcheckEndpoint, "error", err)
		return
	}
	resp, err := b.httpClient.Do(req)
	if err != nil {
		b.Log.Info("Healthcheck ping failed", "error", err)
		return
	}
	resp.Body.Close()
	if resp.StatusCode >= 300 {
		b.Log.Warn("Healthcheck ping rejected", "status", resp.StatusCode)
	}
}

// OnReady marks the bot ready. Ready fires again after a gateway
// reconnect; only the first one counts as a login.
func (b *BaseBot) OnReady(_ *events.Ready) {
	if b.Ready.Swap(true) {
		b.Log.Info("Gateway session resumed after reconnect")
		return
	}
	b.Log.Info("Logged in")
}
