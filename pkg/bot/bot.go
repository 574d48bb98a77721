package bot

import (
	"context"
	"fmt"
	"time"

	"github.com/disgoorg/disgo"
	"github.com/disgoorg/disgo/bot"
	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/events"
	"github.com/disgoorg/disgo/gateway"
	"github.com/disgoorg/snowflake/v2"

	"github.com/shutupbot/shutupbot/pkg/botutil"
	"github.com/shutupbot/shutupbot/pkg/config"
	"github.com/shutupbot/shutupbot/pkg/shutup"
)

type Bot struct {
	*botutil.BaseBot
	registrar *botutil.Registrar
	command   *shutup.Handler
}

func New(cfg config.Config) (*Bot, error) {
	b := newBot(cfg)

	client, err := disgo.New(cfg.Token,
		bot.WithGatewayConfigOpts(
			gateway.WithIntents(
				gateway.IntentGuilds,
			),
		),
		bot.WithEventListenerFunc(b.OnReady),
		bot.WithEventListenerFunc(b.registrar.OnReady),
		bot.WithEventListenerFunc(b.onCommand),
	)
	if err != nil {
		return nil, err
	}

	b.Client = client
	b.wire(client.ApplicationID, client.Rest, client.Rest)
	return b, nil
}

func newBot(cfg config.Config) *Bot {
	base := botutil.NewBaseBot(cfg.Env, cfg.HealthcheckEndpoint, nil)
	return &Bot{
		BaseBot: base,
		registrar: &botutil.Registrar{
			GuildID:  cfg.GuildID,
			Commands: shutup.Commands(),
			Log:      base.Log,
		},
	}
}

// wire connects the registrar and the command handler to the REST API.
func (b *Bot) wire(applicationID snowflake.ID, syncer botutil.CommandSyncer, sender shutup.MessageSender) {
	b.registrar.Syncer = syncer
	b.registrar.ApplicationID = applicationID
	b.command = shutup.NewHandler(shutup.NewLoop(sender), b.Log)
}

// Run connects to the gateway and blocks until ctx is done.
func (b *Bot) Run(ctx context.Context) error {
	b.Log.Info(fmt.Sprintf("Invite: https://discord.com/oauth2/authorize?client_id=%d&scope=bot%%20applications.commands&permissions=2048", b.Client.ApplicationID))
	return b.serve(ctx, b.Client)
}

type gatewayConn interface {
	OpenGateway(ctx context.Context) error
	Close(ctx context.Context)
}

// serve closes conn on every return path, including a failed open.
func (b *Bot) serve(ctx context.Context, conn gatewayConn) error {
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		conn.Close(closeCtx)
	}()

	if err := conn.OpenGateway(ctx); err != nil {
		return fmt.Errorf("opening gateway: %w", err)
	}

	go b.RunWhenReady(ctx, "healthcheck", 30*time.Second, b.PingHealthcheck)

	<-ctx.Done()
	b.Log.Info("Shutting down.")
	return nil
}

func (b *Bot) onCommand(e *events.ApplicationCommandInteractionCreate) {
	inv, ok := invocationFrom(e.ApplicationCommandInteraction)
	if !ok {
		return
	}

	// Gateway dispatch must not wait on the mention loop.
	go b.handle(e, inv)
}

func (b *Bot) handle(r shutup.Responder, inv shutup.Invocation) {
	if err := b.command.Handle(r, inv); err != nil {
		b.Log.Error("Shutup failed", "channel_id", inv.ChannelID, "error", err)
	}
}

// invocationFrom reports false for anything other than the /shutup slash command.
func invocationFrom(i discord.ApplicationCommandInteraction) (shutup.Invocation, bool) {
	d, ok := i.Data.(discord.SlashCommandInteractionData)
	if !ok || d.CommandName() != shutup.CommandName {
		return shutup.Invocation{}, false
	}

	inv := shutup.Invocation{
		GuildID:   i.GuildID(),
		ChannelID: i.Channel().ID(),
		Invoker:   i.Member(),
	}
	if target, ok := d.OptMember(shutup.OptionUser); ok {
		if target.User.ID == 0 {
			if user, ok := d.OptUser(shutup.OptionUser); ok {
				target.User = user
			}
		}
		inv.Target = &target
	}
	return inv, true
}
