package botutil

import (
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/events"
	"github.com/disgoorg/disgo/rest"
	"github.com/disgoorg/snowflake/v2"
)

type MessageResponder interface {
	CreateMessage(discord.MessageCreate, ...rest.RequestOpt) error
}

func RespondEphemeral(e MessageResponder, content string, log *slog.Logger) {
	if err := e.CreateMessage(discord.MessageCreate{
		Content: content,
		Flags:   discord.MessageFlagEphemeral,
	}); err != nil {
		log.Error("Failed to send ephemeral response", "error", err)
	}
}

// CommandSyncer is the subset of rest.Applications used to publish commands.
type CommandSyncer interface {
	SetGlobalCommands(applicationID snowflake.ID, commandCreates []discord.ApplicationCommandCreate, opts ...rest.RequestOpt) ([]discord.ApplicationCommand, error)
	SetGuildCommands(applicationID snowflake.ID, guildID snowflake.ID, commandCreates []discord.ApplicationCommandCreate, opts ...rest.RequestOpt) ([]discord.ApplicationCommand, error)
}

// RegisterCommands overwrites the application's command set for guildID,
// or globally when guildID is 0. Global commands can take up to an hour to
// show up in clients.
func RegisterCommands(syncer CommandSyncer, applicationID, guildID snowflake.ID, commands []discord.ApplicationCommandCreate, log *slog.Logger) error {
	if guildID == 0 {
		if _, err := syncer.SetGlobalCommands(applicationID, commands); err != nil {
			return fmt.Errorf("registering global commands: %w", err)
		}
		log.Info("Registered global commands", "count", len(commands))
		return nil
	}
	if _, err := syncer.SetGuildCommands(applicationID, guildID, commands); err != nil {
		return fmt.Errorf("registering guild commands for %d: %w", guildID, err)
	}
	log.Info("Registered guild commands", "guild_id", guildID, "count", len(commands))
	return nil
}

// Registrar publishes Commands on the first Ready event of the process.
// Later Ready events (gateway reconnects) do nothing unless the previous
// attempt failed.
type Registrar struct {
	Syncer        CommandSyncer
	ApplicationID snowflake.ID
	GuildID       snowflake.ID
	Commands      []discord.ApplicationCommandCreate
	Log           *slog.Logger
	registered    atomic.Bool
}

func (r *Registrar) OnReady(_ *events.Ready) {
	if err := r.Register(); err != nil {
		r.Log.Error("Failed to register commands", "error", err)
	}
}

// Register publishes the commands unless that already succeeded.
func (r *Registrar) Register() error {
	if !r.registered.CompareAndSwap(false, true) {
		return nil
	}
	if err := RegisterCommands(r.Syncer, r.ApplicationID, r.GuildID, r.Commands, r.Log); err != nil {
		r.registered.Store(false)
		return err
	}
	return nil
}

// Registered reports whether the commands have been published.
func (r *Registrar) Registered() bool {
	return r.registered.Load()
}
