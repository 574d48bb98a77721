// Package shutup implements the /shutup slash command: a permission gate
// followed by a loop that mentions the target user once per second.
package shutup

import (
	"fmt"
	"time"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/omit"
	"github.com/disgoorg/snowflake/v2"
)

const (
	CommandName = "shutup"
	OptionUser  = "user"

	MentionCount    = 100
	MentionInterval = 1 * time.Second
)

// Command returns the definition published to Discord.
// DefaultMemberPermissions is sent as null so every member sees the command;
// the manage messages check happens when it runs.
func Command() discord.SlashCommandCreate {
	return discord.SlashCommandCreate{
		Name:                     CommandName,
		Description:              fmt.Sprintf("Makes the bot mention the specified user %d times.", MentionCount),
		DefaultMemberPermissions: omit.New[*discord.Permissions](nil),
		Contexts: []discord.InteractionContextType{
			discord.InteractionContextTypeGuild,
		},
		Options: []discord.ApplicationCommandOption{
			discord.ApplicationCommandOptionUser{
				Name:        OptionUser,
				Description: "User to mention",
				Required:    true,
			},
		},
	}
}

// Commands is the full command set owned by this bot.
func Commands() []discord.ApplicationCommandCreate {
	return []discord.ApplicationCommandCreate{Command()}
}

func userMention(id snowflake.ID) string {
	return fmt.Sprintf("<@%d>", id)
}
