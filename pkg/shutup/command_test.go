package shutup

import (
	"testing"

	"github.com/disgoorg/disgo/discord"
)

func TestCommandDefinition(t *testing.T) {
	cmd := Command()
	if cmd.Name != "shutup" {
		t.Errorf("Name = %q, want shutup", cmd.Name)
	}
	if cmd.Description != "Makes the bot mention the specified user 100 times." {
		t.Errorf("Description = %q", cmd.Description)
	}
	if len(cmd.Options) != 1 {
		t.Fatalf("got %d options, want 1", len(cmd.Options))
	}
	opt, ok := cmd.Options[0].(discord.ApplicationCommandOptionUser)
	if !ok {
		t.Fatalf("option is %T, want user option", cmd.Options[0])
	}
	if opt.Name != "user" || !opt.Required {
		t.Errorf("option = %+v, want required user", opt)
	}
}

func TestCommandsIsSingleCommand(t *testing.T) {
	cmds := Commands()
	if len(cmds) != 1 {
		t.Fatalf("got %d commands, want 1", len(cmds))
	}
	if cmds[0].CommandName() != CommandName {
		t.Errorf("CommandName = %q", cmds[0].CommandName())
	}
}
