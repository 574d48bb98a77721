package botutil

import (
	"errors"
	"sync"
	"testing"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/rest"
	"github.com/disgoorg/snowflake/v2"

	"github.com/shutupbot/shutupbot/pkg/testutil"
)

type syncCall struct {
	applicationID snowflake.ID
	guildID       snowflake.ID
	names         []string
}

type fakeSyncer struct {
	mu     sync.Mutex
	global []syncCall
	guild  []syncCall
	err    error
}

func names(cmds []discord.ApplicationCommandCreate) []string {
	var out []string
	for _, c := range cmds {
		out = append(out, c.CommandName())
	}
	return out
}

func (f *fakeSyncer) SetGlobalCommands(applicationID snowflake.ID, cmds []discord.ApplicationCommandCreate, _ ...rest.RequestOpt) ([]discord.ApplicationCommand, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	f.global = append(f.global, syncCall{applicationID: applicationID, names: names(cmds)})
	return nil, nil
}

func (f *fakeSyncer) SetGuildCommands(applicationID, guildID snowflake.ID, cmds []discord.ApplicationCommandCreate, _ ...rest.RequestOpt) ([]discord.ApplicationCommand, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	f.guild = append(f.guild, syncCall{applicationID: applicationID, guildID: guildID, names: names(cmds)})
	return nil, nil
}

var testCommands = []discord.ApplicationCommandCreate{
	discord.SlashCommandCreate{Name: "shutup", Description: "test"},
}

func TestRegistrarGuildOnce(t *testing.T) {
	syncer := &fakeSyncer{}
	r := &Registrar{
		Syncer:        syncer,
		ApplicationID: 5,
		GuildID:       726985544038612993,
		Commands:      testCommands,
		Log:           testutil.DiscardLogger(),
	}

	for range 3 {
		r.OnReady(nil)
	}

	if len(syncer.guild) != 1 {
		t.Fatalf("guild syncs = %d, want 1", len(syncer.guild))
	}
	if len(syncer.global) != 0 {
		t.Errorf("global syncs = %d, want 0", len(syncer.global))
	}
	call := syncer.guild[0]
	if call.applicationID != 5 || call.guildID != 726985544038612993 {
		t.Errorf("call = %+v", call)
	}
	if len(call.names) != 1 || call.names[0] != "shutup" {
		t.Errorf("names = %v, want [shutup]", call.names)
	}
	if !r.Registered() {
		t.Error("expected Registered")
	}
}

func TestRegistrarGlobalOnce(t *testing.T) {
	syncer := &fakeSyncer{}
	r := &Registrar{Syncer: syncer, ApplicationID: 5, Commands: testCommands, Log: testutil.DiscardLogger()}

	var wg sync.WaitGroup
	for range 10 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r.OnReady(nil)
		}()
	}
	wg.Wait()

	if len(syncer.global) != 1 {
		t.Fatalf("global syncs = %d, want 1", len(syncer.global))
	}
	if len(syncer.guild) != 0 {
		t.Errorf("guild syncs = %d, want 0", len(syncer.guild))
	}
}

func TestRegistrarRetriesAfterFailure(t *testing.T) {
	syncer := &fakeSyncer{err: errors.New("rate limited")}
	r := &Registrar{Syncer: syncer, ApplicationID: 5, GuildID: 9, Commands: testCommands, Log: testutil.DiscardLogger()}

	if err := r.Register(); err == nil {
		t.Fatal("expected error")
	}
	if r.Registered() {
		t.Fatal("failed registration should not count")
	}

	syncer.err = nil
	if err := r.Register(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := r.Register(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(syncer.guild) != 1 {
		t.Errorf("guild syncs = %d, want 1", len(syncer.guild))
	}
}

func TestRespondEphemeral(t *testing.T) {
	r := &testutil.FakeResponder{}
	RespondEphemeral(r, "hi", testutil.DiscardLogger())
	if len(r.Replies) != 1 {
		t.Fatalf("got %d replies, want 1", len(r.Replies))
	}
	if r.Replies[0].Content != "hi" || r.Replies[0].Flags != discord.MessageFlagEphemeral {
		t.Errorf("reply = %+v", r.Replies[0])
	}
}
