package testutil

import (
	"errors"
	"io"
	"log/slog"
	"sync"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/rest"
	"github.com/disgoorg/snowflake/v2"
)

// SentMessage is one message recorded by FakeMessages.
type SentMessage struct {
	ChannelID snowflake.ID
	Message   discord.MessageCreate
}

// FakeMessages records CreateMessage calls. FailAfter > 0 makes every call
// after the first FailAfter calls return ErrSendFailed.
type FakeMessages struct {
	Mu        sync.Mutex
	Sent      []SentMessage
	FailAfter int
	OnSend    func(SentMessage)
}

var ErrSendFailed = errors.New("fake send failed")

func (f *FakeMessages) CreateMessage(channelID snowflake.ID, msg discord.MessageCreate, _ ...rest.RequestOpt) (*discord.Message, error) {
	f.Mu.Lock()
	defer f.Mu.Unlock()
	if f.FailAfter > 0 && len(f.Sent) >= f.FailAfter {
		return nil, ErrSendFailed
	}
	sent := SentMessage{ChannelID: channelID, Message: msg}
	f.Sent = append(f.Sent, sent)
	if f.OnSend != nil {
		f.OnSend(sent)
	}
	return &discord.Message{ChannelID: channelID, Content: msg.Content}, nil
}

// Messages returns a copy of the recorded messages.
func (f *FakeMessages) Messages() []SentMessage {
	f.Mu.Lock()
	defer f.Mu.Unlock()
	out := make([]SentMessage, len(f.Sent))
	copy(out, f.Sent)
	return out
}

// FakeResponder records the responses made to an interaction.
type FakeResponder struct {
	Mu         sync.Mutex
	Replies    []discord.MessageCreate
	Deferred   int
	DeferredEp bool
	DeferErr   error
}

func (f *FakeResponder) CreateMessage(msg discord.MessageCreate, _ ...rest.RequestOpt) error {
	f.Mu.Lock()
	defer f.Mu.Unlock()
	f.Replies = append(f.Replies, msg)
	return nil
}

func (f *FakeResponder) DeferCreateMessage(ephemeral bool, _ ...rest.RequestOpt) error {
	f.Mu.Lock()
	defer f.Mu.Unlock()
	if f.DeferErr != nil {
		return f.DeferErr
	}
	f.Deferred++
	f.DeferredEp = ephemeral
	return nil
}

func DiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
