package shutup

import (
	"fmt"
	"log/slog"

	"github.com/disgoorg/disgo/rest"

	"github.com/shutupbot/shutupbot/pkg/botutil"
)

// Responder is the subset of an interaction event used to answer the invoker.
type Responder interface {
	botutil.MessageResponder
	DeferCreateMessage(ephemeral bool, opts ...rest.RequestOpt) error
}

type Handler struct {
	Loop *Loop
	Log  *slog.Logger
}

func NewHandler(loop *Loop, log *slog.Logger) *Handler {
	return &Handler{Loop: loop, Log: log}
}

// Handle runs one invocation to completion. Authorization failures are
// answered ephemerally and return nil. The returned error is a failed
// acknowledgement or a failed mention; the loop is never retried.
func (h *Handler) Handle(r Responder, inv Invocation) error {
	if err := Authorize(inv); err != nil {
		h.Log.Info("Shutup rejected", "channel_id", inv.ChannelID, "error", err)
		botutil.RespondEphemeral(r, ErrorReply(err), h.Log)
		return nil
	}

	// The loop runs far longer than the initial response window.
	if err := r.DeferCreateMessage(true); err != nil {
		return fmt.Errorf("deferring response: %w", err)
	}

	targetID := inv.Target.User.ID
	h.Log.Info("Shutup started",
		"guild_id", *inv.GuildID,
		"channel_id", inv.ChannelID,
		"user_id", inv.Invoker.User.ID,
		"target_user_id", targetID,
	)

	sent, err := h.Loop.Run(inv.ChannelID, targetID)
	if err != nil {
		return err
	}

	h.Log.Info("Shutup finished", "channel_id", inv.ChannelID, "target_user_id", targetID, "sent", sent)
	return nil
}
