package shutup

import (
	"errors"
	"fmt"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/snowflake/v2"
)

// RequiredPermissions must all be held by the invoker in the invocation channel.
const RequiredPermissions = discord.PermissionManageMessages

const (
	permissionDeniedReply = "You don't have permission to use this command. You need the 'Manage Messages' permission."
	errorReplyPrefix      = "An error occurred: "
)

var (
	ErrGuildOnly       = errors.New("this command can only be used in a server")
	ErrTargetNotMember = errors.New("the specified user is not a member of this server")
)

// MissingPermissionsError is returned when the invoker lacks RequiredPermissions.
type MissingPermissionsError struct {
	Missing discord.Permissions
}

func (e *MissingPermissionsError) Error() string {
	return fmt.Sprintf("missing permissions: %v", e.Missing)
}

// Invocation is everything a single /shutup run needs. It is built from the
// interaction event and discarded once the run ends.
type Invocation struct {
	GuildID   *snowflake.ID
	ChannelID snowflake.ID
	Invoker   *discord.ResolvedMember
	Target    *discord.ResolvedMember
}

// Authorize checks the invocation before anything is sent. It returns a
// *MissingPermissionsError when the invoker may not run the command.
func Authorize(inv Invocation) error {
	if inv.GuildID == nil || inv.Invoker == nil {
		return ErrGuildOnly
	}
	if !inv.Invoker.Permissions.Has(RequiredPermissions) {
		return &MissingPermissionsError{Missing: RequiredPermissions &^ inv.Invoker.Permissions}
	}
	if inv.Target == nil || inv.Target.User.ID == 0 {
		return ErrTargetNotMember
	}
	return nil
}

// ErrorReply is the ephemeral text shown to the invoker for an Authorize error.
func ErrorReply(err error) string {
	var perm *MissingPermissionsError
	if errors.As(err, &perm) {
		return permissionDeniedReply
	}
	return errorReplyPrefix + err.Error()
}
