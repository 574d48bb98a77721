package shutup

import (
	"fmt"
	"time"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/rest"
	"github.com/disgoorg/snowflake/v2"
)

// MessageSender is the subset of rest.Rest the loop needs.
type MessageSender interface {
	CreateMessage(channelID snowflake.ID, messageCreate discord.MessageCreate, opts ...rest.RequestOpt) (*discord.Message, error)
}

// Loop mentions a user Count times, sleeping Interval before every mention.
// A Loop holds no per-run state and may be shared by concurrent runs.
type Loop struct {
	Sender   MessageSender
	Count    int
	Interval time.Duration
	Sleep    func(time.Duration)
}

// NewLoop returns a Loop with the production count and interval.
func NewLoop(sender MessageSender) *Loop {
	return &Loop{
		Sender:   sender,
		Count:    MentionCount,
		Interval: MentionInterval,
		Sleep:    time.Sleep,
	}
}

// Run sends the mentions in order and stops at the first failed send.
// It returns how many messages were sent.
func (l *Loop) Run(channelID, targetID snowflake.ID) (int, error) {
	msg := discord.MessageCreate{
		Content: userMention(targetID),
		AllowedMentions: &discord.AllowedMentions{
			Users: []snowflake.ID{targetID},
		},
	}

	sleep := l.Sleep
	if sleep == nil {
		sleep = time.Sleep
	}

	for i := range l.Count {
		sleep(l.Interval)
		if _, err := l.Sender.CreateMessage(channelID, msg); err != nil {
			return i, fmt.Errorf("sending mention %d of %d: %w", i+1, l.Count, err)
		}
	}
	return l.Count, nil
}
