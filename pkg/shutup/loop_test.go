package shutup

import (
	"errors"
	"testing"
	"time"

	"github.com/disgoorg/snowflake/v2"

	"github.com/shutupbot/shutupbot/pkg/testutil"
)

func TestLoopSleepsBeforeEverySend(t *testing.T) {
	var events []string
	var slept []time.Duration

	sender := &testutil.FakeMessages{OnSend: func(testutil.SentMessage) {
		events = append(events, "send")
	}}
	loop := NewLoop(sender)
	loop.Sleep = func(d time.Duration) {
		slept = append(slept, d)
		events = append(events, "sleep")
	}

	sent, err := loop.Run(42, 1013566342345019512)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sent != MentionCount {
		t.Errorf("sent = %d, want %d", sent, MentionCount)
	}
	if len(events) != 2*MentionCount {
		t.Fatalf("got %d events, want %d", len(events), 2*MentionCount)
	}
	for i, ev := range events {
		want := "sleep"
		if i%2 == 1 {
			want = "send"
		}
		if ev != want {
			t.Fatalf("event %d = %q, want %q", i, ev, want)
		}
	}
	for i, d := range slept {
		if d != time.Second {
			t.Errorf("sleep %d = %s, want 1s", i, d)
		}
	}
}

func TestLoopMentionsTarget(t *testing.T) {
	sender := &testutil.FakeMessages{}
	loop := &Loop{Sender: sender, Count: 3, Sleep: func(time.Duration) {}}

	target := snowflake.ID(726985544038612993)
	if _, err := loop.Run(7, target); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	msgs := sender.Messages()
	if len(msgs) != 3 {
		t.Fatalf("got %d messages, want 3", len(msgs))
	}
	for _, m := range msgs {
		if m.ChannelID != 7 {
			t.Errorf("ChannelID = %d, want 7", m.ChannelID)
		}
		if m.Message.Content != "<@726985544038612993>" {
			t.Errorf("Content = %q, want mention", m.Message.Content)
		}
		am := m.Message.AllowedMentions
		if am == nil || len(am.Users) != 1 || am.Users[0] != target {
			t.Errorf("AllowedMentions = %+v, want only target", am)
		}
	}
}

func TestLoopStopsOnFirstFailure(t *testing.T) {
	sender := &testutil.FakeMessages{FailAfter: 40}
	calls := 0
	loop := NewLoop(sender)
	loop.Sleep = func(time.Duration) { calls++ }

	sent, err := loop.Run(1, 2)
	if !errors.Is(err, testutil.ErrSendFailed) {
		t.Fatalf("err = %v, want ErrSendFailed", err)
	}
	if sent != 40 {
		t.Errorf("sent = %d, want 40", sent)
	}
	if calls != 41 {
		t.Errorf("slept %d times, want 41", calls)
	}
}

func TestLoopRealSleep(t *testing.T) {
	sender := &testutil.FakeMessages{}
	loop := &Loop{Sender: sender, Count: 3, Interval: 20 * time.Millisecond}

	start := time.Now()
	if _, err := loop.Run(1, 2); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if elapsed := time.Since(start); elapsed < 60*time.Millisecond {
		t.Errorf("elapsed %s, want at least 60ms", elapsed)
	}
}
