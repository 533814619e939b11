// Package integrations holds the capabilities handlers call out to: an AI
// writing assistant and a team messenger. The shipped implementations are
// simulations with canned output; real clients plug in behind the same
// interfaces.
package integrations

import (
	"context"
	"time"

	"github.com/localnerve/expiestack/internal/metrics"
)

// AutomationSuggestion is a proposed automation
type AutomationSuggestion struct {
	Trigger     string `json:"trigger"`
	Action      string `json:"action"`
	Tool        string `json:"tool"`
	Description string `json:"description"`
}

// Assistant drafts and extracts content
type Assistant interface {
	// DraftActionItem writes a first draft for an action item. background is
	// optional supporting text such as a transcript.
	DraftActionItem(ctx context.Context, item, background string) (string, error)
	SuggestCannedResponse(ctx context.Context, title string, tags []string) (string, error)
	ExtractActionItems(ctx context.Context, transcript string) ([]string, error)
	SuggestAutomation(ctx context.Context, activity string) (AutomationSuggestion, error)
}

// Channel is a messenger channel
type Channel struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Members int    `json:"members"`
}

// Message is a message delivered to a channel
type Message struct {
	ID          string    `json:"message_id"`
	ChannelID   string    `json:"channel"`
	ChannelName string    `json:"channel_name"`
	Text        string    `json:"text"`
	Timestamp   time.Time `json:"timestamp"`
}

// Messenger posts messages to team channels
type Messenger interface {
	Send(ctx context.Context, channel, text string) (Message, error)
	Channels(ctx context.Context) ([]Channel, error)
	History(ctx context.Context, channel string) ([]Message, error)
}

// wait sleeps for d or until ctx is done
func wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// observe records the outcome and latency of one integration call
func observe(integration, operation string, start time.Time, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	metrics.IntegrationCallsTotal.WithLabelValues(integration, operation, outcome).Inc()
	metrics.IntegrationDurationSeconds.WithLabelValues(integration, operation).Observe(time.Since(start).Seconds())
}
