// slack.go
//
// Productivity dashboard service for real estate agents
// Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC
//
// This file is part of expiestack.
// expiestack is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// expiestack is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with expiestack.
// If not, see <https://www.gnu.org/licenses/>.
// Additional terms under GNU AGPL version 3 section 7:
// a) The reasonable legal notice of original copyright and author attribution must be preserved
//    by including the string: "Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC"
//    in this material, copies, or source code of derived works.

package integrations

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
	"github.com/sirupsen/logrus"
)

// ErrUnknownChannel is returned when sending to a channel that does not exist
var ErrUnknownChannel = errors.New("channel not found")

// DefaultChannels are the channels of the simulated workspace
var DefaultChannels = []Channel{
	{ID: "C01234ABCDE", Name: "general", Members: 32},
	{ID: "C098765FGHI", Name: "team-real-estate", Members: 15},
	{ID: "C111222JKLM", Name: "leads", Members: 8},
	{ID: "C333444NOPQ", Name: "property-listings", Members: 12},
	{ID: "C555666RSTU", Name: "client-success", Members: 6},
}

// SimulatedSlack delivers messages into an in-process history. History
// entries expire after the retention period.
type SimulatedSlack struct {
	Delay    time.Duration
	channels []Channel
	history  *cache.Cache
	mu       sync.Mutex
	log      *logrus.Entry
}

// NewSimulatedSlack creates a SimulatedSlack over DefaultChannels
func NewSimulatedSlack(delay, retention time.Duration) *SimulatedSlack {
	return &SimulatedSlack{
		Delay:    delay,
		channels: DefaultChannels,
		history:  cache.New(retention, retention/2+time.Minute),
		log:      logrus.WithField("component", "slack"),
	}
}

func (s *SimulatedSlack) lookup(channel string) (Channel, bool) {
	name := strings.TrimPrefix(channel, "#")
	for _, c := range s.channels {
		if c.ID == channel || c.Name == name {
			return c, true
		}
	}
	return Channel{}, false
}

// Send implements Messenger
func (s *SimulatedSlack) Send(ctx context.Context, channel, text string) (msg Message, err error) {
	start := time.Now()
	defer func() { observe("slack", "send", start, err) }()

	if err := wait(ctx, s.Delay); err != nil {
		return Message{}, err
	}

	c, ok := s.lookup(channel)
	if !ok {
		return Message{}, fmt.Errorf("%w: %s", ErrUnknownChannel, channel)
	}

	msg = Message{
		ID:          "msg_" + uuid.NewString(),
		ChannelID:   c.ID,
		ChannelName: c.Name,
		Text:        text,
		Timestamp:   time.Now().UTC(),
	}

	s.mu.Lock()
	var messages []Message
	if existing, found := s.history.Get(c.ID); found {
		messages = existing.([]Message)
	}
	messages = append(messages[:len(messages):len(messages)], msg)
	s.history.Set(c.ID, messages, cache.DefaultExpiration)
	s.mu.Unlock()

	s.log.WithFields(logrus.Fields{"channel": c.Name, "length": len(text)}).Info("Sent message")
	return msg, nil
}

// Channels implements Messenger
func (s *SimulatedSlack) Channels(ctx context.Context) (channels []Channel, err error) {
	start := time.Now()
	defer func() { observe("slack", "channels", start, err) }()

	if err := wait(ctx, s.Delay); err != nil {
		return nil, err
	}
	return append([]Channel(nil), s.channels...), nil
}

// History implements Messenger
func (s *SimulatedSlack) History(ctx context.Context, channel string) ([]Message, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	c, ok := s.lookup(channel)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownChannel, channel)
	}
	if existing, found := s.history.Get(c.ID); found {
		return append([]Message(nil), existing.([]Message)...), nil
	}
	return []Message{}, nil
}

var _ Messenger = (*SimulatedSlack)(nil)
