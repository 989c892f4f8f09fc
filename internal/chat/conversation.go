// Package chat keeps the barista conversation and applies the fallback
// rules when the generator fails.
package chat

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/existflow/digicafe/internal/genai"
	"github.com/existflow/digicafe/internal/logger"
	"github.com/existflow/digicafe/internal/model"
)

const (
	// Welcome opens every conversation
	Welcome = "Welcome to the Digi Cafe Study Lounge. I’m your Barista. What can I brew up for you today?"
	// Fallback replaces the assistant turn when generation fails
	Fallback = "Sorry, the steam wand is acting up. Could you repeat that?"
	// EmptyReply replaces a successful but blank reply
	EmptyReply = "I'm sorry, I couldn't process that request. How about a cup of virtual coffee instead?"
)

// Conversation is one chat session. It is owned by a single view and is
// not safe for concurrent use.
type Conversation struct {
	ID       string
	messages []model.Message
	pending  bool
	log      *logger.Logger
}

// New starts a conversation with the welcome turn
func New() *Conversation {
	c := &Conversation{
		ID:       uuid.New().String(),
		messages: []model.Message{model.NewMessage(model.SpeakerAssistant, Welcome)},
	}
	c.log = logger.WithFields(logger.F("conversation", c.ID))
	return c
}

// Messages returns a copy of the history
func (c *Conversation) Messages() []model.Message {
	out := make([]model.Message, len(c.messages))
	copy(out, c.messages)
	return out
}

// Pending reports whether a reply is in flight
func (c *Conversation) Pending() bool { return c.pending }

// Begin records the user's turn and returns the history that preceded it,
// ready to hand to the generator. Blank text, or text sent while a reply is
// pending, is refused.
func (c *Conversation) Begin(text string) ([]model.Message, string, bool) {
	text = strings.TrimSpace(text)
	if text == "" || c.pending {
		return nil, "", false
	}
	history := c.Messages()
	c.messages = append(c.messages, model.NewMessage(model.SpeakerUser, text))
	c.pending = true
	return history, text, true
}

// Complete appends the assistant turn for the pending request. A failed
// request gets the fallback reply; the user's turn stays in the history.
func (c *Conversation) Complete(reply string, err error) model.Message {
	c.pending = false

	switch {
	case err != nil:
		if c.log != nil {
			c.log.Warn("Chat generation failed, using fallback", logger.F("error", err))
		}
		reply = Fallback
	case strings.TrimSpace(reply) == "":
		reply = EmptyReply
	}

	msg := model.NewMessage(model.SpeakerAssistant, reply)
	c.messages = append(c.messages, msg)
	return msg
}

// Send runs a full turn against gen and returns the assistant message.
// It never fails; generation errors become the fallback reply.
func (c *Conversation) Send(ctx context.Context, gen genai.Generator, text string) (model.Message, bool) {
	history, text, ok := c.Begin(text)
	if !ok {
		return model.Message{}, false
	}
	reply, err := gen.Chat(ctx, history, text)
	return c.Complete(reply, err), true
}
