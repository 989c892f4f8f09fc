package model

import "time"

// Speaker identifies who wrote a chat turn
type Speaker string

const (
	SpeakerUser      Speaker = "user"
	SpeakerAssistant Speaker = "assistant"
)

// Valid reports whether s is a known speaker
func (s Speaker) Valid() bool {
	return s == SpeakerUser || s == SpeakerAssistant
}

// Message is one turn of a barista conversation
type Message struct {
	Speaker Speaker   `json:"speaker"`
	Text    string    `json:"text"`
	At      time.Time `json:"at,omitempty"`
}

// NewMessage creates a message stamped with the current time
func NewMessage(speaker Speaker, text string) Message {
	return Message{
		Speaker: speaker,
		Text:    text,
		At:      time.Now(),
	}
}
