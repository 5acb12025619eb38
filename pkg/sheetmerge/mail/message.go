// Package mail locates draft templates and dispatches rendered messages.
package mail

import "context"

// Message is one outgoing email.
type Message struct {
	From        string
	To          string
	Subject     string
	Text        string
	HTML        string
	Attachments []Attachment
}

// Attachment is a file attached to a draft, re-sent with every message.
type Attachment struct {
	Filename    string
	ContentType string
	Content     []byte
}

// Sender dispatches one message and returns a provider message id. A failed
// send is reported to the caller and never retried here.
type Sender interface {
	Send(ctx context.Context, msg *Message) (string, error)
}
