package mail

import (
	"context"
	"fmt"
	"io"

	"github.com/emersion/go-imap"
	"github.com/emersion/go-imap/client"

	"github.com/rowkit/sheetmerge/pkg/sheetmerge/models"
)

// IMAPDrafts locates a draft in an IMAP mailbox, the way the original
// workflow this tool replaces read templates out of a mail provider's Drafts
// folder. Attachments are not fetched over IMAP; use FileDrafts when the
// draft carries attachments.
type IMAPDrafts struct {
	Addr     string // host:port, TLS
	Username string
	Password string
	Mailbox  string // defaults to "Drafts"
}

// FindBySubject logs in, searches the mailbox for messages whose Subject
// header matches, and fetches the newest exact match's text body. The
// server-side search is a substring match, so results are re-checked against
// the envelope subject.
func (d *IMAPDrafts) FindBySubject(_ context.Context, subject string) (models.Template, []Attachment, error) {
	c, err := client.DialTLS(d.Addr, nil)
	if err != nil {
		return models.Template{}, nil, fmt.Errorf("connecting to %s: %w", d.Addr, err)
	}
	defer c.Logout()

	if err := c.Login(d.Username, d.Password); err != nil {
		return models.Template{}, nil, fmt.Errorf("imap login: %w", err)
	}

	mailbox := d.Mailbox
	if mailbox == "" {
		mailbox = "Drafts"
	}
	if _, err := c.Select(mailbox, true); err != nil {
		return models.Template{}, nil, fmt.Errorf("selecting %s: %w", mailbox, err)
	}

	criteria := imap.NewSearchCriteria()
	criteria.Header.Add("Subject", subject)
	ids, err := c.Search(criteria)
	if err != nil {
		return models.Template{}, nil, fmt.Errorf("searching %s: %w", mailbox, err)
	}
	if len(ids) == 0 {
		return models.Template{}, nil, fmt.Errorf("%w: no message with subject %q in %s", ErrDraftNotFound, subject, mailbox)
	}

	seqset := new(imap.SeqSet)
	seqset.AddNum(ids...)

	section := &imap.BodySectionName{
		BodyPartName: imap.BodyPartName{Specifier: imap.TextSpecifier},
	}
	messages := make(chan *imap.Message, len(ids))
	done := make(chan error, 1)
	go func() {
		done <- c.Fetch(seqset, []imap.FetchItem{imap.FetchEnvelope, section.FetchItem()}, messages)
	}()

	// Newest exact match wins.
	var match *imap.Message
	for msg := range messages {
		if msg.Envelope != nil && msg.Envelope.Subject == subject {
			match = msg
		}
	}
	if err := <-done; err != nil {
		return models.Template{}, nil, fmt.Errorf("fetching draft: %w", err)
	}
	if match == nil {
		return models.Template{}, nil, fmt.Errorf("%w: no message with subject %q in %s", ErrDraftNotFound, subject, mailbox)
	}

	text := ""
	if body := match.GetBody(section); body != nil {
		raw, err := io.ReadAll(body)
		if err != nil {
			return models.Template{}, nil, fmt.Errorf("reading draft body: %w", err)
		}
		text = string(raw)
	}
	return models.Template{Subject: match.Envelope.Subject, Text: text}, nil, nil
}
