package mail

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/smtp"
	"net/textproto"
	"time"

	"github.com/google/uuid"
)

// SMTPSender dispatches messages through a plain-auth SMTP endpoint.
type SMTPSender struct {
	Host     string
	Port     int
	From     string
	Username string
	Password string
}

// Send builds the MIME wire form and submits it in one blocking call.
// Returns the generated Message-ID.
func (s *SMTPSender) Send(_ context.Context, msg *Message) (string, error) {
	from := msg.From
	if from == "" {
		from = s.From
	}
	id := fmt.Sprintf("<%s@%s>", uuid.NewString(), s.Host)
	raw, err := buildMIME(id, from, msg)
	if err != nil {
		return "", err
	}

	addr := fmt.Sprintf("%s:%d", s.Host, s.Port)
	var auth smtp.Auth
	if s.Username != "" {
		auth = smtp.PlainAuth("", s.Username, s.Password, s.Host)
	}
	if err := smtp.SendMail(addr, auth, from, []string{msg.To}, raw); err != nil {
		return "", fmt.Errorf("sending to %s: %w", msg.To, err)
	}
	return id, nil
}

// buildMIME assembles the message: multipart/mixed around a
// multipart/alternative text+html pair, plus base64 attachment parts.
func buildMIME(id, from string, msg *Message) ([]byte, error) {
	alt := &bytes.Buffer{}
	altw := multipart.NewWriter(alt)
	tw, err := altw.CreatePart(textproto.MIMEHeader{
		"Content-Type": {"text/plain; charset=UTF-8"},
	})
	if err != nil {
		return nil, fmt.Errorf("building text part: %w", err)
	}
	tw.Write([]byte(msg.Text))
	if msg.HTML != "" {
		hw, err := altw.CreatePart(textproto.MIMEHeader{
			"Content-Type": {"text/html; charset=UTF-8"},
		})
		if err != nil {
			return nil, fmt.Errorf("building html part: %w", err)
		}
		hw.Write([]byte(msg.HTML))
	}
	altw.Close()

	body := &bytes.Buffer{}
	mixed := multipart.NewWriter(body)
	part, err := mixed.CreatePart(textproto.MIMEHeader{
		"Content-Type": {fmt.Sprintf("multipart/alternative; boundary=%q", altw.Boundary())},
	})
	if err != nil {
		return nil, fmt.Errorf("building alternative part: %w", err)
	}
	part.Write(alt.Bytes())

	for _, a := range msg.Attachments {
		w, err := mixed.CreatePart(textproto.MIMEHeader{
			"Content-Type":              {a.ContentType},
			"Content-Transfer-Encoding": {"base64"},
			"Content-Disposition":       {fmt.Sprintf("attachment; filename=%q", a.Filename)},
		})
		if err != nil {
			return nil, fmt.Errorf("building attachment %s: %w", a.Filename, err)
		}
		writeBase64(w, a.Content)
	}
	mixed.Close()

	out := &bytes.Buffer{}
	fmt.Fprintf(out, "From: %s\r\n", from)
	fmt.Fprintf(out, "To: %s\r\n", msg.To)
	fmt.Fprintf(out, "Subject: %s\r\n", mime.QEncoding.Encode("utf-8", msg.Subject))
	fmt.Fprintf(out, "Message-ID: %s\r\n", id)
	fmt.Fprintf(out, "Date: %s\r\n", time.Now().Format(time.RFC1123Z))
	fmt.Fprintf(out, "MIME-Version: 1.0\r\n")
	fmt.Fprintf(out, "Content-Type: multipart/mixed; boundary=%q\r\n", mixed.Boundary())
	out.WriteString("\r\n")
	out.Write(body.Bytes())
	return out.Bytes(), nil
}

// writeBase64 writes content base64-encoded, wrapped at 76 columns per RFC
// 2045.
func writeBase64(w io.Writer, content []byte) {
	encoded := base64.StdEncoding.EncodeToString(content)
	for len(encoded) > 76 {
		fmt.Fprintf(w, "%s\r\n", encoded[:76])
		encoded = encoded[76:]
	}
	fmt.Fprintf(w, "%s\r\n", encoded)
}
