// Package mail delivers invoice email over SMTP using the per-installation
// settings stored in the business profile.
package mail

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"mime/multipart"
	"net/smtp"
	"net/textproto"
	"strconv"
	"strings"

	"github.com/ledgerline/ledgerline/internal/settings"
)

// ErrNotConfigured indicates the SMTP settings are incomplete.
var ErrNotConfigured = errors.New("smtp is not configured")

// Message is one outgoing email with an optional PDF attachment.
type Message struct {
	To             string
	Subject        string
	HTMLBody       string
	AttachmentName string
	Attachment     []byte
}

// Mailer sends email through the SMTP server from the business profile.
type Mailer struct {
	// send is swappable in tests.
	send func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

// NewMailer builds a Mailer instance.
func NewMailer() *Mailer {
	return &Mailer{send: smtp.SendMail}
}

// Send builds a MIME message and submits it to the configured server.
func (m *Mailer) Send(profile *settings.Settings, msg Message) error {
	if profile == nil || !profile.SMTPConfigured() {
		return ErrNotConfigured
	}

	host := *profile.EmailHost
	addr := host + ":" + strconv.Itoa(*profile.EmailPort)
	from := *profile.EmailFromAddress

	var auth smtp.Auth
	if profile.EmailUser != nil && *profile.EmailUser != "" {
		password := ""
		if profile.EmailPassword != nil {
			password = *profile.EmailPassword
		}
		auth = smtp.PlainAuth("", *profile.EmailUser, password, host)
	}

	body, err := encodeMessage(profile, from, msg)
	if err != nil {
		return err
	}
	if err := m.send(addr, auth, from, []string{msg.To}, body); err != nil {
		return fmt.Errorf("send mail to %s: %w", msg.To, err)
	}
	return nil
}

func encodeMessage(profile *settings.Settings, from string, msg Message) ([]byte, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	fromHeader := from
	if profile.EmailFromName != nil && *profile.EmailFromName != "" {
		fromHeader = fmt.Sprintf("%s <%s>", *profile.EmailFromName, from)
	}

	fmt.Fprintf(&buf, "From: %s\r\n", fromHeader)
	fmt.Fprintf(&buf, "To: %s\r\n", msg.To)
	fmt.Fprintf(&buf, "Subject: %s\r\n", msg.Subject)
	buf.WriteString("MIME-Version: 1.0\r\n")
	fmt.Fprintf(&buf, "Content-Type: multipart/mixed; boundary=%q\r\n\r\n", writer.Boundary())

	htmlPart, err := writer.CreatePart(textproto.MIMEHeader{
		"Content-Type": {`text/html; charset="utf-8"`},
	})
	if err != nil {
		return nil, fmt.Errorf("encode mail body: %w", err)
	}
	if _, err := htmlPart.Write([]byte(msg.HTMLBody)); err != nil {
		return nil, fmt.Errorf("encode mail body: %w", err)
	}

	if len(msg.Attachment) > 0 {
		name := msg.AttachmentName
		if name == "" {
			name = "invoice.pdf"
		}
		part, err := writer.CreatePart(textproto.MIMEHeader{
			"Content-Type":              {"application/pdf"},
			"Content-Transfer-Encoding": {"base64"},
			"Content-Disposition":       {fmt.Sprintf("attachment; filename=%q", name)},
		})
		if err != nil {
			return nil, fmt.Errorf("encode attachment: %w", err)
		}
		encoded := base64.StdEncoding.EncodeToString(msg.Attachment)
		// Wrap at 76 chars per RFC 2045.
		for len(encoded) > 0 {
			n := 76
			if n > len(encoded) {
				n = len(encoded)
			}
			if _, err := part.Write([]byte(encoded[:n] + "\r\n")); err != nil {
				return nil, fmt.Errorf("encode attachment: %w", err)
			}
			encoded = encoded[n:]
		}
	}

	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("finalize mail: %w", err)
	}
	return buf.Bytes(), nil
}

// InvoiceSubject builds the subject line for an invoice email.
func InvoiceSubject(businessName, number string) string {
	if businessName == "" {
		return "Invoice " + number
	}
	return fmt.Sprintf("Invoice %s from %s", number, businessName)
}

// InvoiceBody builds the HTML body for an invoice email.
func InvoiceBody(businessName, clientName, number, total, dueDate, signature string) string {
	var sb strings.Builder
	sb.WriteString(`<div style="font-family: sans-serif; max-width: 600px;">`)
	fmt.Fprintf(&sb, "<p>Dear %s,</p>", clientName)
	fmt.Fprintf(&sb, "<p>Please find attached invoice <strong>%s</strong> for <strong>%s</strong>, due on %s.</p>", number, total, dueDate)
	sb.WriteString("<p>Thank you for your business.</p>")
	if signature != "" {
		fmt.Fprintf(&sb, "<p>%s</p>", strings.ReplaceAll(signature, "\n", "<br>"))
	} else if businessName != "" {
		fmt.Fprintf(&sb, "<p>%s</p>", businessName)
	}
	sb.WriteString("</div>")
	return sb.String()
}
