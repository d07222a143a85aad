// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package report

import (
	"fmt"
	"io"
	"net/smtp"
	"strings"

	"github.com/pdiddy/paperwatch/pkg/types"
)

// smtpSend is swapped by tests to avoid a real SMTP exchange.
var smtpSend = smtp.SendMail

// SendMail delivers the HTML digest over SMTP with STARTTLS. Missing
// mail settings are not an error: the digest stays archive-only, a
// warning goes to w, and sent is false. A transport failure is an
// error so the caller can report the archive path instead.
func SendMail(cfg types.DeliveryConfig, subject, html string, w io.Writer) (sent bool, err error) {
	if cfg.SMTPPassword == "" {
		fmt.Fprintln(w, "warning: smtp password not set, skipping email")
		return false, nil
	}
	if cfg.SenderEmail == "" || cfg.RecipientEmail == "" {
		fmt.Fprintln(w, "warning: sender or recipient email not set, skipping email")
		return false, nil
	}

	host := cfg.SMTPHost
	if host == "" {
		host = "smtp.gmail.com"
	}
	port := cfg.SMTPPort
	if port == 0 {
		port = 587
	}

	msg := buildMessage(cfg.SenderEmail, cfg.RecipientEmail, subject, html)
	auth := smtp.PlainAuth("", cfg.SenderEmail, cfg.SMTPPassword, host)

	addr := fmt.Sprintf("%s:%d", host, port)
	if err := smtpSend(addr, auth, cfg.SenderEmail, []string{cfg.RecipientEmail}, msg); err != nil {
		return false, fmt.Errorf("sending mail via %s: %w", addr, err)
	}

	fmt.Fprintf(w, "email sent to %s\n", cfg.RecipientEmail)
	return true, nil
}

// buildMessage assembles an RFC 5322 message with an HTML body.
func buildMessage(from, to, subject, html string) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", from)
	fmt.Fprintf(&b, "To: %s\r\n", to)
	fmt.Fprintf(&b, "Subject: %s\r\n", subject)
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n")
	b.WriteString("\r\n")
	b.WriteString(html)
	return []byte(b.String())
}
