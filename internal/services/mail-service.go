package services

import (
	"bytes"
	"crypto/tls"
	"fmt"
	"html/template"
	"log"
	"net"
	"net/smtp"
	"strings"
	"time"

	"github.com/SemiSummit/registration_service/internal/templates"
)

const (
	smtpHost = "smtp.gmail.com"
	smtpAddr = "smtp.gmail.com:587"
)

// MailService sends the three transactional templates. Every Send method
// reports success as a bool and never returns an error: a verification that
// already committed must not be undone by a mail outage, so delivery is
// best-effort and an operator can resend by hand.
type MailService struct {
	gmailUser    string
	gmailAppPass string
	mailFrom     string
	mailFromName string
	loginURL     string
}

func NewMailService(gmailUser, gmailAppPass, mailFrom, mailFromName, loginURL string) *MailService {
	return &MailService{
		gmailUser:    gmailUser,
		gmailAppPass: gmailAppPass,
		mailFrom:     mailFrom,
		mailFromName: mailFromName,
		loginURL:     loginURL,
	}
}

func (s *MailService) SendCredentials(to, name, tempPassword string) bool {
	body, err := renderTemplate("credentials-email.html", map[string]string{
		"Name":         name,
		"TempPassword": tempPassword,
		"LoginURL":     s.loginURL,
	})
	if err != nil {
		log.Printf("[MAIL] render credentials template: %v", err)
		return false
	}
	return s.send(to, "Semiconductor Summit — your login credentials", body)
}

func (s *MailService) SendRejection(to, name, reason string) bool {
	body, err := renderTemplate("rejection-email.html", map[string]string{
		"Name":   name,
		"Reason": reason,
	})
	if err != nil {
		log.Printf("[MAIL] render rejection template: %v", err)
		return false
	}
	return s.send(to, "Semiconductor Summit — registration update", body)
}

func (s *MailService) SendPasswordReset(to, name, resetLink string) bool {
	body, err := renderTemplate("reset-password-email.html", map[string]string{
		"Name":      name,
		"ResetLink": resetLink,
	})
	if err != nil {
		log.Printf("[MAIL] render reset template: %v", err)
		return false
	}
	return s.send(to, "Semiconductor Summit — password reset", body)
}

func renderTemplate(name string, data map[string]string) (string, error) {
	tmpl, err := template.ParseFS(templates.FS, name)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func (s *MailService) send(to, subject, htmlBody string) bool {
	fromHeader := fmt.Sprintf("%s <%s>", s.mailFromName, s.mailFrom)

	msg := strings.Join([]string{
		fmt.Sprintf("From: %s", fromHeader),
		fmt.Sprintf("To: %s", to),
		fmt.Sprintf("Subject: %s", subject),
		"MIME-Version: 1.0",
		`Content-Type: text/html; charset="UTF-8"`,
		"",
		htmlBody,
	}, "\r\n")

	log.Printf("[MAIL] smtp sending to=%s via=%s", to, smtpAddr)

	if err := s.sendSMTPWithTimeout(to, []byte(msg)); err != nil {
		log.Printf("[MAIL] send to=%s failed: %v", to, err)
		return false
	}

	log.Printf("[MAIL] sent to=%s", to)
	return true
}

func (s *MailService) sendSMTPWithTimeout(to string, msg []byte) error {
	conn, err := net.DialTimeout("tcp", smtpAddr, 8*time.Second)
	if err != nil {
		return err
	}
	// deadline covers the whole SMTP conversation
	_ = conn.SetDeadline(time.Now().Add(15 * time.Second))

	c, err := smtp.NewClient(conn, smtpHost)
	if err != nil {
		return err
	}
	defer func() { _ = c.Quit() }()

	if ok, _ := c.Extension("STARTTLS"); ok {
		if err := c.StartTLS(&tls.Config{ServerName: smtpHost}); err != nil {
			return err
		}
	}

	auth := smtp.PlainAuth("", s.gmailUser, s.gmailAppPass, smtpHost)
	if err := c.Auth(auth); err != nil {
		return err
	}

	if err := c.Mail(s.mailFrom); err != nil {
		return err
	}
	if err := c.Rcpt(to); err != nil {
		return err
	}

	w, err := c.Data()
	if err != nil {
		return err
	}
	if _, err := w.Write(msg); err != nil {
		_ = w.Close()
		return err
	}
	return w.Close()
}
