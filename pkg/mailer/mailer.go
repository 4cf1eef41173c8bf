package mailer

import (
	"fmt"
	"log"
	"net/smtp"
	"os"
)

// Mailer delivers the email-verification link to a new account
type Mailer interface {
	SendVerificationEmail(to, name, token string) error
}

// NewFromEnv returns an SMTP mailer when SMTP_HOST is configured and a
// log-only mailer otherwise, so local setups work without a mail server.
func NewFromEnv() Mailer {
	host := os.Getenv("SMTP_HOST")
	if host == "" {
		log.Println("Warning: SMTP_HOST not set, verification links will be logged instead of mailed")
		return &logMailer{appURL: appURL()}
	}
	return &smtpMailer{
		host:     host,
		port:     envOr("SMTP_PORT", "587"),
		username: os.Getenv("SMTP_USER"),
		password: os.Getenv("SMTP_PASSWORD"),
		from:     envOr("SMTP_FROM", "Medistore <no-reply@medistore.local>"),
		appURL:   appURL(),
	}
}

type smtpMailer struct {
	host     string
	port     string
	username string
	password string
	from     string
	appURL   string
}

func (m *smtpMailer) SendVerificationEmail(to, name, token string) error {
	link := verificationLink(m.appURL, token)
	msg := fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: Verify your email address\r\n\r\n"+
			"Hi %s,\r\n\r\nPlease verify your email address by opening this link:\r\n%s\r\n",
		m.from, to, name, link,
	)

	auth := smtp.PlainAuth("", m.username, m.password, m.host)
	return smtp.SendMail(m.host+":"+m.port, auth, m.username, []string{to}, []byte(msg))
}

type logMailer struct {
	appURL string
}

func (m *logMailer) SendVerificationEmail(to, name, token string) error {
	log.Printf("Verification link for %s: %s", to, verificationLink(m.appURL, token))
	return nil
}

func verificationLink(appURL, token string) string {
	return fmt.Sprintf("%s/verify-email?token=%s", appURL, token)
}

func appURL() string {
	return envOr("APP_URL", "http://localhost:4000")
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
