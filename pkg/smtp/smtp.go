package smtp

import (
	"fmt"
	smtpPkg "net/smtp"
	"os"
)

type ItfSmtp interface {
	SendCredentialChallenge(code string) error
}

type smtp struct {
	auth smtpPkg.Auth
	mail string
	to   string
}

func New() ItfSmtp {
	mail := os.Getenv("SMTP_MAIL")
	password := os.Getenv("SMTP_PASSWORD")
	auth := smtpPkg.PlainAuth("", mail, password, "smtp.gmail.com")

	return &smtp{auth: auth, mail: mail, to: os.Getenv("SMTP_ALERT_TO")}
}

// SendCredentialChallenge mails the raw pairing code to the configured
// alert address. The code is only useful for about a minute, so delivery
// is best-effort.
func (s *smtp) SendCredentialChallenge(code string) error {
	if s.to == "" {
		return fmt.Errorf("SMTP_ALERT_TO not configured")
	}

	message := []byte(fmt.Sprintf(
		"To: %s\r\nSubject: WhatsApp session needs re-authentication\r\n\r\nScan this pairing code within 60 seconds:\r\n\r\n%s",
		s.to, code))

	if err := smtpPkg.SendMail("smtp.gmail.com:587", s.auth, s.mail, []string{s.to}, message); err != nil {
		return err
	}

	return nil
}
