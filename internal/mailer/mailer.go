package mailer

import (
	"fmt"

	"gopkg.in/gomail.v2"

	"github.com/Vedant-Rajput22/hostel-complain-info/pkg/config"
)

// Mailer sends mail through the configured SMTP relay.
type Mailer struct {
	from   string
	dialer *gomail.Dialer
}

func New(cfg *config.SMTPConfig) *Mailer {
	return &Mailer{
		from:   cfg.From,
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Pass),
	}
}

// SendVerification sends the account verification mail.
func (m *Mailer) SendVerification(to, name, verifyURL string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", "Verify your hostel portal account")
	msg.SetBody("text/plain", fmt.Sprintf(
		"Hi %s,\n\nVerify your email to activate your hostel portal account:\n\n%s\n\nThe link expires in 24 hours.\n",
		name, verifyURL,
	))

	return m.dialer.DialAndSend(msg)
}
