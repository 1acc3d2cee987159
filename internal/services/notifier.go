package services

import (
	"fmt"
	"log"

	"gopkg.in/gomail.v2"

	"onboarding/internal/models"
	"onboarding/internal/utils"
)

// Notifier delivers an OTP code to a destination over the given channel.
// Delivery failures are the caller's problem to log; the attempt record
// already exists by the time a notifier runs.
type Notifier interface {
	SendCode(targetType, target, code string) error
}

type notifier struct {
	dialer      *gomail.Dialer
	from        string
	emailDryRun bool
	sms         *utils.SMSClient
}

func NewNotifier(smtpHost string, smtpPort int, smtpUser, smtpPassword, fromEmail string, emailDryRun bool, sms *utils.SMSClient) Notifier {
	return &notifier{
		dialer:      gomail.NewDialer(smtpHost, smtpPort, smtpUser, smtpPassword),
		from:        fromEmail,
		emailDryRun: emailDryRun,
		sms:         sms,
	}
}

func (n *notifier) SendCode(targetType, target, code string) error {
	if targetType == models.TargetMobile {
		_, err := n.sms.SendSMS(target, fmt.Sprintf("Your verification code: %s", code))
		if err != nil {
			return fmt.Errorf("sms send: %w", err)
		}
		return nil
	}

	if n.emailDryRun {
		log.Printf("[email][dry-run] to=%s code sent", target)
		return nil
	}

	m := gomail.NewMessage()
	m.SetHeader("From", n.from)
	m.SetHeader("To", target)
	m.SetHeader("Subject", "Your verification code")

	body := fmt.Sprintf(`
		<h3>Verification code</h3>
		<p>Your one-time verification code is: <strong>%s</strong></p>
		<p>The code expires in 5 minutes. If you did not request it, ignore this email.</p>
	`, code)
	m.SetBody("text/html", body)

	if err := n.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send verification email: %w", err)
	}
	return nil
}
